package metrics

import "sort"

/*
ROCPoint is one point of a ROC curve at some score threshold
*/
type ROCPoint struct {
	FPR       float64
	TPR       float64
	Threshold float64
}

/*
ROC builds a one-vs-rest ROC curve from positive-class scores and
binary labels (label > 0 means positive). Points go from (0,0) to (1,1)
with thresholds descending.
*/
func ROC(scores []float64, positive []bool) []ROCPoint {
	type sample struct {
		score float64
		pos   bool
	}
	ss := make([]sample, len(scores))
	np, nn := 0, 0
	for i, s := range scores {
		ss[i] = sample{s, positive[i]}
		if positive[i] {
			np++
		} else {
			nn++
		}
	}
	sort.Slice(ss, func(i, j int) bool { return ss[i].score > ss[j].score })

	points := []ROCPoint{{FPR: 0, TPR: 0, Threshold: 1}}
	tp, fp := 0, 0
	for i := 0; i < len(ss); {
		// consume all samples of equal score at once, the threshold
		// cannot separate them
		j := i
		for j < len(ss) && ss[j].score == ss[i].score {
			if ss[j].pos {
				tp++
			} else {
				fp++
			}
			j++
		}
		p := ROCPoint{Threshold: ss[i].score}
		if np > 0 {
			p.TPR = float64(tp) / float64(np)
		}
		if nn > 0 {
			p.FPR = float64(fp) / float64(nn)
		}
		points = append(points, p)
		i = j
	}
	return points
}

/*
AUC is the trapezoidal area under a ROC curve
*/
func AUC(points []ROCPoint) float64 {
	a := 0.0
	for i := 1; i < len(points); i++ {
		a += (points[i].FPR - points[i-1].FPR) * (points[i].TPR + points[i-1].TPR) / 2
	}
	return a
}
