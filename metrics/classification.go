package metrics

import (
	"go-ml.dev/pkg/photoz/fu"
	"go-ml.dev/pkg/photoz/model"
)

/*
Classification metrics of a multi-class classifier.

The metrics line carries the misclassification rate as both loss and
error, beside accuracy and macro-averaged precision/recall/f1. When
Accuracy is set, reaching it on the test subset completes training.
*/
type Classification struct {
	Classes  int     // count of classes, 2 if 0
	Accuracy float64 // optional accuracy goal
}

type classificationUpdater struct {
	iteration int
	subset    string
	goal      float64
	confusion *Confusion
}

func (m Classification) Names() []string {
	return []string{"iteration", "test", "loss", "error", "accuracy", "precision", "recall", "f1"}
}

func (m Classification) New(iteration int, subset string) model.MetricsUpdater {
	return &classificationUpdater{
		iteration: iteration,
		subset:    subset,
		goal:      m.Accuracy,
		confusion: NewConfusion(fu.Maxi(m.Classes, 2)),
	}
}

func (u *classificationUpdater) Update(predicted, label float64) {
	u.confusion.Add(int(label+0.5), int(predicted+0.5))
}

func (u *classificationUpdater) Complete() (fu.Struct, bool) {
	names := Classification{}.Names()
	acc := u.confusion.Accuracy()
	prec, rec, f1 := u.confusion.MacroPRF1()
	line := fu.MakeStruct(names,
		float64(u.iteration),
		subsetFlag(u.subset),
		1-acc,
		1-acc,
		acc,
		prec,
		rec,
		f1)
	done := u.goal > 0 && u.subset == model.TestSubset && acc >= u.goal
	return line, done
}

/*
Confusion is a square confusion matrix; rows are true classes, columns
are predicted ones
*/
type Confusion struct {
	classes int
	counts  []int
}

func NewConfusion(classes int) *Confusion {
	return &Confusion{classes: classes, counts: make([]int, classes*classes)}
}

/*
Classes returns the matrix dimension
*/
func (c *Confusion) Classes() int { return c.classes }

/*
Add counts one sample of a true class predicted as another
*/
func (c *Confusion) Add(label, predicted int) {
	if label >= 0 && label < c.classes && predicted >= 0 && predicted < c.classes {
		c.counts[label*c.classes+predicted]++
	}
}

/*
At returns the count of true class i predicted as class j
*/
func (c *Confusion) At(i, j int) int { return c.counts[i*c.classes+j] }

/*
Total counts all samples
*/
func (c *Confusion) Total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

/*
Accuracy is the diagonal share of the matrix
*/
func (c *Confusion) Accuracy() float64 {
	n := c.Total()
	if n == 0 {
		return 0
	}
	d := 0
	for i := 0; i < c.classes; i++ {
		d += c.At(i, i)
	}
	return float64(d) / float64(n)
}

/*
PRF1 returns precision, recall and f1 of one class against the rest
*/
func (c *Confusion) PRF1(class int) (prec, rec, f1 float64) {
	tp, fp, fn := 0, 0, 0
	for i := 0; i < c.classes; i++ {
		for j := 0; j < c.classes; j++ {
			switch {
			case i == class && j == class:
				tp += c.At(i, j)
			case i != class && j == class:
				fp += c.At(i, j)
			case i == class && j != class:
				fn += c.At(i, j)
			}
		}
	}
	if tp+fp > 0 {
		prec = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		rec = float64(tp) / float64(tp+fn)
	}
	if prec+rec > 0 {
		f1 = 2 * prec * rec / (prec + rec)
	}
	return
}

/*
MacroPRF1 averages per-class precision, recall and f1 over all classes
*/
func (c *Confusion) MacroPRF1() (prec, rec, f1 float64) {
	for k := 0; k < c.classes; k++ {
		p, r, f := c.PRF1(k)
		prec += p
		rec += r
		f1 += f
	}
	n := float64(c.classes)
	return prec / n, rec / n, f1 / n
}

/*
ConfusionOf builds a confusion matrix from predicted/label class values
*/
func ConfusionOf(classes int, predicted, label []float64) *Confusion {
	c := NewConfusion(classes)
	for i := range predicted {
		c.Add(int(label[i]+0.5), int(predicted[i]+0.5))
	}
	return c
}
