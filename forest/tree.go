package forest

import (
	"math/rand"
	"sort"
)

// Node is one node of a fitted decision tree. Exported fields keep the
// tree gob-encodable inside a model memo.
type Node struct {
	Feature   int     // split feature, -1 for a leaf
	Threshold float64 // go left when value <= Threshold
	Class     int     // majority class of a leaf
	Left      *Node
	Right     *Node
}

type treeConfig struct {
	classes         int
	maxDepth        int // 0 means unlimited
	minSamplesSplit int
	maxFeatures     int // count of features tried per split
}

// growTree builds a gini decision tree over the rows selected by idx.
func growTree(x [][]float64, y []int, idx []int, cfg treeConfig, rng *rand.Rand) *Node {
	counts := make([]int, cfg.classes)
	for _, i := range idx {
		counts[y[i]]++
	}
	node := &Node{Feature: -1, Class: argmax(counts)}
	if len(idx) < cfg.minSamplesSplit || cfg.maxDepth == 1 || pure(counts) {
		return node
	}
	feature, threshold, ok := bestSplit(x, y, idx, cfg, rng)
	if !ok {
		return node
	}
	var left, right []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return node
	}
	down := cfg
	if cfg.maxDepth > 0 {
		down.maxDepth = cfg.maxDepth - 1
	}
	node.Feature = feature
	node.Threshold = threshold
	node.Left = growTree(x, y, left, down, rng)
	node.Right = growTree(x, y, right, down, rng)
	return node
}

// bestSplit searches a random feature subset for the threshold with the
// lowest weighted gini impurity.
func bestSplit(x [][]float64, y []int, idx []int, cfg treeConfig, rng *rand.Rand) (feature int, threshold float64, ok bool) {
	features := rng.Perm(len(x[idx[0]]))[:cfg.maxFeatures]
	bestGini := gini(countClasses(y, idx, cfg.classes), len(idx))
	order := make([]int, len(idx))
	for _, f := range features {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return x[order[a]][f] < x[order[b]][f] })
		// scan splits left-to-right keeping class counts incremental
		left := make([]int, cfg.classes)
		right := countClasses(y, idx, cfg.classes)
		for k := 0; k < len(order)-1; k++ {
			c := y[order[k]]
			left[c]++
			right[c]--
			a, b := x[order[k]][f], x[order[k+1]][f]
			if a == b {
				continue
			}
			nl, nr := k+1, len(order)-k-1
			g := (float64(nl)*gini(left, nl) + float64(nr)*gini(right, nr)) / float64(len(order))
			if g < bestGini {
				bestGini, feature, threshold, ok = g, f, (a+b)/2, true
			}
		}
	}
	return
}

func countClasses(y []int, idx []int, classes int) []int {
	counts := make([]int, classes)
	for _, i := range idx {
		counts[y[i]]++
	}
	return counts
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		g -= p * p
	}
	return g
}

func pure(counts []int) bool {
	nz := 0
	for _, c := range counts {
		if c > 0 {
			nz++
		}
	}
	return nz <= 1
}

func argmax(counts []int) int {
	j, m := 0, -1
	for i, c := range counts {
		if c > m {
			j, m = i, c
		}
	}
	return j
}

// classify walks the tree down to a leaf.
func (n *Node) classify(row []float64) int {
	for n.Feature >= 0 {
		if row[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Class
}
