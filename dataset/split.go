package dataset

import (
	"math/rand"

	"go-ml.dev/pkg/photoz/tables"
)

/*
SplitTrainTest appends the boolean test column selecting a random
testRatio share of rows as the holdout subset
*/
func SplitTrainTest(t *tables.Table, testRatio float64, seed int) *tables.Table {
	n := t.Len()
	rng := rand.New(rand.NewSource(int64(seed)))
	perm := rng.Perm(n)
	nTest := int(float64(n) * testRatio)
	v := make([]bool, n)
	for i := 0; i < nTest; i++ {
		v[perm[i]] = true
	}
	return t.With(tables.BoolCol(v), Test)
}

/*
Folds assigns every of n rows to one of k folds; fold sizes differ by
at most one row
*/
func Folds(n, k, seed int) []int {
	rng := rand.New(rand.NewSource(int64(seed)))
	perm := rng.Perm(n)
	folds := make([]int, n)
	for i, p := range perm {
		folds[p] = i % k
	}
	return folds
}

/*
Shuffle returns the table with rows in a seeded random order
*/
func Shuffle(t *tables.Table, seed int) *tables.Table {
	rng := rand.New(rand.NewSource(int64(seed)))
	return t.Slice(rng.Perm(t.Len()))
}
