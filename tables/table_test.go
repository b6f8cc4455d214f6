package tables

import (
	"testing"

	"go-ml.dev/pkg/photoz/fu"
	"gotest.tools/assert"
)

func sample() *Table {
	return MakeTable([]string{"x", "y", "name"},
		Col([]float64{1, 2, 3}),
		Col([]float64{10, 20, 30}),
		StrCol([]string{"a", "b", "c"}))
}

func Test_MakeTable(t *testing.T) {
	q := sample()
	assert.Assert(t, q.Len() == 3)
	assert.DeepEqual(t, q.Names(), []string{"x", "y", "name"})
	assert.Assert(t, q.Has("x") && !q.Has("z"))
	assert.Assert(t, q.Col("y").Float(1) == 20)
	assert.Assert(t, q.Col("name").String(2) == "c")
}

func Test_With(t *testing.T) {
	q := sample().With(Col([]float64{7, 8, 9}), "y")
	assert.Assert(t, q.Len() == 3)
	assert.Assert(t, len(q.Names()) == 3)
	assert.DeepEqual(t, q.Floats("y"), []float64{7, 8, 9})
	q = q.With(BoolCol([]bool{true, false, true}), "test")
	assert.Assert(t, len(q.Names()) == 4)
	assert.Assert(t, q.Col("test").Bool(0))
}

func Test_FilterSlice(t *testing.T) {
	q := sample().Filter(func(i int) bool { return i != 1 })
	assert.Assert(t, q.Len() == 2)
	assert.DeepEqual(t, q.Floats("x"), []float64{1, 3})
	q = sample().Slice([]int{2, 0})
	assert.DeepEqual(t, q.Floats("x"), []float64{3, 1})
	assert.Assert(t, q.Col("name").String(0) == "c")
}

func Test_Matrix(t *testing.T) {
	m := sample().Matrix([]string{"x", "y"})
	assert.DeepEqual(t, m, [][]float64{{1, 10}, {2, 20}, {3, 30}})
}

func Test_FromStructs(t *testing.T) {
	q := FromStructs([]fu.Struct{
		fu.MakeStruct([]string{"a", "b"}, 1, 2),
		fu.MakeStruct([]string{"a", "b"}, 3, 4),
	})
	assert.Assert(t, q.Len() == 2)
	assert.DeepEqual(t, q.Floats("b"), []float64{2, 4})
	assert.Assert(t, FromStructs(nil).Len() == 0)
}
