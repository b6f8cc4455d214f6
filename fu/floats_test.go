package fu

import (
	"testing"

	"gotest.tools/assert"
)

func Test_Mean(t *testing.T) {
	assert.Assert(t, Mean([]float64{1, 2, 3}) == 2)
	assert.Assert(t, Mean(nil) == 0)
}

func Test_Mse(t *testing.T) {
	assert.Assert(t, Mse([]float64{1, 2}, []float64{1, 2}) == 0)
	assert.Assert(t, Mse([]float64{0, 0}, []float64{2, 2}) == 4)
	assert.Assert(t, Mse(nil, nil) == 0)
}

func Test_MinMax(t *testing.T) {
	v := []float64{3, -1, 7, 2}
	assert.Assert(t, Mind(v) == -1)
	assert.Assert(t, Maxd(v) == 7)
	assert.Assert(t, Indmaxd(v) == 2)
	assert.Assert(t, Indmaxd(nil) == -1)
	assert.Assert(t, Mini(2, 3) == 2)
	assert.Assert(t, Maxi(2, 3) == 3)
}

func Test_Fnz(t *testing.T) {
	assert.Assert(t, Fnzi(0, 0, 5) == 5)
	assert.Assert(t, Fnzi() == 0)
	assert.Assert(t, Fnzd(0, 1.5) == 1.5)
	assert.Assert(t, Fnzs("", "a", "b") == "a")
}

func Test_Struct(t *testing.T) {
	s := MakeStruct([]string{"loss", "error"}, 0.25, 0.1)
	assert.Assert(t, s.Float("loss", -1) == 0.25)
	assert.Assert(t, s.Float("absent", -1) == -1)
	assert.Assert(t, s.Has("error"))
	assert.Assert(t, !s.Has("absent"))
}
