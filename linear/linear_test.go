package linear_test

import (
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/photoz/linear"
	"go-ml.dev/pkg/photoz/metrics"
	"go-ml.dev/pkg/photoz/model"
	"go-ml.dev/pkg/photoz/tables"
	"gotest.tools/assert"
)

// exact rows of y = 1 + 2a - 3b with a two-row holdout
func exactDataset() model.Dataset {
	a := []float64{0, 1, 2, 3, 4, 5, 1, 3}
	b := []float64{0, 1, 0, 2, 1, 3, 2, 0}
	y := make([]float64, len(a))
	for i := range a {
		y[i] = 1 + 2*a[i] - 3*b[i]
	}
	test := []bool{false, false, false, false, false, false, true, true}
	t := tables.MakeTable([]string{"a", "b", "y", "test"},
		tables.Col(a), tables.Col(b), tables.Col(y), tables.BoolCol(test))
	return model.Dataset{Source: t, Label: "y", Test: "test", Features: []string{"a", "b"}}
}

func Test_Fit(t *testing.T) {
	dir, err := ioutil.TempDir("", "photoz-linear-*")
	assert.NilError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	modelFile := filepath.Join(dir, "linear.model")

	report, err := linear.Model{}.Feed(exactDataset()).Train(model.Training{
		Metrics:   metrics.Regression{},
		Score:     model.LossScore,
		ModelFile: iokit.File(modelFile),
	})
	assert.NilError(t, err)
	assert.Assert(t, model.Loss(report.Test) < 1e-12)
	assert.Assert(t, report.Test.Float("r2", 0) > 1-1e-9)

	p, err := linear.Objectify(modelFile)
	assert.NilError(t, err)
	assert.Assert(t, math.Abs(p.Intercept()-1) < 1e-6)
	assert.Assert(t, math.Abs(p.Coefficients()[0]-2) < 1e-6)
	assert.Assert(t, math.Abs(p.Coefficients()[1]+3) < 1e-6)
	assert.Assert(t, p.Predicted() == model.DefaultPredicted)
}

func Test_Predict(t *testing.T) {
	ds := exactDataset()
	dir, err := ioutil.TempDir("", "photoz-linear-*")
	assert.NilError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	modelFile := filepath.Join(dir, "linear.model")

	_, err = linear.Model{Predicted: "zphot"}.Feed(ds).Train(model.Training{
		Metrics:   metrics.Regression{},
		Score:     model.LossScore,
		ModelFile: iokit.File(modelFile),
	})
	assert.NilError(t, err)

	p, err := linear.Objectify(modelFile, "zphot")
	assert.NilError(t, err)
	q := p.Predict(ds.TestTable())
	assert.Assert(t, q.Has("zphot"))
	truth := q.Floats("y")
	for i, v := range q.Floats("zphot") {
		assert.Assert(t, math.Abs(v-truth[i]) < 1e-6)
	}
}

func Test_Degenerate(t *testing.T) {
	// a constant feature makes the design matrix rank deficient
	n := 4
	a := make([]float64, n)
	y := []float64{1, 2, 3, 4}
	tt := tables.MakeTable([]string{"a", "y", "test"},
		tables.Col(a), tables.Col(y), tables.BoolCol(make([]bool, n)))
	ds := model.Dataset{Source: tt, Label: "y", Test: "test", Features: []string{"a"}}
	_, err := linear.Model{}.Feed(ds).Train(model.Training{
		Metrics: metrics.Regression{},
		Score:   model.LossScore,
	})
	assert.Assert(t, err != nil)
}
