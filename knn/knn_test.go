package knn_test

import (
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/photoz/knn"
	"go-ml.dev/pkg/photoz/metrics"
	"go-ml.dev/pkg/photoz/model"
	"go-ml.dev/pkg/photoz/tables"
	"gotest.tools/assert"
)

// two well separated clusters around (0,0) and (10,10)
func clusters() model.Dataset {
	x1 := []float64{0, 1, 0, 1, 10, 11, 10, 11, 0.5, 10.5}
	x2 := []float64{0, 0, 1, 1, 10, 10, 11, 11, 0.5, 10.5}
	y := []float64{0, 0, 0, 0, 1, 1, 1, 1, 0, 1}
	test := []bool{false, false, false, false, false, false, false, false, true, true}
	t := tables.MakeTable([]string{"x1", "x2", "label", "test"},
		tables.Col(x1), tables.Col(x2), tables.Col(y), tables.BoolCol(test))
	return model.Dataset{Source: t, Label: "label", Test: "test", Features: []string{"x1", "x2"}}
}

func trainKnn(t *testing.T, e knn.Model) *knn.Prediction {
	t.Helper()
	dir, err := ioutil.TempDir("", "photoz-knn-*")
	assert.NilError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	modelFile := filepath.Join(dir, "knn.model")
	report, err := e.Feed(clusters()).Train(model.Training{
		Metrics:   metrics.Classification{Classes: 2},
		Score:     model.ErrorScore,
		ModelFile: iokit.File(modelFile),
	})
	assert.NilError(t, err)
	assert.Assert(t, report.Test.Float("accuracy", 0) == 1)
	p, err := knn.Objectify(modelFile)
	assert.NilError(t, err)
	return p
}

func Test_Classifier(t *testing.T) {
	p := trainKnn(t, knn.Model{K: 3, Kind: knn.Classifier, Classes: 2})
	ds := clusters()
	q := p.Predict(ds.TestTable())
	assert.DeepEqual(t, q.Floats(model.DefaultPredicted), []float64{0, 1})

	// every near neighbor of the holdout rows agrees on the class
	proba := p.Proba(ds.TestTable(), 1)
	assert.Assert(t, proba[0] == 0)
	assert.Assert(t, proba[1] == 1)
}

func Test_WeightedClassifier(t *testing.T) {
	p := trainKnn(t, knn.Model{K: 5, Kind: knn.Classifier, Classes: 2, Weighted: true})
	q := p.Predict(clusters().TestTable())
	assert.DeepEqual(t, q.Floats(model.DefaultPredicted), []float64{0, 1})
}

func Test_Regressor(t *testing.T) {
	// y = x over a dense grid, the neighbor average stays close
	n := 101
	x := make([]float64, n)
	y := make([]float64, n)
	test := make([]bool, n)
	for i := range x {
		x[i] = float64(i) / 10
		y[i] = x[i]
	}
	test[50] = true
	tt := tables.MakeTable([]string{"x", "y", "test"},
		tables.Col(x), tables.Col(y), tables.BoolCol(test))
	ds := model.Dataset{Source: tt, Label: "y", Test: "test", Features: []string{"x"}}

	report, err := knn.Model{K: 2, Kind: knn.Regressor}.Feed(ds).Train(model.Training{
		Metrics: metrics.Regression{},
		Score:   model.LossScore,
	})
	assert.NilError(t, err)
	// the two nearest grid points of x=5.0 average to 5.0 exactly
	assert.Assert(t, math.Abs(model.Loss(report.Test)) < 1e-9)
}

func Test_KBound(t *testing.T) {
	// K gets clipped to the train subset size
	p := trainKnn(t, knn.Model{K: 100, Kind: knn.Classifier, Classes: 2})
	q := p.Predict(clusters().TestTable())
	assert.Assert(t, q.Len() == 2)
}
