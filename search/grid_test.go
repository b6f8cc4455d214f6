package search_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"go-ml.dev/pkg/photoz/knn"
	"go-ml.dev/pkg/photoz/metrics"
	"go-ml.dev/pkg/photoz/model"
	"go-ml.dev/pkg/photoz/search"
	"go-ml.dev/pkg/photoz/tables"
	"gotest.tools/assert"
)

// two separable clusters of 10 rows each
func clusters() *tables.Table {
	n := 20
	x1 := make([]float64, n)
	x2 := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1[i] = float64(i % 10)
		x2[i] = float64((i * 3) % 10)
		if i >= 10 {
			x1[i] += 100
			x2[i] += 100
			y[i] = 1
		}
	}
	return tables.MakeTable([]string{"x1", "x2", "label"},
		tables.Col(x1), tables.Col(x2), tables.Col(y))
}

func knnSpace(t *tables.Table) search.Space {
	return search.Space{
		Source:   t,
		Features: []string{"x1", "x2"},
		Label:    "label",
		Seed:     1,
		Kfold:    4,
		Metrics:  metrics.Classification{Classes: 2},
		Score:    model.ErrorScore,
		Grid:     search.Grid{"k": {1, 3, 5}},
		ModelFunc: func(p model.Params) model.HungryModel {
			return knn.Model{K: int(p.Get("k", 1)), Kind: knn.Classifier, Classes: 2}
		},
	}
}

func Test_GridSearchCV(t *testing.T) {
	report, err := knnSpace(clusters()).GridSearchCV()
	assert.NilError(t, err)
	// the clusters are separable at any k of the grid
	assert.Assert(t, report.Score == 1)
	assert.Assert(t, report.Params.Get("k", 0) == 1) // ties keep the first candidate
	assert.Assert(t, report.Curve.Len() == 3)
	assert.Assert(t, report.Curve.Has("k"))
	assert.Assert(t, report.Curve.Has("train_score"))
	assert.Assert(t, report.Curve.Has("cv_score"))
}

func Test_GridSearchCVErrors(t *testing.T) {
	s := knnSpace(clusters())
	s.ModelFunc = nil
	_, err := s.GridSearchCV()
	assert.Assert(t, err != nil)

	s = knnSpace(clusters())
	s.Grid = search.Grid{}
	_, err = s.GridSearchCV()
	assert.Assert(t, err != nil)

	s = knnSpace(clusters())
	s.Grid = search.Grid{"k": {}}
	_, err = s.GridSearchCV()
	assert.Assert(t, err != nil)
}

func Test_Trials(t *testing.T) {
	dir, err := ioutil.TempDir("", "photoz-trials-*")
	assert.NilError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	trials, err := search.OpenTrials(filepath.Join(dir, "trials.db"))
	assert.NilError(t, err)
	defer trials.Close()

	s := knnSpace(clusters())
	s.Trials = trials
	s.Study = "knn"
	report, err := s.GridSearchCV()
	assert.NilError(t, err)

	n, err := trials.Count("knn")
	assert.NilError(t, err)
	assert.Assert(t, n == 3)

	params, score, err := trials.Best("knn")
	assert.NilError(t, err)
	assert.Assert(t, score == report.Score)
	assert.Assert(t, params.Get("k", 0) > 0)
}
