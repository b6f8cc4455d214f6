/*
Package search implements exhaustive grid search with k-fold
cross-validation for hyper-parameter selection.

Every grid candidate is scored by the unweighted mean of per-fold
scores; ties keep the earlier candidate so a fixed seed reproduces the
same winner.
*/
package search

import (
	"fmt"
	"math"
	"sort"

	"go-ml.dev/pkg/photoz/dataset"
	"go-ml.dev/pkg/photoz/fu"
	"go-ml.dev/pkg/photoz/model"
	"go-ml.dev/pkg/photoz/tables"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
)

/*
Grid is a space of hyper-parameters as explicit value lists per name
*/
type Grid map[string][]float64

/*
Report is a result of a grid search
*/
type Report struct {
	Params model.Params  // the best candidate
	Score  float64       // mean cross-validation score of the best candidate
	Curve  *tables.Table // per-candidate params, train_score and cv_score
}

/*
Space is a definition of a grid-search cross-validation run
*/
type Space struct {
	Source     *tables.Table // catalog snapshot to search on
	Features   []string      // dataset features
	Label      string        // dataset label
	Seed       int           // random seed of the fold assignment
	Kfold      int           // count of dataset folds, 5 if 0
	Iterations int           // model fitting iterations
	Metrics    model.Metrics // model evaluation metrics
	Score      model.Score   // function to calculate score of train/test metrics

	ScoreHistory int

	// the model generation function
	ModelFunc func(model.Params) model.HungryModel

	// hyper-parameters grid
	Grid Grid

	// optional trial log
	Trials *Trials
	Study  string
}

/*
GridSearchCV evaluates every candidate of the grid by k-fold
cross-validation and returns the best one with the full score curve
*/
func (s Space) GridSearchCV() (Report, error) {
	if s.ModelFunc == nil {
		return Report{}, zorros.Errorf("grid search requires a model generation function")
	}
	if len(s.Grid) == 0 {
		return Report{}, zorros.Errorf("grid search requires a non-empty grid")
	}
	names := make([]string, 0, len(s.Grid))
	for name := range s.Grid {
		if len(s.Grid[name]) == 0 {
			return Report{}, zorros.Errorf("grid has no values for parameter `%v`", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	folds := dataset.Folds(s.Source.Len(), fu.Fnzi(s.Kfold, 5), s.Seed)
	report := Report{Score: math.Inf(-1)}
	var curve []fu.Struct
	for _, params := range s.candidates(names) {
		trainScore, cvScore, err := s.crossValidate(params, folds)
		if err != nil {
			return Report{}, err
		}
		zlog.Info(fmt.Sprintf("grid %v: cv score %.5f", params, cvScore))
		if s.Trials != nil {
			if err = s.Trials.Add(s.Study, params, cvScore); err != nil {
				return Report{}, err
			}
		}
		line := make([]float64, 0, len(names)+2)
		for _, name := range names {
			line = append(line, params[name])
		}
		curve = append(curve, fu.MakeStruct(append(names[:len(names):len(names)], "train_score", "cv_score"),
			append(line, trainScore, cvScore)...))
		if cvScore > report.Score {
			report.Params, report.Score = params, cvScore
		}
	}
	report.Curve = tables.FromStructs(curve)
	return report, nil
}

/*
LuckyGridSearchCV does the same as GridSearchCV and trows any occurred
errors as a panic
*/
func (s Space) LuckyGridSearchCV() Report {
	r, err := s.GridSearchCV()
	if err != nil {
		panic(zorros.Panic(err))
	}
	return r
}

// candidates enumerates the cartesian product of the grid in the
// sorted-name order.
func (s Space) candidates(names []string) []model.Params {
	out := []model.Params{{}}
	for _, name := range names {
		next := make([]model.Params, 0, len(out)*len(s.Grid[name]))
		for _, p := range out {
			for _, v := range s.Grid[name] {
				q := model.Params{}
				for k, w := range p {
					q[k] = w
				}
				q[name] = v
				next = append(next, q)
			}
		}
		out = next
	}
	return out
}

// crossValidate trains one candidate on every fold split and averages
// the resulting scores.
func (s Space) crossValidate(params model.Params, folds []int) (trainScore, cvScore float64, err error) {
	k := fu.Fnzi(s.Kfold, 5)
	for f := 0; f < k; f++ {
		flags := make([]bool, len(folds))
		for i, ff := range folds {
			flags[i] = ff == f
		}
		ds := model.Dataset{
			Source:   s.Source.With(tables.BoolCol(flags), dataset.Test),
			Label:    s.Label,
			Test:     dataset.Test,
			Features: s.Features,
		}
		r, e := s.ModelFunc(params).Feed(ds).Train(model.Training{
			Iterations:   s.Iterations,
			Metrics:      s.Metrics,
			Score:        s.Score,
			ScoreHistory: s.ScoreHistory,
		})
		if e != nil {
			return 0, 0, zorros.Wrapf(e, "fold %v of %v failed: %v", f, params, e.Error())
		}
		trainScore += s.Score(r.Train, r.Train)
		cvScore += r.Score
	}
	return trainScore / float64(k), cvScore / float64(k), nil
}
