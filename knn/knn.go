/*
Package knn implements k-nearest-neighbors estimation over catalog
features: a regressor averaging neighbor labels and a classifier voting
among them with per-class probabilities.
*/
package knn

import (
	"encoding/gob"
	"math"
	"runtime"
	"sync"

	"go-ml.dev/pkg/photoz/fu"
	"go-ml.dev/pkg/photoz/model"
	"go-ml.dev/pkg/photoz/tables"
	"go-ml.dev/pkg/zorros"
)

const mnemonic = "knn"

func init() {
	gob.Register(memo{})
}

// Kind selects between regression and classification prediction.
type Kind int

const (
	Regressor Kind = iota
	Classifier
)

/*
Model is a k-nearest-neighbors estimator; it keeps the training data as
is and predicts from the K closest rows at query time
*/
type Model struct {
	K         int  // count of neighbors, 5 if 0
	Kind      Kind // Regressor or Classifier
	Weighted  bool // inverse-distance neighbor weighting
	Classes   int  // count of classes of a Classifier, 2 if 0
	Predicted string
}

type memo struct {
	K        int
	Kind     Kind
	Weighted bool
	Classes  int
	Features []string
	X        [][]float64
	Y        []float64
}

/*
Feed binds the model to a dataset returning the training function
*/
func (e Model) Feed(ds model.Dataset) model.FatModel {
	return func(w model.Workout) (*model.Report, error) {
		if err := ds.Verify(); err != nil {
			return nil, err
		}
		xt, yt := model.Matrices(ds.TrainTable(), ds.Features, ds.Label)
		if len(xt) == 0 {
			return nil, zorros.Errorf("no rows to train on")
		}
		m := memo{
			K:        fu.Maxi(fu.Mini(fu.Fnzi(e.K, 5), len(xt)), 1),
			Kind:     e.Kind,
			Weighted: e.Weighted,
			Classes:  fu.Maxi(e.Classes, 2),
			Features: ds.Features,
			X:        xt,
			Y:        yt,
		}
		p := &Prediction{memo: m, predicted: fu.Fnzs(e.Predicted, model.DefaultPredicted)}
		train, _ := model.EvaluateMetrics(w.TrainMetrics(), p.predict(xt), yt)
		xv, yv := model.Matrices(ds.TestTable(), ds.Features, ds.Label)
		test, _ := model.EvaluateMetrics(w.TestMetrics(), p.predict(xv), yv)
		report, _, err := w.Complete(model.MemorizeMap{mnemonic: m}, train, test, true)
		return report, err
	}
}

/*
Prediction implements the prediction model of fed k-nearest-neighbors
*/
type Prediction struct {
	memo      memo
	predicted string
}

func (p *Prediction) Features() []string { return p.memo.Features }
func (p *Prediction) Predicted() string  { return p.predicted }

/*
Predict returns the table with the predicted column appended
*/
func (p *Prediction) Predict(t *tables.Table) *tables.Table {
	return t.With(tables.Col(p.predict(t.Matrix(p.memo.Features))), p.predicted)
}

/*
Proba returns the vote share of one class for every row of the table
*/
func (p *Prediction) Proba(t *tables.Table, class int) []float64 {
	x := t.Matrix(p.memo.Features)
	r := make([]float64, len(x))
	p.parallel(len(x), func(i int) {
		votes := p.votes(x[i])
		total := 0.0
		for _, v := range votes {
			total += v
		}
		if total > 0 {
			r[i] = votes[class] / total
		}
	})
	return r
}

func (p *Prediction) predict(x [][]float64) []float64 {
	r := make([]float64, len(x))
	p.parallel(len(x), func(i int) {
		if p.memo.Kind == Classifier {
			r[i] = float64(fu.Indmaxd(p.votes(x[i])))
		} else {
			r[i] = p.average(x[i])
		}
	})
	return r
}

// parallel spreads per-row work over the available cores.
func (p *Prediction) parallel(n int, f func(i int)) {
	workers := fu.Mini(runtime.GOMAXPROCS(0), fu.Maxi(n, 1))
	rows := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		s, e := w*rows, fu.Mini((w+1)*rows, n)
		if s >= e {
			continue
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(s, e)
	}
	wg.Wait()
}

type neighbor struct {
	d float64 // squared distance
	y float64
}

// neighbors keeps a bounded ascending list of the K closest rows.
func (p *Prediction) neighbors(xi []float64) []neighbor {
	k := p.memo.K
	nbrs := make([]neighbor, 0, k)
	for j, xj := range p.memo.X {
		d := euclidSquared(xi, xj)
		if len(nbrs) == k && d >= nbrs[k-1].d {
			continue
		}
		if len(nbrs) < k {
			nbrs = append(nbrs, neighbor{})
		}
		i := len(nbrs) - 1
		for i > 0 && nbrs[i-1].d > d {
			nbrs[i] = nbrs[i-1]
			i--
		}
		nbrs[i] = neighbor{d, p.memo.Y[j]}
	}
	return nbrs
}

func (p *Prediction) weight(d float64) float64 {
	if !p.memo.Weighted {
		return 1
	}
	return 1 / (math.Sqrt(d) + 1e-9)
}

func (p *Prediction) votes(xi []float64) []float64 {
	votes := make([]float64, p.memo.Classes)
	for _, nb := range p.neighbors(xi) {
		c := int(nb.y + 0.5)
		if c >= 0 && c < len(votes) {
			votes[c] += p.weight(nb.d)
		}
	}
	return votes
}

func (p *Prediction) average(xi []float64) float64 {
	sum, wsum := 0.0, 0.0
	for _, nb := range p.neighbors(xi) {
		w := p.weight(nb.d)
		sum += w * nb.y
		wsum += w
	}
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}

// euclidSquared avoids the square root, the neighbor order is the same.
func euclidSquared(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

/*
Objectify reads fed k-nearest-neighbors back from a model file
*/
func Objectify(path string, predicted ...string) (*Prediction, error) {
	mm, err := model.Objectify(path)
	if err != nil {
		return nil, err
	}
	m, ok := mm[mnemonic].(memo)
	if !ok {
		return nil, zorros.Errorf("model file `%v` does not keep a knn model", path)
	}
	return &Prediction{memo: m, predicted: fu.Fnzs(append(predicted, "")[0], model.DefaultPredicted)}, nil
}
