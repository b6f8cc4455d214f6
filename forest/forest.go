/*
Package forest implements a random-forest classifier: bootstrap-sampled
gini decision trees with random feature subsets and majority voting.

The ensemble grows across training iterations, so the unified training
loop bounds the tree count by its score history the same way it bounds
iterations of any other model.
*/
package forest

import (
	"encoding/gob"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"go-ml.dev/pkg/photoz/fu"
	"go-ml.dev/pkg/photoz/model"
	"go-ml.dev/pkg/photoz/tables"
	"go-ml.dev/pkg/zorros"
)

const mnemonic = "forest"

func init() {
	gob.Register(memo{})
}

/*
Model is a random-forest classifier
*/
type Model struct {
	Trees           int   // trees grown per training iteration, 10 if 0
	MaxDepth        int   // tree depth limit, unlimited if 0
	MinSamplesSplit int   // minimal node size to split, 2 if 0
	MaxFeatures     int   // features tried per split, sqrt of all if 0
	Classes         int   // count of classes, 2 if 0
	Seed            int64 // seed of bootstrap and feature sampling
	Predicted       string
}

type memo struct {
	Classes  int
	Features []string
	Trees    []*Node
}

/*
Feed binds the model to a dataset returning the training function
*/
func (e Model) Feed(ds model.Dataset) model.FatModel {
	return func(w model.Workout) (*model.Report, error) {
		if err := ds.Verify(); err != nil {
			return nil, err
		}
		xt, ft := model.Matrices(ds.TrainTable(), ds.Features, ds.Label)
		if len(xt) == 0 {
			return nil, zorros.Errorf("no rows to train on")
		}
		yt := classLabels(ft)
		xv, fv := model.Matrices(ds.TestTable(), ds.Features, ds.Label)

		classes := fu.Maxi(e.Classes, 2)
		cfg := treeConfig{
			classes:         classes,
			maxDepth:        e.MaxDepth,
			minSamplesSplit: fu.Maxi(e.MinSamplesSplit, 2),
			maxFeatures:     fu.Mini(fu.Fnzi(e.MaxFeatures, isqrt(len(ds.Features))), len(ds.Features)),
		}
		perIteration := fu.Fnzi(e.Trees, 10)
		seed := e.Seed
		if seed == 0 {
			seed = 1
		}

		p := &Prediction{
			memo:      memo{Classes: classes, Features: ds.Features},
			predicted: fu.Fnzs(e.Predicted, model.DefaultPredicted),
		}
		for {
			grown := grow(xt, yt, perIteration, len(p.memo.Trees), cfg, seed)
			p.memo.Trees = append(p.memo.Trees, grown...)

			train, _ := model.EvaluateMetrics(w.TrainMetrics(), p.predict(xt), ft)
			test, done := model.EvaluateMetrics(w.TestMetrics(), p.predict(xv), fv)
			report, stop, err := w.Complete(model.MemorizeMap{mnemonic: p.memo}, train, test, done)
			if err != nil {
				return nil, err
			}
			if stop {
				return report, nil
			}
			w = w.Next()
		}
	}
}

// grow builds count more trees in parallel; every tree draws its own
// bootstrap sample from a rand source seeded by its ensemble position.
func grow(x [][]float64, y []int, count, offset int, cfg treeConfig, seed int64) []*Node {
	trees := make([]*Node, count)
	workers := fu.Mini(runtime.GOMAXPROCS(0), count)
	var wg sync.WaitGroup
	jobs := make(chan int, count)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				rng := rand.New(rand.NewSource(seed + int64(offset+k)))
				idx := make([]int, len(x))
				for i := range idx {
					idx[i] = rng.Intn(len(x))
				}
				trees[k] = growTree(x, y, idx, cfg, rng)
			}
		}()
	}
	for k := 0; k < count; k++ {
		jobs <- k
	}
	close(jobs)
	wg.Wait()
	return trees
}

/*
Prediction implements the prediction model of a grown forest
*/
type Prediction struct {
	memo      memo
	predicted string
}

func (p *Prediction) Features() []string { return p.memo.Features }
func (p *Prediction) Predicted() string  { return p.predicted }

/*
Size returns the count of grown trees
*/
func (p *Prediction) Size() int { return len(p.memo.Trees) }

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
	for i, row := range x {
		r[i] = p.votes(row)[class] / float64(len(p.memo.Trees))
	}
	return r
}

func (p *Prediction) predict(x [][]float64) []float64 {
	r := make([]float64, len(x))
	for i, row := range x {
		r[i] = float64(fu.Indmaxd(p.votes(row)))
	}
	return r
}

func (p *Prediction) votes(row []float64) []float64 {
	votes := make([]float64, p.memo.Classes)
	for _, t := range p.memo.Trees {
		votes[t.classify(row)]++
	}
	return votes
}

func classLabels(v []float64) []int {
	y := make([]int, len(v))
	for i, f := range v {
		y[i] = int(f + 0.5)
	}
	return y
}

func isqrt(n int) int {
	return fu.Maxi(int(math.Sqrt(float64(n))), 1)
}

/*
Objectify reads a grown forest back from a model file
*/
func Objectify(path string, predicted ...string) (*Prediction, error) {
	mm, err := model.Objectify(path)
	if err != nil {
		return nil, err
	}
	m, ok := mm[mnemonic].(memo)
	if !ok {
		return nil, zorros.Errorf("model file `%v` does not keep a random forest", path)
	}
	return &Prediction{memo: m, predicted: fu.Fnzs(append(predicted, "")[0], model.DefaultPredicted)}, nil
}
