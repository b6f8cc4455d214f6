/*
Package linear implements ordinary least squares regression over
selected catalog features, fit by QR decomposition.
*/
package linear

import (
	"encoding/gob"

	"go-ml.dev/pkg/photoz/fu"
	"go-ml.dev/pkg/photoz/model"
	"go-ml.dev/pkg/photoz/tables"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

const mnemonic = "linear"

func init() {
	gob.Register(memo{})
}

/*
Model is an ordinary least squares regression
*/
type Model struct {
	Predicted string // name of the predicted column, model.DefaultPredicted if empty
}

type memo struct {
	Features []string
	Theta    []float64 // intercept first, then one weight per feature
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
		theta, err := fit(xt, yt)
		if err != nil {
			return nil, err
		}
		p := &Prediction{
			features:  ds.Features,
			predicted: fu.Fnzs(e.Predicted, model.DefaultPredicted),
			theta:     theta,
		}
		train, _ := model.EvaluateMetrics(w.TrainMetrics(), p.predict(xt), yt)
		xv, yv := model.Matrices(ds.TestTable(), ds.Features, ds.Label)
		test, _ := model.EvaluateMetrics(w.TestMetrics(), p.predict(xv), yv)
		report, _, err := w.Complete(model.MemorizeMap{mnemonic: memo{ds.Features, theta}}, train, test, true)
		return report, err
	}
}

// fit solves the least squares problem for a design matrix with an
// intercept column of ones.
func fit(x [][]float64, y []float64) ([]float64, error) {
	n, p := len(x), 0
	if n == 0 {
		return nil, zorros.Errorf("no rows to fit regression on")
	}
	p = len(x[0])
	if n < p+1 {
		return nil, zorros.Errorf("%v rows is not enough to fit %v coefficients", n, p+1)
	}
	a := mat.NewDense(n, p+1, nil)
	b := mat.NewDense(n, 1, nil)
	for i, row := range x {
		a.Set(i, 0, 1)
		for j, v := range row {
			a.Set(i, j+1, v)
		}
		b.Set(i, 0, y[i])
	}
	var qr mat.QR
	qr.Factorize(a)
	var theta mat.Dense
	if err := qr.SolveTo(&theta, false, b); err != nil {
		return nil, zorros.Wrapf(err, "least squares solve failed: %v", err.Error())
	}
	r := make([]float64, p+1)
	for j := range r {
		r[j] = theta.At(j, 0)
	}
	return r, nil
}

/*
Prediction implements the prediction models of a fitted regression
*/
type Prediction struct {
	features  []string
	predicted string
	theta     []float64
}

func (p *Prediction) Features() []string { return p.features }
func (p *Prediction) Predicted() string  { return p.predicted }

/*
Intercept of the fitted regression
*/
func (p *Prediction) Intercept() float64 { return p.theta[0] }

/*
Coefficients of the fitted regression, one per feature
*/
func (p *Prediction) Coefficients() []float64 { return p.theta[1:] }

/*
Predict returns the table with the predicted column appended
*/
func (p *Prediction) Predict(t *tables.Table) *tables.Table {
	return t.With(tables.Col(p.predict(t.Matrix(p.features))), p.predicted)
}

func (p *Prediction) predict(x [][]float64) []float64 {
	r := make([]float64, len(x))
	for i, row := range x {
		v := p.theta[0]
		for j, f := range row {
			v += p.theta[j+1] * f
		}
		r[i] = v
	}
	return r
}

/*
Objectify reads a fitted regression back from a model file
*/
func Objectify(path string, predicted ...string) (*Prediction, error) {
	mm, err := model.Objectify(path)
	if err != nil {
		return nil, err
	}
	m, ok := mm[mnemonic].(memo)
	if !ok {
		return nil, zorros.Errorf("model file `%v` does not keep a linear regression", path)
	}
	return &Prediction{
		features:  m.Features,
		predicted: fu.Fnzs(append(predicted, "")[0], model.DefaultPredicted),
		theta:     m.Theta,
	}, nil
}
