/*
Package metrics implements evaluation metrics for the photoz estimators:
regression quality of redshift predictions and multi-class classification
quality with confusion matrices and one-vs-rest ROC curves.
*/
package metrics

import (
	"math"

	"go-ml.dev/pkg/photoz/fu"
	"go-ml.dev/pkg/photoz/model"
)

// DefaultOutlierDz is the |Δz|/(1+z) threshold of a catastrophic
// redshift outlier.
const DefaultOutlierDz = 0.15

/*
Regression metrics of redshift estimation.

The metrics line carries mse as loss and the catastrophic-outlier rate
as error, beside rmse, mae and r2.
*/
type Regression struct {
	OutlierDz float64 // catastrophic outlier threshold, DefaultOutlierDz if 0
}

type regressionUpdater struct {
	iteration int
	subset    string
	outlierDz float64
	n         int
	ssRes     float64 // sum of squared residuals
	sumAbs    float64 // sum of absolute residuals
	sumY      float64
	sumY2     float64
	outliers  int
}

func (m Regression) Names() []string {
	return []string{"iteration", "test", "loss", "error", "rmse", "mae", "r2"}
}

func (m Regression) New(iteration int, subset string) model.MetricsUpdater {
	return &regressionUpdater{
		iteration: iteration,
		subset:    subset,
		outlierDz: fu.Fnzd(m.OutlierDz, DefaultOutlierDz),
	}
}

func (u *regressionUpdater) Update(predicted, label float64) {
	d := predicted - label
	u.n++
	u.ssRes += d * d
	u.sumAbs += math.Abs(d)
	u.sumY += label
	u.sumY2 += label * label
	if math.Abs(d)/(1+label) > u.outlierDz {
		u.outliers++
	}
}

func (u *regressionUpdater) Complete() (fu.Struct, bool) {
	names := Regression{}.Names()
	if u.n == 0 {
		return fu.MakeStruct(names, float64(u.iteration), subsetFlag(u.subset), 0, 0, 0, 0, 0), false
	}
	n := float64(u.n)
	mse := u.ssRes / n
	mean := u.sumY / n
	ssTot := u.sumY2 - n*mean*mean
	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - u.ssRes/ssTot
	}
	return fu.MakeStruct(names,
		float64(u.iteration),
		subsetFlag(u.subset),
		mse,
		float64(u.outliers)/n,
		math.Sqrt(mse),
		u.sumAbs/n,
		r2), false
}

func subsetFlag(subset string) float64 {
	if subset == model.TestSubset {
		return 1
	}
	return 0
}
