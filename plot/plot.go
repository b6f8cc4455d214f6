/*
Package plot renders PNG diagnostics of trained models with
gonum.org/v1/plot.

Every function writes one image and returns the first rendering error.
*/
package plot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"go-ml.dev/pkg/photoz/fu"
	"go-ml.dev/pkg/photoz/metrics"
	"go-ml.dev/pkg/photoz/tables"
	"go-ml.dev/pkg/zorros"
)

var (
	truthColor  = color.RGBA{R: 120, G: 120, B: 120, A: 180}
	modelColor  = color.RGBA{R: 20, G: 80, B: 200, A: 220}
	trainColor  = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	cvColor     = color.RGBA{R: 20, G: 80, B: 200, A: 255}
	chanceColor = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

/*
Scatter writes a predicted versus true scatter with the identity line,
the standard regression diagnostic
*/
func Scatter(t *tables.Table, label, predicted, path string) error {
	truth := t.Floats(label)
	pred := t.Floats(predicted)

	xys := make(plotter.XYs, len(truth))
	for i := range truth {
		xys[i].X, xys[i].Y = truth[i], pred[i]
	}

	p := plot.New()
	p.Title.Text = "predicted vs true"
	p.X.Label.Text = label
	p.Y.Label.Text = predicted

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return zorros.Trace(err)
	}
	sc.GlyphStyle.Color = modelColor
	sc.GlyphStyle.Radius = vg.Points(1.8)
	p.Add(sc)

	lo := math.Min(fu.Mind(truth), fu.Mind(pred))
	hi := math.Max(fu.Maxd(truth), fu.Maxd(pred))
	ident, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return zorros.Trace(err)
	}
	ident.Color = truthColor
	ident.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(ident)
	p.Legend.Add("identity", ident)
	p.Add(plotter.NewGrid())

	return save(p, path)
}

/*
ValidationCurve writes train and cross-validation score against one
hyper-parameter of a grid search curve
*/
func ValidationCurve(curve *tables.Table, param, path string) error {
	x := curve.Floats(param)
	train := curve.Floats("train_score")
	cv := curve.Floats("cv_score")

	p := plot.New()
	p.Title.Text = "validation curve"
	p.X.Label.Text = param
	p.Y.Label.Text = "score"

	for _, c := range []struct {
		name string
		y    []float64
		col  color.RGBA
	}{{"train", train, trainColor}, {"cv", cv, cvColor}} {
		xys := make(plotter.XYs, len(x))
		for i := range x {
			xys[i].X, xys[i].Y = x[i], c.y[i]
		}
		line, pts, err := plotter.NewLinePoints(xys)
		if err != nil {
			return zorros.Trace(err)
		}
		line.Color = c.col
		pts.GlyphStyle.Color = c.col
		pts.GlyphStyle.Radius = vg.Points(2.2)
		p.Add(line, pts)
		p.Legend.Add(c.name, line, pts)
	}
	p.Add(plotter.NewGrid())

	return save(p, path)
}

/*
ROCCurve writes a receiver operating characteristic curve with the
chance diagonal, the area under the curve goes to the title
*/
func ROCCurve(points []metrics.ROCPoint, path string) error {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X, xys[i].Y = pt.FPR, pt.TPR
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("ROC curve (AUC %.4f)", metrics.AUC(points))
	p.X.Label.Text = "false positive rate"
	p.Y.Label.Text = "true positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	line, err := plotter.NewLine(xys)
	if err != nil {
		return zorros.Trace(err)
	}
	line.Color = cvColor
	line.Width = vg.Points(1.4)
	p.Add(line)
	p.Legend.Add("model", line)

	chance, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return zorros.Trace(err)
	}
	chance.Color = chanceColor
	chance.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(chance)
	p.Legend.Add("chance", chance)
	p.Add(plotter.NewGrid())

	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return zorros.Trace(err)
	}
	return nil
}
