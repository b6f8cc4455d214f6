package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"go-ml.dev/pkg/photoz/metrics"
)

// confusionGrid adapts a confusion matrix to the plotter.GridXYZ
// interface, rows grow upward so the first class ends on top.
type confusionGrid struct {
	c *metrics.Confusion
}

func (g confusionGrid) Dims() (int, int) {
	n := g.c.Classes()
	return n, n
}

func (g confusionGrid) Z(col, row int) float64 {
	return float64(g.c.At(g.c.Classes()-1-row, col))
}

func (g confusionGrid) X(col int) float64 { return float64(col) }
func (g confusionGrid) Y(row int) float64 { return float64(row) }

var _ plotter.GridXYZ = confusionGrid{}

/*
ConfusionMatrix writes a confusion matrix heat map, true classes run
over rows and predicted classes over columns; labels name the classes
in the matrix order
*/
func ConfusionMatrix(c *metrics.Confusion, labels []string, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("confusion matrix (accuracy %.4f)", c.Accuracy())
	p.X.Label.Text = "predicted"
	p.Y.Label.Text = "true"

	p.Add(plotter.NewHeatMap(confusionGrid{c}, palette.Heat(16, 1)))

	n := c.Classes()
	xticks := make([]plot.Tick, 0, n)
	yticks := make([]plot.Tick, 0, n)
	for i := 0; i < n && i < len(labels); i++ {
		xticks = append(xticks, plot.Tick{Value: float64(i), Label: labels[i]})
		yticks = append(yticks, plot.Tick{Value: float64(n - 1 - i), Label: labels[i]})
	}
	p.X.Tick.Marker = plot.ConstantTicks(xticks)
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)

	return save(p, path)
}
