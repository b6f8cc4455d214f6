package dataset

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"go-ml.dev/pkg/photoz/tables"
)

/*
Summary holds the distribution of one float column
*/
type Summary struct {
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

func (s Summary) String() string {
	return fmt.Sprintf("mean %.4f, std %.4f, min %.4f, q25 %.4f, median %.4f, q75 %.4f, max %.4f",
		s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max)
}

/*
Describe summarizes the named float column of a catalog.
*/
func Describe(t *tables.Table, name string) Summary {
	v := append([]float64(nil), t.Floats(name)...)
	if len(v) == 0 {
		return Summary{}
	}
	sort.Float64s(v)
	return Summary{
		Mean:   stat.Mean(v, nil),
		Std:    stat.StdDev(v, nil),
		Min:    v[0],
		Q25:    stat.Quantile(0.25, stat.Empirical, v, nil),
		Median: stat.Quantile(0.5, stat.Empirical, v, nil),
		Q75:    stat.Quantile(0.75, stat.Empirical, v, nil),
		Max:    v[len(v)-1],
	}
}
