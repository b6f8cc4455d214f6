package model

import (
	"math"

	"go-ml.dev/pkg/photoz/fu"
)

// subset markers used by Metrics.New
const (
	TrainSubset = "train"
	TestSubset  = "test"
)

/*
Metrics factory produces per-iteration per-subset updaters
*/
type Metrics interface {
	// New returns an updater collecting metrics of one evaluation pass
	New(iteration int, subset string) MetricsUpdater
	// Names lists the fields of the metrics line, to type empty history
	Names() []string
}

/*
MetricsUpdater accumulates samples of one evaluation pass
*/
type MetricsUpdater interface {
	// Update accumulates one sample as predicted vs label value
	Update(predicted, label float64)
	// Complete returns the metrics line and whether the metrics goal is reached
	Complete() (fu.Struct, bool)
}

/*
Score maps train/test metrics lines to a single comparable value, the
bigger the better
*/
type Score func(train, test fu.Struct) float64

/*
Loss of a metrics line
*/
func Loss(m fu.Struct) float64 { return m.Float("loss", math.NaN()) }

/*
Error of a metrics line
*/
func Error(m fu.Struct) float64 { return m.Float("error", math.NaN()) }

/*
ErrorScore scores a training iteration by the test error
*/
func ErrorScore(train, test fu.Struct) float64 { return 1 - Error(test) }

/*
LossScore scores a training iteration by the test loss
*/
func LossScore(train, test fu.Struct) float64 { return -Loss(test) }

/*
EvaluateMetrics runs one evaluation pass over predicted/label pairs
*/
func EvaluateMetrics(mu MetricsUpdater, predicted, label []float64) (fu.Struct, bool) {
	for i := range predicted {
		mu.Update(predicted[i], label[i])
	}
	return mu.Complete()
}
