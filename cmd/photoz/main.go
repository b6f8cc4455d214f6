/*
Command photoz trains photometric redshift and classification models on
an SDSS-like catalog and writes diagnostic plots.

	photoz -data catalog.csv.xz -out ./out regress
	photoz -data catalog.csv.xz -out ./out knn
	photoz -data catalog.csv.xz -out ./out forest
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros/zlog"

	"go-ml.dev/pkg/photoz/dataset"
	"go-ml.dev/pkg/photoz/forest"
	"go-ml.dev/pkg/photoz/knn"
	"go-ml.dev/pkg/photoz/linear"
	"go-ml.dev/pkg/photoz/metrics"
	"go-ml.dev/pkg/photoz/model"
	"go-ml.dev/pkg/photoz/plot"
	"go-ml.dev/pkg/photoz/search"
	"go-ml.dev/pkg/photoz/tables"
)

var (
	dataFlag  = flag.String("data", "", "catalog csv file, .xz accepted")
	outFlag   = flag.String("out", "out", "output directory")
	ratioFlag = flag.Float64("testratio", 0.2, "test subset ratio")
	seedFlag  = flag.Int("seed", 42, "random seed of splits and forests")
	kfoldFlag = flag.Int("kfold", 5, "cross-validation folds")
	itersFlag = flag.Int("iterations", 10, "forest training iterations")
)

func main() {
	flag.Parse()
	if *dataFlag == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: photoz -data <catalog> [flags] regress|knn|forest")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(task string) error {
	if err := os.MkdirAll(*outFlag, 0755); err != nil {
		return err
	}
	t, rep, err := dataset.LoadCSV(*dataFlag)
	if err != nil {
		return err
	}
	zlog.Info(fmt.Sprintf("loaded %v rows (%v bad magnitude, %v bad color, %v malformed)",
		rep.Rows, rep.BadMagnitude, rep.BadColor, rep.Malformed))

	switch task {
	case "regress":
		return regress(t)
	case "knn":
		return classify(t, "knn")
	case "forest":
		return classify(t, "forest")
	}
	return fmt.Errorf("unknown task `%v`", task)
}

func out(name string) string { return filepath.Join(*outFlag, name) }

func regress(t *tables.Table) error {
	zlog.Info(fmt.Sprintf("redshift: %v", dataset.Describe(t, dataset.Redshift)))
	t = dataset.SplitTrainTest(t, *ratioFlag, *seedFlag)
	ds := model.Dataset{
		Source:   t,
		Label:    dataset.Redshift,
		Test:     dataset.Test,
		Features: dataset.Features(),
	}
	modelFile := out("linear.model")
	report, err := linear.Model{}.Feed(ds).Train(model.Training{
		Metrics:   metrics.Regression{OutlierDz: dataset.CatastrophicDz},
		Score:     model.ErrorScore,
		ModelFile: iokit.File(modelFile),
	})
	if err != nil {
		return err
	}
	zlog.Info(fmt.Sprintf("linear: rmse %.5f, outlier rate %.5f",
		report.Test.Float("rmse", 0), model.Error(report.Test)))

	p, err := linear.Objectify(modelFile)
	if err != nil {
		return err
	}
	test := p.Predict(ds.TestTable())
	return plot.Scatter(test, dataset.Redshift, p.Predicted(), out("regress.png"))
}

func classify(t *tables.Table, kind string) error {
	t, err := dataset.WithClassLabel(t)
	if err != nil {
		return err
	}
	trials, err := search.OpenTrials(out("trials.db"))
	if err != nil {
		return err
	}
	defer trials.Close()

	space := search.Space{
		Source:   t,
		Features: dataset.Features(),
		Label:    dataset.Label,
		Seed:     *seedFlag,
		Kfold:    *kfoldFlag,
		Metrics:  metrics.Classification{Classes: len(dataset.Classes)},
		Score:    model.ErrorScore,
		Trials:   trials,
		Study:    kind,
	}
	var param string
	switch kind {
	case "knn":
		param = "k"
		space.Grid = search.Grid{"k": {1, 3, 5, 9, 15, 25}}
		space.ModelFunc = func(p model.Params) model.HungryModel {
			return knn.Model{
				K:       int(p.Get("k", 5)),
				Kind:    knn.Classifier,
				Classes: len(dataset.Classes),
			}
		}
	case "forest":
		param = "depth"
		space.Iterations = *itersFlag
		space.Grid = search.Grid{"depth": {4, 8, 12, 16}}
		space.ModelFunc = func(p model.Params) model.HungryModel {
			return forest.Model{
				MaxDepth: int(p.Get("depth", 8)),
				Classes:  len(dataset.Classes),
				Seed:     int64(*seedFlag),
			}
		}
	}

	report := space.LuckyGridSearchCV()
	zlog.Info(fmt.Sprintf("%v: best %v with cv score %.5f", kind, report.Params, report.Score))
	if err = plot.ValidationCurve(report.Curve, param, out(kind+"_validation.png")); err != nil {
		return err
	}

	// refit the best candidate on a train/test split for final diagnostics
	t = dataset.SplitTrainTest(t, *ratioFlag, *seedFlag)
	ds := model.Dataset{
		Source:   t,
		Label:    dataset.Label,
		Test:     dataset.Test,
		Features: dataset.Features(),
	}
	modelFile := out(kind + ".model")
	if _, err = space.ModelFunc(report.Params).Feed(ds).Train(model.Training{
		Iterations: space.Iterations,
		Metrics:    space.Metrics,
		Score:      space.Score,
		ModelFile:  iokit.File(modelFile),
	}); err != nil {
		return err
	}

	var p interface {
		Predict(*tables.Table) *tables.Table
		Proba(*tables.Table, int) []float64
		Predicted() string
	}
	if kind == "knn" {
		p, err = knn.Objectify(modelFile)
	} else {
		p, err = forest.Objectify(modelFile)
	}
	if err != nil {
		return err
	}

	test := p.Predict(ds.TestTable())
	confusion := metrics.ConfusionOf(len(dataset.Classes),
		test.Floats(p.Predicted()), test.Floats(dataset.Label))
	if err = plot.ConfusionMatrix(confusion, dataset.Classes, out(kind+"_confusion.png")); err != nil {
		return err
	}

	// one-vs-rest ROC of the rarest class
	qso := dataset.ClassIndex("qso")
	scores := p.Proba(test, qso)
	label := test.Floats(dataset.Label)
	positive := make([]bool, len(label))
	for i, v := range label {
		positive[i] = int(v+0.5) == qso
	}
	return plot.ROCCurve(metrics.ROC(scores, positive), out(kind+"_roc.png"))
}
