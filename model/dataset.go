package model

import (
	"go-ml.dev/pkg/photoz/tables"
	"go-ml.dev/pkg/zorros"
)

/*
Dataset is an abstraction of some source of a data to feed hungry models
*/
type Dataset struct {
	Source   *tables.Table // the catalog snapshot to train on
	Label    string        // name of float field containing label to train
	Test     string        // name of boolean field to select test data
	Features []string      // feature names to train model or predict
}

/*
Verify checks the dataset is trainable: source and label exist, every
feature column exists, the test column if named is present
*/
func (ds Dataset) Verify() error {
	if ds.Source == nil || ds.Source.Len() == 0 {
		return zorros.Errorf("dataset has no source data")
	}
	if !ds.Source.Has(ds.Label) {
		return zorros.Errorf("dataset does not have label column `%v`", ds.Label)
	}
	for _, f := range ds.Features {
		if !ds.Source.Has(f) {
			return zorros.Errorf("dataset does not have feature column `%v`", f)
		}
	}
	if ds.Test != "" && !ds.Source.Has(ds.Test) {
		return zorros.Errorf("dataset does not have test column `%v`", ds.Test)
	}
	return nil
}

/*
TrainTable returns the rows not selected by the test column; the whole
source when no test column is named
*/
func (ds Dataset) TrainTable() *tables.Table {
	if ds.Test == "" {
		return ds.Source
	}
	c := ds.Source.Col(ds.Test)
	return ds.Source.Filter(func(i int) bool { return !c.Bool(i) })
}

/*
TestTable returns the rows selected by the test column; nil when no
test column is named
*/
func (ds Dataset) TestTable() *tables.Table {
	if ds.Test == "" {
		return nil
	}
	c := ds.Source.Col(ds.Test)
	return ds.Source.Filter(func(i int) bool { return c.Bool(i) })
}

/*
Matrices gathers the feature matrix and label vector of a subset table
*/
func Matrices(t *tables.Table, features []string, label string) ([][]float64, []float64) {
	if t == nil || t.Len() == 0 {
		return nil, nil
	}
	return t.Matrix(features), t.Floats(label)
}
