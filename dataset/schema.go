/*
Package dataset loads photometric catalogs from fixed-schema CSV files
into in-memory tables and prepares them for training: bad-row filtering,
color synthesis, class label encoding, train/test and k-fold splits.
*/
package dataset

import "strings"

// SentinelMagnitude marks an unmeasured magnitude in the source catalogs.
const SentinelMagnitude = -9999

// Colors outside the open range (MinColor,MaxColor) are not physical
// and the row is discarded.
const (
	MinColor = -10
	MaxColor = 10
)

// CatastrophicDz is the |Δz|/(1+z) threshold above which a redshift
// estimate counts as a catastrophic outlier.
const CatastrophicDz = 0.15

const (
	ObjID    = "objid"
	Redshift = "redshift"
	Class    = "class"
	Label    = "label"
	Test     = "test"
)

// Magnitudes are the five photometric bands of the input schema.
var Magnitudes = []string{"u", "g", "r", "i", "z"}

// Colors are the adjacent-band differences used as model features.
var Colors = []string{"u-g", "g-r", "r-i", "i-z"}

// Classes enumerates the categorical target labels; the slice index is
// the numeric label value models are trained on.
var Classes = []string{"galaxy", "star", "qso"}

/*
Features returns the model feature column names
*/
func Features() []string {
	return append([]string{}, Colors...)
}

/*
ClassIndex maps a class label to its numeric value, -1 if unknown
*/
func ClassIndex(label string) int {
	label = strings.ToLower(strings.TrimSpace(label))
	for i, c := range Classes {
		if c == label {
			return i
		}
	}
	return -1
}
