package dataset

import (
	"testing"

	"go-ml.dev/pkg/photoz/tables"
	"gotest.tools/assert"
)

func Test_Describe(t *testing.T) {
	q := tables.MakeTable([]string{"z"}, tables.Col([]float64{4, 2, 1, 3}))
	s := Describe(q, "z")
	assert.Assert(t, s.Mean == 2.5)
	assert.Assert(t, s.Min == 1 && s.Max == 4)
	assert.Assert(t, s.Q25 == 1)
	assert.Assert(t, s.Median == 2)
	assert.Assert(t, s.Q75 == 3)
}

func Test_DescribeEmpty(t *testing.T) {
	s := Describe(tables.NewEmpty([]string{"z"}), "z")
	assert.Assert(t, s == Summary{})
}
