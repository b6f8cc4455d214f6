package dataset

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
	"gotest.tools/assert"
)

const catalogCSV = `objid,u,g,r,i,z,redshift,class
1,18.0,17.0,16.5,16.2,16.0,0.12,GALAXY
2,19.0,18.2,17.9,17.6,17.5,0.00,Star
3,-9999,18.0,17.0,16.0,15.0,0.30,galaxy
4,30.0,18.0,17.0,16.0,15.0,0.30,qso
5,18.5,17.5,17.0,16.8,16.6,oops,galaxy
6,18.1,17.2,16.8,16.4,16.1,1.85,qso
`

func writeCatalog(t *testing.T, name, text string) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "photoz-csv-*")
	assert.NilError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, name)
	assert.NilError(t, ioutil.WriteFile(path, []byte(text), 0644))
	return path
}

func Test_LoadCSV(t *testing.T) {
	q, rep, err := LoadCSV(writeCatalog(t, "catalog.csv", catalogCSV))
	assert.NilError(t, err)
	assert.Assert(t, rep.Rows == 3)
	assert.Assert(t, rep.BadMagnitude == 1) // sentinel u of row 3
	assert.Assert(t, rep.BadColor == 1)     // u-g = 12 of row 4
	assert.Assert(t, rep.Malformed == 1)    // unparsable redshift of row 5
	assert.Assert(t, q.Len() == 3)

	// colors are derived from adjacent magnitudes
	assert.Assert(t, q.Floats("u-g")[0] == 1.0)
	iz, zm := q.Floats("i")[0], q.Floats("z")[0]
	assert.Assert(t, q.Floats("i-z")[0] == iz-zm)
	// class labels are normalized to lower case
	assert.Assert(t, q.Col(Class).String(1) == "star")
	assert.Assert(t, q.Floats(Redshift)[2] == 1.85)
}

func Test_LoadCSVXz(t *testing.T) {
	dir, err := ioutil.TempDir("", "photoz-xz-*")
	assert.NilError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "catalog.csv.xz")
	f, err := os.Create(path)
	assert.NilError(t, err)
	w, err := xz.NewWriter(f)
	assert.NilError(t, err)
	_, err = w.Write([]byte(catalogCSV))
	assert.NilError(t, err)
	assert.NilError(t, w.Close())
	assert.NilError(t, f.Close())

	q, rep, err := LoadCSV(path)
	assert.NilError(t, err)
	assert.Assert(t, rep.Rows == 3)
	assert.Assert(t, q.Len() == 3)
}

func Test_LoadCSVMissingMagnitude(t *testing.T) {
	_, _, err := LoadCSV(writeCatalog(t, "bad.csv", "objid,u,g,r,i\n1,1,1,1,1\n"))
	assert.Assert(t, err != nil)
}

func Test_WithClassLabel(t *testing.T) {
	q, _, err := LoadCSV(writeCatalog(t, "catalog.csv", catalogCSV))
	assert.NilError(t, err)
	q, err = WithClassLabel(q)
	assert.NilError(t, err)
	assert.DeepEqual(t, q.Floats(Label), []float64{0, 1, 2})
}

func Test_SplitTrainTest(t *testing.T) {
	q, _, err := LoadCSV(writeCatalog(t, "catalog.csv", catalogCSV))
	assert.NilError(t, err)
	q = SplitTrainTest(q, 1.0/3, 1)
	held := 0
	for _, v := range q.Col(Test).Bools() {
		if v {
			held++
		}
	}
	assert.Assert(t, held == 1)
}

func Test_Folds(t *testing.T) {
	folds := Folds(10, 3, 1)
	assert.Assert(t, len(folds) == 10)
	count := map[int]int{}
	for _, f := range folds {
		assert.Assert(t, f >= 0 && f < 3)
		count[f]++
	}
	// sizes differ by at most one
	assert.Assert(t, count[0] >= 3 && count[0] <= 4)
	assert.Assert(t, count[1] >= 3 && count[1] <= 4)
	assert.Assert(t, count[2] >= 3 && count[2] <= 4)
	// same seed reproduces the same assignment
	assert.DeepEqual(t, folds, Folds(10, 3, 1))
}
