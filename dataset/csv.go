package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/photoz/tables"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
)

/*
LoadReport counts what the loader kept and what it dropped
*/
type LoadReport struct {
	Rows         int // rows kept
	BadMagnitude int // rows dropped for a sentinel magnitude
	BadColor     int // rows dropped for an out-of-range color
	Malformed    int // rows dropped as unparsable
}

/*
LoadCSV reads a photometric catalog into a table.

The header names columns; five magnitudes are required, colors are
derived when absent, redshift and class are optional. Files ending in
.xz are decompressed on the fly. Rows carrying a sentinel magnitude or
an out-of-range color are dropped and counted in the report.
*/
func LoadCSV(path string) (*tables.Table, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, zorros.Trace(err)
	}
	defer f.Close()
	var rd io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".xz") {
		if rd, err = xz.NewReader(rd); err != nil {
			return nil, LoadReport{}, zorros.Wrapf(err, "bad xz stream in %v: %v", path, err.Error())
		}
	}
	return load(rd)
}

func load(rd io.Reader) (*tables.Table, LoadReport, error) {
	r := csv.NewReader(rd)
	r.ReuseRecord = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, LoadReport{}, zorros.Wrapf(err, "failed to read csv header: %v", err.Error())
	}
	cx := columnIndex(header)
	for _, m := range Magnitudes {
		if _, ok := cx[m]; !ok {
			return nil, LoadReport{}, zorros.Errorf("csv header misses magnitude column `%v`", m)
		}
	}
	_, hasID := cx[ObjID]
	_, hasZ := cx[Redshift]
	_, hasClass := cx[Class]
	hasColors := true
	for _, c := range Colors {
		if _, ok := cx[c]; !ok {
			hasColors = false
		}
	}

	var (
		report LoadReport
		ids    []string
		klass  []string
		zspec  []float64
		mags   = make([][]float64, len(Magnitudes))
		colors = make([][]float64, len(Colors))
	)

rows:
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Malformed++
			continue
		}
		m := make([]float64, len(Magnitudes))
		for j, name := range Magnitudes {
			if m[j], err = strconv.ParseFloat(rec[cx[name]], 64); err != nil {
				report.Malformed++
				continue rows
			}
			if m[j] == SentinelMagnitude {
				report.BadMagnitude++
				continue rows
			}
		}
		c := make([]float64, len(Colors))
		for j := range Colors {
			if hasColors {
				if c[j], err = strconv.ParseFloat(rec[cx[Colors[j]]], 64); err != nil {
					report.Malformed++
					continue rows
				}
			} else {
				c[j] = m[j] - m[j+1]
			}
			if c[j] <= MinColor || c[j] >= MaxColor {
				report.BadColor++
				continue rows
			}
		}
		var z float64
		if hasZ {
			if z, err = strconv.ParseFloat(rec[cx[Redshift]], 64); err != nil {
				report.Malformed++
				continue rows
			}
		}
		if hasID {
			ids = append(ids, rec[cx[ObjID]])
		} else {
			ids = append(ids, strconv.Itoa(report.Rows))
		}
		if hasClass {
			klass = append(klass, strings.ToLower(strings.TrimSpace(rec[cx[Class]])))
		}
		if hasZ {
			zspec = append(zspec, z)
		}
		for j := range Magnitudes {
			mags[j] = append(mags[j], m[j])
		}
		for j := range Colors {
			colors[j] = append(colors[j], c[j])
		}
		report.Rows++
	}

	names := []string{ObjID}
	columns := []*tables.Column{tables.StrCol(ids)}
	for j, name := range Magnitudes {
		names, columns = append(names, name), append(columns, tables.Col(mags[j]))
	}
	for j, name := range Colors {
		names, columns = append(names, name), append(columns, tables.Col(colors[j]))
	}
	if hasZ {
		names, columns = append(names, Redshift), append(columns, tables.Col(zspec))
	}
	if hasClass {
		names, columns = append(names, Class), append(columns, tables.StrCol(klass))
	}

	if dropped := report.BadMagnitude + report.BadColor + report.Malformed; dropped > 0 {
		zlog.Warning(fmt.Sprintf("dropped %v of %v catalog rows (%v sentinel, %v color, %v malformed)",
			dropped, dropped+report.Rows, report.BadMagnitude, report.BadColor, report.Malformed))
	}
	return tables.MakeTable(names, columns...), report, nil
}

func columnIndex(header []string) map[string]int {
	cx := map[string]int{}
	for i, h := range header {
		cx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cx
}

/*
WithClassLabel appends the numeric label column encoding the class column
*/
func WithClassLabel(t *tables.Table) (*tables.Table, error) {
	c := t.Col(Class)
	if c == nil {
		return nil, zorros.Errorf("table does not have column `%v`", Class)
	}
	v := make([]float64, t.Len())
	for i := 0; i < t.Len(); i++ {
		k := ClassIndex(c.String(i))
		if k < 0 {
			return nil, zorros.Errorf("unknown class label `%v` in row %v", c.String(i), i)
		}
		v[i] = float64(k)
	}
	return t.With(tables.Col(v), Label), nil
}
