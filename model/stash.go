package model

import (
	"encoding/gob"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/photoz/fu"
	"go-ml.dev/pkg/zorros"
)

/*
MemorizeMap maps mnemonics to model memos placed into a model file
*/
type MemorizeMap map[string]interface{}

/*
Memorize writes the memo map into an output as a gob stream
*/
func Memorize(output iokit.Output, m MemorizeMap) error {
	wh, err := output.Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	if err = gob.NewEncoder(wh).Encode(m); err != nil {
		return zorros.Wrapf(err, "failed to encode model memo: %v", err.Error())
	}
	if err = wh.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

/*
Objectify reads a gob model file back into a memo map; memo types must
be gob-registered by the packages that wrote them
*/
func Objectify(path string) (MemorizeMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer f.Close()
	m := MemorizeMap{}
	if err = gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, zorros.Wrapf(err, "failed to decode model memo: %v", err.Error())
	}
	return m, nil
}

/*
ModelStash keeps the few most recent per-iteration model snapshots on
disk, so the best one can be copied into the final model file when
training stops
*/
type ModelStash struct {
	length int
	dir    string
	files  map[int]string
}

/*
NewStash creates a stash keeping up to length snapshots named by pattern
*/
func NewStash(length int, pattern string) *ModelStash {
	dir, err := ioutil.TempDir("", pattern)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return &ModelStash{length: fu.Maxi(length, 1), dir: dir, files: map[int]string{}}
}

/*
Output returns the snapshot output for an iteration, evicting the
oldest snapshot beyond the stash length
*/
func (s *ModelStash) Output(iteration int) (iokit.Output, error) {
	if old, ok := s.files[iteration-s.length]; ok {
		if err := os.Remove(old); err != nil {
			return nil, zorros.Trace(err)
		}
		delete(s.files, iteration-s.length)
	}
	path := filepath.Join(s.dir, "iteration-"+strconv.Itoa(iteration))
	s.files[iteration] = path
	return iokit.File(path), nil
}

/*
Reader opens the snapshot of an iteration
*/
func (s *ModelStash) Reader(iteration int) (io.ReadCloser, error) {
	path, ok := s.files[iteration]
	if !ok {
		return nil, zorros.Errorf("stash does not keep iteration %v", iteration)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	return f, nil
}

/*
Close removes all stashed snapshots
*/
func (s *ModelStash) Close() error {
	return os.RemoveAll(s.dir)
}
