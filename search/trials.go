package search

import (
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/xerrors"

	"go-ml.dev/pkg/photoz/model"
)

/*
Trials is a sqlite-backed log of grid search evaluations, it allows to
query the best candidate of a study after the search is done
*/
type Trials struct {
	db *sql.DB
}

const trialsSchema = `
create table if not exists trials (
	id      integer primary key autoincrement,
	study   text not null,
	params  text not null,
	score   real not null
);
create index if not exists trials_study on trials (study, score);
`

/*
OpenTrials opens or creates a trial log database
*/
func OpenTrials(path string) (*Trials, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, xerrors.Errorf("failed to open trials database: %w", err)
	}
	if _, err = db.Exec(trialsSchema); err != nil {
		_ = db.Close()
		return nil, xerrors.Errorf("failed to init trials database: %w", err)
	}
	return &Trials{db}, nil
}

/*
Add appends one evaluated candidate to the study
*/
func (t *Trials) Add(study string, params model.Params, score float64) error {
	bs, err := json.Marshal(params)
	if err != nil {
		return xerrors.Errorf("failed to encode params: %w", err)
	}
	if _, err = t.db.Exec(
		"insert into trials (study, params, score) values (?, ?, ?)",
		study, string(bs), score); err != nil {
		return xerrors.Errorf("failed to log trial: %w", err)
	}
	return nil
}

/*
Best returns the best scored candidate of the study
*/
func (t *Trials) Best(study string) (params model.Params, score float64, err error) {
	var bs string
	err = t.db.QueryRow(
		"select params, score from trials where study = ? order by score desc limit 1",
		study).Scan(&bs, &score)
	if err != nil {
		return nil, 0, xerrors.Errorf("failed to query study `%v`: %w", study, err)
	}
	if err = json.Unmarshal([]byte(bs), &params); err != nil {
		return nil, 0, xerrors.Errorf("failed to decode params: %w", err)
	}
	return
}

/*
Count returns the number of logged trials of the study
*/
func (t *Trials) Count(study string) (n int, err error) {
	err = t.db.QueryRow("select count(*) from trials where study = ?", study).Scan(&n)
	if err != nil {
		return 0, xerrors.Errorf("failed to count trials: %w", err)
	}
	return
}

/*
Close closes the underlying database
*/
func (t *Trials) Close() error {
	return t.db.Close()
}
