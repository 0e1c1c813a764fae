package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/cutil"
	"github.com/fwojciec/cutil/fs"
	"github.com/fwojciec/cutil/sqlite"
)

const resultsSchema = `
CREATE TABLE IF NOT EXISTS results (
	id INTEGER PRIMARY KEY,
	url TEXT NOT NULL UNIQUE,
	fetched_at TEXT NOT NULL,
	result TEXT NOT NULL
)`

// storeResults upserts results into the results table of the database at
// path, keyed by URL.
func storeResults(deps *Dependencies, path string, results []getResult) error {
	path, err := fs.CreatePath(path, false)
	if err != nil {
		return err
	}

	db := sqlite.NewDB(path)
	if deps.Logger != nil {
		db.Logger = deps.Logger
	}
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(deps.Ctx, resultsSchema); err != nil {
		return fmt.Errorf("failed to create results table: %w", err)
	}

	now := cutil.FormatTime(time.Now())
	rows := make([]sqlite.Row, 0, len(results))
	for _, r := range results {
		b, err := json.Marshal(r.Result)
		if err != nil {
			return fmt.Errorf("failed to encode result for %s: %w", r.URL, err)
		}
		rows = append(rows, sqlite.Row{"url": r.URL, "fetched_at": now, "result": string(b)})
	}

	stored, err := db.Upsert(deps.Ctx, "results", rows, sqlite.UpsertOptions{
		ConflictFields: []string{"url"},
		ReturnCols:     []string{"id"},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stderr, "stored %d results in %s\n", len(stored), path)
	return nil
}
