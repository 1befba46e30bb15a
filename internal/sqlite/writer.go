// Package sqlite persists annotated identification entries to a SQLite
// database, one run per invocation, so downstream analyses can query results
// without re-parsing text reports.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mzentrap/mzentrap/internal/efdr"
)

const createdAtFormat = time.RFC3339

// Writer handles writing estimation runs to a SQLite database file.
type Writer struct {
	db   *sql.DB
	path string
}

// RunInfo describes one estimation run for the runs table.
type RunInfo struct {
	Ratio       float64
	ReportPath  string
	LibraryPath string
	Tool        string
}

// NewWriter opens (or creates) the database and ensures the schema exists.
func NewWriter(path string) (*Writer, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	w := &Writer{db: db, path: path}
	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		RunId INTEGER PRIMARY KEY AUTOINCREMENT,
		CreatedAt TEXT,
		Ratio DOUBLE,
		ReportPath TEXT,
		LibraryPath TEXT,
		Tool TEXT
	);

	CREATE TABLE IF NOT EXISTS entries (
		EntryId INTEGER PRIMARY KEY AUTOINCREMENT,
		RunId INTEGER REFERENCES runs(RunId),
		Sequence TEXT,
		Charge INTEGER,
		Score DOUBLE,
		Decoy INTEGER,
		FileId TEXT,
		ChannelId INTEGER,
		ProteinId TEXT,
		IsOriginal INTEGER,
		PairId INTEGER,
		ComplementScore DOUBLE,
		LocalQValue DOUBLE,
		GlobalQValue DOUBLE,
		CombinedEFDR DOUBLE,
		PairedEFDR DOUBLE
	);

	CREATE INDEX IF NOT EXISTS idx_entries_run ON entries(RunId);
	CREATE INDEX IF NOT EXISTS idx_entries_file ON entries(RunId, FileId);
	`
	if _, err := w.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// WriteRun inserts one run and all of its entries in a single transaction.
func (w *Writer) WriteRun(info RunInfo, entries []efdr.Entry) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("%s: %w", w.path, err)
	}
	res, err := tx.Exec(
		`INSERT INTO runs (CreatedAt, Ratio, ReportPath, LibraryPath, Tool) VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(createdAtFormat), info.Ratio, info.ReportPath, info.LibraryPath, info.Tool,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("%s: insert run: %w", w.path, err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO entries (
		RunId, Sequence, Charge, Score, Decoy, FileId, ChannelId, ProteinId,
		IsOriginal, PairId, ComplementScore,
		LocalQValue, GlobalQValue, CombinedEFDR, PairedEFDR
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("%s: prepare entry insert: %w", w.path, err)
	}
	defer stmt.Close()

	for i := range entries {
		e := &entries[i]
		_, err := stmt.Exec(
			runID, e.Sequence, e.Charge, e.Score, e.Decoy, e.FileID, e.ChannelID, e.ProteinID,
			e.Original, e.PairID, e.ComplementScore,
			e.LocalQValue, e.GlobalQValue, e.CombinedEFDR, e.PairedEFDR,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("%s: insert entry %d: %w", w.path, i, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (w *Writer) Close() error {
	return w.db.Close()
}
