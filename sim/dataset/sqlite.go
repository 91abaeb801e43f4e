package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

const recordsSchema = `
CREATE TABLE records (
	student_id           TEXT    NOT NULL,
	estimated_theta      REAL    NOT NULL,
	overall_accuracy     REAL    NOT NULL,
	oral_language_acc    REAL    NOT NULL,
	word_knowledge_acc   REAL    NOT NULL,
	reading_comp_acc     REAL    NOT NULL,
	language_struct_acc  REAL    NOT NULL,
	category_consistency REAL    NOT NULL,
	avg_response_time    REAL    NOT NULL,
	response_time_std    REAL    NOT NULL,
	performance_trend    REAL    NOT NULL,
	questions_answered   INTEGER NOT NULL,
	placement            TEXT    NOT NULL,
	source               TEXT    NOT NULL,
	collection_date      TEXT    NOT NULL,
	version              TEXT    NOT NULL,
	PRIMARY KEY (student_id, questions_answered)
);
CREATE TABLE run_metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLiteSink writes the table into a fresh SQLite database with a records
// table (the column contract, keyed by student_id + questions_answered) and
// a run_metadata key/value table.
type SQLiteSink struct{}

// Write implements Sink.
func (s *SQLiteSink) Write(ctx context.Context, path string, t *Table) error {
	return writeAtomic(path, func(tmpPath string) error {
		db, err := sql.Open("sqlite", tmpPath)
		if err != nil {
			return fmt.Errorf("opening sqlite: %w", err)
		}
		db.SetMaxOpenConns(1)

		if err := populateSQLite(ctx, db, t); err != nil {
			_ = db.Close()
			return err
		}
		if err := db.Close(); err != nil {
			return fmt.Errorf("closing sqlite: %w", err)
		}
		return nil
	})
}

func populateSQLite(ctx context.Context, db *sql.DB, t *Table) error {
	if _, err := db.ExecContext(ctx, recordsSchema); err != nil {
		return fmt.Errorf("creating sqlite schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning sqlite transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insert := fmt.Sprintf("INSERT INTO records (%s) VALUES (%s)",
		strings.Join(Columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(Columns)), ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range t.Rows {
		r := &t.Rows[i]
		f := &r.Features
		if _, err := stmt.ExecContext(ctx,
			r.StudentID,
			f.EstimatedTheta,
			f.OverallAccuracy,
			f.CategoryAccuracy[0],
			f.CategoryAccuracy[1],
			f.CategoryAccuracy[2],
			f.CategoryAccuracy[3],
			f.CategoryConsistency,
			f.AvgResponseTime,
			f.ResponseTimeStd,
			f.PerformanceTrend,
			f.QuestionsAnswered,
			r.Placement.String(),
			r.Source,
			r.CollectionDate,
			r.Version,
		); err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	meta := [][2]string{
		{"collection_date", t.Meta.CollectionDate},
		{"version", t.Meta.Version},
		{"source_tag", t.Meta.SourceTag},
		{"run_id", t.Meta.RunID},
		{"row_count", fmt.Sprint(len(t.Rows))},
	}
	for _, kv := range meta {
		if _, err := tx.ExecContext(ctx, "INSERT INTO run_metadata (key, value) VALUES (?, ?)", kv[0], kv[1]); err != nil {
			return fmt.Errorf("inserting run metadata %s: %w", kv[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sqlite transaction: %w", err)
	}
	return nil
}
