package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CSVSink writes the table as a header-having comma-separated file.
// Floats use the shortest representation that round-trips ('f', -1), so
// identical tables always serialize to identical bytes.
type CSVSink struct{}

// Write implements Sink.
func (s *CSVSink) Write(ctx context.Context, path string, t *Table) error {
	return writeAtomic(path, func(tmpPath string) error {
		file, err := os.Create(tmpPath)
		if err != nil {
			return fmt.Errorf("creating csv file: %w", err)
		}
		defer func() { _ = file.Close() }()

		buf := bufio.NewWriter(file)
		if err := WriteCSV(ctx, buf, t); err != nil {
			return err
		}
		if err := buf.Flush(); err != nil {
			return fmt.Errorf("flushing csv: %w", err)
		}
		if err := file.Sync(); err != nil {
			return fmt.Errorf("syncing csv: %w", err)
		}
		return file.Close()
	})
}

// WriteCSV encodes t to w.
func WriteCSV(ctx context.Context, w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i := range t.Rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := writer.Write(encodeRow(&t.Rows[i])); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}

func encodeRow(r *Record) []string {
	f := &r.Features
	return []string{
		r.StudentID,
		formatFloat(f.EstimatedTheta),
		formatFloat(f.OverallAccuracy),
		formatFloat(f.CategoryAccuracy[0]),
		formatFloat(f.CategoryAccuracy[1]),
		formatFloat(f.CategoryAccuracy[2]),
		formatFloat(f.CategoryAccuracy[3]),
		formatFloat(f.CategoryConsistency),
		formatFloat(f.AvgResponseTime),
		formatFloat(f.ResponseTimeStd),
		formatFloat(f.PerformanceTrend),
		strconv.Itoa(f.QuestionsAnswered),
		r.Placement.String(),
		r.Source,
		r.CollectionDate,
		r.Version,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
