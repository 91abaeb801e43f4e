package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrUnknownFormat is returned by NewSink for unsupported formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Format names a table serialization.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatSQLite  Format = "sqlite"
	FormatParquet Format = "parquet"
)

// Sink persists a finalized table. Implementations replace the target
// atomically: on error the previous file at path (if any) is untouched.
type Sink interface {
	Write(ctx context.Context, path string, t *Table) error
}

var sinks = map[Format]func() Sink{
	FormatCSV:     func() Sink { return &CSVSink{} },
	FormatSQLite:  func() Sink { return &SQLiteSink{} },
	FormatParquet: func() Sink { return &ParquetSink{} },
}

// NewSink returns the sink for format.
func NewSink(format Format) (Sink, error) {
	ctor, ok := sinks[format]
	if !ok {
		return nil, fmt.Errorf("%w %q; valid: %v", ErrUnknownFormat, format, Formats())
	}
	return ctor(), nil
}

// Formats lists the supported formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(sinks))
	for f := range sinks {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// writeAtomic runs write against a temporary file next to path and renames
// it over path only if write succeeds. The temp file is removed on failure.
func writeAtomic(path string, write func(tmpPath string) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err = write(tmpPath); err != nil {
		return err
	}
	if err = os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("setting output permissions: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
