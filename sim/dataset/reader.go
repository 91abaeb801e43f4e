package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/literise/placement-sim/sim"
)

// ReadCSV loads a table previously written by CSVSink. The header must match
// Columns exactly. StudentIndex is assigned in order of first appearance.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer func() { _ = file.Close() }()
	return DecodeCSV(file)
}

// DecodeCSV parses a table from r.
func DecodeCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Columns)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	for i, col := range Columns {
		if header[i] != col {
			return nil, fmt.Errorf("CSV column %d: got %q, want %q", i, header[i], col)
		}
	}

	t := &Table{}
	indices := make(map[string]int)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}
		rec, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		idx, ok := indices[rec.StudentID]
		if !ok {
			idx = len(indices)
			indices[rec.StudentID] = idx
		}
		rec.StudentIndex = idx
		t.Rows = append(t.Rows, rec)
	}
	if len(t.Rows) > 0 {
		t.Meta.CollectionDate = t.Rows[0].CollectionDate
		t.Meta.Version = t.Rows[0].Version
		t.Meta.SourceTag = t.Rows[0].Source
	}
	return t, nil
}

func decodeRow(row []string) (Record, error) {
	var (
		rec  Record
		errs []error
	)
	float := func(col int) float64 {
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", Columns[col], err))
		}
		return v
	}

	rec.StudentID = row[0]
	f := &rec.Features
	f.EstimatedTheta = float(1)
	f.OverallAccuracy = float(2)
	for c := 0; c < sim.NumCategories; c++ {
		f.CategoryAccuracy[c] = float(3 + c)
	}
	f.CategoryConsistency = float(7)
	f.AvgResponseTime = float(8)
	f.ResponseTimeStd = float(9)
	f.PerformanceTrend = float(10)

	q, err := strconv.Atoi(row[11])
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", Columns[11], err))
	}
	f.QuestionsAnswered = q

	label, err := sim.ParsePlacement(row[12])
	if err != nil {
		errs = append(errs, err)
	}
	rec.Placement = label
	rec.Source = row[13]
	rec.CollectionDate = row[14]
	rec.Version = row[15]

	return rec, errors.Join(errs...)
}
