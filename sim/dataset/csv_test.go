package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/literise/placement-sim/sim"
	"github.com/literise/placement-sim/sim/internal/testutil"
)

func TestWriteCSV_HeaderAndRowCount(t *testing.T) {
	table := generatedTable(t, 10)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(context.Background(), &buf, table))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+table.Len())
	assert.Equal(t, strings.Join(Columns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "STU_00000,"))
	assert.True(t, strings.HasSuffix(lines[1], ",IRT,2026-03-01,1.0"), lines[1])
}

func TestCSVSink_ByteIdenticalAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")
	sink := &CSVSink{}
	require.NoError(t, sink.Write(context.Background(), a, generatedTable(t, 25)))
	require.NoError(t, sink.Write(context.Background(), b, generatedTable(t, 25)))

	da, err := os.ReadFile(a)
	require.NoError(t, err)
	db, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestCSVSink_RoundTrip(t *testing.T) {
	table := generatedTable(t, 15)
	path := testutil.OutputPath(t, "nested/dir/training_data.csv")
	require.NoError(t, (&CSVSink{}).Write(context.Background(), path, table))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, table.Rows, got.Rows)
	assert.Equal(t, table.Meta.CollectionDate, got.Meta.CollectionDate)
	assert.Equal(t, table.Meta.Version, got.Meta.Version)
}

func TestCSVSink_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, (&CSVSink{}).Write(context.Background(), path, generatedTable(t, 3)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.csv", entries[0].Name())
}

func TestCSVSink_FailureLeavesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := (&CSVSink{}).Write(ctx, path, generatedTable(t, 3))
	require.ErrorIs(t, err, context.Canceled)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDecodeCSV_RejectsWrongHeader(t *testing.T) {
	header := append([]string{}, Columns...)
	header[2] = "accuracy"
	_, err := DecodeCSV(strings.NewReader(strings.Join(header, ",") + "\n"))
	assert.ErrorContains(t, err, "accuracy")
}

func TestDecodeCSV_ReportsBadFields(t *testing.T) {
	row := []string{"STU_00000", "x", "0.5", "0.5", "0.5", "0.5", "0.5", "1", "20", "3", "0", "28", "Grade 9", "IRT", "2026-03-01", "1.0"}
	input := strings.Join(Columns, ",") + "\n" + strings.Join(row, ",") + "\n"
	_, err := DecodeCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "estimated_theta")
	assert.Contains(t, err.Error(), "Grade 9")
}

func TestDecodeCSV_AssignsStudentIndexByFirstAppearance(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(context.Background(), &buf, generatedTable(t, 4)))
	table, err := DecodeCSV(&buf)
	require.NoError(t, err)
	for _, r := range table.Rows {
		assert.Equal(t, sim.StudentID("STU", r.StudentIndex), r.StudentID)
	}
}
