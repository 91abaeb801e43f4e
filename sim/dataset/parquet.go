package dataset

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"

	"github.com/literise/placement-sim/sim"
)

// ParquetSink writes the table as a single-row-group Parquet file. The file
// is encoded fully in memory and flushed once.
type ParquetSink struct{}

// ArrowSchema returns the Arrow schema of the column contract. Table
// metadata travels as schema key/value metadata.
func ArrowSchema(meta Metadata) *arrow.Schema {
	fields := make([]arrow.Field, len(Columns))
	for i, name := range Columns {
		var typ arrow.DataType
		switch {
		case i == 0 || i >= 12:
			typ = arrow.BinaryTypes.String
		case i == 11:
			typ = arrow.PrimitiveTypes.Int64
		default:
			typ = arrow.PrimitiveTypes.Float64
		}
		fields[i] = arrow.Field{Name: name, Type: typ}
	}
	md := arrow.NewMetadata(
		[]string{"run_id", "collection_date", "version", "source_tag"},
		[]string{meta.RunID, meta.CollectionDate, meta.Version, meta.SourceTag},
	)
	return arrow.NewSchema(fields, &md)
}

// Write implements Sink.
func (s *ParquetSink) Write(ctx context.Context, path string, t *Table) error {
	rec, err := buildArrowRecord(ctx, t)
	if err != nil {
		return err
	}
	defer rec.Release()

	var buf bytes.Buffer
	w, err := pqarrow.NewFileWriter(rec.Schema(), &buf, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("creating parquet writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return fmt.Errorf("writing parquet record: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing parquet writer: %w", err)
	}

	return writeAtomic(path, func(tmpPath string) error {
		if err := os.WriteFile(tmpPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing parquet file: %w", err)
		}
		return nil
	})
}

func buildArrowRecord(ctx context.Context, t *Table) (arrow.Record, error) {
	b := array.NewRecordBuilder(memory.NewGoAllocator(), ArrowSchema(t.Meta))
	defer b.Release()

	str := func(i int) *array.StringBuilder { return b.Field(i).(*array.StringBuilder) }
	flt := func(i int) *array.Float64Builder { return b.Field(i).(*array.Float64Builder) }

	for i := range t.Rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		r := &t.Rows[i]
		f := &r.Features
		str(0).Append(r.StudentID)
		flt(1).Append(f.EstimatedTheta)
		flt(2).Append(f.OverallAccuracy)
		for c := 0; c < sim.NumCategories; c++ {
			flt(3 + c).Append(f.CategoryAccuracy[c])
		}
		flt(7).Append(f.CategoryConsistency)
		flt(8).Append(f.AvgResponseTime)
		flt(9).Append(f.ResponseTimeStd)
		flt(10).Append(f.PerformanceTrend)
		b.Field(11).(*array.Int64Builder).Append(int64(f.QuestionsAnswered))
		str(12).Append(r.Placement.String())
		str(13).Append(r.Source)
		str(14).Append(r.CollectionDate)
		str(15).Append(r.Version)
	}
	return b.NewRecord(), nil
}
