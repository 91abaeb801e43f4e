package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned when two rows share (student_id, questions_answered).
	ErrDuplicateKey = errors.New("duplicate row key")
	// ErrFinalized is returned when appending to a finalized builder.
	ErrFinalized = errors.New("builder already finalized")
)

// Metadata is attached to every row and to sink-level headers.
type Metadata struct {
	CollectionDate string `yaml:"collection_date"`
	Version        string `yaml:"version"`
	SourceTag      string `yaml:"source_tag"`
	RunID          string `yaml:"run_id,omitempty"`
}

// Table is the finalized, immutable dataset.
type Table struct {
	Meta Metadata
	Rows []Record
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Builder accumulates rows into a single preallocated buffer and checks key
// uniqueness as rows arrive. A Builder is finalized exactly once.
type Builder struct {
	meta      Metadata
	rows      []Record
	seen      map[Key]struct{}
	finalized bool
}

// NewBuilder returns a builder with room for capacity rows.
func NewBuilder(meta Metadata, capacity int) *Builder {
	if capacity < 0 {
		capacity = 0
	}
	return &Builder{
		meta: meta,
		rows: make([]Record, 0, capacity),
		seen: make(map[Key]struct{}, capacity),
	}
}

// Append adds r, stamping the table's collection date and version on it.
func (b *Builder) Append(r Record) error {
	if b.finalized {
		return ErrFinalized
	}
	k := r.Key()
	if _, dup := b.seen[k]; dup {
		return fmt.Errorf("%w: student_id=%s questions_answered=%d", ErrDuplicateKey, k.StudentID, k.QuestionsAnswered)
	}
	b.seen[k] = struct{}{}
	r.CollectionDate = b.meta.CollectionDate
	r.Version = b.meta.Version
	b.rows = append(b.rows, r)
	return nil
}

// Len returns the number of rows appended so far.
func (b *Builder) Len() int {
	return len(b.rows)
}

// Finalize hands the buffer over to an immutable Table.
func (b *Builder) Finalize() (*Table, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	b.finalized = true
	t := &Table{Meta: b.meta, Rows: b.rows}
	b.rows = nil
	b.seen = nil
	return t, nil
}
