package dataset

import (
	"errors"
	"fmt"

	"github.com/literise/placement-sim/sim"
)

// maxReportedViolations caps the errors returned by Validate.
const maxReportedViolations = 20

// ValidateOptions describes what a well-formed table looks like.
type ValidateOptions struct {
	// EarlyStopCounts are the allowed truncated question counts; 28 is always allowed.
	EarlyStopCounts []int
	// MinResponseTime is the response-time floor; mean response times below it are invalid.
	MinResponseTime float64
}

// Validate checks the table's row invariants: accuracies and consistency in
// [0,1], question counts drawn from the allowed set, unique row keys, one
// full-length row per student, and response times at or above the floor.
// It returns nil or the joined violations.
func Validate(t *Table, opts ValidateOptions) error {
	allowed := map[int]bool{sim.NumItems: true}
	for _, q := range opts.EarlyStopCounts {
		allowed[q] = true
	}

	var errs []error
	report := func(format string, args ...any) {
		if len(errs) < maxReportedViolations {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	seen := make(map[Key]bool, len(t.Rows))
	fullRows := make(map[string]int)
	for i := range t.Rows {
		r := &t.Rows[i]
		f := &r.Features
		k := r.Key()
		if seen[k] {
			report("row %d: %v: student_id=%s questions_answered=%d", i, ErrDuplicateKey, k.StudentID, k.QuestionsAnswered)
		}
		seen[k] = true

		if !allowed[f.QuestionsAnswered] {
			report("row %d: questions_answered %d not allowed", i, f.QuestionsAnswered)
		}
		if r.IsFull() {
			fullRows[r.StudentID]++
		}
		if !inUnit(f.OverallAccuracy) {
			report("row %d: overall_accuracy %v outside [0,1]", i, f.OverallAccuracy)
		}
		for c, acc := range f.CategoryAccuracy {
			if !inUnit(acc) {
				report("row %d: %s %v outside [0,1]", i, Columns[3+c], acc)
			}
		}
		if !inUnit(f.CategoryConsistency) {
			report("row %d: category_consistency %v outside [0,1]", i, f.CategoryConsistency)
		}
		if f.AvgResponseTime < opts.MinResponseTime {
			report("row %d: avg_response_time %v below floor %v", i, f.AvgResponseTime, opts.MinResponseTime)
		}
		if f.ResponseTimeStd < 0 {
			report("row %d: negative response_time_std %v", i, f.ResponseTimeStd)
		}
	}
	for i := range t.Rows {
		id := t.Rows[i].StudentID
		if n := fullRows[id]; n != 1 {
			report("student %s: %d full-length rows, want 1", id, n)
			fullRows[id] = 1 // report each student once
		}
	}
	return errors.Join(errs...)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
