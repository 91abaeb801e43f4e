package dataset

import (
	"fmt"
	"io"
	"sort"

	"github.com/literise/placement-sim/sim"
)

// Summary aggregates row counts of a Table.
type Summary struct {
	TotalRows     int
	Students      int
	FullRows      int
	TruncatedRows int
	ByPlacement   map[sim.PlacementLabel]int
	BySource      map[string]int
	ByQuestions   map[int]int
	MeanAccuracy  float64
}

// Summarize computes aggregate statistics. Safe for nil or empty tables.
func Summarize(t *Table) *Summary {
	s := &Summary{
		ByPlacement: make(map[sim.PlacementLabel]int),
		BySource:    make(map[string]int),
		ByQuestions: make(map[int]int),
	}
	if t == nil || len(t.Rows) == 0 {
		return s
	}

	students := make(map[string]struct{})
	total := 0.0
	for i := range t.Rows {
		r := &t.Rows[i]
		students[r.StudentID] = struct{}{}
		s.ByPlacement[r.Placement]++
		s.BySource[r.Source]++
		s.ByQuestions[r.Features.QuestionsAnswered]++
		if r.IsFull() {
			s.FullRows++
		} else {
			s.TruncatedRows++
		}
		total += r.Features.OverallAccuracy
	}
	s.TotalRows = len(t.Rows)
	s.Students = len(students)
	s.MeanAccuracy = total / float64(s.TotalRows)
	return s
}

// MissingPlacements lists labels with no rows, in ascending order.
func (s *Summary) MissingPlacements() []sim.PlacementLabel {
	var out []sim.PlacementLabel
	for _, p := range sim.AllPlacements() {
		if s.ByPlacement[p] == 0 {
			out = append(out, p)
		}
	}
	return out
}

// Print writes a human-readable report to w.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Total rows:             %d\n", s.TotalRows)
	fmt.Fprintf(w, "Students:               %d\n", s.Students)
	fmt.Fprintf(w, "Full-length rows:       %d\n", s.FullRows)
	fmt.Fprintf(w, "Early stopping rows:    %d\n", s.TruncatedRows)
	fmt.Fprintf(w, "Mean overall accuracy:  %.4f\n", s.MeanAccuracy)

	fmt.Fprintln(w, "\nPlacement distribution:")
	for _, p := range sim.AllPlacements() {
		fmt.Fprintf(w, "  %-14s %d\n", p, s.ByPlacement[p])
	}

	fmt.Fprintln(w, "\nQuestions answered:")
	qs := make([]int, 0, len(s.ByQuestions))
	for q := range s.ByQuestions {
		qs = append(qs, q)
	}
	sort.Ints(qs)
	for _, q := range qs {
		fmt.Fprintf(w, "  %-14d %d\n", q, s.ByQuestions[q])
	}

	fmt.Fprintln(w, "\nSources:")
	srcs := make([]string, 0, len(s.BySource))
	for src := range s.BySource {
		srcs = append(srcs, src)
	}
	sort.Strings(srcs)
	for _, src := range srcs {
		fmt.Fprintf(w, "  %-14s %d\n", src, s.BySource[src])
	}
}
