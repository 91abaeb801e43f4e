// Package dataset assembles generated administrations into the flat
// training table and persists it.
//
// The column contract (Columns) is the only interface the downstream
// classifier trainer relies on; every sink writes exactly these columns in
// this order.
package dataset

import (
	"github.com/literise/placement-sim/sim"
)

// SchemaVersion is written to the version column unless overridden.
const SchemaVersion = "1.0"

// Output columns, in order.
var Columns = []string{
	"student_id",
	"estimated_theta",
	"overall_accuracy",
	"oral_language_acc",
	"word_knowledge_acc",
	"reading_comp_acc",
	"language_struct_acc",
	"category_consistency",
	"avg_response_time",
	"response_time_std",
	"performance_trend",
	"questions_answered",
	"placement",
	"source",
	"collection_date",
	"version",
}

// FeatureColumns are the model inputs, i.e. the columns a trainer feeds to
// the network. placement is the target.
var FeatureColumns = Columns[1:12]

// Record is one row of the output table.
type Record struct {
	StudentID      string
	StudentIndex   int
	Features       sim.FeatureVector
	Placement      sim.PlacementLabel
	Source         string
	CollectionDate string
	Version        string
}

// Key identifies a row; (student_id, questions_answered) is unique per table.
type Key struct {
	StudentID         string
	QuestionsAnswered int
}

// Key returns the row key.
func (r *Record) Key() Key {
	return Key{StudentID: r.StudentID, QuestionsAnswered: r.Features.QuestionsAnswered}
}

// IsFull reports whether the row describes a complete administration.
func (r *Record) IsFull() bool {
	return r.Features.QuestionsAnswered == sim.NumItems
}

// SourceFor renders the provenance string written to the source column:
// the tag itself for full administrations, tag + "_Early" for truncations.
func SourceFor(tag string, p sim.Provenance) string {
	if p == sim.ProvenanceEarlyStop {
		return tag + "_Early"
	}
	return tag
}
