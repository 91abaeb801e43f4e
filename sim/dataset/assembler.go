package dataset

import (
	"fmt"
	"sort"

	"github.com/literise/placement-sim/sim"
)

// SplitRecords converts administrations into full-length and truncated
// records. Collection date and version are filled in by the Builder.
func SplitRecords(adms []sim.Administration, sourceTag string) (full, truncated []Record) {
	full = make([]Record, 0, len(adms))
	n := 0
	for i := range adms {
		n += len(adms[i].Variants)
	}
	truncated = make([]Record, 0, n)

	for i := range adms {
		a := &adms[i]
		full = append(full, Record{
			StudentID:    a.Student.ID,
			StudentIndex: a.Student.Index,
			Features:     a.Full,
			Placement:    a.Label,
			Source:       SourceFor(sourceTag, sim.ProvenanceFull),
		})
		for _, v := range a.Variants {
			truncated = append(truncated, Record{
				StudentID:    a.Student.ID,
				StudentIndex: a.Student.Index,
				Features:     v.Features,
				Placement:    a.Label,
				Source:       SourceFor(sourceTag, v.Provenance),
			})
		}
	}
	return full, truncated
}

// Assemble concatenates full-length records (by student) followed by
// truncated records grouped by parent student in ascending question count,
// and finalizes them into a Table. Duplicate keys fail the assembly.
func Assemble(full, truncated []Record, meta Metadata) (*Table, error) {
	full = sortedCopy(full)
	truncated = sortedCopy(truncated)

	b := NewBuilder(meta, len(full)+len(truncated))
	for _, part := range [][]Record{full, truncated} {
		for _, r := range part {
			if err := b.Append(r); err != nil {
				return nil, fmt.Errorf("assembling dataset: %w", err)
			}
		}
	}
	return b.Finalize()
}

// Build is SplitRecords followed by Assemble.
func Build(adms []sim.Administration, meta Metadata) (*Table, error) {
	full, truncated := SplitRecords(adms, meta.SourceTag)
	return Assemble(full, truncated, meta)
}

func sortedCopy(rs []Record) []Record {
	out := make([]Record, len(rs))
	copy(out, rs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StudentIndex != out[j].StudentIndex {
			return out[i].StudentIndex < out[j].StudentIndex
		}
		return out[i].Features.QuestionsAnswered < out[j].Features.QuestionsAnswered
	})
	return out
}
