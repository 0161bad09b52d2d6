// Package refine reduces forced-alignment label sequences: adjacent segments
// of the same phonetic group are merged across small gaps, and silence is
// collapsed into a single SP segment.
package refine

import (
	"github.com/maastricht-university/labrefine/label"
	"github.com/maastricht-university/labrefine/phoneme"
)

// DefaultMaxGap is the merge threshold in seconds.
const DefaultMaxGap = 0.1

// Merger is safe for concurrent use; it holds no per-call state.
type Merger struct {
	Table  *phoneme.Table // nil means phoneme.Default()
	MaxGap float64        // sec
}

func NewMerger(table *phoneme.Table, maxGap float64) *Merger {
	return &Merger{Table: table, MaxGap: maxGap}
}

// Merge runs the default table over segs.
func Merge(segs []label.Segment, maxGapSeconds float64) []label.Segment {
	return NewMerger(nil, maxGapSeconds).Merge(segs)
}

// Merge returns a new, possibly shorter list; segs is not modified.
func (m *Merger) Merge(segs []label.Segment) []label.Segment {
	return collapseSilence(m.mergeAdjacent(segs))
}

func (m *Merger) table() *phoneme.Table {
	if m.Table == nil {
		return phoneme.Default()
	}
	return m.Table
}

// mergeAdjacent folds each segment into the running one while the pair is
// mergeable. The running group is fixed by its first segment.
func (m *Merger) mergeAdjacent(segs []label.Segment) []label.Segment {
	if len(segs) == 0 {
		return []label.Segment{}
	}
	tbl := m.table()
	out := make([]label.Segment, 0, len(segs))

	cur := segs[0]
	curGroup := tbl.Classify(cur.Phoneme)
	flush := func() {
		if curGroup == phoneme.Silence {
			cur.Phoneme = label.SilenceToken
		}
		out = append(out, cur)
	}

	for _, next := range segs[1:] {
		nextGroup := tbl.Classify(next.Phoneme)
		if ShouldMerge(cur, next, curGroup, nextGroup, m.MaxGap) {
			cur.End = next.End
			if curGroup == phoneme.Silence && nextGroup == phoneme.Silence {
				cur.Phoneme = label.SilenceToken
			}
			continue
		}
		flush()
		cur, curGroup = next, nextGroup
	}
	flush()
	return out
}

// collapseSilence joins runs of consecutive SP segments regardless of gap.
// It does not reach across a non-SP segment.
func collapseSilence(segs []label.Segment) []label.Segment {
	out := make([]label.Segment, 0, len(segs))
	for i := 0; i < len(segs); {
		cur := segs[i]
		i++
		if cur.Phoneme == label.SilenceToken {
			for i < len(segs) && segs[i].Phoneme == label.SilenceToken {
				cur.End = segs[i].End
				i++
			}
		}
		out = append(out, cur)
	}
	return out
}
