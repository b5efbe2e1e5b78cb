// Package progress recomputes milestone completion against generated
// plans. The only stateful concern in the core, so updates return new
// records instead of mutating inputs; serialization per owner is the
// store's job via the record Version.
package progress

import (
	"fmt"
	"sort"

	"github.com/okian/mentorpath/internal/domain/model"
)

// NewRecord creates an empty progress record for a plan. Records are
// created on first update, never implicitly. Version starts at zero so
// the first MarkComplete yields version one, which a store can write
// with compare-and-swap against "record absent".
func NewRecord(learnerID, pathID string, totalSteps int) model.TransferProgressRecord {
	return model.TransferProgressRecord{
		LearnerID:  learnerID,
		PathID:     pathID,
		Completed:  []int{},
		TotalSteps: totalSteps,
		Version:    0,
	}
}

// MarkComplete returns a copy of rec with stepIndex added to the
// completed set and the completion percentage recomputed. Marking an
// already-completed step is a no-op on the percentage but still bumps
// the version so a compare-and-swap write stays well defined.
// stepIndex is zero-based and must be < TotalSteps.
func MarkComplete(rec model.TransferProgressRecord, stepIndex int) (model.TransferProgressRecord, error) {
	if stepIndex < 0 || stepIndex >= rec.TotalSteps {
		return model.TransferProgressRecord{}, fmt.Errorf("%w: step %d of %d", ErrOutOfRange, stepIndex, rec.TotalSteps)
	}

	set := rec.CompletedSet()
	set[stepIndex] = struct{}{}

	completed := make([]int, 0, len(set))
	for s := range set {
		completed = append(completed, s)
	}
	sort.Ints(completed)

	out := rec
	out.Completed = completed
	out.CompletionPct = model.RoundPct(len(completed), rec.TotalSteps)
	out.Version = rec.Version + 1
	return out, nil
}
