// Package similarity computes bounded similarity scores and per-metric
// gaps between a learner vector and a reference benchmark.
package similarity

import (
	"math"
	"sort"

	"github.com/okian/mentorpath/internal/domain/model"
)

// Default scoring configuration constants.
const (
	defaultMetricWeight = 1.0
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithDefaultWeight sets the weight used for metrics missing from the
// caller-supplied weight map.
func WithDefaultWeight(w float64) Option {
	return func(s *Scorer) {
		if w > 0 {
			s.defaultWeight = w
		}
	}
}

// Result bundles the outcome of one scoring pass.
type Result struct {
	// Similarity is in [0,1]; 1 means every compared metric matches.
	Similarity float64
	// Gaps holds one entry per metric seen on either side, in metric
	// name order. Entries for metrics present on only one side carry
	// Comparable=false and do not affect Similarity.
	Gaps []model.GapEntry
	// Compared is the number of metrics present in both vectors.
	Compared int
	// Clamped is the number of input values corrected into [0,1].
	Clamped int
}

// Scorer computes weighted similarity between two metric vectors.
// Pure and deterministic: identical inputs always yield identical
// output, and the similarity value is symmetric in its arguments.
type Scorer struct {
	defaultWeight float64
}

// New creates a Scorer with configuration options.
func New(opts ...Option) *Scorer {
	s := &Scorer{defaultWeight: defaultMetricWeight}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score compares learner against reference. Only metrics present in
// both vectors participate in the similarity average; each is weighted
// by weights[m] (default weight when unspecified) and the average is
// normalized by the sum of weights actually used, so omissions do not
// bias the result. Inputs are clamped into [0,1] defensively.
func (s *Scorer) Score(learner, reference model.MetricVector, weights map[string]float64) Result {
	learner, lc := learner.Clamp()
	reference, rc := reference.Clamp()

	names := metricUnion(learner, reference)

	gaps := make([]model.GapEntry, 0, len(names))
	weightedSum := 0.0
	weightUsed := 0.0
	compared := 0

	for _, name := range names {
		lv, inLearner := learner[name]
		rv, inReference := reference[name]

		if !inLearner || !inReference {
			// No comparison available: excluded from the score,
			// surfaced so callers can see the one-sided metric.
			gaps = append(gaps, model.GapEntry{
				Metric:         name,
				LearnerValue:   lv,
				ReferenceValue: rv,
				Priority:       model.PriorityLow,
				Comparable:     false,
			})
			continue
		}

		gap := rv - lv
		gaps = append(gaps, model.GapEntry{
			Metric:         name,
			LearnerValue:   lv,
			ReferenceValue: rv,
			Gap:            gap,
			Priority:       model.PriorityForGap(gap),
			Comparable:     true,
		})

		w := s.defaultWeight
		if ww, ok := weights[name]; ok && ww > 0 {
			w = ww
		}
		weightedSum += (1 - math.Abs(gap)) * w
		weightUsed += w
		compared++
	}

	similarity := 0.0
	if weightUsed > 0 {
		similarity = weightedSum / weightUsed
	}

	return Result{
		Similarity: similarity,
		Gaps:       gaps,
		Compared:   compared,
		Clamped:    lc + rc,
	}
}

// metricUnion returns the sorted union of metric names from both sides.
// Sorting keeps the emitted gap list deterministic across runs.
func metricUnion(a, b model.MetricVector) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for name := range a {
		seen[name] = struct{}{}
	}
	for name := range b {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
