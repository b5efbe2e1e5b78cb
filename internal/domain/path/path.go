// Package path synthesizes ordered, time-estimated learning plans from
// per-metric gaps.
package path

import (
	"math"
	"sort"
	"strings"

	"github.com/okian/mentorpath/internal/domain/model"
)

// Default path synthesis configuration constants.
const (
	defaultMaxPhases        = 5
	defaultDurationConstant = 10.0
	minPhaseWeeks           = 1
)

// Practice frequency hints by high-priority phase count.
const (
	hintMaintain  = "maintain current performance"
	hintLight     = "2-3 sessions per week"
	hintDaily     = "daily, 20-30 minutes"
	hintIntensive = "daily, 30-45 minutes"
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithMaxPhases sets the default phase cap used when a caller passes a
// non-positive limit.
func WithMaxPhases(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxPhases = n
		}
	}
}

// WithDurationConstant sets the weeks-per-unit-gap scalar.
func WithDurationConstant(c float64) Option {
	return func(g *Generator) {
		if c > 0 {
			g.durationConstant = c
		}
	}
}

// Generator turns gap lists into phased plans. Pure and deterministic;
// safe for concurrent use.
type Generator struct {
	maxPhases        int
	durationConstant float64
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		maxPhases:        defaultMaxPhases,
		durationConstant: defaultDurationConstant,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a plan from gaps. Gaps are stably sorted by priority
// tier then magnitude descending, so equal entries preserve catalog
// order; the top maxPhases positive, comparable gaps become sequential
// phases. A learner practices one focus area at a time, so TotalWeeks
// is the sum of phase estimates, not the max.
func (g *Generator) Generate(gaps []model.GapEntry, maxPhases int) model.LearningPath {
	if maxPhases <= 0 {
		maxPhases = g.maxPhases
	}

	actionable := make([]model.GapEntry, 0, len(gaps))
	for _, gap := range gaps {
		// Exceeding the reference or lacking data implies no
		// corrective phase.
		if gap.Comparable && gap.Gap > 0 {
			actionable = append(actionable, gap)
		}
	}

	sort.SliceStable(actionable, func(i, j int) bool {
		pi, pj := priorityRank(actionable[i].Priority), priorityRank(actionable[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return actionable[i].Gap > actionable[j].Gap
	})

	if len(actionable) > maxPhases {
		actionable = actionable[:maxPhases]
	}

	phases := make([]model.LearningPhase, 0, len(actionable))
	totalWeeks := 0
	highCount := 0
	for i, gap := range actionable {
		weeks := g.EstimateWeeks(gap.Gap)
		totalWeeks += weeks
		if gap.Priority == model.PriorityHigh {
			highCount++
		}
		phases = append(phases, model.LearningPhase{
			Step:           i + 1,
			FocusArea:      FocusArea(gap.Metric),
			CurrentLevel:   gap.LearnerValue,
			TargetLevel:    gap.ReferenceValue,
			EstimatedWeeks: weeks,
			Priority:       gap.Priority,
		})
	}

	if len(phases) == 0 {
		return model.LearningPath{
			Phases:                []model.LearningPhase{},
			TotalWeeks:            0,
			PracticeFrequencyHint: hintLight,
			KeyFocus:              hintMaintain,
		}
	}

	return model.LearningPath{
		Phases:                phases,
		TotalWeeks:            totalWeeks,
		PracticeFrequencyHint: frequencyHint(highCount),
		KeyFocus:              phases[0].FocusArea,
	}
}

// EstimateWeeks converts a gap magnitude into a week estimate with a
// one-week floor. Shared with the cross-domain mapper so both engines
// follow one time-estimation convention.
func (g *Generator) EstimateWeeks(gap float64) int {
	weeks := int(math.Ceil(gap * g.durationConstant))
	if weeks < minPhaseWeeks {
		weeks = minPhaseWeeks
	}
	return weeks
}

// FocusArea renders a metric key as a human-readable focus label,
// e.g. "eye_contact" -> "Eye Contact".
func FocusArea(metric string) string {
	words := strings.Split(metric, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func frequencyHint(highCount int) string {
	switch {
	case highCount >= 2:
		return hintIntensive
	case highCount == 1:
		return hintDaily
	default:
		return hintLight
	}
}

func priorityRank(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 0
	case model.PriorityMedium:
		return 1
	default:
		return 2
	}
}
