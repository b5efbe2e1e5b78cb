// Package transfer maps skill components across unrelated domains and
// estimates transfer effectiveness and ramp-up time.
package transfer

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/mentorpath/internal/domain/model"
)

// Default transfer configuration constants. The duration constant is
// shared with path synthesis so both engines follow one time convention.
const (
	defaultDurationConstant = 10.0
	minPhaseWeeks           = 1
	defaultComponentWeight  = 1.0
)

// Generic template used when no mapping matches the requested pair.
// Mid-strength on purpose: without curated evidence the estimate should
// be conservative.
const genericComponentStrength = 0.5

// Option applies a configuration option to the Mapper.
type Option func(*Mapper)

// WithDurationConstant sets the weeks-per-unit-inverse-strength scalar.
func WithDurationConstant(c float64) Option {
	return func(m *Mapper) {
		if c > 0 {
			m.durationConstant = c
		}
	}
}

// Mapper aggregates pre-authored component mappings into transfer
// plans. Pure over its inputs; safe for concurrent use.
type Mapper struct {
	durationConstant float64
}

// New creates a Mapper with configuration options.
func New(opts ...Option) *Mapper {
	m := &Mapper{durationConstant: defaultDurationConstant}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MapTransfer builds a plan for the (source, target) pair from the
// catalog. Effectiveness is the weighted average of component strengths
// (weights default to equal). Each component becomes one phase; higher
// strength means a shorter ramp-up, via ceil((1-strength) * constant)
// with a one-week floor. Principles are copied verbatim from the
// catalog, never generated. An unmatched pair falls back to the generic
// template with Generic=true rather than failing.
func (m *Mapper) MapTransfer(sourceSkill, targetSkill string, catalog []model.TransferMapping) model.TransferPlan {
	mapping, found := match(sourceSkill, targetSkill, catalog)
	if !found {
		mapping = genericMapping(sourceSkill, targetSkill)
	}

	phases := make([]model.LearningPhase, 0, len(mapping.Components))
	principles := make([]string, 0, len(mapping.Components))
	weightedStrength := 0.0
	weightUsed := 0.0
	totalWeeks := 0

	for i, comp := range mapping.Components {
		w := comp.Weight
		if w <= 0 {
			w = defaultComponentWeight
		}
		weightedStrength += comp.Strength * w
		weightUsed += w

		weeks := m.estimateWeeks(comp.Strength)
		totalWeeks += weeks

		// A strong mapping is an easy carry-over; a weak one needs
		// deliberate work.
		phases = append(phases, model.LearningPhase{
			Step:           i + 1,
			FocusArea:      fmt.Sprintf("%s → %s", comp.SourceComponent, comp.TargetComponent),
			CurrentLevel:   0,
			TargetLevel:    comp.Strength,
			EstimatedWeeks: weeks,
			Priority:       model.PriorityForGap(1 - comp.Strength),
		})
		if comp.Principle != "" {
			principles = append(principles, comp.Principle)
		}
	}

	effectiveness := 0.0
	if weightUsed > 0 {
		effectiveness = weightedStrength / weightUsed
	}

	return model.TransferPlan{
		SourceSkill:   sourceSkill,
		TargetSkill:   targetSkill,
		Effectiveness: effectiveness,
		TotalWeeks:    totalWeeks,
		Phases:        phases,
		Principles:    principles,
		Generic:       !found,
	}
}

func (m *Mapper) estimateWeeks(strength float64) int {
	weeks := int(math.Ceil((1 - strength) * m.durationConstant))
	if weeks < minPhaseWeeks {
		weeks = minPhaseWeeks
	}
	return weeks
}

func match(source, target string, catalog []model.TransferMapping) (model.TransferMapping, bool) {
	for _, entry := range catalog {
		if strings.EqualFold(entry.SourceSkill, source) && strings.EqualFold(entry.TargetSkill, target) {
			return entry, true
		}
	}
	return model.TransferMapping{}, false
}

// genericMapping is the fallback for pairs the catalog does not cover.
// The components name transferable fundamentals common to any pair of
// skills; curation should replace them with a real entry over time.
func genericMapping(source, target string) model.TransferMapping {
	return model.TransferMapping{
		SourceSkill: source,
		TargetSkill: target,
		Components: []model.ComponentMapping{
			{
				SourceComponent: "Practice Discipline",
				TargetComponent: "Practice Discipline",
				Strength:        genericComponentStrength,
				Principle:       fmt.Sprintf("Deliberate practice habits built in %s carry directly into %s.", source, target),
			},
			{
				SourceComponent: "Focus Under Pressure",
				TargetComponent: "Focus Under Pressure",
				Strength:        genericComponentStrength,
				Principle:       fmt.Sprintf("Composure developed in %s supports performing %s when it counts.", source, target),
			},
			{
				SourceComponent: "Feedback Integration",
				TargetComponent: "Feedback Integration",
				Strength:        genericComponentStrength,
				Principle:       "Treating mistakes as signals, not setbacks, transfers between any two skills.",
			},
		},
	}
}
