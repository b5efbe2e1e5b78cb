// Package model contains domain types passed between layers.
package model

import "math"

// Experience level cut points over the mean metric value.
const (
	advancedLevelMin     = 0.8
	intermediateLevelMin = 0.6
	beginnerPlusLevelMin = 0.4
)

// Timeframe cut points over the mean gap to the reference.
const (
	easyGapMax     = 0.1
	moderateGapMax = 0.3
)

// GapEntry priority thresholds over the absolute gap.
const (
	highPriorityGapMin   = 0.3
	mediumPriorityGapMin = 0.15
)

// MetricVector maps metric names to normalized values in [0,1].
// Missing metrics are absent, never zero.
type MetricVector map[string]float64

// Clamp returns a copy with every value forced into [0,1] and the number
// of values that needed correction. Upstream extractors are noisy;
// callers count and log corrections instead of failing.
func (m MetricVector) Clamp() (MetricVector, int) {
	out := make(MetricVector, len(m))
	corrected := 0
	for name, v := range m {
		switch {
		case v < 0:
			out[name] = 0
			corrected++
		case v > 1:
			out[name] = 1
			corrected++
		default:
			out[name] = v
		}
	}
	return out, corrected
}

// Mean returns the average metric value, or 0 for an empty vector.
func (m MetricVector) Mean() float64 {
	if len(m) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range m {
		sum += v
	}
	return sum / float64(len(m))
}

// Trend labels a learner's improvement direction.
type Trend string

// Trend values.
const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// ExperienceLevel labels a learner's overall level.
type ExperienceLevel string

// ExperienceLevel values.
const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelBeginnerPlus ExperienceLevel = "beginner_plus"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

// AssessLevel derives an experience level from the mean metric value.
// Used when the caller does not supply a level of its own.
func AssessLevel(m MetricVector) ExperienceLevel {
	avg := m.Mean()
	switch {
	case avg >= advancedLevelMin:
		return LevelAdvanced
	case avg >= intermediateLevelMin:
		return LevelIntermediate
	case avg >= beginnerPlusLevelMin:
		return LevelBeginnerPlus
	default:
		return LevelBeginner
	}
}

// LearnerContext is the read-only learner input to a scoring pass.
type LearnerContext struct {
	LearnerID         string          `json:"learner_id"`
	Metrics           MetricVector    `json:"metrics"`
	ExperienceLevel   ExperienceLevel `json:"experience_level,omitempty"`
	PracticeFrequency int             `json:"practice_frequency"`
	Trend             Trend           `json:"trend,omitempty"`
}

// ReferenceProfile is one benchmark entry in the catalog.
// Immutable once loaded for a scoring pass.
type ReferenceProfile struct {
	ID           string       `json:"id" koanf:"id"`
	Name         string       `json:"name" koanf:"name"`
	Domain       string       `json:"domain" koanf:"domain"`
	Benchmark    MetricVector `json:"benchmark" koanf:"benchmark"`
	Biography    string       `json:"biography,omitempty" koanf:"biography"`
	Achievements []string     `json:"achievements,omitempty" koanf:"achievements"`
	// Popularity is a recent-engagement signal in [0,1]; it feeds only
	// the trending strategy.
	Popularity float64 `json:"popularity,omitempty" koanf:"popularity"`
}

// Priority tiers a gap by how urgently it needs work.
type Priority string

// Priority values.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// GapEntry is the derived per-metric difference between a learner and a
// reference. Metrics present on only one side yield Comparable=false
// entries that never contribute to scoring or path synthesis.
type GapEntry struct {
	Metric         string   `json:"metric"`
	LearnerValue   float64  `json:"learner_value"`
	ReferenceValue float64  `json:"reference_value"`
	// Gap is signed: reference minus learner. Negative means the
	// learner already exceeds the reference.
	Gap        float64  `json:"gap"`
	Priority   Priority `json:"priority"`
	Comparable bool     `json:"comparable"`
}

// PriorityForGap tiers a signed gap. A negative gap needs no corrective
// action and is forced low.
func PriorityForGap(gap float64) Priority {
	switch {
	case gap >= highPriorityGapMin:
		return PriorityHigh
	case gap >= mediumPriorityGapMin:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// LearningPhase is one ordered unit of a generated plan, scoped to a
// single focus area. Immutable once emitted.
type LearningPhase struct {
	Step           int      `json:"step"`
	FocusArea      string   `json:"focus_area"`
	CurrentLevel   float64  `json:"current_level"`
	TargetLevel    float64  `json:"target_level"`
	EstimatedWeeks int      `json:"estimated_weeks"`
	Priority       Priority `json:"priority"`
}

// LearningPath is the ordered, time-estimated output of path synthesis.
type LearningPath struct {
	Phases                []LearningPhase `json:"phases"`
	TotalWeeks            int             `json:"total_weeks"`
	PracticeFrequencyHint string          `json:"practice_frequency_hint"`
	KeyFocus              string          `json:"key_focus"`
}

// Strategy classifies why a reference is being recommended.
type Strategy string

// Strategy values.
const (
	StrategySimilarLevel       Strategy = "similar_level"
	StrategyAspirational       Strategy = "aspirational"
	StrategyProgressive        Strategy = "progressive"
	StrategyImprovementFocused Strategy = "improvement_focused"
	StrategyTrending           Strategy = "trending"
)

// Recommendation pairs a reference profile with its score, strategy and
// generated learning path. Created per scoring request, never persisted
// by this core.
type Recommendation struct {
	ProfileID   string       `json:"profile_id"`
	ProfileName string       `json:"profile_name"`
	Similarity  float64      `json:"similarity"`
	Strategy    Strategy     `json:"strategy"`
	Path        LearningPath `json:"learning_path"`
	Timeframe   string       `json:"expected_timeframe"`
}

// EstimateTimeframe buckets a mean gap into a coarse expected timeframe.
func EstimateTimeframe(meanGap float64) string {
	switch {
	case meanGap <= easyGapMax:
		return "2-4 weeks"
	case meanGap <= moderateGapMax:
		return "2-3 months"
	default:
		return "6+ months"
	}
}

// ComponentMapping is one pre-authored correspondence between a
// component of the source skill and one of the target skill.
type ComponentMapping struct {
	SourceComponent string   `json:"source_component" koanf:"source_component"`
	TargetComponent string   `json:"target_component" koanf:"target_component"`
	Strength        float64  `json:"strength" koanf:"strength"`
	Principle       string   `json:"principle" koanf:"principle"`
	Examples        []string `json:"examples,omitempty" koanf:"examples"`
	// Weight biases the effectiveness aggregate; zero means equal.
	Weight float64 `json:"weight,omitempty" koanf:"weight"`
}

// TransferMapping is the curated catalog entry for one (source, target)
// skill pair. Configuration, not user data.
type TransferMapping struct {
	SourceSkill string             `json:"source_skill" koanf:"source_skill"`
	TargetSkill string             `json:"target_skill" koanf:"target_skill"`
	Components  []ComponentMapping `json:"components" koanf:"components"`
}

// TransferPlan is the aggregated output of cross-domain mapping.
type TransferPlan struct {
	PlanID        string          `json:"plan_id,omitempty"`
	SourceSkill   string          `json:"source_skill"`
	TargetSkill   string          `json:"target_skill"`
	Effectiveness float64         `json:"effectiveness"`
	TotalWeeks    int             `json:"total_weeks"`
	Phases        []LearningPhase `json:"phases"`
	// Principles are copied verbatim from the catalog entries used.
	Principles []string `json:"principles"`
	// Generic marks a fallback plan built from the generic template
	// because no mapping matched the requested pair.
	Generic bool `json:"generic"`
}

// TransferProgressRecord tracks milestone completion against a plan.
// Version drives optimistic concurrency in the store.
type TransferProgressRecord struct {
	LearnerID     string `json:"learner_id"`
	PathID        string `json:"path_id"`
	Completed     []int  `json:"completed_steps"`
	TotalSteps    int    `json:"total_steps"`
	CompletionPct int    `json:"completion_pct"`
	Version       int64  `json:"version"`
}

// CompletedSet returns the completed steps as a set for membership tests.
func (r TransferProgressRecord) CompletedSet() map[int]struct{} {
	set := make(map[int]struct{}, len(r.Completed))
	for _, s := range r.Completed {
		set[s] = struct{}{}
	}
	return set
}

// RoundPct converts a completion ratio to a whole percentage.
func RoundPct(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
