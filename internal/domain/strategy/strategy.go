// Package strategy classifies why a reference profile is being
// recommended to a learner.
package strategy

import (
	"math"

	"github.com/okian/mentorpath/internal/domain/model"
)

// Default classification thresholds. Empirical values carried over from
// the curated rule set; tune via options, not by editing branch logic.
const (
	defaultTrendingPopularityMin = 0.8
	defaultSimilarLevelMin       = 0.75
	defaultAspirationalMax       = 0.4
	defaultWeakMetricMax         = 0.6
)

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithTrendingPopularityMin sets the popularity needed for trending.
func WithTrendingPopularityMin(v float64) Option {
	return func(c *Classifier) {
		if v > 0 {
			c.trendingPopularityMin = v
		}
	}
}

// WithSimilarLevelMin sets the similarity floor for similar_level.
func WithSimilarLevelMin(v float64) Option {
	return func(c *Classifier) {
		if v > 0 {
			c.similarLevelMin = v
		}
	}
}

// WithAspirationalMax sets the similarity ceiling for aspirational.
func WithAspirationalMax(v float64) Option {
	return func(c *Classifier) {
		if v > 0 {
			c.aspirationalMax = v
		}
	}
}

// WithWeakMetricMax sets the learner value below which a metric counts
// as an explicit weak area.
func WithWeakMetricMax(v float64) Option {
	return func(c *Classifier) {
		if v > 0 {
			c.weakMetricMax = v
		}
	}
}

// Classifier assigns one of the five recommendation strategies.
// Pure over its inputs; safe for concurrent use.
type Classifier struct {
	trendingPopularityMin float64
	similarLevelMin       float64
	aspirationalMax       float64
	weakMetricMax         float64
}

// New creates a Classifier with configuration options.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		trendingPopularityMin: defaultTrendingPopularityMin,
		similarLevelMin:       defaultSimilarLevelMin,
		aspirationalMax:       defaultAspirationalMax,
		weakMetricMax:         defaultWeakMetricMax,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify picks a strategy for one reference. Branch order is fixed so
// ties resolve deterministically: trending beats peer closeness, peer
// closeness beats stretch goals, and improvement focus beats the
// progressive default.
func (c *Classifier) Classify(learner model.LearnerContext, ref model.ReferenceProfile, similarity float64, gaps []model.GapEntry) model.Strategy {
	if ref.Popularity > c.trendingPopularityMin {
		return model.StrategyTrending
	}
	if similarity >= c.similarLevelMin {
		return model.StrategySimilarLevel
	}
	if similarity < c.aspirationalMax {
		return model.StrategyAspirational
	}
	if dominant, ok := dominantGap(gaps); ok {
		if v, present := learner.Metrics[dominant.Metric]; present && v < c.weakMetricMax {
			return model.StrategyImprovementFocused
		}
	}
	return model.StrategyProgressive
}

// dominantGap returns the comparable entry with the largest magnitude.
// Earlier entries win ties, so the caller's ordering stays decisive.
func dominantGap(gaps []model.GapEntry) (model.GapEntry, bool) {
	var best model.GapEntry
	found := false
	for _, g := range gaps {
		if !g.Comparable {
			continue
		}
		if !found || math.Abs(g.Gap) > math.Abs(best.Gap) {
			best = g
			found = true
		}
	}
	return best, found
}
