package smoketest

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/mentorpath/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	learnerKindDivisor = 4
)

// Constants for metric generation ranges.
const (
	noviceMin     = 0.1
	noviceRange   = 0.3
	improverMin   = 0.3
	improverRange = 0.3
	solidMin      = 0.5
	solidRange    = 0.3
	polishedMin   = 0.7
	polishedRange = 0.25
)

// Constants for learner kind cases.
const (
	caseNovice   = 0
	caseImprover = 1
	caseSolid    = 2
	casePolished = 3
)

// Metric names follow the public_speaking seed benchmarks so the
// generated requests produce real gaps.
var metricNames = []string{ //nolint:gochecknoglobals // fixed generation table
	"clarity", "pace", "eye_contact", "posture", "vocal_variety",
}

var trends = []string{"improving", "stable", "declining"} //nolint:gochecknoglobals // fixed generation table

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generateLearners creates synthetic recommendation requests with
// unique learner IDs and a varied skill distribution.
func generateLearners(ctx context.Context, config *Config, stats *Stats) ([]Learner, error) {
	logger.Get().Info(ctx, "generating synthetic learners", logger.Int("numLearners", config.NumLearners))

	learners := make([]Learner, config.NumLearners)
	for i := range learners {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		learners[i] = generateSingleLearner(config)
	}

	stats.LearnersGenerated = len(learners)
	logger.Get().Info(ctx, "generated learners successfully", logger.Int("count", len(learners)))

	return learners, nil
}

// generateSingleLearner creates one learner with a metric vector drawn
// from one of four skill bands.
func generateSingleLearner(config *Config) Learner {
	metrics := make(map[string]float64, len(metricNames))
	for _, name := range metricNames {
		metrics[name] = generateBandedMetric()
	}

	trendIdx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(trends))))
	freq, _ := rand.Int(rand.Reader, big.NewInt(7))

	return Learner{
		LearnerID:         uuid.New().String(),
		SkillDomain:       config.SkillDomain,
		Metrics:           metrics,
		PracticeFrequency: int(freq.Int64()) + 1,
		Trend:             trends[trendIdx.Int64()],
		TopN:              config.TopN,
	}
}

// generateBandedMetric creates a metric value in one of four bands so
// strategies other than aspirational actually fire.
func generateBandedMetric() float64 {
	randNum, _ := rand.Int(rand.Reader, big.NewInt(learnerKindDivisor))
	switch randNum.Int64() {
	case caseNovice:
		return noviceMin + getRandomFloat()*noviceRange
	case caseImprover:
		return improverMin + getRandomFloat()*improverRange
	case caseSolid:
		return solidMin + getRandomFloat()*solidRange
	case casePolished:
		return polishedMin + getRandomFloat()*polishedRange
	default:
		return noviceMin + getRandomFloat()*noviceRange
	}
}
