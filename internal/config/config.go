// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Every tunable threshold from the scoring rules lives here, never as
//   a literal inside branch logic.
// - New() supplies defaults; Load(ctx) layers file and env on top.
// - External errors are wrapped via this package's error kinds.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// TopNDefault is used when a request omits top_n.
	TopNDefault int `koanf:"top_n_default"`

	// TopNMax caps top_n on recommendation requests.
	TopNMax int `koanf:"top_n_max"`

	// MaxPhases caps the number of phases per learning path.
	MaxPhases int `koanf:"max_phases"`

	// DurationConstant scales gap magnitude into estimated weeks; it is
	// shared by path synthesis and transfer planning.
	DurationConstant float64 `koanf:"duration_constant"`

	// Strategy classification cutoffs. Empirical values; tune here, not
	// in branch logic.
	TrendingPopularityMin float64 `koanf:"trending_popularity_min"`
	SimilarLevelMin       float64 `koanf:"similar_level_min"`
	AspirationalMax       float64 `koanf:"aspirational_max"`
	WeakMetricMax         float64 `koanf:"weak_metric_max"`

	// MetricWeights biases the similarity average per metric name.
	MetricWeights map[string]float64 `koanf:"metric_weights"`

	// DefaultMetricWeight applies to metrics missing from MetricWeights.
	DefaultMetricWeight float64 `koanf:"default_metric_weight"`

	// ScoreConcurrency sets the scoring worker count.
	ScoreConcurrency int `koanf:"score_concurrency"`

	// ScoreQueueCapacity bounds the scoring job queue; full means
	// inline evaluation on the request goroutine.
	ScoreQueueCapacity int `koanf:"score_queue_capacity"`

	// ProfilesFile and MappingsFile point at versioned YAML catalog
	// artifacts; empty keeps the built-in seeds.
	ProfilesFile string `koanf:"profiles_file"`
	MappingsFile string `koanf:"mappings_file"`

	// MaxTrackedPlans bounds the in-memory plan registry. Zero means
	// unbounded.
	MaxTrackedPlans int `koanf:"max_tracked_plans"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		TopNDefault:           5,
		TopNMax:               25,
		MaxPhases:             5,
		DurationConstant:      10,
		TrendingPopularityMin: 0.8,
		SimilarLevelMin:       0.75,
		AspirationalMax:       0.4,
		WeakMetricMax:         0.6,
		MetricWeights:         map[string]float64{},
		DefaultMetricWeight:   1.0,
		ScoreConcurrency:      runtime.NumCPU(),
		ScoreQueueCapacity:    4096,
		MaxTrackedPlans:       10_000,
	}
}
