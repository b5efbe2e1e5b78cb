// Package service provides the core business service that implements
// the dependencies required by the HTTP API: recommendation assembly,
// cross-domain transfer planning, and progress recording.
package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/mentorpath/internal/adapters/catalog"
	"github.com/okian/mentorpath/internal/adapters/mq/queue"
	"github.com/okian/mentorpath/internal/adapters/mq/worker"
	"github.com/okian/mentorpath/internal/adapters/repository"
	"github.com/okian/mentorpath/internal/domain/model"
	"github.com/okian/mentorpath/internal/domain/path"
	"github.com/okian/mentorpath/internal/domain/progress"
	"github.com/okian/mentorpath/internal/domain/similarity"
	"github.com/okian/mentorpath/internal/domain/strategy"
	"github.com/okian/mentorpath/internal/domain/transfer"
	"github.com/okian/mentorpath/pkg/logger"
	"github.com/okian/mentorpath/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultScoreConcurrency = 8
	defaultTopNDefault      = 5
)

// Catalog abstracts the reference-profile and transfer-mapping source.
type Catalog interface {
	ProfilesByDomain(ctx context.Context, domain string) []model.ReferenceProfile
	Mappings(ctx context.Context) []model.TransferMapping
	ProfileCount(ctx context.Context) int
	MappingCount(ctx context.Context) int
}

// Service implements recommendation, transfer and progress operations.
// The computational components are pure, so one Service instance is
// safe for concurrent requests; only the progress store serializes, via
// versioned writes.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog    Catalog
	store      repository.Store
	scorer     *similarity.Scorer
	classifier *strategy.Classifier
	generator  *path.Generator
	mapper     *transfer.Mapper

	// Scoring pipeline
	jobs   *queue.InMemoryQueue
	pool   *worker.Pool
	cancel context.CancelFunc

	// Configuration
	scoreConcurrency int
	queueCapacity    int
	topNDefault      int
	maxPhases        int
	metricWeights    map[string]float64

	// Deferred component options
	scorerOpts     []similarity.Option
	classifierOpts []strategy.Option
	generatorOpts  []path.Option
	mapperOpts     []transfer.Option

	// Catalog artifacts to load on Start
	profilesFile string
	mappingsFile string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog sets the catalog implementation.
func WithCatalog(c Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithStore sets the plan/progress store implementation.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithScoreConcurrency sets the scoring worker count.
func WithScoreConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.scoreConcurrency = n
		}
	}
}

// WithQueueCapacity sets the scoring queue capacity.
func WithQueueCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueCapacity = n
		}
	}
}

// WithTopNDefault sets the result count used when a caller passes a
// non-positive topN.
func WithTopNDefault(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topNDefault = n
		}
	}
}

// WithMaxPhases caps phases per generated learning path.
func WithMaxPhases(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPhases = n
			s.generatorOpts = append(s.generatorOpts, path.WithMaxPhases(n))
		}
	}
}

// WithDurationConstant sets the shared weeks-per-unit-gap scalar.
func WithDurationConstant(c float64) Option {
	return func(s *Service) {
		if c > 0 {
			s.generatorOpts = append(s.generatorOpts, path.WithDurationConstant(c))
			s.mapperOpts = append(s.mapperOpts, transfer.WithDurationConstant(c))
		}
	}
}

// WithMetricWeights sets per-metric similarity weights.
func WithMetricWeights(weights map[string]float64) Option {
	return func(s *Service) {
		s.metricWeights = weights
	}
}

// WithDefaultMetricWeight sets the weight for unlisted metrics.
func WithDefaultMetricWeight(w float64) Option {
	return func(s *Service) {
		if w > 0 {
			s.scorerOpts = append(s.scorerOpts, similarity.WithDefaultWeight(w))
		}
	}
}

// WithStrategyThresholds tunes the classification cutoffs. Zero values
// keep the respective defaults.
func WithStrategyThresholds(trendingMin, similarMin, aspirationalMax, weakMax float64) Option {
	return func(s *Service) {
		s.classifierOpts = append(s.classifierOpts,
			strategy.WithTrendingPopularityMin(trendingMin),
			strategy.WithSimilarLevelMin(similarMin),
			strategy.WithAspirationalMax(aspirationalMax),
			strategy.WithWeakMetricMax(weakMax),
		)
	}
}

// WithCatalogFiles loads versioned YAML catalog artifacts on Start.
// Empty paths keep the built-in seeds.
func WithCatalogFiles(profilesFile, mappingsFile string) Option {
	return func(s *Service) {
		s.profilesFile = profilesFile
		s.mappingsFile = mappingsFile
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		scoreConcurrency: defaultScoreConcurrency,
		topNDefault:      defaultTopNDefault,
		metricWeights:    map[string]float64{},
		logger:           nil, // set on Start if no option provided it
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.catalog == nil {
		s.catalog = catalog.New()
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	s.scorer = similarity.New(s.scorerOpts...)
	s.classifier = strategy.New(s.classifierOpts...)
	s.generator = path.New(s.generatorOpts...)
	s.mapper = transfer.New(s.mapperOpts...)

	if s.profilesFile != "" {
		if c, ok := s.catalog.(*catalog.Catalog); ok {
			if err := c.LoadProfilesFile(ctx, s.profilesFile); err != nil {
				return err
			}
		}
	}
	if s.mappingsFile != "" {
		if c, ok := s.catalog.(*catalog.Catalog); ok {
			if err := c.LoadMappingsFile(ctx, s.mappingsFile); err != nil {
				return err
			}
		}
	}

	// The scoring pipeline outlives the Start call.
	workerCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	var queueOpts []queue.Option
	if s.queueCapacity > 0 {
		queueOpts = append(queueOpts, queue.WithCapacity(s.queueCapacity))
	}
	s.jobs = queue.NewInMemoryQueue(queueOpts...)
	s.pool = worker.NewPool(s.scoreConcurrency, s.jobs, evaluatorFunc(s.assemble))
	s.pool.Start(workerCtx)

	metrics.UpdateCatalogProfiles(s.catalog.ProfileCount(ctx))
	metrics.UpdateCatalogMappings(s.catalog.MappingCount(ctx))

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("profiles", s.catalog.ProfileCount(ctx)),
		logger.Int("mappings", s.catalog.MappingCount(ctx)),
		logger.Int("scoreConcurrency", s.scoreConcurrency),
	)
	return nil
}

// Stop shuts the service down, draining the scoring pipeline. The
// store is in-memory, so there is nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false

	ctx := context.Background()
	if s.pool != nil {
		if err := s.pool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "scoring pool shutdown incomplete", logger.Error(err))
		}
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.logger.Info(ctx, "recommendation service stopped")
}

// Recommend scores every catalog profile in the learner's skill domain
// and returns the topN recommendations ranked by similarity descending.
// Similarity is the single ranking key; strategy labels are
// informational.
func (s *Service) Recommend(ctx context.Context, learner model.LearnerContext, skillDomain string, topN int) ([]model.Recommendation, error) {
	if topN <= 0 {
		topN = s.topNDefault
	}

	cleaned, corrected := learner.Metrics.Clamp()
	if corrected > 0 {
		metrics.RecordMetricClamps(corrected)
		s.logger.Warn(ctx, "clamped learner metrics into [0,1]",
			logger.String("learnerID", learner.LearnerID),
			logger.Int("corrected", corrected),
		)
	}
	learner.Metrics = cleaned
	if learner.ExperienceLevel == "" {
		learner.ExperienceLevel = model.AssessLevel(learner.Metrics)
	}

	profiles := s.catalog.ProfilesByDomain(ctx, skillDomain)
	if len(profiles) == 0 {
		return nil, ErrEmptyCatalog
	}

	start := time.Now()
	recs := s.scoreAll(ctx, learner, profiles)
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))

	// Stable, so catalog order breaks similarity ties deterministically.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Similarity > recs[j].Similarity
	})
	if len(recs) > topN {
		recs = recs[:topN]
	}

	metrics.RecordRecommendationsGenerated(len(recs))
	for _, r := range recs {
		metrics.RecordStrategyAssigned(string(r.Strategy))
	}
	return recs, nil
}

// evaluatorFunc adapts a plain function to the worker Evaluator contract.
type evaluatorFunc func(ctx context.Context, learner model.LearnerContext, profile model.ReferenceProfile) model.Recommendation

func (f evaluatorFunc) Evaluate(ctx context.Context, learner model.LearnerContext, profile model.ReferenceProfile) model.Recommendation {
	return f(ctx, learner, profile)
}

// scoreAll fans catalog scoring out over the worker pool. Each profile
// gets its own single-slot result channel so catalog order is
// preserved; jobs rejected on backpressure are evaluated inline.
func (s *Service) scoreAll(ctx context.Context, learner model.LearnerContext, profiles []model.ReferenceProfile) []model.Recommendation {
	results := make([]chan model.Recommendation, len(profiles))

	for i := range profiles {
		results[i] = make(chan model.Recommendation, 1)
		job := queue.Job{
			Learner: learner,
			Profile: profiles[i],
			Result:  results[i],
		}
		if !s.jobs.Enqueue(ctx, job) {
			results[i] <- s.assemble(ctx, learner, profiles[i])
		}
	}

	recs := make([]model.Recommendation, len(profiles))
	for i := range results {
		recs[i] = <-results[i]
	}
	return recs
}

// assemble runs one profile through scorer, classifier and generator.
func (s *Service) assemble(ctx context.Context, learner model.LearnerContext, ref model.ReferenceProfile) model.Recommendation {
	scored := s.scorer.Score(learner.Metrics, ref.Benchmark, s.metricWeights)
	if scored.Clamped > 0 {
		metrics.RecordMetricClamps(scored.Clamped)
	}
	strat := s.classifier.Classify(learner, ref, scored.Similarity, scored.Gaps)
	plan := s.generator.Generate(scored.Gaps, s.maxPhases)

	return model.Recommendation{
		ProfileID:   ref.ID,
		ProfileName: ref.Name,
		Similarity:  scored.Similarity,
		Strategy:    strat,
		Path:        plan,
		Timeframe:   model.EstimateTimeframe(meanPositiveGap(scored.Gaps)),
	}
}

// TransferPlan maps the source skill onto the target and registers the
// resulting plan so progress can be recorded against it. Unknown pairs
// yield a generic plan, flagged, not an error.
func (s *Service) TransferPlan(ctx context.Context, sourceSkill, targetSkill string) (model.TransferPlan, error) {
	plan := s.mapper.MapTransfer(sourceSkill, targetSkill, s.catalog.Mappings(ctx))
	plan.PlanID = uuid.NewString()

	if err := s.store.RegisterPlan(ctx, plan); err != nil {
		return model.TransferPlan{}, err
	}

	metrics.RecordTransferPlanGenerated()
	metrics.UpdateTrackedPlans(s.store.PlanCount(ctx))
	if plan.Generic {
		metrics.RecordGenericPlanFallback()
		s.logger.Warn(ctx, "no curated mapping; using generic transfer template",
			logger.String("source", sourceSkill),
			logger.String("target", targetSkill),
		)
	}
	return plan, nil
}

// RecordProgress marks one step of a registered plan complete for a
// learner and returns the new record. The write is compare-and-swap on
// the record version; a conflict means another session updated the same
// record first and the caller should retry with fresh state.
func (s *Service) RecordProgress(ctx context.Context, learnerID, pathID string, stepIndex int) (model.TransferProgressRecord, error) {
	steps, err := s.store.PlanSteps(ctx, pathID)
	if err != nil {
		return model.TransferProgressRecord{}, err
	}

	rec, err := s.store.Progress(ctx, learnerID, pathID)
	if err != nil {
		if !errors.Is(err, repository.ErrProgressNotFound) {
			return model.TransferProgressRecord{}, err
		}
		// First update creates the record.
		rec = progress.NewRecord(learnerID, pathID, steps)
	}

	updated, err := progress.MarkComplete(rec, stepIndex)
	if err != nil {
		return model.TransferProgressRecord{}, err
	}

	if err := s.store.SaveProgress(ctx, updated, rec.Version); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			metrics.RecordProgressConflict()
		}
		return model.TransferProgressRecord{}, err
	}

	metrics.RecordProgressUpdate()
	return updated, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":          s.started,
		"scoreConcurrency": s.scoreConcurrency,
	}
	if s.started {
		stats["profiles"] = s.catalog.ProfileCount(ctx)
		stats["mappings"] = s.catalog.MappingCount(ctx)
		stats["trackedPlans"] = s.store.PlanCount(ctx)
		stats["queueLength"] = s.jobs.Len(ctx)
	}
	return stats
}

// meanPositiveGap averages the comparable, positive gaps; zero when the
// learner matches or exceeds the reference everywhere.
func meanPositiveGap(gaps []model.GapEntry) float64 {
	sum := 0.0
	n := 0
	for _, g := range gaps {
		if g.Comparable && g.Gap > 0 {
			sum += g.Gap
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
