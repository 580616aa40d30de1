// Package pipeline orchestrates a full scenario analysis: dispatch the domain
// simulators, integrate their outputs, project the timeline, synthesize risk
// and confidence, and generate recommendations. The envelope is built
// incrementally so a stage failure still leaves the completed phases
// available to callers.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/polystrat/geosim/internal/api"
	"github.com/polystrat/geosim/internal/cache"
	"github.com/polystrat/geosim/internal/dispatch"
	"github.com/polystrat/geosim/internal/escalation"
	"github.com/polystrat/geosim/internal/integrate"
	"github.com/polystrat/geosim/internal/metrics"
	"github.com/polystrat/geosim/internal/policy"
	"github.com/polystrat/geosim/internal/response"
	"github.com/polystrat/geosim/internal/risk"
	"github.com/polystrat/geosim/internal/store"
	"github.com/polystrat/geosim/internal/timeline"
	"github.com/polystrat/geosim/pkg/otel"
)

const tracerName = "geosim/pipeline"

// ResultCache is the transient in-process cache keyed by scenario id. It is
// an optimization only; correctness never depends on it.
type ResultCache = cache.LRUWithTTL[string, *api.ComprehensiveResult]

// Options configures a Pipeline. All collaborators are optional; a zero
// Options runs the pure computation with no caching or persistence.
type Options struct {
	Store     store.Store
	Cache     *ResultCache
	Metrics   *metrics.Metrics
	ResultTTL time.Duration
}

// Pipeline runs scenario analyses. Each Run allocates its own envelope, so a
// single Pipeline is safe for concurrent use across workers.
type Pipeline struct {
	store     store.Store
	cache     *ResultCache
	metrics   *metrics.Metrics
	resultTTL time.Duration
}

// New creates a Pipeline with the given collaborators.
func New(opts Options) *Pipeline {
	ttl := opts.ResultTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Pipeline{
		store:     opts.Store,
		cache:     opts.Cache,
		metrics:   opts.Metrics,
		resultTTL: ttl,
	}
}

// Run executes the full analysis for one scenario. Identical configurations
// map to the same scenario id, so a repeat submission is served from the
// cache or the store when available. A stage failure does not surface as an
// error: the partial envelope comes back with status "error" and the message
// recorded on it. The returned error covers only input problems (a config
// that cannot be canonicalized).
func (p *Pipeline) Run(ctx context.Context, cfg *api.ScenarioConfig) (*api.ComprehensiveResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil scenario config")
	}

	scenarioID, err := api.ComputeScenarioID(cfg)
	if err != nil {
		return nil, fmt.Errorf("compute scenario id: %w", err)
	}

	ctx, span := otel.StartSpan(ctx, tracerName, "pipeline.run",
		otel.ScenarioAttributes(scenarioID, cfg.TypeOrDefault(), cfg.IntensityOrDefault(), cfg.DurationOrDefault(0))...)
	defer span.End()

	if cached := p.lookup(ctx, scenarioID); cached != nil {
		otel.AddEvent(span, "cache_hit")
		return cached, nil
	}

	if p.metrics != nil {
		p.metrics.AnalysesTotal.Inc()
		p.metrics.AnalysesByType.WithLabelValues(cfg.TypeOrDefault()).Inc()
	}

	started := time.Now()
	res := &api.ComprehensiveResult{
		ScenarioID:        scenarioID,
		ScenarioConfig:    cfg.Clone(),
		AnalysisStartTime: started.UTC(),
		Status:            api.StatusRunning,
	}

	p.execute(ctx, cfg, res)

	res.AnalysisEndTime = time.Now().UTC()
	if res.Status != api.StatusError {
		res.Status = api.StatusCompleted
	}

	if p.metrics != nil {
		p.metrics.AnalysisDuration.Observe(time.Since(started).Seconds())
		if res.Status == api.StatusError {
			p.metrics.AnalysesFailed.Inc()
		}
	}

	var overallRisk float64
	if res.RiskAssessment != nil {
		overallRisk = res.RiskAssessment.OverallRiskScore
	}
	span.SetAttributes(otel.OutcomeAttributes(res.Status,
		len(res.ModelResults.Domains()), len(res.ModelFailures), overallRisk)...)

	p.persist(ctx, res)
	return res, nil
}

// execute runs the analysis stages in dependency order, stopping at the
// first stage failure.
func (p *Pipeline) execute(ctx context.Context, cfg *api.ScenarioConfig, res *api.ComprehensiveResult) {
	durationDays := cfg.DurationOrDefault(30)

	ok := p.stage(ctx, res, "dispatch", func() {
		rs, failures := dispatch.Run(cfg)
		res.ModelResults = rs
		res.ModelFailures = failures
		if p.metrics != nil {
			for _, domain := range rs.Domains() {
				p.metrics.ModelsInvoked.WithLabelValues(domain).Inc()
			}
			for _, f := range failures {
				p.metrics.ModelFailures.WithLabelValues(f.Domain).Inc()
			}
		}
	})
	if !ok {
		return
	}

	if !p.stage(ctx, res, "integrate", func() {
		res.IntegratedAnalysis = integrate.Analyze(res.ModelResults)
	}) {
		return
	}

	if !p.stage(ctx, res, "timeline", func() {
		res.TimelineProjections = timeline.Project(res.IntegratedAnalysis, cfg.TypeOrDefault(), durationDays)
	}) {
		return
	}

	if !p.stage(ctx, res, "risk", func() {
		res.RiskAssessment = risk.Assess(res.IntegratedAnalysis)
		res.ConfidenceAnalysis = risk.Confidence(res.ModelResults)
	}) {
		return
	}

	if !p.stage(ctx, res, "policy", func() {
		res.PolicyRecommendations = policy.Generate(res.RiskAssessment)
	}) {
		return
	}

	if !p.stage(ctx, res, "escalation", func() {
		state := escalation.DeriveState(res.ModelResults, res.IntegratedAnalysis)
		res.EscalationAnalysis = escalation.Analyze(state, cfg, durationDays)
	}) {
		return
	}

	p.stage(ctx, res, "response", func() {
		res.GlobalResponse = response.Model(cfg, res.ModelResults)
	})
}

// stage runs one pipeline phase with panic isolation. A panic marks the
// envelope as errored and stops the run; completed phases stay in place.
func (p *Pipeline) stage(ctx context.Context, res *api.ComprehensiveResult, name string, fn func()) (ok bool) {
	_, span := otel.StartSpan(ctx, tracerName, "pipeline."+name)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("%s stage failed: %v", name, r)
			log.Printf("scenario %s: %s", res.ScenarioID, msg)
			res.Status = api.StatusError
			res.Error = msg
			otel.RecordError(span, fmt.Errorf("%s", msg), "")
			ok = false
		}
	}()

	fn()
	return true
}

// lookup serves a prior run of the same scenario from cache, then store.
func (p *Pipeline) lookup(ctx context.Context, scenarioID string) *api.ComprehensiveResult {
	if p.cache != nil {
		if cached, hit := p.cache.Get(scenarioID); hit {
			if p.metrics != nil {
				p.metrics.CacheHits.Inc()
			}
			return cached
		}
		if p.metrics != nil {
			p.metrics.CacheMisses.Inc()
		}
	}

	if p.store != nil {
		stored, err := p.store.Get(ctx, scenarioID)
		if err != nil {
			log.Printf("scenario %s: store get failed: %v", scenarioID, err)
			if p.metrics != nil {
				p.metrics.StoreErrors.WithLabelValues("get").Inc()
			}
			return nil
		}
		if stored != nil {
			if p.cache != nil {
				p.cache.Set(scenarioID, stored)
			}
			return stored
		}
	}
	return nil
}

func (p *Pipeline) persist(ctx context.Context, res *api.ComprehensiveResult) {
	if p.store != nil {
		if err := p.store.Set(ctx, res.ScenarioID, res, p.resultTTL); err != nil {
			log.Printf("scenario %s: store set failed: %v", res.ScenarioID, err)
			if p.metrics != nil {
				p.metrics.StoreErrors.WithLabelValues("set").Inc()
			}
		}
	}
	if p.cache != nil {
		p.cache.Set(res.ScenarioID, res)
	}
}
