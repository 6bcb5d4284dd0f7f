package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/crop-profile-etl/internal/domain"
	"github.com/couchcryptid/crop-profile-etl/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Extractor loads the complete crop dataset from the source.
type Extractor interface {
	Extract(ctx context.Context) (domain.Dataset, error)
}

// Loader persists the full profile collection to one destination.
type Loader interface {
	Load(ctx context.Context, profiles []domain.CropProfile) error
	Name() string
}

// Reporter surfaces run progress to a human operator.
type Reporter interface {
	Completeness(report domain.CompletenessReport)
	Summary(records []domain.CropRecord)
	Saved(count int, destinations []string)
}

// RunSummary describes a successful run, or how far a failed run got.
type RunSummary struct {
	RecordsLoaded    int
	ProfilesWritten  int
	IncompleteFields int
	HumidityWarnings []domain.UnknownCategoryWarning
	LightDefaults    int
	Destinations     []string
	Duration         time.Duration
}

// Pipeline runs one extract-audit-transform-load pass over the crop table.
type Pipeline struct {
	extractor Extractor
	loaders   []Loader
	reporter  Reporter
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

// New creates a Pipeline. Loaders run in the given order.
func New(e Extractor, loaders []Loader, r Reporter, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	return &Pipeline{
		extractor: e,
		loaders:   loaders,
		reporter:  r,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
	}
}

// Run executes a single batch. Any fatal error halts the run before later
// stages start; a transform failure means no loader is called.
func (p *Pipeline) Run(ctx context.Context) (RunSummary, error) {
	start := p.clock.Now()
	p.logger.Info("pipeline started", "sinks", len(p.loaders))

	ds, err := p.extractor.Extract(ctx)
	if err != nil {
		return RunSummary{}, p.fail("extract", err)
	}
	summary := RunSummary{RecordsLoaded: len(ds.Records)}
	p.metrics.RecordsLoaded.Add(float64(len(ds.Records)))

	audit := domain.AuditCompleteness(ds)
	summary.IncompleteFields = len(audit.Fields)
	p.metrics.IncompleteFields.Set(float64(len(audit.Fields)))
	if !audit.Complete() {
		p.logger.Warn("source has incomplete fields", "fields", audit.Fields)
	}
	p.reporter.Completeness(audit)
	p.reporter.Summary(ds.Records)

	profiles, err := p.transform(ds.Records, &summary)
	if err != nil {
		return summary, p.fail("transform", err)
	}

	for _, l := range p.loaders {
		if err := l.Load(ctx, profiles); err != nil {
			return summary, p.fail("load", err)
		}
		summary.Destinations = append(summary.Destinations, l.Name())
	}
	summary.ProfilesWritten = len(profiles)
	p.metrics.ProfilesWritten.Add(float64(len(profiles)))
	p.reporter.Saved(len(profiles), summary.Destinations)

	summary.Duration = p.clock.Since(start)
	p.metrics.RunDuration.Observe(summary.Duration.Seconds())
	p.metrics.LastSuccessUnixTS.Set(float64(p.clock.Now().Unix()))
	p.logger.Info("pipeline finished",
		"profiles", len(profiles),
		"humidity_warnings", len(summary.HumidityWarnings),
		"light_defaults", summary.LightDefaults,
		"duration", summary.Duration,
	)
	return summary, nil
}

// transform builds one profile per record, in record order. It stops at the
// first record that fails to parse.
func (p *Pipeline) transform(records []domain.CropRecord, summary *RunSummary) ([]domain.CropProfile, error) {
	profiles := make([]domain.CropProfile, 0, len(records))
	for _, rec := range records {
		profile, warnings, err := domain.BuildCropProfile(rec)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			p.logger.Warn("unknown humidity descriptor, using default range",
				"crop", w.Crop,
				"value", w.Value,
				"default", domain.DefaultHumidity.String(),
			)
			p.metrics.CategoryDefaults.WithLabelValues(w.Field).Inc()
		}
		summary.HumidityWarnings = append(summary.HumidityWarnings, warnings...)

		if light, _ := rec.Value(domain.FieldLight); !knownLight(light) {
			p.logger.Debug("light descriptor defaulted", "crop", rec.Label(), "value", light)
			p.metrics.CategoryDefaults.WithLabelValues(domain.FieldLight).Inc()
			summary.LightDefaults++
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func knownLight(desc string) bool {
	_, ok := domain.MapLight(desc)
	return ok
}

func (p *Pipeline) fail(stage string, err error) error {
	p.metrics.RunFailures.WithLabelValues(stage).Inc()
	p.logger.Error("pipeline failed", "stage", stage, "error", err)
	return err
}
