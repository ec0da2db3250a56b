package validation

import (
	"context"
	"errors"
	"fmt"

	"tool-compare-data/core/location"
	"tool-compare-data/core/mapping"
	"tool-compare-data/core/reconcile"
	"tool-compare-data/core/records"
	"tool-compare-data/core/report"
	"tool-compare-data/core/storage"
	"tool-compare-data/feature/validation/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrHistoryDisabled is returned by history lookups when no database is configured.
var ErrHistoryDisabled = errors.New("validation history is disabled")

// ErrLocationNotAllowed is returned by Permit for a location outside the allowed roots.
var ErrLocationNotAllowed = errors.New("location is not allowed")

// Request describes one validation run. Empty locations and policy use the configured defaults.
type Request struct {
	Source        string
	Target        string
	Mapping       string
	DuplicateKeys string

	// Report is the local path of the JSON report. Empty writes no file.
	Report string
	// ReportObject is the object key of the uploaded report. Empty uploads nothing.
	ReportObject string
}

// Outcome is the result of a completed run.
type Outcome struct {
	RunID   string
	Result  *reconcile.ValidationResult
	Summary reconcile.Summary
	Mapping *reconcile.Mapping
}

// Service runs validations and keeps their history.
type Service struct {
	client   storage.Client
	bucket   string
	logger   *zap.Logger
	cfg      Config
	opener   *location.Opener
	resolver *records.Resolver
	repo     *Repository
}

// NewService creates a validation service.
// db may be nil; it backs db:// sources and, when cfg.History is set, the run history.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg Config) *Service {
	opener := location.NewOpener(client)
	s := &Service{
		client:   client,
		bucket:   bucket,
		logger:   logger,
		cfg:      cfg,
		opener:   opener,
		resolver: records.NewResolver(opener, db),
	}
	if db != nil && cfg.History {
		s.repo = NewRepository(db)
	}
	return s
}

// HistoryEnabled reports whether runs are persisted.
func (s *Service) HistoryEnabled() bool {
	return s.repo != nil
}

// Migrate prepares the history table when history is enabled.
func (s *Service) Migrate(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Migrate(ctx)
}

// Defaults fills empty request fields from the configuration.
func (s *Service) Defaults(req Request) Request {
	if req.Source == "" {
		req.Source = s.cfg.Source
	}
	if req.Target == "" {
		req.Target = s.cfg.Target
	}
	if req.Mapping == "" {
		req.Mapping = s.cfg.Mapping
	}
	if req.DuplicateKeys == "" {
		req.DuplicateKeys = s.cfg.DuplicateKeys
	}
	return req
}

// Permit checks the locations of an untrusted request. A location is accepted when it is
// empty, equal to its configured default, or within one of the allowed roots.
func (s *Service) Permit(req Request) error {
	checks := []struct{ given, fallback string }{
		{req.Source, s.cfg.Source},
		{req.Target, s.cfg.Target},
		{req.Mapping, s.cfg.Mapping},
	}
	for _, c := range checks {
		if c.given == "" || c.given == c.fallback {
			continue
		}
		if !s.allowed(c.given) {
			return fmt.Errorf("%w: %s", ErrLocationNotAllowed, c.given)
		}
	}
	return nil
}

func (s *Service) allowed(raw string) bool {
	loc, err := location.Parse(raw)
	if err != nil {
		return false
	}
	for _, r := range s.cfg.AllowedLocations {
		root, err := location.Parse(r)
		if err != nil {
			s.logger.Warn("Ignoring invalid allowed location", zap.String("location", r), zap.Error(err))
			continue
		}
		if loc.Within(root) {
			return true
		}
	}
	return false
}

// Run executes one validation. Findings are reported in the outcome; only configuration,
// read and persistence failures are returned as errors, in which case no report is written.
func (s *Service) Run(ctx context.Context, req Request) (*Outcome, error) {
	req = s.Defaults(req)
	runID := uuid.NewString()
	l := s.logger.With(zap.String("run_id", runID))

	policy, err := Config{DuplicateKeys: req.DuplicateKeys}.Policy()
	if err != nil {
		return nil, err
	}

	m, err := mapping.Load(ctx, s.opener, req.Mapping)
	if err != nil {
		return nil, err
	}

	source, err := s.resolver.Resolve(req.Source)
	if err != nil {
		return nil, err
	}
	target, err := s.resolver.Resolve(req.Target)
	if err != nil {
		return nil, err
	}

	l.Debug("Starting validation",
		zap.String("source", req.Source),
		zap.String("target", req.Target),
		zap.String("mapping", mapping.String(m)),
		zap.String("duplicate_keys", string(policy)),
	)

	result, err := reconcile.Run(ctx, &reconcile.Spec{
		Source:   source,
		Target:   target,
		Mapping:  *m,
		Options:  reconcile.Options{DuplicateKeys: policy},
		CacheTTL: s.cfg.CacheTTL(),
	})
	if err != nil {
		return nil, err
	}

	summary := reconcile.Summarize(result)
	fields := []zap.Field{
		zap.String("status", string(summary.Status)),
		zap.Bool("row_count_failed", summary.RowCountFailed),
		zap.Int("field_mapping_failures", summary.FieldMappingFailures),
		zap.Int("mismatches", summary.MissingTargetRows+summary.ValueMismatches),
		zap.Int("duplicate_keys", summary.DuplicateKeys),
	}
	if result.Status == reconcile.StatusFailed {
		l.Warn("Validation failed", fields...)
	} else {
		l.Info("Validation succeeded", fields...)
	}

	for _, sink := range s.sinks(req) {
		if err := s.write(ctx, sink, result); err != nil {
			return nil, err
		}
		l.Info("Report written", zap.String("destination", sink.Name()))
	}

	if s.repo != nil {
		if err := s.record(ctx, runID, req, m, summary, result); err != nil {
			return nil, err
		}
	}

	return &Outcome{RunID: runID, Result: result, Summary: summary, Mapping: m}, nil
}

// History returns the most recent runs.
func (s *Service) History(ctx context.Context, limit int) ([]models.ValidationRun, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.List(ctx, limit)
}

// GetRun returns a stored run with its report.
func (s *Service) GetRun(ctx context.Context, id string) (*models.ValidationRun, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) sinks(req Request) []report.Sink {
	var sinks []report.Sink
	if req.Report != "" {
		sinks = append(sinks, report.NewFileSink(req.Report))
	}
	if req.ReportObject != "" {
		sinks = append(sinks, report.NewObjectSink(s.client, s.bucket, req.ReportObject))
	}
	return sinks
}

func (s *Service) write(ctx context.Context, sink report.Sink, result *reconcile.ValidationResult) error {
	if obj, ok := sink.(*report.ObjectSink); ok {
		if obj.Client == nil {
			return fmt.Errorf("cannot upload report to %s: %w", obj.Name(), location.ErrStorageUnavailable)
		}
		if err := storage.EnsureBucket(ctx, obj.Client, obj.Bucket, ""); err != nil {
			return err
		}
	}
	return sink.Write(ctx, result)
}

func (s *Service) record(ctx context.Context, runID string, req Request, m *reconcile.Mapping, summary reconcile.Summary, result *reconcile.ValidationResult) error {
	doc, err := report.Marshal(result)
	if err != nil {
		return err
	}

	run := &models.ValidationRun{
		ID:        runID,
		Source:    req.Source,
		Target:    req.Target,
		Mapping:   req.Mapping,
		UniqueKey: m.UniqueKey,
		Report:    string(doc),
	}
	run.Apply(summary)

	return s.repo.Create(ctx, run)
}
