package progress

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/batoulgheleb/crisiszone/internal/platform/tracer"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/metrics"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	"github.com/batoulgheleb/crisiszone/internal/sentinel"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
)

// Store is the read side the calculator needs.
// Error Contract: Find* return sentinel.ErrNotFound for missing records.
type Store interface {
	FindDoctorByID(ctx context.Context, doctorID id.DoctorID) (*models.Doctor, error)
	FindCurriculumByID(ctx context.Context, curriculumID id.CurriculumID) (*models.Curriculum, error)
	ListVerificationsByDoctor(ctx context.Context, doctorID id.DoctorID) ([]*models.Verification, error)
	FindSupervisorsByIDs(ctx context.Context, ids []id.SupervisorID) ([]*models.Supervisor, error)
}

// Viewer runs fn against committed state only.
type Viewer interface {
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cache stores computed reports under a version stamp.
//
// Stamp is read before a report is computed and handed back to Set, which
// stores the report only if no Invalidate or InvalidateAll happened in between.
// Get returns sentinel.ErrNotFound on a miss or for a retired report.
type Cache interface {
	Get(ctx context.Context, doctorID id.DoctorID) (*models.ProgressReport, error)
	Stamp(ctx context.Context, doctorID id.DoctorID) (string, error)
	Set(ctx context.Context, report *models.ProgressReport, stamp string) (bool, error)
	Invalidate(ctx context.Context, doctorID id.DoctorID) error
	InvalidateAll(ctx context.Context) error
}

type Option func(*Service)

// Service resolves a doctor's inputs and runs Calculate.
type Service struct {
	store   Store
	viewer  Viewer
	cache   Cache
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

func New(store Store, viewer Viewer, opts ...Option) *Service {
	svc := &Service{
		store:  store,
		viewer: viewer,
		logger: slog.New(slog.DiscardHandler),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// WithCache enables a read-through cache. Cache failures fall back to computing.
// Writes reach the cache through an Invalidator registered on the repository.
func WithCache(c Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// GetDoctorProgress returns the doctor's progress report. Unknown doctors and
// curricula yield CodeNotFound errors.
func (s *Service) GetDoctorProgress(ctx context.Context, doctorID id.DoctorID) (report *models.ProgressReport, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanDoctorProgress, tracer.String(tracer.AttrDoctorID, doctorID.String()))
	defer func() { span.End(err) }()

	if cached, ok := s.fromCache(ctx, span, doctorID); ok {
		span.SetAttributes(tracer.Bool(tracer.AttrCacheHit, true))
		return cached, nil
	}
	span.SetAttributes(tracer.Bool(tracer.AttrCacheHit, false))
	stamp, cacheable := s.stamp(ctx, doctorID)

	start := time.Now()
	err = s.viewer.View(ctx, func(ctx context.Context) error {
		var computeErr error
		report, computeErr = s.compute(ctx, doctorID)
		return computeErr
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveProgressComputation(start)
	}

	if cacheable {
		s.toCache(ctx, report, stamp)
	}
	return report, nil
}

func (s *Service) compute(ctx context.Context, doctorID id.DoctorID) (*models.ProgressReport, error) {
	doctor, err := s.store.FindDoctorByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.NotFound("Doctor", doctorID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load doctor")
	}

	curriculum, err := s.store.FindCurriculumByID(ctx, doctor.CurriculumID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.NotFound("Curriculum", doctor.CurriculumID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load curriculum")
	}

	verifications, err := s.store.ListVerificationsByDoctor(ctx, doctorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verifications")
	}

	supervisors, err := s.supervisorsFor(ctx, verifications)
	if err != nil {
		return nil, err
	}

	return Calculate(doctor, curriculum, verifications, supervisors, requestcontext.Now(ctx)), nil
}

func (s *Service) supervisorsFor(ctx context.Context, verifications []*models.Verification) (map[id.SupervisorID]*models.Supervisor, error) {
	seen := make(map[id.SupervisorID]bool)
	var ids []id.SupervisorID
	for _, v := range verifications {
		if !seen[v.SupervisorID] {
			seen[v.SupervisorID] = true
			ids = append(ids, v.SupervisorID)
		}
	}
	if len(ids) == 0 {
		return map[id.SupervisorID]*models.Supervisor{}, nil
	}

	found, err := s.store.FindSupervisorsByIDs(ctx, ids)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load supervisors")
	}
	byID := make(map[id.SupervisorID]*models.Supervisor, len(found))
	for _, sup := range found {
		byID[sup.ID] = sup
	}
	return byID, nil
}

func (s *Service) fromCache(ctx context.Context, span tracer.Span, doctorID id.DoctorID) (*models.ProgressReport, bool) {
	if s.cache == nil {
		return nil, false
	}
	report, err := s.cache.Get(ctx, doctorID)
	switch {
	case err == nil:
		s.countCache("hit")
		return report, true
	case errors.Is(err, sentinel.ErrNotFound):
		s.countCache("miss")
	default:
		s.countCache("error")
		span.AddEvent(tracer.EventCacheFallback)
		s.logger.WarnContext(ctx, "progress_cache_read_failed",
			"doctor_id", doctorID.String(),
			"error", err,
		)
	}
	return nil, false
}

// stamp must be taken before the computation starts; a report is only
// cacheable when the stamp could be read.
func (s *Service) stamp(ctx context.Context, doctorID id.DoctorID) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	stamp, err := s.cache.Stamp(ctx, doctorID)
	if err != nil {
		s.logger.WarnContext(ctx, "progress_cache_stamp_failed",
			"doctor_id", doctorID.String(),
			"error", err,
		)
		return "", false
	}
	return stamp, true
}

func (s *Service) toCache(ctx context.Context, report *models.ProgressReport, stamp string) {
	stored, err := s.cache.Set(ctx, report, stamp)
	if err != nil {
		s.logger.WarnContext(ctx, "progress_cache_write_failed",
			"doctor_id", report.DoctorID.String(),
			"error", err,
		)
		return
	}
	if !stored {
		s.countCache("stale")
	}
}

func (s *Service) countCache(result string) {
	if s.metrics != nil {
		s.metrics.IncrementProgressCache(result)
	}
}
