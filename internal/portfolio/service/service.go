package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/batoulgheleb/crisiszone/internal/platform/tracer"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/metrics"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// Store interfaces follow the repository Error Contract: Find* return
// sentinel.ErrNotFound, List* never return nil slices, Create* return
// sentinel.ErrAlreadyUsed on duplicates.

type DoctorStore interface {
	FindDoctorByID(ctx context.Context, doctorID id.DoctorID) (*models.Doctor, error)
}

type SupervisorStore interface {
	FindSupervisorByID(ctx context.Context, supervisorID id.SupervisorID) (*models.Supervisor, error)
	FindSupervisorsByIDs(ctx context.Context, ids []id.SupervisorID) ([]*models.Supervisor, error)
}

type CurriculumStore interface {
	FindCurriculumByID(ctx context.Context, curriculumID id.CurriculumID) (*models.Curriculum, error)
	FindProcedureInCurriculum(ctx context.Context, curriculumID id.CurriculumID, procedureID id.ProcedureID) (*models.Procedure, error)
}

type RequestStore interface {
	CreateRequest(ctx context.Context, r *models.Request) error
	// FindRequestForUpdate and ListRequestsByStatusForUpdate hold the rows
	// until the surrounding RunInTx ends, so workflows deciding on a request's
	// status never act on a row another transaction is changing.
	FindRequestForUpdate(ctx context.Context, requestID id.RequestID) (*models.Request, error)
	ListRequestsByDoctor(ctx context.Context, doctorID id.DoctorID) ([]*models.Request, error)
	ListRequestsBySupervisor(ctx context.Context, supervisorID id.SupervisorID) ([]*models.Request, error)
	ListRequestsByStatusForUpdate(ctx context.Context, status models.RequestStatus) ([]*models.Request, error)
	UpdateRequest(ctx context.Context, r *models.Request) error
	DeleteRequest(ctx context.Context, requestID id.RequestID) (bool, error)
}

type VerificationStore interface {
	CreateVerification(ctx context.Context, v *models.Verification) error
	ListVerificationsBySupervisor(ctx context.Context, supervisorID id.SupervisorID) ([]*models.Verification, error)
}

type StatsStore interface {
	DoctorStats(ctx context.Context, doctorID id.DoctorID) (models.DoctorStats, error)
	SupervisorStats(ctx context.Context, supervisorID id.SupervisorID) (models.SupervisorStats, error)
}

// TxRunner scopes a unit of work. RunInTx commits when fn returns nil and
// rolls back otherwise; View runs fn against committed state.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProgressService computes progress reports. Its cache is invalidated by the
// repository after commit, not by the workflows.
type ProgressService interface {
	GetDoctorProgress(ctx context.Context, doctorID id.DoctorID) (*models.ProgressReport, error)
}

// EventPublisher announces committed changes. Implementations never fail the caller.
type EventPublisher interface {
	RequestSubmitted(ctx context.Context, r *models.Request)
	VerificationRecorded(ctx context.Context, v *models.Verification)
	RequestExpired(ctx context.Context, r *models.Request)
	RequestCancelled(ctx context.Context, r *models.Request)
}

// Stores groups the repositories the workflows read and write. A single
// repository (store.InMemory or store.PostgresStore) satisfies all of them.
type Stores struct {
	Doctors       DoctorStore
	Supervisors   SupervisorStore
	Curricula     CurriculumStore
	Requests      RequestStore
	Verifications VerificationStore
	Stats         StatsStore
}

type Option func(*Service)

// Service runs the request and verification workflows, the request lifecycle
// and the dashboard read models.
type Service struct {
	doctors       DoctorStore
	supervisors   SupervisorStore
	curricula     CurriculumStore
	requests      RequestStore
	verifications VerificationStore
	stats         StatsStore
	tx            TxRunner
	progress      ProgressService

	validate   *validator.Validate
	requestTTL time.Duration
	events     EventPublisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     tracer.Tracer
}

func New(stores Stores, tx TxRunner, progress ProgressService, opts ...Option) *Service {
	svc := &Service{
		doctors:       stores.Doctors,
		supervisors:   stores.Supervisors,
		curricula:     stores.Curricula,
		requests:      stores.Requests,
		verifications: stores.Verifications,
		stats:         stores.Stats,
		tx:            tx,
		progress:      progress,
		validate:      newValidator(),
		requestTTL:    models.RequestTTL,
		logger:        slog.New(slog.DiscardHandler),
		tracer:        tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
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

// WithEvents publishes domain events after each committed change.
func WithEvents(p EventPublisher) Option {
	return func(s *Service) {
		s.events = p
	}
}

// WithRequestTTL sets how long new requests stay verifiable.
func WithRequestTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.requestTTL = ttl
		}
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// GetDoctorProgress delegates to the progress service.
func (s *Service) GetDoctorProgress(ctx context.Context, doctorID id.DoctorID) (*models.ProgressReport, error) {
	return s.progress.GetDoctorProgress(ctx, doctorID)
}
