// Package seeder loads a small general surgery portfolio so a fresh server
// has something to show.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	"github.com/batoulgheleb/crisiszone/internal/sentinel"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
	"github.com/batoulgheleb/crisiszone/pkg/secrets"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "portfolio-demo"

// Demo identifiers are stable so restarts against Postgres are idempotent.
const (
	DemoCurriculumID  id.CurriculumID = "cur-general-surgery"
	DemoDoctorID      id.DoctorID     = "doc-demo-001"
	DemoSupervisorID1 id.SupervisorID = "sup-demo-001"
	DemoSupervisorID2 id.SupervisorID = "sup-demo-002"
	DemoSpecialty                     = "General Surgery"
)

// Store is the slice of the repository the seeder writes to.
type Store interface {
	CreateCurriculum(ctx context.Context, c *models.Curriculum) error
	FindCurriculumBySpecialty(ctx context.Context, specialty string) (*models.Curriculum, error)
	CreateSupervisor(ctx context.Context, s *models.Supervisor) error
	CreateDoctor(ctx context.Context, d *models.Doctor) error
	CreateVerification(ctx context.Context, v *models.Verification) error
	CreateRequest(ctx context.Context, r *models.Request) error
}

// TxRunner makes the whole seed all-or-nothing.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Seeder populates the repository with demo data
type Seeder struct {
	store      Store
	tx         TxRunner
	logger     *slog.Logger
	bcryptCost int
}

type Option func(*Seeder)

// WithBcryptCost lowers the hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Seeder) {
		s.bcryptCost = cost
	}
}

func New(store Store, tx TxRunner, logger *slog.Logger, opts ...Option) *Seeder {
	s := &Seeder{
		store:      store,
		tx:         tx,
		logger:     logger,
		bcryptCost: secrets.Cost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeedAll loads the demo curriculum, supervisors, doctor, history and one
// pending request. It is a no-op when the demo curriculum already exists.
func (s *Seeder) SeedAll(ctx context.Context) error {
	if _, err := s.store.FindCurriculumBySpecialty(ctx, DemoSpecialty); err == nil {
		s.logger.InfoContext(ctx, "demo data already present, skipping seed")
		return nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return fmt.Errorf("check demo curriculum: %w", err)
	}

	hash, err := secrets.HashWithCost(DemoPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	now := requestcontext.Now(ctx)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.CreateCurriculum(ctx, demoCurriculum(now)); err != nil {
			return fmt.Errorf("failed to seed curriculum: %w", err)
		}
		for _, sup := range demoSupervisors(hash, now) {
			if err := s.store.CreateSupervisor(ctx, sup); err != nil {
				return fmt.Errorf("failed to seed supervisor %s: %w", sup.ID, err)
			}
		}
		if err := s.store.CreateDoctor(ctx, demoDoctor(hash, now)); err != nil {
			return fmt.Errorf("failed to seed doctor: %w", err)
		}
		for _, v := range demoVerifications(now) {
			if err := s.store.CreateVerification(ctx, v); err != nil {
				return fmt.Errorf("failed to seed verification %s: %w", v.ID, err)
			}
		}
		if err := s.store.CreateRequest(ctx, demoRequest(now)); err != nil {
			return fmt.Errorf("failed to seed request: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "demo data seeded",
		"doctor_id", DemoDoctorID.String(),
		"curriculum_id", DemoCurriculumID.String(),
	)
	return nil
}

func demoCurriculum(now time.Time) *models.Curriculum {
	return &models.Curriculum{
		ID:        DemoCurriculumID,
		Specialty: DemoSpecialty,
		Procedures: []models.Procedure{
			{ID: "proc-gs-001", Name: "Laparoscopic appendicectomy", Code: "GS-APP", Category: "Abdominal",
				MinimumLevel: models.SkillSupervised, MinimumCases: 10, TheoryRequired: true, PracticeRequired: true},
			{ID: "proc-gs-002", Name: "Open inguinal hernia repair", Code: "GS-HER", Category: "Abdominal wall",
				MinimumLevel: models.SkillSupervised, MinimumCases: 8, TheoryRequired: true, PracticeRequired: true},
			{ID: "proc-gs-003", Name: "Laparoscopic cholecystectomy", Code: "GS-CHOL", Category: "Hepatobiliary",
				MinimumLevel: models.SkillIndependent, MinimumCases: 15, TheoryRequired: true, PracticeRequired: true},
			{ID: "proc-gs-004", Name: "Excision of skin lesion", Code: "GS-SKN", Category: "Minor operations",
				MinimumLevel: models.SkillIndependent, MinimumCases: 5, PracticeRequired: true},
			{ID: "proc-gs-005", Name: "Central venous catheter insertion", Code: "GS-CVC", Category: "Critical care",
				MinimumLevel: models.SkillSupervised, MinimumCases: 5, TheoryRequired: true, PracticeRequired: true},
			{ID: "proc-gs-006", Name: "Emergency laparotomy", Code: "GS-LAP", Category: "Emergency",
				MinimumLevel: models.SkillAssisted, MinimumCases: 3, TheoryRequired: true},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func demoSupervisors(hash string, now time.Time) []*models.Supervisor {
	return []*models.Supervisor{
		{ID: DemoSupervisorID1, FirstName: "James", LastName: "Wilson", Email: "james.wilson@hospital.nhs.uk",
			PasswordHash: hash, Title: "Consultant General Surgeon", Specialty: DemoSpecialty, YearsOfExperience: 18,
			CreatedAt: now, UpdatedAt: now},
		{ID: DemoSupervisorID2, FirstName: "Priya", LastName: "Patel", Email: "priya.patel@hospital.nhs.uk",
			PasswordHash: hash, Title: "Consultant Colorectal Surgeon", Specialty: DemoSpecialty, YearsOfExperience: 12,
			CreatedAt: now, UpdatedAt: now},
	}
}

func demoDoctor(hash string, now time.Time) *models.Doctor {
	return &models.Doctor{
		ID:             DemoDoctorID,
		FirstName:      "Sarah",
		LastName:       "Johnson",
		Email:          "sarah.johnson@hospital.nhs.uk",
		PasswordHash:   hash,
		Specialty:      DemoSpecialty,
		YearOfTraining: 3,
		CurriculumID:   DemoCurriculumID,
		SupervisorIDs:  []id.SupervisorID{DemoSupervisorID1, DemoSupervisorID2},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func demoVerifications(now time.Time) []*models.Verification {
	day := 24 * time.Hour
	history := []struct {
		id         id.VerificationID
		supervisor id.SupervisorID
		procedure  id.ProcedureID
		level      models.SkillLevel
		rating     int
		notes      string
		ago        time.Duration
	}{
		{"ver-demo-001", DemoSupervisorID1, "proc-gs-001", models.SkillAssisted, 3,
			"Good port placement, needs more confidence with the mesoappendix", 60 * day},
		{"ver-demo-002", DemoSupervisorID1, "proc-gs-001", models.SkillSupervised, 4,
			"Discussed theory of acute appendicitis scoring, safe dissection", 30 * day},
		{"ver-demo-003", DemoSupervisorID2, "proc-gs-001", models.SkillSupervised, 5,
			"Fluent case from start to finish", 10 * day},
		{"ver-demo-004", DemoSupervisorID2, "proc-gs-004", models.SkillIndependent, 5,
			"Appropriate margins, neat closure", 5 * day},
	}

	out := make([]*models.Verification, 0, len(history))
	for _, h := range history {
		verified := now.Add(-h.ago)
		out = append(out, &models.Verification{
			ID:                  h.id,
			DoctorID:            DemoDoctorID,
			SupervisorID:        h.supervisor,
			ProcedureID:         h.procedure,
			SkillLevel:          h.level,
			Rating:              h.rating,
			DatePerformed:       verified.Add(-day),
			DateVerified:        verified,
			SupervisorNotes:     h.notes,
			DoctorNotes:         "Elective list",
			Location:            "Main theatres",
			Urgency:             models.UrgencyRoutine,
			AreasOfStrength:     []string{},
			AreasForImprovement: []string{},
			CreatedAt:           verified,
			UpdatedAt:           verified,
		})
	}
	return out
}

func demoRequest(now time.Time) *models.Request {
	return &models.Request{
		ID:             "req-demo-001",
		DoctorID:       DemoDoctorID,
		SupervisorID:   DemoSupervisorID2,
		ProcedureID:    "proc-gs-002",
		RequestedLevel: models.SkillSupervised,
		Status:         models.RequestPending,
		DatePerformed:  now.Add(-48 * time.Hour),
		Notes:          "Lichtenstein repair, right side",
		Location:       "Day surgery unit",
		Urgency:        models.UrgencyRoutine,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      now.Add(models.RequestTTL),
	}
}
