// Package testutil holds fixture builders and helpers shared by package tests.
package testutil

import (
	"time"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
)

// FixedNow is the reference clock for deterministic tests.
var FixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// TestIDs provides stable identifiers for tests.
var TestIDs = struct {
	Doctor1      id.DoctorID
	Doctor2      id.DoctorID
	Supervisor1  id.SupervisorID
	Supervisor2  id.SupervisorID
	Curriculum1  id.CurriculumID
	Procedure1   id.ProcedureID
	Procedure2   id.ProcedureID
	Procedure3   id.ProcedureID
	Request1     id.RequestID
	Verification id.VerificationID
}{
	Doctor1:      "doc-0001",
	Doctor2:      "doc-0002",
	Supervisor1:  "sup-0001",
	Supervisor2:  "sup-0002",
	Curriculum1:  "cur-general-surgery",
	Procedure1:   "proc-001",
	Procedure2:   "proc-002",
	Procedure3:   "proc-003",
	Request1:     "req-0001",
	Verification: "ver-0001",
}

// DoctorBuilder provides a fluent interface for building test doctors.
type DoctorBuilder struct {
	doctor *models.Doctor
}

// NewDoctorBuilder starts from a trainee linked to Supervisor1 on Curriculum1.
func NewDoctorBuilder() *DoctorBuilder {
	return &DoctorBuilder{
		doctor: &models.Doctor{
			ID:             TestIDs.Doctor1,
			FirstName:      "Sarah",
			LastName:       "Johnson",
			Email:          "sarah.johnson@hospital.nhs.uk",
			Specialty:      "General Surgery",
			YearOfTraining: 3,
			CurriculumID:   TestIDs.Curriculum1,
			SupervisorIDs:  []id.SupervisorID{TestIDs.Supervisor1},
			CreatedAt:      FixedNow,
			UpdatedAt:      FixedNow,
		},
	}
}

func (b *DoctorBuilder) WithID(doctorID id.DoctorID) *DoctorBuilder {
	b.doctor.ID = doctorID
	return b
}

func (b *DoctorBuilder) WithEmail(email string) *DoctorBuilder {
	b.doctor.Email = email
	return b
}

func (b *DoctorBuilder) WithCurriculum(curriculumID id.CurriculumID) *DoctorBuilder {
	b.doctor.CurriculumID = curriculumID
	return b
}

func (b *DoctorBuilder) WithSupervisors(ids ...id.SupervisorID) *DoctorBuilder {
	b.doctor.SupervisorIDs = ids
	return b
}

func (b *DoctorBuilder) Build() *models.Doctor {
	return b.doctor
}

// SupervisorBuilder provides a fluent interface for building test supervisors.
type SupervisorBuilder struct {
	supervisor *models.Supervisor
}

func NewSupervisorBuilder() *SupervisorBuilder {
	return &SupervisorBuilder{
		supervisor: &models.Supervisor{
			ID:                TestIDs.Supervisor1,
			FirstName:         "James",
			LastName:          "Wilson",
			Email:             "james.wilson@hospital.nhs.uk",
			Title:             "Consultant Surgeon",
			Specialty:         "General Surgery",
			YearsOfExperience: 15,
			CreatedAt:         FixedNow,
			UpdatedAt:         FixedNow,
		},
	}
}

func (b *SupervisorBuilder) WithID(supervisorID id.SupervisorID) *SupervisorBuilder {
	b.supervisor.ID = supervisorID
	return b
}

func (b *SupervisorBuilder) WithName(firstName, lastName string) *SupervisorBuilder {
	b.supervisor.FirstName = firstName
	b.supervisor.LastName = lastName
	return b
}

func (b *SupervisorBuilder) WithEmail(email string) *SupervisorBuilder {
	b.supervisor.Email = email
	return b
}

func (b *SupervisorBuilder) Build() *models.Supervisor {
	return b.supervisor
}

// NewTestCurriculum returns Curriculum1 with three procedures:
// Procedure1 (Supervised, 10 cases, theory), Procedure2 (Independent, 5 cases)
// and Procedure3 (Observed, 0 cases).
func NewTestCurriculum() *models.Curriculum {
	return &models.Curriculum{
		ID:        TestIDs.Curriculum1,
		Specialty: "General Surgery",
		Procedures: []models.Procedure{
			{ID: TestIDs.Procedure1, Name: "Appendicectomy", Code: "GS-APP", Category: "Emergency Surgery",
				MinimumLevel: models.SkillSupervised, MinimumCases: 10, TheoryRequired: true, PracticeRequired: true},
			{ID: TestIDs.Procedure2, Name: "Inguinal Hernia Repair", Code: "GS-IHR", Category: "Elective Surgery",
				MinimumLevel: models.SkillIndependent, MinimumCases: 5, PracticeRequired: true},
			{ID: TestIDs.Procedure3, Name: "Diagnostic Laparoscopy", Code: "GS-DLP", Category: "Minimal Access",
				MinimumLevel: models.SkillObserved, MinimumCases: 0},
		},
		CreatedAt: FixedNow,
		UpdatedAt: FixedNow,
	}
}

// RequestBuilder provides a fluent interface for building pending requests.
type RequestBuilder struct {
	request *models.Request
}

func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		request: &models.Request{
			ID:             TestIDs.Request1,
			DoctorID:       TestIDs.Doctor1,
			SupervisorID:   TestIDs.Supervisor1,
			ProcedureID:    TestIDs.Procedure1,
			RequestedLevel: models.SkillSupervised,
			Status:         models.RequestPending,
			DatePerformed:  FixedNow.Add(-24 * time.Hour),
			Notes:          "Laparoscopic approach, uncomplicated",
			Location:       "Theatre 3",
			Urgency:        models.UrgencyRoutine,
			CreatedAt:      FixedNow,
			UpdatedAt:      FixedNow,
			ExpiresAt:      FixedNow.Add(models.RequestTTL),
		},
	}
}

func (b *RequestBuilder) WithID(requestID id.RequestID) *RequestBuilder {
	b.request.ID = requestID
	return b
}

func (b *RequestBuilder) WithDoctor(doctorID id.DoctorID) *RequestBuilder {
	b.request.DoctorID = doctorID
	return b
}

func (b *RequestBuilder) WithSupervisor(supervisorID id.SupervisorID) *RequestBuilder {
	b.request.SupervisorID = supervisorID
	return b
}

func (b *RequestBuilder) WithProcedure(procedureID id.ProcedureID) *RequestBuilder {
	b.request.ProcedureID = procedureID
	return b
}

func (b *RequestBuilder) WithStatus(status models.RequestStatus) *RequestBuilder {
	b.request.Status = status
	return b
}

func (b *RequestBuilder) WithPatientAge(age int) *RequestBuilder {
	b.request.PatientAge = &age
	return b
}

func (b *RequestBuilder) ExpiresAt(t time.Time) *RequestBuilder {
	b.request.ExpiresAt = t
	return b
}

func (b *RequestBuilder) Build() *models.Request {
	return b.request
}

// VerificationBuilder provides a fluent interface for building verifications.
type VerificationBuilder struct {
	verification *models.Verification
}

func NewVerificationBuilder() *VerificationBuilder {
	return &VerificationBuilder{
		verification: &models.Verification{
			ID:                  TestIDs.Verification,
			DoctorID:            TestIDs.Doctor1,
			SupervisorID:        TestIDs.Supervisor1,
			ProcedureID:         TestIDs.Procedure1,
			RequestID:           TestIDs.Request1,
			SkillLevel:          models.SkillSupervised,
			Rating:              4,
			DatePerformed:       FixedNow.Add(-24 * time.Hour),
			DateVerified:        FixedNow,
			SupervisorNotes:     "Safe technique",
			Location:            "Theatre 3",
			Urgency:             models.UrgencyRoutine,
			AreasOfStrength:     []string{},
			AreasForImprovement: []string{},
			CreatedAt:           FixedNow,
			UpdatedAt:           FixedNow,
		},
	}
}

func (b *VerificationBuilder) WithID(verificationID id.VerificationID) *VerificationBuilder {
	b.verification.ID = verificationID
	return b
}

func (b *VerificationBuilder) WithDoctor(doctorID id.DoctorID) *VerificationBuilder {
	b.verification.DoctorID = doctorID
	return b
}

func (b *VerificationBuilder) WithSupervisor(supervisorID id.SupervisorID) *VerificationBuilder {
	b.verification.SupervisorID = supervisorID
	return b
}

func (b *VerificationBuilder) WithProcedure(procedureID id.ProcedureID) *VerificationBuilder {
	b.verification.ProcedureID = procedureID
	return b
}

func (b *VerificationBuilder) WithRequest(requestID id.RequestID) *VerificationBuilder {
	b.verification.RequestID = requestID
	return b
}

func (b *VerificationBuilder) WithLevel(level models.SkillLevel) *VerificationBuilder {
	b.verification.SkillLevel = level
	return b
}

func (b *VerificationBuilder) WithRating(rating int) *VerificationBuilder {
	b.verification.Rating = rating
	return b
}

func (b *VerificationBuilder) WithNotes(notes string) *VerificationBuilder {
	b.verification.SupervisorNotes = notes
	return b
}

func (b *VerificationBuilder) VerifiedAt(t time.Time) *VerificationBuilder {
	b.verification.DateVerified = t
	return b
}

func (b *VerificationBuilder) Build() *models.Verification {
	return b.verification
}
