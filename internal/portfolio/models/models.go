package models

import (
	"slices"
	"strings"
	"time"

	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
)

// RequestTTL is how long a request stays verifiable after submission.
const RequestTTL = 30 * 24 * time.Hour

// Doctor is a trainee following one curriculum under a set of supervisors.
type Doctor struct {
	ID             id.DoctorID       `json:"id"`
	FirstName      string            `json:"firstName"`
	LastName       string            `json:"lastName"`
	Email          string            `json:"email"`
	PasswordHash   string            `json:"-"`
	Specialty      string            `json:"specialty"`
	YearOfTraining int               `json:"yearOfTraining"`
	CurriculumID   id.CurriculumID   `json:"curriculumId"`
	SupervisorIDs  []id.SupervisorID `json:"supervisors"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// HasSupervisor reports whether supervisorID is associated with the doctor.
func (d *Doctor) HasSupervisor(supervisorID id.SupervisorID) bool {
	return slices.Contains(d.SupervisorIDs, supervisorID)
}

func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// Clone returns a copy that shares no slices with d.
func (d *Doctor) Clone() *Doctor {
	c := *d
	c.SupervisorIDs = slices.Clone(d.SupervisorIDs)
	return &c
}

// Supervisor is a senior clinician who verifies procedures.
type Supervisor struct {
	ID                id.SupervisorID `json:"id"`
	FirstName         string          `json:"firstName"`
	LastName          string          `json:"lastName"`
	Email             string          `json:"email"`
	PasswordHash      string          `json:"-"`
	Title             string          `json:"title"`
	Specialty         string          `json:"specialty"`
	YearsOfExperience int             `json:"yearsOfExperience"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// DisplayName is the "First Last" form shown on verification summaries.
func (s *Supervisor) DisplayName() string {
	return s.FirstName + " " + s.LastName
}

func (s *Supervisor) Clone() *Supervisor {
	c := *s
	return &c
}

// Procedure is a curriculum requirement. It has no lifecycle of its own.
type Procedure struct {
	ID               id.ProcedureID `json:"id"`
	Name             string         `json:"name"`
	Code             string         `json:"code"`
	Category         string         `json:"category"`
	MinimumLevel     SkillLevel     `json:"minimumLevel"`
	MinimumCases     int            `json:"minimumCases"`
	TheoryRequired   bool           `json:"theoryRequired"`
	PracticeRequired bool           `json:"practiceRequired"`
}

// Curriculum is the ordered list of procedures for a specialty.
type Curriculum struct {
	ID         id.CurriculumID `json:"id"`
	Specialty  string          `json:"specialty"`
	Procedures []Procedure     `json:"procedures"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Procedure looks up a procedure by id within this curriculum.
func (c *Curriculum) Procedure(procedureID id.ProcedureID) (Procedure, bool) {
	for _, p := range c.Procedures {
		if p.ID == procedureID {
			return p, true
		}
	}
	return Procedure{}, false
}

func (c *Curriculum) Clone() *Curriculum {
	cp := *c
	cp.Procedures = slices.Clone(c.Procedures)
	return &cp
}

// Request asks a supervisor to verify one performed procedure.
// It is deleted when verified, so a stored Request is always unverified.
type Request struct {
	ID             id.RequestID    `json:"id"`
	DoctorID       id.DoctorID     `json:"doctorId"`
	SupervisorID   id.SupervisorID `json:"supervisorId"`
	ProcedureID    id.ProcedureID  `json:"procedureId"`
	RequestedLevel SkillLevel      `json:"requestedLevel"`
	Status         RequestStatus   `json:"status"`
	DatePerformed  time.Time       `json:"datePerformed"`
	Notes          string          `json:"notes"`
	Location       string          `json:"location"`
	Urgency        Urgency         `json:"urgency"`
	PatientAge     *int            `json:"patientAge,omitempty"`
	PatientSex     string          `json:"patientSex,omitempty"`
	Complications  string          `json:"complications,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	ExpiresAt      time.Time       `json:"expiresAt"`
}

// NewRequest creates a pending Request with domain invariant checks.
func NewRequest(requestID id.RequestID, doctorID id.DoctorID, supervisorID id.SupervisorID, procedureID id.ProcedureID,
	level SkillLevel, datePerformed time.Time, now time.Time) (*Request, error) {
	if requestID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "request ID required")
	}
	if doctorID.IsNil() || supervisorID.IsNil() || procedureID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "doctor, supervisor and procedure IDs required")
	}
	if !level.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid requested level")
	}
	if now.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "creation time required")
	}
	return &Request{
		ID:             requestID,
		DoctorID:       doctorID,
		SupervisorID:   supervisorID,
		ProcedureID:    procedureID,
		RequestedLevel: level,
		Status:         RequestPending,
		DatePerformed:  datePerformed,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      now.Add(RequestTTL),
	}, nil
}

// IsPending reports whether the request can still be verified or cancelled.
func (r *Request) IsPending() bool {
	return r.Status == RequestPending
}

// IsStale reports whether a pending request has passed its expiry at now.
func (r *Request) IsStale(now time.Time) bool {
	return r.IsPending() && r.ExpiresAt.Before(now)
}

func (r *Request) Clone() *Request {
	c := *r
	if r.PatientAge != nil {
		age := *r.PatientAge
		c.PatientAge = &age
	}
	return &c
}

// Verification is the supervisor's immutable assessment of a performed procedure.
type Verification struct {
	ID                  id.VerificationID `json:"id"`
	DoctorID            id.DoctorID       `json:"doctorId"`
	SupervisorID        id.SupervisorID   `json:"supervisorId"`
	ProcedureID         id.ProcedureID    `json:"procedureId"`
	RequestID           id.RequestID      `json:"requestId"`
	SkillLevel          SkillLevel        `json:"skillLevel"`
	Rating              int               `json:"rating"`
	DatePerformed       time.Time         `json:"datePerformed"`
	DateVerified        time.Time         `json:"dateVerified"`
	SupervisorNotes     string            `json:"supervisorNotes"`
	DoctorNotes         string            `json:"doctorNotes"`
	PatientAge          *int              `json:"patientAge,omitempty"`
	PatientSex          string            `json:"patientSex,omitempty"`
	Location            string            `json:"location"`
	Urgency             Urgency           `json:"urgency"`
	Complications       string            `json:"complications,omitempty"`
	AreasOfStrength     []string          `json:"areasOfStrength"`
	AreasForImprovement []string          `json:"areasForImprovement"`
	FollowUpRequired    bool              `json:"followUpRequired"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// Assessment is the supervisor's input when verifying a request.
type Assessment struct {
	SkillLevel          SkillLevel
	Rating              int
	Notes               string
	AreasOfStrength     []string
	AreasForImprovement []string
	FollowUpRequired    bool
}

// NewVerification builds the verification that consumes req. Case details are
// copied from the request; the assessment comes from the supervisor.
func NewVerification(verificationID id.VerificationID, req *Request, supervisorID id.SupervisorID, a Assessment, now time.Time) (*Verification, error) {
	if verificationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "verification ID required")
	}
	if req == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "originating request required")
	}
	if a.Rating < 1 || a.Rating > 5 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "rating must be between 1 and 5")
	}
	if !a.SkillLevel.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid skill level")
	}
	v := &Verification{
		ID:                  verificationID,
		DoctorID:            req.DoctorID,
		SupervisorID:        supervisorID,
		ProcedureID:         req.ProcedureID,
		RequestID:           req.ID,
		SkillLevel:          a.SkillLevel,
		Rating:              a.Rating,
		DatePerformed:       req.DatePerformed,
		DateVerified:        now,
		SupervisorNotes:     a.Notes,
		DoctorNotes:         req.Notes,
		PatientSex:          req.PatientSex,
		Location:            req.Location,
		Urgency:             req.Urgency,
		Complications:       req.Complications,
		AreasOfStrength:     nonNil(a.AreasOfStrength),
		AreasForImprovement: nonNil(a.AreasForImprovement),
		FollowUpRequired:    a.FollowUpRequired,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if req.PatientAge != nil {
		age := *req.PatientAge
		v.PatientAge = &age
	}
	return v, nil
}

// MentionsTheory reports whether the supervisor notes record theory coverage.
func (v *Verification) MentionsTheory() bool {
	return strings.Contains(strings.ToLower(v.SupervisorNotes), "theory")
}

func (v *Verification) Clone() *Verification {
	c := *v
	c.AreasOfStrength = slices.Clone(v.AreasOfStrength)
	c.AreasForImprovement = slices.Clone(v.AreasForImprovement)
	if v.PatientAge != nil {
		age := *v.PatientAge
		c.PatientAge = &age
	}
	return &c
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
