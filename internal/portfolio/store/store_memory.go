// Package store persists e-portfolio entities.
//
// Error Contract:
//   - Find* returns sentinel.ErrNotFound when the record does not exist
//   - List* returns an empty (non-nil) slice when nothing matches
//   - Delete* reports false when the record did not exist
//   - Create* returns sentinel.ErrAlreadyUsed for a duplicate id or email
//   - Update* returns sentinel.ErrNotFound for a missing record and stamps UpdatedAt
package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	"github.com/batoulgheleb/crisiszone/internal/sentinel"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
)

// state is every mutable collection; the coordinator snapshots it as a unit.
type state struct {
	doctors       *table[id.DoctorID, *models.Doctor]
	supervisors   *table[id.SupervisorID, *models.Supervisor]
	curricula     *table[id.CurriculumID, *models.Curriculum]
	requests      *table[id.RequestID, *models.Request]
	verifications *table[id.VerificationID, *models.Verification]
}

func newState() *state {
	return &state{
		doctors:       newTable[id.DoctorID, *models.Doctor](),
		supervisors:   newTable[id.SupervisorID, *models.Supervisor](),
		curricula:     newTable[id.CurriculumID, *models.Curriculum](),
		requests:      newTable[id.RequestID, *models.Request](),
		verifications: newTable[id.VerificationID, *models.Verification](),
	}
}

func (s *state) clone() *state {
	return &state{
		doctors:       s.doctors.clone(),
		supervisors:   s.supervisors.clone(),
		curricula:     s.curricula.clone(),
		requests:      s.requests.clone(),
		verifications: s.verifications.clone(),
	}
}

// InMemory is the process-local repository. Nothing survives a restart.
type InMemory struct {
	notifier

	mu    sync.RWMutex
	state *state
}

// NewInMemory constructs an empty repository.
func NewInMemory(opts ...Option) *InMemory {
	return &InMemory{notifier: newNotifier(opts), state: newState()}
}

// Doctors

func (s *InMemory) CreateDoctor(_ context.Context, d *models.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.doctors.has(d.ID) || s.doctorEmailTaken(d.Email, d.ID) {
		return sentinel.ErrAlreadyUsed
	}
	s.state.doctors.put(d.ID, d)
	return nil
}

func (s *InMemory) FindDoctorByID(_ context.Context, doctorID id.DoctorID) (*models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.state.doctors.get(doctorID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return d, nil
}

func (s *InMemory) FindDoctorByEmail(_ context.Context, email string) (*models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := s.state.doctors.filter(func(d *models.Doctor) bool { return strings.EqualFold(d.Email, email) })
	if len(found) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return found[0], nil
}

func (s *InMemory) ListDoctors(_ context.Context) ([]*models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.doctors.filter(nil), nil
}

func (s *InMemory) UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	s.mu.Lock()
	if !s.state.doctors.has(d.ID) {
		s.mu.Unlock()
		return sentinel.ErrNotFound
	}
	if s.doctorEmailTaken(d.Email, d.ID) {
		s.mu.Unlock()
		return sentinel.ErrAlreadyUsed
	}
	d.UpdatedAt = requestcontext.Now(ctx)
	s.state.doctors.put(d.ID, d)
	s.mu.Unlock()

	s.doctorChanged(ctx, d.ID)
	return nil
}

func (s *InMemory) DeleteDoctor(ctx context.Context, doctorID id.DoctorID) (bool, error) {
	s.mu.Lock()
	ok := s.state.doctors.delete(doctorID)
	s.mu.Unlock()
	if ok {
		s.doctorChanged(ctx, doctorID)
	}
	return ok, nil
}

func (s *InMemory) doctorEmailTaken(email string, except id.DoctorID) bool {
	if email == "" {
		return false
	}
	taken := false
	s.state.doctors.each(func(d *models.Doctor) {
		if d.ID != except && strings.EqualFold(d.Email, email) {
			taken = true
		}
	})
	return taken
}

// Supervisors

func (s *InMemory) CreateSupervisor(ctx context.Context, sup *models.Supervisor) error {
	s.mu.Lock()
	if s.state.supervisors.has(sup.ID) || s.supervisorEmailTaken(sup.Email, sup.ID) {
		s.mu.Unlock()
		return sentinel.ErrAlreadyUsed
	}
	s.state.supervisors.put(sup.ID, sup)
	s.mu.Unlock()

	s.referenceDataChanged(ctx)
	return nil
}

func (s *InMemory) FindSupervisorByID(_ context.Context, supervisorID id.SupervisorID) (*models.Supervisor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sup, ok := s.state.supervisors.get(supervisorID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return sup, nil
}

func (s *InMemory) FindSupervisorByEmail(_ context.Context, email string) (*models.Supervisor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := s.state.supervisors.filter(func(sup *models.Supervisor) bool { return strings.EqualFold(sup.Email, email) })
	if len(found) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return found[0], nil
}

// FindSupervisorsByIDs returns the supervisors that exist, in the order of ids.
// Unknown ids are skipped.
func (s *InMemory) FindSupervisorsByIDs(_ context.Context, ids []id.SupervisorID) ([]*models.Supervisor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Supervisor, 0, len(ids))
	for _, supervisorID := range ids {
		if sup, ok := s.state.supervisors.get(supervisorID); ok {
			out = append(out, sup)
		}
	}
	return out, nil
}

func (s *InMemory) ListSupervisors(_ context.Context) ([]*models.Supervisor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.supervisors.filter(nil), nil
}

func (s *InMemory) UpdateSupervisor(ctx context.Context, sup *models.Supervisor) error {
	s.mu.Lock()
	if !s.state.supervisors.has(sup.ID) {
		s.mu.Unlock()
		return sentinel.ErrNotFound
	}
	if s.supervisorEmailTaken(sup.Email, sup.ID) {
		s.mu.Unlock()
		return sentinel.ErrAlreadyUsed
	}
	sup.UpdatedAt = requestcontext.Now(ctx)
	s.state.supervisors.put(sup.ID, sup)
	s.mu.Unlock()

	s.referenceDataChanged(ctx)
	return nil
}

func (s *InMemory) DeleteSupervisor(ctx context.Context, supervisorID id.SupervisorID) (bool, error) {
	s.mu.Lock()
	ok := s.state.supervisors.delete(supervisorID)
	s.mu.Unlock()
	if ok {
		s.referenceDataChanged(ctx)
	}
	return ok, nil
}

func (s *InMemory) supervisorEmailTaken(email string, except id.SupervisorID) bool {
	if email == "" {
		return false
	}
	taken := false
	s.state.supervisors.each(func(sup *models.Supervisor) {
		if sup.ID != except && strings.EqualFold(sup.Email, email) {
			taken = true
		}
	})
	return taken
}

// Curricula

func (s *InMemory) CreateCurriculum(_ context.Context, c *models.Curriculum) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.curricula.has(c.ID) {
		return sentinel.ErrAlreadyUsed
	}
	s.state.curricula.put(c.ID, c)
	return nil
}

func (s *InMemory) FindCurriculumByID(_ context.Context, curriculumID id.CurriculumID) (*models.Curriculum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.curricula.get(curriculumID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return c, nil
}

func (s *InMemory) FindCurriculumBySpecialty(_ context.Context, specialty string) (*models.Curriculum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := s.state.curricula.filter(func(c *models.Curriculum) bool { return c.Specialty == specialty })
	if len(found) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return found[0], nil
}

func (s *InMemory) ListCurricula(_ context.Context) ([]*models.Curriculum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.curricula.filter(nil), nil
}

func (s *InMemory) UpdateCurriculum(ctx context.Context, c *models.Curriculum) error {
	s.mu.Lock()
	if !s.state.curricula.has(c.ID) {
		s.mu.Unlock()
		return sentinel.ErrNotFound
	}
	c.UpdatedAt = requestcontext.Now(ctx)
	s.state.curricula.put(c.ID, c)
	s.mu.Unlock()

	s.referenceDataChanged(ctx)
	return nil
}

func (s *InMemory) DeleteCurriculum(ctx context.Context, curriculumID id.CurriculumID) (bool, error) {
	s.mu.Lock()
	ok := s.state.curricula.delete(curriculumID)
	s.mu.Unlock()
	if ok {
		s.referenceDataChanged(ctx)
	}
	return ok, nil
}

// FindProcedureByID searches every curriculum and returns the first match.
func (s *InMemory) FindProcedureByID(_ context.Context, procedureID id.ProcedureID) (*models.Procedure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *models.Procedure
	s.state.curricula.each(func(c *models.Curriculum) {
		if found != nil {
			return
		}
		if p, ok := c.Procedure(procedureID); ok {
			found = &p
		}
	})
	if found == nil {
		return nil, sentinel.ErrNotFound
	}
	return found, nil
}

func (s *InMemory) FindProcedureInCurriculum(_ context.Context, curriculumID id.CurriculumID, procedureID id.ProcedureID) (*models.Procedure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.curricula.get(curriculumID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	p, ok := c.Procedure(procedureID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &p, nil
}

// Requests

func (s *InMemory) CreateRequest(_ context.Context, r *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.requests.has(r.ID) {
		return sentinel.ErrAlreadyUsed
	}
	s.state.requests.put(r.ID, r)
	return nil
}

func (s *InMemory) FindRequestByID(_ context.Context, requestID id.RequestID) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.state.requests.get(requestID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return r, nil
}

// FindRequestForUpdate is FindRequestByID; the coordinator already admits one writer at a time.
func (s *InMemory) FindRequestForUpdate(ctx context.Context, requestID id.RequestID) (*models.Request, error) {
	return s.FindRequestByID(ctx, requestID)
}

func (s *InMemory) ListRequestsByDoctor(_ context.Context, doctorID id.DoctorID) ([]*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.requests.filter(func(r *models.Request) bool { return r.DoctorID == doctorID }), nil
}

func (s *InMemory) ListRequestsBySupervisor(_ context.Context, supervisorID id.SupervisorID) ([]*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.requests.filter(func(r *models.Request) bool { return r.SupervisorID == supervisorID }), nil
}

func (s *InMemory) ListRequestsByStatus(_ context.Context, status models.RequestStatus) ([]*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.requests.filter(func(r *models.Request) bool { return r.Status == status }), nil
}

func (s *InMemory) ListRequestsByStatusForUpdate(ctx context.Context, status models.RequestStatus) ([]*models.Request, error) {
	return s.ListRequestsByStatus(ctx, status)
}

func (s *InMemory) UpdateRequest(ctx context.Context, r *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.requests.has(r.ID) {
		return sentinel.ErrNotFound
	}
	r.UpdatedAt = requestcontext.Now(ctx)
	s.state.requests.put(r.ID, r)
	return nil
}

func (s *InMemory) DeleteRequest(_ context.Context, requestID id.RequestID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.requests.delete(requestID), nil
}

// Verifications

func (s *InMemory) CreateVerification(ctx context.Context, v *models.Verification) error {
	s.mu.Lock()
	if s.state.verifications.has(v.ID) || s.requestAlreadyVerified(v.RequestID) {
		s.mu.Unlock()
		return sentinel.ErrAlreadyUsed
	}
	s.state.verifications.put(v.ID, v)
	s.mu.Unlock()

	s.doctorChanged(ctx, v.DoctorID)
	return nil
}

func (s *InMemory) requestAlreadyVerified(requestID id.RequestID) bool {
	if requestID.IsNil() {
		return false
	}
	verified := false
	s.state.verifications.each(func(v *models.Verification) {
		if v.RequestID == requestID {
			verified = true
		}
	})
	return verified
}

func (s *InMemory) FindVerificationByID(_ context.Context, verificationID id.VerificationID) (*models.Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state.verifications.get(verificationID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return v, nil
}

func (s *InMemory) ListVerificationsByDoctor(_ context.Context, doctorID id.DoctorID) ([]*models.Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.verifications.filter(func(v *models.Verification) bool { return v.DoctorID == doctorID }), nil
}

func (s *InMemory) ListVerificationsBySupervisor(_ context.Context, supervisorID id.SupervisorID) ([]*models.Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.verifications.filter(func(v *models.Verification) bool { return v.SupervisorID == supervisorID }), nil
}

func (s *InMemory) ListVerificationsByProcedure(_ context.Context, procedureID id.ProcedureID) ([]*models.Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.verifications.filter(func(v *models.Verification) bool { return v.ProcedureID == procedureID }), nil
}

func (s *InMemory) ListVerificationsByDoctorAndProcedure(_ context.Context, doctorID id.DoctorID, procedureID id.ProcedureID) ([]*models.Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.verifications.filter(func(v *models.Verification) bool {
		return v.DoctorID == doctorID && v.ProcedureID == procedureID
	}), nil
}

// UpdateVerification exists for administrative correction; no workflow calls it.
func (s *InMemory) UpdateVerification(ctx context.Context, v *models.Verification) error {
	s.mu.Lock()
	prev, ok := s.state.verifications.get(v.ID)
	if !ok {
		s.mu.Unlock()
		return sentinel.ErrNotFound
	}
	v.UpdatedAt = requestcontext.Now(ctx)
	s.state.verifications.put(v.ID, v)
	s.mu.Unlock()

	s.doctorChanged(ctx, v.DoctorID)
	if prev.DoctorID != v.DoctorID {
		s.doctorChanged(ctx, prev.DoctorID)
	}
	return nil
}

// DeleteVerification exists for administrative correction; no workflow calls it.
func (s *InMemory) DeleteVerification(ctx context.Context, verificationID id.VerificationID) (bool, error) {
	s.mu.Lock()
	v, ok := s.state.verifications.get(verificationID)
	if ok {
		s.state.verifications.delete(verificationID)
	}
	s.mu.Unlock()
	if ok {
		s.doctorChanged(ctx, v.DoctorID)
	}
	return ok, nil
}

// Aggregates

func (s *InMemory) DoctorStats(_ context.Context, doctorID id.DoctorID) (models.DoctorStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats models.DoctorStats
	ratingSum := 0
	s.state.verifications.each(func(v *models.Verification) {
		if v.DoctorID == doctorID {
			stats.TotalVerifications++
			ratingSum += v.Rating
		}
	})
	s.state.requests.each(func(r *models.Request) {
		if r.DoctorID == doctorID && r.IsPending() {
			stats.PendingRequests++
		}
	})
	if stats.TotalVerifications > 0 {
		stats.AverageRating = float64(ratingSum) / float64(stats.TotalVerifications)
	}
	return stats, nil
}

func (s *InMemory) SupervisorStats(_ context.Context, supervisorID id.SupervisorID) (models.SupervisorStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats models.SupervisorStats
	var doctors []id.DoctorID
	s.state.verifications.each(func(v *models.Verification) {
		if v.SupervisorID == supervisorID {
			stats.TotalVerifications++
			if !slices.Contains(doctors, v.DoctorID) {
				doctors = append(doctors, v.DoctorID)
			}
		}
	})
	s.state.requests.each(func(r *models.Request) {
		if r.SupervisorID == supervisorID && r.IsPending() {
			stats.PendingRequests++
		}
	})
	stats.DoctorsSupervised = len(doctors)
	return stats, nil
}
