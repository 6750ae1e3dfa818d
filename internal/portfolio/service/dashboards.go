package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/batoulgheleb/crisiszone/internal/platform/tracer"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
)

// DoctorDashboard assembles the doctor's progress, stats and requests.
// Progress is computed outside the read view because the progress service
// opens its own.
func (s *Service) DoctorDashboard(ctx context.Context, doctorID id.DoctorID) (dash *models.DoctorDashboard, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanDoctorDashboard, tracer.String(tracer.AttrDoctorID, doctorID.String()))
	defer func() { span.End(err) }()

	progress, err := s.progress.GetDoctorProgress(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	dash = &models.DoctorDashboard{Progress: progress}
	err = s.tx.View(ctx, func(ctx context.Context) error {
		doctor, err := s.doctors.FindDoctorByID(ctx, doctorID)
		if err != nil {
			return doctorNotFound(err, doctorID)
		}
		stats, err := s.stats.DoctorStats(ctx, doctorID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load doctor stats")
		}
		requests, err := s.requests.ListRequestsByDoctor(ctx, doctorID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requests")
		}
		dash.Doctor = doctor
		dash.Stats = stats
		dash.Requests = requests
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dash, nil
}

// SupervisorDashboard lists the supervisor's pending queue and latest verifications.
func (s *Service) SupervisorDashboard(ctx context.Context, supervisorID id.SupervisorID) (dash *models.SupervisorDashboard, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanSupervisorDash, tracer.String(tracer.AttrSupervisorID, supervisorID.String()))
	defer func() { span.End(err) }()

	dash = &models.SupervisorDashboard{}
	err = s.tx.View(ctx, func(ctx context.Context) error {
		supervisor, err := s.supervisors.FindSupervisorByID(ctx, supervisorID)
		if err != nil {
			return supervisorNotFound(err, supervisorID)
		}
		stats, err := s.stats.SupervisorStats(ctx, supervisorID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load supervisor stats")
		}
		assigned, err := s.requests.ListRequestsBySupervisor(ctx, supervisorID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requests")
		}
		verifications, err := s.verifications.ListVerificationsBySupervisor(ctx, supervisorID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verifications")
		}

		dash.Supervisor = supervisor
		dash.Stats = stats
		dash.PendingRequests = pendingOnly(assigned)
		dash.RecentVerifications = mostRecent(verifications, models.RecentVerificationLimit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dash, nil
}

// ListDoctorSupervisors returns the supervisors the doctor may send requests to.
func (s *Service) ListDoctorSupervisors(ctx context.Context, doctorID id.DoctorID) ([]*models.Supervisor, error) {
	var supervisors []*models.Supervisor
	err := s.tx.View(ctx, func(ctx context.Context) error {
		doctor, err := s.doctors.FindDoctorByID(ctx, doctorID)
		if err != nil {
			return doctorNotFound(err, doctorID)
		}
		if len(doctor.SupervisorIDs) == 0 {
			supervisors = []*models.Supervisor{}
			return nil
		}
		supervisors, err = s.supervisors.FindSupervisorsByIDs(ctx, doctor.SupervisorIDs)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load supervisors")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return supervisors, nil
}

func pendingOnly(requests []*models.Request) []*models.Request {
	out := make([]*models.Request, 0, len(requests))
	for _, r := range requests {
		if r.IsPending() {
			out = append(out, r)
		}
	}
	return out
}

// mostRecent returns up to limit verifications, newest DateVerified first.
func mostRecent(verifications []*models.Verification, limit int) []*models.Verification {
	sorted := slices.Clone(verifications)
	slices.SortStableFunc(sorted, func(a, b *models.Verification) int {
		return cmp.Compare(b.DateVerified.UnixNano(), a.DateVerified.UnixNano())
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	if sorted == nil {
		sorted = []*models.Verification{}
	}
	return sorted
}
