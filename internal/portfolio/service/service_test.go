package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/metrics"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/service/mocks"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/store"
	"github.com/batoulgheleb/crisiszone/internal/sentinel"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
	"github.com/batoulgheleb/crisiszone/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	repo     *store.InMemory
	coord    *store.Coordinator
	progress *mocks.MockProgressService
	events   *mocks.MockEventPublisher
	metrics  *metrics.Metrics
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = store.NewInMemory()
	s.coord = store.NewCoordinator(s.repo)
	s.progress = mocks.NewMockProgressService(s.ctrl)
	s.events = mocks.NewMockEventPublisher(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.ctx = requestcontext.WithTime(context.Background(), testutil.FixedNow)

	s.Require().NoError(s.repo.CreateCurriculum(s.ctx, testutil.NewTestCurriculum()))
	s.Require().NoError(s.repo.CreateSupervisor(s.ctx, testutil.NewSupervisorBuilder().Build()))
	s.Require().NoError(s.repo.CreateSupervisor(s.ctx, testutil.NewSupervisorBuilder().
		WithID(testutil.TestIDs.Supervisor2).WithName("Priya", "Patel").WithEmail("priya.patel@hospital.nhs.uk").Build()))
	s.Require().NoError(s.repo.CreateDoctor(s.ctx, testutil.NewDoctorBuilder().Build()))
}

func (s *ServiceSuite) newService() *Service {
	return New(StoresFrom(s.repo), s.coord, s.progress,
		WithEvents(s.events),
		WithMetrics(s.metrics),
	)
}

func validRequestCommand() models.SubmitRequestCommand {
	age := 54
	return models.SubmitRequestCommand{
		DoctorID:       string(testutil.TestIDs.Doctor1),
		SupervisorID:   string(testutil.TestIDs.Supervisor1),
		ProcedureID:    string(testutil.TestIDs.Procedure1),
		RequestedLevel: string(models.SkillSupervised),
		DatePerformed:  "2025-05-30",
		Notes:          "Laparoscopic appendicectomy",
		Location:       "Theatre 3",
		Urgency:        string(models.UrgencyUrgent),
		PatientAge:     &age,
		PatientSex:     "F",
	}
}

func validVerificationCommand() models.SubmitVerificationCommand {
	return models.SubmitVerificationCommand{
		RequestID:       string(testutil.TestIDs.Request1),
		SupervisorID:    string(testutil.TestIDs.Supervisor1),
		Rating:          5,
		SkillLevel:      string(models.SkillIndependent),
		Notes:           "Excellent port placement, good theory recall",
		AreasOfStrength: []string{"Port placement"},
	}
}

func (s *ServiceSuite) seedRequest(r *models.Request) {
	s.Require().NoError(s.repo.CreateRequest(s.ctx, r))
}

// Request workflow

func (s *ServiceSuite) TestSubmitRequest() {
	s.Run("stores a pending request", func() {
		s.events.EXPECT().RequestSubmitted(gomock.Any(), gomock.Any()).Times(1)

		result := s.newService().SubmitRequest(s.ctx, validRequestCommand())

		s.Require().True(result.Success, result.Message)
		s.Equal("Request submitted successfully", result.Message)
		s.Empty(result.Errors)
		s.NotEmpty(result.RequestID)

		stored, err := s.repo.FindRequestByID(s.ctx, id.RequestID(result.RequestID))
		s.Require().NoError(err)
		s.Equal(models.RequestPending, stored.Status)
		s.Equal(models.UrgencyUrgent, stored.Urgency)
		s.Equal(time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC), stored.DatePerformed)
		s.Equal(testutil.FixedNow.Add(30*24*time.Hour), stored.ExpiresAt)
		s.Require().NotNil(stored.PatientAge)
		s.Equal(54, *stored.PatientAge)
		s.Equal(1.0, promtest.ToFloat64(s.metrics.RequestsSubmitted.WithLabelValues("success")))
	})

	s.Run("accepts an RFC 3339 timestamp", func() {
		s.events.EXPECT().RequestSubmitted(gomock.Any(), gomock.Any()).Times(1)
		cmd := validRequestCommand()
		cmd.DatePerformed = "2025-06-01T09:30:00Z"

		result := s.newService().SubmitRequest(s.ctx, cmd)
		s.True(result.Success, result.Message)
	})
}

func (s *ServiceSuite) TestSubmitRequestHonoursConfiguredTTL() {
	s.events.EXPECT().RequestSubmitted(gomock.Any(), gomock.Any()).Times(1)
	svc := New(StoresFrom(s.repo), s.coord, s.progress, WithEvents(s.events), WithRequestTTL(48*time.Hour))

	result := svc.SubmitRequest(s.ctx, validRequestCommand())

	s.Require().True(result.Success, result.Message)
	s.Equal(testutil.FixedNow.Add(48*time.Hour), result.Request.ExpiresAt)
}

func (s *ServiceSuite) TestSubmitRequestValidation() {
	s.Run("reports every violation in field order", func() {
		result := s.newService().SubmitRequest(s.ctx, models.SubmitRequestCommand{})

		s.False(result.Success)
		s.Equal("Validation failed", result.Message)
		s.Equal([]string{
			"Doctor ID is required",
			"Supervisor ID is required",
			"Procedure ID is required",
			"Requested level must be one of: Observed, Assisted, Supervised, Independent",
			"Date performed is required",
			"Procedure notes are required",
			"Location is required",
			"Urgency must be one of: Routine, Urgent, Emergency",
		}, result.Errors)
		s.True(dErrors.HasCode(result.Err, dErrors.CodeValidation))
	})

	s.Run("date checks", func() {
		cases := []struct {
			date string
			want string
		}{
			{"01/06/2025", "Invalid date format for datePerformed"},
			{"2025-06-02", "Date performed cannot be in the future"},
		}
		for _, tc := range cases {
			cmd := validRequestCommand()
			cmd.DatePerformed = tc.date
			result := s.newService().SubmitRequest(s.ctx, cmd)
			s.Equal([]string{tc.want}, result.Errors, tc.date)
		}
	})

	s.Run("blank strings count as missing", func() {
		cmd := validRequestCommand()
		cmd.Notes = "   "
		result := s.newService().SubmitRequest(s.ctx, cmd)
		s.Equal([]string{"Procedure notes are required"}, result.Errors)
	})

	requests, err := s.repo.ListRequestsByDoctor(s.ctx, testutil.TestIDs.Doctor1)
	s.Require().NoError(err)
	s.Empty(requests)
}

func (s *ServiceSuite) TestSubmitRequestDomainFailures() {
	orphan := testutil.NewDoctorBuilder().WithID(testutil.TestIDs.Doctor2).
		WithEmail("orphan@hospital.nhs.uk").WithCurriculum("cur-gone").Build()
	s.Require().NoError(s.repo.CreateDoctor(s.ctx, orphan))

	cases := []struct {
		name   string
		mutate func(*models.SubmitRequestCommand)
		msg    string
		code   dErrors.Code
	}{
		{"unknown doctor", func(c *models.SubmitRequestCommand) { c.DoctorID = "doc-missing" },
			"Doctor with ID doc-missing not found", dErrors.CodeNotFound},
		{"unknown supervisor", func(c *models.SubmitRequestCommand) { c.SupervisorID = "sup-missing" },
			"Supervisor with ID sup-missing not found", dErrors.CodeNotFound},
		{"supervisor not associated", func(c *models.SubmitRequestCommand) { c.SupervisorID = string(testutil.TestIDs.Supervisor2) },
			"Selected supervisor is not associated with this doctor", dErrors.CodeForbidden},
		{"procedure outside curriculum", func(c *models.SubmitRequestCommand) { c.ProcedureID = "proc-999" },
			"Procedure with ID proc-999 not found in curriculum", dErrors.CodeNotFound},
		{"curriculum missing", func(c *models.SubmitRequestCommand) { c.DoctorID = string(testutil.TestIDs.Doctor2) },
			"Curriculum with ID cur-gone not found", dErrors.CodeNotFound},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			cmd := validRequestCommand()
			tc.mutate(&cmd)

			result := s.newService().SubmitRequest(s.ctx, cmd)

			s.False(result.Success)
			s.Equal("Failed to submit request: "+tc.msg, result.Message)
			s.Equal([]string{tc.msg}, result.Errors)
			s.True(dErrors.HasCode(result.Err, tc.code))
		})
	}

	requests, err := s.repo.ListRequestsByStatus(s.ctx, models.RequestPending)
	s.Require().NoError(err)
	s.Empty(requests)
}

// Verification workflow

func (s *ServiceSuite) TestSubmitVerification() {
	s.seedRequest(testutil.NewRequestBuilder().WithPatientAge(61).Build())
	s.events.EXPECT().VerificationRecorded(gomock.Any(), gomock.Any()).Times(1)

	result := s.newService().SubmitVerification(s.ctx, validVerificationCommand())

	s.Require().True(result.Success, result.Message)
	s.Equal("Verification submitted successfully", result.Message)

	v := result.Verification
	s.Equal(testutil.TestIDs.Doctor1, v.DoctorID)
	s.Equal(testutil.TestIDs.Procedure1, v.ProcedureID)
	s.Equal(testutil.TestIDs.Request1, v.RequestID)
	s.Equal(models.SkillIndependent, v.SkillLevel)
	s.Equal(5, v.Rating)
	s.Equal(testutil.FixedNow, v.DateVerified)
	s.Equal("Laparoscopic approach, uncomplicated", v.DoctorNotes)
	s.Equal("Theatre 3", v.Location)
	s.Require().NotNil(v.PatientAge)
	s.Equal(61, *v.PatientAge)
	s.Equal([]string{"Port placement"}, v.AreasOfStrength)
	s.Equal([]string{}, v.AreasForImprovement)

	_, err := s.repo.FindRequestByID(s.ctx, testutil.TestIDs.Request1)
	s.ErrorIs(err, sentinel.ErrNotFound)
	stored, err := s.repo.FindVerificationByID(s.ctx, v.ID)
	s.Require().NoError(err)
	s.Equal(v.RequestID, stored.RequestID)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.VerificationsTotal.WithLabelValues("success")))
}

func (s *ServiceSuite) TestSubmitVerificationValidation() {
	result := s.newService().SubmitVerification(s.ctx, models.SubmitVerificationCommand{Rating: 9, SkillLevel: "Expert"})

	s.False(result.Success)
	s.Equal("Validation failed", result.Message)
	s.Equal([]string{
		"Request ID is required",
		"Supervisor ID is required",
		"Rating must be between 1 and 5",
		"Skill level must be one of: Observed, Assisted, Supervised, Independent",
		"Supervisor notes are required",
	}, result.Errors)
}

func (s *ServiceSuite) TestSubmitVerificationDomainFailures() {
	s.Run("unknown request", func() {
		cmd := validVerificationCommand()
		cmd.RequestID = "req-missing"
		result := s.newService().SubmitVerification(s.ctx, cmd)
		s.Equal("Failed to submit verification: Request with ID req-missing not found", result.Message)
		s.True(dErrors.HasCode(result.Err, dErrors.CodeNotFound))
	})

	for _, status := range []models.RequestStatus{models.RequestExpired, models.RequestCancelled} {
		s.Run("request "+string(status), func() {
			rid := id.RequestID("req-" + string(status))
			s.seedRequest(testutil.NewRequestBuilder().WithID(rid).WithStatus(status).Build())
			cmd := validVerificationCommand()
			cmd.RequestID = string(rid)

			result := s.newService().SubmitVerification(s.ctx, cmd)

			s.Equal([]string{fmt.Sprintf("Request status is %s, cannot verify", status)}, result.Errors)
			s.True(dErrors.HasCode(result.Err, dErrors.CodeInvalidState))
		})
	}

	s.Run("unknown supervisor", func() {
		s.seedRequest(testutil.NewRequestBuilder().Build())
		cmd := validVerificationCommand()
		cmd.SupervisorID = "sup-missing"
		result := s.newService().SubmitVerification(s.ctx, cmd)
		s.Equal([]string{"Supervisor with ID sup-missing not found"}, result.Errors)
	})

	s.Run("different supervisor", func() {
		cmd := validVerificationCommand()
		cmd.SupervisorID = string(testutil.TestIDs.Supervisor2)
		result := s.newService().SubmitVerification(s.ctx, cmd)
		s.Equal("Failed to submit verification: Supervisor is not authorized to verify this request", result.Message)
		s.True(dErrors.HasCode(result.Err, dErrors.CodeForbidden))

		_, err := s.repo.FindRequestByID(s.ctx, testutil.TestIDs.Request1)
		s.NoError(err, "request must survive a rejected verification")
	})

	verifications, err := s.repo.ListVerificationsByDoctor(s.ctx, testutil.TestIDs.Doctor1)
	s.Require().NoError(err)
	s.Empty(verifications)
}

func (s *ServiceSuite) TestSubmitVerificationRollsBackOnDeleteFailure() {
	changes := &changeRecorder{}
	s.repo = store.NewInMemory(store.WithChangeListener(changes))
	s.coord = store.NewCoordinator(s.repo)
	s.Require().NoError(s.repo.CreateCurriculum(s.ctx, testutil.NewTestCurriculum()))
	s.Require().NoError(s.repo.CreateSupervisor(s.ctx, testutil.NewSupervisorBuilder().Build()))
	s.Require().NoError(s.repo.CreateDoctor(s.ctx, testutil.NewDoctorBuilder().Build()))
	req := testutil.NewRequestBuilder().Build()
	s.seedRequest(req)
	changes.reset()

	requests := mocks.NewMockRequestStore(s.ctrl)
	requests.EXPECT().FindRequestForUpdate(gomock.Any(), req.ID).Return(req.Clone(), nil)
	requests.EXPECT().DeleteRequest(gomock.Any(), req.ID).Return(false, errors.New("connection reset"))

	stores := StoresFrom(s.repo)
	stores.Requests = requests
	svc := New(stores, s.coord, s.progress, WithEvents(s.events))

	result := svc.SubmitVerification(s.ctx, validVerificationCommand())

	s.False(result.Success)
	s.Equal("Failed to submit verification: failed to delete request", result.Message)
	s.True(dErrors.HasCode(result.Err, dErrors.CodeInternal))

	verifications, err := s.repo.ListVerificationsByDoctor(s.ctx, testutil.TestIDs.Doctor1)
	s.Require().NoError(err)
	s.Empty(verifications, "verification created before the failure must be rolled back")
	s.Empty(changes.doctors(), "rolled back writes must not reach change listeners")
}

func (s *ServiceSuite) TestSubmitVerificationNotifiesAfterCommit() {
	changes := &changeRecorder{}
	s.repo = store.NewInMemory(store.WithChangeListener(changes))
	s.coord = store.NewCoordinator(s.repo)
	s.Require().NoError(s.repo.CreateCurriculum(s.ctx, testutil.NewTestCurriculum()))
	s.Require().NoError(s.repo.CreateSupervisor(s.ctx, testutil.NewSupervisorBuilder().Build()))
	s.Require().NoError(s.repo.CreateDoctor(s.ctx, testutil.NewDoctorBuilder().Build()))
	s.seedRequest(testutil.NewRequestBuilder().Build())
	changes.reset()
	s.events.EXPECT().VerificationRecorded(gomock.Any(), gomock.Any()).Times(1)

	result := s.newService().SubmitVerification(s.ctx, validVerificationCommand())

	s.Require().True(result.Success, result.Message)
	s.Equal([]id.DoctorID{testutil.TestIDs.Doctor1}, changes.doctors())
}

func (s *ServiceSuite) TestSubmitRequestThenVerify() {
	s.events.EXPECT().RequestSubmitted(gomock.Any(), gomock.Any()).Times(1)
	s.events.EXPECT().VerificationRecorded(gomock.Any(), gomock.Any()).Times(1)
	svc := s.newService()

	submitted := svc.SubmitRequest(s.ctx, validRequestCommand())
	s.Require().True(submitted.Success, submitted.Message)

	cmd := validVerificationCommand()
	cmd.RequestID = submitted.RequestID
	verified := svc.SubmitVerification(s.ctx, cmd)
	s.Require().True(verified.Success, verified.Message)

	_, err := s.repo.FindRequestByID(s.ctx, id.RequestID(submitted.RequestID))
	s.ErrorIs(err, sentinel.ErrNotFound, "a verified request leaves the pending set")

	verifications, err := s.repo.ListVerificationsByDoctor(s.ctx, testutil.TestIDs.Doctor1)
	s.Require().NoError(err)
	s.Require().Len(verifications, 1)
	s.Equal(testutil.TestIDs.Doctor1, verifications[0].DoctorID)
	s.Equal(testutil.TestIDs.Procedure1, verifications[0].ProcedureID)
	s.Equal(id.RequestID(submitted.RequestID), verifications[0].RequestID)
	s.Equal(verified.VerificationID, verifications[0].ID.String())
}

func (s *ServiceSuite) TestSubmitVerificationRollsBackWhenReferencesVanish() {
	cases := []struct {
		name      string
		msg       string
		breakRefs func()
	}{
		{
			name: "doctor deleted",
			msg:  "Doctor with ID doc-0001 not found",
			breakRefs: func() {
				_, err := s.repo.DeleteDoctor(s.ctx, testutil.TestIDs.Doctor1)
				s.Require().NoError(err)
			},
		},
		{
			name: "curriculum deleted",
			msg:  "Curriculum with ID cur-general-surgery not found",
			breakRefs: func() {
				_, err := s.repo.DeleteCurriculum(s.ctx, testutil.TestIDs.Curriculum1)
				s.Require().NoError(err)
			},
		},
		{
			name: "procedure dropped from curriculum",
			msg:  "Procedure with ID proc-001 not found in curriculum",
			breakRefs: func() {
				c := testutil.NewTestCurriculum()
				c.Procedures = c.Procedures[1:]
				s.Require().NoError(s.repo.UpdateCurriculum(s.ctx, c))
			},
		},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.seedRequest(testutil.NewRequestBuilder().Build())
			tc.breakRefs()

			result := s.newService().SubmitVerification(s.ctx, validVerificationCommand())

			s.False(result.Success)
			s.Equal("Failed to submit verification: "+tc.msg, result.Message)
			s.Equal([]string{tc.msg}, result.Errors)
			s.True(dErrors.HasCode(result.Err, dErrors.CodeNotFound))

			req, err := s.repo.FindRequestByID(s.ctx, testutil.TestIDs.Request1)
			s.Require().NoError(err)
			s.Equal(models.RequestPending, req.Status)
			verifications, err := s.repo.ListVerificationsByDoctor(s.ctx, testutil.TestIDs.Doctor1)
			s.Require().NoError(err)
			s.Empty(verifications)
		})
	}
}

func (s *ServiceSuite) TestConcurrentVerificationsOfOneRequest() {
	s.seedRequest(testutil.NewRequestBuilder().Build())
	s.events.EXPECT().VerificationRecorded(gomock.Any(), gomock.Any()).Times(1)
	svc := s.newService()

	result := testutil.RunConcurrent(20, func(int) error {
		return svc.SubmitVerification(s.ctx, validVerificationCommand()).Err
	})

	s.Equal(int32(1), result.Successes)
	s.Equal(int32(19), result.NotFounds)
	verifications, err := s.repo.ListVerificationsByDoctor(s.ctx, testutil.TestIDs.Doctor1)
	s.Require().NoError(err)
	s.Len(verifications, 1)
}

// Lifecycle

func (s *ServiceSuite) TestExpireStaleRequests() {
	s.seedRequest(testutil.NewRequestBuilder().WithID("req-stale").ExpiresAt(testutil.FixedNow.Add(-time.Minute)).Build())
	s.seedRequest(testutil.NewRequestBuilder().WithID("req-fresh").Build())
	s.seedRequest(testutil.NewRequestBuilder().WithID("req-cancelled").
		WithStatus(models.RequestCancelled).ExpiresAt(testutil.FixedNow.Add(-time.Hour)).Build())
	s.events.EXPECT().RequestExpired(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, r *models.Request) { s.Equal(id.RequestID("req-stale"), r.ID) }).
		Times(1)
	svc := s.newService()

	count, err := svc.ExpireStaleRequests(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)

	stale, err := s.repo.FindRequestByID(s.ctx, "req-stale")
	s.Require().NoError(err)
	s.Equal(models.RequestExpired, stale.Status)
	fresh, err := s.repo.FindRequestByID(s.ctx, "req-fresh")
	s.Require().NoError(err)
	s.Equal(models.RequestPending, fresh.Status)

	count, err = svc.ExpireStaleRequests(s.ctx)
	s.Require().NoError(err)
	s.Zero(count)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.RequestsExpired))
}

func (s *ServiceSuite) TestCancelRequest() {
	s.seedRequest(testutil.NewRequestBuilder().Build())
	s.seedRequest(testutil.NewRequestBuilder().WithID("req-expired").WithStatus(models.RequestExpired).Build())
	svc := s.newService()

	s.Run("other doctor is forbidden", func() {
		_, err := svc.CancelRequest(s.ctx, testutil.TestIDs.Request1, testutil.TestIDs.Doctor2)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("non-pending request", func() {
		_, err := svc.CancelRequest(s.ctx, "req-expired", testutil.TestIDs.Doctor1)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.EqualError(err, "Request status is Expired, cannot cancel")
	})

	s.Run("unknown request", func() {
		_, err := svc.CancelRequest(s.ctx, "req-missing", testutil.TestIDs.Doctor1)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("owner cancels", func() {
		s.events.EXPECT().RequestCancelled(gomock.Any(), gomock.Any()).Times(1)

		cancelled, err := svc.CancelRequest(s.ctx, testutil.TestIDs.Request1, testutil.TestIDs.Doctor1)
		s.Require().NoError(err)
		s.Equal(models.RequestCancelled, cancelled.Status)

		result := svc.SubmitVerification(s.ctx, validVerificationCommand())
		s.Equal([]string{"Request status is Cancelled, cannot verify"}, result.Errors)
	})
}

// Dashboards

func (s *ServiceSuite) TestSupervisorDashboard() {
	for i := 0; i < 7; i++ {
		s.Require().NoError(s.repo.CreateVerification(s.ctx, testutil.NewVerificationBuilder().
			WithID(id.VerificationID(fmt.Sprintf("ver-%d", i))).
			WithRequest(id.RequestID(fmt.Sprintf("req-hist-%d", i))).
			VerifiedAt(testutil.FixedNow.Add(time.Duration(i) * time.Hour)).
			Build()))
	}
	s.seedRequest(testutil.NewRequestBuilder().Build())
	s.seedRequest(testutil.NewRequestBuilder().WithID("req-expired").WithStatus(models.RequestExpired).Build())

	dash, err := s.newService().SupervisorDashboard(s.ctx, testutil.TestIDs.Supervisor1)
	s.Require().NoError(err)

	s.Equal("James", dash.Supervisor.FirstName)
	s.Equal(7, dash.Stats.TotalVerifications)
	s.Equal(1, dash.Stats.DoctorsSupervised)
	s.Require().Len(dash.PendingRequests, 1)
	s.Equal(testutil.TestIDs.Request1, dash.PendingRequests[0].ID)
	s.Require().Len(dash.RecentVerifications, models.RecentVerificationLimit)
	s.Equal(id.VerificationID("ver-6"), dash.RecentVerifications[0].ID)
	s.Equal(id.VerificationID("ver-2"), dash.RecentVerifications[4].ID)

	_, err = s.newService().SupervisorDashboard(s.ctx, "sup-missing")
	s.EqualError(err, "Supervisor with ID sup-missing not found")
}

func (s *ServiceSuite) TestDoctorDashboard() {
	s.seedRequest(testutil.NewRequestBuilder().Build())
	report := &models.ProgressReport{DoctorID: testutil.TestIDs.Doctor1, OverallPercentage: 33}
	s.progress.EXPECT().GetDoctorProgress(gomock.Any(), testutil.TestIDs.Doctor1).Return(report, nil)

	dash, err := s.newService().DoctorDashboard(s.ctx, testutil.TestIDs.Doctor1)
	s.Require().NoError(err)

	s.Same(report, dash.Progress)
	s.Equal(testutil.TestIDs.Doctor1, dash.Doctor.ID)
	s.Equal(1, dash.Stats.PendingRequests)
	s.Len(dash.Requests, 1)
}

func (s *ServiceSuite) TestDoctorDashboardPropagatesProgressError() {
	notFound := dErrors.New(dErrors.CodeNotFound, "Doctor with ID doc-missing not found")
	s.progress.EXPECT().GetDoctorProgress(gomock.Any(), id.DoctorID("doc-missing")).Return(nil, notFound)

	_, err := s.newService().DoctorDashboard(s.ctx, "doc-missing")
	s.ErrorIs(err, notFound)
}

func (s *ServiceSuite) TestListDoctorSupervisors() {
	supervisors, err := s.newService().ListDoctorSupervisors(s.ctx, testutil.TestIDs.Doctor1)
	s.Require().NoError(err)
	s.Require().Len(supervisors, 1)
	s.Equal(testutil.TestIDs.Supervisor1, supervisors[0].ID)

	_, err = s.newService().ListDoctorSupervisors(s.ctx, "doc-missing")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

type changeRecorder struct {
	mu      sync.Mutex
	changed []id.DoctorID
}

func (r *changeRecorder) DoctorChanged(_ context.Context, doctorID id.DoctorID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, doctorID)
}

func (r *changeRecorder) ReferenceDataChanged(context.Context) {}

func (r *changeRecorder) doctors() []id.DoctorID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]id.DoctorID(nil), r.changed...)
}

func (r *changeRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = nil
}
