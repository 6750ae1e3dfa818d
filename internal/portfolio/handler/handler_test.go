package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/handler/mocks"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
	"github.com/batoulgheleb/crisiszone/pkg/platform/httputil"
	"github.com/batoulgheleb/crisiszone/pkg/testutil"
)

// HandlerSuite checks decoding, routing and status mapping; workflow
// behaviour is covered by the service tests.
type HandlerSuite struct {
	suite.Suite
	svc    *mocks.MockService
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.svc = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.svc, slog.New(slog.DiscardHandler)).Register(s.router)
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) TestSubmitRequest() {
	s.Run("created on success", func() {
		s.svc.EXPECT().SubmitRequest(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, cmd models.SubmitRequestCommand) *models.RequestResult {
				s.Equal("doc-0001", cmd.DoctorID)
				s.Equal("Supervised", cmd.RequestedLevel)
				return &models.RequestResult{Success: true, RequestID: "req-new", Message: "Request submitted successfully"}
			})

		w := s.do(http.MethodPost, "/requests", map[string]any{
			"doctorId": "doc-0001", "requestedLevel": "Supervised", "datePerformed": "2025-05-30",
		})

		s.Equal(http.StatusCreated, w.Code)
		var got models.RequestResult
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&got))
		s.True(got.Success)
		s.Equal("req-new", got.RequestID)
	})

	s.Run("validation failure keeps every message", func() {
		s.svc.EXPECT().SubmitRequest(gomock.Any(), gomock.Any()).Return(&models.RequestResult{
			Message: "Validation failed",
			Errors:  []string{"Doctor ID is required", "Location is required"},
			Err:     dErrors.New(dErrors.CodeValidation, "Doctor ID is required"),
		})

		w := s.do(http.MethodPost, "/requests", map[string]any{})

		s.Equal(http.StatusBadRequest, w.Code)
		var got models.RequestResult
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&got))
		s.False(got.Success)
		s.Equal([]string{"Doctor ID is required", "Location is required"}, got.Errors)
	})

	s.Run("malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewBufferString(`{"doctorId":`))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestSubmitVerificationStatusMapping() {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unknown request", dErrors.New(dErrors.CodeNotFound, "Request with ID r not found"), http.StatusNotFound},
		{"wrong supervisor", dErrors.New(dErrors.CodeForbidden, "Supervisor is not authorized to verify this request"), http.StatusForbidden},
		{"expired request", dErrors.New(dErrors.CodeInvalidState, "Request status is Expired, cannot verify"), http.StatusConflict},
		{"storage failure", dErrors.New(dErrors.CodeInternal, "failed to save verification"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.svc.EXPECT().SubmitVerification(gomock.Any(), gomock.Any()).Return(&models.VerificationResult{
				Message: "Failed to submit verification: " + tc.err.Error(),
				Errors:  []string{tc.err.Error()},
				Err:     tc.err,
			})

			w := s.do(http.MethodPost, "/verifications", models.SubmitVerificationCommand{RequestID: "r"})

			s.Equal(tc.status, w.Code)
			var got models.VerificationResult
			s.Require().NoError(json.NewDecoder(w.Body).Decode(&got))
			s.Equal([]string{tc.err.Error()}, got.Errors)
		})
	}

	s.Run("created on success", func() {
		s.svc.EXPECT().SubmitVerification(gomock.Any(), gomock.Any()).
			Return(&models.VerificationResult{Success: true, VerificationID: "ver-new"})
		w := s.do(http.MethodPost, "/verifications", models.SubmitVerificationCommand{RequestID: "r"})
		s.Equal(http.StatusCreated, w.Code)
	})
}

func (s *HandlerSuite) TestCancelRequest() {
	s.svc.EXPECT().CancelRequest(gomock.Any(), id.RequestID("req-0001"), id.DoctorID("doc-0002")).
		Return(nil, dErrors.New(dErrors.CodeForbidden, "Doctor is not allowed to cancel this request"))

	w := s.do(http.MethodPost, "/requests/req-0001/cancel", cancelRequestBody{DoctorID: "doc-0002"})

	s.Equal(http.StatusForbidden, w.Code)
	var got httputil.ErrorResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&got))
	s.Equal("forbidden", got.Error)
	s.Equal("Doctor is not allowed to cancel this request", got.ErrorDescription)
}

func (s *HandlerSuite) TestDoctorProgress() {
	s.Run("report", func() {
		s.svc.EXPECT().GetDoctorProgress(gomock.Any(), testutil.TestIDs.Doctor1).
			Return(&models.ProgressReport{DoctorID: testutil.TestIDs.Doctor1, OverallPercentage: 33}, nil)

		w := s.do(http.MethodGet, "/doctors/doc-0001/progress", nil)

		s.Equal(http.StatusOK, w.Code)
		var got models.ProgressReport
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&got))
		s.Equal(33, got.OverallPercentage)
	})

	s.Run("unknown doctor", func() {
		s.svc.EXPECT().GetDoctorProgress(gomock.Any(), id.DoctorID("nobody")).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "Doctor with ID nobody not found"))
		w := s.do(http.MethodGet, "/doctors/nobody/progress", nil)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *HandlerSuite) TestDashboards() {
	s.svc.EXPECT().DoctorDashboard(gomock.Any(), testutil.TestIDs.Doctor1).
		Return(&models.DoctorDashboard{Stats: models.DoctorStats{PendingRequests: 2}}, nil)
	s.svc.EXPECT().SupervisorDashboard(gomock.Any(), testutil.TestIDs.Supervisor1).
		Return(&models.SupervisorDashboard{Stats: models.SupervisorStats{DoctorsSupervised: 3}}, nil)
	s.svc.EXPECT().ListDoctorSupervisors(gomock.Any(), testutil.TestIDs.Doctor1).
		Return([]*models.Supervisor{testutil.NewSupervisorBuilder().Build()}, nil)

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/doctors/doc-0001/dashboard", nil).Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/supervisors/sup-0001/dashboard", nil).Code)

	w := s.do(http.MethodGet, "/doctors/doc-0001/supervisors", nil)
	s.Equal(http.StatusOK, w.Code)
	var got struct {
		Supervisors []models.Supervisor `json:"supervisors"`
	}
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&got))
	s.Require().Len(got.Supervisors, 1)
	s.Equal("James", got.Supervisors[0].FirstName)
}
