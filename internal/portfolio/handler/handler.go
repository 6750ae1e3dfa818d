// Package handler exposes the e-portfolio workflows over HTTP. It only decodes
// input, calls the service and maps results to status codes.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
	"github.com/batoulgheleb/crisiszone/pkg/platform/httputil"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
)

// Service is the subset of the portfolio service the HTTP layer needs.
type Service interface {
	SubmitRequest(ctx context.Context, cmd models.SubmitRequestCommand) *models.RequestResult
	SubmitVerification(ctx context.Context, cmd models.SubmitVerificationCommand) *models.VerificationResult
	CancelRequest(ctx context.Context, requestID id.RequestID, doctorID id.DoctorID) (*models.Request, error)
	GetDoctorProgress(ctx context.Context, doctorID id.DoctorID) (*models.ProgressReport, error)
	DoctorDashboard(ctx context.Context, doctorID id.DoctorID) (*models.DoctorDashboard, error)
	SupervisorDashboard(ctx context.Context, supervisorID id.SupervisorID) (*models.SupervisorDashboard, error)
	ListDoctorSupervisors(ctx context.Context, doctorID id.DoctorID) ([]*models.Supervisor, error)
}

// Handler serves the request, verification, progress and dashboard endpoints.
type Handler struct {
	logger    *slog.Logger
	portfolio Service
}

// New creates a new portfolio Handler.
func New(portfolio Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		portfolio: portfolio,
	}
}

// Register registers the portfolio routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/doctors/{id}/progress", h.HandleDoctorProgress)
	r.Get("/doctors/{id}/dashboard", h.HandleDoctorDashboard)
	r.Get("/doctors/{id}/supervisors", h.HandleDoctorSupervisors)
	r.Post("/requests", h.HandleSubmitRequest)
	r.Post("/requests/{id}/cancel", h.HandleCancelRequest)
	r.Post("/verifications", h.HandleSubmitVerification)
	r.Get("/supervisors/{id}/dashboard", h.HandleSupervisorDashboard)
}

// HandleSubmitRequest records a doctor's request for verification. Every
// validation failure is returned together in the result body.
func (h *Handler) HandleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cmd, ok := httputil.DecodeJSON[models.SubmitRequestCommand](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	result := h.portfolio.SubmitRequest(ctx, *cmd)
	if !result.Success {
		h.logger.InfoContext(ctx, "submit request rejected",
			"request_id", requestcontext.RequestID(ctx),
			"doctor_id", cmd.DoctorID,
			"message", result.Message,
		)
		httputil.WriteJSON(w, httputil.StatusForError(result.Err), result)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}

// HandleSubmitVerification lets a supervisor verify a pending request, turning
// it into a verification record in one unit of work.
func (h *Handler) HandleSubmitVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cmd, ok := httputil.DecodeJSON[models.SubmitVerificationCommand](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	result := h.portfolio.SubmitVerification(ctx, *cmd)
	if !result.Success {
		h.logger.InfoContext(ctx, "submit verification rejected",
			"request_id", requestcontext.RequestID(ctx),
			"portfolio_request_id", cmd.RequestID,
			"message", result.Message,
		)
		httputil.WriteJSON(w, httputil.StatusForError(result.Err), result)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}

type cancelRequestBody struct {
	DoctorID string `json:"doctorId"`
}

// HandleCancelRequest withdraws a pending request on behalf of the doctor who made it.
func (h *Handler) HandleCancelRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := httputil.DecodeJSON[cancelRequestBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	cancelled, err := h.portfolio.CancelRequest(ctx, id.RequestID(chi.URLParam(r, "id")), id.DoctorID(body.DoctorID))
	if err != nil {
		h.writeError(ctx, w, "failed to cancel request", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cancelled)
}

// HandleDoctorProgress returns the doctor's progress report against their curriculum.
func (h *Handler) HandleDoctorProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := h.portfolio.GetDoctorProgress(ctx, id.DoctorID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeError(ctx, w, "failed to compute progress", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleDoctorDashboard returns the doctor's progress, requests and stats.
func (h *Handler) HandleDoctorDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dash, err := h.portfolio.DoctorDashboard(ctx, id.DoctorID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeError(ctx, w, "failed to load doctor dashboard", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dash)
}

// HandleDoctorSupervisors lists the supervisors assigned to the doctor.
func (h *Handler) HandleDoctorSupervisors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	supervisors, err := h.portfolio.ListDoctorSupervisors(ctx, id.DoctorID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeError(ctx, w, "failed to list supervisors", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"supervisors": supervisors})
}

// HandleSupervisorDashboard returns the supervisor's pending queue and recent verifications.
func (h *Handler) HandleSupervisorDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dash, err := h.portfolio.SupervisorDashboard(ctx, id.SupervisorID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeError(ctx, w, "failed to load supervisor dashboard", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dash)
}

// writeError logs server-side failures loudly and client errors quietly.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{"request_id", requestcontext.RequestID(ctx), "error", err}
	if dErrors.CodeOf(err).IsFault() {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
