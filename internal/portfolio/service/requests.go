package service

import (
	"context"
	"time"

	"github.com/batoulgheleb/crisiszone/internal/platform/tracer"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
)

const workflowSubmitRequest = "submit_request"

// SubmitRequest validates cmd and records a pending verification request.
// Validation reports every violation; domain checks stop at the first failure.
func (s *Service) SubmitRequest(ctx context.Context, cmd models.SubmitRequestCommand) (result *models.RequestResult) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanSubmitRequest,
		tracer.String(tracer.AttrDoctorID, cmd.DoctorID),
		tracer.String(tracer.AttrSupervisorID, cmd.SupervisorID),
		tracer.String(tracer.AttrProcedureID, cmd.ProcedureID),
	)
	defer func() {
		span.End(result.Err)
		if s.metrics != nil {
			s.metrics.IncrementRequestsSubmitted(outcome(result.Err))
			s.metrics.ObserveWorkflow(workflowSubmitRequest, start)
		}
	}()

	violations, err := s.violations(ctx, cmd, requestMessages)
	if err != nil {
		return requestFailure(dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate request"))
	}
	if len(violations) > 0 {
		return &models.RequestResult{
			Message: "Validation failed",
			Errors:  violations,
			Err:     dErrors.New(dErrors.CodeValidation, violations[0]),
		}
	}

	var created *models.Request
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.createRequest(ctx, cmd)
		return txErr
	})
	if err != nil {
		s.logger.InfoContext(ctx, "request_rejected",
			"doctor_id", cmd.DoctorID,
			"supervisor_id", cmd.SupervisorID,
			"reason", err.Error(),
		)
		return requestFailure(err)
	}

	s.logger.InfoContext(ctx, "request_submitted",
		"request_id", created.ID.String(),
		"doctor_id", created.DoctorID.String(),
		"supervisor_id", created.SupervisorID.String(),
		"procedure_id", created.ProcedureID.String(),
	)
	if s.events != nil {
		s.events.RequestSubmitted(ctx, created)
	}

	return &models.RequestResult{
		Success:   true,
		RequestID: created.ID.String(),
		Message:   "Request submitted successfully",
		Request:   created,
	}
}

func (s *Service) createRequest(ctx context.Context, cmd models.SubmitRequestCommand) (*models.Request, error) {
	doctorID := id.DoctorID(cmd.DoctorID)
	supervisorID := id.SupervisorID(cmd.SupervisorID)
	procedureID := id.ProcedureID(cmd.ProcedureID)

	doctor, err := s.doctors.FindDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, doctorNotFound(err, doctorID)
	}
	if _, err := s.supervisors.FindSupervisorByID(ctx, supervisorID); err != nil {
		return nil, supervisorNotFound(err, supervisorID)
	}
	if !doctor.HasSupervisor(supervisorID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "Selected supervisor is not associated with this doctor")
	}
	if _, err := s.curricula.FindCurriculumByID(ctx, doctor.CurriculumID); err != nil {
		return nil, curriculumNotFound(err, doctor.CurriculumID)
	}
	if _, err := s.curricula.FindProcedureInCurriculum(ctx, doctor.CurriculumID, procedureID); err != nil {
		return nil, procedureNotFound(err, procedureID)
	}

	// Validation already proved the date parses.
	performed, _ := models.ParseDatePerformed(cmd.DatePerformed)
	req, err := models.NewRequest(id.NewRequestID(), doctorID, supervisorID, procedureID,
		models.SkillLevel(cmd.RequestedLevel), performed, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	req.ExpiresAt = req.CreatedAt.Add(s.requestTTL)
	req.Notes = cmd.Notes
	req.Location = cmd.Location
	req.Urgency = models.Urgency(cmd.Urgency)
	req.PatientSex = cmd.PatientSex
	req.Complications = cmd.Complications
	if cmd.PatientAge != nil {
		age := *cmd.PatientAge
		req.PatientAge = &age
	}

	if err := s.requests.CreateRequest(ctx, req); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save request")
	}
	return req, nil
}

func requestFailure(err error) *models.RequestResult {
	msg := err.Error()
	return &models.RequestResult{
		Message: "Failed to submit request: " + msg,
		Errors:  []string{msg},
		Err:     err,
	}
}
