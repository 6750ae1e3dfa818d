package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/batoulgheleb/crisiszone/internal/platform/tracer"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	"github.com/batoulgheleb/crisiszone/internal/sentinel"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
)

const workflowSubmitVerification = "submit_verification"

// SubmitVerification turns a pending request into a verification.
//
// The verification is created and the request deleted in one transaction;
// any failure after validation rolls both back. The doctor's cached progress
// is dropped and a verification.recorded event is published only after commit.
func (s *Service) SubmitVerification(ctx context.Context, cmd models.SubmitVerificationCommand) (result *models.VerificationResult) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanSubmitVerification,
		tracer.String(tracer.AttrRequestID, cmd.RequestID),
		tracer.String(tracer.AttrSupervisorID, cmd.SupervisorID),
		tracer.String(tracer.AttrSkillLevel, cmd.SkillLevel),
	)
	defer func() {
		span.End(result.Err)
		if s.metrics != nil {
			s.metrics.IncrementVerifications(outcome(result.Err))
			s.metrics.ObserveWorkflow(workflowSubmitVerification, start)
		}
	}()

	violations, err := s.violations(ctx, cmd, verificationMessages)
	if err != nil {
		return verificationFailure(dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate verification"))
	}
	if len(violations) > 0 {
		return &models.VerificationResult{
			Message: "Validation failed",
			Errors:  violations,
			Err:     dErrors.New(dErrors.CodeValidation, violations[0]),
		}
	}

	var recorded *models.Verification
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var txErr error
		recorded, txErr = s.recordVerification(ctx, cmd)
		return txErr
	})
	if err != nil {
		s.logger.WarnContext(ctx, "verification_rolled_back",
			"request_id", cmd.RequestID,
			"supervisor_id", cmd.SupervisorID,
			"reason", err.Error(),
		)
		return verificationFailure(err)
	}

	s.logger.InfoContext(ctx, "verification_submitted",
		"verification_id", recorded.ID.String(),
		"request_id", recorded.RequestID.String(),
		"doctor_id", recorded.DoctorID.String(),
		"supervisor_id", recorded.SupervisorID.String(),
		"skill_level", string(recorded.SkillLevel),
		"rating", recorded.Rating,
	)
	if s.metrics != nil {
		s.metrics.ObserveRating(recorded.Rating)
	}
	if s.events != nil {
		s.events.VerificationRecorded(ctx, recorded)
	}

	return &models.VerificationResult{
		Success:        true,
		VerificationID: recorded.ID.String(),
		Message:        "Verification submitted successfully",
		Verification:   recorded,
	}
}

func (s *Service) recordVerification(ctx context.Context, cmd models.SubmitVerificationCommand) (*models.Verification, error) {
	requestID := id.RequestID(cmd.RequestID)
	supervisorID := id.SupervisorID(cmd.SupervisorID)

	req, err := s.requests.FindRequestForUpdate(ctx, requestID)
	if err != nil {
		return nil, requestNotFound(err, requestID)
	}
	if !req.IsPending() {
		return nil, dErrors.New(dErrors.CodeInvalidState, fmt.Sprintf("Request status is %s, cannot verify", req.Status))
	}

	if _, err := s.supervisors.FindSupervisorByID(ctx, supervisorID); err != nil {
		return nil, supervisorNotFound(err, supervisorID)
	}
	if req.SupervisorID != supervisorID {
		return nil, dErrors.New(dErrors.CodeForbidden, "Supervisor is not authorized to verify this request")
	}

	doctor, err := s.doctors.FindDoctorByID(ctx, req.DoctorID)
	if err != nil {
		return nil, doctorNotFound(err, req.DoctorID)
	}
	if _, err := s.curricula.FindCurriculumByID(ctx, doctor.CurriculumID); err != nil {
		return nil, curriculumNotFound(err, doctor.CurriculumID)
	}
	if _, err := s.curricula.FindProcedureInCurriculum(ctx, doctor.CurriculumID, req.ProcedureID); err != nil {
		return nil, procedureNotFound(err, req.ProcedureID)
	}

	v, err := models.NewVerification(id.NewVerificationID(), req, supervisorID, models.Assessment{
		SkillLevel:          models.SkillLevel(cmd.SkillLevel),
		Rating:              cmd.Rating,
		Notes:               cmd.Notes,
		AreasOfStrength:     cmd.AreasOfStrength,
		AreasForImprovement: cmd.AreasForImprovement,
		FollowUpRequired:    cmd.FollowUpRequired,
	}, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.verifications.CreateVerification(ctx, v); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, fmt.Sprintf("Request with ID %s has already been verified", requestID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save verification")
	}
	deleted, err := s.requests.DeleteRequest(ctx, requestID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete request")
	}
	if !deleted {
		return nil, dErrors.New(dErrors.CodeConflict, fmt.Sprintf("Request with ID %s has already been verified", requestID))
	}
	return v, nil
}

func verificationFailure(err error) *models.VerificationResult {
	msg := err.Error()
	return &models.VerificationResult{
		Message: "Failed to submit verification: " + msg,
		Errors:  []string{msg},
		Err:     err,
	}
}
