package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
	"github.com/batoulgheleb/crisiszone/pkg/validation"
)

// requestMessages and verificationMessages are keyed by "<StructField>.<tag>".
var requestMessages = map[string]string{
	"DoctorID.notblank":         "Doctor ID is required",
	"SupervisorID.notblank":     "Supervisor ID is required",
	"ProcedureID.notblank":      "Procedure ID is required",
	"RequestedLevel.skilllevel": "Requested level must be one of: " + models.JoinSkillLevels(),
	"DatePerformed.notblank":    "Date performed is required",
	"DatePerformed.dateformat":  "Invalid date format for datePerformed",
	"DatePerformed.notfuture":   "Date performed cannot be in the future",
	"Notes.notblank":            "Procedure notes are required",
	"Location.notblank":         "Location is required",
	"Urgency.urgency":           "Urgency must be one of: " + models.JoinUrgencies(),
}

var verificationMessages = map[string]string{
	"RequestID.notblank":    "Request ID is required",
	"SupervisorID.notblank": "Supervisor ID is required",
	"Rating.min":            "Rating must be between 1 and 5",
	"Rating.max":            "Rating must be between 1 and 5",
	"SkillLevel.skilllevel": "Skill level must be one of: " + models.JoinSkillLevels(),
	"Notes.notblank":        "Supervisor notes are required",
}

func newValidator() *validator.Validate {
	return validation.New(
		validation.Rule{Tag: "skilllevel", Func: func(_ context.Context, fl validator.FieldLevel) bool {
			return models.SkillLevel(fl.Field().String()).IsValid()
		}},
		validation.Rule{Tag: "urgency", Func: func(_ context.Context, fl validator.FieldLevel) bool {
			return models.Urgency(fl.Field().String()).IsValid()
		}},
		validation.Rule{Tag: "dateformat", Func: func(_ context.Context, fl validator.FieldLevel) bool {
			_, err := models.ParseDatePerformed(fl.Field().String())
			return err == nil
		}},
		validation.Rule{Tag: "notfuture", Func: func(ctx context.Context, fl validator.FieldLevel) bool {
			t, err := models.ParseDatePerformed(fl.Field().String())
			if err != nil {
				return true
			}
			return !t.After(requestcontext.Now(ctx))
		}},
	)
}

// violations returns every failed rule of cmd as user-facing messages, in field order.
func (s *Service) violations(ctx context.Context, cmd any, messages map[string]string) ([]string, error) {
	fieldErrs, err := validation.Violations(ctx, s.validate, cmd)
	if err != nil {
		return nil, err
	}
	if len(fieldErrs) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.StructField()+"."+fe.Tag()]
		if !ok {
			msg = validation.ErrorMessage(validator.ValidationErrors{fe})
		}
		out = append(out, msg)
	}
	return out, nil
}
