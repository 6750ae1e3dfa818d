package models

import (
	"time"

	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
)

// SubmitRequestCommand is the raw input of the request workflow.
// Validation tags run in field order, which is the order errors are reported in.
type SubmitRequestCommand struct {
	DoctorID       string `json:"doctorId" validate:"notblank"`
	SupervisorID   string `json:"supervisorId" validate:"notblank"`
	ProcedureID    string `json:"procedureId" validate:"notblank"`
	RequestedLevel string `json:"requestedLevel" validate:"skilllevel"`
	DatePerformed  string `json:"datePerformed" validate:"notblank,dateformat,notfuture"`
	Notes          string `json:"notes" validate:"notblank"`
	Location       string `json:"location" validate:"notblank"`
	Urgency        string `json:"urgency" validate:"urgency"`
	PatientAge     *int   `json:"patientAge,omitempty"`
	PatientSex     string `json:"patientSex,omitempty"`
	Complications  string `json:"complications,omitempty"`
}

// SubmitVerificationCommand is the raw input of the verification workflow.
type SubmitVerificationCommand struct {
	RequestID           string   `json:"requestId" validate:"notblank"`
	SupervisorID        string   `json:"supervisorId" validate:"notblank"`
	Rating              int      `json:"rating" validate:"min=1,max=5"`
	SkillLevel          string   `json:"skillLevel" validate:"skilllevel"`
	Notes               string   `json:"notes" validate:"notblank"`
	AreasOfStrength     []string `json:"areasOfStrength,omitempty"`
	AreasForImprovement []string `json:"areasForImprovement,omitempty"`
	FollowUpRequired    bool     `json:"followUpRequired"`
}

// Date layouts accepted for DatePerformed, tried in order.
var datePerformedLayouts = []string{time.RFC3339, time.DateOnly}

// ParseDatePerformed parses an RFC 3339 timestamp or a YYYY-MM-DD calendar date (UTC midnight).
func ParseDatePerformed(raw string) (time.Time, error) {
	for _, layout := range datePerformedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, dErrors.New(dErrors.CodeValidation, "Invalid date format for datePerformed")
}

// RequestResult is the outcome of SubmitRequest. Failures are values, never panics.
type RequestResult struct {
	Success   bool     `json:"success"`
	RequestID string   `json:"requestId"`
	Message   string   `json:"message"`
	Errors    []string `json:"errors,omitempty"`
	Request   *Request `json:"request,omitempty"`
	// Err is the underlying domain error, kept for transports that map codes to statuses.
	Err error `json:"-"`
}

// VerificationResult is the outcome of SubmitVerification.
type VerificationResult struct {
	Success        bool          `json:"success"`
	VerificationID string        `json:"verificationId"`
	Message        string        `json:"message"`
	Errors         []string      `json:"errors,omitempty"`
	Verification   *Verification `json:"verification,omitempty"`
	Err            error         `json:"-"`
}
