package models

import "strings"

// SkillLevel is the competence a doctor demonstrated on a procedure.
// Levels are totally ordered: Observed < Assisted < Supervised < Independent.
type SkillLevel string

const (
	SkillObserved    SkillLevel = "Observed"
	SkillAssisted    SkillLevel = "Assisted"
	SkillSupervised  SkillLevel = "Supervised"
	SkillIndependent SkillLevel = "Independent"
)

// SkillLevels lists every level in ascending rank.
var SkillLevels = []SkillLevel{SkillObserved, SkillAssisted, SkillSupervised, SkillIndependent}

// Rank returns the 0-based position of the level, or -1 for anything unrecognised.
func (l SkillLevel) Rank() int {
	for i, level := range SkillLevels {
		if level == l {
			return i
		}
	}
	return -1
}

// IsValid checks if the level is one of the supported enum values.
func (l SkillLevel) IsValid() bool {
	return l.Rank() >= 0
}

// Urgency classifies how the procedure was performed.
type Urgency string

const (
	UrgencyRoutine   Urgency = "Routine"
	UrgencyUrgent    Urgency = "Urgent"
	UrgencyEmergency Urgency = "Emergency"
)

var Urgencies = []Urgency{UrgencyRoutine, UrgencyUrgent, UrgencyEmergency}

func (u Urgency) IsValid() bool {
	return u == UrgencyRoutine || u == UrgencyUrgent || u == UrgencyEmergency
}

// RequestStatus is the lifecycle state of a verification request.
// A verified request is deleted, so there is no "Verified" status.
type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestExpired   RequestStatus = "Expired"
	RequestCancelled RequestStatus = "Cancelled"
)

func (s RequestStatus) IsValid() bool {
	return s == RequestPending || s == RequestExpired || s == RequestCancelled
}

// ProcedureStatus summarises a doctor's standing on one procedure.
type ProcedureStatus string

const (
	ProcedureNotStarted ProcedureStatus = "Not Started"
	ProcedureInProgress ProcedureStatus = "In Progress"
	ProcedureCompleted  ProcedureStatus = "Completed"
)

// JoinSkillLevels renders the allowed levels for validation messages.
func JoinSkillLevels() string {
	names := make([]string, len(SkillLevels))
	for i, l := range SkillLevels {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}

// JoinUrgencies renders the allowed urgencies for validation messages.
func JoinUrgencies() string {
	names := make([]string, len(Urgencies))
	for i, u := range Urgencies {
		names[i] = string(u)
	}
	return strings.Join(names, ", ")
}
