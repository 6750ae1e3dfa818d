package models

import (
	"time"

	id "github.com/batoulgheleb/crisiszone/pkg/domain"
)

// ProgressReport is a doctor's standing across their whole curriculum.
type ProgressReport struct {
	DoctorID             id.DoctorID         `json:"doctorId"`
	CurriculumID         id.CurriculumID     `json:"curriculumId"`
	OverallPercentage    int                 `json:"overallPercentage"`
	TotalProcedures      int                 `json:"totalProcedures"`
	CompletedProcedures  int                 `json:"completedProcedures"`
	InProgressProcedures int                 `json:"inProgressProcedures"`
	NotStartedProcedures int                 `json:"notStartedProcedures"`
	ProcedureProgress    []ProcedureProgress `json:"procedureProgress"`
	LastUpdated          time.Time           `json:"lastUpdated"`
}

// ProcedureProgress is the computed standing on one curriculum procedure.
type ProcedureProgress struct {
	ProcedureID          id.ProcedureID        `json:"procedureId"`
	ProcedureName        string                `json:"procedureName"`
	ProcedureCode        string                `json:"procedureCode"`
	Category             string                `json:"category"`
	Status               ProcedureStatus       `json:"status"`
	CurrentLevel         *SkillLevel           `json:"currentLevel"`
	MinimumLevelRequired SkillLevel            `json:"minimumLevelRequired"`
	MinimumCasesRequired int                   `json:"minimumCasesRequired"`
	CompletedCases       int                   `json:"completedCases"`
	CasesRemaining       int                   `json:"casesRemaining"`
	TheoryCompleted      bool                  `json:"theoryCompleted"`
	PracticeCompleted    bool                  `json:"practiceCompleted"`
	MeetsMinimumLevel    bool                  `json:"meetsMinimumLevel"`
	MeetsMinimumCases    bool                  `json:"meetsMinimumCases"`
	PercentageComplete   int                   `json:"percentageComplete"`
	Verifications        []VerificationSummary `json:"verifications"`
}

// VerificationSummary is the per-verification line shown under a procedure.
type VerificationSummary struct {
	ID             id.VerificationID `json:"id"`
	SkillLevel     SkillLevel        `json:"skillLevel"`
	Rating         int               `json:"rating"`
	DatePerformed  time.Time         `json:"datePerformed"`
	SupervisorName string            `json:"supervisorName"`
}

// UnknownSupervisorName is shown when a verification's supervisor no longer resolves.
const UnknownSupervisorName = "Unknown"
