package progress

import (
	"math"
	"time"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
)

// Component weights of a procedure's percentage. They sum to 1.
const (
	weightCases    = 0.40
	weightLevel    = 0.30
	weightTheory   = 0.15
	weightPractice = 0.15
)

// Calculate derives a doctor's progress across every procedure of curriculum.
// verifications should be the doctor's; supervisors resolves display names and
// may be missing entries. Calculate has no side effects.
func Calculate(
	doctor *models.Doctor,
	curriculum *models.Curriculum,
	verifications []*models.Verification,
	supervisors map[id.SupervisorID]*models.Supervisor,
	now time.Time,
) *models.ProgressReport {
	byProcedure := make(map[id.ProcedureID][]*models.Verification)
	for _, v := range verifications {
		byProcedure[v.ProcedureID] = append(byProcedure[v.ProcedureID], v)
	}

	report := &models.ProgressReport{
		DoctorID:          doctor.ID,
		CurriculumID:      curriculum.ID,
		TotalProcedures:   len(curriculum.Procedures),
		ProcedureProgress: make([]models.ProcedureProgress, 0, len(curriculum.Procedures)),
		LastUpdated:       now,
	}

	for _, p := range curriculum.Procedures {
		pp := procedureProgress(p, byProcedure[p.ID], supervisors)
		switch pp.Status {
		case models.ProcedureCompleted:
			report.CompletedProcedures++
		case models.ProcedureInProgress:
			report.InProgressProcedures++
		default:
			report.NotStartedProcedures++
		}
		report.ProcedureProgress = append(report.ProcedureProgress, pp)
	}

	if report.TotalProcedures > 0 {
		report.OverallPercentage = roundPercent(100 * float64(report.CompletedProcedures) / float64(report.TotalProcedures))
	}
	return report
}

func procedureProgress(p models.Procedure, verifications []*models.Verification, supervisors map[id.SupervisorID]*models.Supervisor) models.ProcedureProgress {
	cases := len(verifications)

	var current *models.SkillLevel
	currentRank := -1
	theoryNoted := false
	summaries := make([]models.VerificationSummary, 0, cases)
	for _, v := range verifications {
		// Only a strictly higher rank replaces the current level; unknown levels rank -1.
		if rank := v.SkillLevel.Rank(); rank > currentRank {
			level := v.SkillLevel
			current = &level
			currentRank = rank
		}
		if v.MentionsTheory() {
			theoryNoted = true
		}
		summaries = append(summaries, summarize(v, supervisors))
	}

	minRank := p.MinimumLevel.Rank()

	meetsLevel := currentRank >= minRank
	meetsCases := cases >= p.MinimumCases
	theoryDone := !p.TheoryRequired || theoryNoted
	practiceDone := !p.PracticeRequired || meetsCases

	status := models.ProcedureInProgress
	switch {
	case cases == 0:
		status = models.ProcedureNotStarted
	case meetsLevel && meetsCases && theoryDone && practiceDone:
		status = models.ProcedureCompleted
	}

	return models.ProcedureProgress{
		ProcedureID:          p.ID,
		ProcedureName:        p.Name,
		ProcedureCode:        p.Code,
		Category:             p.Category,
		Status:               status,
		CurrentLevel:         current,
		MinimumLevelRequired: p.MinimumLevel,
		MinimumCasesRequired: p.MinimumCases,
		CompletedCases:       cases,
		CasesRemaining:       max(0, p.MinimumCases-cases),
		TheoryCompleted:      theoryDone,
		PracticeCompleted:    practiceDone,
		MeetsMinimumLevel:    meetsLevel,
		MeetsMinimumCases:    meetsCases,
		PercentageComplete:   percentage(cases, p.MinimumCases, currentRank, minRank, theoryDone, practiceDone),
		Verifications:        summaries,
	}
}

func percentage(cases, minCases, rank, minRank int, theoryDone, practiceDone bool) int {
	casesProgress := 100.0
	if minCases > 0 {
		casesProgress = math.Min(100, 100*float64(cases)/float64(minCases))
	}
	levelProgress := 100.0
	if rank < minRank {
		levelProgress = 100 * float64(rank+1) / float64(minRank+1)
	}
	return roundPercent(weightCases*casesProgress +
		weightLevel*levelProgress +
		weightTheory*completion(theoryDone) +
		weightPractice*completion(practiceDone))
}

func completion(done bool) float64 {
	if done {
		return 100
	}
	return 0
}

// roundPercent rounds half away from zero.
func roundPercent(v float64) int {
	return int(math.Round(v))
}

func summarize(v *models.Verification, supervisors map[id.SupervisorID]*models.Supervisor) models.VerificationSummary {
	name := models.UnknownSupervisorName
	if sup, ok := supervisors[v.SupervisorID]; ok && sup != nil {
		name = sup.DisplayName()
	}
	return models.VerificationSummary{
		ID:             v.ID,
		SkillLevel:     v.SkillLevel,
		Rating:         v.Rating,
		DatePerformed:  v.DatePerformed,
		SupervisorName: name,
	}
}
