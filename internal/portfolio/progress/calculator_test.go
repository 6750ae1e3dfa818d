package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	"github.com/batoulgheleb/crisiszone/pkg/testutil"
)

func singleProcedureCurriculum(p models.Procedure) *models.Curriculum {
	return &models.Curriculum{ID: testutil.TestIDs.Curriculum1, Specialty: "General Surgery", Procedures: []models.Procedure{p}}
}

func verificationsAt(procedureID id.ProcedureID, levels ...models.SkillLevel) []*models.Verification {
	out := make([]*models.Verification, len(levels))
	for i, level := range levels {
		out[i] = testutil.NewVerificationBuilder().
			WithID(id.VerificationID("ver-" + string(rune('a'+i)))).
			WithProcedure(procedureID).
			WithLevel(level).
			Build()
	}
	return out
}

func TestProcedurePercentage(t *testing.T) {
	base := models.Procedure{ID: "proc-x", Name: "Test", Code: "T-1", Category: "Cat", MinimumLevel: models.SkillSupervised, MinimumCases: 3}

	tests := []struct {
		name       string
		procedure  func(models.Procedure) models.Procedure
		levels     []models.SkillLevel
		notes      string
		wantPct    int
		wantStatus models.ProcedureStatus
	}{
		{
			name:       "above level but short on cases",
			procedure:  func(p models.Procedure) models.Procedure { p.PracticeRequired = true; return p },
			levels:     []models.SkillLevel{models.SkillIndependent, models.SkillIndependent},
			wantPct:    72,
			wantStatus: models.ProcedureInProgress,
		},
		{
			name:       "no verifications",
			procedure:  func(p models.Procedure) models.Procedure { return p },
			wantPct:    30, // 0.3*(0/3*100) + theory 15 + practice 15
			wantStatus: models.ProcedureNotStarted,
		},
		{
			name:       "level below minimum",
			procedure:  func(p models.Procedure) models.Procedure { p.MinimumCases = 1; return p },
			levels:     []models.SkillLevel{models.SkillObserved},
			wantPct:    80, // 40 + 0.3*33.33 + 15 + 15
			wantStatus: models.ProcedureInProgress,
		},
		{
			name:       "theory required but not noted",
			procedure:  func(p models.Procedure) models.Procedure { p.TheoryRequired = true; return p },
			levels:     []models.SkillLevel{models.SkillSupervised, models.SkillSupervised, models.SkillSupervised},
			wantPct:    85,
			wantStatus: models.ProcedureInProgress,
		},
		{
			name:       "theory noted completes",
			procedure:  func(p models.Procedure) models.Procedure { p.TheoryRequired = true; p.PracticeRequired = true; return p },
			levels:     []models.SkillLevel{models.SkillSupervised, models.SkillSupervised, models.SkillSupervised},
			notes:      "Discussed THEORY of approach",
			wantPct:    100,
			wantStatus: models.ProcedureCompleted,
		},
		{
			name: "zero minimum cases counts as satisfied",
			procedure: func(p models.Procedure) models.Procedure {
				p.MinimumCases = 0
				p.MinimumLevel = models.SkillObserved
				return p
			},
			levels:     []models.SkillLevel{models.SkillObserved},
			wantPct:    100,
			wantStatus: models.ProcedureCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.procedure(base)
			vs := verificationsAt(p.ID, tt.levels...)
			for _, v := range vs {
				v.SupervisorNotes = tt.notes
			}
			report := Calculate(testutil.NewDoctorBuilder().Build(), singleProcedureCurriculum(p), vs, nil, testutil.FixedNow)

			require.Len(t, report.ProcedureProgress, 1)
			pp := report.ProcedureProgress[0]
			assert.Equal(t, tt.wantPct, pp.PercentageComplete)
			assert.Equal(t, tt.wantStatus, pp.Status)
			assert.Equal(t, len(tt.levels), pp.CompletedCases)
		})
	}
}

func TestWorkedExampleDetails(t *testing.T) {
	p := models.Procedure{ID: "proc-x", MinimumLevel: models.SkillSupervised, MinimumCases: 3, PracticeRequired: true}
	report := Calculate(testutil.NewDoctorBuilder().Build(), singleProcedureCurriculum(p),
		verificationsAt(p.ID, models.SkillIndependent, models.SkillIndependent), nil, testutil.FixedNow)

	pp := report.ProcedureProgress[0]
	assert.True(t, pp.MeetsMinimumLevel)
	assert.False(t, pp.MeetsMinimumCases)
	assert.Equal(t, 1, pp.CasesRemaining)
	assert.False(t, pp.PracticeCompleted)
	assert.True(t, pp.TheoryCompleted)
	require.NotNil(t, pp.CurrentLevel)
	assert.Equal(t, models.SkillIndependent, *pp.CurrentLevel)
}

func TestCurrentLevelOnlyRisesOnStrictlyHigherRank(t *testing.T) {
	p := models.Procedure{ID: "proc-x", MinimumLevel: models.SkillIndependent, MinimumCases: 10}
	vs := verificationsAt(p.ID, models.SkillAssisted, models.SkillSupervised, models.SkillObserved, models.SkillSupervised)

	pp := Calculate(testutil.NewDoctorBuilder().Build(), singleProcedureCurriculum(p), vs, nil, testutil.FixedNow).ProcedureProgress[0]

	require.NotNil(t, pp.CurrentLevel)
	assert.Equal(t, models.SkillSupervised, *pp.CurrentLevel)
	assert.False(t, pp.MeetsMinimumLevel)
	assert.Equal(t, 6, pp.CasesRemaining)
}

func TestUnrecognisedLevelNeverBecomesCurrent(t *testing.T) {
	p := models.Procedure{ID: "proc-x", MinimumLevel: models.SkillObserved, MinimumCases: 5}
	doctor := testutil.NewDoctorBuilder().Build()

	t.Run("alone", func(t *testing.T) {
		vs := verificationsAt(p.ID, models.SkillLevel("expert"))
		pp := Calculate(doctor, singleProcedureCurriculum(p), vs, nil, testutil.FixedNow).ProcedureProgress[0]

		assert.Nil(t, pp.CurrentLevel)
		assert.False(t, pp.MeetsMinimumLevel)
		assert.Equal(t, 1, pp.CompletedCases)
	})

	t.Run("before a recognised level", func(t *testing.T) {
		vs := verificationsAt(p.ID, models.SkillLevel("expert"), models.SkillObserved, models.SkillLevel(""))
		pp := Calculate(doctor, singleProcedureCurriculum(p), vs, nil, testutil.FixedNow).ProcedureProgress[0]

		require.NotNil(t, pp.CurrentLevel)
		assert.Equal(t, models.SkillObserved, *pp.CurrentLevel)
		assert.True(t, pp.MeetsMinimumLevel)
	})
}

func TestNoVerificationsLeavesLevelUnset(t *testing.T) {
	p := models.Procedure{ID: "proc-x", MinimumLevel: models.SkillObserved, MinimumCases: 2}
	pp := Calculate(testutil.NewDoctorBuilder().Build(), singleProcedureCurriculum(p), nil, nil, testutil.FixedNow).ProcedureProgress[0]

	assert.Nil(t, pp.CurrentLevel)
	assert.False(t, pp.MeetsMinimumLevel)
	assert.Equal(t, models.ProcedureNotStarted, pp.Status)
	assert.NotNil(t, pp.Verifications)
	assert.Empty(t, pp.Verifications)
}

func TestOverallPercentageAndCounts(t *testing.T) {
	curriculum := testutil.NewTestCurriculum()
	vs := []*models.Verification{
		// Procedure3 (Observed, 0 cases) completes with one case.
		testutil.NewVerificationBuilder().WithID("v1").WithProcedure(testutil.TestIDs.Procedure3).WithLevel(models.SkillObserved).Build(),
		// Procedure2 in progress.
		testutil.NewVerificationBuilder().WithID("v2").WithProcedure(testutil.TestIDs.Procedure2).WithLevel(models.SkillAssisted).Build(),
		// A verification for a procedure outside the curriculum is ignored.
		testutil.NewVerificationBuilder().WithID("v3").WithProcedure("proc-elsewhere").Build(),
	}

	report := Calculate(testutil.NewDoctorBuilder().Build(), curriculum, vs, nil, testutil.FixedNow)

	assert.Equal(t, 3, report.TotalProcedures)
	assert.Equal(t, 1, report.CompletedProcedures)
	assert.Equal(t, 1, report.InProgressProcedures)
	assert.Equal(t, 1, report.NotStartedProcedures)
	assert.Equal(t, 33, report.OverallPercentage)
	assert.Equal(t, testutil.FixedNow, report.LastUpdated)

	// Curriculum order is preserved.
	assert.Equal(t, testutil.TestIDs.Procedure1, report.ProcedureProgress[0].ProcedureID)
	assert.Equal(t, testutil.TestIDs.Procedure3, report.ProcedureProgress[2].ProcedureID)
}

func TestEmptyCurriculum(t *testing.T) {
	report := Calculate(testutil.NewDoctorBuilder().Build(), &models.Curriculum{ID: "cur-empty"}, nil, nil, testutil.FixedNow)

	assert.Equal(t, 0, report.OverallPercentage)
	assert.Equal(t, 0, report.TotalProcedures)
	assert.NotNil(t, report.ProcedureProgress)
}

func TestSummariesResolveSupervisorNames(t *testing.T) {
	p := models.Procedure{ID: "proc-x", MinimumLevel: models.SkillObserved, MinimumCases: 1}
	known := testutil.NewVerificationBuilder().WithID("v1").WithProcedure(p.ID).Build()
	orphan := testutil.NewVerificationBuilder().WithID("v2").WithProcedure(p.ID).WithSupervisor("sup-gone").Build()
	orphan.DatePerformed = testutil.FixedNow.Add(-48 * time.Hour)
	supervisors := map[id.SupervisorID]*models.Supervisor{
		testutil.TestIDs.Supervisor1: testutil.NewSupervisorBuilder().Build(),
	}

	pp := Calculate(testutil.NewDoctorBuilder().Build(), singleProcedureCurriculum(p),
		[]*models.Verification{known, orphan}, supervisors, testutil.FixedNow).ProcedureProgress[0]

	require.Len(t, pp.Verifications, 2)
	assert.Equal(t, "James Wilson", pp.Verifications[0].SupervisorName)
	assert.Equal(t, models.UnknownSupervisorName, pp.Verifications[1].SupervisorName)
	assert.Equal(t, orphan.DatePerformed, pp.Verifications[1].DatePerformed)
	assert.Equal(t, 4, pp.Verifications[0].Rating)
}
