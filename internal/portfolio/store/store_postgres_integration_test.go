//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/service"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/store"
	"github.com/batoulgheleb/crisiszone/internal/sentinel"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
	"github.com/batoulgheleb/crisiszone/pkg/testutil"
	"github.com/batoulgheleb/crisiszone/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	tx       *store.PostgresTx
	ctx      context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.tx = store.NewPostgresTx(s.postgres.DB, 5*time.Second)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateAll(s.ctx))
}

func (s *PostgresStoreSuite) TestDoctorRoundTrip() {
	doctor := testutil.NewDoctorBuilder().WithSupervisors(testutil.TestIDs.Supervisor1, testutil.TestIDs.Supervisor2).Build()
	s.Require().NoError(s.store.CreateDoctor(s.ctx, doctor))

	fetched, err := s.store.FindDoctorByEmail(s.ctx, "SARAH.johnson@hospital.nhs.uk")
	s.Require().NoError(err)
	s.Equal([]id.SupervisorID{testutil.TestIDs.Supervisor1, testutil.TestIDs.Supervisor2}, fetched.SupervisorIDs)
	s.Equal(doctor.CurriculumID, fetched.CurriculumID)

	dup := testutil.NewDoctorBuilder().WithID(testutil.TestIDs.Doctor2).WithEmail("Sarah.Johnson@hospital.nhs.uk").Build()
	s.ErrorIs(s.store.CreateDoctor(s.ctx, dup), sentinel.ErrAlreadyUsed)

	_, err = s.store.FindDoctorByID(s.ctx, "doc-missing")
	s.ErrorIs(err, sentinel.ErrNotFound)

	ok, err := s.store.DeleteDoctor(s.ctx, doctor.ID)
	s.Require().NoError(err)
	s.True(ok)
	ok, err = s.store.DeleteDoctor(s.ctx, doctor.ID)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *PostgresStoreSuite) TestCurriculumKeepsProcedureOrder() {
	curriculum := testutil.NewTestCurriculum()
	s.Require().NoError(s.store.CreateCurriculum(s.ctx, curriculum))

	fetched, err := s.store.FindCurriculumByID(s.ctx, curriculum.ID)
	s.Require().NoError(err)
	s.Require().Len(fetched.Procedures, 3)
	for i, p := range curriculum.Procedures {
		s.Equal(p, fetched.Procedures[i])
	}

	p, err := s.store.FindProcedureInCurriculum(s.ctx, curriculum.ID, testutil.TestIDs.Procedure2)
	s.Require().NoError(err)
	s.Equal(models.SkillIndependent, p.MinimumLevel)

	fetched.Procedures = fetched.Procedures[:1]
	s.Require().NoError(s.store.UpdateCurriculum(s.ctx, fetched))
	_, err = s.store.FindProcedureInCurriculum(s.ctx, curriculum.ID, testutil.TestIDs.Procedure2)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestRequestRoundTripKeepsOptionalFields() {
	req := testutil.NewRequestBuilder().WithPatientAge(54).Build()
	s.Require().NoError(s.store.CreateRequest(s.ctx, req))
	noAge := testutil.NewRequestBuilder().WithID("req-0002").Build()
	s.Require().NoError(s.store.CreateRequest(s.ctx, noAge))

	list, err := s.store.ListRequestsByDoctor(s.ctx, testutil.TestIDs.Doctor1)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Require().NotNil(list[0].PatientAge)
	s.Equal(54, *list[0].PatientAge)
	s.Nil(list[1].PatientAge)
	s.Equal(models.RequestPending, list[0].Status)
}

func (s *PostgresStoreSuite) TestOneVerificationPerRequest() {
	s.Require().NoError(s.store.CreateVerification(s.ctx, testutil.NewVerificationBuilder().Build()))
	err := s.store.CreateVerification(s.ctx, testutil.NewVerificationBuilder().WithID("ver-0002").Build())
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)

	v, err := s.store.FindVerificationByID(s.ctx, testutil.TestIDs.Verification)
	s.Require().NoError(err)
	s.NotNil(v.AreasOfStrength)
	s.Empty(v.AreasOfStrength)
}

func (s *PostgresStoreSuite) TestTransactionRollsBackOnError() {
	s.Require().NoError(s.store.CreateRequest(s.ctx, testutil.NewRequestBuilder().Build()))

	boom := errors.New("abort")
	err := s.tx.RunInTx(s.ctx, func(ctx context.Context) error {
		if err := s.store.CreateVerification(ctx, testutil.NewVerificationBuilder().Build()); err != nil {
			return err
		}
		if _, err := s.store.DeleteRequest(ctx, testutil.TestIDs.Request1); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.store.FindRequestByID(s.ctx, testutil.TestIDs.Request1)
	s.NoError(err)
	_, err = s.store.FindVerificationByID(s.ctx, testutil.TestIDs.Verification)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestStatsAggregates() {
	s.Require().NoError(s.store.CreateVerification(s.ctx, testutil.NewVerificationBuilder().WithRating(3).Build()))
	s.Require().NoError(s.store.CreateVerification(s.ctx, testutil.NewVerificationBuilder().WithID("ver-0002").WithRequest("req-0002").WithRating(4).Build()))
	s.Require().NoError(s.store.CreateRequest(s.ctx, testutil.NewRequestBuilder().WithID("req-0009").Build()))

	stats, err := s.store.DoctorStats(s.ctx, testutil.TestIDs.Doctor1)
	s.Require().NoError(err)
	s.Equal(2, stats.TotalVerifications)
	s.Equal(1, stats.PendingRequests)
	s.InDelta(3.5, stats.AverageRating, 0.0001)

	supStats, err := s.store.SupervisorStats(s.ctx, testutil.TestIDs.Supervisor1)
	s.Require().NoError(err)
	s.Equal(1, supStats.DoctorsSupervised)
}

// pausingTx holds each transaction open after its work and before commit.
type pausingTx struct {
	*store.PostgresTx
	paused chan<- struct{}
	resume <-chan struct{}
}

func (p *pausingTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return p.PostgresTx.RunInTx(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		p.paused <- struct{}{}
		<-p.resume
		return err
	})
}

func (s *PostgresStoreSuite) seedPortfolio() {
	s.Require().NoError(s.store.CreateCurriculum(s.ctx, testutil.NewTestCurriculum()))
	s.Require().NoError(s.store.CreateSupervisor(s.ctx, testutil.NewSupervisorBuilder().Build()))
	s.Require().NoError(s.store.CreateDoctor(s.ctx, testutil.NewDoctorBuilder().Build()))
	s.Require().NoError(s.store.CreateRequest(s.ctx, testutil.NewRequestBuilder().Build()))
}

func (s *PostgresStoreSuite) TestVerifyWaitsForConcurrentCancel() {
	s.seedPortfolio()
	ctx := requestcontext.WithTime(s.ctx, testutil.FixedNow)

	paused := make(chan struct{})
	resume := make(chan struct{})
	canceller := service.New(service.StoresFrom(s.store), &pausingTx{PostgresTx: s.tx, paused: paused, resume: resume}, nil)
	verifier := service.New(service.StoresFrom(s.store), s.tx, nil)

	cancelled := make(chan error, 1)
	go func() {
		_, err := canceller.CancelRequest(ctx, testutil.TestIDs.Request1, testutil.TestIDs.Doctor1)
		cancelled <- err
	}()
	<-paused

	verified := make(chan *models.VerificationResult, 1)
	go func() {
		verified <- verifier.SubmitVerification(ctx, models.SubmitVerificationCommand{
			RequestID:    testutil.TestIDs.Request1.String(),
			SupervisorID: testutil.TestIDs.Supervisor1.String(),
			Rating:       4,
			SkillLevel:   string(models.SkillSupervised),
		})
	}()

	select {
	case r := <-verified:
		close(resume)
		<-cancelled
		s.Failf("verification did not wait for the uncommitted cancel", "result: %s", r.Message)
		return
	case <-time.After(300 * time.Millisecond):
	}
	close(resume)

	s.Require().NoError(<-cancelled)
	result := <-verified
	s.False(result.Success)
	s.True(dErrors.HasCode(result.Err, dErrors.CodeInvalidState), result.Message)

	req, err := s.store.FindRequestByID(s.ctx, testutil.TestIDs.Request1)
	s.Require().NoError(err)
	s.Equal(models.RequestCancelled, req.Status)
	verifications, err := s.store.ListVerificationsByDoctor(s.ctx, testutil.TestIDs.Doctor1)
	s.Require().NoError(err)
	s.Empty(verifications)
}

func (s *PostgresStoreSuite) TestExpirySkipsRowsHeldByAnotherTransaction() {
	s.seedPortfolio()
	paused := make(chan struct{})
	resume := make(chan struct{})
	holder := &pausingTx{PostgresTx: s.tx, paused: paused, resume: resume}

	held := make(chan error, 1)
	go func() {
		held <- holder.RunInTx(s.ctx, func(ctx context.Context) error {
			_, err := s.store.FindRequestForUpdate(ctx, testutil.TestIDs.Request1)
			return err
		})
	}()
	<-paused

	var pending []*models.Request
	err := s.tx.RunInTx(s.ctx, func(ctx context.Context) error {
		var err error
		pending, err = s.store.ListRequestsByStatusForUpdate(ctx, models.RequestPending)
		return err
	})
	close(resume)
	s.Require().NoError(err)
	s.Empty(pending, "the locked request is skipped, not waited on")
	s.Require().NoError(<-held)
}
