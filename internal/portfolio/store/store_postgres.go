package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	"github.com/batoulgheleb/crisiszone/internal/sentinel"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	"github.com/batoulgheleb/crisiszone/pkg/platform/tx"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
)

const pgUniqueViolation = "23505"

// PostgresStore persists e-portfolio entities in PostgreSQL. When the context
// carries a transaction (see PostgresTx) every statement joins it.
type PostgresStore struct {
	notifier

	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed repository.
func NewPostgres(db *sql.DB, opts ...Option) *PostgresStore {
	return &PostgresStore{notifier: newNotifier(opts), db: db}
}

func (s *PostgresStore) q(ctx context.Context) tx.Querier {
	return tx.Pick(ctx, s.db)
}

// inTx runs fn in the caller's transaction, or a local one when there is none.
func (s *PostgresStore) inTx(ctx context.Context, fn func(q tx.Querier) error) error {
	if t, ok := tx.From(ctx); ok {
		return fn(t)
	}
	local, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(local); err != nil {
		_ = local.Rollback()
		return err
	}
	if err := local.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func translateWriteErr(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, sentinel.ErrAlreadyUsed)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func expectOneRow(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func deleted(op string, res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

func nullableAge(age *int) sql.NullInt64 {
	if age == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*age), Valid: true}
}

func ageFrom(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	age := int(n.Int64)
	return &age
}

func supervisorIDStrings(ids []id.SupervisorID) []string {
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = string(v)
	}
	return out
}

func supervisorIDsFrom(raw pq.StringArray) []id.SupervisorID {
	out := make([]id.SupervisorID, len(raw))
	for i, v := range raw {
		out[i] = id.SupervisorID(v)
	}
	return out
}

func stringsOrEmpty(raw pq.StringArray) []string {
	if raw == nil {
		return []string{}
	}
	return []string(raw)
}

// Doctors

const doctorColumns = `id, first_name, last_name, email, password_hash, specialty, year_of_training,
	curriculum_id, supervisor_ids, created_at, updated_at`

func scanDoctor(row rowScanner) (*models.Doctor, error) {
	var d models.Doctor
	var supervisors pq.StringArray
	if err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Email, &d.PasswordHash, &d.Specialty,
		&d.YearOfTraining, &d.CurriculumID, &supervisors, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.SupervisorIDs = supervisorIDsFrom(supervisors)
	return &d, nil
}

func (s *PostgresStore) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO doctors (`+doctorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, d.ID, d.FirstName, d.LastName, d.Email, d.PasswordHash, d.Specialty, d.YearOfTraining,
		d.CurriculumID, pq.Array(supervisorIDStrings(d.SupervisorIDs)), d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return translateWriteErr("create doctor", err)
	}
	return nil
}

func (s *PostgresStore) findDoctor(ctx context.Context, where string, arg any) (*models.Doctor, error) {
	d, err := scanDoctor(s.q(ctx).QueryRowContext(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) FindDoctorByID(ctx context.Context, doctorID id.DoctorID) (*models.Doctor, error) {
	return s.findDoctor(ctx, "id = $1", doctorID)
}

func (s *PostgresStore) FindDoctorByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return s.findDoctor(ctx, "lower(email) = lower($1)", email)
}

func (s *PostgresStore) ListDoctors(ctx context.Context) ([]*models.Doctor, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT `+doctorColumns+` FROM doctors ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return collect(rows, "doctors", scanDoctor)
}

func (s *PostgresStore) UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	d.UpdatedAt = requestcontext.Now(ctx)
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE doctors SET first_name = $2, last_name = $3, email = $4, password_hash = $5, specialty = $6,
			year_of_training = $7, curriculum_id = $8, supervisor_ids = $9, updated_at = $10
		WHERE id = $1
	`, d.ID, d.FirstName, d.LastName, d.Email, d.PasswordHash, d.Specialty, d.YearOfTraining,
		d.CurriculumID, pq.Array(supervisorIDStrings(d.SupervisorIDs)), d.UpdatedAt)
	if err != nil {
		return translateWriteErr("update doctor", err)
	}
	if err := expectOneRow("update doctor", res); err != nil {
		return err
	}
	s.doctorChanged(ctx, d.ID)
	return nil
}

func (s *PostgresStore) DeleteDoctor(ctx context.Context, doctorID id.DoctorID) (bool, error) {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, doctorID)
	ok, err := deleted("delete doctor", res, err)
	if ok {
		s.doctorChanged(ctx, doctorID)
	}
	return ok, err
}

// Supervisors

const supervisorColumns = `id, first_name, last_name, email, password_hash, title, specialty,
	years_of_experience, created_at, updated_at`

func scanSupervisor(row rowScanner) (*models.Supervisor, error) {
	var sup models.Supervisor
	if err := row.Scan(&sup.ID, &sup.FirstName, &sup.LastName, &sup.Email, &sup.PasswordHash, &sup.Title,
		&sup.Specialty, &sup.YearsOfExperience, &sup.CreatedAt, &sup.UpdatedAt); err != nil {
		return nil, err
	}
	return &sup, nil
}

func (s *PostgresStore) CreateSupervisor(ctx context.Context, sup *models.Supervisor) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO supervisors (`+supervisorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, sup.ID, sup.FirstName, sup.LastName, sup.Email, sup.PasswordHash, sup.Title, sup.Specialty,
		sup.YearsOfExperience, sup.CreatedAt, sup.UpdatedAt)
	if err != nil {
		return translateWriteErr("create supervisor", err)
	}
	s.referenceDataChanged(ctx)
	return nil
}

func (s *PostgresStore) findSupervisor(ctx context.Context, where string, arg any) (*models.Supervisor, error) {
	sup, err := scanSupervisor(s.q(ctx).QueryRowContext(ctx, `SELECT `+supervisorColumns+` FROM supervisors WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find supervisor: %w", err)
	}
	return sup, nil
}

func (s *PostgresStore) FindSupervisorByID(ctx context.Context, supervisorID id.SupervisorID) (*models.Supervisor, error) {
	return s.findSupervisor(ctx, "id = $1", supervisorID)
}

func (s *PostgresStore) FindSupervisorByEmail(ctx context.Context, email string) (*models.Supervisor, error) {
	return s.findSupervisor(ctx, "lower(email) = lower($1)", email)
}

// FindSupervisorsByIDs returns the supervisors that exist, in the order of ids.
func (s *PostgresStore) FindSupervisorsByIDs(ctx context.Context, ids []id.SupervisorID) ([]*models.Supervisor, error) {
	if len(ids) == 0 {
		return []*models.Supervisor{}, nil
	}
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT `+supervisorColumns+` FROM supervisors
		WHERE id = ANY($1)
	`, pq.Array(supervisorIDStrings(ids)))
	if err != nil {
		return nil, fmt.Errorf("find supervisors: %w", err)
	}
	found, err := collect(rows, "supervisors", scanSupervisor)
	if err != nil {
		return nil, err
	}
	byID := make(map[id.SupervisorID]*models.Supervisor, len(found))
	for _, sup := range found {
		byID[sup.ID] = sup
	}
	out := make([]*models.Supervisor, 0, len(ids))
	for _, supervisorID := range ids {
		if sup, ok := byID[supervisorID]; ok {
			out = append(out, sup)
		}
	}
	return out, nil
}

func (s *PostgresStore) ListSupervisors(ctx context.Context) ([]*models.Supervisor, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT `+supervisorColumns+` FROM supervisors ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list supervisors: %w", err)
	}
	return collect(rows, "supervisors", scanSupervisor)
}

func (s *PostgresStore) UpdateSupervisor(ctx context.Context, sup *models.Supervisor) error {
	sup.UpdatedAt = requestcontext.Now(ctx)
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE supervisors SET first_name = $2, last_name = $3, email = $4, password_hash = $5, title = $6,
			specialty = $7, years_of_experience = $8, updated_at = $9
		WHERE id = $1
	`, sup.ID, sup.FirstName, sup.LastName, sup.Email, sup.PasswordHash, sup.Title, sup.Specialty,
		sup.YearsOfExperience, sup.UpdatedAt)
	if err != nil {
		return translateWriteErr("update supervisor", err)
	}
	if err := expectOneRow("update supervisor", res); err != nil {
		return err
	}
	s.referenceDataChanged(ctx)
	return nil
}

func (s *PostgresStore) DeleteSupervisor(ctx context.Context, supervisorID id.SupervisorID) (bool, error) {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM supervisors WHERE id = $1`, supervisorID)
	ok, err := deleted("delete supervisor", res, err)
	if ok {
		s.referenceDataChanged(ctx)
	}
	return ok, err
}

// Curricula

const procedureColumns = `id, name, code, category, minimum_level, minimum_cases, theory_required, practice_required`

func scanProcedure(row rowScanner) (*models.Procedure, error) {
	var p models.Procedure
	if err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Category, &p.MinimumLevel, &p.MinimumCases,
		&p.TheoryRequired, &p.PracticeRequired); err != nil {
		return nil, err
	}
	return &p, nil
}

func insertProcedures(ctx context.Context, q tx.Querier, c *models.Curriculum) error {
	for pos, p := range c.Procedures {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO procedures (curriculum_id, position, `+procedureColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, c.ID, pos, p.ID, p.Name, p.Code, p.Category, p.MinimumLevel, p.MinimumCases,
			p.TheoryRequired, p.PracticeRequired); err != nil {
			return translateWriteErr("insert procedure", err)
		}
	}
	return nil
}

func (s *PostgresStore) CreateCurriculum(ctx context.Context, c *models.Curriculum) error {
	return s.inTx(ctx, func(q tx.Querier) error {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO curricula (id, specialty, created_at, updated_at) VALUES ($1, $2, $3, $4)
		`, c.ID, c.Specialty, c.CreatedAt, c.UpdatedAt); err != nil {
			return translateWriteErr("create curriculum", err)
		}
		return insertProcedures(ctx, q, c)
	})
}

func (s *PostgresStore) loadProcedures(ctx context.Context, c *models.Curriculum) error {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT `+procedureColumns+` FROM procedures WHERE curriculum_id = $1 ORDER BY position
	`, c.ID)
	if err != nil {
		return fmt.Errorf("load procedures: %w", err)
	}
	procs, err := collect(rows, "procedures", scanProcedure)
	if err != nil {
		return err
	}
	c.Procedures = make([]models.Procedure, len(procs))
	for i, p := range procs {
		c.Procedures[i] = *p
	}
	return nil
}

func (s *PostgresStore) findCurriculum(ctx context.Context, where string, arg any) (*models.Curriculum, error) {
	var c models.Curriculum
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT id, specialty, created_at, updated_at FROM curricula WHERE `+where+` ORDER BY created_at LIMIT 1
	`, arg).Scan(&c.ID, &c.Specialty, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find curriculum: %w", err)
	}
	if err := s.loadProcedures(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) FindCurriculumByID(ctx context.Context, curriculumID id.CurriculumID) (*models.Curriculum, error) {
	return s.findCurriculum(ctx, "id = $1", curriculumID)
}

func (s *PostgresStore) FindCurriculumBySpecialty(ctx context.Context, specialty string) (*models.Curriculum, error) {
	return s.findCurriculum(ctx, "specialty = $1", specialty)
}

func (s *PostgresStore) ListCurricula(ctx context.Context) ([]*models.Curriculum, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT id, specialty, created_at, updated_at FROM curricula ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list curricula: %w", err)
	}
	list, err := collect(rows, "curricula", func(row rowScanner) (*models.Curriculum, error) {
		var c models.Curriculum
		err := row.Scan(&c.ID, &c.Specialty, &c.CreatedAt, &c.UpdatedAt)
		return &c, err
	})
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		if err := s.loadProcedures(ctx, c); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *PostgresStore) UpdateCurriculum(ctx context.Context, c *models.Curriculum) error {
	c.UpdatedAt = requestcontext.Now(ctx)
	err := s.inTx(ctx, func(q tx.Querier) error {
		res, err := q.ExecContext(ctx, `UPDATE curricula SET specialty = $2, updated_at = $3 WHERE id = $1`,
			c.ID, c.Specialty, c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update curriculum: %w", err)
		}
		if err := expectOneRow("update curriculum", res); err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM procedures WHERE curriculum_id = $1`, c.ID); err != nil {
			return fmt.Errorf("replace procedures: %w", err)
		}
		return insertProcedures(ctx, q, c)
	})
	if err != nil {
		return err
	}
	s.referenceDataChanged(ctx)
	return nil
}

func (s *PostgresStore) DeleteCurriculum(ctx context.Context, curriculumID id.CurriculumID) (bool, error) {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM curricula WHERE id = $1`, curriculumID)
	ok, err := deleted("delete curriculum", res, err)
	if ok {
		s.referenceDataChanged(ctx)
	}
	return ok, err
}

func (s *PostgresStore) FindProcedureByID(ctx context.Context, procedureID id.ProcedureID) (*models.Procedure, error) {
	p, err := scanProcedure(s.q(ctx).QueryRowContext(ctx, `
		SELECT p.id, p.name, p.code, p.category, p.minimum_level, p.minimum_cases, p.theory_required, p.practice_required
		FROM procedures p JOIN curricula c ON c.id = p.curriculum_id
		WHERE p.id = $1
		ORDER BY c.created_at, p.position
		LIMIT 1
	`, procedureID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find procedure: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) FindProcedureInCurriculum(ctx context.Context, curriculumID id.CurriculumID, procedureID id.ProcedureID) (*models.Procedure, error) {
	p, err := scanProcedure(s.q(ctx).QueryRowContext(ctx, `
		SELECT `+procedureColumns+` FROM procedures WHERE curriculum_id = $1 AND id = $2
	`, curriculumID, procedureID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find procedure: %w", err)
	}
	return p, nil
}

// Requests

const requestColumns = `id, doctor_id, supervisor_id, procedure_id, requested_level, status, date_performed,
	notes, location, urgency, patient_age, patient_sex, complications, created_at, updated_at, expires_at`

func scanRequest(row rowScanner) (*models.Request, error) {
	var r models.Request
	var age sql.NullInt64
	if err := row.Scan(&r.ID, &r.DoctorID, &r.SupervisorID, &r.ProcedureID, &r.RequestedLevel, &r.Status,
		&r.DatePerformed, &r.Notes, &r.Location, &r.Urgency, &age, &r.PatientSex, &r.Complications,
		&r.CreatedAt, &r.UpdatedAt, &r.ExpiresAt); err != nil {
		return nil, err
	}
	r.PatientAge = ageFrom(age)
	return &r, nil
}

func (s *PostgresStore) CreateRequest(ctx context.Context, r *models.Request) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, r.ID, r.DoctorID, r.SupervisorID, r.ProcedureID, r.RequestedLevel, r.Status, r.DatePerformed,
		r.Notes, r.Location, r.Urgency, nullableAge(r.PatientAge), r.PatientSex, r.Complications,
		r.CreatedAt, r.UpdatedAt, r.ExpiresAt)
	if err != nil {
		return translateWriteErr("create request", err)
	}
	return nil
}

func (s *PostgresStore) FindRequestByID(ctx context.Context, requestID id.RequestID) (*models.Request, error) {
	return s.findRequest(ctx, ``, requestID)
}

// FindRequestForUpdate locks the row until the caller's transaction ends, so a
// concurrent cancel, expiry or verification of the same request waits and then
// sees the committed outcome.
func (s *PostgresStore) FindRequestForUpdate(ctx context.Context, requestID id.RequestID) (*models.Request, error) {
	return s.findRequest(ctx, ` FOR UPDATE`, requestID)
}

func (s *PostgresStore) findRequest(ctx context.Context, lock string, requestID id.RequestID) (*models.Request, error) {
	r, err := scanRequest(s.q(ctx).QueryRowContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`+lock, requestID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) listRequests(ctx context.Context, where string, arg any) ([]*models.Request, error) {
	return s.listRequestsLocked(ctx, where, ``, arg)
}

func (s *PostgresStore) listRequestsLocked(ctx context.Context, where, lock string, arg any) ([]*models.Request, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE `+where+` ORDER BY seq`+lock, arg)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return collect(rows, "requests", scanRequest)
}

func (s *PostgresStore) ListRequestsByDoctor(ctx context.Context, doctorID id.DoctorID) ([]*models.Request, error) {
	return s.listRequests(ctx, "doctor_id = $1", doctorID)
}

func (s *PostgresStore) ListRequestsBySupervisor(ctx context.Context, supervisorID id.SupervisorID) ([]*models.Request, error) {
	return s.listRequests(ctx, "supervisor_id = $1", supervisorID)
}

func (s *PostgresStore) ListRequestsByStatus(ctx context.Context, status models.RequestStatus) ([]*models.Request, error) {
	return s.listRequests(ctx, "status = $1", status)
}

// ListRequestsByStatusForUpdate locks the matching rows and skips rows another
// transaction already holds.
func (s *PostgresStore) ListRequestsByStatusForUpdate(ctx context.Context, status models.RequestStatus) ([]*models.Request, error) {
	return s.listRequestsLocked(ctx, "status = $1", ` FOR UPDATE SKIP LOCKED`, status)
}

func (s *PostgresStore) UpdateRequest(ctx context.Context, r *models.Request) error {
	r.UpdatedAt = requestcontext.Now(ctx)
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE requests SET requested_level = $2, status = $3, date_performed = $4, notes = $5, location = $6,
			urgency = $7, patient_age = $8, patient_sex = $9, complications = $10, updated_at = $11, expires_at = $12
		WHERE id = $1
	`, r.ID, r.RequestedLevel, r.Status, r.DatePerformed, r.Notes, r.Location, r.Urgency,
		nullableAge(r.PatientAge), r.PatientSex, r.Complications, r.UpdatedAt, r.ExpiresAt)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	return expectOneRow("update request", res)
}

func (s *PostgresStore) DeleteRequest(ctx context.Context, requestID id.RequestID) (bool, error) {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM requests WHERE id = $1`, requestID)
	return deleted("delete request", res, err)
}

// Verifications

const verificationColumns = `id, doctor_id, supervisor_id, procedure_id, request_id, skill_level, rating,
	date_performed, date_verified, supervisor_notes, doctor_notes, patient_age, patient_sex, location, urgency,
	complications, areas_of_strength, areas_for_improvement, follow_up_required, created_at, updated_at`

func scanVerification(row rowScanner) (*models.Verification, error) {
	var v models.Verification
	var age sql.NullInt64
	var strengths, improvements pq.StringArray
	if err := row.Scan(&v.ID, &v.DoctorID, &v.SupervisorID, &v.ProcedureID, &v.RequestID, &v.SkillLevel, &v.Rating,
		&v.DatePerformed, &v.DateVerified, &v.SupervisorNotes, &v.DoctorNotes, &age, &v.PatientSex, &v.Location,
		&v.Urgency, &v.Complications, &strengths, &improvements, &v.FollowUpRequired, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.PatientAge = ageFrom(age)
	v.AreasOfStrength = stringsOrEmpty(strengths)
	v.AreasForImprovement = stringsOrEmpty(improvements)
	return &v, nil
}

func (s *PostgresStore) CreateVerification(ctx context.Context, v *models.Verification) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO verifications (`+verificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`, v.ID, v.DoctorID, v.SupervisorID, v.ProcedureID, v.RequestID, v.SkillLevel, v.Rating,
		v.DatePerformed, v.DateVerified, v.SupervisorNotes, v.DoctorNotes, nullableAge(v.PatientAge), v.PatientSex,
		v.Location, v.Urgency, v.Complications, pq.Array(v.AreasOfStrength), pq.Array(v.AreasForImprovement),
		v.FollowUpRequired, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return translateWriteErr("create verification", err)
	}
	s.doctorChanged(ctx, v.DoctorID)
	return nil
}

func (s *PostgresStore) FindVerificationByID(ctx context.Context, verificationID id.VerificationID) (*models.Verification, error) {
	v, err := scanVerification(s.q(ctx).QueryRowContext(ctx, `SELECT `+verificationColumns+` FROM verifications WHERE id = $1`, verificationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification: %w", err)
	}
	return v, nil
}

func (s *PostgresStore) listVerifications(ctx context.Context, where string, args ...any) ([]*models.Verification, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT `+verificationColumns+` FROM verifications WHERE `+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}
	return collect(rows, "verifications", scanVerification)
}

func (s *PostgresStore) ListVerificationsByDoctor(ctx context.Context, doctorID id.DoctorID) ([]*models.Verification, error) {
	return s.listVerifications(ctx, "doctor_id = $1", doctorID)
}

func (s *PostgresStore) ListVerificationsBySupervisor(ctx context.Context, supervisorID id.SupervisorID) ([]*models.Verification, error) {
	return s.listVerifications(ctx, "supervisor_id = $1", supervisorID)
}

func (s *PostgresStore) ListVerificationsByProcedure(ctx context.Context, procedureID id.ProcedureID) ([]*models.Verification, error) {
	return s.listVerifications(ctx, "procedure_id = $1", procedureID)
}

func (s *PostgresStore) ListVerificationsByDoctorAndProcedure(ctx context.Context, doctorID id.DoctorID, procedureID id.ProcedureID) ([]*models.Verification, error) {
	return s.listVerifications(ctx, "doctor_id = $1 AND procedure_id = $2", doctorID, procedureID)
}

func (s *PostgresStore) UpdateVerification(ctx context.Context, v *models.Verification) error {
	v.UpdatedAt = requestcontext.Now(ctx)
	var doctorID id.DoctorID
	err := s.q(ctx).QueryRowContext(ctx, `
		UPDATE verifications SET skill_level = $2, rating = $3, supervisor_notes = $4, areas_of_strength = $5,
			areas_for_improvement = $6, follow_up_required = $7, updated_at = $8
		WHERE id = $1
		RETURNING doctor_id
	`, v.ID, v.SkillLevel, v.Rating, v.SupervisorNotes, pq.Array(v.AreasOfStrength),
		pq.Array(v.AreasForImprovement), v.FollowUpRequired, v.UpdatedAt).Scan(&doctorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("update verification: %w", err)
	}
	s.doctorChanged(ctx, doctorID)
	return nil
}

func (s *PostgresStore) DeleteVerification(ctx context.Context, verificationID id.VerificationID) (bool, error) {
	var doctorID id.DoctorID
	err := s.q(ctx).QueryRowContext(ctx, `DELETE FROM verifications WHERE id = $1 RETURNING doctor_id`, verificationID).Scan(&doctorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("delete verification: %w", err)
	}
	s.doctorChanged(ctx, doctorID)
	return true, nil
}

// Aggregates

func (s *PostgresStore) DoctorStats(ctx context.Context, doctorID id.DoctorID) (models.DoctorStats, error) {
	var stats models.DoctorStats
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM verifications WHERE doctor_id = $1),
			(SELECT COUNT(*) FROM requests WHERE doctor_id = $1 AND status = $2),
			(SELECT COALESCE(AVG(rating), 0)::float8 FROM verifications WHERE doctor_id = $1)
	`, doctorID, models.RequestPending).Scan(&stats.TotalVerifications, &stats.PendingRequests, &stats.AverageRating)
	if err != nil {
		return models.DoctorStats{}, fmt.Errorf("doctor stats: %w", err)
	}
	return stats, nil
}

func (s *PostgresStore) SupervisorStats(ctx context.Context, supervisorID id.SupervisorID) (models.SupervisorStats, error) {
	var stats models.SupervisorStats
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM verifications WHERE supervisor_id = $1),
			(SELECT COUNT(*) FROM requests WHERE supervisor_id = $1 AND status = $2),
			(SELECT COUNT(DISTINCT doctor_id) FROM verifications WHERE supervisor_id = $1)
	`, supervisorID, models.RequestPending).Scan(&stats.TotalVerifications, &stats.PendingRequests, &stats.DoctorsSupervised)
	if err != nil {
		return models.SupervisorStats{}, fmt.Errorf("supervisor stats: %w", err)
	}
	return stats, nil
}

func collect[T any](rows *sql.Rows, what string, scan func(rowScanner) (*T, error)) ([]*T, error) {
	defer rows.Close()
	out := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}
	return out, nil
}
