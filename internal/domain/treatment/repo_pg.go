package treatment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hospital/hms/internal/platform/apperr"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func translateErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("%s not found", what)
	}
	return err
}

// =========== Patient Repository ===========

type patientRepoPG struct{ db queryable }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{db: pool} }

const patientCols = `id, name, age, ailment, package_name, treatment_start_date,
	treatment_end_date, contact_number, insurance_provider, created_at, updated_at`

func scanPatient(row pgx.Row) (*PatientDetail, error) {
	var p PatientDetail
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Ailment, &p.PackageName, &p.TreatmentStartDate,
		&p.TreatmentEndDate, &p.ContactNumber, &p.InsuranceProvider, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *PatientDetail) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO patient_detail (id, name, age, ailment, package_name,
			treatment_start_date, treatment_end_date, contact_number, insurance_provider)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.Name, p.Age, p.Ailment, p.PackageName,
		p.TreatmentStartDate, p.TreatmentEndDate, p.ContactNumber, p.InsuranceProvider)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*PatientDetail, error) {
	p, err := scanPatient(r.db.QueryRow(ctx, `SELECT `+patientCols+` FROM patient_detail WHERE id = $1`, id))
	if err != nil {
		return nil, translateErr(err, "patient "+id.String())
	}
	return p, nil
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*PatientDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT `+patientCols+` FROM patient_detail ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*PatientDetail
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *patientRepoPG) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM patient_detail`).Scan(&total)
	return total, err
}

func (r *patientRepoPG) Update(ctx context.Context, p *PatientDetail) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE patient_detail SET name=$2, age=$3, ailment=$4, package_name=$5,
			treatment_start_date=$6, treatment_end_date=$7, contact_number=$8,
			insurance_provider=$9, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Age, p.Ailment, p.PackageName,
		p.TreatmentStartDate, p.TreatmentEndDate, p.ContactNumber, p.InsuranceProvider)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient %s not found", p.ID)
	}
	return nil
}

// =========== Plan Repository ===========

type planRepoPG struct{ db queryable }

func NewPlanRepoPG(pool *pgxpool.Pool) PlanRepository { return &planRepoPG{db: pool} }

const planCols = `id, patient_id, package_name, tests, cost, specialist_name,
	specialist_level, specialization, start_date, end_date, duration_weeks,
	specialist_contact_number, specialist_email, status, created_at, updated_at`

func scanPlan(row pgx.Row) (*TreatmentPlan, error) {
	var p TreatmentPlan
	err := row.Scan(&p.ID, &p.PatientID, &p.PackageName, &p.Tests, &p.Cost, &p.SpecialistName,
		&p.SpecialistLevel, &p.Specialization, &p.StartDate, &p.EndDate, &p.DurationWeeks,
		&p.SpecialistContactNumber, &p.SpecialistEmail, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepoPG) Create(ctx context.Context, plan *TreatmentPlan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO treatment_plan (id, patient_id, package_name, tests, cost,
			specialist_name, specialist_level, specialization, start_date, end_date,
			duration_weeks, specialist_contact_number, specialist_email, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		plan.ID, plan.PatientID, plan.PackageName, plan.Tests, plan.Cost,
		plan.SpecialistName, plan.SpecialistLevel, plan.Specialization, plan.StartDate, plan.EndDate,
		plan.DurationWeeks, plan.SpecialistContactNumber, plan.SpecialistEmail, plan.Status)
	return err
}

func (r *planRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*TreatmentPlan, error) {
	p, err := scanPlan(r.db.QueryRow(ctx, `SELECT `+planCols+` FROM treatment_plan WHERE id = $1`, id))
	if err != nil {
		return nil, translateErr(err, "treatment plan "+id.String())
	}
	return p, nil
}

func (r *planRepoPG) List(ctx context.Context, limit, offset int) ([]*TreatmentPlan, error) {
	rows, err := r.db.Query(ctx, `SELECT `+planCols+` FROM treatment_plan ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*TreatmentPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *planRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*TreatmentPlan, error) {
	rows, err := r.db.Query(ctx, `SELECT `+planCols+` FROM treatment_plan WHERE patient_id = $1 ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*TreatmentPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *planRepoPG) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM treatment_plan`).Scan(&total)
	return total, err
}

func (r *planRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status PlanStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE treatment_plan SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("treatment plan %s not found", id)
	}
	return nil
}
