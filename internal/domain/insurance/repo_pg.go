package insurance

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

const uniqueViolation = "23505"

func translateErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("%s not found", what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict("%s already exists", what)
	}
	return err
}

// =========== Insurer Repository ===========

type insurerRepoPG struct{ db queryable }

func NewInsurerRepoPG(pool *pgxpool.Pool) InsurerRepository { return &insurerRepoPG{db: pool} }

const insurerCols = `id, insurer_name, package_name, insurance_amount_limit,
	claim_disbursement_days, contact_email, contact_number, active, created_at, updated_at`

func scanInsurer(row pgx.Row) (*Insurer, error) {
	var ins Insurer
	err := row.Scan(&ins.ID, &ins.InsurerName, &ins.PackageName, &ins.InsuranceAmountLimit,
		&ins.ClaimDisbursementDays, &ins.ContactEmail, &ins.ContactNumber, &ins.Active,
		&ins.CreatedAt, &ins.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (r *insurerRepoPG) Create(ctx context.Context, ins *Insurer) error {
	if ins.ID == uuid.Nil {
		ins.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO insurer (id, insurer_name, package_name, insurance_amount_limit,
			claim_disbursement_days, contact_email, contact_number, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		ins.ID, ins.InsurerName, ins.PackageName, ins.InsuranceAmountLimit,
		ins.ClaimDisbursementDays, ins.ContactEmail, ins.ContactNumber, ins.Active)
	return translateErr(err, "insurer "+ins.InsurerName)
}

func (r *insurerRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Insurer, error) {
	ins, err := scanInsurer(r.db.QueryRow(ctx, `SELECT `+insurerCols+` FROM insurer WHERE id = $1`, id))
	if err != nil {
		return nil, translateErr(err, "insurer "+id.String())
	}
	return ins, nil
}

func (r *insurerRepoPG) GetByName(ctx context.Context, name string) (*Insurer, error) {
	ins, err := scanInsurer(r.db.QueryRow(ctx, `SELECT `+insurerCols+` FROM insurer WHERE insurer_name = $1`, name))
	if err != nil {
		return nil, translateErr(err, "insurer "+name)
	}
	return ins, nil
}

func (r *insurerRepoPG) List(ctx context.Context, limit, offset int) ([]*Insurer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+insurerCols+` FROM insurer ORDER BY insurer_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Insurer
	for rows.Next() {
		ins, err := scanInsurer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, ins)
	}
	return items, rows.Err()
}

func (r *insurerRepoPG) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM insurer`).Scan(&total)
	return total, err
}

func (r *insurerRepoPG) Update(ctx context.Context, ins *Insurer) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE insurer SET package_name=$2, insurance_amount_limit=$3,
			claim_disbursement_days=$4, contact_email=$5, contact_number=$6,
			active=$7, updated_at=NOW()
		WHERE id = $1`,
		ins.ID, ins.PackageName, ins.InsuranceAmountLimit,
		ins.ClaimDisbursementDays, ins.ContactEmail, ins.ContactNumber, ins.Active)
	if err != nil {
		return translateErr(err, "insurer "+ins.InsurerName)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("insurer %s not found", ins.ID)
	}
	return nil
}

// =========== Claim Repository ===========

type claimRepoPG struct{ db queryable }

func NewClaimRepoPG(pool *pgxpool.Pool) ClaimRepository { return &claimRepoPG{db: pool} }

const claimCols = `id, patient_name, ailment, package_name, treatment_cost,
	insurer_name, insurer_package_name, insurance_amount_limit, coverage_amount,
	claim_status, claim_reference_number, patient_id, claim_initiated_date,
	created_at, updated_at`

func scanClaim(row pgx.Row) (*ClaimRequest, error) {
	var c ClaimRequest
	err := row.Scan(&c.ID, &c.PatientName, &c.Ailment, &c.PackageName, &c.TreatmentCost,
		&c.InsurerName, &c.InsurerPackageName, &c.InsuranceAmountLimit, &c.CoverageAmount,
		&c.ClaimStatus, &c.ClaimReferenceNumber, &c.PatientID, &c.ClaimInitiatedDate,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *claimRepoPG) Create(ctx context.Context, claim *ClaimRequest) error {
	if claim.ID == uuid.Nil {
		claim.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO claim_request (id, patient_name, ailment, package_name, treatment_cost,
			insurer_name, insurer_package_name, insurance_amount_limit, coverage_amount,
			claim_status, claim_reference_number, patient_id, claim_initiated_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		claim.ID, claim.PatientName, claim.Ailment, claim.PackageName, claim.TreatmentCost,
		claim.InsurerName, claim.InsurerPackageName, claim.InsuranceAmountLimit, claim.CoverageAmount,
		claim.ClaimStatus, claim.ClaimReferenceNumber, claim.PatientID, claim.ClaimInitiatedDate)
	return translateErr(err, "claim "+claim.ClaimReferenceNumber)
}

func (r *claimRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ClaimRequest, error) {
	c, err := scanClaim(r.db.QueryRow(ctx, `SELECT `+claimCols+` FROM claim_request WHERE id = $1`, id))
	if err != nil {
		return nil, translateErr(err, "claim "+id.String())
	}
	return c, nil
}

func (r *claimRepoPG) GetByReference(ctx context.Context, ref string) (*ClaimRequest, error) {
	c, err := scanClaim(r.db.QueryRow(ctx, `SELECT `+claimCols+` FROM claim_request WHERE claim_reference_number = $1`, ref))
	if err != nil {
		return nil, translateErr(err, "claim "+ref)
	}
	return c, nil
}

func (r *claimRepoPG) List(ctx context.Context, limit, offset int) ([]*ClaimRequest, error) {
	rows, err := r.db.Query(ctx, `SELECT `+claimCols+` FROM claim_request ORDER BY claim_initiated_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ClaimRequest
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *claimRepoPG) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM claim_request`).Scan(&total)
	return total, err
}

func (r *claimRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status ClaimStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE claim_request SET claim_status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("claim %s not found", id)
	}
	return nil
}
