package catalog

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

// =========== Package Repository ===========

type packageRepoPG struct{ db queryable }

func NewPackageRepoPG(pool *pgxpool.Pool) PackageRepository { return &packageRepoPG{db: pool} }

const pkgCols = `id, name, specialization, tests, cost, duration_weeks, package_level,
	created_at, updated_at`

func scanPackage(row pgx.Row) (*TreatmentPackage, error) {
	var p TreatmentPackage
	err := row.Scan(&p.ID, &p.Name, &p.Specialization, &p.Tests, &p.Cost,
		&p.DurationWeeks, &p.PackageLevel, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *packageRepoPG) Create(ctx context.Context, pkg *TreatmentPackage) error {
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO treatment_package (id, name, specialization, tests, cost,
			duration_weeks, package_level)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		pkg.ID, pkg.Name, pkg.Specialization, pkg.Tests, pkg.Cost,
		pkg.DurationWeeks, pkg.PackageLevel)
	return translateErr(err, "treatment package "+pkg.Name)
}

func (r *packageRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*TreatmentPackage, error) {
	p, err := scanPackage(r.db.QueryRow(ctx, `SELECT `+pkgCols+` FROM treatment_package WHERE id = $1`, id))
	if err != nil {
		return nil, translateErr(err, "treatment package "+id.String())
	}
	return p, nil
}

func (r *packageRepoPG) GetByName(ctx context.Context, name string) (*TreatmentPackage, error) {
	p, err := scanPackage(r.db.QueryRow(ctx, `SELECT `+pkgCols+` FROM treatment_package WHERE name = $1`, name))
	if err != nil {
		return nil, translateErr(err, "treatment package "+name)
	}
	return p, nil
}

func (r *packageRepoPG) List(ctx context.Context, limit, offset int) ([]*TreatmentPackage, error) {
	rows, err := r.db.Query(ctx, `SELECT `+pkgCols+` FROM treatment_package ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*TreatmentPackage
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *packageRepoPG) ListBySpecialization(ctx context.Context, specialization string) ([]*TreatmentPackage, error) {
	rows, err := r.db.Query(ctx, `SELECT `+pkgCols+` FROM treatment_package WHERE specialization = $1 ORDER BY package_level`, specialization)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*TreatmentPackage
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *packageRepoPG) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM treatment_package`).Scan(&total)
	return total, err
}

func (r *packageRepoPG) Update(ctx context.Context, pkg *TreatmentPackage) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE treatment_package SET specialization=$2, tests=$3, cost=$4,
			duration_weeks=$5, package_level=$6, updated_at=NOW()
		WHERE id = $1`,
		pkg.ID, pkg.Specialization, pkg.Tests, pkg.Cost,
		pkg.DurationWeeks, pkg.PackageLevel)
	if err != nil {
		return translateErr(err, "treatment package "+pkg.Name)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("treatment package %s not found", pkg.ID)
	}
	return nil
}

// =========== Specialist Repository ===========

type specialistRepoPG struct{ db queryable }

func NewSpecialistRepoPG(pool *pgxpool.Pool) SpecialistRepository { return &specialistRepoPG{db: pool} }

const specialistCols = `id, name, specialization, level, qualifications,
	experience_years, contact_number, email, available, created_at, updated_at`

func scanSpecialist(row pgx.Row) (*Specialist, error) {
	var s Specialist
	err := row.Scan(&s.ID, &s.Name, &s.Specialization, &s.Level, &s.Qualifications,
		&s.ExperienceYears, &s.ContactNumber, &s.Email, &s.Available,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *specialistRepoPG) Create(ctx context.Context, sp *Specialist) error {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO specialist (id, name, specialization, level, qualifications,
			experience_years, contact_number, email, available)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		sp.ID, sp.Name, sp.Specialization, sp.Level, sp.Qualifications,
		sp.ExperienceYears, sp.ContactNumber, sp.Email, sp.Available)
	return translateErr(err, "specialist "+sp.Name)
}

func (r *specialistRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Specialist, error) {
	s, err := scanSpecialist(r.db.QueryRow(ctx, `SELECT `+specialistCols+` FROM specialist WHERE id = $1`, id))
	if err != nil {
		return nil, translateErr(err, "specialist "+id.String())
	}
	return s, nil
}

func (r *specialistRepoPG) List(ctx context.Context, limit, offset int) ([]*Specialist, error) {
	rows, err := r.db.Query(ctx, `SELECT `+specialistCols+` FROM specialist ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Specialist
	for rows.Next() {
		s, err := scanSpecialist(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *specialistRepoPG) ListBySpecialization(ctx context.Context, specialization string) ([]*Specialist, error) {
	rows, err := r.db.Query(ctx, `SELECT `+specialistCols+` FROM specialist WHERE specialization = $1 ORDER BY name`, specialization)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Specialist
	for rows.Next() {
		s, err := scanSpecialist(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *specialistRepoPG) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM specialist`).Scan(&total)
	return total, err
}

func (r *specialistRepoPG) Update(ctx context.Context, sp *Specialist) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE specialist SET name=$2, specialization=$3, level=$4, qualifications=$5,
			experience_years=$6, contact_number=$7, email=$8, available=$9, updated_at=NOW()
		WHERE id = $1`,
		sp.ID, sp.Name, sp.Specialization, sp.Level, sp.Qualifications,
		sp.ExperienceYears, sp.ContactNumber, sp.Email, sp.Available)
	if err != nil {
		return translateErr(err, "specialist "+sp.Name)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("specialist %s not found", sp.ID)
	}
	return nil
}
