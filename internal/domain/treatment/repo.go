package treatment

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/domain/catalog"
)

// PatientRepository is the storage boundary for patient records.
type PatientRepository interface {
	Create(ctx context.Context, p *PatientDetail) error
	GetByID(ctx context.Context, id uuid.UUID) (*PatientDetail, error)
	List(ctx context.Context, limit, offset int) ([]*PatientDetail, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, p *PatientDetail) error
}

// PlanRepository is the storage boundary for treatment plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *TreatmentPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*TreatmentPlan, error)
	List(ctx context.Context, limit, offset int) ([]*TreatmentPlan, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*TreatmentPlan, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status PlanStatus) error
}

// PackageSource resolves treatment packages by name. Satisfied by
// catalog.Service.
type PackageSource interface {
	GetPackageByName(ctx context.Context, name string) (*catalog.TreatmentPackage, error)
}

// SpecialistSource resolves specialists by id. Satisfied by catalog.Service.
type SpecialistSource interface {
	GetSpecialist(ctx context.Context, id uuid.UUID) (*catalog.Specialist, error)
}
