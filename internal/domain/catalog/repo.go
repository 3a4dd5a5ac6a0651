package catalog

import (
	"context"

	"github.com/google/uuid"
)

// PackageRepository is the storage boundary for treatment packages.
type PackageRepository interface {
	Create(ctx context.Context, pkg *TreatmentPackage) error
	GetByID(ctx context.Context, id uuid.UUID) (*TreatmentPackage, error)
	GetByName(ctx context.Context, name string) (*TreatmentPackage, error)
	List(ctx context.Context, limit, offset int) ([]*TreatmentPackage, error)
	ListBySpecialization(ctx context.Context, specialization string) ([]*TreatmentPackage, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, pkg *TreatmentPackage) error
}

// SpecialistRepository is the storage boundary for specialists.
type SpecialistRepository interface {
	Create(ctx context.Context, sp *Specialist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Specialist, error)
	List(ctx context.Context, limit, offset int) ([]*Specialist, error)
	ListBySpecialization(ctx context.Context, specialization string) ([]*Specialist, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, sp *Specialist) error
}
