package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/apperr"
)

// Service owns the treatment package and specialist reference data.
type Service struct {
	packages    PackageRepository
	specialists SpecialistRepository
}

func NewService(packages PackageRepository, specialists SpecialistRepository) *Service {
	return &Service{packages: packages, specialists: specialists}
}

// =========== Treatment Packages ===========

func (s *Service) CreatePackage(ctx context.Context, pkg *TreatmentPackage) (*TreatmentPackage, error) {
	pkg.Name = strings.TrimSpace(pkg.Name)
	if pkg.Name == "" {
		return nil, apperr.InvalidArgument("name is required")
	}
	if strings.TrimSpace(pkg.Specialization) == "" {
		return nil, apperr.InvalidArgument("specialization is required")
	}
	if pkg.Cost < 0 {
		return nil, apperr.InvalidArgument("cost must not be negative")
	}
	if pkg.DurationWeeks <= 0 {
		return nil, apperr.InvalidArgument("duration_weeks must be positive")
	}
	if pkg.PackageLevel <= 0 {
		return nil, apperr.InvalidArgument("package_level must be positive")
	}
	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *Service) GetPackage(ctx context.Context, id uuid.UUID) (*TreatmentPackage, error) {
	return s.packages.GetByID(ctx, id)
}

func (s *Service) GetPackageByName(ctx context.Context, name string) (*TreatmentPackage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.InvalidArgument("package name is required")
	}
	return s.packages.GetByName(ctx, name)
}

func (s *Service) ListPackages(ctx context.Context, limit, offset int) ([]*TreatmentPackage, int, error) {
	items, err := s.packages.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.packages.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) ListPackagesBySpecialization(ctx context.Context, specialization string) ([]*TreatmentPackage, error) {
	return s.packages.ListBySpecialization(ctx, specialization)
}

func (s *Service) UpdatePackage(ctx context.Context, id uuid.UUID, patch PackagePatch) (*TreatmentPackage, error) {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Specialization != nil {
		if strings.TrimSpace(*patch.Specialization) == "" {
			return nil, apperr.InvalidArgument("specialization must not be empty")
		}
		pkg.Specialization = *patch.Specialization
	}
	if patch.Tests != nil {
		pkg.Tests = *patch.Tests
	}
	if patch.Cost != nil {
		if *patch.Cost < 0 {
			return nil, apperr.InvalidArgument("cost must not be negative")
		}
		pkg.Cost = *patch.Cost
	}
	if patch.DurationWeeks != nil {
		if *patch.DurationWeeks <= 0 {
			return nil, apperr.InvalidArgument("duration_weeks must be positive")
		}
		pkg.DurationWeeks = *patch.DurationWeeks
	}
	if patch.PackageLevel != nil {
		if *patch.PackageLevel <= 0 {
			return nil, apperr.InvalidArgument("package_level must be positive")
		}
		pkg.PackageLevel = *patch.PackageLevel
	}
	if err := s.packages.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// =========== Specialists ===========

func (s *Service) CreateSpecialist(ctx context.Context, sp *Specialist) (*Specialist, error) {
	sp.Name = strings.TrimSpace(sp.Name)
	if sp.Name == "" {
		return nil, apperr.InvalidArgument("name is required")
	}
	if strings.TrimSpace(sp.Specialization) == "" {
		return nil, apperr.InvalidArgument("specialization is required")
	}
	if !sp.Level.Valid() {
		return nil, apperr.InvalidArgument("level must be JUNIOR or SENIOR")
	}
	if sp.ExperienceYears < 0 {
		return nil, apperr.InvalidArgument("experience_years must not be negative")
	}
	sp.Available = true
	if err := s.specialists.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *Service) GetSpecialist(ctx context.Context, id uuid.UUID) (*Specialist, error) {
	return s.specialists.GetByID(ctx, id)
}

func (s *Service) ListSpecialists(ctx context.Context, limit, offset int) ([]*Specialist, int, error) {
	items, err := s.specialists.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.specialists.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) ListSpecialistsBySpecialization(ctx context.Context, specialization string) ([]*Specialist, error) {
	return s.specialists.ListBySpecialization(ctx, specialization)
}

func (s *Service) UpdateSpecialist(ctx context.Context, id uuid.UUID, patch SpecialistPatch) (*Specialist, error) {
	sp, err := s.specialists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, apperr.InvalidArgument("name must not be empty")
		}
		sp.Name = *patch.Name
	}
	if patch.Specialization != nil {
		if strings.TrimSpace(*patch.Specialization) == "" {
			return nil, apperr.InvalidArgument("specialization must not be empty")
		}
		sp.Specialization = *patch.Specialization
	}
	if patch.Level != nil {
		if !patch.Level.Valid() {
			return nil, apperr.InvalidArgument("level must be JUNIOR or SENIOR")
		}
		sp.Level = *patch.Level
	}
	if patch.Qualifications != nil {
		sp.Qualifications = patch.Qualifications
	}
	if patch.ExperienceYears != nil {
		if *patch.ExperienceYears < 0 {
			return nil, apperr.InvalidArgument("experience_years must not be negative")
		}
		sp.ExperienceYears = *patch.ExperienceYears
	}
	if patch.ContactNumber != nil {
		sp.ContactNumber = patch.ContactNumber
	}
	if patch.Email != nil {
		sp.Email = patch.Email
	}
	if err := s.specialists.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// SetAvailability toggles whether the specialist accepts new plans. Plan
// generation does not consult it; scheduling tooling does.
func (s *Service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*Specialist, error) {
	sp, err := s.specialists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sp.Available = available
	if err := s.specialists.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}
