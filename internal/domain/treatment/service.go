package treatment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/apperr"
)

// Service owns patient intake and treatment plan derivation.
type Service struct {
	patients    PatientRepository
	plans       PlanRepository
	packages    PackageSource
	specialists SpecialistSource
}

func NewService(patients PatientRepository, plans PlanRepository, packages PackageSource, specialists SpecialistSource) *Service {
	return &Service{patients: patients, plans: plans, packages: packages, specialists: specialists}
}

// addWeeks advances a date by whole weeks, calendar-aware.
func addWeeks(start time.Time, weeks int) time.Time {
	return start.AddDate(0, 0, 7*weeks)
}

// intakeDuration is the treatment window assigned at intake: four weeks for
// entry-level packages, six for level two and above.
func intakeDuration(packageLevel int) int {
	if packageLevel >= 2 {
		return 6
	}
	return 4
}

// RegisterPatient records an intake and derives the treatment window from
// the named package's level.
func (s *Service) RegisterPatient(ctx context.Context, req PatientIntakeRequest) (*PatientDetail, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, apperr.InvalidArgument("name is required")
	}
	if req.Age <= 0 {
		return nil, apperr.InvalidArgument("age must be positive")
	}
	if strings.TrimSpace(req.PackageName) == "" {
		return nil, apperr.InvalidArgument("package_name is required")
	}

	pkg, err := s.packages.GetPackageByName(ctx, strings.TrimSpace(req.PackageName))
	if err != nil {
		return nil, err
	}

	start := req.TreatmentStartDate
	if start.IsZero() {
		start = time.Now().UTC().Truncate(24 * time.Hour)
	}

	patient := &PatientDetail{
		Name:               req.Name,
		Age:                req.Age,
		Ailment:            strings.TrimSpace(req.Ailment),
		PackageName:        pkg.Name,
		TreatmentStartDate: start,
		TreatmentEndDate:   addWeeks(start, intakeDuration(pkg.PackageLevel)),
		ContactNumber:      req.ContactNumber,
		InsuranceProvider:  req.InsuranceProvider,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*PatientDetail, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*PatientDetail, int, error) {
	items, err := s.patients.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.patients.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GeneratePlan derives a treatment plan: the package contributes cost,
// duration and the default test list, the specialist contributes the care
// contact, and the end date is the start date advanced by the package
// duration. The specialist's discipline is not matched against the package;
// cross-specialization assignments are allowed.
func (s *Service) GeneratePlan(ctx context.Context, req PlanGenerationRequest) (*TreatmentPlan, error) {
	if req.PatientID == uuid.Nil {
		return nil, apperr.InvalidArgument("patient_id is required")
	}
	if strings.TrimSpace(req.PackageName) == "" {
		return nil, apperr.InvalidArgument("package_name is required")
	}
	if req.SpecialistID == uuid.Nil {
		return nil, apperr.InvalidArgument("specialist_id is required")
	}
	if req.StartDate.IsZero() {
		return nil, apperr.InvalidArgument("start_date is required")
	}

	patient, err := s.patients.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	pkg, err := s.packages.GetPackageByName(ctx, strings.TrimSpace(req.PackageName))
	if err != nil {
		return nil, err
	}
	sp, err := s.specialists.GetSpecialist(ctx, req.SpecialistID)
	if err != nil {
		return nil, err
	}

	tests := req.Tests
	if tests == nil {
		tests = append([]string(nil), pkg.Tests...)
	}

	plan := &TreatmentPlan{
		PatientID:               patient.ID,
		PackageName:             pkg.Name,
		Tests:                   tests,
		Cost:                    pkg.Cost,
		SpecialistName:          sp.Name,
		SpecialistLevel:         string(sp.Level),
		Specialization:          sp.Specialization,
		StartDate:               req.StartDate,
		EndDate:                 addWeeks(req.StartDate, pkg.DurationWeeks),
		DurationWeeks:           pkg.DurationWeeks,
		SpecialistContactNumber: sp.ContactNumber,
		SpecialistEmail:         sp.Email,
		Status:                  PlanActive,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *Service) GetPlan(ctx context.Context, id uuid.UUID) (*TreatmentPlan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *Service) ListPlans(ctx context.Context, limit, offset int) ([]*TreatmentPlan, int, error) {
	items, err := s.plans.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.plans.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) ListPlansByPatient(ctx context.Context, patientID uuid.UUID) ([]*TreatmentPlan, error) {
	return s.plans.ListByPatient(ctx, patientID)
}

// UpdatePlanStatus moves a plan between ACTIVE, COMPLETED and CANCELLED.
func (s *Service) UpdatePlanStatus(ctx context.Context, id uuid.UUID, status PlanStatus) (*TreatmentPlan, error) {
	if !status.Valid() {
		return nil, apperr.InvalidArgument("unknown plan status %q", string(status))
	}
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.plans.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	plan.Status = status
	return plan, nil
}
