package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/apperr"
)

// -- Mock Repositories --

type mockPackageRepo struct {
	items map[uuid.UUID]*TreatmentPackage
}

func newMockPackageRepo() *mockPackageRepo {
	return &mockPackageRepo{items: make(map[uuid.UUID]*TreatmentPackage)}
}

func (m *mockPackageRepo) Create(_ context.Context, pkg *TreatmentPackage) error {
	for _, existing := range m.items {
		if existing.Name == pkg.Name {
			return apperr.Conflict("treatment package %s already exists", pkg.Name)
		}
	}
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	pkg.CreatedAt = time.Now()
	pkg.UpdatedAt = time.Now()
	m.items[pkg.ID] = pkg
	return nil
}

func (m *mockPackageRepo) GetByID(_ context.Context, id uuid.UUID) (*TreatmentPackage, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("treatment package %s not found", id)
	}
	return p, nil
}

func (m *mockPackageRepo) GetByName(_ context.Context, name string) (*TreatmentPackage, error) {
	for _, p := range m.items {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, apperr.NotFound("treatment package %s not found", name)
}

func (m *mockPackageRepo) List(_ context.Context, limit, offset int) ([]*TreatmentPackage, error) {
	var result []*TreatmentPackage
	for _, p := range m.items {
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPackageRepo) ListBySpecialization(_ context.Context, specialization string) ([]*TreatmentPackage, error) {
	var result []*TreatmentPackage
	for _, p := range m.items {
		if p.Specialization == specialization {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockPackageRepo) Count(_ context.Context) (int, error) {
	return len(m.items), nil
}

func (m *mockPackageRepo) Update(_ context.Context, pkg *TreatmentPackage) error {
	if _, ok := m.items[pkg.ID]; !ok {
		return apperr.NotFound("treatment package %s not found", pkg.ID)
	}
	m.items[pkg.ID] = pkg
	return nil
}

type mockSpecialistRepo struct {
	items map[uuid.UUID]*Specialist
}

func newMockSpecialistRepo() *mockSpecialistRepo {
	return &mockSpecialistRepo{items: make(map[uuid.UUID]*Specialist)}
}

func (m *mockSpecialistRepo) Create(_ context.Context, sp *Specialist) error {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	sp.CreatedAt = time.Now()
	sp.UpdatedAt = time.Now()
	m.items[sp.ID] = sp
	return nil
}

func (m *mockSpecialistRepo) GetByID(_ context.Context, id uuid.UUID) (*Specialist, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("specialist %s not found", id)
	}
	return s, nil
}

func (m *mockSpecialistRepo) List(_ context.Context, limit, offset int) ([]*Specialist, error) {
	var result []*Specialist
	for _, s := range m.items {
		result = append(result, s)
	}
	return result, nil
}

func (m *mockSpecialistRepo) ListBySpecialization(_ context.Context, specialization string) ([]*Specialist, error) {
	var result []*Specialist
	for _, s := range m.items {
		if s.Specialization == specialization {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockSpecialistRepo) Count(_ context.Context) (int, error) {
	return len(m.items), nil
}

func (m *mockSpecialistRepo) Update(_ context.Context, sp *Specialist) error {
	if _, ok := m.items[sp.ID]; !ok {
		return apperr.NotFound("specialist %s not found", sp.ID)
	}
	m.items[sp.ID] = sp
	return nil
}

func newTestService() *Service {
	return NewService(newMockPackageRepo(), newMockSpecialistRepo())
}

func seedPackage(t *testing.T, svc *Service, name string, level int) *TreatmentPackage {
	t.Helper()
	duration := 4
	if level == 2 {
		duration = 6
	}
	pkg, err := svc.CreatePackage(context.Background(), &TreatmentPackage{
		Name:           name,
		Specialization: "ORTHOPAEDICS",
		Tests:          []string{"OPT1", "OPT2"},
		Cost:           2500,
		DurationWeeks:  duration,
		PackageLevel:   level,
	})
	if err != nil {
		t.Fatalf("seed package: %v", err)
	}
	return pkg
}

func seedSpecialist(t *testing.T, svc *Service, name string, level SpecialistLevel) *Specialist {
	t.Helper()
	sp, err := svc.CreateSpecialist(context.Background(), &Specialist{
		Name:            name,
		Specialization:  "ORTHOPAEDICS",
		Level:           level,
		ExperienceYears: 10,
	})
	if err != nil {
		t.Fatalf("seed specialist: %v", err)
	}
	return sp
}

// -- Package Tests --

func TestCreatePackage_Validation(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name string
		pkg  TreatmentPackage
	}{
		{"empty name", TreatmentPackage{Specialization: "UROLOGY", Cost: 100, DurationWeeks: 4, PackageLevel: 1}},
		{"empty specialization", TreatmentPackage{Name: "Urology Package 1", Cost: 100, DurationWeeks: 4, PackageLevel: 1}},
		{"negative cost", TreatmentPackage{Name: "Urology Package 1", Specialization: "UROLOGY", Cost: -1, DurationWeeks: 4, PackageLevel: 1}},
		{"zero duration", TreatmentPackage{Name: "Urology Package 1", Specialization: "UROLOGY", Cost: 100, PackageLevel: 1}},
		{"zero level", TreatmentPackage{Name: "Urology Package 1", Specialization: "UROLOGY", Cost: 100, DurationWeeks: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreatePackage(context.Background(), &tt.pkg); !apperr.IsInvalidArgument(err) {
				t.Errorf("got %v, want InvalidArgument", err)
			}
		})
	}
}

func TestCreatePackage_DuplicateName(t *testing.T) {
	svc := newTestService()
	seedPackage(t, svc, "Orthopaedics Package 1", 1)

	_, err := svc.CreatePackage(context.Background(), &TreatmentPackage{
		Name:           "Orthopaedics Package 1",
		Specialization: "ORTHOPAEDICS",
		Cost:           3000,
		DurationWeeks:  4,
		PackageLevel:   1,
	})
	if !apperr.IsConflict(err) {
		t.Errorf("got %v, want Conflict", err)
	}
}

func TestGetPackageByName(t *testing.T) {
	svc := newTestService()
	pkg := seedPackage(t, svc, "Orthopaedics Package 2", 2)

	got, err := svc.GetPackageByName(context.Background(), "Orthopaedics Package 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != pkg.ID {
		t.Errorf("got package %s, want %s", got.ID, pkg.ID)
	}
	if got.DurationWeeks != 6 {
		t.Errorf("duration = %d, want 6", got.DurationWeeks)
	}

	if _, err := svc.GetPackageByName(context.Background(), "Cardiology Package 1"); !apperr.IsNotFound(err) {
		t.Errorf("got %v, want NotFound", err)
	}
	if _, err := svc.GetPackageByName(context.Background(), " "); !apperr.IsInvalidArgument(err) {
		t.Errorf("got %v, want InvalidArgument", err)
	}
}

func TestUpdatePackage_Patch(t *testing.T) {
	svc := newTestService()
	pkg := seedPackage(t, svc, "Orthopaedics Package 1", 1)

	cost := 2800.0
	tests := []string{"OPT1", "OPT2", "OPT3"}
	got, err := svc.UpdatePackage(context.Background(), pkg.ID, PackagePatch{
		Cost:  &cost,
		Tests: &tests,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cost != 2800 {
		t.Errorf("cost = %v, want 2800", got.Cost)
	}
	if len(got.Tests) != 3 {
		t.Errorf("tests = %v, want 3 entries", got.Tests)
	}
	if got.DurationWeeks != 4 {
		t.Errorf("untouched duration changed: %d", got.DurationWeeks)
	}

	bad := -10.0
	if _, err := svc.UpdatePackage(context.Background(), pkg.ID, PackagePatch{Cost: &bad}); !apperr.IsInvalidArgument(err) {
		t.Errorf("got %v, want InvalidArgument", err)
	}
}

func TestListPackagesBySpecialization(t *testing.T) {
	svc := newTestService()
	seedPackage(t, svc, "Orthopaedics Package 1", 1)
	seedPackage(t, svc, "Orthopaedics Package 2", 2)
	if _, err := svc.CreatePackage(context.Background(), &TreatmentPackage{
		Name:           "Urology Package 1",
		Specialization: "UROLOGY",
		Cost:           4000,
		DurationWeeks:  4,
		PackageLevel:   1,
	}); err != nil {
		t.Fatalf("urology package: %v", err)
	}

	ortho, err := svc.ListPackagesBySpecialization(context.Background(), "ORTHOPAEDICS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ortho) != 2 {
		t.Errorf("expected 2 orthopaedics packages, got %d", len(ortho))
	}
}

// -- Specialist Tests --

func TestCreateSpecialist_Validation(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name string
		sp   Specialist
	}{
		{"empty name", Specialist{Specialization: "UROLOGY", Level: LevelSenior}},
		{"empty specialization", Specialist{Name: "Dr. Sarah Johnson", Level: LevelSenior}},
		{"bad level", Specialist{Name: "Dr. Sarah Johnson", Specialization: "UROLOGY", Level: "PRINCIPAL"}},
		{"negative experience", Specialist{Name: "Dr. Sarah Johnson", Specialization: "UROLOGY", Level: LevelJunior, ExperienceYears: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateSpecialist(context.Background(), &tt.sp); !apperr.IsInvalidArgument(err) {
				t.Errorf("got %v, want InvalidArgument", err)
			}
		})
	}
}

func TestCreateSpecialist_DefaultsAvailable(t *testing.T) {
	svc := newTestService()
	sp := seedSpecialist(t, svc, "Dr. Sarah Johnson", LevelSenior)
	if !sp.Available {
		t.Error("new specialist should be available")
	}
}

func TestSetAvailability(t *testing.T) {
	svc := newTestService()
	sp := seedSpecialist(t, svc, "Dr. Sarah Johnson", LevelSenior)

	got, err := svc.SetAvailability(context.Background(), sp.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Available {
		t.Error("specialist should be unavailable")
	}

	got, err = svc.SetAvailability(context.Background(), sp.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Available {
		t.Error("specialist should be available again")
	}

	if _, err := svc.SetAvailability(context.Background(), uuid.New(), true); !apperr.IsNotFound(err) {
		t.Errorf("got %v, want NotFound", err)
	}
}

func TestUpdateSpecialist_Patch(t *testing.T) {
	svc := newTestService()
	sp := seedSpecialist(t, svc, "Dr. Michael Chen", LevelJunior)

	level := LevelSenior
	years := 12
	got, err := svc.UpdateSpecialist(context.Background(), sp.ID, SpecialistPatch{
		Level:           &level,
		ExperienceYears: &years,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Level != LevelSenior {
		t.Errorf("level = %s, want SENIOR", got.Level)
	}
	if got.ExperienceYears != 12 {
		t.Errorf("experience = %d, want 12", got.ExperienceYears)
	}
	if got.Name != "Dr. Michael Chen" {
		t.Errorf("untouched name changed: %q", got.Name)
	}

	bad := SpecialistLevel("INTERN")
	if _, err := svc.UpdateSpecialist(context.Background(), sp.ID, SpecialistPatch{Level: &bad}); !apperr.IsInvalidArgument(err) {
		t.Errorf("got %v, want InvalidArgument", err)
	}
}

func TestListSpecialistsBySpecialization(t *testing.T) {
	svc := newTestService()
	seedSpecialist(t, svc, "Dr. Sarah Johnson", LevelSenior)
	if _, err := svc.CreateSpecialist(context.Background(), &Specialist{
		Name:            "Dr. Priya Sharma",
		Specialization:  "UROLOGY",
		Level:           LevelSenior,
		ExperienceYears: 15,
	}); err != nil {
		t.Fatalf("urology specialist: %v", err)
	}

	uro, err := svc.ListSpecialistsBySpecialization(context.Background(), "UROLOGY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(uro) != 1 {
		t.Fatalf("expected 1 urology specialist, got %d", len(uro))
	}
	if uro[0].Name != "Dr. Priya Sharma" {
		t.Errorf("unexpected specialist %q", uro[0].Name)
	}
}
