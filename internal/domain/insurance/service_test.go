package insurance

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/apperr"
)

// -- Mock Repositories --

type mockInsurerRepo struct {
	items map[uuid.UUID]*Insurer
}

func newMockInsurerRepo() *mockInsurerRepo {
	return &mockInsurerRepo{items: make(map[uuid.UUID]*Insurer)}
}

func (m *mockInsurerRepo) Create(_ context.Context, ins *Insurer) error {
	for _, existing := range m.items {
		if existing.InsurerName == ins.InsurerName {
			return apperr.Conflict("insurer %s already exists", ins.InsurerName)
		}
	}
	if ins.ID == uuid.Nil {
		ins.ID = uuid.New()
	}
	ins.CreatedAt = time.Now()
	ins.UpdatedAt = time.Now()
	m.items[ins.ID] = ins
	return nil
}

func (m *mockInsurerRepo) GetByID(_ context.Context, id uuid.UUID) (*Insurer, error) {
	ins, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("insurer %s not found", id)
	}
	return ins, nil
}

func (m *mockInsurerRepo) GetByName(_ context.Context, name string) (*Insurer, error) {
	for _, ins := range m.items {
		if ins.InsurerName == name {
			return ins, nil
		}
	}
	return nil, apperr.NotFound("insurer %s not found", name)
}

func (m *mockInsurerRepo) List(_ context.Context, limit, offset int) ([]*Insurer, error) {
	var result []*Insurer
	for _, ins := range m.items {
		result = append(result, ins)
	}
	return result, nil
}

func (m *mockInsurerRepo) Count(_ context.Context) (int, error) {
	return len(m.items), nil
}

func (m *mockInsurerRepo) Update(_ context.Context, ins *Insurer) error {
	if _, ok := m.items[ins.ID]; !ok {
		return apperr.NotFound("insurer %s not found", ins.ID)
	}
	m.items[ins.ID] = ins
	return nil
}

type mockClaimRepo struct {
	items map[uuid.UUID]*ClaimRequest
	refs  map[string]uuid.UUID
	// forceConflicts makes Create fail this many times before succeeding.
	forceConflicts int
}

func newMockClaimRepo() *mockClaimRepo {
	return &mockClaimRepo{
		items: make(map[uuid.UUID]*ClaimRequest),
		refs:  make(map[string]uuid.UUID),
	}
}

func (m *mockClaimRepo) Create(_ context.Context, c *ClaimRequest) error {
	if m.forceConflicts > 0 {
		m.forceConflicts--
		return apperr.Conflict("claim %s already exists", c.ClaimReferenceNumber)
	}
	if _, dup := m.refs[c.ClaimReferenceNumber]; dup {
		return apperr.Conflict("claim %s already exists", c.ClaimReferenceNumber)
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	stored := *c
	m.items[c.ID] = &stored
	m.refs[c.ClaimReferenceNumber] = c.ID
	return nil
}

func (m *mockClaimRepo) GetByID(_ context.Context, id uuid.UUID) (*ClaimRequest, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("claim %s not found", id)
	}
	copied := *c
	return &copied, nil
}

func (m *mockClaimRepo) GetByReference(_ context.Context, ref string) (*ClaimRequest, error) {
	id, ok := m.refs[ref]
	if !ok {
		return nil, apperr.NotFound("claim %s not found", ref)
	}
	copied := *m.items[id]
	return &copied, nil
}

func (m *mockClaimRepo) List(_ context.Context, limit, offset int) ([]*ClaimRequest, error) {
	var result []*ClaimRequest
	for _, c := range m.items {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockClaimRepo) Count(_ context.Context) (int, error) {
	return len(m.items), nil
}

func (m *mockClaimRepo) UpdateStatus(_ context.Context, id uuid.UUID, status ClaimStatus) error {
	c, ok := m.items[id]
	if !ok {
		return apperr.NotFound("claim %s not found", id)
	}
	c.ClaimStatus = status
	c.UpdatedAt = time.Now()
	return nil
}

func newTestService() (*Service, *mockInsurerRepo, *mockClaimRepo) {
	insurers := newMockInsurerRepo()
	claims := newMockClaimRepo()
	return NewService(insurers, claims), insurers, claims
}

func seedInsurer(t *testing.T, svc *Service, limit float64) *Insurer {
	t.Helper()
	ins, err := svc.CreateInsurer(context.Background(), &Insurer{
		InsurerName:           "Star Health Insurance",
		PackageName:           "Family Health Optima",
		InsuranceAmountLimit:  limit,
		ClaimDisbursementDays: 10,
	})
	if err != nil {
		t.Fatalf("seed insurer: %v", err)
	}
	return ins
}

// -- Coverage Calculation --

func TestCalculateCoverageAmount(t *testing.T) {
	tests := []struct {
		name  string
		cost  float64
		limit float64
		want  float64
	}{
		{"cost above limit", 8000, 5000, 5000},
		{"cost below limit", 3000, 5000, 3000},
		{"cost equals limit", 5000, 5000, 5000},
		{"zero cost", 0, 5000, 0},
		{"zero limit", 2500, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateCoverageAmount(tt.cost, tt.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("coverage(%v, %v) = %v, want %v", tt.cost, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCalculateCoverageAmount_Negative(t *testing.T) {
	if _, err := CalculateCoverageAmount(-1, 5000); !apperr.IsInvalidArgument(err) {
		t.Errorf("negative cost: got %v, want InvalidArgument", err)
	}
	if _, err := CalculateCoverageAmount(1000, -1); !apperr.IsInvalidArgument(err) {
		t.Errorf("negative limit: got %v, want InvalidArgument", err)
	}
}

// -- Claim Initiation --

func TestInitiateClaim(t *testing.T) {
	svc, _, _ := newTestService()
	ins := seedInsurer(t, svc, 5000)

	claim, err := svc.InitiateClaim(context.Background(), ClaimInitiationRequest{
		PatientName:   "John Smith",
		Ailment:       "Knee Replacement",
		PackageName:   "Orthopaedics Package 2",
		TreatmentCost: 8000,
		InsurerID:     ins.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claim.ClaimStatus != ClaimInitiated {
		t.Errorf("status = %s, want INITIATED", claim.ClaimStatus)
	}
	if claim.CoverageAmount != 5000 {
		t.Errorf("coverage = %v, want 5000 (capped at limit)", claim.CoverageAmount)
	}
	if claim.InsurerName != ins.InsurerName {
		t.Errorf("insurer name not snapshotted: %q", claim.InsurerName)
	}
	if claim.InsuranceAmountLimit != 5000 {
		t.Errorf("limit not snapshotted: %v", claim.InsuranceAmountLimit)
	}
	if claim.ClaimInitiatedDate.IsZero() {
		t.Error("claim initiated date not set")
	}
}

func TestInitiateClaim_ReferenceFormat(t *testing.T) {
	svc, _, _ := newTestService()
	ins := seedInsurer(t, svc, 5000)

	claim, err := svc.InitiateClaim(context.Background(), ClaimInitiationRequest{
		PatientName:   "Jane Doe",
		TreatmentCost: 3000,
		InsurerID:     ins.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ref := claim.ClaimReferenceNumber
	prefix := "CLM-" + time.Now().UTC().Format("2006") + "-"
	if !strings.HasPrefix(ref, prefix) {
		t.Errorf("reference %q should start with %q", ref, prefix)
	}
	if len(ref) != len(prefix)+5 {
		t.Errorf("reference %q should end in 5 digits", ref)
	}
}

func TestInitiateClaim_RetriesOnReferenceCollision(t *testing.T) {
	svc, _, claims := newTestService()
	ins := seedInsurer(t, svc, 5000)
	claims.forceConflicts = 3

	claim, err := svc.InitiateClaim(context.Background(), ClaimInitiationRequest{
		PatientName:   "Jane Doe",
		TreatmentCost: 3000,
		InsurerID:     ins.ID,
	})
	if err != nil {
		t.Fatalf("should succeed after retries: %v", err)
	}
	if claim.ClaimReferenceNumber == "" {
		t.Error("reference not assigned")
	}
}

func TestInitiateClaim_ReferenceExhaustion(t *testing.T) {
	svc, _, claims := newTestService()
	ins := seedInsurer(t, svc, 5000)
	claims.forceConflicts = claimRefAttempts

	_, err := svc.InitiateClaim(context.Background(), ClaimInitiationRequest{
		PatientName:   "Jane Doe",
		TreatmentCost: 3000,
		InsurerID:     ins.ID,
	})
	if !apperr.IsConflict(err) {
		t.Errorf("got %v, want Conflict after exhausting retries", err)
	}
	if len(claims.items) != 0 {
		t.Errorf("no claim should persist, found %d", len(claims.items))
	}
}

func TestInitiateClaim_UniqueReferences(t *testing.T) {
	svc, _, claims := newTestService()
	ins := seedInsurer(t, svc, 5000)

	for i := 0; i < 50; i++ {
		if _, err := svc.InitiateClaim(context.Background(), ClaimInitiationRequest{
			PatientName:   "Jane Doe",
			TreatmentCost: 3000,
			InsurerID:     ins.ID,
		}); err != nil {
			t.Fatalf("claim %d: %v", i, err)
		}
	}
	if len(claims.refs) != 50 {
		t.Errorf("expected 50 distinct references, got %d", len(claims.refs))
	}
}

func TestInitiateClaim_Validation(t *testing.T) {
	svc, _, claims := newTestService()
	ins := seedInsurer(t, svc, 5000)

	tests := []struct {
		name string
		req  ClaimInitiationRequest
	}{
		{"empty patient name", ClaimInitiationRequest{PatientName: "  ", TreatmentCost: 100, InsurerID: ins.ID}},
		{"missing insurer id", ClaimInitiationRequest{PatientName: "Jane", TreatmentCost: 100}},
		{"negative cost", ClaimInitiationRequest{PatientName: "Jane", TreatmentCost: -1, InsurerID: ins.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.InitiateClaim(context.Background(), tt.req); !apperr.IsInvalidArgument(err) {
				t.Errorf("got %v, want InvalidArgument", err)
			}
		})
	}
	if len(claims.items) != 0 {
		t.Errorf("invalid requests must not persist claims, found %d", len(claims.items))
	}
}

func TestInitiateClaim_UnknownInsurer(t *testing.T) {
	svc, _, claims := newTestService()

	_, err := svc.InitiateClaim(context.Background(), ClaimInitiationRequest{
		PatientName:   "Jane Doe",
		TreatmentCost: 3000,
		InsurerID:     uuid.New(),
	})
	if !apperr.IsNotFound(err) {
		t.Errorf("got %v, want NotFound", err)
	}
	if len(claims.items) != 0 {
		t.Error("claim must not persist when insurer lookup fails")
	}
}

func TestInitiateClaim_InactiveInsurer(t *testing.T) {
	svc, _, _ := newTestService()
	ins := seedInsurer(t, svc, 5000)
	inactive := false
	if _, err := svc.UpdateInsurer(context.Background(), ins.ID, InsurerPatch{Active: &inactive}); err != nil {
		t.Fatalf("deactivate insurer: %v", err)
	}

	_, err := svc.InitiateClaim(context.Background(), ClaimInitiationRequest{
		PatientName:   "Jane Doe",
		TreatmentCost: 3000,
		InsurerID:     ins.ID,
	})
	if !apperr.IsNotFound(err) {
		t.Errorf("got %v, want NotFound for inactive insurer", err)
	}
}

// -- Claim Lifecycle --

func initiateTestClaim(t *testing.T, svc *Service, ins *Insurer) *ClaimRequest {
	t.Helper()
	claim, err := svc.InitiateClaim(context.Background(), ClaimInitiationRequest{
		PatientName:   "John Smith",
		TreatmentCost: 4000,
		InsurerID:     ins.ID,
	})
	if err != nil {
		t.Fatalf("initiate claim: %v", err)
	}
	return claim
}

func TestTransitionClaim_HappyPathToApproved(t *testing.T) {
	svc, _, _ := newTestService()
	ins := seedInsurer(t, svc, 5000)
	claim := initiateTestClaim(t, svc, ins)

	got, err := svc.TransitionClaim(context.Background(), claim.ID, ClaimProcessing)
	if err != nil {
		t.Fatalf("to PROCESSING: %v", err)
	}
	if got.ClaimStatus != ClaimProcessing {
		t.Errorf("status = %s, want PROCESSING", got.ClaimStatus)
	}

	got, err = svc.TransitionClaim(context.Background(), claim.ID, ClaimApproved)
	if err != nil {
		t.Fatalf("to APPROVED: %v", err)
	}
	if got.ClaimStatus != ClaimApproved {
		t.Errorf("status = %s, want APPROVED", got.ClaimStatus)
	}

	stored, err := svc.GetClaim(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("get claim: %v", err)
	}
	if stored.ClaimStatus != ClaimApproved {
		t.Errorf("persisted status = %s, want APPROVED", stored.ClaimStatus)
	}
}

func TestTransitionClaim_Rejection(t *testing.T) {
	svc, _, _ := newTestService()
	ins := seedInsurer(t, svc, 5000)
	claim := initiateTestClaim(t, svc, ins)

	if _, err := svc.TransitionClaim(context.Background(), claim.ID, ClaimProcessing); err != nil {
		t.Fatalf("to PROCESSING: %v", err)
	}
	got, err := svc.TransitionClaim(context.Background(), claim.ID, ClaimRejected)
	if err != nil {
		t.Fatalf("to REJECTED: %v", err)
	}
	if got.ClaimStatus != ClaimRejected {
		t.Errorf("status = %s, want REJECTED", got.ClaimStatus)
	}
}

func TestTransitionClaim_InvalidTransitions(t *testing.T) {
	svc, _, _ := newTestService()
	ins := seedInsurer(t, svc, 5000)

	tests := []struct {
		name   string
		setup  []ClaimStatus
		target ClaimStatus
	}{
		{"skip to approved", nil, ClaimApproved},
		{"skip to rejected", nil, ClaimRejected},
		{"back to initiated", []ClaimStatus{ClaimProcessing}, ClaimInitiated},
		{"approved is terminal", []ClaimStatus{ClaimProcessing, ClaimApproved}, ClaimProcessing},
		{"rejected is terminal", []ClaimStatus{ClaimProcessing, ClaimRejected}, ClaimProcessing},
		{"approved to rejected", []ClaimStatus{ClaimProcessing, ClaimApproved}, ClaimRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := initiateTestClaim(t, svc, ins)
			for _, step := range tt.setup {
				if _, err := svc.TransitionClaim(context.Background(), claim.ID, step); err != nil {
					t.Fatalf("setup step %s: %v", step, err)
				}
			}
			before, _ := svc.GetClaim(context.Background(), claim.ID)
			_, err := svc.TransitionClaim(context.Background(), claim.ID, tt.target)
			if !apperr.IsInvalidStateTransition(err) {
				t.Errorf("got %v, want InvalidStateTransition", err)
			}
			after, _ := svc.GetClaim(context.Background(), claim.ID)
			if after.ClaimStatus != before.ClaimStatus {
				t.Errorf("rejected transition must not change status: %s -> %s",
					before.ClaimStatus, after.ClaimStatus)
			}
		})
	}
}

func TestTransitionClaim_UnknownStatus(t *testing.T) {
	svc, _, _ := newTestService()
	ins := seedInsurer(t, svc, 5000)
	claim := initiateTestClaim(t, svc, ins)

	if _, err := svc.TransitionClaim(context.Background(), claim.ID, ClaimStatus("PENDING")); !apperr.IsInvalidArgument(err) {
		t.Errorf("got %v, want InvalidArgument", err)
	}
}

func TestTransitionClaim_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.TransitionClaim(context.Background(), uuid.New(), ClaimProcessing); !apperr.IsNotFound(err) {
		t.Errorf("got %v, want NotFound", err)
	}
}

func TestGetClaimByReference(t *testing.T) {
	svc, _, _ := newTestService()
	ins := seedInsurer(t, svc, 5000)
	claim := initiateTestClaim(t, svc, ins)

	got, err := svc.GetClaimByReference(context.Background(), claim.ClaimReferenceNumber)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != claim.ID {
		t.Errorf("got claim %s, want %s", got.ID, claim.ID)
	}

	if _, err := svc.GetClaimByReference(context.Background(), "CLM-1999-00000"); !apperr.IsNotFound(err) {
		t.Errorf("got %v, want NotFound", err)
	}
	if _, err := svc.GetClaimByReference(context.Background(), "  "); !apperr.IsInvalidArgument(err) {
		t.Errorf("got %v, want InvalidArgument", err)
	}
}

// -- Insurer Administration --

func TestCreateInsurer_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name string
		ins  Insurer
	}{
		{"empty name", Insurer{PackageName: "Plan A", InsuranceAmountLimit: 1000, ClaimDisbursementDays: 7}},
		{"empty package", Insurer{InsurerName: "Acme", InsuranceAmountLimit: 1000, ClaimDisbursementDays: 7}},
		{"negative limit", Insurer{InsurerName: "Acme", PackageName: "Plan A", InsuranceAmountLimit: -1, ClaimDisbursementDays: 7}},
		{"zero disbursement days", Insurer{InsurerName: "Acme", PackageName: "Plan A", InsuranceAmountLimit: 1000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateInsurer(context.Background(), &tt.ins); !apperr.IsInvalidArgument(err) {
				t.Errorf("got %v, want InvalidArgument", err)
			}
		})
	}
}

func TestCreateInsurer_DuplicateName(t *testing.T) {
	svc, _, _ := newTestService()
	seedInsurer(t, svc, 5000)

	_, err := svc.CreateInsurer(context.Background(), &Insurer{
		InsurerName:           "Star Health Insurance",
		PackageName:           "Another Plan",
		InsuranceAmountLimit:  1000,
		ClaimDisbursementDays: 5,
	})
	if !apperr.IsConflict(err) {
		t.Errorf("got %v, want Conflict", err)
	}
}

func TestUpdateInsurer_Patch(t *testing.T) {
	svc, _, _ := newTestService()
	ins := seedInsurer(t, svc, 5000)

	newLimit := 750000.0
	email := "claims@starhealth.in"
	got, err := svc.UpdateInsurer(context.Background(), ins.ID, InsurerPatch{
		InsuranceAmountLimit: &newLimit,
		ContactEmail:         &email,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.InsuranceAmountLimit != 750000 {
		t.Errorf("limit = %v, want 750000", got.InsuranceAmountLimit)
	}
	if got.ContactEmail == nil || *got.ContactEmail != email {
		t.Errorf("email not updated: %v", got.ContactEmail)
	}
	if got.PackageName != ins.PackageName {
		t.Errorf("untouched field changed: %q", got.PackageName)
	}
}

func TestUpdateInsurer_InvalidPatch(t *testing.T) {
	svc, _, _ := newTestService()
	ins := seedInsurer(t, svc, 5000)

	bad := -5.0
	if _, err := svc.UpdateInsurer(context.Background(), ins.ID, InsurerPatch{InsuranceAmountLimit: &bad}); !apperr.IsInvalidArgument(err) {
		t.Errorf("got %v, want InvalidArgument", err)
	}
	days := 0
	if _, err := svc.UpdateInsurer(context.Background(), ins.ID, InsurerPatch{ClaimDisbursementDays: &days}); !apperr.IsInvalidArgument(err) {
		t.Errorf("got %v, want InvalidArgument", err)
	}
}

func TestGetAllInsurerDetails(t *testing.T) {
	svc, _, _ := newTestService()
	seedInsurer(t, svc, 500000)
	if _, err := svc.CreateInsurer(context.Background(), &Insurer{
		InsurerName:           "HDFC ERGO Health",
		PackageName:           "Optima Restore",
		InsuranceAmountLimit:  300000,
		ClaimDisbursementDays: 12,
	}); err != nil {
		t.Fatalf("second insurer: %v", err)
	}

	details, err := svc.GetAllInsurerDetails(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 insurers, got %d", len(details))
	}
	for _, d := range details {
		if d.InsurerName == "" || d.PackageName == "" || d.ClaimDisbursementDays == 0 {
			t.Errorf("incomplete details: %+v", d)
		}
	}
}
