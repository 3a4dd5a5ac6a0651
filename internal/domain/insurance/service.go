package insurance

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/hms/internal/platform/apperr"
)

// claimRefAttempts bounds retries when a generated reference collides with
// an existing claim.
const claimRefAttempts = 5

// CalculateCoverageAmount returns the payable amount for a treatment: the
// full cost when the policy limit covers it, otherwise the limit.
func CalculateCoverageAmount(treatmentCost, insuranceLimit float64) (float64, error) {
	if treatmentCost < 0 {
		return 0, apperr.InvalidArgument("treatment cost must not be negative")
	}
	if insuranceLimit < 0 {
		return 0, apperr.InvalidArgument("insurance limit must not be negative")
	}
	if treatmentCost <= insuranceLimit {
		return treatmentCost, nil
	}
	return insuranceLimit, nil
}

// newClaimReference builds a reference like CLM-2024-10001. Uniqueness is
// enforced by the store, not here.
func newClaimReference(now time.Time) string {
	return fmt.Sprintf("CLM-%d-%05d", now.Year(), 10000+rand.Intn(90000))
}

// Service owns insurer administration and the claim lifecycle.
type Service struct {
	insurers InsurerRepository
	claims   ClaimRepository
}

func NewService(insurers InsurerRepository, claims ClaimRepository) *Service {
	return &Service{insurers: insurers, claims: claims}
}

// =========== Insurers ===========

func (s *Service) CreateInsurer(ctx context.Context, ins *Insurer) (*Insurer, error) {
	ins.InsurerName = strings.TrimSpace(ins.InsurerName)
	if ins.InsurerName == "" {
		return nil, apperr.InvalidArgument("insurer_name is required")
	}
	if strings.TrimSpace(ins.PackageName) == "" {
		return nil, apperr.InvalidArgument("package_name is required")
	}
	if ins.InsuranceAmountLimit < 0 {
		return nil, apperr.InvalidArgument("insurance_amount_limit must not be negative")
	}
	if ins.ClaimDisbursementDays <= 0 {
		return nil, apperr.InvalidArgument("claim_disbursement_days must be positive")
	}
	ins.Active = true
	if err := s.insurers.Create(ctx, ins); err != nil {
		return nil, err
	}
	return ins, nil
}

func (s *Service) GetInsurer(ctx context.Context, id uuid.UUID) (*Insurer, error) {
	return s.insurers.GetByID(ctx, id)
}

func (s *Service) GetInsurerByName(ctx context.Context, name string) (*Insurer, error) {
	return s.insurers.GetByName(ctx, name)
}

func (s *Service) ListInsurers(ctx context.Context, limit, offset int) ([]*Insurer, int, error) {
	items, err := s.insurers.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.insurers.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetAllInsurerDetails returns the public projection of every insurer,
// active and inactive alike.
func (s *Service) GetAllInsurerDetails(ctx context.Context) ([]InsurerDetails, error) {
	total, err := s.insurers.Count(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.insurers.List(ctx, total, 0)
	if err != nil {
		return nil, err
	}
	details := make([]InsurerDetails, 0, len(items))
	for _, ins := range items {
		details = append(details, ins.Details())
	}
	return details, nil
}

// UpdateInsurer applies the non-nil fields of patch. The insurer name is
// immutable; claims snapshot it at initiation.
func (s *Service) UpdateInsurer(ctx context.Context, id uuid.UUID, patch InsurerPatch) (*Insurer, error) {
	ins, err := s.insurers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.PackageName != nil {
		if strings.TrimSpace(*patch.PackageName) == "" {
			return nil, apperr.InvalidArgument("package_name must not be empty")
		}
		ins.PackageName = *patch.PackageName
	}
	if patch.InsuranceAmountLimit != nil {
		if *patch.InsuranceAmountLimit < 0 {
			return nil, apperr.InvalidArgument("insurance_amount_limit must not be negative")
		}
		ins.InsuranceAmountLimit = *patch.InsuranceAmountLimit
	}
	if patch.ClaimDisbursementDays != nil {
		if *patch.ClaimDisbursementDays <= 0 {
			return nil, apperr.InvalidArgument("claim_disbursement_days must be positive")
		}
		ins.ClaimDisbursementDays = *patch.ClaimDisbursementDays
	}
	if patch.ContactEmail != nil {
		ins.ContactEmail = patch.ContactEmail
	}
	if patch.ContactNumber != nil {
		ins.ContactNumber = patch.ContactNumber
	}
	if patch.Active != nil {
		ins.Active = *patch.Active
	}
	if err := s.insurers.Update(ctx, ins); err != nil {
		return nil, err
	}
	return ins, nil
}

// =========== Claims ===========

// InitiateClaim validates the request, snapshots the insurer's terms,
// computes the coverage amount and persists a new claim in INITIATED state.
func (s *Service) InitiateClaim(ctx context.Context, req ClaimInitiationRequest) (*ClaimRequest, error) {
	if strings.TrimSpace(req.PatientName) == "" {
		return nil, apperr.InvalidArgument("patient_name is required")
	}
	if req.InsurerID == uuid.Nil {
		return nil, apperr.InvalidArgument("insurer_id is required")
	}
	if req.TreatmentCost < 0 {
		return nil, apperr.InvalidArgument("treatment_cost must not be negative")
	}

	ins, err := s.insurers.GetByID(ctx, req.InsurerID)
	if err != nil {
		return nil, err
	}
	if !ins.Active {
		return nil, apperr.NotFound("insurer %s is not accepting claims", ins.InsurerName)
	}

	coverage, err := CalculateCoverageAmount(req.TreatmentCost, ins.InsuranceAmountLimit)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	claim := &ClaimRequest{
		PatientName:          strings.TrimSpace(req.PatientName),
		Ailment:              strings.TrimSpace(req.Ailment),
		PackageName:          strings.TrimSpace(req.PackageName),
		TreatmentCost:        req.TreatmentCost,
		InsurerName:          ins.InsurerName,
		InsurerPackageName:   ins.PackageName,
		InsuranceAmountLimit: ins.InsuranceAmountLimit,
		CoverageAmount:       coverage,
		ClaimStatus:          ClaimInitiated,
		PatientID:            req.PatientID,
		ClaimInitiatedDate:   now,
	}

	var lastErr error
	for attempt := 0; attempt < claimRefAttempts; attempt++ {
		claim.ClaimReferenceNumber = newClaimReference(now)
		lastErr = s.claims.Create(ctx, claim)
		if lastErr == nil {
			return claim, nil
		}
		if !apperr.IsConflict(lastErr) {
			return nil, lastErr
		}
	}
	return nil, apperr.Conflict("could not allocate a unique claim reference: %v", lastErr)
}

// TransitionClaim moves a claim to target if the lifecycle allows it.
func (s *Service) TransitionClaim(ctx context.Context, id uuid.UUID, target ClaimStatus) (*ClaimRequest, error) {
	if !target.Valid() {
		return nil, apperr.InvalidArgument("unknown claim status %q", string(target))
	}
	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !claim.ClaimStatus.CanTransitionTo(target) {
		return nil, apperr.InvalidStateTransition("claim %s cannot move from %s to %s",
			claim.ClaimReferenceNumber, claim.ClaimStatus, target)
	}
	if err := s.claims.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	claim.ClaimStatus = target
	return claim, nil
}

func (s *Service) GetClaim(ctx context.Context, id uuid.UUID) (*ClaimRequest, error) {
	return s.claims.GetByID(ctx, id)
}

func (s *Service) GetClaimByReference(ctx context.Context, ref string) (*ClaimRequest, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperr.InvalidArgument("claim reference is required")
	}
	return s.claims.GetByReference(ctx, ref)
}

func (s *Service) ListClaims(ctx context.Context, limit, offset int) ([]*ClaimRequest, int, error) {
	items, err := s.claims.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.claims.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
