package insurance

import (
	"time"

	"github.com/google/uuid"
)

// ClaimStatus is the lifecycle state of a claim request.
type ClaimStatus string

const (
	ClaimInitiated  ClaimStatus = "INITIATED"
	ClaimProcessing ClaimStatus = "PROCESSING"
	ClaimApproved   ClaimStatus = "APPROVED"
	ClaimRejected   ClaimStatus = "REJECTED"
)

// validTransitions is the complete transition table. APPROVED and REJECTED
// are terminal.
var validTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimInitiated:  {ClaimProcessing},
	ClaimProcessing: {ClaimApproved, ClaimRejected},
	ClaimApproved:   {},
	ClaimRejected:   {},
}

// Valid reports whether s is a known claim status.
func (s ClaimStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s ClaimStatus) Terminal() bool {
	return s.Valid() && len(validTransitions[s]) == 0
}

// CanTransitionTo reports whether the transition s -> target is allowed.
func (s ClaimStatus) CanTransitionTo(target ClaimStatus) bool {
	for _, next := range validTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Insurer maps to the insurer table. Reference data: claim processing reads
// it but never mutates it.
type Insurer struct {
	ID                    uuid.UUID `db:"id" json:"id"`
	InsurerName           string    `db:"insurer_name" json:"insurer_name"`
	PackageName           string    `db:"package_name" json:"package_name"`
	InsuranceAmountLimit  float64   `db:"insurance_amount_limit" json:"insurance_amount_limit"`
	ClaimDisbursementDays int       `db:"claim_disbursement_days" json:"claim_disbursement_days"`
	ContactEmail          *string   `db:"contact_email" json:"contact_email,omitempty"`
	ContactNumber         *string   `db:"contact_number" json:"contact_number,omitempty"`
	Active                bool      `db:"active" json:"active"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// InsurerPatch describes an administrative update. Only non-nil fields
// change; claim processing never goes through this path.
type InsurerPatch struct {
	PackageName           *string  `json:"package_name,omitempty"`
	InsuranceAmountLimit  *float64 `json:"insurance_amount_limit,omitempty"`
	ClaimDisbursementDays *int     `json:"claim_disbursement_days,omitempty"`
	ContactEmail          *string  `json:"contact_email,omitempty"`
	ContactNumber         *string  `json:"contact_number,omitempty"`
	Active                *bool    `json:"active,omitempty"`
}

// InsurerDetails is the public-facing projection of an insurer.
type InsurerDetails struct {
	ID                    uuid.UUID `json:"id"`
	InsurerName           string    `json:"insurer_name"`
	PackageName           string    `json:"package_name"`
	InsuranceAmountLimit  float64   `json:"insurance_amount_limit"`
	ClaimDisbursementDays int       `json:"claim_disbursement_days"`
}

// Details returns the public projection of the insurer.
func (i *Insurer) Details() InsurerDetails {
	return InsurerDetails{
		ID:                    i.ID,
		InsurerName:           i.InsurerName,
		PackageName:           i.PackageName,
		InsuranceAmountLimit:  i.InsuranceAmountLimit,
		ClaimDisbursementDays: i.ClaimDisbursementDays,
	}
}

// ClaimRequest maps to the claim_request table. Insurer fields are copied at
// initiation time; the record is a snapshot, not a live join.
type ClaimRequest struct {
	ID                   uuid.UUID   `db:"id" json:"id"`
	PatientName          string      `db:"patient_name" json:"patient_name"`
	Ailment              string      `db:"ailment" json:"ailment"`
	PackageName          string      `db:"package_name" json:"package_name"`
	TreatmentCost        float64     `db:"treatment_cost" json:"treatment_cost"`
	InsurerName          string      `db:"insurer_name" json:"insurer_name"`
	InsurerPackageName   string      `db:"insurer_package_name" json:"insurer_package_name"`
	InsuranceAmountLimit float64     `db:"insurance_amount_limit" json:"insurance_amount_limit"`
	CoverageAmount       float64     `db:"coverage_amount" json:"coverage_amount"`
	ClaimStatus          ClaimStatus `db:"claim_status" json:"claim_status"`
	ClaimReferenceNumber string      `db:"claim_reference_number" json:"claim_reference_number"`
	PatientID            *uuid.UUID  `db:"patient_id" json:"patient_id,omitempty"`
	ClaimInitiatedDate   time.Time   `db:"claim_initiated_date" json:"claim_initiated_date"`
	CreatedAt            time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time   `db:"updated_at" json:"updated_at"`
}

// ClaimInitiationRequest is the input to InitiateClaim.
type ClaimInitiationRequest struct {
	PatientName   string     `json:"patient_name"`
	Ailment       string     `json:"ailment"`
	PackageName   string     `json:"package_name"`
	TreatmentCost float64    `json:"treatment_cost"`
	InsurerID     uuid.UUID  `json:"insurer_id"`
	PatientID     *uuid.UUID `json:"patient_id,omitempty"`
}

// ClaimInitiationResponse is the boundary-facing result of InitiateClaim.
type ClaimInitiationResponse struct {
	ClaimID              uuid.UUID   `json:"claim_id"`
	ClaimReferenceNumber string      `json:"claim_reference_number"`
	Status               ClaimStatus `json:"status"`
	CoverageAmount       float64     `json:"coverage_amount"`
}
