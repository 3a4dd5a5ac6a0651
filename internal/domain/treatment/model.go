package treatment

import (
	"time"

	"github.com/google/uuid"
)

// PlanStatus is the lifecycle state of a treatment plan.
type PlanStatus string

const (
	PlanActive    PlanStatus = "ACTIVE"
	PlanCompleted PlanStatus = "COMPLETED"
	PlanCancelled PlanStatus = "CANCELLED"
)

func (s PlanStatus) Valid() bool {
	switch s {
	case PlanActive, PlanCompleted, PlanCancelled:
		return true
	}
	return false
}

// PatientDetail maps to the patient_detail table.
type PatientDetail struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	Age                int       `db:"age" json:"age"`
	Ailment            string    `db:"ailment" json:"ailment"`
	PackageName        string    `db:"package_name" json:"package_name"`
	TreatmentStartDate time.Time `db:"treatment_start_date" json:"treatment_start_date"`
	TreatmentEndDate   time.Time `db:"treatment_end_date" json:"treatment_end_date"`
	ContactNumber      *string   `db:"contact_number" json:"contact_number,omitempty"`
	InsuranceProvider  *string   `db:"insurance_provider" json:"insurance_provider,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// TreatmentPlan maps to the treatment_plan table. Package and specialist
// fields are copied at generation time; later catalog edits do not touch
// existing plans.
type TreatmentPlan struct {
	ID                      uuid.UUID  `db:"id" json:"id"`
	PatientID               uuid.UUID  `db:"patient_id" json:"patient_id"`
	PackageName             string     `db:"package_name" json:"package_name"`
	Tests                   []string   `db:"tests" json:"tests"`
	Cost                    float64    `db:"cost" json:"cost"`
	SpecialistName          string     `db:"specialist_name" json:"specialist_name"`
	SpecialistLevel         string     `db:"specialist_level" json:"specialist_level"`
	Specialization          string     `db:"specialization" json:"specialization"`
	StartDate               time.Time  `db:"start_date" json:"start_date"`
	EndDate                 time.Time  `db:"end_date" json:"end_date"`
	DurationWeeks           int        `db:"duration_weeks" json:"duration_weeks"`
	SpecialistContactNumber *string    `db:"specialist_contact_number" json:"specialist_contact_number,omitempty"`
	SpecialistEmail         *string    `db:"specialist_email" json:"specialist_email,omitempty"`
	Status                  PlanStatus `db:"status" json:"status"`
	CreatedAt               time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at" json:"updated_at"`
}

// PatientIntakeRequest is the input to RegisterPatient.
type PatientIntakeRequest struct {
	Name               string    `json:"name"`
	Age                int       `json:"age"`
	Ailment            string    `json:"ailment"`
	PackageName        string    `json:"package_name"`
	TreatmentStartDate time.Time `json:"treatment_start_date"`
	ContactNumber      *string   `json:"contact_number,omitempty"`
	InsuranceProvider  *string   `json:"insurance_provider,omitempty"`
}

// PlanGenerationRequest is the input to GeneratePlan. Tests, when supplied,
// override the package's test list.
type PlanGenerationRequest struct {
	PatientID    uuid.UUID `json:"patient_id"`
	PackageName  string    `json:"package_name"`
	SpecialistID uuid.UUID `json:"specialist_id"`
	StartDate    time.Time `json:"start_date"`
	Tests        []string  `json:"tests,omitempty"`
}
