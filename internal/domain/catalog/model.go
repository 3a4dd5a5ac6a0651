package catalog

import (
	"time"

	"github.com/google/uuid"
)

// SpecialistLevel is the seniority grade of a specialist.
type SpecialistLevel string

const (
	LevelJunior SpecialistLevel = "JUNIOR"
	LevelSenior SpecialistLevel = "SENIOR"
)

func (l SpecialistLevel) Valid() bool {
	return l == LevelJunior || l == LevelSenior
}

// TreatmentPackage maps to the treatment_package table. Plans snapshot its
// cost, tests and duration at generation time.
type TreatmentPackage struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	Tests          []string  `db:"tests" json:"tests"`
	Cost           float64   `db:"cost" json:"cost"`
	DurationWeeks  int       `db:"duration_weeks" json:"duration_weeks"`
	PackageLevel   int       `db:"package_level" json:"package_level"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// PackagePatch describes a partial update. The name is immutable; plans
// and patients reference packages by name.
type PackagePatch struct {
	Specialization *string   `json:"specialization,omitempty"`
	Tests          *[]string `json:"tests,omitempty"`
	Cost           *float64  `json:"cost,omitempty"`
	DurationWeeks  *int      `json:"duration_weeks,omitempty"`
	PackageLevel   *int      `json:"package_level,omitempty"`
}

// Specialist maps to the specialist table.
type Specialist struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Specialization  string          `db:"specialization" json:"specialization"`
	Level           SpecialistLevel `db:"level" json:"level"`
	Qualifications  *string         `db:"qualifications" json:"qualifications,omitempty"`
	ExperienceYears int             `db:"experience_years" json:"experience_years"`
	ContactNumber   *string         `db:"contact_number" json:"contact_number,omitempty"`
	Email           *string         `db:"email" json:"email,omitempty"`
	Available       bool            `db:"available" json:"available"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// SpecialistPatch describes a partial update.
type SpecialistPatch struct {
	Name            *string          `json:"name,omitempty"`
	Specialization  *string          `json:"specialization,omitempty"`
	Level           *SpecialistLevel `json:"level,omitempty"`
	Qualifications  *string          `json:"qualifications,omitempty"`
	ExperienceYears *int             `json:"experience_years,omitempty"`
	ContactNumber   *string          `json:"contact_number,omitempty"`
	Email           *string          `json:"email,omitempty"`
}
