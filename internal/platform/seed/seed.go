// Package seed loads the demo dataset used for local development and
// exploratory testing. It is a faithful copy of the hospital's sample data,
// including claim coverage figures that predate the current calculator.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hospital/hms/internal/domain/catalog"
	"github.com/hospital/hms/internal/domain/insurance"
	"github.com/hospital/hms/internal/domain/treatment"
)

type Seeder struct {
	insurers    insurance.InsurerRepository
	claims      insurance.ClaimRepository
	packages    catalog.PackageRepository
	specialists catalog.SpecialistRepository
	patients    treatment.PatientRepository
	plans       treatment.PlanRepository
	logger      zerolog.Logger
}

func New(
	insurers insurance.InsurerRepository,
	claims insurance.ClaimRepository,
	packages catalog.PackageRepository,
	specialists catalog.SpecialistRepository,
	patients treatment.PatientRepository,
	plans treatment.PlanRepository,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		insurers:    insurers,
		claims:      claims,
		packages:    packages,
		specialists: specialists,
		patients:    patients,
		plans:       plans,
		logger:      logger,
	}
}

// Run loads the sample dataset. It is a no-op when insurers already exist,
// so it is safe to invoke on every startup.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.insurers.Count(ctx)
	if err != nil {
		return fmt.Errorf("check insurer count: %w", err)
	}
	if count > 0 {
		s.logger.Info().Msg("sample data already exists, skipping initialization")
		return nil
	}

	s.logger.Info().Msg("loading sample data")
	if err := s.loadInsurers(ctx); err != nil {
		return fmt.Errorf("seed insurers: %w", err)
	}
	if err := s.loadPackages(ctx); err != nil {
		return fmt.Errorf("seed treatment packages: %w", err)
	}
	if err := s.loadSpecialists(ctx); err != nil {
		return fmt.Errorf("seed specialists: %w", err)
	}
	patients, err := s.loadPatients(ctx)
	if err != nil {
		return fmt.Errorf("seed patients: %w", err)
	}
	if err := s.loadPlans(ctx, patients); err != nil {
		return fmt.Errorf("seed treatment plans: %w", err)
	}
	if err := s.loadClaims(ctx, patients); err != nil {
		return fmt.Errorf("seed claims: %w", err)
	}
	s.logger.Info().Msg("sample data loaded")
	return nil
}

func strPtr(s string) *string { return &s }

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func stamp(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

func (s *Seeder) loadInsurers(ctx context.Context) error {
	rows := []insurance.Insurer{
		{InsurerName: "Apollo Munich Health Insurance", PackageName: "Comprehensive Health Plus", InsuranceAmountLimit: 500000, ClaimDisbursementDays: 7, ContactEmail: strPtr("claims@apollomunich.com")},
		{InsurerName: "Star Health Insurance", PackageName: "Star Family Health Optima", InsuranceAmountLimit: 300000, ClaimDisbursementDays: 10, ContactEmail: strPtr("claims@starhealth.in")},
		{InsurerName: "HDFC ERGO Health Insurance", PackageName: "My Health Suraksha", InsuranceAmountLimit: 400000, ClaimDisbursementDays: 8, ContactEmail: strPtr("claims@hdfcergo.com")},
		{InsurerName: "ICICI Lombard Health Insurance", PackageName: "Complete Health Insurance", InsuranceAmountLimit: 600000, ClaimDisbursementDays: 12, ContactEmail: strPtr("claims@icicilombard.com")},
		{InsurerName: "Max Bupa Health Insurance", PackageName: "Health Companion", InsuranceAmountLimit: 250000, ClaimDisbursementDays: 9, ContactEmail: strPtr("claims@maxbupa.com")},
		{InsurerName: "Care Health Insurance", PackageName: "Care Supreme", InsuranceAmountLimit: 350000, ClaimDisbursementDays: 11, ContactEmail: strPtr("claims@careinsurance.com")},
		{InsurerName: "SBI General Insurance", PackageName: "Arogya Premier", InsuranceAmountLimit: 200000, ClaimDisbursementDays: 14, ContactEmail: strPtr("claims@sbigeneral.in")},
		{InsurerName: "Bajaj Allianz Health", PackageName: "Health Guard", InsuranceAmountLimit: 450000, ClaimDisbursementDays: 10, ContactEmail: strPtr("claims@bajajallianz.com")},
		{InsurerName: "Oriental Insurance Company", PackageName: "Hope Health Insurance", InsuranceAmountLimit: 180000, ClaimDisbursementDays: 15, ContactEmail: strPtr("claims@orientalinsurance.co.in")},
		{InsurerName: "United India Insurance", PackageName: "Family Floater Mediclaim", InsuranceAmountLimit: 300000, ClaimDisbursementDays: 13, ContactEmail: strPtr("claims@uiic.co.in")},
	}
	for i := range rows {
		rows[i].Active = true
		if err := s.insurers.Create(ctx, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) loadPackages(ctx context.Context) error {
	rows := []catalog.TreatmentPackage{
		{Name: "Orthopaedics Package 1", Specialization: "Orthopaedics", Tests: []string{"OPT1", "OPT2", "OPT3"}, Cost: 2500, DurationWeeks: 4, PackageLevel: 1},
		{Name: "Orthopaedics Package 2", Specialization: "Orthopaedics", Tests: []string{"OPT4", "OPT5", "OPT6"}, Cost: 3000, DurationWeeks: 6, PackageLevel: 2},
		{Name: "Urology Package 1", Specialization: "Urology", Tests: []string{"URT1", "URT2", "URT3"}, Cost: 4000, DurationWeeks: 4, PackageLevel: 1},
		{Name: "Urology Package 2", Specialization: "Urology", Tests: []string{"URT4", "URT5", "URT6"}, Cost: 5000, DurationWeeks: 6, PackageLevel: 2},
	}
	for i := range rows {
		if err := s.packages.Create(ctx, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) loadSpecialists(ctx context.Context) error {
	rows := []catalog.Specialist{
		{Name: "Dr. Sarah Johnson", Specialization: "Orthopaedics", Level: catalog.LevelSenior, Qualifications: strPtr("MBBS, MS (Ortho)"), ExperienceYears: 15, ContactNumber: strPtr("+1-555-0101"), Email: strPtr("dr.sarah@hospital.com")},
		{Name: "Dr. Michael Chen", Specialization: "Orthopaedics", Level: catalog.LevelJunior, Qualifications: strPtr("MBBS, MS (Ortho)"), ExperienceYears: 8, ContactNumber: strPtr("+1-555-0102"), Email: strPtr("dr.michael@hospital.com")},
		{Name: "Dr. Emily Rodriguez", Specialization: "Orthopaedics", Level: catalog.LevelSenior, Qualifications: strPtr("MBBS, MS (Ortho)"), ExperienceYears: 12, ContactNumber: strPtr("+1-555-0103"), Email: strPtr("dr.emily@hospital.com")},
		{Name: "Dr. James Wilson", Specialization: "Orthopaedics", Level: catalog.LevelJunior, Qualifications: strPtr("MBBS, MS (Ortho)"), ExperienceYears: 6, ContactNumber: strPtr("+1-555-0104"), Email: strPtr("dr.james@hospital.com")},
		{Name: "Dr. Lisa Thompson", Specialization: "Urology", Level: catalog.LevelSenior, Qualifications: strPtr("MBBS, MS (Urology)"), ExperienceYears: 18, ContactNumber: strPtr("+1-555-0201"), Email: strPtr("dr.lisa@hospital.com")},
		{Name: "Dr. David Kumar", Specialization: "Urology", Level: catalog.LevelJunior, Qualifications: strPtr("MBBS, MS (Urology)"), ExperienceYears: 7, ContactNumber: strPtr("+1-555-0202"), Email: strPtr("dr.david@hospital.com")},
		{Name: "Dr. Maria Garcia", Specialization: "Urology", Level: catalog.LevelSenior, Qualifications: strPtr("MBBS, MS (Urology)"), ExperienceYears: 14, ContactNumber: strPtr("+1-555-0203"), Email: strPtr("dr.maria@hospital.com")},
		{Name: "Dr. Robert Lee", Specialization: "Urology", Level: catalog.LevelJunior, Qualifications: strPtr("MBBS, MS (Urology)"), ExperienceYears: 5, ContactNumber: strPtr("+1-555-0204"), Email: strPtr("dr.robert@hospital.com")},
	}
	for i := range rows {
		rows[i].Available = true
		if err := s.specialists.Create(ctx, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) loadPatients(ctx context.Context) ([]*treatment.PatientDetail, error) {
	rows := []treatment.PatientDetail{
		{Name: "John Smith", Age: 45, Ailment: "Knee Pain", PackageName: "Orthopaedics Package 1", TreatmentStartDate: day("2024-01-15"), ContactNumber: strPtr("+1-555-1001"), InsuranceProvider: strPtr("Apollo Munich Health Insurance")},
		{Name: "Jane Doe", Age: 38, Ailment: "Kidney Stones", PackageName: "Urology Package 1", TreatmentStartDate: day("2024-01-20"), ContactNumber: strPtr("+1-555-1002"), InsuranceProvider: strPtr("HDFC ERGO Health Insurance")},
		{Name: "Robert Brown", Age: 52, Ailment: "Back Pain", PackageName: "Orthopaedics Package 2", TreatmentStartDate: day("2024-02-01"), ContactNumber: strPtr("+1-555-1003"), InsuranceProvider: strPtr("Star Health Insurance")},
		{Name: "Emily Davis", Age: 29, Ailment: "Urinary Infection", PackageName: "Urology Package 2", TreatmentStartDate: day("2024-02-10"), ContactNumber: strPtr("+1-555-1004"), InsuranceProvider: strPtr("ICICI Lombard Health Insurance")},
		{Name: "Michael Wilson", Age: 41, Ailment: "Joint Issues", PackageName: "Orthopaedics Package 1", TreatmentStartDate: day("2024-02-15"), ContactNumber: strPtr("+1-555-1005"), InsuranceProvider: strPtr("Apollo Munich Health Insurance")},
		{Name: "Sarah Miller", Age: 35, Ailment: "Bladder Issues", PackageName: "Urology Package 1", TreatmentStartDate: day("2024-03-01"), ContactNumber: strPtr("+1-555-1006"), InsuranceProvider: strPtr("HDFC ERGO Health Insurance")},
	}
	weeks := map[string]int{
		"Orthopaedics Package 1": 4,
		"Orthopaedics Package 2": 6,
		"Urology Package 1":      4,
		"Urology Package 2":      6,
	}
	out := make([]*treatment.PatientDetail, 0, len(rows))
	for i := range rows {
		rows[i].TreatmentEndDate = rows[i].TreatmentStartDate.AddDate(0, 0, 7*weeks[rows[i].PackageName])
		if err := s.patients.Create(ctx, &rows[i]); err != nil {
			return nil, err
		}
		out = append(out, &rows[i])
	}
	return out, nil
}

func (s *Seeder) loadPlans(ctx context.Context, patients []*treatment.PatientDetail) error {
	rows := []treatment.TreatmentPlan{
		{PatientID: patients[0].ID, PackageName: "Orthopaedics Package 1", Tests: []string{"X-Ray", "MRI", "Blood Test"}, Cost: 2500, SpecialistName: "Dr. Michael Chen", SpecialistLevel: "JUNIOR", Specialization: "Orthopaedics", StartDate: day("2024-01-15"), EndDate: day("2024-02-12"), DurationWeeks: 4},
		{PatientID: patients[1].ID, PackageName: "Urology Package 1", Tests: []string{"Ultrasound", "CT Scan", "Urine Test"}, Cost: 4000, SpecialistName: "Dr. David Kumar", SpecialistLevel: "JUNIOR", Specialization: "Urology", StartDate: day("2024-01-20"), EndDate: day("2024-02-17"), DurationWeeks: 4},
		{PatientID: patients[2].ID, PackageName: "Orthopaedics Package 2", Tests: []string{"MRI", "CT Scan", "Physical Therapy"}, Cost: 3000, SpecialistName: "Dr. Sarah Johnson", SpecialistLevel: "SENIOR", Specialization: "Orthopaedics", StartDate: day("2024-02-01"), EndDate: day("2024-03-14"), DurationWeeks: 6},
		{PatientID: patients[3].ID, PackageName: "Urology Package 2", Tests: []string{"Cystoscopy", "Biopsy", "Blood Test"}, Cost: 5000, SpecialistName: "Dr. Lisa Thompson", SpecialistLevel: "SENIOR", Specialization: "Urology", StartDate: day("2024-02-10"), EndDate: day("2024-03-23"), DurationWeeks: 6},
		{PatientID: patients[4].ID, PackageName: "Orthopaedics Package 1", Tests: []string{"X-Ray", "Physical Therapy", "Blood Test"}, Cost: 2500, SpecialistName: "Dr. James Wilson", SpecialistLevel: "JUNIOR", Specialization: "Orthopaedics", StartDate: day("2024-02-15"), EndDate: day("2024-03-14"), DurationWeeks: 4},
		{PatientID: patients[5].ID, PackageName: "Urology Package 1", Tests: []string{"Ultrasound", "Urine Test", "Blood Test"}, Cost: 4000, SpecialistName: "Dr. Robert Lee", SpecialistLevel: "JUNIOR", Specialization: "Urology", StartDate: day("2024-03-01"), EndDate: day("2024-03-29"), DurationWeeks: 4},
	}
	for i := range rows {
		rows[i].Status = treatment.PlanActive
		if err := s.plans.Create(ctx, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) loadClaims(ctx context.Context, patients []*treatment.PatientDetail) error {
	rows := []insurance.ClaimRequest{
		{PatientName: "John Smith", Ailment: "Knee Pain", PackageName: "Orthopaedics Package 1", TreatmentCost: 2500, InsurerName: "Apollo Munich Health Insurance", InsurerPackageName: "Comprehensive Health Plus", InsuranceAmountLimit: 500000, CoverageAmount: 2250, ClaimStatus: insurance.ClaimApproved, ClaimReferenceNumber: "CLM-2024-10001", PatientID: &patients[0].ID, ClaimInitiatedDate: stamp("2024-01-15T10:00:00")},
		{PatientName: "Jane Doe", Ailment: "Kidney Stones", PackageName: "Urology Package 1", TreatmentCost: 4000, InsurerName: "HDFC ERGO Health Insurance", InsurerPackageName: "My Health Suraksha", InsuranceAmountLimit: 400000, CoverageAmount: 3600, ClaimStatus: insurance.ClaimProcessing, ClaimReferenceNumber: "CLM-2024-10002", PatientID: &patients[1].ID, ClaimInitiatedDate: stamp("2024-01-20T14:30:00")},
		{PatientName: "Robert Brown", Ailment: "Back Pain", PackageName: "Orthopaedics Package 2", TreatmentCost: 3000, InsurerName: "Star Health Insurance", InsurerPackageName: "Star Family Health Optima", InsuranceAmountLimit: 300000, CoverageAmount: 2700, ClaimStatus: insurance.ClaimInitiated, ClaimReferenceNumber: "CLM-2024-10003", PatientID: &patients[2].ID, ClaimInitiatedDate: stamp("2024-02-01T09:15:00")},
		{PatientName: "Emily Davis", Ailment: "Urinary Infection", PackageName: "Urology Package 2", TreatmentCost: 5000, InsurerName: "ICICI Lombard Health Insurance", InsurerPackageName: "Complete Health Insurance", InsuranceAmountLimit: 600000, CoverageAmount: 4500, ClaimStatus: insurance.ClaimApproved, ClaimReferenceNumber: "CLM-2024-10004", PatientID: &patients[3].ID, ClaimInitiatedDate: stamp("2024-02-10T16:45:00")},
	}
	for i := range rows {
		if err := s.claims.Create(ctx, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
