package scheme

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gramcare/gramcare/internal/domain/identity"
)

var (
	ErrNoProfile         = errors.New("user profile not found")
	ErrUnsupportedScheme = errors.New("scheme not supported")
	ErrNoDistrict        = errors.New("district information required")
)

// Hospital is an empanelled hospital listing.
type Hospital struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Contact  string   `json:"contact_info"`
	Services []string `json:"services"`
}

// HospitalDirectory lists BSKY-empanelled hospitals by district. Implemented
// over the facility registry.
type HospitalDirectory interface {
	EmpanelledHospitals(ctx context.Context, district string) ([]Hospital, error)
}

type Clock func() time.Time

type Service struct {
	apps      ApplicationRepository
	gateway   GovGateway
	users     identity.UserRepository
	citizens  identity.CitizenRepository
	hospitals HospitalDirectory
	clock     Clock
	log       zerolog.Logger
}

func NewService(apps ApplicationRepository, gateway GovGateway, users identity.UserRepository,
	citizens identity.CitizenRepository, hospitals HospitalDirectory, clock Clock, log zerolog.Logger) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		apps:      apps,
		gateway:   gateway,
		users:     users,
		citizens:  citizens,
		hospitals: hospitals,
		clock:     clock,
		log:       log,
	}
}

// citizenData assembles the gateway payload from the identity records.
func (s *Service) citizenData(ctx context.Context, userID uuid.UUID) (CitizenData, *identity.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return CitizenData{}, nil, ErrNoProfile
	}
	data := CitizenData{UserID: u.ID.String(), FullName: u.FullName}
	if u.Phone != nil {
		data.Phone = *u.Phone
	}
	if u.District != nil {
		data.District = *u.District
	}
	if u.Block != nil {
		data.Block = *u.Block
	}
	if u.Village != nil {
		data.Village = *u.Village
	}
	if profile, err := s.citizens.GetByUserID(ctx, userID); err == nil {
		if profile.DateOfBirth != nil {
			data.DateOfBirth = profile.DateOfBirth.Format("2006-01-02")
		}
		if profile.Gender != nil {
			data.Gender = *profile.Gender
		}
		if profile.BloodGroup != nil {
			data.BloodGroup = *profile.BloodGroup
		}
	}
	return data, u, nil
}

// EligibilityCheck is the outcome returned to the caller, with the result
// also recorded on the user's application row.
type EligibilityCheck struct {
	SchemeName string             `json:"scheme_name"`
	Eligible   bool               `json:"eligible"`
	Details    *EligibilityResult `json:"eligibility_data,omitempty"`
	Hospitals  []Hospital         `json:"empanelled_hospitals,omitempty"`
	CheckedAt  time.Time          `json:"timestamp"`
}

// CheckEligibility runs the gateway check for the scheme and upserts the
// result on the user's application record. Only BSKY has a live gateway
// today.
func (s *Service) CheckEligibility(ctx context.Context, userID uuid.UUID, schemeName string) (*EligibilityCheck, error) {
	if schemeName == "" {
		schemeName = SchemeBSKY
	}
	if _, ok := InfoFor(schemeName); !ok {
		return nil, ErrUnsupportedScheme
	}
	if schemeName != SchemeBSKY {
		return nil, fmt.Errorf("eligibility check for %s is not yet available: %w", schemeName, ErrUnsupportedScheme)
	}

	data, _, err := s.citizenData(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.CheckBSKYEligibility(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("eligibility check: %w", err)
	}

	status := EligibilityDenied
	if result.Eligible {
		status = EligibilityEligible
	}
	benefits := map[string]interface{}{
		"scheme_id":              result.SchemeID,
		"coverage_amount":        result.CoverageAmount,
		"family_members_covered": result.FamilyMembersCovered,
		"validity":               result.Validity,
	}
	if err := s.upsert(ctx, userID, schemeName, func(a *Application) {
		a.SchemeID = result.SchemeID
		a.EligibilityStatus = status
		a.BenefitsAvailed = benefits
	}); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("eligibility record save failed")
	}

	check := &EligibilityCheck{
		SchemeName: schemeName,
		Eligible:   result.Eligible,
		Details:    result,
		CheckedAt:  s.clock(),
	}
	if data.District != "" {
		if hospitals, err := s.hospitals.EmpanelledHospitals(ctx, data.District); err == nil {
			check.Hospitals = hospitals
		}
	}
	return check, nil
}

// EmpanelledHospitals lists BSKY hospitals, defaulting to the caller's
// district.
func (s *Service) EmpanelledHospitals(ctx context.Context, userID uuid.UUID, district string) ([]Hospital, string, error) {
	if district == "" {
		if u, err := s.users.GetByID(ctx, userID); err == nil && u.District != nil {
			district = *u.District
		}
	}
	if district == "" {
		return nil, "", ErrNoDistrict
	}
	hospitals, err := s.hospitals.EmpanelledHospitals(ctx, district)
	if err != nil {
		return nil, "", fmt.Errorf("empanelled hospitals: %w", err)
	}
	return hospitals, district, nil
}

// VaccinationCenters lists centers in the district, defaulting to the
// caller's district.
func (s *Service) VaccinationCenters(ctx context.Context, userID uuid.UUID, district, date string) ([]VaccinationCenter, string, error) {
	if district == "" {
		if u, err := s.users.GetByID(ctx, userID); err == nil && u.District != nil {
			district = *u.District
		}
	}
	if district == "" {
		return nil, "", ErrNoDistrict
	}
	centers, err := s.gateway.VaccinationCenters(ctx, district, date)
	if err != nil {
		return nil, "", fmt.Errorf("vaccination centers: %w", err)
	}
	return centers, district, nil
}

// CreateABHA issues an ABHA number through the gateway and stores it on the
// user. Idempotent: an existing ABHA is returned as-is.
func (s *Service) CreateABHA(ctx context.Context, userID uuid.UUID) (*ABHARecord, bool, error) {
	data, u, err := s.citizenData(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if u.AbhaID != nil && *u.AbhaID != "" {
		return &ABHARecord{ABHANumber: *u.AbhaID}, false, nil
	}

	record, err := s.gateway.CreateABHA(ctx, data)
	if err != nil {
		return nil, false, fmt.Errorf("abha creation: %w", err)
	}
	u.AbhaID = &record.ABHANumber
	if err := s.users.Update(ctx, u); err != nil {
		return nil, false, fmt.Errorf("store abha id: %w", err)
	}
	return record, true, nil
}

// Apply files (or re-files) an application for a scheme.
func (s *Service) Apply(ctx context.Context, userID uuid.UUID, schemeName string, documents map[string]interface{}) (*Application, error) {
	if schemeName == "" {
		return nil, fmt.Errorf("scheme_name is required")
	}
	if _, ok := InfoFor(schemeName); !ok {
		return nil, ErrUnsupportedScheme
	}
	var out *Application
	err := s.upsert(ctx, userID, schemeName, func(a *Application) {
		a.ApplicationStatus = StatusSubmitted
		a.DocumentsSubmitted = documents
		out = a
	})
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	return out, nil
}

// ListApplications returns the caller's scheme records, newest first.
func (s *Service) ListApplications(ctx context.Context, userID uuid.UUID) ([]*Application, error) {
	return s.apps.ListByUser(ctx, userID)
}

// upsert loads or creates the (user, scheme) row, applies mutate, and
// persists it.
func (s *Service) upsert(ctx context.Context, userID uuid.UUID, schemeName string, mutate func(*Application)) error {
	existing, err := s.apps.GetByUserAndScheme(ctx, userID, schemeName)
	if err == nil {
		mutate(existing)
		return s.apps.Update(ctx, existing)
	}
	a := &Application{
		UserID:            userID,
		SchemeName:        schemeName,
		EligibilityStatus: EligibilityUnknown,
		ApplicationStatus: StatusPending,
	}
	mutate(a)
	return s.apps.Create(ctx, a)
}
