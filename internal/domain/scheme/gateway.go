package scheme

import (
	"context"
	"fmt"
	"time"
)

// CitizenData is what the government gateways need to know about an
// applicant.
type CitizenData struct {
	UserID      string `json:"user_id"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	District    string `json:"district"`
	Block       string `json:"block"`
	Village     string `json:"village"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	BloodGroup  string `json:"blood_group"`
}

// EligibilityResult is the outcome of a scheme eligibility check.
type EligibilityResult struct {
	Eligible             bool    `json:"eligible"`
	SchemeID             string  `json:"scheme_id"`
	CoverageAmount       float64 `json:"coverage_amount"`
	FamilyMembersCovered int     `json:"family_members_covered"`
	Validity             string  `json:"validity"`
}

// VaccinationCenter is one CoWIN listing.
type VaccinationCenter struct {
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	District          string   `json:"district"`
	Pincode           string   `json:"pincode"`
	AvailableVaccines []string `json:"available_vaccines"`
	AvailableSlots    int      `json:"available_slots"`
	Timing            string   `json:"timing"`
}

// ABHARecord is an issued Ayushman Bharat Health Account.
type ABHARecord struct {
	ABHAID     string `json:"abha_id"`
	ABHANumber string `json:"abha_number"`
	CreatedAt  string `json:"created_at"`
}

// GovGateway fronts the external government health APIs (BSKY portal, CoWIN,
// ABDM). Implementations must not mutate local state.
type GovGateway interface {
	CheckBSKYEligibility(ctx context.Context, citizen CitizenData) (*EligibilityResult, error)
	VaccinationCenters(ctx context.Context, district, date string) ([]VaccinationCenter, error)
	CreateABHA(ctx context.Context, citizen CitizenData) (*ABHARecord, error)
}

// MockGateway is the stand-in used until the real government integrations
// come online. Responses mirror the sandbox payloads of the respective
// portals.
type MockGateway struct {
	Clock func() time.Time
}

func NewMockGateway(clock func() time.Time) *MockGateway {
	if clock == nil {
		clock = time.Now
	}
	return &MockGateway{Clock: clock}
}

func (g *MockGateway) CheckBSKYEligibility(_ context.Context, _ CitizenData) (*EligibilityResult, error) {
	return &EligibilityResult{
		Eligible:             true,
		SchemeID:             "BSKY2024",
		CoverageAmount:       500000,
		FamilyMembersCovered: 4,
		Validity:             "2024-12-31",
	}, nil
}

func (g *MockGateway) VaccinationCenters(_ context.Context, district, date string) ([]VaccinationCenter, error) {
	if date == "" {
		date = g.Clock().Format("2006-01-02")
	}
	_ = date
	return []VaccinationCenter{
		{
			Name:              "PHC Koraput",
			Address:           "Main Road, Koraput",
			District:          district,
			Pincode:           "764020",
			AvailableVaccines: []string{"COVISHIELD", "COVAXIN"},
			AvailableSlots:    50,
			Timing:            "9:00 AM - 5:00 PM",
		},
		{
			Name:              "CHC Jeypore",
			Address:           "Hospital Road, Jeypore",
			District:          district,
			Pincode:           "764001",
			AvailableVaccines: []string{"COVISHIELD"},
			AvailableSlots:    30,
			Timing:            "10:00 AM - 4:00 PM",
		},
	}, nil
}

func (g *MockGateway) CreateABHA(_ context.Context, citizen CitizenData) (*ABHARecord, error) {
	phone := citizen.Phone
	if len(phone) < 4 {
		phone = "1234567890"
	}
	userID := citizen.UserID
	if len(userID) < 4 {
		userID = "USER"
	}
	now := g.Clock()
	abhaID := fmt.Sprintf("%s-%s-%s", phone[len(phone)-4:], now.Format("20060102"), userID[len(userID)-4:])
	return &ABHARecord{
		ABHAID:     abhaID,
		ABHANumber: fmt.Sprintf("12-3456-7890-%s", abhaID[len(abhaID)-4:]),
		CreatedAt:  now.Format(time.RFC3339),
	}, nil
}
