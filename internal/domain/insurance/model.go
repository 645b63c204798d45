package insurance

import (
	"time"

	"github.com/google/uuid"
)

// Policy statuses.
const (
	StatusActive  = "active"
	StatusRenewed = "renewed"
	StatusExpired = "expired"
)

// Claim statuses.
const (
	ClaimSubmitted   = "submitted"
	ClaimUnderReview = "under_review"
	ClaimApproved    = "approved"
	ClaimRejected    = "rejected"
)

// Eligibility bounds enrollment in a product.
type Eligibility struct {
	MinAge     int `json:"min_age"`
	MaxAge     int `json:"max_age"`
	FamilySize int `json:"family_size"`
}

// Product is one micro-insurance offering. The catalog is fixed in code.
type Product struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	PremiumMonthly float64     `json:"premium_monthly"`
	CoverageAmount float64     `json:"coverage_amount"`
	Features       []string    `json:"features"`
	Eligibility    Eligibility `json:"eligibility"`
	Popular        bool        `json:"popular"`
}

// Claim is stored as part of the policy row.
type Claim struct {
	ClaimID                 uuid.UUID `json:"claim_id"`
	ClaimNumber             string    `json:"claim_number"`
	ClaimType               string    `json:"claim_type"`
	ClaimAmount             float64   `json:"claim_amount"`
	IncidentDescription     string    `json:"incident_description"`
	IncidentDate            string    `json:"incident_date"`
	Documents               []string  `json:"documents,omitempty"`
	Status                  string    `json:"status"`
	SubmittedDate           time.Time `json:"submitted_date"`
	EstimatedProcessingDays int       `json:"estimated_processing_days"`
}

// Policy is an enrolled insurance policy.
type Policy struct {
	ID             uuid.UUID `db:"id" json:"id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	PolicyType     string    `db:"policy_type" json:"policy_type"`
	PolicyNumber   string    `db:"policy_number" json:"policy_number"`
	PremiumAmount  float64   `db:"premium_amount" json:"premium_amount"`
	CoverageAmount float64   `db:"coverage_amount" json:"coverage_amount"`
	StartDate      time.Time `db:"start_date" json:"start_date"`
	EndDate        time.Time `db:"end_date" json:"end_date"`
	Status         string    `db:"status" json:"status"`
	Claims         []Claim   `db:"claims" json:"claims"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// DaysRemaining counts whole days until the policy lapses, floored at zero.
func (p *Policy) DaysRemaining(now time.Time) int {
	days := int(p.EndDate.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// RemainingCoverage is the cover left after all non-rejected claims.
func (p *Policy) RemainingCoverage() float64 {
	remaining := p.CoverageAmount
	for _, c := range p.Claims {
		if c.Status != ClaimRejected {
			remaining -= c.ClaimAmount
		}
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

var products = []Product{
	{
		ID:             "basic_health",
		Name:           "Basic Health Cover",
		Description:    "Essential health coverage for individuals and families",
		PremiumMonthly: 50,
		CoverageAmount: 5000,
		Features: []string{
			"Hospitalization coverage",
			"Day care procedures",
			"Ambulance charges",
			"Pre-hospitalization expenses",
		},
		Eligibility: Eligibility{MinAge: 18, MaxAge: 65, FamilySize: 1},
		Popular:     true,
	},
	{
		ID:             "family_protection",
		Name:           "Family Protection Plan",
		Description:    "Comprehensive coverage for entire family",
		PremiumMonthly: 120,
		CoverageAmount: 15000,
		Features: []string{
			"Family coverage (up to 4 members)",
			"Maternity benefits",
			"Child care coverage",
			"Pre-existing conditions after waiting period",
		},
		Eligibility: Eligibility{MinAge: 18, MaxAge: 65, FamilySize: 4},
	},
	{
		ID:             "critical_care",
		Name:           "Critical Care Insurance",
		Description:    "Coverage for critical illnesses and major surgeries",
		PremiumMonthly: 200,
		CoverageAmount: 25000,
		Features: []string{
			"Critical illness cover",
			"Cancer treatment",
			"Heart surgery coverage",
			"Organ transplant coverage",
		},
		Eligibility: Eligibility{MinAge: 21, MaxAge: 60, FamilySize: 1},
	},
	{
		ID:             "women_child",
		Name:           "Women & Child Care",
		Description:    "Specialized coverage for women and children",
		PremiumMonthly: 80,
		CoverageAmount: 10000,
		Features: []string{
			"Maternity coverage",
			"Child vaccination",
			"Women-specific health issues",
			"Newborn coverage",
		},
		Eligibility: Eligibility{MinAge: 18, MaxAge: 45, FamilySize: 3},
		Popular:     true,
	},
}

// Products returns the full catalog.
func Products() []Product {
	return products
}

// ProductByID finds a catalog entry, nil when unknown.
func ProductByID(id string) *Product {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}
