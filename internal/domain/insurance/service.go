package insurance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound        = errors.New("policy not found")
	ErrInvalidProduct  = errors.New("invalid product id")
	ErrExceedsCoverage = errors.New("claim amount exceeds remaining coverage")
)

type Clock func() time.Time

type Service struct {
	policies PolicyRepository
	clock    Clock
	log      zerolog.Logger
}

func NewService(policies PolicyRepository, clock Clock, log zerolog.Logger) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{policies: policies, clock: clock, log: log}
}

// policyNumber builds an "ASS"-prefixed number from the date and the tail of
// the policy id. Claim numbers use the same scheme with "CLM".
func numberFor(prefix string, id uuid.UUID, now time.Time) string {
	tail := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return prefix + now.Format("20060102") + tail[len(tail)-6:]
}

// EnrollRequest carries an enrollment application.
type EnrollRequest struct {
	ProductID            string `json:"product_id"`
	CoveragePeriodMonths int    `json:"coverage_period_months"`
	Age                  int    `json:"age"`
	FamilySize           int    `json:"family_size"`
	PreExisting          bool   `json:"pre_existing_conditions"`
}

// Enroll creates an active policy for the caller. The coverage term is
// counted in 30-day months.
func (s *Service) Enroll(ctx context.Context, userID uuid.UUID, req *EnrollRequest) (*Policy, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("product_id is required")
	}
	if req.CoveragePeriodMonths <= 0 {
		return nil, fmt.Errorf("coverage_period_months must be positive")
	}
	product := ProductByID(req.ProductID)
	if product == nil {
		return nil, ErrInvalidProduct
	}

	age := req.Age
	if age == 0 {
		age = 25
	}
	familySize := req.FamilySize
	if familySize == 0 {
		familySize = 1
	}
	quote := CalculatePremium(product, age, familySize, req.CoveragePeriodMonths, req.PreExisting)

	now := s.clock()
	id := uuid.New()
	start := now
	p := &Policy{
		ID:             id,
		UserID:         userID,
		PolicyType:     product.ID,
		PolicyNumber:   numberFor("ASS", id, now),
		PremiumAmount:  quote.TotalPremium,
		CoverageAmount: product.CoverageAmount,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, req.CoveragePeriodMonths*30),
		Status:         StatusActive,
		Claims:         []Claim{},
	}
	if err := s.policies.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create policy: %w", err)
	}
	return p, nil
}

// ListPolicies returns the caller's policies, newest first.
func (s *Service) ListPolicies(ctx context.Context, userID uuid.UUID) ([]*Policy, error) {
	return s.policies.ListByUser(ctx, userID)
}

// getOwned loads a policy and hides other users' policies behind NotFound.
func (s *Service) getOwned(ctx context.Context, userID, policyID uuid.UUID) (*Policy, error) {
	p, err := s.policies.GetByID(ctx, policyID)
	if err != nil || p.UserID != userID {
		return nil, ErrNotFound
	}
	return p, nil
}

// ClaimRequest files a claim against an active policy.
type ClaimRequest struct {
	PolicyID            uuid.UUID `json:"policy_id"`
	ClaimType           string    `json:"claim_type"`
	ClaimAmount         float64   `json:"claim_amount"`
	IncidentDescription string    `json:"incident_description"`
	IncidentDate        string    `json:"incident_date"`
	Documents           []string  `json:"documents"`
}

// FileClaim appends a submitted claim to the policy. The amount must fit in
// the coverage remaining after earlier non-rejected claims.
func (s *Service) FileClaim(ctx context.Context, userID uuid.UUID, req *ClaimRequest) (*Claim, error) {
	if req.ClaimType == "" || req.IncidentDescription == "" {
		return nil, fmt.Errorf("claim_type and incident_description are required")
	}
	if req.ClaimAmount <= 0 {
		return nil, fmt.Errorf("claim_amount must be positive")
	}

	p, err := s.getOwned(ctx, userID, req.PolicyID)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusActive {
		return nil, ErrNotFound
	}
	if req.ClaimAmount > p.RemainingCoverage() {
		return nil, ErrExceedsCoverage
	}

	now := s.clock()
	incidentDate := req.IncidentDate
	if incidentDate == "" {
		incidentDate = now.Format("2006-01-02")
	}
	claimID := uuid.New()
	claim := Claim{
		ClaimID:                 claimID,
		ClaimNumber:             numberFor("CLM", claimID, now),
		ClaimType:               req.ClaimType,
		ClaimAmount:             req.ClaimAmount,
		IncidentDescription:     req.IncidentDescription,
		IncidentDate:            incidentDate,
		Documents:               req.Documents,
		Status:                  ClaimSubmitted,
		SubmittedDate:           now,
		EstimatedProcessingDays: 7,
	}

	if err := s.policies.UpdateClaims(ctx, p.ID, append(p.Claims, claim)); err != nil {
		return nil, fmt.Errorf("file claim: %w", err)
	}
	return &claim, nil
}

// ListClaims returns all claims filed against one of the caller's policies.
func (s *Service) ListClaims(ctx context.Context, userID, policyID uuid.UUID) ([]Claim, error) {
	p, err := s.getOwned(ctx, userID, policyID)
	if err != nil {
		return nil, err
	}
	return p.Claims, nil
}

// Quote prices a product without enrolling.
func (s *Service) Quote(ctx context.Context, req *EnrollRequest) (*PremiumQuote, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("product_id is required")
	}
	product := ProductByID(req.ProductID)
	if product == nil {
		return nil, ErrInvalidProduct
	}
	age := req.Age
	if age == 0 {
		age = 25
	}
	familySize := req.FamilySize
	if familySize == 0 {
		familySize = 1
	}
	months := req.CoveragePeriodMonths
	if months == 0 {
		months = 12
	}
	quote := CalculatePremium(product, age, familySize, months, req.PreExisting)
	return &quote, nil
}

// Renew opens a follow-on policy starting where the old one ends, priced at
// a 5% loyalty discount off the base premium, and marks the old policy
// renewed.
func (s *Service) Renew(ctx context.Context, userID, policyID uuid.UUID, months int) (*Policy, error) {
	if months <= 0 {
		months = 12
	}
	old, err := s.getOwned(ctx, userID, policyID)
	if err != nil {
		return nil, err
	}
	product := ProductByID(old.PolicyType)
	if product == nil {
		return nil, ErrInvalidProduct
	}

	now := s.clock()
	id := uuid.New()
	renewed := &Policy{
		ID:             id,
		UserID:         userID,
		PolicyType:     old.PolicyType,
		PolicyNumber:   numberFor("ASS", id, now),
		PremiumAmount:  round2(product.PremiumMonthly * float64(months) * 0.95),
		CoverageAmount: old.CoverageAmount,
		StartDate:      old.EndDate,
		EndDate:        old.EndDate.AddDate(0, 0, months*30),
		Status:         StatusActive,
		Claims:         []Claim{},
	}
	if err := s.policies.Create(ctx, renewed); err != nil {
		return nil, fmt.Errorf("create renewal: %w", err)
	}
	if err := s.policies.UpdateStatus(ctx, old.ID, StatusRenewed); err != nil {
		return nil, fmt.Errorf("retire old policy: %w", err)
	}
	return renewed, nil
}
