package insurance

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type mockPolicyRepo struct {
	policies map[uuid.UUID]*Policy
}

func newMockPolicyRepo() *mockPolicyRepo {
	return &mockPolicyRepo{policies: make(map[uuid.UUID]*Policy)}
}

func (m *mockPolicyRepo) Create(_ context.Context, p *Policy) error {
	cp := *p
	m.policies[p.ID] = &cp
	return nil
}

func (m *mockPolicyRepo) GetByID(_ context.Context, id uuid.UUID) (*Policy, error) {
	p, ok := m.policies[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	cp := *p
	return &cp, nil
}

func (m *mockPolicyRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*Policy, error) {
	var items []*Policy
	for _, p := range m.policies {
		if p.UserID == userID {
			items = append(items, p)
		}
	}
	return items, nil
}

func (m *mockPolicyRepo) UpdateClaims(_ context.Context, id uuid.UUID, claims []Claim) error {
	p, ok := m.policies[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	p.Claims = claims
	return nil
}

func (m *mockPolicyRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	p, ok := m.policies[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	p.Status = status
	return nil
}

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestService(repo *mockPolicyRepo) *Service {
	return NewService(repo, func() time.Time { return testNow }, zerolog.Nop())
}

func TestProducts(t *testing.T) {
	products := Products()
	if len(products) != 4 {
		t.Fatalf("got %d products, want 4", len(products))
	}
	if p := ProductByID("basic_health"); p == nil || p.PremiumMonthly != 50 || p.CoverageAmount != 5000 {
		t.Errorf("basic_health = %+v", p)
	}
	if ProductByID("gold_plus") != nil {
		t.Error("unknown product should be nil")
	}
}

func TestEnroll(t *testing.T) {
	svc := newTestService(newMockPolicyRepo())
	user := uuid.New()

	p, err := svc.Enroll(context.Background(), user, &EnrollRequest{
		ProductID:            "family_protection",
		CoveragePeriodMonths: 12,
		Age:                  30,
		FamilySize:           4,
	})
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if !strings.HasPrefix(p.PolicyNumber, "ASS20250601") || len(p.PolicyNumber) != 17 {
		t.Errorf("policy number = %q", p.PolicyNumber)
	}
	if p.Status != StatusActive {
		t.Errorf("status = %q", p.Status)
	}
	if !p.EndDate.Equal(testNow.AddDate(0, 0, 360)) {
		t.Errorf("end date = %v, want start + 360 days", p.EndDate)
	}
	// 120 * 1.0 * (0.9 + 4*0.15) = 180/mo, ×12 ×0.9 = 1944.
	if p.PremiumAmount != 1944 {
		t.Errorf("premium = %v, want 1944", p.PremiumAmount)
	}
}

func TestEnroll_Validation(t *testing.T) {
	svc := newTestService(newMockPolicyRepo())
	cases := []EnrollRequest{
		{CoveragePeriodMonths: 12},
		{ProductID: "basic_health"},
		{ProductID: "gold_plus", CoveragePeriodMonths: 12},
	}
	for i, req := range cases {
		if _, err := svc.Enroll(context.Background(), uuid.New(), &req); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestCalculatePremium(t *testing.T) {
	product := ProductByID("basic_health")

	cases := []struct {
		name                      string
		age, family, months       int
		preExisting               bool
		wantMonthly, wantTotal    float64
		wantAge, wantFam, wantCon float64
	}{
		{
			name: "young single short term",
			age:  25, family: 1, months: 6,
			wantMonthly: 50, wantTotal: 300,
			wantAge: 1.0, wantFam: 1.0, wantCon: 1.0,
		},
		{
			name: "age over 45",
			age:  50, family: 1, months: 6,
			wantMonthly: 60, wantTotal: 360,
			wantAge: 1.2, wantFam: 1.0, wantCon: 1.0,
		},
		{
			name: "age over 35",
			age:  40, family: 1, months: 6,
			wantMonthly: 55, wantTotal: 330,
			wantAge: 1.1, wantFam: 1.0, wantCon: 1.0,
		},
		{
			name: "family of three",
			age:  25, family: 3, months: 6,
			wantMonthly: 67.5, wantTotal: 405,
			wantAge: 1.0, wantFam: 1.35, wantCon: 1.0,
		},
		{
			name: "pre-existing conditions",
			age:  25, family: 1, months: 6, preExisting: true,
			wantMonthly: 65, wantTotal: 390,
			wantAge: 1.0, wantFam: 1.0, wantCon: 1.3,
		},
		{
			name: "annual discount",
			age:  25, family: 1, months: 12,
			wantMonthly: 50, wantTotal: 540,
			wantAge: 1.0, wantFam: 1.0, wantCon: 1.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := CalculatePremium(product, tc.age, tc.family, tc.months, tc.preExisting)
			if q.MonthlyPremium != tc.wantMonthly {
				t.Errorf("monthly = %v, want %v", q.MonthlyPremium, tc.wantMonthly)
			}
			if q.TotalPremium != tc.wantTotal {
				t.Errorf("total = %v, want %v", q.TotalPremium, tc.wantTotal)
			}
			if q.AgeFactor != tc.wantAge || q.FamilyFactor != tc.wantFam || q.ConditionsFactor != tc.wantCon {
				t.Errorf("factors = %v/%v/%v", q.AgeFactor, q.FamilyFactor, q.ConditionsFactor)
			}
		})
	}
}

func TestCalculatePremium_Savings(t *testing.T) {
	q := CalculatePremium(ProductByID("basic_health"), 25, 1, 12, false)
	if q.Savings != 60 {
		t.Errorf("savings = %v, want 60", q.Savings)
	}
}

func TestFileClaim(t *testing.T) {
	svc := newTestService(newMockPolicyRepo())
	user := uuid.New()
	p, _ := svc.Enroll(context.Background(), user, &EnrollRequest{
		ProductID: "basic_health", CoveragePeriodMonths: 12,
	})

	claim, err := svc.FileClaim(context.Background(), user, &ClaimRequest{
		PolicyID:            p.ID,
		ClaimType:           "hospitalization",
		ClaimAmount:         3000,
		IncidentDescription: "Two-day admission for dengue",
	})
	if err != nil {
		t.Fatalf("FileClaim: %v", err)
	}
	if !strings.HasPrefix(claim.ClaimNumber, "CLM20250601") {
		t.Errorf("claim number = %q", claim.ClaimNumber)
	}
	if claim.Status != ClaimSubmitted || claim.EstimatedProcessingDays != 7 {
		t.Errorf("claim = %+v", claim)
	}

	claims, err := svc.ListClaims(context.Background(), user, p.ID)
	if err != nil {
		t.Fatalf("ListClaims: %v", err)
	}
	if len(claims) != 1 {
		t.Errorf("claims = %v", claims)
	}
}

func TestFileClaim_ExceedsRemainingCoverage(t *testing.T) {
	svc := newTestService(newMockPolicyRepo())
	user := uuid.New()
	p, _ := svc.Enroll(context.Background(), user, &EnrollRequest{
		ProductID: "basic_health", CoveragePeriodMonths: 12, // 5000 cover
	})

	if _, err := svc.FileClaim(context.Background(), user, &ClaimRequest{
		PolicyID: p.ID, ClaimType: "hospitalization", ClaimAmount: 6000,
		IncidentDescription: "x",
	}); err != ErrExceedsCoverage {
		t.Errorf("over-cover claim: err = %v, want ErrExceedsCoverage", err)
	}

	if _, err := svc.FileClaim(context.Background(), user, &ClaimRequest{
		PolicyID: p.ID, ClaimType: "hospitalization", ClaimAmount: 4000,
		IncidentDescription: "x",
	}); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	// Only 1000 left.
	if _, err := svc.FileClaim(context.Background(), user, &ClaimRequest{
		PolicyID: p.ID, ClaimType: "ambulance", ClaimAmount: 2000,
		IncidentDescription: "x",
	}); err != ErrExceedsCoverage {
		t.Errorf("second claim: err = %v, want ErrExceedsCoverage", err)
	}
}

func TestFileClaim_OtherUsersPolicy(t *testing.T) {
	svc := newTestService(newMockPolicyRepo())
	p, _ := svc.Enroll(context.Background(), uuid.New(), &EnrollRequest{
		ProductID: "basic_health", CoveragePeriodMonths: 12,
	})
	if _, err := svc.FileClaim(context.Background(), uuid.New(), &ClaimRequest{
		PolicyID: p.ID, ClaimType: "hospitalization", ClaimAmount: 100,
		IncidentDescription: "x",
	}); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRenew(t *testing.T) {
	repo := newMockPolicyRepo()
	svc := newTestService(repo)
	user := uuid.New()
	old, _ := svc.Enroll(context.Background(), user, &EnrollRequest{
		ProductID: "basic_health", CoveragePeriodMonths: 12,
	})

	renewed, err := svc.Renew(context.Background(), user, old.ID, 12)
	if err != nil {
		t.Fatalf("Renew: %v", err)
	}
	// 50 * 12 * 0.95 = 570.
	if renewed.PremiumAmount != 570 {
		t.Errorf("renewal premium = %v, want 570", renewed.PremiumAmount)
	}
	if !renewed.StartDate.Equal(old.EndDate) {
		t.Errorf("renewal starts %v, want old end %v", renewed.StartDate, old.EndDate)
	}
	stored, _ := repo.GetByID(context.Background(), old.ID)
	if stored.Status != StatusRenewed {
		t.Errorf("old policy status = %q, want renewed", stored.Status)
	}
}

func TestPolicyRemainingCoverage(t *testing.T) {
	p := Policy{CoverageAmount: 5000, Claims: []Claim{
		{ClaimAmount: 2000, Status: ClaimSubmitted},
		{ClaimAmount: 1000, Status: ClaimRejected},
	}}
	if got := p.RemainingCoverage(); got != 3000 {
		t.Errorf("remaining = %v, want 3000 (rejected claims excluded)", got)
	}
}
