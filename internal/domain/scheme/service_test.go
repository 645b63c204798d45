package scheme

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gramcare/gramcare/internal/domain/identity"
)

type mockAppRepo struct {
	apps map[string]*Application // keyed by userID|scheme
}

func newMockAppRepo() *mockAppRepo {
	return &mockAppRepo{apps: make(map[string]*Application)}
}

func appKey(userID uuid.UUID, scheme string) string {
	return userID.String() + "|" + scheme
}

func (m *mockAppRepo) Create(_ context.Context, a *Application) error {
	a.ID = uuid.New()
	cp := *a
	m.apps[appKey(a.UserID, a.SchemeName)] = &cp
	return nil
}

func (m *mockAppRepo) Update(_ context.Context, a *Application) error {
	cp := *a
	m.apps[appKey(a.UserID, a.SchemeName)] = &cp
	return nil
}

func (m *mockAppRepo) GetByUserAndScheme(_ context.Context, userID uuid.UUID, schemeName string) (*Application, error) {
	a, ok := m.apps[appKey(userID, schemeName)]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	cp := *a
	return &cp, nil
}

func (m *mockAppRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*Application, error) {
	var out []*Application
	for _, a := range m.apps {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func (m *mockUserRepo) Create(_ context.Context, u *identity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*identity.User, error) {
	return nil, fmt.Errorf("not found")
}

func (m *mockUserRepo) Update(_ context.Context, u *identity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) List(_ context.Context, limit, offset int) ([]*identity.User, int, error) {
	return nil, 0, nil
}

type mockCitizenRepo struct {
	profiles map[uuid.UUID]*identity.CitizenProfile
}

func (m *mockCitizenRepo) Create(_ context.Context, p *identity.CitizenProfile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *mockCitizenRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*identity.CitizenProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockCitizenRepo) Update(_ context.Context, p *identity.CitizenProfile) error {
	m.profiles[p.UserID] = p
	return nil
}

type mockHospitalDir struct {
	byDistrict map[string][]Hospital
}

func (m *mockHospitalDir) EmpanelledHospitals(_ context.Context, district string) ([]Hospital, error) {
	return m.byDistrict[district], nil
}

type testEnv struct {
	svc    *Service
	apps   *mockAppRepo
	users  *mockUserRepo
	userID uuid.UUID
}

func newTestEnv() *testEnv {
	userID := uuid.New()
	district := "Koraput"
	phone := "9876543210"
	users := &mockUserRepo{users: map[uuid.UUID]*identity.User{
		userID: {ID: userID, FullName: "Mina Patra", District: &district, Phone: &phone},
	}}
	citizens := &mockCitizenRepo{profiles: map[uuid.UUID]*identity.CitizenProfile{
		userID: {UserID: userID},
	}}
	hospitals := &mockHospitalDir{byDistrict: map[string][]Hospital{
		"Koraput": {{Name: "District HQ Hospital", Address: "Koraput"}},
	}}
	apps := newMockAppRepo()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	svc := NewService(apps, NewMockGateway(clock), users, citizens, hospitals, clock, zerolog.Nop())
	return &testEnv{svc: svc, apps: apps, users: users, userID: userID}
}

func TestCatalog(t *testing.T) {
	if len(Catalog()) != 3 {
		t.Fatalf("catalog size = %d, want 3", len(Catalog()))
	}
	bsky, ok := InfoFor(SchemeBSKY)
	if !ok || bsky.CoverageAmount != 500000 {
		t.Errorf("BSKY = %+v", bsky)
	}
	if _, ok := InfoFor("XYZ"); ok {
		t.Error("unknown scheme should not resolve")
	}
}

func TestCheckEligibility_BSKY(t *testing.T) {
	env := newTestEnv()
	check, err := env.svc.CheckEligibility(context.Background(), env.userID, "")
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if !check.Eligible || check.SchemeName != SchemeBSKY {
		t.Errorf("check = %+v", check)
	}
	if check.Details.SchemeID != "BSKY2024" || check.Details.CoverageAmount != 500000 {
		t.Errorf("details = %+v", check.Details)
	}
	if len(check.Hospitals) != 1 {
		t.Errorf("hospitals = %v", check.Hospitals)
	}

	// The result lands on the application record.
	app, err := env.apps.GetByUserAndScheme(context.Background(), env.userID, SchemeBSKY)
	if err != nil {
		t.Fatalf("application not recorded: %v", err)
	}
	if app.EligibilityStatus != EligibilityEligible || app.SchemeID != "BSKY2024" {
		t.Errorf("application = %+v", app)
	}
}

func TestCheckEligibility_UnsupportedScheme(t *testing.T) {
	env := newTestEnv()
	if _, err := env.svc.CheckEligibility(context.Background(), env.userID, SchemePMJAY); err == nil {
		t.Error("expected error for scheme without a gateway")
	}
	if _, err := env.svc.CheckEligibility(context.Background(), env.userID, "XYZ"); err == nil {
		t.Error("expected error for unknown scheme")
	}
}

func TestCheckEligibility_NoProfile(t *testing.T) {
	env := newTestEnv()
	if _, err := env.svc.CheckEligibility(context.Background(), uuid.New(), SchemeBSKY); err != ErrNoProfile {
		t.Errorf("err = %v, want ErrNoProfile", err)
	}
}

func TestEmpanelledHospitals_DefaultsToUserDistrict(t *testing.T) {
	env := newTestEnv()
	hospitals, district, err := env.svc.EmpanelledHospitals(context.Background(), env.userID, "")
	if err != nil {
		t.Fatalf("EmpanelledHospitals: %v", err)
	}
	if district != "Koraput" || len(hospitals) != 1 {
		t.Errorf("district = %q, hospitals = %v", district, hospitals)
	}
}

func TestEmpanelledHospitals_NoDistrict(t *testing.T) {
	env := newTestEnv()
	if _, _, err := env.svc.EmpanelledHospitals(context.Background(), uuid.New(), ""); err != ErrNoDistrict {
		t.Errorf("err = %v, want ErrNoDistrict", err)
	}
}

func TestVaccinationCenters(t *testing.T) {
	env := newTestEnv()
	centers, district, err := env.svc.VaccinationCenters(context.Background(), env.userID, "", "")
	if err != nil {
		t.Fatalf("VaccinationCenters: %v", err)
	}
	if district != "Koraput" || len(centers) != 2 {
		t.Errorf("district = %q, centers = %d", district, len(centers))
	}
}

func TestCreateABHA(t *testing.T) {
	env := newTestEnv()
	record, created, err := env.svc.CreateABHA(context.Background(), env.userID)
	if err != nil {
		t.Fatalf("CreateABHA: %v", err)
	}
	if !created {
		t.Error("expected fresh abha creation")
	}
	if !strings.HasPrefix(record.ABHAID, "3210-20250601-") {
		t.Errorf("abha id = %q", record.ABHAID)
	}

	u, _ := env.users.GetByID(context.Background(), env.userID)
	if u.AbhaID == nil || *u.AbhaID != record.ABHANumber {
		t.Error("abha number not stored on user")
	}

	// Second call is idempotent.
	again, created, err := env.svc.CreateABHA(context.Background(), env.userID)
	if err != nil {
		t.Fatalf("second CreateABHA: %v", err)
	}
	if created || again.ABHANumber != record.ABHANumber {
		t.Errorf("second call: created=%v number=%q", created, again.ABHANumber)
	}
}

func TestApply_UpsertsApplication(t *testing.T) {
	env := newTestEnv()
	docs := map[string]interface{}{"ration_card": "RC123"}

	app, err := env.svc.Apply(context.Background(), env.userID, SchemeBSKY, docs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if app.ApplicationStatus != StatusSubmitted {
		t.Errorf("status = %q", app.ApplicationStatus)
	}

	// Re-applying updates the same row.
	again, err := env.svc.Apply(context.Background(), env.userID, SchemeBSKY, docs)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if again.ID != app.ID {
		t.Error("re-application created a second record")
	}

	apps, _ := env.svc.ListApplications(context.Background(), env.userID)
	if len(apps) != 1 {
		t.Errorf("applications = %d, want 1", len(apps))
	}
}

func TestApply_UnknownScheme(t *testing.T) {
	env := newTestEnv()
	if _, err := env.svc.Apply(context.Background(), env.userID, "XYZ", nil); err == nil {
		t.Error("expected error for unknown scheme")
	}
}
