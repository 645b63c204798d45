package facility

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gramcare/gramcare/internal/domain/identity"
)

var (
	ErrNotFound = errors.New("facility not found")
	ErrASHAOnly = errors.New("only ASHA workers can add facilities")
	ErrInvalid  = errors.New("invalid facility data")
)

type Clock func() time.Time

type Service struct {
	repo  Repository
	users identity.UserRepository
	clock Clock
	log   zerolog.Logger
}

func NewService(repo Repository, users identity.UserRepository, clock Clock, log zerolog.Logger) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, users: users, clock: clock, log: log}
}

// View is a facility with its derived attributes filled in.
type View struct {
	*Facility
	Is24x7        bool     `json:"is_24x7"`
	HasEmergency  bool     `json:"has_emergency"`
	Category      string   `json:"facility_category"`
	DistanceKm    *float64 `json:"distance_km,omitempty"`
	EstimatedTime string   `json:"estimated_time,omitempty"`
}

func newView(f *Facility) *View {
	return &View{
		Facility:     f,
		Is24x7:       f.Is24x7(),
		HasEmergency: f.HasEmergencyServices(),
		Category:     CategoryFor(f.Type),
	}
}

// SearchParams narrows a facility search from the caller's perspective.
type SearchParams struct {
	Type     string
	District string
	Origin   *Coordinates
	BSKYOnly bool
}

// Search filters facilities by type, district and empanelment. The district
// defaults to the caller's own when no explicit location is given. With an
// origin, results carry distances and come back nearest first.
func (s *Service) Search(ctx context.Context, userID uuid.UUID, params SearchParams) ([]*View, error) {
	if params.District == "" && params.Origin == nil {
		if u, err := s.users.GetByID(ctx, userID); err == nil && u.District != nil {
			params.District = *u.District
		}
	}
	facilities, err := s.repo.Search(ctx, SearchFilter{
		Type:     params.Type,
		District: params.District,
		BSKYOnly: params.BSKYOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("facility search: %w", err)
	}
	views := make([]*View, 0, len(facilities))
	for _, f := range facilities {
		v := newView(f)
		if params.Origin != nil && f.Coordinates != nil {
			d := Distance(*params.Origin, *f.Coordinates)
			v.DistanceKm = &d
			v.EstimatedTime = EstimatedTime(d)
		}
		views = append(views, v)
	}
	if params.Origin != nil {
		sort.SliceStable(views, func(i, j int) bool {
			switch {
			case views[i].DistanceKm == nil:
				return false
			case views[j].DistanceKm == nil:
				return true
			}
			return *views[i].DistanceKm < *views[j].DistanceKm
		})
	}
	return views, nil
}

// UserLocation echoes back where the caller was located from.
type UserLocation struct {
	District string  `json:"district"`
	Block    *string `json:"block,omitempty"`
	Village  *string `json:"village,omitempty"`
}

// Nearby lists facilities in the caller's district, empanelled first, then
// by rating.
func (s *Service) Nearby(ctx context.Context, userID uuid.UUID) ([]*View, *UserLocation, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	loc := &UserLocation{Block: u.Block, Village: u.Village}
	if u.District != nil {
		loc.District = *u.District
	}
	facilities, err := s.repo.ListByDistrict(ctx, loc.District, 20)
	if err != nil {
		return nil, nil, fmt.Errorf("nearby facilities: %w", err)
	}
	views := make([]*View, 0, len(facilities))
	for _, f := range facilities {
		views = append(views, newView(f))
	}
	return views, loc, nil
}

// StaffInfo summarizes facility staffing. Static until the registry carries
// real rosters.
type StaffInfo struct {
	TotalStaff   int    `json:"total_staff"`
	Doctors      int    `json:"doctors"`
	Nurses       int    `json:"nurses"`
	SupportStaff int    `json:"support_staff"`
	Availability string `json:"availability"`
}

type Review struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

type Availability struct {
	Status             string `json:"status"`
	CurrentWaitTime    string `json:"current_wait_time"`
	BedsAvailable      int    `json:"beds_available"`
	EmergencyAvailable bool   `json:"emergency_available"`
}

type InsuranceInfo struct {
	BSKYAccepted     bool     `json:"bsky_accepted"`
	PMJAYAccepted    bool     `json:"pmjay_accepted"`
	PrivateInsurance []string `json:"private_insurance"`
	CashlessFacility bool     `json:"cashless_facility"`
}

// Detail is the full facility page payload.
type Detail struct {
	*View
	DetailedServices   []string      `json:"detailed_services"`
	StaffInfo          StaffInfo     `json:"staff_info"`
	PatientReviews     []Review      `json:"patient_reviews"`
	AvailabilityStatus Availability  `json:"availability_status"`
	InsuranceAccepted  InsuranceInfo `json:"insurance_accepted"`
}

// Detail loads a facility with its derived and supplementary information.
func (s *Service) Detail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return &Detail{
		View:             newView(f),
		DetailedServices: DetailedServicesFor(f.Type),
		StaffInfo: StaffInfo{
			TotalStaff:   15,
			Doctors:      3,
			Nurses:       8,
			SupportStaff: 4,
			Availability: "24/7 emergency staff available",
		},
		PatientReviews: []Review{
			{Rating: 4, Comment: "Good service and caring staff", Date: "2024-01-15"},
			{Rating: 5, Comment: "Quick treatment and clean facility", Date: "2024-01-10"},
		},
		AvailabilityStatus: Availability{
			Status:             "open",
			CurrentWaitTime:    "15 minutes",
			BedsAvailable:      5,
			EmergencyAvailable: true,
		},
		InsuranceAccepted: InsuranceInfo{
			BSKYAccepted:     f.BSKYEmpanelled,
			PMJAYAccepted:    true,
			PrivateInsurance: []string{"Star Health", "HDFC Ergo"},
			CashlessFacility: true,
		},
	}, nil
}

// AddInput is a facility suggestion from an ASHA worker.
type AddInput struct {
	Name           string                 `json:"name"`
	Type           string                 `json:"type"`
	Address        string                 `json:"address"`
	District       string                 `json:"district"`
	Block          *string                `json:"block,omitempty"`
	Coordinates    *Coordinates           `json:"coordinates,omitempty"`
	ContactInfo    map[string]string      `json:"contact_info,omitempty"`
	Services       []string               `json:"services,omitempty"`
	BSKYEmpanelled bool                   `json:"bsky_empanelled"`
	OperatingHours map[string]interface{} `json:"operating_hours,omitempty"`
}

// Add records a new facility suggested by an ASHA worker, pending
// verification.
func (s *Service) Add(ctx context.Context, userID uuid.UUID, input AddInput) (*Facility, error) {
	if input.Name == "" || input.Type == "" || input.Address == "" || input.District == "" {
		return nil, fmt.Errorf("%w: name, type, address and district are required", ErrInvalid)
	}
	if !validType(input.Type) {
		return nil, fmt.Errorf("%w: unknown facility type %q", ErrInvalid, input.Type)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u.UserType != identity.UserTypeASHA {
		return nil, ErrASHAOnly
	}
	f := &Facility{
		Name:               input.Name,
		Type:               input.Type,
		Address:            input.Address,
		District:           input.District,
		Block:              input.Block,
		Coordinates:        input.Coordinates,
		ContactInfo:        input.ContactInfo,
		Services:           input.Services,
		BSKYEmpanelled:     input.BSKYEmpanelled,
		OperatingHours:     input.OperatingHours,
		VerificationStatus: VerificationPending,
		CreatedAt:          s.clock(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("add facility: %w", err)
	}
	s.log.Info().Str("facility_id", f.ID.String()).Str("added_by", userID.String()).
		Msg("facility suggested for verification")
	return f, nil
}

// Directions describes how to reach a facility from a point.
type Directions struct {
	Facility struct {
		Name        string       `json:"name"`
		Address     string       `json:"address"`
		Coordinates *Coordinates `json:"coordinates,omitempty"`
	} `json:"facility"`
	DistanceKm       *float64          `json:"distance_km,omitempty"`
	EstimatedTime    string            `json:"estimated_time"`
	DirectionsURL    string            `json:"directions_url,omitempty"`
	TransportOptions []TransportOption `json:"transport_options"`
}

// Directions computes distance, travel estimates and a maps link from the
// caller's position to the facility. Without coordinates on either end the
// estimates degrade to "Unknown".
func (s *Service) Directions(ctx context.Context, facilityID uuid.UUID, origin *Coordinates) (*Directions, error) {
	f, err := s.repo.GetByID(ctx, facilityID)
	if err != nil {
		return nil, ErrNotFound
	}
	d := &Directions{EstimatedTime: "Unknown", TransportOptions: []TransportOption{}}
	d.Facility.Name = f.Name
	d.Facility.Address = f.Address
	d.Facility.Coordinates = f.Coordinates
	if origin != nil && f.Coordinates != nil {
		km := Distance(*origin, *f.Coordinates)
		d.DistanceKm = &km
		d.EstimatedTime = EstimatedTime(km)
		d.DirectionsURL = DirectionsURL(*origin, *f.Coordinates)
		d.TransportOptions = TransportOptions(km)
	}
	return d, nil
}

// EmergencyContact is a statewide emergency number.
type EmergencyContact struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// EmergencyFacility is a facility annotated for emergency use.
type EmergencyFacility struct {
	*View
	EmergencyServices []string `json:"emergency_services"`
	ContactPriority   string   `json:"contact_priority"`
}

const defaultEmergencyRadiusKm = 25

// EmergencyNearby lists emergency-capable facilities, nearest first when the
// caller's position is known, restricted to maxDistanceKm.
func (s *Service) EmergencyNearby(ctx context.Context, origin *Coordinates, maxDistanceKm float64) ([]*EmergencyFacility, []EmergencyContact, error) {
	if maxDistanceKm <= 0 {
		maxDistanceKm = defaultEmergencyRadiusKm
	}
	facilities, err := s.repo.ListEmergencyCapable(ctx, 10)
	if err != nil {
		return nil, nil, fmt.Errorf("emergency facilities: %w", err)
	}
	var out []*EmergencyFacility
	for _, f := range facilities {
		v := newView(f)
		if origin != nil {
			if f.Coordinates == nil {
				continue
			}
			km := Distance(*origin, *f.Coordinates)
			if km > maxDistanceKm {
				continue
			}
			v.DistanceKm = &km
			v.EstimatedTime = EstimatedTime(km)
		}
		priority := "medium"
		if f.BSKYEmpanelled {
			priority = "high"
		}
		out = append(out, &EmergencyFacility{
			View:              v,
			EmergencyServices: EmergencyServicesFor(f.Type),
			ContactPriority:   priority,
		})
	}
	if origin != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return *out[i].DistanceKm < *out[j].DistanceKm
		})
	}
	contacts := []EmergencyContact{
		{Name: "Ambulance", Number: "108"},
		{Name: "Police", Number: "100"},
		{Name: "Fire", Number: "101"},
	}
	return out, contacts, nil
}
