package facility

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Facility types.
const (
	TypePHC        = "phc"
	TypeCHC        = "chc"
	TypeHospital   = "hospital"
	TypePrivate    = "private"
	TypeDispensary = "dispensary"
)

// Verification statuses for newly suggested facilities.
const (
	VerificationPending  = "pending_verification"
	VerificationVerified = "verified"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Facility is a healthcare facility listing.
type Facility struct {
	ID                 uuid.UUID              `db:"id" json:"id"`
	Name               string                 `db:"name" json:"name"`
	Type               string                 `db:"type" json:"type"`
	Address            string                 `db:"address" json:"address"`
	District           string                 `db:"district" json:"district"`
	Block              *string                `db:"block" json:"block,omitempty"`
	Coordinates        *Coordinates           `db:"coordinates" json:"coordinates,omitempty"`
	ContactInfo        map[string]string      `db:"contact_info" json:"contact_info,omitempty"`
	Services           []string               `db:"services" json:"services,omitempty"`
	BSKYEmpanelled     bool                   `db:"bsky_empanelled" json:"bsky_empanelled"`
	Rating             float64                `db:"rating" json:"rating"`
	OperatingHours     map[string]interface{} `db:"operating_hours" json:"operating_hours,omitempty"`
	VerificationStatus string                 `db:"verification_status" json:"verification_status"`
	CreatedAt          time.Time              `db:"created_at" json:"created_at"`
}

// Is24x7 reports whether the facility runs round the clock.
func (f *Facility) Is24x7() bool {
	for _, key := range []string{"24x7", "emergency_24x7"} {
		if v, ok := f.OperatingHours[key].(bool); ok && v {
			return true
		}
	}
	return false
}

// HasEmergencyServices reports whether the service list mentions emergency
// capability.
func (f *Facility) HasEmergencyServices() bool {
	if f.Type == TypeHospital {
		return true
	}
	text := strings.ToLower(strings.Join(f.Services, " "))
	for _, kw := range []string{"emergency", "24/7", "urgent", "trauma"} {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

var categories = map[string]string{
	TypePHC:        "Primary Care",
	TypeCHC:        "Secondary Care",
	TypeHospital:   "Tertiary Care",
	TypePrivate:    "Private Care",
	TypeDispensary: "Basic Care",
}

// CategoryFor maps a facility type to its care level.
func CategoryFor(facilityType string) string {
	if c, ok := categories[facilityType]; ok {
		return c
	}
	return "Healthcare Facility"
}

// TypeInfo describes one entry in the static facility-type catalog.
type TypeInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Services     []string `json:"services"`
	TypicalStaff []string `json:"typical_staff"`
}

var typeCatalog = []TypeInfo{
	{
		ID:           TypePHC,
		Name:         "Primary Health Center",
		Description:  "Basic healthcare services for rural areas",
		Services:     []string{"General Medicine", "Maternal Care", "Vaccination", "Basic Diagnostics"},
		TypicalStaff: []string{"Medical Officer", "ANM", "Pharmacist"},
	},
	{
		ID:           TypeCHC,
		Name:         "Community Health Center",
		Description:  "Secondary healthcare with specialist services",
		Services:     []string{"Specialist Consultation", "Surgery", "Laboratory", "X-Ray"},
		TypicalStaff: []string{"Specialists", "Surgeons", "Lab Technicians"},
	},
	{
		ID:           TypeHospital,
		Name:         "Government Hospital",
		Description:  "Comprehensive healthcare services",
		Services:     []string{"Emergency Care", "Surgery", "ICU", "Specialist Care"},
		TypicalStaff: []string{"Doctors", "Nurses", "Specialists", "Support Staff"},
	},
	{
		ID:           TypePrivate,
		Name:         "Private Clinic/Hospital",
		Description:  "Private healthcare facilities",
		Services:     []string{"Varies by facility"},
		TypicalStaff: []string{"Private Practitioners"},
	},
	{
		ID:           TypeDispensary,
		Name:         "Dispensary",
		Description:  "Basic medical care and medicines",
		Services:     []string{"Basic Treatment", "Medicines", "First Aid"},
		TypicalStaff: []string{"Pharmacist", "Compounder"},
	},
}

// Types returns the static facility-type catalog.
func Types() []TypeInfo {
	out := make([]TypeInfo, len(typeCatalog))
	copy(out, typeCatalog)
	return out
}

func validType(t string) bool {
	_, ok := categories[t]
	return ok
}

var detailedServices = map[string][]string{
	TypePHC: {
		"General Medicine", "Maternal and Child Health", "Immunization",
		"Family Planning", "Basic Laboratory Services", "Pharmacy", "Health Education",
	},
	TypeCHC: {
		"Specialist Consultation", "Minor Surgery", "Laboratory Services",
		"X-Ray", "Emergency Care", "Inpatient Services", "Blood Storage",
	},
	TypeHospital: {
		"Emergency Services", "Inpatient Care", "Surgery", "ICU",
		"Specialist Consultation", "Diagnostic Services", "Pharmacy", "Blood Bank",
	},
}

// DetailedServicesFor lists the services typically offered by the facility
// type.
func DetailedServicesFor(facilityType string) []string {
	if s, ok := detailedServices[facilityType]; ok {
		return s
	}
	return []string{"General Healthcare Services"}
}

var emergencyServices = map[string][]string{
	TypeHospital: {"Emergency Room", "Trauma Care", "Ambulance Service", "ICU", "Blood Bank"},
	TypeCHC:      {"Emergency Care", "Basic Trauma", "Stabilization", "Referral Services"},
	TypePHC:      {"First Aid", "Basic Emergency Care", "Referral to Higher Centers"},
}

// EmergencyServicesFor lists the emergency capabilities of the facility
// type.
func EmergencyServicesFor(facilityType string) []string {
	if s, ok := emergencyServices[facilityType]; ok {
		return s
	}
	return []string{"Basic Emergency Care"}
}
