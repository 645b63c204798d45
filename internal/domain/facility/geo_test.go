package facility

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	// Koraput to Jeypore is about 15 km as the crow flies.
	koraput := Coordinates{Lat: 18.8135, Lng: 82.7123}
	jeypore := Coordinates{Lat: 18.8563, Lng: 82.5716}

	d := Distance(koraput, jeypore)
	if math.Abs(d-15.5) > 2 {
		t.Errorf("distance = %.2f km", d)
	}
	if Distance(koraput, koraput) != 0 {
		t.Error("zero distance expected for identical points")
	}
}

func TestDirectionsURL(t *testing.T) {
	url := DirectionsURL(Coordinates{Lat: 18.81, Lng: 82.71}, Coordinates{Lat: 18.86, Lng: 82.57})
	want := "https://www.google.com/maps/dir/18.81,82.71/18.86,82.57"
	if url != want {
		t.Errorf("url = %q, want %q", url, want)
	}
}

func TestTransportOptions(t *testing.T) {
	opts := TransportOptions(10)
	if len(opts) != 3 {
		t.Fatalf("options = %v", opts)
	}
	if opts[0].Mode != "walking" || opts[0].Time != "120 minutes" {
		t.Errorf("walking = %+v", opts[0])
	}
	if opts[1].Mode != "auto" || opts[1].Time != "30 minutes" {
		t.Errorf("auto = %+v", opts[1])
	}
}

func TestFacilityDerivations(t *testing.T) {
	f := &Facility{
		Type:           TypeCHC,
		Services:       []string{"Minor Surgery", "Emergency Care"},
		OperatingHours: map[string]interface{}{"24x7": true},
	}
	if !f.Is24x7() {
		t.Error("24x7 flag not detected")
	}
	if !f.HasEmergencyServices() {
		t.Error("emergency services not detected")
	}

	plain := &Facility{Type: TypeDispensary, Services: []string{"Medicines"}}
	if plain.Is24x7() || plain.HasEmergencyServices() {
		t.Error("dispensary should have neither flag")
	}

	hospital := &Facility{Type: TypeHospital}
	if !hospital.HasEmergencyServices() {
		t.Error("hospitals always count as emergency-capable")
	}
}

func TestCategoryFor(t *testing.T) {
	if got := CategoryFor(TypePHC); got != "Primary Care" {
		t.Errorf("phc = %q", got)
	}
	if got := CategoryFor("unknown"); got != "Healthcare Facility" {
		t.Errorf("unknown = %q", got)
	}
}
