package facility

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371

// Distance returns the haversine distance between two points in kilometers.
func Distance(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dlat := (b.Lat - a.Lat) * math.Pi / 180
	dlng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// DirectionsURL builds a Google Maps directions link between two points.
func DirectionsURL(from, to Coordinates) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/%g,%g/%g,%g",
		from.Lat, from.Lng, to.Lat, to.Lng)
}

// TransportOption estimates travel time for one mode of transport.
type TransportOption struct {
	Mode string `json:"mode"`
	Time string `json:"time"`
}

// minutesPerKm by transport mode on rural roads.
var transportModes = []struct {
	mode         string
	minutesPerKm int
}{
	{"walking", 12},
	{"auto", 3},
	{"bus", 4},
}

// TransportOptions estimates travel times for the distance.
func TransportOptions(distanceKm float64) []TransportOption {
	out := make([]TransportOption, 0, len(transportModes))
	for _, m := range transportModes {
		out = append(out, TransportOption{
			Mode: m.mode,
			Time: fmt.Sprintf("%d minutes", int(distanceKm*float64(m.minutesPerKm))),
		})
	}
	return out
}

// EstimatedTime is the ambulance-speed travel estimate used across the
// emergency listings.
func EstimatedTime(distanceKm float64) string {
	return fmt.Sprintf("%d minutes", int(distanceKm*2))
}
