package geo

import (
	"fmt"
	"math"
	"net/url"
)

const earthRadiusKm = 6371

// DistanceKm computes the great-circle distance between two coordinates
// (degrees) with the Haversine formula.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// FormatDistance renders a distance for display: whole meters under one
// kilometer, one-decimal kilometers above.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}

// MapProvider selects which map service directions links point at.
type MapProvider string

const (
	ProviderGoogle MapProvider = "google"
	ProviderOSM    MapProvider = "osm"
)

// DirectionsURL builds a directions link to a destination for the given
// provider. Unknown providers fall back to OpenStreetMap.
func DirectionsURL(provider MapProvider, lat, lon float64, name string) string {
	if provider == ProviderGoogle {
		return fmt.Sprintf(
			"https://www.google.com/maps/dir/?api=1&destination=%f,%f&destination_place_id=%s",
			lat, lon, url.QueryEscape(name),
		)
	}
	return fmt.Sprintf("https://www.openstreetmap.org/directions?from=&to=%f,%f", lat, lon)
}
