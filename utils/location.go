package analysisUtils

import (
	"fmt"
	"strconv"
)

// ReverseGeocode maps coordinates to a location name using a static
// table. TODO: replace with a real geocoding service (OpenStreetMap
// Nominatim) once an API budget exists.
func ReverseGeocode(lat, lon string) string {
	latF, errLat := strconv.ParseFloat(lat, 64)
	lonF, errLon := strconv.ParseFloat(lon, 64)
	if errLat != nil || errLon != nil {
		return "Unknown Location"
	}

	switch {
	case latF >= 12.9 && latF <= 13.1 && lonF >= 74.8 && lonF <= 75.0:
		return "Panambur Beach"
	case latF >= 12.5 && latF <= 13.0 && lonF >= 74.5 && lonF <= 75.5:
		return "Mangalore Coastal Area"
	default:
		return fmt.Sprintf("Location near (%s, %s)", lat, lon)
	}
}

// ValidateCoordinates checks that lat/lon parse and fall in range
func ValidateCoordinates(lat, lon string) (bool, string) {
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return false, "Invalid coordinate format"
	}
	lonF, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return false, "Invalid coordinate format"
	}

	if latF < -90 || latF > 90 {
		return false, "Latitude must be between -90 and 90"
	}
	if lonF < -180 || lonF > 180 {
		return false, "Longitude must be between -180 and 180"
	}
	return true, "Valid coordinates"
}
