package utils

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"hydroroute.org/internal/network"
)

// ParseFloatParam retrieves a float64 value from the provided URL query parameters.
// If the key is not present it returns 0 without an error. If the value is
// invalid it returns 0 and records the problem in fieldErrors.
func ParseFloatParam(params url.Values, key string, fieldErrors map[string][]string) (float64, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return 0, fieldErrors
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return 0, fieldErrors
	}
	return f, fieldErrors
}

// RequireFloatParam is ParseFloatParam for parameters that must be present.
func RequireFloatParam(params url.Values, key string, fieldErrors map[string][]string) (float64, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}
	if params.Get(key) == "" {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Missing required field %q.", key))
		return 0, fieldErrors
	}
	return ParseFloatParam(params, key, fieldErrors)
}

// ParseCoordinateParams reads a required latitude/longitude pair and
// validates its range. The point is not rounded to the node grid; lookups
// measure from the exact query.
func ParseCoordinateParams(params url.Values, latKey, lonKey string, fieldErrors map[string][]string) (network.Coordinate, map[string][]string) {
	lat, fieldErrors := RequireFloatParam(params, latKey, fieldErrors)
	lon, fieldErrors := RequireFloatParam(params, lonKey, fieldErrors)

	if len(fieldErrors[latKey]) == 0 {
		if err := ValidateLatitude(lat); err != nil {
			fieldErrors[latKey] = append(fieldErrors[latKey], err.Error())
		}
	}
	if len(fieldErrors[lonKey]) == 0 {
		if err := ValidateLongitude(lon); err != nil {
			fieldErrors[lonKey] = append(fieldErrors[lonKey], err.Error())
		}
	}
	return network.Coordinate{Lon: lon, Lat: lat}, fieldErrors
}
