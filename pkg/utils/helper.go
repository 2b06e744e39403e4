package utils

import (
	"strconv"
)

// ParseBool converts a query value to bool with default value
func ParseBool(value string, defaultValue bool) bool {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return result
}
