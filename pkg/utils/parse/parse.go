// ABOUTME: Utility functions for parsing configuration values from strings
// ABOUTME: Provides safe parsing with default values

package parse

import (
	"strconv"
	"strings"
	"time"
)

// IntOrDefault parses an integer, returning def if s is empty or invalid
func IntOrDefault(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// Int64OrDefault parses a 64-bit integer, returning def if s is empty or invalid
func Int64OrDefault(s string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return def
	}
	return v
}

// FloatOrDefault parses a float, returning def if s is empty or invalid
func FloatOrDefault(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

// DurationOrDefault parses a Go duration such as "30s". A bare integer is read as seconds.
func DurationOrDefault(s string, def time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

// BoolOrDefault parses "true", "1", "yes" and their negatives, returning def otherwise
func BoolOrDefault(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return def
	}
}
