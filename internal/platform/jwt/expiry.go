package jwtmw

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FallbackExpiration is used when an expiry string cannot be parsed.
const FallbackExpiration = time.Hour

var expiryPattern = regexp.MustCompile(`(?i)^(\d+)([smhdwy])$`)

var expiryUnits = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
	"y": 365 * 24 * time.Hour,
}

// ParseExpiresIn parses "<n><unit>" with unit one of s, m, h, d, w, y
// (case-insensitive) or a bare number of seconds.
func ParseExpiresIn(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if m := expiryPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid token expiry %q: %w", s, err)
		}
		return scale(s, n, expiryUnits[strings.ToLower(m[2])])
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
		return scale(s, n, time.Second)
	}
	return 0, fmt.Errorf("invalid token expiry %q: want <number>[smhdwy] or seconds", s)
}

func scale(s string, n int64, unit time.Duration) (time.Duration, error) {
	if n > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("invalid token expiry %q: out of range", s)
	}
	return time.Duration(n) * unit, nil
}

// ExpirationFromString is ParseExpiresIn with a one hour fallback for
// unparseable input. The fallback is logged since it silently shortens sessions.
func ExpirationFromString(s string) time.Duration {
	d, err := ParseExpiresIn(s)
	if err != nil {
		slog.Warn("falling back to default token expiry", "error", err, "fallback", FallbackExpiration.String())
		return FallbackExpiration
	}
	return d
}
