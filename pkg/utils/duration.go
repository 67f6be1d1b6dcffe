package utils

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidDuration is returned for durations not of the form <amount><s|m|h|d>.
var ErrInvalidDuration = errors.New("invalid duration")

var durationPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

var durationUnits = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
}

// ParseDuration parses short durations such as "30s", "10m", "2h" or "7d".
func ParseDuration(s string) (time.Duration, error) {
	match := durationPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	amount, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidDuration, s, err)
	}

	unit := durationUnits[match[2]]
	if amount > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %q is too long", ErrInvalidDuration, s)
	}

	return time.Duration(amount) * unit, nil
}
