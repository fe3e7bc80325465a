package validators

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var strictTimePattern = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)

// NormalizeTimeOfDay accepts "9", "09", "09:30" or "09:30:00" and
// returns the zero-padded HH:MM:SS form.
func NormalizeTimeOfDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty time")
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return "", fmt.Errorf("invalid time %q", s)
	}

	limits := []int{23, 59, 59}
	values := []int{0, 0, 0}
	for i, p := range parts {
		if p == "" || len(p) > 2 {
			return "", fmt.Errorf("invalid time %q", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return "", fmt.Errorf("invalid time %q", s)
		}
		values[i] = n
	}

	return fmt.Sprintf("%02d:%02d:%02d", values[0], values[1], values[2]), nil
}

// NormalizeStrictTime only accepts HH:MM or HH:MM:SS.
func NormalizeStrictTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strictTimePattern.MatchString(s) {
		return "", fmt.Errorf("invalid time %q", s)
	}
	return NormalizeTimeOfDay(s)
}

// ShortTime turns HH:MM:SS into HH:MM.
func ShortTime(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}

// IsDate reports whether s is a real YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	if len(s) != len("2006-01-02") {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
