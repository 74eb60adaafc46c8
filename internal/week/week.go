// Package week holds the fixed catalog of weekdays a menu is planned over.
package week

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidDayKey is returned when a day key is not part of the catalog.
var ErrInvalidDayKey = errors.New("invalid day key")

// Day is a single weekday: a stable key and its display label.
type Day struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var defaultDays = [...]Day{
	{Key: "segunda", Label: "Segunda"},
	{Key: "terca", Label: "Terça"},
	{Key: "quarta", Label: "Quarta"},
	{Key: "quinta", Label: "Quinta"},
	{Key: "sexta", Label: "Sexta"},
	{Key: "sabado", Label: "Sábado"},
	{Key: "domingo", Label: "Domingo"},
}

// DefaultDays returns the Monday to Sunday catalog. Each call returns a fresh slice.
func DefaultDays() []Day {
	days := make([]Day, len(defaultDays))
	copy(days, defaultDays[:])
	return days
}

// Keys returns the keys of days in order.
func Keys(days []Day) []string {
	keys := make([]string, len(days))
	for i, d := range days {
		keys[i] = d.Key
	}
	return keys
}

// Index returns the position of key in days, or -1.
func Index(days []Day, key string) int {
	for i, d := range days {
		if d.Key == key {
			return i
		}
	}
	return -1
}

// Lookup finds the day with the given key.
func Lookup(days []Day, key string) (Day, bool) {
	if i := Index(days, key); i >= 0 {
		return days[i], true
	}
	return Day{}, false
}

// Rotate returns days reordered so that startKey comes first, keeping the
// cyclic order of the others. An unknown startKey is an error.
func Rotate(days []Day, startKey string) ([]Day, error) {
	i := Index(days, startKey)
	if i < 0 {
		return nil, fmt.Errorf("rotate to %q: %w", startKey, ErrInvalidDayKey)
	}
	rotated := make([]Day, 0, len(days))
	rotated = append(rotated, days[i:]...)
	rotated = append(rotated, days[:i]...)
	return rotated, nil
}

// ParseKey resolves user input ("Terça", "terca", " TERÇA ") to a catalog key.
func ParseKey(days []Day, input string) (string, error) {
	want := fold(input)
	if want == "" {
		return "", fmt.Errorf("empty day: %w", ErrInvalidDayKey)
	}
	for _, d := range days {
		if fold(d.Key) == want || fold(d.Label) == want {
			return d.Key, nil
		}
	}
	return "", fmt.Errorf("day %q: %w", input, ErrInvalidDayKey)
}

// fold lower-cases s and strips accents so "Sábado" matches "sabado".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
