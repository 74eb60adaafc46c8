// Package menu implements the weekly menu data model. Every operation returns
// a new Data value and leaves its input untouched.
package menu

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"menu-planner/internal/week"
)

var (
	ErrUnknownDayKey = errors.New("unknown day key")
	ErrUnknownField  = errors.New("unknown meal field")
)

// Field names one of the two meal slots of a day.
type Field string

const (
	Lunch  Field = "almoco"
	Dinner Field = "jantar"
)

// Label is the display name of the slot.
func (f Field) Label() string {
	switch f {
	case Lunch:
		return "Almoço"
	case Dinner:
		return "Jantar"
	}
	return string(f)
}

// ParseField accepts the persisted names, their accented spelling and the
// English aliases.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "almoco", "almoço", "lunch":
		return Lunch, nil
	case "jantar", "dinner":
		return Dinner, nil
	}
	return "", fmt.Errorf("field %q: %w", s, ErrUnknownField)
}

// Entry is one day's lunch and dinner.
type Entry struct {
	Lunch  string `json:"almoco"`
	Dinner string `json:"jantar"`
}

// IsEmpty reports whether both slots are blank.
func (e Entry) IsEmpty() bool {
	return e.Lunch == "" && e.Dinner == ""
}

// Get returns the value of a slot.
func (e Entry) Get(f Field) string {
	if f == Dinner {
		return e.Dinner
	}
	return e.Lunch
}

// Data maps a day key to its entry.
type Data map[string]Entry

// Empty builds a menu with a blank entry for each of the given days.
func Empty(days []week.Day) Data {
	m := make(Data, len(days))
	for _, d := range days {
		m[d.Key] = Entry{}
	}
	return m
}

// ClearAll resets the whole week.
func ClearAll(days []week.Day) Data {
	return Empty(days)
}

// SetField replaces one slot of one day.
func SetField(m Data, dayKey string, field Field, value string) (Data, error) {
	e, ok := m[dayKey]
	if !ok {
		return nil, fmt.Errorf("set %s on %q: %w", field, dayKey, ErrUnknownDayKey)
	}
	switch field {
	case Lunch:
		e.Lunch = value
	case Dinner:
		e.Dinner = value
	default:
		return nil, fmt.Errorf("set %q on %q: %w", field, dayKey, ErrUnknownField)
	}
	out := maps.Clone(m)
	out[dayKey] = e
	return out, nil
}

// ClearDay blanks both slots of one day.
func ClearDay(m Data, dayKey string) (Data, error) {
	if _, ok := m[dayKey]; !ok {
		return nil, fmt.Errorf("clear %q: %w", dayKey, ErrUnknownDayKey)
	}
	out := maps.Clone(m)
	out[dayKey] = Entry{}
	return out, nil
}

// SwapDay exchanges lunch and dinner of one day.
func SwapDay(m Data, dayKey string) (Data, error) {
	e, ok := m[dayKey]
	if !ok {
		return nil, fmt.Errorf("swap %q: %w", dayKey, ErrUnknownDayKey)
	}
	out := maps.Clone(m)
	out[dayKey] = Entry{Lunch: e.Dinner, Dinner: e.Lunch}
	return out, nil
}

// Merge overlays src onto m, keeping only keys already present in m.
func Merge(m, src Data) Data {
	out := maps.Clone(m)
	for k, e := range src {
		if _, ok := out[k]; ok {
			out[k] = e
		}
	}
	return out
}
