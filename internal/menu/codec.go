package menu

import (
	"encoding/json"
	"errors"
	"fmt"

	"menu-planner/internal/week"
)

// ErrDeserialization marks persisted data that could not be read back.
var ErrDeserialization = errors.New("menu deserialization failed")

// Encode serializes m as a JSON object keyed by day.
func Encode(m Data) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal menu: %w", err)
	}
	return data, nil
}

// Decode parses persisted data. Anything other than a JSON object of entries
// fails with ErrDeserialization.
func Decode(raw []byte) (Data, error) {
	var m Data
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: not an object", ErrDeserialization)
	}
	return m, nil
}

// LoadInitial builds the starting menu for days from persisted data. Keys not
// in days are dropped and days missing from raw stay blank. Absent or
// unreadable data yields an empty week.
func LoadInitial(raw []byte, days []week.Day) Data {
	empty := Empty(days)
	if len(raw) == 0 {
		return empty
	}
	saved, err := Decode(raw)
	if err != nil {
		return empty
	}
	return Merge(empty, saved)
}
