package menu

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"menu-planner/internal/week"
)

func TestDecode(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		m, err := Decode([]byte(`{"segunda":{"almoco":"Arroz","jantar":"Sopa"}}`))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if m["segunda"] != (Entry{Lunch: "Arroz", Dinner: "Sopa"}) {
			t.Errorf("Unexpected entry %+v", m["segunda"])
		}
	})

	for name, raw := range map[string]string{
		"Garbage":     `{not json`,
		"Null":        `null`,
		"Array":       `[1,2,3]`,
		"WrongShape":  `{"segunda":"Arroz"}`,
		"EmptyString": ``,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode([]byte(raw)); !errors.Is(err, ErrDeserialization) {
				t.Errorf("Expected ErrDeserialization, got %v", err)
			}
		})
	}
}

func TestLoadInitial(t *testing.T) {
	days := week.DefaultDays()

	t.Run("Absent", func(t *testing.T) {
		if diff := cmp.Diff(Empty(days), LoadInitial(nil, days)); diff != "" {
			t.Errorf("Expected empty week (-want +got):\n%s", diff)
		}
	})

	t.Run("Corrupt", func(t *testing.T) {
		if diff := cmp.Diff(Empty(days), LoadInitial([]byte("{{{"), days)); diff != "" {
			t.Errorf("Expected empty week (-want +got):\n%s", diff)
		}
	})

	t.Run("PartialAndForeignKeys", func(t *testing.T) {
		raw := []byte(`{"terca":{"almoco":"Massa"},"feriado":{"almoco":"Churrasco"}}`)
		got := LoadInitial(raw, days)

		want := Empty(days)
		want["terca"] = Entry{Lunch: "Massa"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Unexpected menu (-want +got):\n%s", diff)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		m := FillExample(Empty(days))
		m, _ = SetField(m, "quarta", Dinner, "")
		raw, err := Encode(m)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if diff := cmp.Diff(m, LoadInitial(raw, days)); diff != "" {
			t.Errorf("Round trip changed menu (-want +got):\n%s", diff)
		}
	})

	t.Run("LegacyFieldNames", func(t *testing.T) {
		raw, _ := Encode(Data{"segunda": {Lunch: "A", Dinner: "B"}})
		if string(raw) != `{"segunda":{"almoco":"A","jantar":"B"}}` {
			t.Errorf("Unexpected wire format: %s", raw)
		}
	})
}
