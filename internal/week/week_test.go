package week

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultDays(t *testing.T) {
	days := DefaultDays()
	if len(days) != 7 {
		t.Fatalf("Expected 7 days, got %d", len(days))
	}

	want := []string{"segunda", "terca", "quarta", "quinta", "sexta", "sabado", "domingo"}
	if diff := cmp.Diff(want, Keys(days)); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}

	// Mutating the returned slice must not leak into later calls.
	days[0].Label = "changed"
	if DefaultDays()[0].Label != "Segunda" {
		t.Error("DefaultDays returned a shared slice")
	}
}

func TestRotate(t *testing.T) {
	t.Run("StartAtQuarta", func(t *testing.T) {
		rotated, err := Rotate(DefaultDays(), "quarta")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		want := []string{"quarta", "quinta", "sexta", "sabado", "domingo", "segunda", "terca"}
		if diff := cmp.Diff(want, Keys(rotated)); diff != "" {
			t.Errorf("Rotation mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("EveryStartKeepsCyclicOrder", func(t *testing.T) {
		days := DefaultDays()
		for i, d := range days {
			rotated, err := Rotate(days, d.Key)
			if err != nil {
				t.Fatalf("Rotate(%s) failed: %v", d.Key, err)
			}
			for j := range rotated {
				if rotated[j] != days[(i+j)%len(days)] {
					t.Errorf("Rotate(%s)[%d] = %v, want %v", d.Key, j, rotated[j], days[(i+j)%len(days)])
				}
			}
		}
	})

	t.Run("FirstDayIsIdentity", func(t *testing.T) {
		rotated, err := Rotate(DefaultDays(), "segunda")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if diff := cmp.Diff(DefaultDays(), rotated); diff != "" {
			t.Errorf("Expected identity rotation (-want +got):\n%s", diff)
		}
	})

	t.Run("UnknownKey", func(t *testing.T) {
		_, err := Rotate(DefaultDays(), "feriado")
		if !errors.Is(err, ErrInvalidDayKey) {
			t.Fatalf("Expected ErrInvalidDayKey, got %v", err)
		}
	})
}

func TestParseKey(t *testing.T) {
	days := DefaultDays()
	tests := []struct {
		input string
		want  string
	}{
		{"terca", "terca"},
		{"Terça", "terca"},
		{"  TERÇA ", "terca"},
		{"Sábado", "sabado"},
		{"domingo", "domingo"},
	}
	for _, tt := range tests {
		got, err := ParseKey(days, tt.input)
		if err != nil {
			t.Errorf("ParseKey(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	for _, bad := range []string{"", "   ", "monday"} {
		if _, err := ParseKey(days, bad); !errors.Is(err, ErrInvalidDayKey) {
			t.Errorf("ParseKey(%q): expected ErrInvalidDayKey, got %v", bad, err)
		}
	}
}

func TestLookup(t *testing.T) {
	d, ok := Lookup(DefaultDays(), "sexta")
	if !ok || d.Label != "Sexta" {
		t.Errorf("Expected Sexta, got %v (ok=%v)", d, ok)
	}
	if _, ok := Lookup(DefaultDays(), "x"); ok {
		t.Error("Expected lookup of unknown key to fail")
	}
}
