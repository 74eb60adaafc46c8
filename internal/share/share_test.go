package share

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"menu-planner/internal/menu"
	"menu-planner/internal/week"
)

func TestFormat(t *testing.T) {
	days := week.DefaultDays()

	t.Run("SingleLunch", func(t *testing.T) {
		m, _ := menu.SetField(menu.Empty(days), "segunda", menu.Lunch, "Arroz e feijão")
		got := Format("Cardápio da Semana", days, m)
		want := "Cardápio da Semana\n\nSegunda\n• Almoço: Arroz e feijão"
		if got != want {
			t.Errorf("Expected:\n%q\ngot:\n%q", want, got)
		}
	})

	t.Run("WhitespaceTitleFallsBack", func(t *testing.T) {
		got := Format("  ", days, menu.Empty(days))
		if !strings.HasPrefix(got, DefaultTitle+"\n") {
			t.Errorf("Expected default title, got %q", got)
		}
	})

	t.Run("TitleIsTrimmed", func(t *testing.T) {
		got := Format("  Semana 12 ", days, menu.Empty(days))
		if got != "Semana 12\n"+EmptyPlaceholder {
			t.Errorf("Unexpected output %q", got)
		}
	})

	t.Run("AllEmpty", func(t *testing.T) {
		for n := 1; n <= len(days); n++ {
			got := Format("Minha semana", days[:n], menu.Empty(days))
			if got != "Minha semana\n(Sem itens ainda)" {
				t.Errorf("With %d days: unexpected output %q", n, got)
			}
		}
	})

	t.Run("NilMenu", func(t *testing.T) {
		got := Format("", days, nil)
		if got != DefaultTitle+"\n"+EmptyPlaceholder {
			t.Errorf("Unexpected output %q", got)
		}
	})

	t.Run("DinnerOnlyAndOrder", func(t *testing.T) {
		m := menu.Empty(days)
		m, _ = menu.SetField(m, "domingo", menu.Dinner, "Sushi")
		m, _ = menu.SetField(m, "quarta", menu.Lunch, "Peixe")
		m, _ = menu.SetField(m, "quarta", menu.Dinner, "Sanduíche")

		rotated, _ := week.Rotate(days, "sexta")
		got := Format("T", rotated, m)
		want := "T\n\nDomingo\n• Jantar: Sushi\n\nQuarta\n• Almoço: Peixe\n• Jantar: Sanduíche"
		if got != want {
			t.Errorf("Expected:\n%q\ngot:\n%q", want, got)
		}
	})

	t.Run("IgnoresDaysNotListed", func(t *testing.T) {
		subset := days[:2]
		base := menu.Empty(days)
		base, _ = menu.SetField(base, "terca", menu.Lunch, "Massa")

		withExtras := menu.FillExample(base)
		withExtras["terca"] = base["terca"]
		withExtras["segunda"] = base["segunda"]
		withExtras["feriado"] = menu.Entry{Lunch: "Churrasco"}

		if a, b := Format("T", subset, base), Format("T", subset, withExtras); a != b {
			t.Errorf("Output depends on unlisted days:\n%q\nvs\n%q", a, b)
		}
	})

	t.Run("Example", func(t *testing.T) {
		got := Format("", days, menu.FillExample(menu.Empty(days)))
		if strings.Count(got, "• Almoço:") != 7 || strings.Count(got, "• Jantar:") != 7 {
			t.Errorf("Expected 7 lunches and 7 dinners, got:\n%s", got)
		}
		if strings.HasSuffix(got, "\n") || strings.HasPrefix(got, "\n") {
			t.Errorf("Output is not trimmed: %q", got)
		}
	})
}

func TestWhatsAppURL(t *testing.T) {
	text := "Cardápio\n\nSegunda\n• Almoço: Sopa + pão & café"
	link := WhatsAppURL(text)

	if !strings.HasPrefix(link, "https://wa.me/?text=") {
		t.Fatalf("Unexpected link prefix: %s", link)
	}
	if strings.ContainsAny(strings.TrimPrefix(link, "https://wa.me/?text="), " +&\n") {
		t.Errorf("Link carries unescaped characters: %s", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("Link does not parse: %v", err)
	}
	if got := u.Query().Get("text"); got != text {
		t.Errorf("Round trip mismatch:\nwant %q\ngot  %q", text, got)
	}
	if !strings.Contains(link, "Sopa%20%2B%20p") {
		t.Errorf("Expected %%20 spaces and %%2B plus, got %s", link)
	}
}

func TestCopy(t *testing.T) {
	orig := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = orig })

	t.Run("Success", func(t *testing.T) {
		var copied string
		clipboardWriteAll = func(s string) error {
			copied = s
			return nil
		}
		if err := Copy("hello"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if copied != "hello" {
			t.Errorf("Expected 'hello' on clipboard, got %q", copied)
		}
	})

	t.Run("Denied", func(t *testing.T) {
		clipboardWriteAll = func(string) error { return errors.New("no xclip") }
		if err := Copy("hello"); !errors.Is(err, ErrClipboardDenied) {
			t.Errorf("Expected ErrClipboardDenied, got %v", err)
		}
	})
}
