// Package share renders a week's menu as the plain text used for preview,
// clipboard copy and messaging links.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"

	"menu-planner/internal/menu"
	"menu-planner/internal/week"
)

const (
	// DefaultTitle is used when the title is blank.
	DefaultTitle = "Cardápio da Semana"
	// EmptyPlaceholder is appended when no day has any meal.
	EmptyPlaceholder = "(Sem itens ainda)"

	whatsAppBaseURL = "https://wa.me/?text="
)

// ErrClipboardDenied is returned when the system clipboard refuses the write.
var ErrClipboardDenied = errors.New("clipboard access denied")

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// Format builds the share text for days in the given order. Entries of m for
// days not in the list are ignored.
func Format(title string, days []week.Day, m menu.Data) string {
	safeTitle := strings.TrimSpace(title)
	if safeTitle == "" {
		safeTitle = DefaultTitle
	}

	lines := []string{safeTitle}
	for _, d := range days {
		e := m[d.Key]
		if e.IsEmpty() {
			continue
		}
		lines = append(lines, "", d.Label)
		if e.Lunch != "" {
			lines = append(lines, fmt.Sprintf("• %s: %s", menu.Lunch.Label(), e.Lunch))
		}
		if e.Dinner != "" {
			lines = append(lines, fmt.Sprintf("• %s: %s", menu.Dinner.Label(), e.Dinner))
		}
	}
	if len(lines) == 1 {
		lines = append(lines, EmptyPlaceholder)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// WhatsAppURL returns a wa.me deep link carrying text as its message.
func WhatsAppURL(text string) string {
	// Spaces go out as %20; a bare '+' would be read back as a space.
	return whatsAppBaseURL + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// Copy puts text on the system clipboard.
func Copy(text string) error {
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", ErrClipboardDenied, err)
	}
	return nil
}
