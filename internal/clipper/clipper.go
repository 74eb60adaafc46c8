package clipper

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"menu-planner/internal/ghost"
	"menu-planner/internal/menu"
	"menu-planner/internal/share"
	"menu-planner/internal/week"

	"github.com/PuerkitoBio/goquery"
)

// MenuTag is the Ghost tag put on published menus.
const MenuTag = "cardapio"

// Clipper publishes menus as web pages and reads them back.
type Clipper struct {
	ghostClient ghost.Client
	httpClient  *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper(ghostClient ghost.Client) *Clipper {
	return &Clipper{
		ghostClient: ghostClient,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Publish renders the menu and saves it to Ghost as a published post.
func (c *Clipper) Publish(ctx context.Context, title string, days []week.Day, m menu.Data) (*ghost.Post, error) {
	safeTitle := strings.TrimSpace(title)
	if safeTitle == "" {
		safeTitle = share.DefaultTitle
	}
	post, err := c.ghostClient.CreatePost(ctx, safeTitle, RenderHTML(days, m), []string{MenuTag}, true)
	if err != nil {
		return nil, fmt.Errorf("failed to save to ghost: %w", err)
	}
	return post, nil
}

// ImportURL fetches a page and extracts the menu it describes.
func (c *Clipper) ImportURL(ctx context.Context, url string, days []week.Day) (menu.Data, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}
	return ParseHTML(resp.Body, days)
}

// ErrNoPublishedMenu is returned by ImportLatest when Ghost has no post
// tagged MenuTag.
var ErrNoPublishedMenu = errors.New("no published menu")

// ImportLatest reads back the most recent menu published to Ghost.
func (c *Clipper) ImportLatest(ctx context.Context, days []week.Day) (menu.Data, *ghost.Post, error) {
	posts, err := c.ghostClient.FetchPosts(ctx, MenuTag)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	if len(posts) == 0 {
		return nil, nil, ErrNoPublishedMenu
	}
	latest := posts[0]
	for _, p := range posts[1:] {
		if p.UpdatedAt > latest.UpdatedAt {
			latest = p
		}
	}
	m, err := ParseHTML(strings.NewReader(latest.HTML), days)
	if err != nil {
		return nil, nil, err
	}
	return m, &latest, nil
}

// RenderHTML formats the menu as post HTML: a heading per planned day
// followed by a list of its meals.
func RenderHTML(days []week.Day, m menu.Data) string {
	var sb strings.Builder
	for _, d := range days {
		e := m[d.Key]
		if e.IsEmpty() {
			continue
		}
		sb.WriteString(fmt.Sprintf("<h2>%s</h2><ul>", html.EscapeString(d.Label)))
		for _, f := range []menu.Field{menu.Lunch, menu.Dinner} {
			if v := e.Get(f); v != "" {
				sb.WriteString(fmt.Sprintf("<li><strong>%s:</strong> %s</li>", f.Label(), html.EscapeString(v)))
			}
		}
		sb.WriteString("</ul>")
	}
	if sb.Len() == 0 {
		sb.WriteString(fmt.Sprintf("<p>%s</p>", html.EscapeString(share.EmptyPlaceholder)))
	}
	return sb.String()
}

// ParseHTML reads a menu from HTML where each day is a heading followed by
// "Almoço: ..." / "Jantar: ..." items. Only days in the catalog are kept.
func ParseHTML(r io.Reader, days []week.Day) (menu.Data, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove noise before walking the content
	doc.Find("script, style, nav, footer, iframe").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	m := menu.Empty(days)
	current := ""
	doc.Find("h1, h2, h3, h4, li, p").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if goquery.NodeName(s)[0] == 'h' {
			if key, err := week.ParseKey(days, text); err == nil {
				current = key
			} else {
				current = ""
			}
			return
		}
		if current == "" {
			return
		}
		field, value, ok := splitMeal(text)
		if !ok {
			return
		}
		m, _ = menu.SetField(m, current, field, value)
	})
	return m, nil
}

// splitMeal parses "• Almoço: Arroz" into its field and value.
func splitMeal(line string) (menu.Field, string, bool) {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "•"))
	label, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	field, err := menu.ParseField(label)
	if err != nil {
		return "", "", false
	}
	return field, strings.TrimSpace(value), true
}
