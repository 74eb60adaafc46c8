// Package planner holds the state of one planning session: title, start day
// and the week's menu, saved through a caller-supplied callback after every
// change.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"menu-planner/internal/menu"
	"menu-planner/internal/share"
	"menu-planner/internal/storage"
	"menu-planner/internal/week"
)

// SaveFunc persists the menu after a change. Errors are logged and dropped.
type SaveFunc func(ctx context.Context, m menu.Data) error

// Planner is one planning session. It is not safe for concurrent use.
type Planner struct {
	days     []week.Day
	title    string
	startDay string
	menu     menu.Data
	save     SaveFunc
	chef     *Chef
	logger   *slog.Logger
}

// Option customizes a Planner.
type Option func(*Planner)

// WithTitle sets the initial title.
func WithTitle(title string) Option {
	return func(p *Planner) { p.title = title }
}

// WithStartDay sets the initial start day. Unknown keys are rejected by New.
func WithStartDay(key string) Option {
	return func(p *Planner) { p.startDay = key }
}

// WithSaveFunc sets the callback run after each change.
func WithSaveFunc(fn SaveFunc) Option {
	return func(p *Planner) { p.save = fn }
}

// WithChef enables Suggest.
func WithChef(c *Chef) Option {
	return func(p *Planner) { p.chef = c }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// New creates a Planner over the default catalog starting from initial, which
// is re-keyed onto the catalog.
func New(initial menu.Data, opts ...Option) (*Planner, error) {
	days := week.DefaultDays()
	p := &Planner{
		days:     days,
		title:    share.DefaultTitle,
		startDay: days[0].Key,
		menu:     menu.Merge(menu.Empty(days), initial),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if week.Index(p.days, p.startDay) < 0 {
		return nil, fmt.Errorf("start day %q: %w", p.startDay, week.ErrInvalidDayKey)
	}
	return p, nil
}

// Open loads the menu stored under key and saves every change back there.
// Missing or unreadable data starts an empty week.
func Open(ctx context.Context, kv storage.KV, key string, opts ...Option) (*Planner, error) {
	raw, loadErr := kv.Get(ctx, key)
	if errors.Is(loadErr, storage.ErrNotFound) {
		loadErr = nil
	}
	if loadErr != nil {
		raw = nil
	}

	save := func(ctx context.Context, m menu.Data) error {
		data, err := menu.Encode(m)
		if err != nil {
			return err
		}
		return kv.Set(ctx, key, data)
	}

	opts = append([]Option{WithSaveFunc(save)}, opts...)
	p, err := New(menu.LoadInitial(raw, week.DefaultDays()), opts...)
	if err != nil {
		return nil, err
	}
	if loadErr != nil {
		p.logger.Warn("failed to load saved menu, starting empty",
			slog.String("key", key), slog.String("error", loadErr.Error()))
	}
	return p, nil
}

// Title returns the share title as typed, untrimmed.
func (p *Planner) Title() string { return p.title }

// SetTitle changes the title. Titles are session state and are not saved.
func (p *Planner) SetTitle(title string) { p.title = title }

// StartDay returns the key of the day shown first.
func (p *Planner) StartDay() string { return p.startDay }

// SetStartDay changes the day shown first.
func (p *Planner) SetStartDay(key string) error {
	if week.Index(p.days, key) < 0 {
		return fmt.Errorf("start day %q: %w", key, week.ErrInvalidDayKey)
	}
	p.startDay = key
	return nil
}

// Catalog returns the days in catalog order.
func (p *Planner) Catalog() []week.Day {
	return append([]week.Day(nil), p.days...)
}

// Days returns the catalog rotated to the start day.
func (p *Planner) Days() []week.Day {
	rotated, err := week.Rotate(p.days, p.startDay)
	if err != nil {
		return p.Catalog()
	}
	return rotated
}

// Menu returns a copy of the current menu.
func (p *Planner) Menu() menu.Data {
	return maps.Clone(p.menu)
}

// Entry returns one day's meals.
func (p *Planner) Entry(dayKey string) menu.Entry {
	return p.menu[dayKey]
}

// SetField replaces one meal.
func (p *Planner) SetField(ctx context.Context, dayKey string, field menu.Field, value string) error {
	next, err := menu.SetField(p.menu, dayKey, field, value)
	if err != nil {
		return err
	}
	p.apply(ctx, next)
	return nil
}

// ClearDay blanks one day.
func (p *Planner) ClearDay(ctx context.Context, dayKey string) error {
	next, err := menu.ClearDay(p.menu, dayKey)
	if err != nil {
		return err
	}
	p.apply(ctx, next)
	return nil
}

// SwapDay exchanges one day's lunch and dinner.
func (p *Planner) SwapDay(ctx context.Context, dayKey string) error {
	next, err := menu.SwapDay(p.menu, dayKey)
	if err != nil {
		return err
	}
	p.apply(ctx, next)
	return nil
}

// ClearAll blanks the week.
func (p *Planner) ClearAll(ctx context.Context) {
	p.apply(ctx, menu.ClearAll(p.days))
}

// FillExample applies the sample week.
func (p *Planner) FillExample(ctx context.Context) {
	p.apply(ctx, menu.FillExample(p.menu))
}

// Replace overlays m onto the week, dropping days the catalog does not know.
func (p *Planner) Replace(ctx context.Context, m menu.Data) {
	p.apply(ctx, menu.Merge(menu.Empty(p.days), m))
}

// ShareText renders the week in display order.
func (p *Planner) ShareText() string {
	return share.Format(p.title, p.Days(), p.menu)
}

// ShareURL returns the WhatsApp link for ShareText.
func (p *Planner) ShareURL() string {
	return share.WhatsAppURL(p.ShareText())
}

func (p *Planner) apply(ctx context.Context, next menu.Data) {
	p.menu = next
	if p.save == nil {
		return
	}
	if err := p.save(ctx, maps.Clone(next)); err != nil {
		p.logger.Warn("failed to save menu", slog.String("error", err.Error()))
	}
}
