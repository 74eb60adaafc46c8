package planner

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNoChef is returned by Suggest when the planner has no Chef.
var ErrNoChef = errors.New("meal suggestions are not configured")

// Suggest fills the empty slots of the week with the Chef's proposals and
// returns how many meals were added.
func (p *Planner) Suggest(ctx context.Context) (int, error) {
	if p.chef == nil {
		return 0, ErrNoChef
	}

	res, err := p.chef.Suggest(ctx, p.Days(), p.menu)
	if err != nil {
		return 0, err
	}

	p.logger.Info("chef suggestions received",
		slog.String("model", res.Usage.Model),
		slog.Int("prompt_tokens", res.Usage.PromptTokens),
		slog.Int("completion_tokens", res.Usage.CompletionTokens),
		slog.Duration("latency", res.Latency))

	next := p.Menu()
	filled := 0
	for key, s := range res.Suggestions {
		e, ok := next[key]
		if !ok {
			continue
		}
		if e.Lunch == "" && s.Lunch != "" {
			e.Lunch = s.Lunch
			filled++
		}
		if e.Dinner == "" && s.Dinner != "" {
			e.Dinner = s.Dinner
			filled++
		}
		next[key] = e
	}
	if filled > 0 {
		p.apply(ctx, next)
	}
	return filled, nil
}
