package planner

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"menu-planner/internal/llm"
	"menu-planner/internal/menu"
	"menu-planner/internal/week"
)

//go:embed chef_prompt.md
var chefPrompt string

var chefTemplate = template.Must(template.New("Chef").Parse(chefPrompt))

// Chef asks a language model for meals to fill the empty slots of a week.
type Chef struct {
	textGen llm.TextGenerator
}

// NewChef creates a Chef backed by textGen.
func NewChef(textGen llm.TextGenerator) *Chef {
	return &Chef{textGen: textGen}
}

// ChefResult is the outcome of one suggestion round.
type ChefResult struct {
	Suggestions menu.Data
	Usage       llm.TokenUsage
	Latency     time.Duration
}

type chefDay struct {
	Key, Label    string
	Lunch, Dinner string
}

// Suggest proposes meals for the empty slots of m. Suggestions for filled
// slots or unknown days are discarded.
func (c *Chef) Suggest(ctx context.Context, days []week.Day, m menu.Data) (ChefResult, error) {
	start := time.Now()
	prompt, err := buildChefPrompt(days, m)
	if err != nil {
		return ChefResult{}, err
	}

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return ChefResult{}, fmt.Errorf("chef: %w", err)
	}

	proposed, err := menu.Decode([]byte(stripCodeFence(resp.Content)))
	if err != nil {
		return ChefResult{Usage: resp.Usage}, fmt.Errorf("chef: %w, response: %s", err, resp.Content)
	}

	suggestions := make(menu.Data)
	for _, d := range days {
		current, got := m[d.Key], proposed[d.Key]
		var e menu.Entry
		if current.Lunch == "" {
			e.Lunch = strings.TrimSpace(got.Lunch)
		}
		if current.Dinner == "" {
			e.Dinner = strings.TrimSpace(got.Dinner)
		}
		if !e.IsEmpty() {
			suggestions[d.Key] = e
		}
	}

	return ChefResult{
		Suggestions: suggestions,
		Usage:       resp.Usage,
		Latency:     time.Since(start),
	}, nil
}

func buildChefPrompt(days []week.Day, m menu.Data) (string, error) {
	data := struct{ Days []chefDay }{}
	for _, d := range days {
		e := m[d.Key]
		data.Days = append(data.Days, chefDay{Key: d.Key, Label: d.Label, Lunch: e.Lunch, Dinner: e.Dinner})
	}

	var buf bytes.Buffer
	if err := chefTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render chef prompt: %w", err)
	}
	return buf.String(), nil
}

// stripCodeFence removes a ```json fence some models add despite the prompt.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
