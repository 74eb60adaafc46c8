// Package tui is the interactive terminal editor for the week's menu.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"menu-planner/internal/menu"
	"menu-planner/internal/planner"
	"menu-planner/internal/share"
	"menu-planner/internal/week"
)

type mode int

const (
	modeBrowse mode = iota
	modeEditField
	modeEditTitle
)

const helpLine = "↑/↓ dia • ←/→ refeição • enter editar • s inverter • d limpar dia • " +
	"x exemplo • X limpar tudo • [/] início • t título • c copiar • w link • q sair"

// Model is the bubbletea model of the editor.
type Model struct {
	ctx     context.Context
	planner *planner.Planner
	copy    func(string) error

	mode   mode
	cursor int
	field  menu.Field
	input  textinput.Model
	status string

	width  int
	height int
}

// Option customizes a Model.
type Option func(*Model)

// WithCopyFunc replaces the clipboard writer.
func WithCopyFunc(fn func(string) error) Option {
	return func(m *Model) { m.copy = fn }
}

// NewModel creates the editor over p. ctx is passed to every save.
func NewModel(ctx context.Context, p *planner.Planner, opts ...Option) Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 48

	m := Model{
		ctx:     ctx,
		planner: p,
		copy:    share.Copy,
		field:   menu.Lunch,
		input:   ti,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the editor on the alternate screen and blocks until it quits.
func Run(ctx context.Context, p *planner.Planner, opts ...Option) error {
	prog := tea.NewProgram(NewModel(ctx, p, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) currentDay() week.Day {
	return m.planner.Days()[m.cursor]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode != modeBrowse {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	days := m.planner.Days()

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "up", "k":
		m.cursor = (m.cursor + len(days) - 1) % len(days)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(days)
	case "left", "right", "tab", "h", "l":
		if m.field == menu.Lunch {
			m.field = menu.Dinner
		} else {
			m.field = menu.Lunch
		}

	case "enter", "e":
		m.mode = modeEditField
		m.input.Placeholder = m.field.Label()
		m.input.SetValue(m.planner.Entry(m.currentDay().Key).Get(m.field))
		m.input.CursorEnd()
		return m, m.input.Focus()

	case "t":
		m.mode = modeEditTitle
		m.input.Placeholder = share.DefaultTitle
		m.input.SetValue(m.planner.Title())
		m.input.CursorEnd()
		return m, m.input.Focus()

	case "s":
		m.report(m.planner.SwapDay(m.ctx, m.currentDay().Key), "Almoço e jantar invertidos.")
	case "d", "backspace":
		m.report(m.planner.ClearDay(m.ctx, m.currentDay().Key), fmt.Sprintf("%s limpo.", m.currentDay().Label))
	case "x":
		m.planner.FillExample(m.ctx)
		m.status = "Exemplo aplicado."
	case "X":
		m.planner.ClearAll(m.ctx)
		m.status = "Cardápio limpo."

	case "[", "]":
		m.shiftStartDay(msg.String() == "]")

	case "c":
		if err := m.copy(m.planner.ShareText()); err != nil {
			if errors.Is(err, share.ErrClipboardDenied) {
				m.status = "Não foi possível copiar. Verifique as permissões da área de transferência."
			} else {
				m.status = fmt.Sprintf("Erro ao copiar: %v", err)
			}
		} else {
			m.status = "Copiado!"
		}
	case "w":
		m.status = m.planner.ShareURL()
	}
	return m, nil
}

// shiftStartDay moves the start day one step and keeps the cursor on the
// same day.
func (m *Model) shiftStartDay(forward bool) {
	catalog := m.planner.Catalog()
	selected := m.currentDay().Key
	i := week.Index(catalog, m.planner.StartDay())
	if forward {
		i = (i + 1) % len(catalog)
	} else {
		i = (i + len(catalog) - 1) % len(catalog)
	}
	if err := m.planner.SetStartDay(catalog[i].Key); err != nil {
		m.status = err.Error()
		return
	}
	m.cursor = week.Index(m.planner.Days(), selected)
	m.status = fmt.Sprintf("Semana começa em %s.", catalog[i].Label)
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		value := m.input.Value()
		if m.mode == modeEditTitle {
			m.planner.SetTitle(value)
		} else {
			m.report(m.planner.SetField(m.ctx, m.currentDay().Key, m.field, value), "")
		}
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ok
}

func (m Model) View() string {
	var left strings.Builder
	left.WriteString(titleStyle.Render("Cardápio da Semana"))
	left.WriteString("\n\n")

	for i, d := range m.planner.Days() {
		e := m.planner.Entry(d.Key)
		selected := i == m.cursor

		label := dayStyle.Render("  " + d.Label)
		if selected {
			label = selectedDayStyle.Render("> " + d.Label)
		}
		left.WriteString(label + "\n")

		for _, f := range []menu.Field{menu.Lunch, menu.Dinner} {
			line := fmt.Sprintf("    %s: ", f.Label())
			value := e.Get(f)

			switch {
			case selected && f == m.field && m.mode == modeEditField:
				left.WriteString(focusedStyle.Render(line) + m.input.View() + "\n")
				continue
			case value == "":
				value = mutedStyle.Render("(vazio)")
			}
			if selected && f == m.field {
				left.WriteString(focusedStyle.Render(line) + value + "\n")
			} else {
				left.WriteString(fieldStyle.Render(line) + value + "\n")
			}
		}
	}

	preview := previewStyle.Render(m.planner.ShareText())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left.String(), preview)

	var footer strings.Builder
	if m.mode == modeEditTitle {
		footer.WriteString("Título: " + m.input.View() + "\n")
	}
	if m.status != "" {
		footer.WriteString(statusStyle.Render(m.status) + "\n")
	}
	footer.WriteString(mutedStyle.Render(helpLine))

	return body + "\n\n" + footer.String()
}
