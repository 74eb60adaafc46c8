package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"menu-planner/internal/menu"
	"menu-planner/internal/metrics"
	"menu-planner/internal/planner"
	"menu-planner/internal/week"
)

const helpText = `Comandos:
/cardapio - mostra o cardápio
/almoco <dia> <prato> - define o almoço
/jantar <dia> <prato> - define o jantar
/inverter <dia> - troca almoço e jantar
/limpar [dia] - limpa um dia ou a semana
/exemplo - preenche com um exemplo
/inicio <dia> - escolhe o primeiro dia
/titulo <texto> - muda o título
/compartilhar - texto e link do WhatsApp
/sugerir - sugere pratos para os campos vazios`

// reply is what the bot answers to one message.
type reply struct {
	Text     string
	ShareURL string
}

// parseCommand splits "/almoco@MenuBot segunda Arroz" into "almoco" and its
// arguments.
func parseCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	head, args, _ := strings.Cut(text, " ")
	head, _, _ = strings.Cut(strings.TrimPrefix(head, "/"), "@")
	return strings.ToLower(head), strings.TrimSpace(args)
}

// execute runs one command against the user's planner.
func (b *Bot) execute(ctx context.Context, userID int64, text string) reply {
	cmd, args := parseCommand(text)

	if cmd == "status" {
		if userID != b.cfg.Telegram.AdminID {
			return reply{Text: "⛔ Acesso negado: somente administradores."}
		}
		return reply{Text: formatHealth(metrics.GetSysHealth(b.cfg.Storage.DataDir))}
	}

	var out reply
	err := b.planners.With(ctx, fmt.Sprintf("%d", userID), func(p *planner.Planner) error {
		var err error
		out, err = b.run(ctx, p, cmd, args)
		return err
	})
	if err != nil {
		return reply{Text: describeError(err)}
	}
	return out
}

func (b *Bot) run(ctx context.Context, p *planner.Planner, cmd, args string) (reply, error) {
	switch cmd {
	case "", "start", "ajuda", "help":
		return reply{Text: helpText}, nil

	case "cardapio":
		return reply{Text: p.ShareText()}, nil

	case "almoco", "jantar":
		field, _ := menu.ParseField(cmd)
		dayArg, value, _ := strings.Cut(args, " ")
		key, err := week.ParseKey(p.Catalog(), dayArg)
		if err != nil {
			return reply{}, err
		}
		if err := p.SetField(ctx, key, field, strings.TrimSpace(value)); err != nil {
			return reply{}, err
		}
		return reply{Text: p.ShareText()}, nil

	case "inverter":
		key, err := week.ParseKey(p.Catalog(), args)
		if err != nil {
			return reply{}, err
		}
		if err := p.SwapDay(ctx, key); err != nil {
			return reply{}, err
		}
		return reply{Text: p.ShareText()}, nil

	case "limpar":
		if args == "" {
			p.ClearAll(ctx)
			return reply{Text: "Cardápio limpo."}, nil
		}
		key, err := week.ParseKey(p.Catalog(), args)
		if err != nil {
			return reply{}, err
		}
		if err := p.ClearDay(ctx, key); err != nil {
			return reply{}, err
		}
		return reply{Text: p.ShareText()}, nil

	case "exemplo":
		p.FillExample(ctx)
		return reply{Text: "Exemplo aplicado.\n\n" + p.ShareText()}, nil

	case "inicio":
		key, err := week.ParseKey(p.Catalog(), args)
		if err != nil {
			return reply{}, err
		}
		if err := p.SetStartDay(key); err != nil {
			return reply{}, err
		}
		return reply{Text: p.ShareText()}, nil

	case "titulo":
		p.SetTitle(args)
		return reply{Text: p.ShareText()}, nil

	case "compartilhar":
		return reply{Text: p.ShareText(), ShareURL: p.ShareURL()}, nil

	case "sugerir":
		filled, err := p.Suggest(ctx)
		if err != nil {
			return reply{}, err
		}
		if filled == 0 {
			return reply{Text: "Nenhum campo vazio para sugerir."}, nil
		}
		return reply{Text: fmt.Sprintf("%d sugestões adicionadas.\n\n%s", filled, p.ShareText())}, nil
	}

	return reply{Text: "Comando desconhecido.\n\n" + helpText}, nil
}

func describeError(err error) string {
	switch {
	case errors.Is(err, week.ErrInvalidDayKey), errors.Is(err, menu.ErrUnknownDayKey):
		return "❌ Dia desconhecido. Use: segunda, terça, quarta, quinta, sexta, sábado ou domingo."
	case errors.Is(err, planner.ErrNoChef):
		return "❌ Sugestões não estão configuradas."
	}
	return fmt.Sprintf("❌ Erro: %v", err)
}

func formatHealth(h metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("🧠 Saúde do sistema\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", h.AllocMB, h.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", h.Goroutines))
	sb.WriteString(fmt.Sprintf("• Uptime: %s\n", h.Uptime))
	sb.WriteString(fmt.Sprintf("• Dados: %s", h.DataDiskSize))
	return sb.String()
}
