package telegram

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"menu-planner/internal/config"
	"menu-planner/internal/planner"
	"menu-planner/internal/storage"
)

// --- Mocks ---

type MockKV struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func (m *MockKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return v, nil
}

func (m *MockKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	return nil
}

type MockSender struct {
	Sent chan tgbotapi.Chattable
}

func (m *MockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.Sent <- c
	return tgbotapi.Message{}, nil
}

func newTestBot(kv *MockKV) (*Bot, *MockSender) {
	cfg := config.NewDefault()
	cfg.Telegram.AllowedUserIDs = []int64{42}
	cfg.Telegram.AdminID = 42
	cfg.Storage.DataDir = "."

	sender := &MockSender{Sent: make(chan tgbotapi.Chattable, 1)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Bot{
		api:      &tgbotapi.BotAPI{},
		sender:   sender,
		planners: planner.NewRegistry(kv, planner.WithLogger(logger)),
		cfg:      cfg,
		logger:   logger,
	}, sender
}

// --- Tests ---

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text     string
		wantCmd  string
		wantArgs string
	}{
		{"/cardapio", "cardapio", ""},
		{"/almoco@MenuBot segunda Arroz e feijão", "almoco", "segunda Arroz e feijão"},
		{"  /LIMPAR   terça ", "limpar", "terça"},
		{"oi", "", "oi"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cmd, args := parseCommand(tt.text)
			if cmd != tt.wantCmd || args != tt.wantArgs {
				t.Errorf("parseCommand(%q) = %q, %q; want %q, %q", tt.text, cmd, args, tt.wantCmd, tt.wantArgs)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	kv := &MockKV{Data: map[string][]byte{}}
	b, _ := newTestBot(kv)

	t.Run("EmptyMenu", func(t *testing.T) {
		got := b.execute(ctx, 42, "/cardapio")
		want := "Cardápio da Semana\n(Sem itens ainda)"
		if got.Text != want {
			t.Errorf("got %q, want %q", got.Text, want)
		}
	})

	t.Run("SetLunchWithAccentedDay", func(t *testing.T) {
		got := b.execute(ctx, 42, "/almoco terça Arroz e feijão")
		if !strings.Contains(got.Text, "Terça\n• Almoço: Arroz e feijão") {
			t.Errorf("unexpected reply: %q", got.Text)
		}
		if _, ok := kv.Data[storage.UserKey("42")]; !ok {
			t.Error("expected menu to be saved under the user's key")
		}
	})

	t.Run("Swap", func(t *testing.T) {
		got := b.execute(ctx, 42, "/inverter terca")
		if !strings.Contains(got.Text, "• Jantar: Arroz e feijão") {
			t.Errorf("unexpected reply: %q", got.Text)
		}
	})

	t.Run("UnknownDay", func(t *testing.T) {
		got := b.execute(ctx, 42, "/jantar feriado Pizza")
		if !strings.HasPrefix(got.Text, "❌ Dia desconhecido") {
			t.Errorf("unexpected reply: %q", got.Text)
		}
	})

	t.Run("StartDayAndTitle", func(t *testing.T) {
		b.execute(ctx, 42, "/exemplo")
		b.execute(ctx, 42, "/inicio domingo")
		got := b.execute(ctx, 42, "/titulo Semana 12")
		if !strings.HasPrefix(got.Text, "Semana 12\n\nDomingo\n") {
			t.Errorf("unexpected reply: %q", got.Text)
		}
	})

	t.Run("Share", func(t *testing.T) {
		got := b.execute(ctx, 42, "/compartilhar")
		if !strings.HasPrefix(got.ShareURL, "https://wa.me/?text=Semana%2012") {
			t.Errorf("unexpected share url: %q", got.ShareURL)
		}
	})

	t.Run("ClearAll", func(t *testing.T) {
		b.execute(ctx, 42, "/limpar")
		got := b.execute(ctx, 42, "/cardapio")
		if !strings.HasSuffix(got.Text, "(Sem itens ainda)") {
			t.Errorf("unexpected reply: %q", got.Text)
		}
	})

	t.Run("SuggestWithoutChef", func(t *testing.T) {
		got := b.execute(ctx, 42, "/sugerir")
		if got.Text != "❌ Sugestões não estão configuradas." {
			t.Errorf("unexpected reply: %q", got.Text)
		}
	})

	t.Run("StatusAdminOnly", func(t *testing.T) {
		got := b.execute(ctx, 7, "/status")
		if !strings.HasPrefix(got.Text, "⛔") {
			t.Errorf("expected access denied, got %q", got.Text)
		}
		got = b.execute(ctx, 42, "/status")
		if !strings.Contains(got.Text, "Goroutines") {
			t.Errorf("unexpected status reply: %q", got.Text)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		got := b.execute(ctx, 42, "/xyz")
		if !strings.HasPrefix(got.Text, "Comando desconhecido.") {
			t.Errorf("unexpected reply: %q", got.Text)
		}
	})
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage(1, reply{Text: "oi", ShareURL: "https://wa.me/?text=oi"})
	if msg.ParseMode != "" {
		t.Errorf("expected plain text, got parse mode %q", msg.ParseMode)
	}
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok || len(kb.InlineKeyboard) != 1 {
		t.Fatalf("expected a one-row inline keyboard, got %#v", msg.ReplyMarkup)
	}
	if btn := kb.InlineKeyboard[0][0]; btn.URL == nil || *btn.URL != "https://wa.me/?text=oi" {
		t.Errorf("unexpected button: %#v", btn)
	}

	if plain := buildMessage(1, reply{Text: "oi"}); plain.ReplyMarkup != nil {
		t.Errorf("expected no markup, got %#v", plain.ReplyMarkup)
	}
}

func TestHandleWebhook(t *testing.T) {
	post := func(b *Bot, body string) int {
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		rr := httptest.NewRecorder()
		b.handleWebhook(rr, req)
		return rr.Code
	}

	t.Run("AllowedUser", func(t *testing.T) {
		b, sender := newTestBot(&MockKV{Data: map[string][]byte{}})
		code := post(b, `{"update_id":1,"message":{"message_id":1,"from":{"id":42},"chat":{"id":99},"text":"/cardapio"}}`)
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		select {
		case c := <-sender.Sent:
			msg, ok := c.(tgbotapi.MessageConfig)
			if !ok || msg.ChatID != 99 {
				t.Errorf("unexpected message: %#v", c)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("no reply sent")
		}
	})

	t.Run("UnknownUserIgnored", func(t *testing.T) {
		b, sender := newTestBot(&MockKV{Data: map[string][]byte{}})
		code := post(b, `{"update_id":2,"message":{"message_id":1,"from":{"id":7},"chat":{"id":7},"text":"/cardapio"}}`)
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		select {
		case c := <-sender.Sent:
			t.Errorf("expected no reply, got %#v", c)
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("BadBody", func(t *testing.T) {
		b, _ := newTestBot(&MockKV{Data: map[string][]byte{}})
		if code := post(b, "not json"); code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", code)
		}
	})
}
