package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"menu-planner/internal/clipper"
	"menu-planner/internal/config"
	"menu-planner/internal/menu"
	"menu-planner/internal/week"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.NewDefault()
	cfg.Storage.Backend = backend
	cfg.Storage.DataDir = t.TempDir()
	cfg.Storage.DatabasePath = filepath.Join(t.TempDir(), "menu.db")
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestPlannerPersists(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			a := newTestApp(t, testConfig(t, backend))

			p, err := a.Planner(ctx)
			if err != nil {
				t.Fatalf("Planner: %v", err)
			}
			if err := p.SetField(ctx, "sexta", menu.Dinner, "Pizza"); err != nil {
				t.Fatalf("SetField: %v", err)
			}

			reopened, err := a.Planner(ctx)
			if err != nil {
				t.Fatalf("Planner: %v", err)
			}
			if got := reopened.Entry("sexta").Dinner; got != "Pizza" {
				t.Errorf("reopened dinner = %q, want Pizza", got)
			}
		})
	}
}

func TestPlannerUsesConfiguredDefaults(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	cfg.App.Title = "Semana da Ana"
	cfg.App.StartDay = "domingo"
	a := newTestApp(t, cfg)

	p, err := a.Planner(context.Background())
	if err != nil {
		t.Fatalf("Planner: %v", err)
	}
	if p.Title() != "Semana da Ana" || p.Days()[0].Key != "domingo" {
		t.Errorf("title = %q, first day = %q", p.Title(), p.Days()[0].Key)
	}
}

func TestImportURL(t *testing.T) {
	days := week.DefaultDays()
	want := menu.Empty(days)
	want, _ = menu.SetField(want, "quarta", menu.Lunch, "Peixe assado")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><body>" + clipper.RenderHTML(days, want) + "</body></html>"))
	}))
	defer ts.Close()

	ctx := context.Background()
	a := newTestApp(t, testConfig(t, config.BackendFile))
	p, _ := a.Planner(ctx)
	p.FillExample(ctx)

	if err := a.Import(ctx, p, ts.URL); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if diff := cmp.Diff(want, p.Menu()); diff != "" {
		t.Errorf("menu mismatch (-want +got):\n%s", diff)
	}
}

func TestPublishRequiresGhost(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, testConfig(t, config.BackendFile))
	p, _ := a.Planner(ctx)
	if _, err := a.Publish(ctx, p); err == nil {
		t.Error("expected an error without Ghost settings")
	}
}

func TestWatchUnsupportedOnSQLite(t *testing.T) {
	a := newTestApp(t, testConfig(t, config.BackendSQLite))
	if err := a.Watch(context.Background(), io.Discard); !errors.Is(err, ErrWatchUnsupported) {
		t.Errorf("expected ErrWatchUnsupported, got %v", err)
	}
}

func TestSuggestDisabledWithoutKeys(t *testing.T) {
	a := newTestApp(t, testConfig(t, config.BackendFile))
	if a.chef != nil {
		t.Fatal("expected no chef without API keys")
	}
}
