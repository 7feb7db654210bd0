package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/elechka/internal/application"
	"github.com/eugenenazirov/elechka/internal/config"
)

const token = "42:integration"

type fakeAPI struct {
	polls atomic.Int32
	sent  chan map[string]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := strings.TrimPrefix(r.URL.Path, "/bot"+token+"/")
	body := map[string]any{}
	_ = json.NewDecoder(r.Body).Decode(&body)

	w.Header().Set("Content-Type", "application/json")
	switch method {
	case "getMe":
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"username":"elechka_bot"}}`))
	case "getUpdates":
		if f.polls.Add(1) == 1 {
			_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":100,"message":{"message_id":1,"chat":{"id":555},"text":"/start"}}]}`))
			return
		}
		select {
		case <-r.Context().Done():
		case <-time.After(50 * time.Millisecond):
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
	case "sendMessage":
		f.sent <- body
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":2,"chat":{"id":555}}}`))
	default:
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}
}

func TestBotRepliesWithResolvedGreeting(t *testing.T) {
	api := &fakeAPI{sent: make(chan map[string]any, 1)}
	srv := httptest.NewServer(api)
	defer srv.Close()

	envPath := filepath.Join(t.TempDir(), ".env")
	content := strings.Join([]string{
		"# bot settings",
		"token=\"" + token + "\"",
		"api_url=" + srv.URL,
		"poll_timeout=1s",
		"greeting=from file",
	}, "\n")
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	resolver := config.New([]string{"--greeting=Привет!"}, []string{envPath})
	settings, err := config.LoadSettings(resolver)
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if settings.Token != token {
		t.Fatalf("expected token from file, got %q", settings.Token)
	}

	app, err := application.New(settings, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("application.New returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	select {
	case body := <-api.sent:
		if body["text"] != "Привет!" {
			t.Fatalf("expected greeting from arguments, got %v", body["text"])
		}
		if chatID, _ := body["chat_id"].(float64); chatID != 555 {
			t.Fatalf("unexpected chat id %v", body["chat_id"])
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("expected a reply to /start")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("expected bot to stop after cancellation")
	}
}

func TestBotRejectsBadToken(t *testing.T) {
	srv := httptest.NewServer(&fakeAPI{sent: make(chan map[string]any, 1)})
	defer srv.Close()

	resolver := config.New([]string{"--token=wrong", "--api_url=" + srv.URL}, []string{""})
	settings, err := config.LoadSettings(resolver)
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}

	app, err := application.New(settings, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("application.New returned error: %v", err)
	}

	if err := app.Run(context.Background()); err == nil {
		t.Fatalf("expected identity lookup to fail for a rejected token")
	}
}
