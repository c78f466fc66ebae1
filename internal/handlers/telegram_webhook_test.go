package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeTelegram records Bot API calls and answers like the real thing.
type fakeTelegram struct {
	mu    sync.Mutex
	calls []struct {
		method string
		body   map[string]any
	}
}

func (f *fakeTelegram) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(b, &body)

		parts := strings.Split(r.URL.Path, "/")
		method := parts[len(parts)-1]

		f.mu.Lock()
		f.calls = append(f.calls, struct {
			method string
			body   map[string]any
		}{method, body})
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	})
}

func (f *fakeTelegram) sent(method string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []map[string]any
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c.body)
		}
	}
	return out
}

func update(chat, from int64, text string) map[string]any {
	msg := map[string]any{
		"chat": map[string]any{"id": chat},
		"from": map[string]any{"id": from, "username": "u", "first_name": "F"},
	}
	if text != "" {
		msg["text"] = text
	}
	return map[string]any{"update_id": 1, "message": msg}
}

func TestWebhook_TextlessUpdateIsOK(t *testing.T) {
	tg := &fakeTelegram{}
	srv := httptest.NewServer(tg.handler())
	defer srv.Close()
	r := testRouter(t, testConfig(srv.URL))

	rec := postJSON(t, r, "/telegram-webhook", update(1, 1, ""), nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("want 200 ok, got %d %q", rec.Code, rec.Body.String())
	}
	if n := len(tg.sent("sendMessage")); n != 0 {
		t.Errorf("textless update triggered %d sends", n)
	}
}

func TestWebhook_DispatchesCommand(t *testing.T) {
	tg := &fakeTelegram{}
	srv := httptest.NewServer(tg.handler())
	defer srv.Close()
	r := testRouter(t, testConfig(srv.URL))

	rec := postJSON(t, r, "/telegram-webhook", update(42, 42, "/help"), nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("want 200 ok, got %d %q", rec.Code, rec.Body.String())
	}

	sends := tg.sent("sendMessage")
	if len(sends) != 1 {
		t.Fatalf("want 1 sendMessage, got %d", len(sends))
	}
	if got := sends[0]["chat_id"].(float64); got != 42 {
		t.Errorf("chat_id: want 42, got %v", got)
	}
	if text, _ := sends[0]["text"].(string); !strings.Contains(text, "/link CODE") {
		t.Errorf("reply text: %q", text)
	}
	if sends[0]["parse_mode"] != "HTML" {
		t.Errorf("parse_mode: %v", sends[0]["parse_mode"])
	}
}

// Logical command failures still answer 200 "ok"; the error reaches the user
// in-chat, never through the HTTP status (redelivery would mask it).
func TestWebhook_CommandFailureStillOK(t *testing.T) {
	tg := &fakeTelegram{}
	srv := httptest.NewServer(tg.handler())
	defer srv.Close()
	r := testRouter(t, testConfig(srv.URL))

	rec := postJSON(t, r, "/telegram-webhook", update(1, 1, "/link WRONG1"), nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("want 200 ok, got %d %q", rec.Code, rec.Body.String())
	}
	sends := tg.sent("sendMessage")
	if len(sends) != 1 {
		t.Fatalf("want 1 sendMessage, got %d", len(sends))
	}
	if text, _ := sends[0]["text"].(string); !strings.Contains(text, "invalid or expired") {
		t.Errorf("failure reply: %q", text)
	}
}

func TestWebhook_BadBodyIs500(t *testing.T) {
	r := testRouter(t, testConfig("http://unused"))

	req := httptest.NewRequest(http.MethodPost, "/telegram-webhook", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("undecodable body: want 500, got %d", rec.Code)
	}
}

func TestWebhook_Setup(t *testing.T) {
	tg := &fakeTelegram{}
	srv := httptest.NewServer(tg.handler())
	defer srv.Close()
	r := testRouter(t, testConfig(srv.URL))

	req := httptest.NewRequest(http.MethodGet, "/telegram-webhook?setup=true", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("setup: want 200, got %d", rec.Code)
	}
	// raw transport response is relayed as-is
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("setup response not relayed: %q", rec.Body.String())
	}

	hooks := tg.sent("setWebhook")
	if len(hooks) != 1 {
		t.Fatalf("want 1 setWebhook call, got %d", len(hooks))
	}
	if got := hooks[0]["url"]; got != "https://portal.example.com/telegram-webhook" {
		t.Errorf("webhook url: %v", got)
	}
}
