package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/mozhnovpn/portal/internal/config"
	"github.com/mozhnovpn/portal/internal/db"
	"github.com/mozhnovpn/portal/internal/web"
)

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		BotToken:       "TEST",
		BotUsername:    "MozhnoVPN_bot",
		TelegramAPIURL: apiURL,
		PublicBaseURL:  "https://portal.example.com",
		SiteURL:        "https://mozhnovpn.app",
	}
}

func testRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	if err := db.Init(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("db init: %v", err)
	}
	return web.Router(cfg)
}

func postJSON(t *testing.T, r http.Handler, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	out := map[string]string{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

// signupToken registers an account through the real endpoint and returns the
// bearer token plus referral code.
func signupToken(t *testing.T, r http.Handler, identifier string) (string, string) {
	t.Helper()
	rec := postJSON(t, r, "/auth/signup", map[string]string{
		"identifier": identifier,
		"password":   "secret1",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("signup: %d %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	return body["token"], body["referral_code"]
}
