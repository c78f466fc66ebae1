package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mozhnovpn/portal/internal/bot"
	"github.com/mozhnovpn/portal/internal/config"
)

// TelegramWebhook consumes inbound transport updates. Command failures are
// reported to the user in-chat, never via the HTTP status: anything but 200
// here makes Telegram redeliver the update.
//
// ?setup=true is the administrative one-shot that registers this endpoint's
// own URL as the webhook target and relays the raw transport response.
func TelegramWebhook(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := bot.NewClient(cfg.TelegramAPIURL, cfg.BotToken)

		if r.URL.Query().Get("setup") == "true" {
			body, err := client.SetWebhook(cfg.PublicBaseURL + "/telegram-webhook")
			if err != nil {
				log.Printf("webhook setup: %v", err)
				http.Error(w, "error", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(body)
			return
		}

		defer r.Body.Close()
		var up bot.Update
		if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
			http.Error(w, "error", http.StatusInternalServerError)
			return
		}
		bot.NewDispatcher(client, cfg.SiteURL, cfg.BotUsername).Handle(&up)
		_, _ = w.Write([]byte("ok"))
	}
}
