package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/mozhnovpn/portal/internal/config"
	"github.com/mozhnovpn/portal/internal/db"
	"github.com/mozhnovpn/portal/internal/models"
	"github.com/mozhnovpn/portal/internal/services"
)

// GET /qr/{code}.png — QR of the site referral link for an existing code
func QR(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if code == "" {
			http.NotFound(w, r)
			return
		}
		var p models.Profile
		if err := db.Conn().Where("referral_code = ?", code).First(&p).Error; err != nil {
			http.NotFound(w, r)
			return
		}

		site, _ := services.ReferralLinks(cfg.SiteURL, cfg.BotUsername, p.ReferralCode)
		png, err := qrcode.Encode(site, qrcode.Medium, 256)
		if err != nil {
			http.Error(w, "failed to generate qr", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
