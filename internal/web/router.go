package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mozhnovpn/portal/internal/config"
	"github.com/mozhnovpn/portal/internal/handlers"
)

func Router(cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The SPA calls these cross-origin; preflights get an empty 200.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
	}))

	r.Get("/healthz", handlers.Health)

	r.Post("/auth/signup", handlers.Signup(cfg))
	r.Post("/auth/login", handlers.Login(cfg))

	r.With(handlers.RequireAuth(cfg.JWTSecret)).
		Post("/generate-link-code", handlers.GenerateLinkCode)

	// GET is only meaningful with ?setup=true; Telegram itself POSTs.
	r.Get("/telegram-webhook", handlers.TelegramWebhook(cfg))
	r.Post("/telegram-webhook", handlers.TelegramWebhook(cfg))

	r.Get("/qr/{code}.png", handlers.QR(cfg))

	return r
}
