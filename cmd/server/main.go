package main

import (
	"log"
	"net/http"

	"github.com/mozhnovpn/portal/internal/config"
	"github.com/mozhnovpn/portal/internal/db"
	"github.com/mozhnovpn/portal/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := db.Init(cfg.DBPath); err != nil {
		log.Fatalf("db init: %v", err)
	}

	r := web.Router(cfg)

	log.Printf("MozhnoVPN portal listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
