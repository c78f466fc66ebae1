package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is loaded once in main and handed to the router, handlers and bot
// explicitly; nothing below internal/config reads the environment.
type Config struct {
	Addr           string `envconfig:"ADDR" default:":8080"`
	DBPath         string `envconfig:"DB_PATH" default:"mozhnovpn.db"`
	JWTSecret      string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	BotToken       string `envconfig:"TELEGRAM_BOT_TOKEN"`
	BotUsername    string `envconfig:"TELEGRAM_BOT_USERNAME" default:"MozhnoVPN_bot"`
	TelegramAPIURL string `envconfig:"TELEGRAM_API_URL" default:"https://api.telegram.org"`
	PublicBaseURL  string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
	SiteURL        string `envconfig:"SITE_URL" default:"https://mozhnovpn.app"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("vpn", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
