package config

import (
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryURL string `env:"SENTRY_URL"`
	}
	Instagram struct {
		// APIDomain and WebDomain may carry an explicit scheme; https is
		// assumed when none is given.
		APIDomain string `env:"IG_API_DOMAIN" env-default:"i.instagram.com"`
		WebDomain string `env:"IG_WEB_DOMAIN" env-default:"www.instagram.com"`

		SessionID string `env:"IG_SESSION_ID"`
		DSUserID  string `env:"IG_DS_USER_ID"`
		CSRFToken string `env:"IG_CSRF_TOKEN"`

		MID      string `env:"IG_MID"`
		Datr     string `env:"IG_DATR"`
		DeviceID string `env:"IG_DID"`
		Rur      string `env:"IG_RUR"`

		// RequestJitter inserts a randomized delay before every upstream
		// call to reduce burst-pattern detectability.
		RequestJitter bool `env:"IG_REQUEST_JITTER" env-default:"true"`
	}
	Downloader struct {
		AllowedDomains []string `env:"ALLOWED_DOWNLOAD_DOMAINS" env-default:"instagram.com,cdninstagram.com,fbcdn.net,instagram.fcdn.net"`
	}
	RateLimit struct {
		RPS   float64 `env:"RATELIMIT_RPS" env-default:"0.5"`
		Burst int     `env:"RATELIMIT_BURST" env-default:"5"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// CredentialsConfigured reports whether the required Instagram session
// credentials are present.
func (c *Config) CredentialsConfigured() bool {
	return c.Instagram.SessionID != "" && c.Instagram.DSUserID != ""
}
