package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings are the typed bot settings. Each env tag names a resolver key, so
// every field follows the usual argument > file > environment > default order.
type Settings struct {
	Token               string        `env:"token"`
	APIURL              string        `env:"api_url" envDefault:"https://api.telegram.org"`
	PollTimeout         time.Duration `env:"poll_timeout" envDefault:"30s"`
	SendRate            float64       `env:"send_rate" envDefault:"25"`
	SendBurst           int           `env:"send_burst" envDefault:"5"`
	LogLevel            string        `env:"log_level" envDefault:"info"`
	LogFormat           string        `env:"log_format" envDefault:"json"`
	ShutdownGracePeriod time.Duration `env:"shutdown_grace_period" envDefault:"5s"`
	Greeting            string        `env:"greeting" envDefault:"Привет, я Элечка, чем могу тебе помочь?"`
}

// LoadSettings resolves every Settings key through r and decodes the result.
// Keys resolving to an empty string keep their defaults.
func LoadSettings(r *Resolver) (Settings, error) {
	var settings Settings

	params, err := env.GetFieldParams(&settings)
	if err != nil {
		return Settings{}, fmt.Errorf("inspect settings: %w", err)
	}

	resolved := make(map[string]string, len(params))
	for _, param := range params {
		if value := r.Value(param.Key); value != "" {
			resolved[param.Key] = value
		}
	}

	if err := env.ParseWithOptions(&settings, env.Options{Environment: resolved}); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}
