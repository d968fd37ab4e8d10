package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BOOKHAVEN_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"BOOKHAVEN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BOOKHAVEN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL        string        `envconfig:"BOOKHAVEN_API_BASE_URL" default:"http://localhost:3000"`
	RequestTimeout time.Duration `envconfig:"BOOKHAVEN_API_REQUEST_TIMEOUT" default:"30s"`
	LoginURL       string        `envconfig:"BOOKHAVEN_LOGIN_URL" default:"/login"`
}

type SessionConfig struct {
	// CredentialsPath points at the file holding the persisted token and
	// user snapshot. Empty means the platform default under the user
	// config dir.
	CredentialsPath string        `envconfig:"BOOKHAVEN_SESSION_FILE"`
	TTL             time.Duration `envconfig:"BOOKHAVEN_SESSION_TTL" default:"24h"`
}
