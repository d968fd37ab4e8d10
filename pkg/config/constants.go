package config

const (
	EnvPrefix = "BOOKHAVEN"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv      = "BOOKHAVEN_APP_ENV"
	EnvAPIBaseURL  = "BOOKHAVEN_API_BASE_URL"
	EnvSessionFile = "BOOKHAVEN_SESSION_FILE"
	EnvSessionTTL  = "BOOKHAVEN_SESSION_TTL"
)
