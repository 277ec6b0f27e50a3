package config

// Environment variable names
const (
	EnvPort            = "PORT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvLogFormat       = "LOG_FORMAT"
	EnvEnvironment     = "ENV"
	EnvStorageBackend  = "STORAGE_BACKEND"
	EnvDBUser          = "DB_USER"
	EnvDBPassword      = "DB_PASSWORD"
	EnvDBHost          = "DB_HOST"
	EnvDBPort          = "DB_PORT"
	EnvDBName          = "DB_NAME"
	EnvAPIKey          = "API_KEY"
	EnvTrustedProxies  = "TRUSTED_PROXIES"
	EnvExpiresSoonDays = "EXPIRES_SOON_DAYS"
)
