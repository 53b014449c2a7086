package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Flodesk FlodeskConfig `mapstructure:"flodesk" validate:"required"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// FlodeskConfig contains settings for the upstream Flodesk API.
type FlodeskConfig struct {
	BaseURL        string `mapstructure:"base_url"        validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1,lte=120"`
}

// CORSConfig controls which browser origins may call the proxy.
// AllowedOrigins are matched exactly; AllowedOriginSuffixes match any
// origin ending in the suffix (e.g. ".netlify.app" for preview deploys).
type CORSConfig struct {
	AllowedOrigins        []string `mapstructure:"allowed_origins"`
	AllowedOriginSuffixes []string `mapstructure:"allowed_origin_suffixes"`
}
