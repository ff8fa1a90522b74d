package config

import "time"

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port                   int `yaml:"port" validate:"gt=0,lte=65535"`
	ShutdownTimeoutSeconds int `yaml:"shutdownTimeoutSeconds" validate:"gte=0"`
	QueryRateLimit         int `yaml:"queryRateLimit" validate:"gte=0"`
}

// UpstreamConfig contains the arrivals API configuration
type UpstreamConfig struct {
	BaseURL        string `yaml:"baseURL" validate:"required,url"`
	TimeoutSeconds int    `yaml:"timeoutSeconds" validate:"gte=0"`
	FixturePath    string `yaml:"fixturePath"`
}

// RedisConfig contains the session store configuration
type RedisConfig struct {
	Address           string `yaml:"address" validate:"required_if=Enabled true"`
	Password          string `yaml:"password"`
	DB                int    `yaml:"db" validate:"gte=0"`
	Enabled           bool   `yaml:"enabled"`
	SessionTTLMinutes int    `yaml:"sessionTTLMinutes" validate:"gte=0"`
}

// BoardConfig contains display settings
type BoardConfig struct {
	Timezone string `yaml:"timezone" validate:"required,timezone"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Env      string         `yaml:"env" validate:"required,oneof=dev test prod"`
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Upstream UpstreamConfig `yaml:"upstream" validate:"required"`
	Redis    RedisConfig    `yaml:"redis"`
	Board    BoardConfig    `yaml:"board" validate:"required"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// UpstreamTimeout is zero when no timeout is configured.
func (c AppConfig) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

func (c AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.Redis.SessionTTLMinutes) * time.Minute
}

func (c AppConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// Location resolves the board timezone. Validation has already checked it.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Board.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
