package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default returns the configuration used when no file is present.
func Default() AppConfig {
	return AppConfig{
		Env: "dev",
		Server: ServerConfig{
			Port:                   SERVER_PORT,
			ShutdownTimeoutSeconds: SERVER_SHUTDOWN_TIMEOUT_SECONDS,
			QueryRateLimit:         QUERY_RATE_LIMIT_PER_SECOND,
		},
		Upstream: UpstreamConfig{
			BaseURL:        ARRIVELAH_ENDPOINT_BASE,
			TimeoutSeconds: ARRIVELAH_TIMEOUT_SECONDS,
			FixturePath:    GetResourcePath(SERVICES_RESPONSE_RESOURCE),
		},
		Redis: RedisConfig{
			Address:           REDIS_DB_ADDRESS,
			Password:          REDIS_DB_PASSWORD,
			DB:                REDIS_DB,
			SessionTTLMinutes: SESSION_TTL_MINUTES,
		},
		Board:   BoardConfig{Timezone: DEFAULT_TIMEZONE},
		Logging: LoggingConfig{Level: "info"},
	}
}

// ResolvePath picks the explicit path, then $BUS_ARRIVAL_CONFIG, then config.yml.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(CONFIG_PATH_ENV); p != "" {
		return p
	}
	return DEFAULT_CONFIG_FILE
}

// Load reads the YAML file at path over the defaults and validates the
// result. A missing file is not an error unless the path was given explicitly.
func Load(path string, explicit bool) (AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("failed to parse config %q: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return AppConfig{}, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
