package config

import (
	"os"
	"path/filepath"
)

// Server defaults
const SERVER_PORT = 8080
const SERVER_SHUTDOWN_TIMEOUT_SECONDS = 5

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0
const SESSION_TTL_MINUTES = 60

// Arrivelah API
const ARRIVELAH_ENDPOINT_BASE = "https://arrivelah2.busrouter.sg"
const ARRIVELAH_TIMEOUT_SECONDS = 10

// Board display
const DEFAULT_TIMEZONE = "Asia/Singapore"

// Rate limit on queries that reach the upstream, per client
const QUERY_RATE_LIMIT_PER_SECOND = 5

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const SERVICES_RESPONSE_RESOURCE = "services_response.json"

// CONFIG_PATH_ENV overrides the config file location.
const CONFIG_PATH_ENV = "BUS_ARRIVAL_CONFIG"
const DEFAULT_CONFIG_FILE = "config.yml"

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
