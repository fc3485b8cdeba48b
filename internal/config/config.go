package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza la configuración cargada del entorno.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	RateLimit      RateLimitConfig
	StateDir       string
	RedisURL       string
	StatusPort     int
	Polling        PollingConfig
}

// PollingConfig define las cadencias de refresco de cada vista.
type PollingConfig struct {
	Jobs      time.Duration
	Dashboard time.Duration
	Health    time.Duration
}

// RateLimitConfig representa límites simples para las llamadas salientes.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load carga variables de entorno y aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(getEnv("API_BASE_URL", "")), "/")
	if cfg.APIBaseURL == "" {
		return nil, errors.New("API_BASE_URL obligatoria")
	}

	timeout, err := parseDurationEnv("HTTP_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = timeout

	cfg.RateLimit = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}

	stateDir := strings.TrimSpace(getEnv("CONSOLA_STATE_DIR", ""))
	if stateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		stateDir = filepath.Join(base, "consola")
	}
	cfg.StateDir = stateDir

	cfg.RedisURL = strings.TrimSpace(getEnv("REDIS_URL", ""))

	portStr := getEnv("STATUS_PORT", "8990")
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 {
		return nil, errors.New("STATUS_PORT inválido")
	}
	cfg.StatusPort = port

	jobs, err := parseDurationEnv("POLL_JOBS", 15*time.Second)
	if err != nil {
		return nil, err
	}
	dashboard, err := parseDurationEnv("POLL_DASHBOARD", 30*time.Second)
	if err != nil {
		return nil, err
	}
	health, err := parseDurationEnv("POLL_HEALTH", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Polling = PollingConfig{Jobs: jobs, Dashboard: dashboard, Health: health}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
