package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// Environment variables read by ServerFromEnv.
const (
	EnvListen          = "ETHQR_LISTEN"
	EnvLogLevel        = "ETHQR_LOG_LEVEL"
	EnvConcurrency     = "ETHQR_CONCURRENCY"
	EnvShutdownTimeout = "ETHQR_SHUTDOWN_TIMEOUT"
)

// Server configures the HTTP API.
type Server struct {
	Listen          string
	LogLevel        zapcore.Level
	Concurrency     int
	ShutdownTimeout time.Duration
}

func defaultServer() Server {
	return Server{
		Listen:          ":8080",
		LogLevel:        zapcore.InfoLevel,
		Concurrency:     4,
		ShutdownTimeout: 10 * time.Second,
	}
}

// ServerFromEnv loads envFile when it exists and reads the server settings
// from the environment. Variables already set take precedence over the file.
func ServerFromEnv(envFile string) (Server, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Server{}, errors.Wrapf(err, "load %s", envFile)
		}
	}
	cfg := defaultServer()
	if v := strings.TrimSpace(os.Getenv(EnvListen)); v != "" {
		cfg.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		lvl, err := zapcore.ParseLevel(v)
		if err != nil {
			return Server{}, errors.Wrapf(err, "%s", EnvLogLevel)
		}
		cfg.LogLevel = lvl
	}
	if v := strings.TrimSpace(os.Getenv(EnvConcurrency)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Server{}, errors.Errorf("%s must be a positive integer, got %q", EnvConcurrency, v)
		}
		cfg.Concurrency = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvShutdownTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Server{}, errors.Wrapf(err, "%s", EnvShutdownTimeout)
		}
		cfg.ShutdownTimeout = d
	}
	return cfg, nil
}
