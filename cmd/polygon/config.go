package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/oliverbestmann/polygon/glimpse"
	"github.com/oliverbestmann/polygon/host"
)

type config struct {
	LogLevel  slog.Level
	LogFormat string

	WGPULogLevel string

	Window glimpse.WindowOptions
	Host   host.Options
}

// loadDotEnv loads environment variables from a .env file in the working
// directory, if there is one. Variables already set in the environment win.
func loadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func configFromEnv() (config, error) {
	conf := config{
		LogFormat:    "text",
		WGPULogLevel: os.Getenv("WGPU_LOG_LEVEL"),
		Window: glimpse.WindowOptions{
			Width:  800,
			Height: 600,
			Title:  "polygon",
		},
	}

	if value := os.Getenv("POLYGON_LOG_LEVEL"); value != "" {
		if err := conf.LogLevel.UnmarshalText([]byte(value)); err != nil {
			return conf, fmt.Errorf("parse POLYGON_LOG_LEVEL: %w", err)
		}
	}

	if value := os.Getenv("POLYGON_LOG_FORMAT"); value != "" {
		value = strings.ToLower(value)
		if value != "text" && value != "json" {
			return conf, fmt.Errorf("parse POLYGON_LOG_FORMAT: unknown format %q", value)
		}

		conf.LogFormat = value
	}

	var err error

	if conf.Window.Width, err = intFromEnv("POLYGON_WIDTH", conf.Window.Width); err != nil {
		return conf, err
	}

	if conf.Window.Height, err = intFromEnv("POLYGON_HEIGHT", conf.Window.Height); err != nil {
		return conf, err
	}

	if title := os.Getenv("POLYGON_TITLE"); title != "" {
		conf.Window.Title = title
	}

	conf.Window.Profile = os.Getenv("POLYGON_PROFILE") == "1"
	conf.Host.ForceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

	return conf, nil
}

func intFromEnv(name string, fallback int) (int, error) {
	value := os.Getenv(name)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("parse %s: %w", name, err)
	}

	if parsed <= 0 {
		return fallback, fmt.Errorf("parse %s: must be positive, got %d", name, parsed)
	}

	return parsed, nil
}

func (conf config) logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: conf.LogLevel}

	if conf.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
