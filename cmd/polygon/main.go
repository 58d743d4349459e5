package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/oliverbestmann/polygon/glimpse/desktop"
	"github.com/oliverbestmann/polygon/host"
	"github.com/oliverbestmann/polygon/pulse"
)

func init() {
	// glfw and the surface must be driven by the main thread
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		slog.Error("Render loop failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	if err := loadDotEnv(); err != nil {
		return fmt.Errorf("load .env file: %w", err)
	}

	conf, err := configFromEnv()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.SetDefault(conf.logger(os.Stderr))

	if err := pulse.SetLogLevel(conf.WGPULogLevel); err != nil {
		return err
	}

	// create a new window
	win, err := desktop.NewWindow(conf.Window)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	// runs after host.Run released the surface
	defer win.Terminate()

	return host.Run(win, conf.Host)
}
