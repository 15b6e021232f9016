package main

import (
	"log/slog"
	"os"

	"github.com/mirex-tools/jku2jams/cmd"
	"github.com/mirex-tools/jku2jams/internal/conf"
	"github.com/mirex-tools/jku2jams/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		logging.Init(slog.LevelInfo)
		logging.Fatal("error loading configuration", "error", err)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	if settings.Main.Log.Enabled {
		closeLog, err := logging.EnableFileOutput(settings.Main.Log.Path, level, logging.FileLoggerOptions{
			MaxSizeMB:  settings.Main.Log.MaxSize,
			MaxBackups: settings.Main.Log.MaxBackups,
			MaxAgeDays: settings.Main.Log.MaxAge,
		})
		if err != nil {
			logging.Fatal("error enabling log file output", "error", err)
		}
		defer func() {
			_ = closeLog()
		}()
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		logging.Error("command failed", "error", err)
		os.Exit(1)
	}
}
