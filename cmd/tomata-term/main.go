package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"tomata/internal/audio"
	"tomata/internal/config"
	"tomata/internal/core/model"
	"tomata/internal/core/timekeeper"
	"tomata/internal/platform"
	"tomata/internal/storage"
	"tomata/internal/ui/term"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (default: user config dir)")
	mute := flag.Bool("mute", false, "never play the period-ending beep")
	flag.Parse()

	if err := run(*configPath, *mute); err != nil {
		fmt.Fprintf(os.Stderr, "tomata-term: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, mute bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if cfg.LogPath != "" {
		logFile, err := platform.OpenLogFile(cfg.LogPath)
		if err != nil {
			return err
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	settings, err := storage.LoadOrCreate(cfg.SettingsPath)
	if err != nil {
		log.Printf("settings: %v", err)
	}

	var alerter timekeeper.Alerter = audio.NewBeeper()
	if mute {
		alerter = audio.Silent{}
	}

	return term.Run(term.Options{
		Settings:          settings,
		TickInterval:      cfg.TickInterval,
		EndingAlertWindow: cfg.EndingAlertWindow,
		Alerter:           alerter,
		Save: func(updated model.Settings) error {
			return storage.SaveSettings(cfg.SettingsPath, updated)
		},
	})
}
