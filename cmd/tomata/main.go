package main

import (
	"errors"
	"flag"
	"log"

	"tomata/internal/audio"
	"tomata/internal/config"
	"tomata/internal/core/model"
	"tomata/internal/core/timekeeper"
	"tomata/internal/notify"
	"tomata/internal/platform"
	"tomata/internal/storage"
	"tomata/internal/ui/preferences"
	"tomata/internal/ui/timerview"
	"tomata/internal/ui/tray"
	"tomata/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appID = "io.tomata.app"

func main() {
	configPath := flag.String("config", "", "path to config.toml (default: user config dir)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.LogPath != "" {
		logFile, err := platform.OpenLogFile(cfg.LogPath)
		if err != nil {
			log.Printf("log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	guard, err := platform.AcquireSingleInstance(config.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("already running, asked the other instance to show itself")
		} else {
			log.Printf("single instance: %v", err)
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadOrCreate(cfg.SettingsPath)
	if err != nil {
		log.Printf("settings: %v", err)
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))

	beeper := audio.NewBeeper()
	keeper := timekeeper.New(settings, timekeeper.Config{
		TickInterval:      cfg.TickInterval,
		EndingAlertWindow: cfg.EndingAlertWindow,
	})
	keeper.SetNotifier(notify.NewDesktop(fyneApp))
	keeper.SetAlerter(beeper)

	prefsWindow := preferences.New(fyneApp, settings, func(updated model.Settings) error {
		if err := storage.SaveSettings(cfg.SettingsPath, updated); err != nil {
			log.Printf("save settings: %v", err)
			return err
		}
		keeper.UpdateSettings(updated)
		return nil
	}, beeper.RequestAlert)

	mainWindow := fyneApp.NewWindow("Tomata")
	mainWindow.SetMaster()
	view := timerview.New(keeper, prefsWindow.Show)
	mainWindow.SetContent(view.Content())
	mainWindow.Resize(fyne.NewSize(380, 320))

	showMain := func() {
		mainWindow.Show()
		mainWindow.RequestFocus()
	}

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Icons{
			Active: resources.MustIcon(resources.IconActive),
			Paused: resources.MustIcon(resources.IconPaused),
			Break:  resources.MustIcon(resources.IconBreak),
		}, tray.Callbacks{
			OnShow:        showMain,
			OnPreferences: prefsWindow.Show,
			OnTogglePause: func() {
				keeper.TogglePause()
			},
			OnSkip:  keeper.Skip,
			OnReset: keeper.Reset,
			OnQuit: func() {
				keeper.Stop()
				fyneApp.Quit()
			},
		})
		mainWindow.SetCloseIntercept(func() {
			mainWindow.Hide()
		})
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	guard.Serve(func() {
		fyne.Do(showMain)
	})

	refresh := func() {
		view.Refresh()
		if trayManager != nil {
			state := keeper.Snapshot()
			trayManager.Update(state.Period(), state.RemainingTime(), state.IsPaused())
		}
	}

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			if event.Type == timekeeper.EventPeriodEnding {
				log.Printf("%s ends in %s", event.Period, event.Remaining)
				continue
			}
			fyne.Do(refresh)
		}
	}()

	keeper.Start()
	defer keeper.Stop()

	refresh()
	mainWindow.Show()
	fyneApp.Run()
}
