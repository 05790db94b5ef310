package tray

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"tomata/internal/core/model"
	"tomata/internal/ui/display"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnTogglePause func()
	OnSkip        func()
	OnReset       func()
	OnQuit        func()
}

// Icons are the tray icons for each timer mode.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
	Break  fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	icons      Icons
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	menu       *fyne.Menu
	icon       fyne.Resource
	paused     bool
	period     model.Period
}

// New creates a tray manager with the provided callbacks. A nil app keeps the
// menu in memory only.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		icons:     icons,
		callbacks: callbacks,
		paused:    true,
		period:    model.PeriodWork,
	}

	manager.statusItem = fyne.NewMenuItem("Starting...", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Start", func() {
		call(manager.callbacks.OnTogglePause)
	})

	manager.menu = fyne.NewMenu("Tomata",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.pauseItem,
		fyne.NewMenuItem("Skip", func() {
			call(manager.callbacks.OnSkip)
		}),
		fyne.NewMenuItem("Reset", func() {
			call(manager.callbacks.OnReset)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", func() {
			call(manager.callbacks.OnShow)
		}),
		fyne.NewMenuItem("Settings", func() {
			call(manager.callbacks.OnPreferences)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			call(manager.callbacks.OnQuit)
		}),
	)
	manager.refreshMenu()
	manager.refreshIcon()

	return manager
}

// Update reflects the timer state in the menu and icon.
func (manager *Manager) Update(period model.Period, remaining time.Duration, paused bool) {
	manager.period = period
	manager.paused = paused
	manager.statusItem.Label = display.Status(period, remaining, paused)
	if paused {
		manager.pauseItem.Label = "Start"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshMenu()
	manager.refreshIcon()
}

// Status returns the status line shown at the top of the menu.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// Menu returns the tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

func (manager *Manager) refreshIcon() {
	icon := manager.icons.Active
	switch {
	case manager.paused:
		icon = manager.icons.Paused
	case manager.period.IsBreak():
		icon = manager.icons.Break
	}
	if icon == nil || icon == manager.icon {
		return
	}
	manager.icon = icon
	if manager.app != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
