package tray

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"

	"tomata/internal/core/model"
)

type fakeTray struct {
	menus []*fyne.Menu
	icons []fyne.Resource
}

func (tray *fakeTray) SetSystemTrayMenu(menu *fyne.Menu)      { tray.menus = append(tray.menus, menu) }
func (tray *fakeTray) SetSystemTrayIcon(icon fyne.Resource)   { tray.icons = append(tray.icons, icon) }
func (tray *fakeTray) SetSystemTrayWindow(window fyne.Window) {}

var testIcons = Icons{
	Active: fyne.NewStaticResource("active", []byte("a")),
	Paused: fyne.NewStaticResource("paused", []byte("p")),
	Break:  fyne.NewStaticResource("break", []byte("b")),
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("menu item %q not found", label)
	return nil
}

func TestNew_InstallsMenuAndPausedIcon(t *testing.T) {
	app := &fakeTray{}
	New(app, testIcons, Callbacks{})

	if len(app.menus) != 1 {
		t.Fatalf("menus set = %d, want 1", len(app.menus))
	}
	if len(app.icons) != 1 || app.icons[0] != testIcons.Paused {
		t.Fatalf("icons = %v, want paused", app.icons)
	}
}

func TestUpdate(t *testing.T) {
	app := &fakeTray{}
	manager := New(app, testIcons, Callbacks{})

	manager.Update(model.PeriodWork, 90*time.Second, false)
	if got := manager.Status(); got != "Work 00:01:30" {
		t.Fatalf("status = %q", got)
	}
	findItem(t, manager.Menu(), "Pause")
	if last := app.icons[len(app.icons)-1]; last != testIcons.Active {
		t.Fatalf("icon = %v, want active", last)
	}

	manager.Update(model.PeriodShortBreak, time.Minute, false)
	if last := app.icons[len(app.icons)-1]; last != testIcons.Break {
		t.Fatalf("icon = %v, want break", last)
	}

	manager.Update(model.PeriodShortBreak, time.Minute, true)
	findItem(t, manager.Menu(), "Start")
	if got := manager.Status(); got != "Short break 00:01:00 (paused)" {
		t.Fatalf("status = %q", got)
	}
	if last := app.icons[len(app.icons)-1]; last != testIcons.Paused {
		t.Fatalf("icon = %v, want paused", last)
	}
}

func TestUpdate_SkipsUnchangedIcon(t *testing.T) {
	app := &fakeTray{}
	manager := New(app, testIcons, Callbacks{})

	manager.Update(model.PeriodWork, time.Minute, true)
	manager.Update(model.PeriodWork, 59*time.Second, true)
	if len(app.icons) != 1 {
		t.Fatalf("icon set %d times, want 1", len(app.icons))
	}
}

func TestCallbacks(t *testing.T) {
	var got []string
	record := func(name string) func() {
		return func() { got = append(got, name) }
	}
	manager := New(nil, testIcons, Callbacks{
		OnShow:        record("show"),
		OnPreferences: record("settings"),
		OnTogglePause: record("toggle"),
		OnSkip:        record("skip"),
		OnReset:       record("reset"),
		OnQuit:        record("quit"),
	})

	for _, label := range []string{"Start", "Skip", "Reset", "Show timer", "Settings", "Quit"} {
		findItem(t, manager.Menu(), label).Action()
	}
	want := []string{"toggle", "skip", "reset", "show", "settings", "quit"}
	if len(got) != len(want) {
		t.Fatalf("callbacks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("callbacks = %v, want %v", got, want)
		}
	}
}

func TestCallbacks_NilSafe(t *testing.T) {
	manager := New(nil, Icons{}, Callbacks{})
	for _, item := range manager.Menu().Items {
		if item.Action != nil {
			item.Action()
		}
	}
	manager.Update(model.PeriodLongBreak, 0, false)
}
