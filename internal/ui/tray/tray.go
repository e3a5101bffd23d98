package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "Time Tracker"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStartTask   func()
	OnStopTask    func()
	OnShowTasks   func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	stopItem    *fyne.MenuItem
	tasksItem   *fyne.MenuItem
	prefsItem   *fyne.MenuItem
	quitItem    *fyne.MenuItem
	callbacks   Callbacks
	showStatus  bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		showStatus:  true,
		statusLabel: "No active task",
	}

	manager.statusItem = fyne.NewMenuItem(manager.statusLabel, nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start task timer", func() {
		if manager.callbacks.OnStartTask != nil {
			manager.callbacks.OnStartTask()
		}
	})

	manager.stopItem = fyne.NewMenuItem("Stop active task timer", func() {
		if manager.callbacks.OnStopTask != nil {
			manager.callbacks.OnStopTask()
		}
	})
	manager.stopItem.Disabled = true

	manager.tasksItem = fyne.NewMenuItem("Task times", func() {
		if manager.callbacks.OnShowTasks != nil {
			manager.callbacks.OnShowTasks()
		}
	})

	manager.prefsItem = fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	manager.quitItem = fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	manager.quitItem.IsQuit = true

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetActive toggles the stop action.
func (manager *Manager) SetActive(active bool) {
	manager.stopItem.Disabled = !active
	manager.refreshMenu()
}

// SetShowStatus hides or shows the status line.
func (manager *Manager) SetShowStatus(show bool) {
	manager.showStatus = show
	manager.refreshMenu()
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = manager.statusLabel
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	items := make([]*fyne.MenuItem, 0, 7)
	if manager.showStatus {
		items = append(items, manager.statusItem, fyne.NewMenuItemSeparator())
	}
	items = append(items,
		manager.startItem,
		manager.stopItem,
		manager.tasksItem,
		manager.prefsItem,
		manager.quitItem,
	)
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle, items...))
}
