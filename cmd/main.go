package main

import (
	"fmt"
	"log"

	"timetracker/internal/core/model"
	"timetracker/internal/core/refresh"
	"timetracker/internal/core/tracker"
	"timetracker/internal/platform"
	"timetracker/internal/storage"
	"timetracker/internal/ui/format"
	"timetracker/internal/ui/preferences"
	"timetracker/internal/ui/prefwindow"
	"timetracker/internal/ui/starttask"
	"timetracker/internal/ui/tasklist"
	"timetracker/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	appName      = "timetracker"
	appTitle     = "Time Tracker"
	noActiveTask = "No active task"
)

func main() {
	instance, err := platform.ClaimInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = instance.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	dataPath, err := storage.DataPath(appName)
	if err != nil {
		log.Printf("data path: %v", err)
		return
	}
	snapshot, err := storage.LoadSnapshot(dataPath)
	if err != nil {
		log.Printf("load tasks: %v", err)
	}

	store := tracker.New(snapshot, tracker.Config{})
	writer := storage.NewWriter(dataPath)
	defer writer.Close()
	store.Subscribe(writer.Observe)

	refresher := refresh.New(store, settings.RefreshConfig())
	refresher.SetIdleChecker(platform.NewIdleChecker())

	fyneApp := app.NewWithID("dev.timetracker.app")
	fyneApp.SetIcon(theme.HistoryIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow(appTitle)
	trayWindow.SetContent(widget.NewLabel("Time Tracker is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	notify := func(message string) {
		fyneApp.SendNotification(fyne.NewNotification(appTitle, message))
	}

	stopActive := func() {
		if name, stopped := store.StopActive(); stopped {
			notify(fmt.Sprintf("Timer stopped for %s", name))
		}
	}

	taskList := tasklist.New(fyneApp, tasklist.Actions{
		OnResume: func(name string) {
			store.Start(name, "")
		},
		OnStop: stopActive,
		OnReset: func(name string) {
			store.Reset(name)
		},
		OnDelete: func(name string) {
			store.Delete(name)
		},
		OnRename: func(oldName, newName string) {
			store.Update(oldName, tracker.TaskPatch{Name: &newName})
		},
	}, settings.TaskListFormat)
	store.Subscribe(func(snapshot model.Snapshot) {
		fyne.Do(func() {
			taskList.Update(snapshot, store.Now())
		})
	})

	startWindow := starttask.New(fyneApp, store, func(name, description string) {
		store.Start(name, description)
		notify(fmt.Sprintf("Timer started for %s", name))
		if settings.ShowListOnStart {
			taskList.Show()
		}
	}, stopActive)

	var trayManager *tray.Manager
	prefsWindow := prefwindow.New(fyneApp, settings, func(updated preferences.Settings) {
		if updated.LaunchAtLogin != settings.LaunchAtLogin {
			if err := platform.SyncAutostart(platform.NewService(), appName, updated.LaunchAtLogin); err != nil {
				log.Printf("autostart: %v", err)
			}
		}
		settings = updated
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.Printf("save settings: %v", err)
		}
		refresher.UpdateConfig(settings.RefreshConfig())
		taskList.SetLayout(settings.TaskListFormat)
		taskList.Tick(store.Now())
		trayManager.SetShowStatus(settings.ShowInStatusBar)
	})

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnStartTask: func() {
			startWindow.Show()
		},
		OnStopTask: stopActive,
		OnShowTasks: func() {
			taskList.Show()
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnQuit: func() {
			refresher.Stop()
			fyneApp.Quit()
		},
	})
	trayManager.SetShowStatus(settings.ShowInStatusBar)

	events := refresher.Subscribe(5)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				handleEvent(event, settings.StatusBarFormat, trayManager, taskList, notify)
			})
		}
	}()

	fyneApp.Lifecycle().SetOnStarted(func() {
		taskList.Update(store.Snapshot(), store.Now())
		refresher.Start()
	})
	fyneApp.Run()
	refresher.Stop()
}

func handleEvent(event refresh.Event, statusFormat string, trayManager *tray.Manager, taskList *tasklist.Window, notify func(string)) {
	switch event.Type {
	case refresh.EventStateChange, refresh.EventProgress:
		trayManager.SetActive(event.Active())
		trayManager.SetStatus(statusLine(event, statusFormat))
		if event.Type == refresh.EventProgress {
			taskList.Tick(event.At)
		}
	case refresh.EventIdleStop:
		notify(fmt.Sprintf("Timer stopped for %s after inactivity", event.TaskName))
	case refresh.EventIdleError:
		log.Printf("idle detection: %s", event.Message)
	}
}

func statusLine(event refresh.Event, statusFormat string) string {
	if !event.Active() {
		return noActiveTask
	}
	return fmt.Sprintf("%s: %s", event.TaskName, format.Duration(event.Elapsed, statusFormat))
}
