package prefwindow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"timetracker/internal/ui/format"
	"timetracker/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window          fyne.Window
	settings        preferences.Settings
	onSave          func(preferences.Settings)
	updateInterval  *widget.Entry
	showInStatusBar *widget.Check
	statusBarFormat *widget.Entry
	taskListFormat  *widget.Entry
	showListOnStart *widget.Check
	idleStop        *widget.Check
	idleStopAfter   *widget.Entry
	launchAtLogin   *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings preferences.Settings, onSave func(preferences.Settings)) *Window {
	window := app.NewWindow("Time Tracker Settings")

	updateInterval := widget.NewEntry()
	statusBarFormat := widget.NewEntry()
	taskListFormat := widget.NewEntry()
	idleStopAfter := widget.NewEntry()

	showInStatusBar := widget.NewCheck("Show active task in tray status", nil)
	showListOnStart := widget.NewCheck("Show task list when a timer starts", nil)
	idleStop := widget.NewCheck("Stop the timer when idle", nil)
	launchAtLogin := widget.NewCheck("Launch at login", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Refresh every"), updateInterval, widget.NewLabel("sec")),
		showInStatusBar,
		container.NewHBox(widget.NewLabel("Status format"), statusBarFormat),
		container.NewHBox(widget.NewLabel("Task list format"), taskListFormat),
		showListOnStart,
		widget.NewLabelWithStyle("Idle", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		idleStop,
		container.NewHBox(widget.NewLabel("Idle after"), idleStopAfter, widget.NewLabel("min")),
		launchAtLogin,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 420))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:          window,
		onSave:          onSave,
		updateInterval:  updateInterval,
		showInStatusBar: showInStatusBar,
		statusBarFormat: statusBarFormat,
		taskListFormat:  taskListFormat,
		showListOnStart: showListOnStart,
		idleStop:        idleStop,
		idleStopAfter:   idleStopAfter,
		launchAtLogin:   launchAtLogin,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		prefs.UpdateSettings(prefs.settings)
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings preferences.Settings) {
	prefs.settings = settings
	prefs.updateInterval.SetText(fmt.Sprintf("%d", int(settings.UpdateInterval.Seconds())))
	prefs.showInStatusBar.SetChecked(settings.ShowInStatusBar)
	prefs.statusBarFormat.SetText(settings.StatusBarFormat)
	prefs.taskListFormat.SetText(settings.TaskListFormat)
	prefs.showListOnStart.SetChecked(settings.ShowListOnStart)
	prefs.idleStop.SetChecked(settings.IdleStopEnabled)
	prefs.idleStopAfter.SetText(fmt.Sprintf("%d", int(settings.IdleStopAfter.Minutes())))
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if seconds, ok := parsePositiveInt(prefs.updateInterval.Text); ok {
		settings.UpdateInterval = time.Duration(seconds) * time.Second
	}
	if minutes, ok := parsePositiveInt(prefs.idleStopAfter.Text); ok {
		settings.IdleStopAfter = time.Duration(minutes) * time.Minute
	}
	if value := strings.TrimSpace(prefs.statusBarFormat.Text); format.Valid(value) {
		settings.StatusBarFormat = value
	}
	if value := strings.TrimSpace(prefs.taskListFormat.Text); format.Valid(value) {
		settings.TaskListFormat = value
	}

	settings.ShowInStatusBar = prefs.showInStatusBar.Checked
	settings.ShowListOnStart = prefs.showListOnStart.Checked
	settings.IdleStopEnabled = prefs.idleStop.Checked
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
