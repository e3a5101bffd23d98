package starttask

import (
	"strings"

	"timetracker/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Source provides the task data the window offers as suggestions.
type Source interface {
	Tasks() []model.Task
	HasActive() bool
}

// Window asks for a task name and an optional description.
type Window struct {
	window      fyne.Window
	source      Source
	onSubmit    func(name, description string)
	onStop      func()
	name        *widget.SelectEntry
	description *widget.SelectEntry
	startButton *widget.Button
	stopButton  *widget.Button
}

// New creates the start task window.
func New(app fyne.App, source Source, onSubmit func(name, description string), onStop func()) *Window {
	window := app.NewWindow("Start task")

	name := widget.NewSelectEntry(nil)
	name.SetPlaceHolder("Task name")
	description := widget.NewSelectEntry(nil)
	description.SetPlaceHolder("Description (optional)")

	startButton := widget.NewButton("Start timer", nil)
	startButton.Importance = widget.HighImportance
	startButton.Disable()
	stopButton := widget.NewButton("Stop active timer", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Start task", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Name:"),
		name,
		widget.NewLabel("Description:"),
		description,
	)
	buttons := container.NewHBox(stopButton, layout.NewSpacer(), startButton)
	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 240))

	start := &Window{
		window:      window,
		source:      source,
		onSubmit:    onSubmit,
		onStop:      onStop,
		name:        name,
		description: description,
		startButton: startButton,
		stopButton:  stopButton,
	}

	name.OnChanged = start.handleNameChanged
	name.OnSubmitted = func(string) { start.handleSubmit() }
	description.OnSubmitted = func(string) { start.handleSubmit() }
	startButton.OnTapped = start.handleSubmit
	stopButton.OnTapped = func() {
		window.Hide()
		if start.onStop != nil {
			start.onStop()
		}
	}
	window.SetCloseIntercept(window.Hide)

	return start
}

// Show resets the form and displays the window.
func (start *Window) Show() {
	tasks := start.source.Tasks()
	names := make([]string, 0, len(tasks))
	for _, task := range tasks {
		names = append(names, task.Name)
	}
	start.name.SetOptions(names)
	start.name.SetText("")
	start.description.SetOptions(nil)
	start.description.SetText("")
	start.startButton.Disable()
	if start.source.HasActive() {
		start.stopButton.Show()
	} else {
		start.stopButton.Hide()
	}

	start.window.Show()
	start.window.RequestFocus()
	start.window.Canvas().Focus(start.name)
}

func (start *Window) handleNameChanged(value string) {
	name := strings.TrimSpace(value)
	if name == "" {
		start.startButton.Disable()
		start.description.SetOptions(nil)
		return
	}
	start.startButton.Enable()

	for _, task := range start.source.Tasks() {
		if task.Name == name {
			start.description.SetOptions(task.History)
			return
		}
	}
	start.description.SetOptions(nil)
}

func (start *Window) handleSubmit() {
	name := strings.TrimSpace(start.name.Text)
	if name == "" {
		return
	}
	start.window.Hide()
	if start.onSubmit != nil {
		start.onSubmit(name, start.description.Text)
	}
}
