package tasklist

import (
	"fmt"
	"strings"
	"time"

	"timetracker/internal/core/model"
	"timetracker/internal/ui/format"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Actions defines the task list action handlers.
type Actions struct {
	OnResume func(name string)
	OnStop   func()
	OnReset  func(name string)
	OnDelete func(name string)
	OnRename func(oldName, newName string)
}

// Window shows every task with its accumulated time.
type Window struct {
	window   fyne.Window
	actions  Actions
	layout   string
	rows     *fyne.Container
	snapshot model.Snapshot
}

// New creates the task list window.
func New(app fyne.App, actions Actions, durationLayout string) *Window {
	window := app.NewWindow("Task times")
	rows := container.NewVBox()
	window.SetContent(container.NewVScroll(rows))
	window.Resize(fyne.NewSize(420, 360))
	window.SetCloseIntercept(window.Hide)

	return &Window{
		window:   window,
		actions:  actions,
		layout:   durationLayout,
		rows:     rows,
		snapshot: model.EmptySnapshot(),
	}
}

// Show displays the window.
func (list *Window) Show() {
	list.window.Show()
	list.window.RequestFocus()
}

// SetLayout changes the duration layout used for rows.
func (list *Window) SetLayout(durationLayout string) {
	list.layout = durationLayout
}

// Update rebuilds the rows from snapshot with durations measured at now.
func (list *Window) Update(snapshot model.Snapshot, now time.Time) {
	list.snapshot = snapshot
	list.rows.RemoveAll()

	if len(snapshot.Tasks) == 0 {
		list.rows.Add(widget.NewLabel("No tasks yet."))
		return
	}
	for i, task := range snapshot.Tasks {
		list.rows.Add(list.row(task, i == snapshot.Active, now))
	}
	list.rows.Refresh()
}

// Tick refreshes the durations of the last snapshot.
func (list *Window) Tick(now time.Time) {
	list.Update(list.snapshot, now)
}

func (list *Window) row(task model.Task, active bool, now time.Time) fyne.CanvasObject {
	name := task.Name
	title := widget.NewLabelWithStyle(name, fyne.TextAlignLeading, fyne.TextStyle{Bold: active})
	elapsed := widget.NewLabel(format.Duration(model.Elapsed(task, now), list.layout))

	var toggle *widget.Button
	if active {
		toggle = widget.NewButtonWithIcon("", theme.MediaStopIcon(), func() {
			if list.actions.OnStop != nil {
				list.actions.OnStop()
			}
		})
	} else {
		toggle = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
			if list.actions.OnResume != nil {
				list.actions.OnResume(name)
			}
		})
	}

	rename := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		list.confirmRename(name)
	})
	reset := widget.NewButtonWithIcon("", theme.HistoryIcon(), func() {
		list.confirm("Reset task", fmt.Sprintf("Clear all recorded time for %q?", name), func() {
			if list.actions.OnReset != nil {
				list.actions.OnReset(name)
			}
		})
	})
	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		list.confirm("Delete task", fmt.Sprintf("Delete %q and its recorded time?", name), func() {
			if list.actions.OnDelete != nil {
				list.actions.OnDelete(name)
			}
		})
	})

	return container.NewHBox(title, layout.NewSpacer(), elapsed, toggle, rename, reset, remove)
}

func (list *Window) confirm(title, message string, onConfirm func()) {
	dialog.ShowConfirm(title, message, func(ok bool) {
		if ok {
			onConfirm()
		}
	}, list.window)
}

func (list *Window) confirmRename(oldName string) {
	entry := widget.NewEntry()
	entry.SetText(oldName)
	items := []*widget.FormItem{widget.NewFormItem("Name", entry)}
	dialog.ShowForm("Rename task", "Rename", "Cancel", items, func(ok bool) {
		newName := strings.TrimSpace(entry.Text)
		if !ok || newName == "" || newName == oldName {
			return
		}
		if list.actions.OnRename != nil {
			list.actions.OnRename(oldName, newName)
		}
	}, list.window)
}
