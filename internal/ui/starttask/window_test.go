package starttask

import (
	"testing"

	"timetracker/internal/core/model"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	tasks  []model.Task
	active bool
}

func (source fakeSource) Tasks() []model.Task { return source.tasks }
func (source fakeSource) HasActive() bool { return source.active }

func TestWindow_SubmitTrimsName(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var gotName, gotDescription string
	start := New(app, fakeSource{tasks: []model.Task{{Name: "write", History: []string{"draft"}}}}, func(name, description string) {
		gotName, gotDescription = name, description
	}, nil)
	start.Show()
	assert.True(t, start.startButton.Disabled())
	assert.False(t, start.stopButton.Visible())

	start.name.SetText("  write ")
	assert.False(t, start.startButton.Disabled())
	start.description.SetText("draft")
	test.Tap(start.startButton)

	assert.Equal(t, "write", gotName)
	assert.Equal(t, "draft", gotDescription)
}

func TestWindow_BlankNameKeepsStartDisabled(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	submitted := false
	start := New(app, fakeSource{}, func(string, string) { submitted = true }, nil)
	start.Show()

	start.name.SetText("   ")
	start.handleSubmit()

	assert.True(t, start.startButton.Disabled())
	assert.False(t, submitted)
}

func TestWindow_StopShownWhileActive(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	stopped := 0
	start := New(app, fakeSource{active: true}, nil, func() { stopped++ })
	start.Show()

	assert.True(t, start.stopButton.Visible())
	test.Tap(start.stopButton)
	assert.Equal(t, 1, stopped)
}
