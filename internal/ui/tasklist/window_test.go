package tasklist

import (
	"testing"
	"time"

	"timetracker/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowParts(t *testing.T, row fyne.CanvasObject) (*widget.Label, *widget.Label, *widget.Button) {
	t.Helper()
	box, ok := row.(*fyne.Container)
	require.True(t, ok)
	require.Len(t, box.Objects, 7)
	return box.Objects[0].(*widget.Label), box.Objects[2].(*widget.Label), box.Objects[3].(*widget.Button)
}

func TestUpdate_RendersRows(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var resumed []string
	stopped := 0
	list := New(app, Actions{
		OnResume: func(name string) { resumed = append(resumed, name) },
		OnStop:   func() { stopped++ },
	}, "HH:mm:ss")

	now := time.UnixMilli(10_000)
	list.Update(model.Snapshot{
		Tasks: []model.Task{
			{Name: "b", Intervals: []model.Interval{{Start: time.UnixMilli(7_000)}}},
			{Name: "a", Intervals: []model.Interval{{Start: time.UnixMilli(0), End: time.UnixMilli(5_000)}}},
		},
		Active: 0,
	}, now)

	require.Len(t, list.rows.Objects, 2)
	title, elapsed, toggle := rowParts(t, list.rows.Objects[0])
	assert.Equal(t, "b", title.Text)
	assert.True(t, title.TextStyle.Bold)
	assert.Equal(t, "00:00:03", elapsed.Text)
	test.Tap(toggle)
	assert.Equal(t, 1, stopped)

	title, elapsed, toggle = rowParts(t, list.rows.Objects[1])
	assert.Equal(t, "a", title.Text)
	assert.False(t, title.TextStyle.Bold)
	assert.Equal(t, "00:00:05", elapsed.Text)
	test.Tap(toggle)
	assert.Equal(t, []string{"a"}, resumed)
}

func TestTick_UsesLastSnapshot(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	list := New(app, Actions{}, "m[m] s[s]")
	list.Update(model.Snapshot{
		Tasks:  []model.Task{{Name: "a", Intervals: []model.Interval{{Start: time.UnixMilli(0)}}}},
		Active: 0,
	}, time.UnixMilli(1_000))

	list.Tick(time.UnixMilli(62_000))

	_, elapsed, _ := rowParts(t, list.rows.Objects[0])
	assert.Equal(t, "1m 2s", elapsed.Text)
}

func TestUpdate_EmptySnapshot(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	list := New(app, Actions{}, "HH:mm:ss")
	list.Update(model.EmptySnapshot(), time.Now())

	require.Len(t, list.rows.Objects, 1)
	label, ok := list.rows.Objects[0].(*widget.Label)
	require.True(t, ok)
	assert.Equal(t, "No tasks yet.", label.Text)
}
