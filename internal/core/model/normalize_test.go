package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_DefaultsHistory(t *testing.T) {
	snapshot := Normalize(Snapshot{
		Tasks:  []Task{{Name: "a"}},
		Active: NoActiveTask,
	})

	require.Len(t, snapshot.Tasks, 1)
	assert.NotNil(t, snapshot.Tasks[0].History)
	assert.Empty(t, snapshot.Tasks[0].History)
}

func TestNormalize_DropsBlankAndDuplicateNames(t *testing.T) {
	snapshot := Normalize(Snapshot{
		Tasks: []Task{
			{Name: "a", Intervals: []Interval{{Start: ms(0), End: ms(10)}}},
			{Name: "  "},
			{Name: "a", Intervals: []Interval{{Start: ms(100)}}},
			{Name: " b "},
		},
		Active: NoActiveTask,
	})

	require.Len(t, snapshot.Tasks, 2)
	assert.Equal(t, "a", snapshot.Tasks[0].Name)
	assert.Equal(t, "b", snapshot.Tasks[1].Name)
	assert.Equal(t, NoActiveTask, snapshot.Active)
}

func TestNormalize_ActiveOutOfRange(t *testing.T) {
	snapshot := Normalize(Snapshot{
		Tasks:  []Task{{Name: "a", Intervals: []Interval{{Start: ms(0), End: ms(10)}}}},
		Active: 7,
	})

	assert.Equal(t, NoActiveTask, snapshot.Active)
}

func TestNormalize_ActiveWithoutOpenInterval(t *testing.T) {
	snapshot := Normalize(Snapshot{
		Tasks:  []Task{{Name: "a", Intervals: []Interval{{Start: ms(0), End: ms(10)}}}},
		Active: 0,
	})

	assert.Equal(t, NoActiveTask, snapshot.Active)
}

func TestNormalize_AdoptsSingleRunningTask(t *testing.T) {
	snapshot := Normalize(Snapshot{
		Tasks: []Task{
			{Name: "a", Intervals: []Interval{{Start: ms(0), End: ms(10)}}},
			{Name: "b", Intervals: []Interval{{Start: ms(20)}}},
		},
		Active: NoActiveTask,
	})

	assert.Equal(t, 1, snapshot.Active)
}

func TestNormalize_ClosesStrayOpenIntervals(t *testing.T) {
	snapshot := Normalize(Snapshot{
		Tasks: []Task{
			{Name: "a", Intervals: []Interval{{Start: ms(50)}}},
			{Name: "b", Intervals: []Interval{{Start: ms(20)}}},
		},
		Active: 1,
	})

	assert.Equal(t, 1, snapshot.Active)
	_, aOpen := snapshot.Tasks[0].OpenInterval()
	assert.False(t, aOpen)
	assert.Equal(t, ms(50), snapshot.Tasks[0].Intervals[0].End)
	_, bOpen := snapshot.Tasks[1].OpenInterval()
	assert.True(t, bOpen)
}

func TestNormalize_RepairsIntervals(t *testing.T) {
	snapshot := Normalize(Snapshot{
		Tasks: []Task{{Name: "a", Intervals: []Interval{
			{Start: ms(0)},
			{Start: ms(100), End: ms(50)},
			{},
			{Start: ms(200)},
		}}},
		Active: 0,
	})

	intervals := snapshot.Tasks[0].Intervals
	require.Len(t, intervals, 3)
	assert.Equal(t, ms(100), intervals[0].End)
	assert.Equal(t, ms(100), intervals[1].End)
	assert.True(t, intervals[2].Open())
	assert.Equal(t, 0, snapshot.Active)
}

func TestNormalize_DeduplicatesHistory(t *testing.T) {
	snapshot := Normalize(Snapshot{
		Tasks:  []Task{{Name: "a", History: []string{"x", "y", "x", "z", "u", "v", "w"}}},
		Active: NoActiveTask,
	})

	assert.Equal(t, []string{"x", "y", "z", "u", "v"}, snapshot.Tasks[0].History)
}
