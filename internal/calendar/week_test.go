package calendar

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shift-swap-service/internal/domain"
)

func weekShifts() []domain.Shift {
	return []domain.Shift{
		{ID: "a", EmployeeID: "1", Date: "2024-03-11", StartTime: "09:00", EndTime: "17:00", Position: "Cook"},
		{ID: "b", EmployeeID: "2", Date: "2024-03-11", StartTime: "17:00", EndTime: "22:00", Position: "Delivery Driver"},
		{ID: "c", EmployeeID: "1", Date: "2024-03-16", StartTime: "10:00", EndTime: "14:00", Position: "Cook"},
		{ID: "outside", EmployeeID: "1", Date: "2024-03-17", StartTime: "10:00", EndTime: "14:00"},
	}
}

func TestBuildWeek_PlacesShiftsByDate(t *testing.T) {
	ref := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
	week := BuildWeek(weekShifts(), ref, Options{
		Today:       ref,
		Highlighted: []string{"b"},
		Selectable:  true,
	})

	require.Len(t, week.Days, 7)
	assert.Equal(t, "March 10 - March 16, 2024", week.Title)
	assert.Equal(t, DensityComfortable, week.Density)
	assert.True(t, week.Selectable)

	monday := week.Days[1]
	assert.Equal(t, "2024-03-11", monday.Date)
	assert.Equal(t, "Mon", monday.Weekday)
	require.Len(t, monday.Entries, 2)
	assert.Equal(t, "a", monday.Entries[0].ShiftID)
	assert.Equal(t, "9:00 AM - 5:00 PM", monday.Entries[0].Time)
	assert.Equal(t, "Cook", monday.Entries[0].Position)
	assert.False(t, monday.Entries[0].Highlighted)
	assert.True(t, monday.Entries[1].Highlighted)

	assert.True(t, week.Days[3].IsToday)
	assert.Len(t, week.Days[6].Entries, 1)

	total := 0
	for _, d := range week.Days {
		total += len(d.Entries)
	}
	assert.Equal(t, 3, total)
}

func TestBuildWeek_CompactOmitsDetails(t *testing.T) {
	ref := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
	week := BuildWeek(weekShifts(), ref, Options{Density: DensityCompact})

	entry := week.Days[1].Entries[0]
	assert.Empty(t, entry.Position)
	assert.Empty(t, entry.EmployeeID)
	assert.NotEmpty(t, entry.Time)
	assert.False(t, week.Days[3].IsToday)
}

func TestBuildWeek_EmptyDaysHaveNoNilEntries(t *testing.T) {
	week := BuildWeek(nil, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), Options{})
	for _, d := range week.Days {
		assert.NotNil(t, d.Entries)
	}
}

func TestBuildWeek_CompactEntries(t *testing.T) {
	ref := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	week := BuildWeek(weekShifts(), ref, Options{Density: DensityCompact, Highlighted: []string{"a"}})

	want := []Entry{
		{ShiftID: "a", Time: "9:00 AM - 5:00 PM", Highlighted: true},
		{ShiftID: "b", Time: "5:00 PM - 10:00 PM"},
	}
	if diff := cmp.Diff(want, week.Days[1].Entries); diff != "" {
		t.Errorf("monday entries mismatch (-want +got):\n%s", diff)
	}
}
