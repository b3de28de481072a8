package calendar

import (
	"fmt"
	"time"

	"github.com/spec-kit/shift-swap-service/internal/domain"
)

// Density controls how much detail each calendar entry carries.
type Density string

const (
	DensityCompact     Density = "compact"
	DensityComfortable Density = "comfortable"
)

// Options configures BuildWeek.
type Options struct {
	Density     Density
	Selectable  bool
	Highlighted []string
	Today       time.Time
}

// Week is the view model of a seven-day schedule.
type Week struct {
	Title      string  `json:"title"`
	Density    Density `json:"density"`
	Selectable bool    `json:"selectable"`
	Days       []Day   `json:"days"`
}

// Day is one column of the week.
type Day struct {
	Date    string  `json:"date"`
	Weekday string  `json:"weekday"`
	Label   string  `json:"label"`
	IsToday bool    `json:"isToday"`
	Entries []Entry `json:"entries"`
}

// Entry is one shift placed on a day.
type Entry struct {
	ShiftID     string `json:"shiftId"`
	EmployeeID  string `json:"employeeId,omitempty"`
	Time        string `json:"time"`
	Position    string `json:"position,omitempty"`
	Highlighted bool   `json:"highlighted"`
}

// BuildWeek lays shifts out over the week containing ref. Shifts outside
// the week are ignored; within a day they keep their input order.
func BuildWeek(shifts []domain.Shift, ref time.Time, opts Options) Week {
	if opts.Density == "" {
		opts.Density = DensityComfortable
	}
	highlighted := make(map[string]struct{}, len(opts.Highlighted))
	for _, id := range opts.Highlighted {
		highlighted[id] = struct{}{}
	}
	today := ""
	if !opts.Today.IsZero() {
		today = opts.Today.Format(DateLayout)
	}

	dates := WeekDates(ref)
	week := Week{
		Title:      fmt.Sprintf("%s - %s", dates[0].Format("January 2"), dates[6].Format("January 2, 2006")),
		Density:    opts.Density,
		Selectable: opts.Selectable,
		Days:       make([]Day, 0, len(dates)),
	}

	index := make(map[string]int, len(dates))
	for i, d := range dates {
		key := d.Format(DateLayout)
		index[key] = i
		week.Days = append(week.Days, Day{
			Date:    key,
			Weekday: d.Format("Mon"),
			Label:   d.Format("2"),
			IsToday: key == today,
			Entries: []Entry{},
		})
	}

	for _, s := range shifts {
		i, ok := index[s.Date]
		if !ok {
			continue
		}
		_, hl := highlighted[s.ID]
		entry := Entry{
			ShiftID:     s.ID,
			Time:        fmt.Sprintf("%s - %s", FormatTime(s.StartTime), FormatTime(s.EndTime)),
			Highlighted: hl,
		}
		if opts.Density == DensityComfortable {
			entry.EmployeeID = s.EmployeeID
			entry.Position = s.Position
		}
		week.Days[i].Entries = append(week.Days[i].Entries, entry)
	}
	return week
}
