// Package calendar holds date and time helpers shared by the schedule views
// and the notification composer.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/shift-swap-service/internal/domain"
)

// DateLayout is the wire format of shift dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(date))
}

// FormatDate renders a YYYY-MM-DD date as "Monday, January 2, 2006".
// Unparseable input is returned unchanged.
func FormatDate(date string) string {
	return reformat(date, "Monday, January 2, 2006")
}

// DayOfWeek returns the weekday name of a YYYY-MM-DD date.
func DayOfWeek(date string) string {
	return reformat(date, "Monday")
}

// ShortDate renders a YYYY-MM-DD date as "Jan 2".
func ShortDate(date string) string {
	return reformat(date, "Jan 2")
}

// MonthDay renders a YYYY-MM-DD date as "January 2".
func MonthDay(date string) string {
	return reformat(date, "January 2")
}

func reformat(date, layout string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}

// FormatTime converts a 24-hour HH:MM time to 12-hour form, e.g. "13:05" to
// "1:05 PM". Unparseable input is returned unchanged.
func FormatTime(hhmm string) string {
	hours, minutes, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok {
		return hhmm
	}
	hour, err := strconv.Atoi(hours)
	if err != nil {
		return hhmm
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%s %s", hour, minutes, ampm)
}

// WeekDates returns the seven days, Sunday through Saturday, of the week
// containing t. Times of day are truncated to midnight in t's location.
func WeekDates(t time.Time) []time.Time {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start = start.AddDate(0, 0, -int(start.Weekday()))

	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// StatusLabel is the display text of a swap status.
func StatusLabel(status domain.SwapStatus) string {
	switch status {
	case domain.SwapStatusPending:
		return "Pending"
	case domain.SwapStatusApproved:
		return "Approved"
	case domain.SwapStatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}
