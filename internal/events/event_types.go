package events

import (
	"time"

	"github.com/spec-kit/shift-swap-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventShiftsAdded       EventType = "shifts_added"
	EventShiftUpdated      EventType = "shift_updated"
	EventShiftDeleted      EventType = "shift_deleted"
	EventScheduleImported  EventType = "schedule_imported"
	EventSwapRequested     EventType = "swap_requested"
	EventSwapStatusChanged EventType = "swap_status_changed"
	EventNotificationAdded EventType = "notification_added"
)

// Event represents a domain event emitted by the schedule store.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ShiftsAddedPayload payload.
type ShiftsAddedPayload struct {
	ShiftIDs []string `json:"shift_ids"`
}

// ScheduleImportedPayload payload.
type ScheduleImportedPayload struct {
	StoreID string `json:"store_id"`
	Rows    int    `json:"rows"`
}

// SwapRequestedPayload payload.
type SwapRequestedPayload struct {
	RequesterID      string  `json:"requester_id"`
	RequesteeID      string  `json:"requestee_id"`
	RequesterShiftID string  `json:"requester_shift_id"`
	RequesteeShiftID *string `json:"requestee_shift_id,omitempty"`
}

// SwapStatusChangedPayload payload.
type SwapStatusChangedPayload struct {
	OldStatus domain.SwapStatus `json:"old_status"`
	NewStatus domain.SwapStatus `json:"new_status"`
	Note      string            `json:"note,omitempty"`
}

// NotificationAddedPayload payload.
type NotificationAddedPayload struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
}
