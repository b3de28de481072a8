package dto

import (
	"github.com/spec-kit/shift-swap-service/internal/domain"
)

// ShiftRequest is the manual-entry payload for a shift. StoreID defaults to
// the manager's store.
type ShiftRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	StoreID    string `json:"storeId"`
	Date       string `json:"date" validate:"required"`
	StartTime  string `json:"startTime" validate:"required"`
	EndTime    string `json:"endTime" validate:"required"`
	Position   string `json:"position"`
}

// SwapCreateRequest asks to swap the caller's shift. A null
// requesteeShiftId makes an open request.
type SwapCreateRequest struct {
	RequesterShiftID string  `json:"requesterShiftId" validate:"required"`
	RequesteeID      string  `json:"requesteeId" validate:"required"`
	RequesteeShiftID *string `json:"requesteeShiftId"`
}

// SwapDecisionRequest carries an optional manager note.
type SwapDecisionRequest struct {
	Note string `json:"note" validate:"max=500"`
}

// ImportResponse summarizes a schedule upload.
type ImportResponse struct {
	Imported int            `json:"imported"`
	Shifts   []domain.Shift `json:"shifts"`
}

// NotificationsResponse lists a user's notifications.
type NotificationsResponse struct {
	Unread        int                   `json:"unread"`
	Notifications []domain.Notification `json:"notifications"`
}

// EmployeeDashboard is the landing summary for employees.
type EmployeeDashboard struct {
	Role                domain.UserRole           `json:"role"`
	User                domain.User               `json:"user"`
	Store               *domain.Store             `json:"store,omitempty"`
	Shifts              []domain.Shift            `json:"shifts"`
	UpcomingShifts      []domain.Shift            `json:"upcomingShifts"`
	PendingSwapRequests []domain.ShiftSwapRequest `json:"pendingSwapRequests"`
	PendingCount        int                       `json:"pendingCount"`
	UnreadNotifications int                       `json:"unreadNotifications"`
}

// ManagerDashboard is the landing summary for managers.
type ManagerDashboard struct {
	Role                domain.UserRole           `json:"role"`
	User                domain.User               `json:"user"`
	Store               *domain.Store             `json:"store,omitempty"`
	ShiftCount          int                       `json:"shiftCount"`
	EmployeeCount       int                       `json:"employeeCount"`
	PendingSwapRequests []domain.ShiftSwapRequest `json:"pendingSwapRequests"`
	PendingCount        int                       `json:"pendingCount"`
	HasSchedule         bool                      `json:"hasSchedule"`
}
