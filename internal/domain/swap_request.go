package domain

import "time"

// SwapStatus enumerates lifecycle states for a swap request.
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "pending"
	SwapStatusApproved SwapStatus = "approved"
	SwapStatusRejected SwapStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s SwapStatus) Valid() bool {
	switch s {
	case SwapStatusPending, SwapStatusApproved, SwapStatusRejected:
		return true
	}
	return false
}

// ShiftSwapRequest proposes exchanging the requester's shift for one of the
// requestee's. A nil RequesteeShiftID marks an open request.
type ShiftSwapRequest struct {
	ID               string     `json:"id"`
	RequesterID      string     `json:"requesterId"`
	RequesteeID      string     `json:"requesteeId"`
	RequesterShiftID string     `json:"requesterShiftId"`
	RequesteeShiftID *string    `json:"requesteeShiftId"`
	Status           SwapStatus `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	ManagerNote      string     `json:"managerNote,omitempty"`
}

// IsOpen reports whether no counter-shift was named.
func (r *ShiftSwapRequest) IsOpen() bool {
	return r.RequesteeShiftID == nil
}

// Involves reports whether userID is either party of the request.
func (r *ShiftSwapRequest) Involves(userID string) bool {
	return r.RequesterID == userID || r.RequesteeID == userID
}
