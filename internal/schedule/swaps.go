package schedule

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spec-kit/shift-swap-service/internal/calendar"
	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/events"
	"github.com/spec-kit/shift-swap-service/pkg/util/errorutil"
)

// Notification links surfaced to the UI.
const (
	LinkSwapRequests = "/swap-requests"
	LinkMySwaps      = "/my-swaps"
)

// ErrInvalidStatus is returned for a status outside the known set.
var ErrInvalidStatus = errorutil.NewDomainError("INVALID_STATUS", "unknown swap request status", http.StatusBadRequest, nil)

// RequestSwap records a pending swap request. When the requester's shift is
// known, the requestee is notified; an unknown shift is not an error.
// A nil requesteeShiftID makes an open request.
func (s *Store) RequestSwap(ctx context.Context, requesterID, requesterShiftID, requesteeID string, requesteeShiftID *string) domain.ShiftSwapRequest {
	now := s.now()
	req := domain.ShiftSwapRequest{
		ID:               s.newID(),
		RequesterID:      requesterID,
		RequesteeID:      requesteeID,
		RequesterShiftID: requesterShiftID,
		RequesteeShiftID: copyString(requesteeShiftID),
		Status:           domain.SwapStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	s.mu.Lock()
	s.swaps = append(s.swaps, req)
	var note *domain.Notification
	if i := s.shiftIndex(requesterShiftID); i >= 0 {
		msg := fmt.Sprintf("You have a new shift swap request for %s", calendar.MonthDay(s.shifts[i].Date))
		if requesteeShiftID != nil {
			if j := s.shiftIndex(*requesteeShiftID); j >= 0 {
				msg += fmt.Sprintf(" in exchange for your shift on %s", calendar.MonthDay(s.shifts[j].Date))
			}
		}
		n := s.appendNotification(requesteeID, "New Shift Swap Request", msg+".", LinkSwapRequests)
		note = &n
	}
	s.mu.Unlock()

	s.publish(ctx, events.EventSwapRequested, req.ID, events.SwapRequestedPayload{
		RequesterID:      requesterID,
		RequesteeID:      requesteeID,
		RequesterShiftID: requesterShiftID,
		RequesteeShiftID: req.RequesteeShiftID,
	})
	s.publishNotification(ctx, note)
	return cloneSwap(req)
}

// UpdateSwapRequest sets the status, note and update time of a request and
// notifies the requester. The second result is false when no request has
// the id, in which case nothing changes. Resolved requests may be
// transitioned again.
func (s *Store) UpdateSwapRequest(ctx context.Context, id string, status domain.SwapStatus, managerNote string) (domain.ShiftSwapRequest, bool, error) {
	if !status.Valid() {
		return domain.ShiftSwapRequest{}, false, ErrInvalidStatus
	}

	s.mu.Lock()
	i := s.swapIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.ShiftSwapRequest{}, false, nil
	}
	prev := s.swaps[i]
	s.swaps[i].Status = status
	s.swaps[i].UpdatedAt = s.now()
	s.swaps[i].ManagerNote = managerNote
	updated := s.swaps[i]

	// The message is composed from the request as it was before this change;
	// requester and shift are not mutated by a status transition.
	n := s.appendNotification(prev.RequesterID, statusTitle(status), s.statusMessage(prev, status), LinkMySwaps)
	s.mu.Unlock()

	s.publish(ctx, events.EventSwapStatusChanged, id, events.SwapStatusChangedPayload{
		OldStatus: prev.Status,
		NewStatus: status,
		Note:      managerNote,
	})
	s.publishNotification(ctx, &n)
	return cloneSwap(updated), true, nil
}

// SwapRequest returns the request with the given id.
func (s *Store) SwapRequest(id string) (domain.ShiftSwapRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.swapIndex(id)
	if i < 0 {
		return domain.ShiftSwapRequest{}, false
	}
	return cloneSwap(s.swaps[i]), true
}

// SwapRequests returns every request in insertion order.
func (s *Store) SwapRequests() []domain.ShiftSwapRequest {
	return s.filterSwaps(func(*domain.ShiftSwapRequest) bool { return true })
}

// EmployeeSwapRequests returns the requests where userID is either party.
func (s *Store) EmployeeSwapRequests(userID string) []domain.ShiftSwapRequest {
	return s.filterSwaps(func(r *domain.ShiftSwapRequest) bool { return r.Involves(userID) })
}

// PendingSwapRequests returns every request still awaiting a decision.
func (s *Store) PendingSwapRequests() []domain.ShiftSwapRequest {
	return s.filterSwaps(func(r *domain.ShiftSwapRequest) bool { return r.Status == domain.SwapStatusPending })
}

func (s *Store) filterSwaps(keep func(*domain.ShiftSwapRequest) bool) []domain.ShiftSwapRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ShiftSwapRequest, 0)
	for i := range s.swaps {
		if keep(&s.swaps[i]) {
			out = append(out, cloneSwap(s.swaps[i]))
		}
	}
	return out
}

func (s *Store) swapIndex(id string) int {
	for i := range s.swaps {
		if s.swaps[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) statusMessage(req domain.ShiftSwapRequest, status domain.SwapStatus) string {
	verb := "updated"
	switch status {
	case domain.SwapStatusApproved:
		verb = "approved"
	case domain.SwapStatusRejected:
		verb = "rejected"
	}
	if i := s.shiftIndex(req.RequesterShiftID); i >= 0 {
		return fmt.Sprintf("Your shift swap request for %s has been %s.", calendar.MonthDay(s.shifts[i].Date), verb)
	}
	return fmt.Sprintf("Your shift swap request has been %s.", verb)
}

func statusTitle(status domain.SwapStatus) string {
	return "Shift Swap Request " + calendar.StatusLabel(status)
}

func cloneSwap(r domain.ShiftSwapRequest) domain.ShiftSwapRequest {
	r.RequesteeShiftID = copyString(r.RequesteeShiftID)
	return r
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
