package schedule

import (
	"context"

	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/events"
)

// AddShift stores a new shift under a fresh identifier.
func (s *Store) AddShift(ctx context.Context, input domain.ShiftInput) domain.Shift {
	return s.BulkAddShifts(ctx, []domain.ShiftInput{input})[0]
}

// BulkAddShifts stores every input under a fresh identifier, in order.
// Times and overlaps are not checked.
func (s *Store) BulkAddShifts(ctx context.Context, inputs []domain.ShiftInput) []domain.Shift {
	if len(inputs) == 0 {
		return []domain.Shift{}
	}
	created := make([]domain.Shift, 0, len(inputs))
	ids := make([]string, 0, len(inputs))

	s.mu.Lock()
	for _, in := range inputs {
		shift := in.WithID(s.newID())
		created = append(created, shift)
		ids = append(ids, shift.ID)
	}
	s.shifts = append(s.shifts, created...)
	s.mu.Unlock()

	s.publish(ctx, events.EventShiftsAdded, ids[0], events.ShiftsAddedPayload{ShiftIDs: ids})
	return created
}

// UpdateShift replaces the stored shift with the same identifier. It
// reports false, and changes nothing, when no such shift exists.
func (s *Store) UpdateShift(ctx context.Context, shift domain.Shift) bool {
	s.mu.Lock()
	i := s.shiftIndex(shift.ID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.shifts[i] = shift
	s.mu.Unlock()

	s.publish(ctx, events.EventShiftUpdated, shift.ID, shift)
	return true
}

// PatchShift applies a partial update to the shift with the given id.
func (s *Store) PatchShift(ctx context.Context, id string, patch domain.ShiftPatch) (domain.Shift, bool) {
	s.mu.Lock()
	i := s.shiftIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Shift{}, false
	}
	patch.Apply(&s.shifts[i])
	updated := s.shifts[i]
	s.mu.Unlock()

	s.publish(ctx, events.EventShiftUpdated, id, updated)
	return updated, true
}

// DeleteShift removes the shift with the given id, if present.
func (s *Store) DeleteShift(ctx context.Context, id string) bool {
	s.mu.Lock()
	i := s.shiftIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.shifts = append(s.shifts[:i:i], s.shifts[i+1:]...)
	s.mu.Unlock()

	s.publish(ctx, events.EventShiftDeleted, id, nil)
	return true
}

// Shift returns the shift with the given id.
func (s *Store) Shift(id string) (domain.Shift, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.shiftIndex(id)
	if i < 0 {
		return domain.Shift{}, false
	}
	return s.shifts[i], true
}

// Shifts returns every shift in insertion order.
func (s *Store) Shifts() []domain.Shift {
	return s.filterShifts(func(domain.Shift) bool { return true })
}

// EmployeeShifts returns the shifts assigned to employeeID in insertion order.
func (s *Store) EmployeeShifts(employeeID string) []domain.Shift {
	return s.filterShifts(func(sh domain.Shift) bool { return sh.EmployeeID == employeeID })
}

// UserShifts returns the shifts assigned to a user under either its account
// id or its employee id.
func (s *Store) UserShifts(user domain.User) []domain.Shift {
	return s.filterShifts(func(sh domain.Shift) bool { return sh.AssignedTo(user) })
}

// StoreShifts returns the shifts scheduled at storeID in insertion order.
func (s *Store) StoreShifts(storeID string) []domain.Shift {
	return s.filterShifts(func(sh domain.Shift) bool { return sh.StoreID == storeID })
}

func (s *Store) filterShifts(keep func(domain.Shift) bool) []domain.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Shift, 0)
	for _, sh := range s.shifts {
		if keep(sh) {
			out = append(out, sh)
		}
	}
	return out
}

// shiftIndex must be called with mu held.
func (s *Store) shiftIndex(id string) int {
	for i := range s.shifts {
		if s.shifts[i].ID == id {
			return i
		}
	}
	return -1
}
