package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-swap-service/internal/api/dto"
	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/schedule"
)

// Preview sizes of the dashboard lists.
const (
	employeePreview = 3
	managerPreview  = 5
)

// StoreLookup resolves store metadata by id.
type StoreLookup interface {
	Store(id string) (domain.Store, bool)
}

// DashboardHandler renders the role-specific landing summary.
type DashboardHandler struct {
	store  *schedule.Store
	stores StoreLookup
}

// NewDashboardHandler constructs handler. stores may be nil.
func NewDashboardHandler(store *schedule.Store, stores StoreLookup) *DashboardHandler {
	return &DashboardHandler{store: store, stores: stores}
}

// Get handles GET /dashboard.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if p.User.IsManager() {
		return data(c, http.StatusOK, h.manager(p.User))
	}
	return data(c, http.StatusOK, h.employee(p.User))
}

func (h *DashboardHandler) employee(user domain.User) dto.EmployeeDashboard {
	shifts := h.store.UserShifts(user)
	pending := make([]domain.ShiftSwapRequest, 0)
	for _, req := range h.store.EmployeeSwapRequests(user.ID) {
		if req.Status == domain.SwapStatusPending {
			pending = append(pending, req)
		}
	}
	return dto.EmployeeDashboard{
		Role:                user.Role,
		User:                user,
		Store:               h.lookup(user.StoreID),
		Shifts:              shifts,
		UpcomingShifts:      head(shifts, employeePreview),
		PendingSwapRequests: head(pending, employeePreview),
		PendingCount:        len(pending),
		UnreadNotifications: h.store.UnreadCount(user.ID),
	}
}

func (h *DashboardHandler) manager(user domain.User) dto.ManagerDashboard {
	shifts := h.store.StoreShifts(user.StoreID)
	employees := make(map[string]struct{}, len(shifts))
	for _, s := range shifts {
		employees[s.EmployeeID] = struct{}{}
	}
	pending := h.store.PendingSwapRequests()
	return dto.ManagerDashboard{
		Role:                user.Role,
		User:                user,
		Store:               h.lookup(user.StoreID),
		ShiftCount:          len(shifts),
		EmployeeCount:       len(employees),
		PendingSwapRequests: head(pending, managerPreview),
		PendingCount:        len(pending),
		HasSchedule:         len(shifts) > 0,
	}
}

func (h *DashboardHandler) lookup(id string) *domain.Store {
	if h.stores == nil {
		return nil
	}
	store, ok := h.stores.Store(id)
	if !ok {
		return nil
	}
	return &store
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
