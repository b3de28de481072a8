package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-swap-service/internal/api/dto"
	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/schedule"
	apperrors "github.com/spec-kit/shift-swap-service/pkg/util/errorutil"
)

// Default notes recorded when a manager decides without one.
const (
	DefaultApproveNote = "Swap request approved by manager"
	DefaultRejectNote  = "Swap request rejected by manager"
)

// SwapsHandler exposes shift swap requests.
type SwapsHandler struct {
	store *schedule.Store
}

// NewSwapsHandler constructs handler.
func NewSwapsHandler(store *schedule.Store) *SwapsHandler {
	return &SwapsHandler{store: store}
}

// Create handles POST /swaps. The caller must own the offered shift.
func (h *SwapsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.SwapCreateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	offered, ok := h.store.Shift(req.RequesterShiftID)
	if !ok {
		return apperrors.NewNotFound("shift", map[string]any{"id": req.RequesterShiftID})
	}
	if !offered.AssignedTo(p.User) {
		return apperrors.NewForbidden("shift belongs to another employee")
	}
	if req.RequesteeShiftID != nil {
		if _, ok := h.store.Shift(*req.RequesteeShiftID); !ok {
			return apperrors.NewNotFound("shift", map[string]any{"id": *req.RequesteeShiftID})
		}
	}

	swap := h.store.RequestSwap(c.UserContext(), p.User.ID, req.RequesterShiftID, req.RequesteeID, req.RequesteeShiftID)
	return data(c, http.StatusCreated, swap)
}

// Mine handles GET /swaps/mine.
func (h *SwapsHandler) Mine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, h.store.EmployeeSwapRequests(p.User.ID))
}

// Pending handles GET /swaps/pending.
func (h *SwapsHandler) Pending(c *fiber.Ctx) error {
	return data(c, http.StatusOK, h.store.PendingSwapRequests())
}

// Get handles GET /swaps/:id for either party or a manager.
func (h *SwapsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	swap, ok := h.store.SwapRequest(c.Params("id"))
	if !ok || !(p.User.IsManager() || swap.Involves(p.User.ID)) {
		return apperrors.NewNotFound("swap request", map[string]any{"id": c.Params("id")})
	}
	return data(c, http.StatusOK, swap)
}

// Approve handles POST /swaps/:id/approve.
func (h *SwapsHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, domain.SwapStatusApproved, DefaultApproveNote)
}

// Reject handles POST /swaps/:id/reject.
func (h *SwapsHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, domain.SwapStatusRejected, DefaultRejectNote)
}

func (h *SwapsHandler) decide(c *fiber.Ctx, status domain.SwapStatus, defaultNote string) error {
	var req dto.SwapDecisionRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}
	if req.Note == "" {
		req.Note = defaultNote
	}

	swap, ok, err := h.store.UpdateSwapRequest(c.UserContext(), c.Params("id"), status, req.Note)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFound("swap request", map[string]any{"id": c.Params("id")})
	}
	return data(c, http.StatusOK, swap)
}
