package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-swap-service/internal/api/dto"
	"github.com/spec-kit/shift-swap-service/internal/calendar"
	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/schedule"
	apperrors "github.com/spec-kit/shift-swap-service/pkg/util/errorutil"
)

// DefaultMaxUploadBytes bounds schedule uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 5 * 1024 * 1024

// ShiftsHandler exposes shift management, CSV import and the week view.
type ShiftsHandler struct {
	store    *schedule.Store
	logger   *zap.Logger
	maxBytes int64
	now      func() time.Time
}

// NewShiftsHandler constructs handler. A non-positive maxBytes falls back
// to DefaultMaxUploadBytes.
func NewShiftsHandler(store *schedule.Store, logger *zap.Logger, maxBytes int64) *ShiftsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &ShiftsHandler{store: store, logger: logger, maxBytes: maxBytes, now: time.Now}
}

// Mine handles GET /shifts/mine.
func (h *ShiftsHandler) Mine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, h.store.UserShifts(p.User))
}

// List handles GET /shifts for managers, scoped to their store and
// optionally to one employee.
func (h *ShiftsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	shifts := h.store.StoreShifts(p.User.StoreID)
	if employeeID := c.Query("employeeId"); employeeID != "" {
		filtered := make([]domain.Shift, 0, len(shifts))
		for _, s := range shifts {
			if s.EmployeeID == employeeID {
				filtered = append(filtered, s)
			}
		}
		shifts = filtered
	}
	return data(c, http.StatusOK, shifts)
}

// Get handles GET /shifts/:id.
func (h *ShiftsHandler) Get(c *fiber.Ctx) error {
	shift, ok := h.store.Shift(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("shift", map[string]any{"id": c.Params("id")})
	}
	return data(c, http.StatusOK, shift)
}

// Create handles POST /shifts.
func (h *ShiftsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.ShiftRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	shift := h.store.AddShift(c.UserContext(), shiftInput(req, p.User.StoreID))
	return data(c, http.StatusCreated, shift)
}

// Replace handles PUT /shifts/:id.
func (h *ShiftsHandler) Replace(c *fiber.Ctx) error {
	id := c.Params("id")
	existing, ok := h.store.Shift(id)
	if !ok {
		return apperrors.NewNotFound("shift", map[string]any{"id": id})
	}
	var req dto.ShiftRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	shift := shiftInput(req, existing.StoreID).WithID(id)
	if !h.store.UpdateShift(c.UserContext(), shift) {
		return apperrors.NewNotFound("shift", map[string]any{"id": id})
	}
	return data(c, http.StatusOK, shift)
}

// Patch handles PATCH /shifts/:id.
func (h *ShiftsHandler) Patch(c *fiber.Ctx) error {
	var patch domain.ShiftPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	shift, ok := h.store.PatchShift(c.UserContext(), c.Params("id"), patch)
	if !ok {
		return apperrors.NewNotFound("shift", map[string]any{"id": c.Params("id")})
	}
	return data(c, http.StatusOK, shift)
}

// Delete handles DELETE /shifts/:id.
func (h *ShiftsHandler) Delete(c *fiber.Ctx) error {
	if !h.store.DeleteShift(c.UserContext(), c.Params("id")) {
		return apperrors.NewNotFound("shift", map[string]any{"id": c.Params("id")})
	}
	return c.SendStatus(http.StatusNoContent)
}

// Import handles POST /shifts/import with a multipart "file" field. Rows
// are assigned to the manager's store.
func (h *ShiftsHandler) Import(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("Please upload a CSV file", map[string]any{"file": "required"})
	}
	if !isCSV(header.Filename, header.Header.Get(fiber.HeaderContentType)) {
		return apperrors.NewValidationError("Please upload a CSV file", map[string]any{"file": header.Filename})
	}
	if header.Size > h.maxBytes {
		return apperrors.NewDomainError("PAYLOAD_TOO_LARGE", "File size should be less than "+humanSize(h.maxBytes),
			http.StatusRequestEntityTooLarge, map[string]any{"size": header.Size})
	}

	file, err := header.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()

	shifts, err := h.store.ProcessCSVUpload(c.UserContext(), file, p.User.StoreID)
	if err != nil {
		h.logger.Warn("schedule upload rejected",
			zap.String("file", header.Filename), zap.String("user_id", p.User.ID), zap.Error(err))
		return err
	}
	return data(c, http.StatusCreated, dto.ImportResponse{Imported: len(shifts), Shifts: shifts})
}

// Week handles GET /schedule/week. scope=mine shows the caller's shifts,
// scope=store (the manager default) shows the whole store.
func (h *ShiftsHandler) Week(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	today := h.now()
	ref := today
	if raw := c.Query("date"); raw != "" {
		ref, err = calendar.ParseDate(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid date", map[string]any{"date": raw})
		}
	}

	density := calendar.Density(c.Query("density", string(calendar.DensityComfortable)))
	if density != calendar.DensityCompact && density != calendar.DensityComfortable {
		return apperrors.NewValidationError("invalid density", map[string]any{"density": string(density)})
	}

	scope := c.Query("scope")
	if scope == "" {
		scope = "mine"
		if p.User.IsManager() {
			scope = "store"
		}
	}
	var shifts []domain.Shift
	switch scope {
	case "mine":
		shifts = h.store.UserShifts(p.User)
	case "store":
		shifts = h.store.StoreShifts(p.User.StoreID)
	default:
		return apperrors.NewValidationError("invalid scope", map[string]any{"scope": scope})
	}

	week := calendar.BuildWeek(shifts, ref, calendar.Options{
		Density:     density,
		Selectable:  c.QueryBool("selectable", false),
		Highlighted: splitList(c.Query("highlight")),
		Today:       today,
	})
	return data(c, http.StatusOK, week)
}

func shiftInput(req dto.ShiftRequest, defaultStore string) domain.ShiftInput {
	storeID := req.StoreID
	if storeID == "" {
		storeID = defaultStore
	}
	return domain.ShiftInput{
		EmployeeID: req.EmployeeID,
		StoreID:    storeID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Position:   req.Position,
	}
}

func isCSV(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return true
	}
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.EqualFold(strings.TrimSpace(mediaType), "text/csv")
}

func humanSize(n int64) string {
	const mb = 1024 * 1024
	if n%mb == 0 {
		return strconv.FormatInt(n/mb, 10) + "MB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
