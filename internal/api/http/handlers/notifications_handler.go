package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-swap-service/internal/api/dto"
	"github.com/spec-kit/shift-swap-service/internal/schedule"
	apperrors "github.com/spec-kit/shift-swap-service/pkg/util/errorutil"
)

// NotificationsHandler exposes the caller's notifications.
type NotificationsHandler struct {
	store *schedule.Store
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(store *schedule.Store) *NotificationsHandler {
	return &NotificationsHandler{store: store}
}

// List handles GET /notifications. unread=true drops read entries.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	all := h.store.UserNotifications(p.User.ID)
	list := all
	if c.QueryBool("unread", false) {
		list = list[:0:0]
		for _, n := range all {
			if !n.Read {
				list = append(list, n)
			}
		}
	}
	return data(c, http.StatusOK, dto.NotificationsResponse{
		Unread:        h.store.UnreadCount(p.User.ID),
		Notifications: list,
	})
}

// MarkRead handles POST /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	n, ok := h.store.Notification(id)
	if !ok || n.UserID != p.User.ID {
		return apperrors.NewNotFound("notification", map[string]any{"id": id})
	}
	h.store.MarkNotificationAsRead(id)
	n.Read = true
	return data(c, http.StatusOK, n)
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, fiber.Map{"marked": h.store.MarkAllNotificationsAsRead(p.User.ID)})
}
