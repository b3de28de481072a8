package schedule

import (
	"context"

	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/events"
)

// MarkNotificationAsRead flips the read flag of a notification. It reports
// false when the id is unknown.
func (s *Store) MarkNotificationAsRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllNotificationsAsRead marks every notification of userID as read and
// returns how many changed.
func (s *Store) MarkAllNotificationsAsRead(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for i := range s.notifications {
		n := &s.notifications[i]
		if n.UserID == userID && !n.Read {
			n.Read = true
			changed++
		}
	}
	return changed
}

// Notification returns the notification with the given id.
func (s *Store) Notification(id string) (domain.Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notifications {
		if n.ID == id {
			return n, true
		}
	}
	return domain.Notification{}, false
}

// Notifications returns every notification in insertion order.
func (s *Store) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Notification{}, s.notifications...)
}

// UserNotifications returns the notifications addressed to userID.
func (s *Store) UserNotifications(userID string) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount returns how many notifications of userID are unread.
func (s *Store) UnreadCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count
}

// appendNotification must be called with mu held.
func (s *Store) appendNotification(userID, title, message, link string) domain.Notification {
	n := domain.Notification{
		ID:        s.newID(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		CreatedAt: s.now(),
		Link:      link,
	}
	s.notifications = append(s.notifications, n)
	return n
}

func (s *Store) publishNotification(ctx context.Context, n *domain.Notification) {
	if n == nil {
		return
	}
	s.publish(ctx, events.EventNotificationAdded, n.ID, events.NotificationAddedPayload{
		UserID: n.UserID,
		Title:  n.Title,
	})
}
