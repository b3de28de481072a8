package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/shift-swap-service/internal/service"
)

// StartNotificationWorker attaches the notification service to the event
// dispatcher. Handlers run synchronously on the publishing goroutine.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	types := notificationService.RegisterHandlers()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	logger.Info("notification worker started", zap.Strings("events", names))
}
