package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-swap-service/internal/config"
	"github.com/spec-kit/shift-swap-service/internal/events"
)

// NotificationService relays schedule events to the log and to stub
// outbound channels.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events and returns the types it handles.
func (n *NotificationService) RegisterHandlers() []events.EventType {
	if n.dispatcher == nil {
		return nil
	}
	handlers := map[events.EventType]events.EventHandler{
		events.EventScheduleImported:  n.handleScheduleImported,
		events.EventSwapRequested:     n.handleSwapRequested,
		events.EventSwapStatusChanged: n.handleSwapStatusChanged,
		events.EventNotificationAdded: n.handleNotificationAdded,
		events.EventShiftsAdded:       n.handleShiftChange,
		events.EventShiftUpdated:      n.handleShiftChange,
		events.EventShiftDeleted:      n.handleShiftChange,
	}
	types := make([]events.EventType, 0, len(handlers))
	for typ, h := range handlers {
		n.dispatcher.Subscribe(typ, h)
		types = append(types, typ)
	}
	return types
}

func (n *NotificationService) handleScheduleImported(ctx context.Context, event events.Event) error {
	n.logger.Info("ScheduleImported", zap.String("store_id", event.EntityID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleSwapRequested(ctx context.Context, event events.Event) error {
	n.logger.Info("SwapRequested", zap.String("swap_request_id", event.EntityID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSwapStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("SwapStatusChanged", zap.String("swap_request_id", event.EntityID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleShiftChange(ctx context.Context, event events.Event) error {
	n.logger.Debug("ShiftChanged",
		zap.String("event_type", string(event.Type)),
		zap.String("shift_id", event.EntityID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleNotificationAdded(ctx context.Context, event events.Event) error {
	n.logger.Debug("NotificationAdded", zap.String("notification_id", event.EntityID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}
