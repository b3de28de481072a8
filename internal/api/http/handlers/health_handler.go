package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-swap-service/internal/observability"
	apperrors "github.com/spec-kit/shift-swap-service/pkg/util/errorutil"
)

// Pinger is a dependency that can report its availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	deps        map[string]Pinger
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance. deps maps a dependency
// name to the client checked by Ready.
func NewHealthHandler(serviceName, version string, deps map[string]Pinger, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, deps: deps, metrics: metrics}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports 200 when every dependency answers a ping within two
// seconds, 503 otherwise.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	statuses, ready := h.check(ctx)
	if !ready {
		return apperrors.NewDomainError("DEPENDENCY_UNAVAILABLE", "one or more dependencies unavailable",
			fiber.StatusServiceUnavailable, statuses)
	}
	return c.JSON(fiber.Map{"status": "ready", "dependencies": statuses})
}

func (h *HealthHandler) check(ctx context.Context) (map[string]any, bool) {
	statuses := make(map[string]any, len(h.deps))
	ready := true
	for name, dep := range h.deps {
		status := "ok"
		if err := dep.Ping(ctx); err != nil {
			status = err.Error()
			ready = false
		}
		statuses[name] = status
	}
	return statuses, ready
}

// Metrics returns the in-process request counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}
