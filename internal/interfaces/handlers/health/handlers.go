package health

import (
	"context"

	healthsvc "ledger-backend/internal/application/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for the health endpoint.
type Handlers struct {
	Rdb *redis.Client
	DB  healthsvc.DBPinger
}

// Health GET /health — liveness with dependency status.
func (h *Handlers) Health(c *fiber.Ctx) error {
	result := healthsvc.Collect(context.Background(), h.Rdb, h.DB)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"service":      "stock-ledger-api",
		"status":       result.Status,
		"dependencies": result.Dependencies,
	})
}
