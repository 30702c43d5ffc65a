package http

import (
	"context"

	"github.com/civictrack/civictrack/internal/interfaces/http/handlers"
	complaintHandlers "github.com/civictrack/civictrack/internal/interfaces/http/handlers/complaint"
	"github.com/civictrack/civictrack/internal/interfaces/http/middleware"
)

// allHandlers holds all HTTP handler instances.
type allHandlers struct {
	authHandler      *handlers.AuthHandler
	complaintHandler *complaintHandlers.Handler
	healthHandler    *handlers.HealthHandler
}

// ============================================================
// Section 3: Handlers and middlewares
// ============================================================

func (c *Container) initHandlers() {
	ucs := c.ucs
	log := c.log

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.repos.userRepo, log.Named("auth"))

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(
			ucs.registerUC,
			ucs.loginUC,
			ucs.getCurrentUserUC,
			ucs.updateProfileUC,
			log.Named("auth"),
		),
		complaintHandler: complaintHandlers.NewHandler(
			ucs.createComplaintUC,
			ucs.listComplaintsUC,
			ucs.getComplaintUC,
			ucs.updateStatusUC,
			ucs.rateComplaintUC,
			ucs.deleteComplaintUC,
			ucs.complaintStatsUC,
			log.Named("complaint"),
		),
		healthHandler: handlers.NewHealthHandler(c.healthChecks(), log),
	}
}

func (c *Container) healthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if client := c.redis; client != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}
	return checks
}
