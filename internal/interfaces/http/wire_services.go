package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/civictrack/civictrack/internal/application/complaint/usecases"
	"github.com/civictrack/civictrack/internal/domain/complaint"
	"github.com/civictrack/civictrack/internal/infrastructure/auth"
	"github.com/civictrack/civictrack/internal/infrastructure/config"
	"github.com/civictrack/civictrack/internal/infrastructure/email"
	"github.com/civictrack/civictrack/internal/infrastructure/permission"
	"github.com/civictrack/civictrack/internal/infrastructure/ratelimit"
	"github.com/civictrack/civictrack/internal/infrastructure/sequence"
	"github.com/civictrack/civictrack/internal/infrastructure/storage"
	"github.com/civictrack/civictrack/internal/interfaces/http/middleware"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

const redisPingTimeout = 5 * time.Second

// services holds the infrastructure services the use cases depend on.
type services struct {
	hasher     *auth.BcryptPasswordHasher
	tokens     *auth.JWTService
	authorizer authorization.Checker
	humanIDs   *complaint.HumanIDGenerator
	sanitizer  markdown.Service
	images     storage.ImageStore
	notifier   usecases.StatusNotifier
}

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Services
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.repos = newRepositories(c.db)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)

	enforcer, err := permission.NewEnforcer(c.db, log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	if err := permission.InitComplaintPermissions(enforcer, log); err != nil {
		return fmt.Errorf("failed to initialize complaint permissions: %w", err)
	}

	allocator, err := sequence.New(cfg.Complaint.SequenceBackend, c.db, c.redis, log)
	if err != nil {
		return err
	}

	images, err := storage.New(cfg.Storage, log.Named("storage"))
	if err != nil {
		return fmt.Errorf("failed to initialize image storage: %w", err)
	}

	sanitizer := markdown.NewService()

	c.svcs = &services{
		hasher:     auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		tokens:     c.jwtSvc,
		authorizer: enforcer,
		humanIDs:   complaint.NewHumanIDGenerator(allocator),
		sanitizer:  sanitizer,
		images:     images,
		notifier:   newStatusNotifier(cfg, sanitizer, log.Named("email")),
	}

	c.initRateLimiters()

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

func newStatusNotifier(cfg *config.Config, renderer markdown.Service, log logger.Interface) usecases.StatusNotifier {
	if !cfg.Email.Enabled() {
		log.Infow("smtp not configured, complaint status e-mails are disabled")
		return email.NewNoopNotifier(log)
	}

	sender := email.NewSMTPEmailService(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	})
	return email.NewComplaintNotifier(sender, renderer, cfg.Server.BaseURL, log)
}

// initRateLimiters needs Redis; without it both limiters stay nil and the
// routes run unthrottled.
func (c *Container) initRateLimiters() {
	if c.redis == nil {
		c.log.Infow("redis disabled, rate limiting is off")
		return
	}

	if n := c.cfg.Complaint.LoginRatePerMinute; n > 0 {
		c.loginLimiter = ratelimit.NewSlidingWindowLimiter(c.redis, "ratelimit:auth", ratelimit.RateLimitConfig{
			RequestsPerMinute: n,
		})
	}
	if n := c.cfg.Complaint.CreateRatePerMinute; n > 0 {
		c.createLimiter = ratelimit.NewFixedWindowLimiter(c.redis, "ratelimit:complaint_create", n, time.Minute)
	}
}

func (c *Container) rateLimitMiddleware(limiter ratelimit.Limiter, scope string) gin.HandlerFunc {
	if limiter == nil {
		return nil
	}
	return middleware.RateLimit(limiter, scope, c.log)
}
