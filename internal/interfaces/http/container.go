package http

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	registryUsecases "tempus/internal/application/registry/usecases"
	sessionUsecases "tempus/internal/application/session/usecases"
	"tempus/internal/infrastructure/auth"
	"tempus/internal/infrastructure/config"
	"tempus/internal/infrastructure/pubsub"
	"tempus/internal/infrastructure/ratelimit"
	"tempus/internal/infrastructure/repository"
	"tempus/internal/infrastructure/services"
	"tempus/internal/interfaces/http/handlers"
	"tempus/internal/interfaces/http/middleware"
	sharedDB "tempus/internal/shared/db"
	"tempus/internal/shared/goroutine"
	"tempus/internal/shared/logger"
)

// Container wires repositories, services, use cases and handlers. Batch
// jobs are exposed so the server command can hand them to the scheduler.
type Container struct {
	redis *redis.Client

	sessionRepo     *repository.SessionRepository
	requestRepo     *repository.ExtensionRequestRepository
	workstationRepo *repository.WorkstationRepository
	userRepo        *repository.UserRepository
	auditRepo       *repository.AuditLogRepository

	tx       *sharedDB.TransactionManager
	hub      *services.SessionHub
	locks    *services.SessionLocks
	audit    *services.AuditRecorder
	eventBus *pubsub.RedisSessionEventBus
	notifier *fanoutNotifier

	jwtService        *auth.JWTService
	workstationTokens *auth.WorkstationTokenService

	authMiddleware        *middleware.AuthMiddleware
	workstationMiddleware *middleware.WorkstationAuthMiddleware
	rateLimitMiddleware   *middleware.RateLimitMiddleware

	sessionHandler   *handlers.SessionHandler
	extensionHandler *handlers.ExtensionHandler
	registryHandler  *handlers.RegistryHandler
	auditHandler     *handlers.AuditHandler
	hubHandler       *handlers.HubHandler

	// Batch jobs for the scheduler.
	DecrementJob *sessionUsecases.DecrementActiveUseCase
	WarningJob   *sessionUsecases.SendWarningsUseCase
	CleanupJob   *sessionUsecases.CleanupSessionsUseCase
	ReportJob    *sessionUsecases.DailyReportUseCase

	logger logger.Interface
}

func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{logger: log}

	c.redis = initRedis(cfg, log)

	c.sessionRepo = repository.NewSessionRepository(db)
	c.requestRepo = repository.NewExtensionRequestRepository(db)
	c.workstationRepo = repository.NewWorkstationRepository(db)
	c.userRepo = repository.NewUserRepository(db)
	c.auditRepo = repository.NewAuditLogRepository(db)

	c.tx = sharedDB.NewTransactionManager(db)
	c.hub = services.NewSessionHub(log)
	c.locks = services.NewSessionLocks(time.Duration(cfg.Session.LockWait) * time.Millisecond)
	c.audit = services.NewAuditRecorder(c.auditRepo, log)
	c.eventBus = pubsub.NewRedisSessionEventBus(c.redis, log)
	c.notifier = newFanoutNotifier(c.hub, c.eventBus, log)

	c.jwtService = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpMinute)
	c.workstationTokens = auth.NewWorkstationTokenService(0)

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtService, log)
	c.workstationMiddleware = middleware.NewWorkstationAuthMiddleware(
		c.workstationRepo, c.workstationTokens, cfg.Session.AllowUnboundStart, log)
	c.rateLimitMiddleware = middleware.NewRateLimitMiddleware(
		ratelimit.NewRedisRateLimiter(c.redis), cfg.Session.ValidateRateLimit)

	c.buildUseCases(cfg)
	c.buildHandlers(cfg)

	return c
}

func (c *Container) buildUseCases(cfg *config.Config) {
	c.DecrementJob = sessionUsecases.NewDecrementActiveUseCase(
		c.sessionRepo, c.requestRepo, c.workstationRepo, c.locks, c.notifier, c.audit,
		cfg.Session.CountdownInterval, c.logger)
	c.WarningJob = sessionUsecases.NewSendWarningsUseCase(
		c.sessionRepo, c.notifier, cfg.Session.WarningTimes, cfg.Session.WarningInterval, c.logger)
	c.CleanupJob = sessionUsecases.NewCleanupSessionsUseCase(
		c.sessionRepo, c.audit, cfg.Session.RetentionDays, c.logger)
	c.ReportJob = sessionUsecases.NewDailyReportUseCase(
		c.sessionRepo, c.audit, c.logger)
}

func (c *Container) buildHandlers(cfg *config.Config) {
	c.sessionHandler = handlers.NewSessionHandler(handlers.SessionHandlerDeps{
		CreateSession: sessionUsecases.NewCreateSessionUseCase(
			c.sessionRepo, c.userRepo, c.workstationRepo, c.audit, cfg.Session.CodeLength, c.logger),
		ValidateCode: sessionUsecases.NewValidateCodeUseCase(c.sessionRepo, c.logger),
		StartSession: sessionUsecases.NewStartSessionUseCase(
			c.sessionRepo, c.userRepo, c.workstationRepo, c.locks, c.notifier, c.audit, c.logger),
		AddTime: sessionUsecases.NewAddTimeUseCase(
			c.sessionRepo, c.locks, c.notifier, c.audit, c.logger),
		TerminateSession: sessionUsecases.NewTerminateSessionUseCase(
			c.sessionRepo, c.requestRepo, c.workstationRepo, c.locks, c.notifier, c.audit, c.logger),
		SuspendSession: sessionUsecases.NewSuspendSessionUseCase(
			c.sessionRepo, c.locks, c.notifier, c.audit, c.logger),
		ResumeSession: sessionUsecases.NewResumeSessionUseCase(
			c.sessionRepo, c.locks, c.notifier, c.audit, c.logger),
		GetSession:      sessionUsecases.NewGetSessionUseCase(c.sessionRepo),
		GetTime:         sessionUsecases.NewGetTimeUseCase(c.sessionRepo),
		ListSessions:    sessionUsecases.NewListSessionsUseCase(c.sessionRepo),
		ActiveSessions:  sessionUsecases.NewActiveSessionsUseCase(c.sessionRepo),
		SessionStats:    sessionUsecases.NewSessionStatsUseCase(c.sessionRepo),
		DefaultDuration: cfg.Session.DefaultDuration,
		Logger:          c.logger,
	})

	c.extensionHandler = handlers.NewExtensionHandler(
		sessionUsecases.NewRequestExtensionUseCase(
			c.sessionRepo, c.requestRepo, c.locks, c.tx, c.notifier, c.audit, c.logger),
		sessionUsecases.NewRespondExtensionUseCase(
			c.sessionRepo, c.requestRepo, c.locks, c.tx, c.notifier, c.audit, c.logger),
		sessionUsecases.NewListExtensionRequestsUseCase(c.requestRepo),
		c.logger,
	)

	c.registryHandler = handlers.NewRegistryHandler(
		registryUsecases.NewEnrollWorkstationUseCase(c.workstationRepo, c.workstationTokens, c.logger),
		registryUsecases.NewListWorkstationsUseCase(c.workstationRepo),
		registryUsecases.NewCreateUserUseCase(c.userRepo, c.logger),
		registryUsecases.NewListUsersUseCase(c.userRepo),
		c.logger,
	)

	c.auditHandler = handlers.NewAuditHandler(c.auditRepo)
	c.hubHandler = handlers.NewHubHandler(
		c.hub,
		sessionUsecases.NewGetTimeUseCase(c.sessionRepo),
		sessionUsecases.NewGetWorkstationSessionUseCase(c.sessionRepo),
		c.logger,
	)
}

// StartEventRelay bridges events published by other engine instances into
// the local hub. Blocks until ctx is cancelled; run it in a goroutine.
func (c *Container) StartEventRelay(ctx context.Context) {
	goroutine.SafeGo(c.logger, "pubsub.relay", func() {
		if err := c.eventBus.Subscribe(ctx, c.hub.Publish); err != nil && ctx.Err() == nil {
			c.logger.Errorw("session event relay stopped", "error", err)
		}
	})
}

// Close releases the container's external connections.
func (c *Container) Close() error {
	return c.redis.Close()
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalw("failed to connect to Redis", "error", err)
	}
	log.Infow("Redis connection established successfully")

	return redisClient
}
