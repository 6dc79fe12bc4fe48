package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"crmdesk/internal/application/ticketsync"
	"crmdesk/internal/domain/shared/events"
	"crmdesk/internal/infrastructure/config"
	"crmdesk/internal/infrastructure/ratelimit"
	"crmdesk/internal/infrastructure/scheduler"
	"crmdesk/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, services,
// handlers and background workers. It wires everything together and
// provides Shutdown() for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	svcs  *allServices
	hdlrs *allHandlers

	rateLimiter ratelimit.Limiter

	// Background workers
	bus              *events.Bus
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer wires the application. redisClient may be nil; the sync lock
// and the rate limiter then fall back to their in-process versions.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	c.repos = newRepositories(db)
	c.initServices()

	if err := c.initEventBus(); err != nil {
		return nil, err
	}
	if err := c.initSync(); err != nil {
		c.Shutdown()
		return nil, fmt.Errorf("failed to initialize sync: %w", err)
	}
	if err := c.initScheduler(); err != nil {
		c.Shutdown()
		return nil, err
	}

	c.initRateLimiter()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRateLimiter() {
	rl := c.cfg.RateLimit
	if !rl.Enabled {
		return
	}
	if c.redis != nil {
		c.rateLimiter = ratelimit.NewRedisLimiter(c.redis, rl.Requests, rl.Window())
		return
	}
	c.rateLimiter = ratelimit.NewLocalLimiter(rl.Requests, rl.Window())
}

// ClosedTicketsSync runs one sync outside the HTTP server.
func (c *Container) ClosedTicketsSync(ctx context.Context, cmd ticketsync.SyncClosedTicketsCommand) (*ticketsync.SyncResult, error) {
	return c.svcs.syncer.Execute(ctx, cmd)
}

// StartScheduler starts the periodic sync if one was registered.
func (c *Container) StartScheduler() {
	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
}

// Shutdown stops the scheduler first so no run starts after the bus is
// drained, then stops the bus.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}
	if c.bus != nil {
		if err := c.bus.Stop(); err != nil {
			c.log.Errorw("failed to stop event bus", "error", err)
		}
	}
}
