package container

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"gatekeeper-http-service/config"
	"gatekeeper-http-service/services"
)

// ServiceContainer wires all services together and hands them to
// controllers by name
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// Base services
	jwtService services.InterfaceJWTService

	// Storage and messaging services
	redisService     services.InterfaceRedisService
	notificationSvc  services.InterfaceNotificationService
	gateEventService services.InterfaceGateEventService

	// Gatekeeping services
	visitorService      services.InterfaceVisitorService
	accessService       services.InterfaceAccessService
	domesticHelpService services.InterfaceDomesticHelpService

	mu sync.RWMutex
}

// NewServiceContainer creates a new service container
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}

	if cfg == nil {
		panic("configuration is nil")
	}

	// Probe the Redis connection; a dead cache degrades, never blocks
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis connection test failed: %v, caching disabled", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices initializes all services
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Base services
	c.jwtService = services.NewJWTService(c.config)

	// Storage and messaging
	c.redisService = services.NewRedisService(c.config)
	c.notificationSvc = services.NewNotificationService(c.config)
	c.gateEventService = services.NewGateEventService(c.config)

	// Gatekeeping services
	c.visitorService = services.NewVisitorService(c.db, c.redisService, c.notificationSvc, c.gateEventService, c.config)
	c.accessService = services.NewAccessService(c.db, c.visitorService, c.gateEventService, c.config)
	c.domesticHelpService = services.NewDomesticHelpService(c.db, c.gateEventService, c.config)
}

// GetService returns the service registered under the given name
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "notification":
		return c.notificationSvc
	case "gate_event":
		return c.gateEventService
	case "visitor":
		return c.visitorService
	case "access":
		return c.accessService
	case "domestic_help":
		return c.domesticHelpService
	default:
		return nil
	}
}

// GetDB returns the database connection
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
