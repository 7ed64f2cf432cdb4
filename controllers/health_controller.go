package controllers

import (
	"github.com/gin-gonic/gin"

	"gatekeeper-http-service/internal/error/response"
	"gatekeeper-http-service/services"
	"gatekeeper-http-service/services/container"
)

// HealthController reports service liveness
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController creates a new health controller
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// Ping answers a bare liveness probe
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/ping [get]
func (c *HealthController) Ping() {
	c.Ctx.JSON(200, gin.H{"message": "pong"})
}

// Health reports the state of the service's dependencies
// @Summary      Health check
// @Description  Database connectivity plus the state of the MQTT gate event link
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/health [get]
func (c *HealthController) Health() {
	dbStatus := "up"
	if sqlDB, err := c.Container.GetDB().DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	mqttStatus := "disabled"
	if gateEvents, ok := c.Container.GetService("gate_event").(services.InterfaceGateEventService); ok {
		if gateEvents.IsConnected() {
			mqttStatus = "connected"
		} else {
			mqttStatus = "disconnected"
		}
	}

	response.Success(c.Ctx, gin.H{
		"database": dbStatus,
		"mqtt":     mqttStatus,
	})
}

// HandleHealthFunc returns a gin handler dispatching to a health
// controller method
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "health":
			controller.Health()
		default:
			response.ParamError(ctx, "Invalid method")
		}
	}
}
