package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"gatekeeper-http-service/config"
	"gatekeeper-http-service/controllers"
	"gatekeeper-http-service/middleware"
	"gatekeeper-http-service/services/container"
)

// SetupRouter initializes and returns the configured router
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.Use(middleware.RequestID())

	serviceContainer := container.NewServiceContainer(db, cfg, nil)
	middleware.InitAuthMiddleware(cfg)

	// Swagger documentation route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes configures all API routes
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	api := r.Group("/api")

	registerPublicRoutes(api, container)
	registerGateRoutes(api, container)
	registerResidentRoutes(api, container)
	registerAdminRoutes(api, container)
}

// registerPublicRoutes registers routes that need no authentication.
// They are still rate limited per client IP since they sit in front of
// the auth layer.
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	limit := middleware.IPRateLimiter(20, 40)
	api.GET("/ping", limit, controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", limit, controllers.HandleHealthFunc(container, "health"))
}

// registerGateRoutes registers the gate-side operations used by guards
func registerGateRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	gate := api.Group("/")
	gate.Use(middleware.AuthenticateGuard())

	visitors := gate.Group("/visitors")
	visitors.POST("/check-in", controllers.HandleVisitorFunc(container, "checkIn"))
	visitors.POST("/check-out/:logId", controllers.HandleVisitorFunc(container, "checkOut"))
	visitors.GET("/active", controllers.HandleVisitorFunc(container, "getActiveVisitors"))
	visitors.GET("/history", controllers.HandleVisitorFunc(container, "getHistory"))
	visitors.GET("/search", controllers.HandleVisitorFunc(container, "search"))
	visitors.GET("/filter", controllers.HandleVisitorFunc(container, "filter"))
	visitors.GET("/overstaying", controllers.HandleVisitorFunc(container, "getOverstaying"))
	visitors.GET("/flat/:flatId", controllers.HandleVisitorFunc(container, "getByFlat"))
	visitors.GET("/:logId", controllers.HandleVisitorFunc(container, "getVisitorLog"))

	// Scans face brute-force attempts on 6-digit codes; throttle them
	access := gate.Group("/access")
	access.POST("/validate-qr", middleware.PathRateLimiter(5, 10), controllers.HandleAccessFunc(container, "validateQR"))
	access.GET("/pass/:type/:id/qr", controllers.HandleAccessFunc(container, "getPassQR"))
	access.GET("/logs/user/:userId", controllers.HandleAccessFunc(container, "getUserAccessLogs"))
	access.GET("/logs/help/:helpId", controllers.HandleAccessFunc(container, "getHelpAccessLogs"))

	gate.POST("/staff/scan", middleware.PathRateLimiter(5, 10), controllers.HandleStaffFunc(container, "scan"))
}

// registerResidentRoutes registers approval and grant issuance routes
func registerResidentRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	resident := api.Group("/visitors")
	resident.Use(middleware.AuthenticateResident())

	resident.POST("/:logId/approve", controllers.HandleVisitorFunc(container, "approve"))
	resident.POST("/:logId/reject", controllers.HandleVisitorFunc(container, "reject"))
	resident.GET("/pending-approvals/:residentId", controllers.HandleVisitorFunc(container, "getPendingApprovals"))
	resident.POST("/pre-approve", controllers.HandleVisitorFunc(container, "createPreApproval"))
	resident.GET("/pre-approvals/:id/qr", controllers.HandleVisitorFunc(container, "getPreApprovalQR"))
	resident.POST("/frequent", controllers.HandleVisitorFunc(container, "createFrequentVisitor"))
}

// registerAdminRoutes registers staff management routes
func registerAdminRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	admin := api.Group("/staff")
	admin.Use(middleware.AuthenticateAdmin())

	admin.POST("", controllers.HandleStaffFunc(container, "addStaff"))
	admin.GET("", middleware.Cache(30*time.Second), controllers.HandleStaffFunc(container, "getAllStaff"))
	admin.GET("/flat/:flatId", controllers.HandleStaffFunc(container, "getStaffByFlat"))
	admin.GET("/:staffId", controllers.HandleStaffFunc(container, "getStaff"))
	admin.GET("/:staffId/attendance", controllers.HandleStaffFunc(container, "getAttendance"))
	admin.POST("/:staffId/link-flat/:flatId", controllers.HandleStaffFunc(container, "linkFlat"))
	admin.DELETE("/:staffId/unlink-flat/:flatId", controllers.HandleStaffFunc(container, "unlinkFlat"))
	admin.DELETE("/:staffId", controllers.HandleStaffFunc(container, "deleteStaff"))
}
