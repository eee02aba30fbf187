package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ventafarma/ventafarma-api/internal/config"
	domainRepo "github.com/ventafarma/ventafarma-api/internal/domain/repository"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/handler"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/middleware"
	"github.com/ventafarma/ventafarma-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth           *handler.AuthHandler
	Laboratory     *handler.LaboratoryHandler
	Product        *handler.ProductHandler
	Client         *handler.ClientHandler
	Representative *handler.RepresentativeHandler
	Distributor    *handler.DistributorHandler
	Order          *handler.OrderHandler
	Report         *handler.ReportHandler
	User           *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	LaboratoryRepo  domainRepo.LaboratoryRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.LaboratoryMiddleware(deps.LaboratoryRepo))

		// Per-laboratory rate limiter
		rateLimiter := middleware.NewLaboratoryRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Laboratories
	registerLaboratoryRoutes(protected, h)

	// Products
	registerProductRoutes(protected, h)

	// Clients
	registerClientRoutes(protected, h)

	// Representatives
	registerRepresentativeRoutes(protected, h)

	// Distributors
	registerDistributorRoutes(protected, h)

	// Orders
	registerOrderRoutes(protected, h, deps)

	// Reports
	registerReportRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Roles (Admin)
	registerRoleRoutes(protected, h)

	// Permissions (Admin)
	registerPermissionRoutes(protected, h)

	// Super Admin routes
	registerAdminRoutes(protected, h)
}

func registerLaboratoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	laboratories := protected.Group("/laboratories")
	{
		laboratories.GET("", h.Laboratory.List)
		laboratories.POST("", middleware.RequirePermission("manage-laboratories"), h.Laboratory.Create)
		laboratories.GET("/current", h.Laboratory.GetCurrent)
		laboratories.PUT("/current", middleware.RequirePermission("manage-laboratories"), h.Laboratory.Update)
		laboratories.GET("/current/members", h.Laboratory.ListMembers)
		laboratories.POST("/current/members", middleware.RequirePermission("manage-laboratories"), h.Laboratory.InviteMember)
		laboratories.PUT("/current/members/:user_id", middleware.RequirePermission("manage-laboratories"), h.Laboratory.UpdateMemberRole)
		laboratories.DELETE("/current/members/:user_id", middleware.RequirePermission("manage-laboratories"), h.Laboratory.RemoveMember)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		// Read endpoints are open to any authenticated member; the names
		// listing feeds the report product picker for sellers
		products.GET("", h.Product.List)
		products.GET("/names", h.Product.ListNames)
		products.GET("/:slug", h.Product.Get)

		manage := middleware.RequirePermission("manage-products")
		products.POST("", manage, h.Product.Create)
		products.POST("/import", manage, h.Product.Import)
		products.PUT("/:slug", manage, h.Product.Update)
		products.DELETE("/:slug", manage, h.Product.Delete)
	}
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	clients.Use(middleware.RequirePermission("manage-clients"))
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerRepresentativeRoutes(protected *gin.RouterGroup, h *Handlers) {
	representatives := protected.Group("/representatives")
	representatives.Use(middleware.RequirePermission("manage-representatives"))
	{
		representatives.GET("", h.Representative.List)
		representatives.POST("", h.Representative.Create)
		representatives.GET("/:id", h.Representative.Get)
		representatives.PUT("/:id", h.Representative.Update)
		representatives.DELETE("/:id", h.Representative.Delete)
	}
}

func registerDistributorRoutes(protected *gin.RouterGroup, h *Handlers) {
	distributors := protected.Group("/distributors")
	distributors.Use(middleware.RequirePermission("manage-distributors"))
	{
		distributors.GET("", h.Distributor.List)
		distributors.POST("", h.Distributor.Create)
		distributors.GET("/:id", h.Distributor.Get)
		distributors.PUT("/:id", h.Distributor.Update)
		distributors.DELETE("/:id", h.Distributor.Delete)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		// Order creation uses idempotency middleware to prevent duplicates
		orders.POST("", middleware.RequirePermission("create-orders"), middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.DELETE("/:id", middleware.RequirePermission("delete-orders"), h.Order.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Reports read through the laboratory scope, so a resolved laboratory is
	// mandatory here; without it every query would fail safe to zero rows and
	// an error would come back disguised as an empty report.
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"), middleware.RequireLaboratory())
	{
		reports.POST("/products", h.Report.GenerateProductReport)
		reports.POST("/products/export/csv", h.Report.ExportProductReportCSV)
		reports.POST("/products/export/pdf", h.Report.ExportProductReportPDF)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerRoleRoutes(protected *gin.RouterGroup, h *Handlers) {
	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}
}

func registerPermissionRoutes(protected *gin.RouterGroup, h *Handlers) {
	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole("super-admin"))
	{
		admin.POST("/laboratories/:id/assign-user", h.Laboratory.AssignUser)
	}
}
