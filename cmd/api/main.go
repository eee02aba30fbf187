package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ventafarma/ventafarma-api/internal/application/service"
	"github.com/ventafarma/ventafarma-api/internal/config"
	"github.com/ventafarma/ventafarma-api/internal/infrastructure/database"
	"github.com/ventafarma/ventafarma-api/internal/infrastructure/repository"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/handler"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/routes"
	"github.com/ventafarma/ventafarma-api/pkg/email"
	"github.com/ventafarma/ventafarma-api/pkg/export"
	"github.com/ventafarma/ventafarma-api/pkg/oauth"
	"github.com/ventafarma/ventafarma-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	laboratoryRepo := repository.NewLaboratoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	clientRepo := repository.NewClientRepository(db)
	representativeRepo := repository.NewRepresentativeRepository(db)
	distributorRepo := repository.NewDistributorRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize report rendering
	pdfExporter, err := export.NewPDFExporter(cfg.Report.GotenbergURL, cfg.App.Name, &http.Client{
		Timeout: 30 * time.Second,
	})
	if err != nil {
		log.Fatalf("Failed to initialize PDF exporter: %v", err)
	}
	moneyFormatter := export.NewCurrencyFormatter(cfg.Report.Locale, cfg.Report.Currency)

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService)
	laboratoryService := service.NewLaboratoryService(laboratoryRepo)
	productService := service.NewProductService(productRepo)
	clientService := service.NewClientService(clientRepo)
	representativeService := service.NewRepresentativeService(representativeRepo)
	distributorService := service.NewDistributorService(distributorRepo)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, productRepo, clientRepo, representativeRepo, distributorRepo, laboratoryRepo)
	reportService := service.NewReportService(orderRepo, pdfExporter, moneyFormatter)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:           handler.NewAuthHandler(authService, googleOAuthService),
		Laboratory:     handler.NewLaboratoryHandler(laboratoryService),
		Product:        handler.NewProductHandler(productService),
		Client:         handler.NewClientHandler(clientService),
		Representative: handler.NewRepresentativeHandler(representativeService),
		Distributor:    handler.NewDistributorHandler(distributorService),
		Order:          handler.NewOrderHandler(orderService),
		Report:         handler.NewReportHandler(reportService, userService),
		User:           handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		LaboratoryRepo:  laboratoryRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
