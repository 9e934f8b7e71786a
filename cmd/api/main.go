package main

import (
	"fmt"
	"net/http"
	"os"

	"heirloom/internal/config"
	"heirloom/internal/database"
	"heirloom/internal/handlers"
	"heirloom/internal/logger"
	"heirloom/internal/middleware"
	"heirloom/internal/services"
	"heirloom/internal/validator"
	"heirloom/internal/wizard"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "heirloom/internal/docs" // Import swagger docs
)

// @title           Heirloom API
// @version         1.0
// @description     Heirloom is a digital legacy vault that lets users register financial assets, assign family members as nominees with percentage shares, and attach supporting documents.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	profileService := services.NewProfileService(db)
	familyService := services.NewFamilyService(db)
	bankDirectory := services.NewBankDirectoryService(db)
	assetService := services.NewAssetService(db, bankDirectory)
	nomineeService := services.NewNomineeService(db)
	documentService := services.NewDocumentService(db, appConfig.UploadDir, appConfig.MaxUploadBytes)
	auditService := services.NewAuditService(db)

	// Wizard session store
	wizardStore := wizard.NewStore(appConfig.WizardTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService, auditService)
	familyHandler := handlers.NewFamilyHandler(familyService, auditService)
	assetHandler := handlers.NewAssetHandler(assetService, auditService)
	nomineeHandler := handlers.NewNomineeHandler(nomineeService, auditService)
	documentHandler := handlers.NewDocumentHandler(documentService, auditService)
	wizardHandler := handlers.NewWizardHandler(wizardStore, assetService, nomineeService, documentService, auditService)
	bankHandler := handlers.NewBankHandler(bankDirectory)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Profile and addresses
	profile := protected.Group("/profile")
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.GET("/addresses", profileHandler.ListAddresses)
	profile.POST("/addresses", profileHandler.AddAddress)
	profile.PUT("/addresses/:id", profileHandler.UpdateAddress)
	profile.DELETE("/addresses/:id", profileHandler.DeleteAddress)

	// Family member routes
	family := protected.Group("/family-members")
	family.POST("", familyHandler.CreateFamilyMember)
	family.GET("", familyHandler.ListFamilyMembers)
	family.GET("/:id", familyHandler.GetFamilyMember)
	family.PUT("/:id", familyHandler.UpdateFamilyMember)
	family.DELETE("/:id", familyHandler.DeleteFamilyMember)

	// Asset routes
	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)
	assets.POST("/:id/nominees", nomineeHandler.AddNominee)
	assets.GET("/:id/nominees", nomineeHandler.GetAssetNominees)
	assets.PUT("/:id/nominees", nomineeHandler.ReplaceNominees)
	assets.POST("/:id/document", documentHandler.UploadDocument)
	assets.GET("/:id/document", documentHandler.DownloadDocument)
	assets.DELETE("/:id/document", documentHandler.DeleteDocument)

	// Nominee assignment routes
	nominees := protected.Group("/nominees")
	nominees.PUT("/:id", nomineeHandler.UpdateNominee)
	nominees.DELETE("/:id", nomineeHandler.RemoveNominee)

	// Wizard routes
	wiz := protected.Group("/wizard")
	wiz.POST("", wizardHandler.OpenWizard)
	wiz.GET("/:id", wizardHandler.GetWizard)
	wiz.POST("/:id/asset", wizardHandler.SubmitAsset)
	wiz.POST("/:id/nominees", wizardHandler.AddNominee)
	wiz.POST("/:id/document", wizardHandler.UploadDocument)
	wiz.POST("/:id/advance", wizardHandler.Advance)
	wiz.POST("/:id/skip", wizardHandler.Skip)
	wiz.POST("/:id/back", wizardHandler.Back)
	wiz.POST("/:id/cancel", wizardHandler.Cancel)

	// Bank directory routes
	banks := protected.Group("/banks")
	banks.GET("/ifsc/:code", bankHandler.LookupIFSC)

	log.Infof("Starting Heirloom backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
