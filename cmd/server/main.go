package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/shiftflow/shiftflow-api/internal/config"
	"github.com/shiftflow/shiftflow-api/internal/constants"
	"github.com/shiftflow/shiftflow-api/internal/database"
	"github.com/shiftflow/shiftflow-api/internal/handlers"
	"github.com/shiftflow/shiftflow-api/internal/ledger"
	"github.com/shiftflow/shiftflow-api/internal/middleware"
	"github.com/shiftflow/shiftflow-api/internal/repository"
	"github.com/shiftflow/shiftflow-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	db := database.GetDB()

	// Repositories
	shiftRepo := repository.NewShiftRepository(db)
	userRepo := repository.NewUserRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	unavailabilityRepo := repository.NewUnavailabilityRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	// Services
	scheduleService := services.NewScheduleService(db)
	workflowService := services.NewWorkflowService(db)
	shiftService := services.NewShiftService(shiftRepo, positionRepo, scheduleService)
	positionService := services.NewPositionService(positionRepo)
	templateService := services.NewTemplateService(templateRepo, positionRepo)
	availabilityService := services.NewAvailabilityService(unavailabilityRepo)
	authService := services.NewAuthService(userRepo, positionRepo)

	// Undo ledger, one slot per manager session
	actionLedger := ledger.New(ledger.NewMemoryStore())

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	shiftHandler := handlers.NewShiftHandler(shiftService, scheduleService, workflowService, actionLedger)
	positionHandler := handlers.NewPositionHandler(positionService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	employeeHandler := handlers.NewEmployeeHandler(shiftService, availabilityService)
	employeeAdminHandler := handlers.NewEmployeeAdminHandler(authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "ShiftFlow API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Manager routes
		manager := api.Group("/manager")
		manager.Use(middleware.RequireAuth(), middleware.RequireManager())
		{
			manager.GET("/shifts", shiftHandler.ListShifts)
			manager.POST("/shifts", shiftHandler.CreateShift)
			manager.GET("/shifts/:id", shiftHandler.GetShift)
			manager.PATCH("/shifts/:id", shiftHandler.UpdateShift)
			manager.DELETE("/shifts/:id", shiftHandler.DeleteShift)
			manager.POST("/shifts/:id/publish", shiftHandler.PublishShift)
			manager.POST("/shifts/:id/assignments", shiftHandler.SyncAssignments)
			manager.POST("/shifts/bulk-publish", shiftHandler.BulkPublish)
			manager.POST("/shifts/bulk-delete", shiftHandler.BulkDelete)
			manager.POST("/shifts/undo", shiftHandler.Undo)

			manager.GET("/positions", positionHandler.ListPositions)
			manager.POST("/positions", positionHandler.CreatePosition)
			manager.PUT("/positions/:id", positionHandler.UpdatePosition)
			manager.DELETE("/positions/:id", positionHandler.DeletePosition)

			manager.GET("/templates", templateHandler.ListTemplates)
			manager.POST("/templates", templateHandler.CreateTemplate)
			manager.PUT("/templates/:id", templateHandler.UpdateTemplate)
			manager.DELETE("/templates/:id", templateHandler.DeleteTemplate)

			manager.GET("/employees", employeeAdminHandler.ListEmployees)
			manager.POST("/employees", employeeAdminHandler.CreateEmployee)
			manager.PATCH("/employees/:id", employeeAdminHandler.UpdateEmployee)
			manager.POST("/employees/:id/reset-password", employeeAdminHandler.ResetPassword)
		}

		// Employee routes
		employee := api.Group("/employee")
		employee.Use(middleware.RequireAuth(), middleware.RequireEmployee())
		{
			employee.GET("/shifts", employeeHandler.MyShifts)
			employee.GET("/shifts/upcoming", employeeHandler.UpcomingShifts)
			employee.GET("/unavailability", employeeHandler.ListUnavailability)
			employee.POST("/unavailability/toggle", employeeHandler.ToggleUnavailability)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
