package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"

	"github.com/krmayoral/Agenda-WF/internal/config"
	"github.com/krmayoral/Agenda-WF/internal/database"
	"github.com/krmayoral/Agenda-WF/internal/handlers"
	"github.com/krmayoral/Agenda-WF/internal/registry"
	"github.com/krmayoral/Agenda-WF/internal/store"
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

	// Load the registry from the snapshot store. Absent or unreadable
	// snapshots start the session with empty collections.
	kv := store.NewGormStore(database.GetDB())
	reg, err := registry.Load(kv)
	if err != nil {
		log.Fatalf("Failed to load registry: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Session middleware backs due-soon acknowledgements. The in-memory
	// store is deliberate: acknowledgements must not outlive the process.
	sessionStore := memstore.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("agenda_session", sessionStore))

	// Initialize handlers
	confirmations := handlers.NewDeleteConfirmations()
	employeeHandler := handlers.NewEmployeeHandler(reg, confirmations)
	taskHandler := handlers.NewTaskHandler(reg, confirmations)
	searchHandler := handlers.NewSearchHandler(reg)
	notificationHandler := handlers.NewNotificationHandler(reg)
	reportHandler := handlers.NewReportHandler(reg)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Agenda WF is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		employees := api.Group("/employees")
		{
			employees.GET("", employeeHandler.ListEmployees)
			employees.POST("", employeeHandler.CreateEmployee)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.PUT("/:id", employeeHandler.UpdateEmployee)
			employees.POST("/:id/delete-request", employeeHandler.RequestDelete)
			employees.POST("/:id/delete-cancel", employeeHandler.CancelDelete)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/summary", taskHandler.Summary)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.POST("/:id/cycle", taskHandler.CycleStatus)
			tasks.GET("/:id/countdown", taskHandler.Countdown)
			tasks.GET("/:id/countdown/stream", taskHandler.StreamCountdown)
			tasks.POST("/:id/delete-request", taskHandler.RequestDelete)
			tasks.POST("/:id/delete-cancel", taskHandler.CancelDelete)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		api.GET("/search", searchHandler.Search)

		meta := api.Group("/meta")
		{
			meta.GET("/degrees", employeeHandler.ListDegrees)
			meta.GET("/positions", employeeHandler.ListPositions)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("/:id/ack", notificationHandler.Acknowledge)
		}

		api.GET("/reports/agenda", reportHandler.AgendaPDF)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
