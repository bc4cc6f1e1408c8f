package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lynxview-api/internal/config"
	"github.com/yukikurage/lynxview-api/internal/constants"
	"github.com/yukikurage/lynxview-api/internal/handlers"
	"github.com/yukikurage/lynxview-api/internal/metrics"
	"github.com/yukikurage/lynxview-api/internal/middleware"
	"github.com/yukikurage/lynxview-api/internal/repository"
	"github.com/yukikurage/lynxview-api/internal/services"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers into a gin engine
func New(cfg *config.Config, db *gorm.DB, log *slog.Logger) *gin.Engine {
	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	techRepo := repository.NewTechnologyRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	entryRepo := repository.NewTimeEntryRepository(db)

	// Services
	userService := services.NewUserService(userRepo, cfg.BcryptCost)
	projectService := services.NewProjectService(projectRepo, log)
	techService := services.NewTechnologyService(techRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, projectRepo)
	entryService := services.NewTimeEntryService(entryRepo, userRepo, projectRepo, taskRepo, invoiceRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, log)
	userHandler := handlers.NewUserHandler(userService, log)
	projectHandler := handlers.NewProjectHandler(projectService, log)
	techHandler := handlers.NewTechnologyHandler(techService, log)
	taskHandler := handlers.NewTaskHandler(taskService, log)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, log)
	entryHandler := handlers.NewTimeEntryHandler(entryService, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", constants.HeaderUserID, constants.HeaderRequestID},
		ExposeHeaders:    []string{constants.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// Health check endpoint
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api/v1")
	api.Use(middleware.CallerIdentity())
	{
		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/by-role/:role", userHandler.ListUsersByRole)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/:id/tasks", taskHandler.ListUserTasks)
			users.GET("/:id/time-entries", entryHandler.ListUserTimeEntries)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PATCH("/:id", projectHandler.UpdateProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.GET("/:id/tasks", taskHandler.ListProjectTasks)
			projects.GET("/:id/invoices", invoiceHandler.ListProjectInvoices)
			projects.GET("/:id/time-entries", entryHandler.ListProjectTimeEntries)
			projects.GET("/:id/hours-summary", entryHandler.GetProjectHoursSummary)
		}

		techs := api.Group("/technologies")
		{
			techs.GET("", techHandler.ListTechnologies)
			techs.POST("", techHandler.CreateTechnology)
			techs.GET("/categories", techHandler.ListCategories)
			techs.GET("/categories/:category", techHandler.ListByCategory)
			techs.GET("/:id", techHandler.GetTechnology)
			techs.PATCH("/:id", techHandler.UpdateTechnology)
			techs.PUT("/:id", techHandler.UpdateTechnology)
			techs.DELETE("/:id", techHandler.DeleteTechnology)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", middleware.RequireCaller(), taskHandler.CreateTask)
			tasks.GET("/overdue", taskHandler.ListOverdueTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		invoices := api.Group("/invoices")
		{
			invoices.GET("", invoiceHandler.ListInvoices)
			invoices.POST("", invoiceHandler.CreateInvoice)
			invoices.GET("/overdue", invoiceHandler.ListOverdueInvoices)
			invoices.GET("/:id", invoiceHandler.GetInvoice)
			invoices.PATCH("/:id", invoiceHandler.UpdateInvoice)
			invoices.PUT("/:id", invoiceHandler.UpdateInvoice)
			invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)
		}

		entries := api.Group("/time-entries")
		{
			entries.GET("", entryHandler.ListTimeEntries)
			entries.POST("", entryHandler.CreateTimeEntry)
			entries.GET("/unbilled", entryHandler.ListUnbilledTimeEntries)
			entries.GET("/:id", entryHandler.GetTimeEntry)
			entries.PATCH("/:id", entryHandler.UpdateTimeEntry)
			entries.PUT("/:id", entryHandler.UpdateTimeEntry)
			entries.DELETE("/:id", entryHandler.DeleteTimeEntry)
		}
	}

	return r
}
