package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/feinwerk/workbench-api/internal/config"
	"github.com/feinwerk/workbench-api/internal/database"
	"github.com/feinwerk/workbench-api/internal/http/handler"
	"github.com/feinwerk/workbench-api/internal/http/middleware"

	_ "github.com/feinwerk/workbench-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	db                 *gorm.DB
	rateLimiter        *middleware.RateLimiter
	customerHandler    *handler.CustomerHandler
	contactHandler     *handler.ContactHandler
	dealHandler        *handler.DealHandler
	valueTypeHandler   *handler.ValueTypeHandler
	closingTypeHandler *handler.ClosingTypeHandler
	attributeHandler   *handler.AttributeHandler
	projectHandler     *handler.ProjectHandler
	taskHandler        *handler.TaskHandler
	offerHandler       *handler.OfferHandler
	logbookHandler     *handler.LogbookHandler
	invoiceHandler     *handler.InvoiceHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	rateLimiter *middleware.RateLimiter,
	customerHandler *handler.CustomerHandler,
	contactHandler *handler.ContactHandler,
	dealHandler *handler.DealHandler,
	valueTypeHandler *handler.ValueTypeHandler,
	closingTypeHandler *handler.ClosingTypeHandler,
	attributeHandler *handler.AttributeHandler,
	projectHandler *handler.ProjectHandler,
	taskHandler *handler.TaskHandler,
	offerHandler *handler.OfferHandler,
	logbookHandler *handler.LogbookHandler,
	invoiceHandler *handler.InvoiceHandler,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		db:                 db,
		rateLimiter:        rateLimiter,
		customerHandler:    customerHandler,
		contactHandler:     contactHandler,
		dealHandler:        dealHandler,
		valueTypeHandler:   valueTypeHandler,
		closingTypeHandler: closingTypeHandler,
		attributeHandler:   attributeHandler,
		projectHandler:     projectHandler,
		taskHandler:        taskHandler,
		offerHandler:       offerHandler,
		logbookHandler:     logbookHandler,
		invoiceHandler:     invoiceHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Customers
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", rt.customerHandler.List)
			r.Post("/", rt.customerHandler.Create)
			r.Get("/{id}", rt.customerHandler.GetByID)
			r.Put("/{id}", rt.customerHandler.Update)
			r.Delete("/{id}", rt.customerHandler.Delete)
			r.Get("/{id}/contacts", rt.customerHandler.ListContacts)
			r.Post("/{id}/contacts", rt.customerHandler.CreateContact)
		})

		// Contacts
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/{id}", rt.contactHandler.GetByID)
			r.Put("/{id}", rt.contactHandler.Update)
			r.Delete("/{id}", rt.contactHandler.Delete)
		})

		// Deals
		r.Route("/deals", func(r chi.Router) {
			r.Get("/", rt.dealHandler.List)
			r.Post("/", rt.dealHandler.Create)
			r.Get("/pipeline", rt.dealHandler.Pipeline)
			r.Get("/{id}", rt.dealHandler.GetByID)
			r.Put("/{id}", rt.dealHandler.Update)
			r.Put("/{id}/status", rt.dealHandler.UpdateStatus)
			r.Delete("/{id}", rt.dealHandler.Delete)
		})

		// Deal value types
		r.Route("/value-types", func(r chi.Router) {
			r.Get("/", rt.valueTypeHandler.List)
			r.Post("/", rt.valueTypeHandler.Create)
			r.Put("/{id}", rt.valueTypeHandler.Update)
			r.Delete("/{id}", rt.valueTypeHandler.Delete)
		})

		// Deal closing types
		r.Route("/closing-types", func(r chi.Router) {
			r.Get("/", rt.closingTypeHandler.List)
			r.Post("/", rt.closingTypeHandler.Create)
			r.Put("/{id}", rt.closingTypeHandler.Update)
			r.Delete("/{id}", rt.closingTypeHandler.Delete)
		})

		// Deal attribute groups and attributes
		r.Route("/attribute-groups", func(r chi.Router) {
			r.Get("/", rt.attributeHandler.ListGroups)
			r.Post("/", rt.attributeHandler.CreateGroup)
			r.Get("/{id}", rt.attributeHandler.GetGroup)
			r.Put("/{id}", rt.attributeHandler.UpdateGroup)
			r.Delete("/{id}", rt.attributeHandler.DeleteGroup)
		})

		r.Route("/attributes", func(r chi.Router) {
			r.Post("/", rt.attributeHandler.CreateAttribute)
			r.Put("/{id}", rt.attributeHandler.UpdateAttribute)
			r.Delete("/{id}", rt.attributeHandler.DeleteAttribute)
		})

		// Projects
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", rt.projectHandler.List)
			r.Post("/", rt.projectHandler.Create)
			r.Get("/{id}", rt.projectHandler.GetByID)
			r.Put("/{id}", rt.projectHandler.Update)
			r.Delete("/{id}", rt.projectHandler.Delete)
			r.Get("/{id}/overview", rt.projectHandler.Overview)
			r.Get("/{id}/offers", rt.projectHandler.ListOffers)
			r.Get("/{id}/tasks", rt.projectHandler.ListTasks)
			r.Get("/{id}/invoices", rt.projectHandler.ListInvoices)
		})

		// Tasks
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", rt.taskHandler.List)
			r.Post("/", rt.taskHandler.Create)
			r.Get("/{id}", rt.taskHandler.GetByID)
			r.Put("/{id}", rt.taskHandler.Update)
			r.Put("/{id}/status", rt.taskHandler.UpdateStatus)
			r.Delete("/{id}", rt.taskHandler.Delete)
			r.Get("/{id}/overview", rt.taskHandler.Overview)
			r.Get("/{id}/hours", rt.taskHandler.ListHours)
		})

		// Offers
		r.Route("/offers", func(r chi.Router) {
			r.Post("/", rt.offerHandler.Create)
			r.Get("/{id}", rt.offerHandler.GetByID)
			r.Put("/{id}", rt.offerHandler.Update)
			r.Put("/{id}/status", rt.offerHandler.UpdateStatus)
			r.Delete("/{id}", rt.offerHandler.Delete)
			r.Post("/{id}/services", rt.offerHandler.AddService)
		})

		// Offer service lines
		r.Route("/services", func(r chi.Router) {
			r.Put("/{id}", rt.offerHandler.UpdateService)
			r.Delete("/{id}", rt.offerHandler.DeleteService)
		})

		// Logged hours
		r.Route("/logged-hours", func(r chi.Router) {
			r.Post("/", rt.logbookHandler.Create)
			r.Get("/{id}", rt.logbookHandler.GetByID)
			r.Put("/{id}", rt.logbookHandler.Update)
			r.Delete("/{id}", rt.logbookHandler.Delete)
		})

		// Invoices
		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", rt.invoiceHandler.List)
			r.Post("/", rt.invoiceHandler.Create)
			r.Get("/{id}", rt.invoiceHandler.GetByID)
			r.Put("/{id}", rt.invoiceHandler.Update)
			r.Put("/{id}/status", rt.invoiceHandler.UpdateStatus)
			r.Delete("/{id}", rt.invoiceHandler.Delete)
		})

		// Recurring invoice templates
		r.Route("/recurring-invoices", func(r chi.Router) {
			r.Get("/", rt.invoiceHandler.ListRecurring)
			r.Post("/", rt.invoiceHandler.CreateRecurring)
			r.Post("/create-due", rt.invoiceHandler.CreateDue)
			r.Get("/{id}", rt.invoiceHandler.GetRecurringByID)
			r.Put("/{id}", rt.invoiceHandler.UpdateRecurring)
			r.Delete("/{id}", rt.invoiceHandler.DeleteRecurring)
		})
	})

	return r
}
