package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/feinwerk/workbench-api/docs"
	"github.com/feinwerk/workbench-api/internal/config"
	"github.com/feinwerk/workbench-api/internal/database"
	"github.com/feinwerk/workbench-api/internal/http/handler"
	"github.com/feinwerk/workbench-api/internal/http/middleware"
	"github.com/feinwerk/workbench-api/internal/http/router"
	"github.com/feinwerk/workbench-api/internal/jobs"
	"github.com/feinwerk/workbench-api/internal/logger"
	"github.com/feinwerk/workbench-api/internal/repository"
	"github.com/feinwerk/workbench-api/internal/service"
)

// @title Workbench API
// @version 1.0
// @description Agency back office API for deals, projects, tasks, offers, invoices and time logging

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize repositories
	sequenceRepo := repository.NewCodeSequenceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	contactRepo := repository.NewContactRepository(db)
	valueTypeRepo := repository.NewValueTypeRepository(db)
	closingTypeRepo := repository.NewClosingTypeRepository(db)
	attributeRepo := repository.NewAttributeRepository(db)
	dealRepo := repository.NewDealRepository(db)
	projectRepo := repository.NewProjectRepository(db, sequenceRepo)
	taskRepo := repository.NewTaskRepository(db, sequenceRepo)
	offerRepo := repository.NewOfferRepository(db, sequenceRepo)
	logbookRepo := repository.NewLogbookRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db, sequenceRepo)

	// Initialize services
	customerService := service.NewCustomerService(customerRepo, contactRepo, log)
	valueTypeService := service.NewValueTypeService(valueTypeRepo, log)
	closingTypeService := service.NewClosingTypeService(closingTypeRepo, log)
	attributeService := service.NewAttributeService(attributeRepo, log)
	dealService := service.NewDealService(dealRepo, customerRepo, closingTypeRepo, valueTypeRepo, attributeRepo, log)
	projectService := service.NewProjectService(projectRepo, customerRepo, offerRepo, logbookRepo, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, offerRepo, logbookRepo, log)
	offerService := service.NewOfferService(offerRepo, projectRepo, log)
	logbookService := service.NewLogbookService(logbookRepo, taskRepo, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, projectRepo, offerRepo, log)

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	customerHandler := handler.NewCustomerHandler(customerService, log)
	contactHandler := handler.NewContactHandler(customerService, log)
	dealHandler := handler.NewDealHandler(dealService, log)
	valueTypeHandler := handler.NewValueTypeHandler(valueTypeService, log)
	closingTypeHandler := handler.NewClosingTypeHandler(closingTypeService, log)
	attributeHandler := handler.NewAttributeHandler(attributeService, log)
	projectHandler := handler.NewProjectHandler(projectService, offerService, taskService, invoiceService, log)
	taskHandler := handler.NewTaskHandler(taskService, logbookService, log)
	offerHandler := handler.NewOfferHandler(offerService, log)
	logbookHandler := handler.NewLogbookHandler(logbookService, log)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		rateLimiter,
		customerHandler,
		contactHandler,
		dealHandler,
		valueTypeHandler,
		closingTypeHandler,
		attributeHandler,
		projectHandler,
		taskHandler,
		offerHandler,
		logbookHandler,
		invoiceHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		job := jobs.NewRecurringInvoicesJob(invoiceService, log, jobs.DefaultRecurringInvoicesTimeout)
		if err := scheduler.AddJob(jobs.RecurringInvoicesJobName, cfg.Jobs.RecurringInvoicesSchedule, job.Run); err != nil {
			log.Error("Failed to register recurring invoice job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with recurring invoice job",
				zap.String("cron_expr", cfg.Jobs.RecurringInvoicesSchedule),
			)
		}
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
