package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/complete_appointment"
	confirmAppointmentHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/create_appointment"
	createDateBlockHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/create_date_block"
	deleteDateBlockHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/delete_date_block"
	deleteServiceHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/delete_service"
	getAdminAppointmentsHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/get_admin_appointments"
	getAppointmentHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/get_client_appointments"
	getScheduleHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/get_schedule"
	listServicesHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/list_services"
	purgeAppointmentsHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/purge_appointments"
	remindAppointmentHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/remind_appointment"
	saveServiceHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/save_service"
	updateOperatingHoursHandler "github.com/touchedelumiere/TDL-BookingService/internal/api/handlers/update_operating_hours"
	"github.com/touchedelumiere/TDL-BookingService/internal/api/middleware"
	"github.com/touchedelumiere/TDL-BookingService/internal/config"
	appointmentRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/appointment"
	scheduleRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/schedule"
	catalogRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/servicecatalog"
	settingsRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/settings"
	googleCalendarClient "github.com/touchedelumiere/TDL-BookingService/internal/integrations/googlecalendar"
	resendClient "github.com/touchedelumiere/TDL-BookingService/internal/integrations/resend"
	whatsappClient "github.com/touchedelumiere/TDL-BookingService/internal/integrations/whatsapp"
	appointmentsService "github.com/touchedelumiere/TDL-BookingService/internal/service/appointments"
	catalogService "github.com/touchedelumiere/TDL-BookingService/internal/service/catalog"
	scheduleService "github.com/touchedelumiere/TDL-BookingService/internal/service/schedule"
	createAppointmentUC "github.com/touchedelumiere/TDL-BookingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/touchedelumiere/TDL-BookingService/internal/usecase/get_available_slots"
	"github.com/touchedelumiere/TDL-BookingService/pkg/dbmetrics"
	"github.com/touchedelumiere/TDL-BookingService/pkg/logger"
	"github.com/touchedelumiere/TDL-BookingService/pkg/metrics"
	"github.com/touchedelumiere/TDL-BookingService/pkg/simpletxmanager"
	"github.com/touchedelumiere/TDL-BookingService/pkg/txmanager"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TDL-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Initialize metrics (when enabled)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Connect to the database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Configure the connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Initialize repositories (with or without metrics wrapping)
	var (
		appointmentRepository *appointmentRepo.Repository
		catalogRepository     *catalogRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		settingsRepository    *settingsRepo.Repository
	)

	var txMgr createAppointmentUC.TransactionManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Initialize integration clients. Notification channels with empty
	// credentials come up disabled; booking flow is unaffected.
	notifTimeout := time.Duration(cfg.Notifications.Timeout) * time.Second
	emailClient := resendClient.NewClient(
		cfg.Notifications.ResendAPIKey,
		cfg.Notifications.FromEmail,
		notifTimeout,
		log,
	)
	waClient := whatsappClient.NewClient(
		cfg.Notifications.WhatsAppAccessToken,
		cfg.Notifications.WhatsAppPhoneNumberID,
		notifTimeout,
		log,
	)
	calendarClient := googleCalendarClient.NewClient(
		cfg.Google.ClientID,
		cfg.Google.ClientSecret,
		settingsRepository,
		time.Duration(cfg.Google.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (email=%t, whatsapp=%t)",
		emailClient.Enabled(), waClient.Enabled())

	// Initialize services
	studio := appointmentsService.StudioInfo{
		Name:     cfg.Studio.Name,
		Address:  cfg.Studio.Address,
		Phone:    cfg.Studio.Phone,
		Timezone: cfg.Studio.Timezone,
	}
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		emailClient,
		waClient,
		calendarClient,
		studio,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)

	// Initialize use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		scheduleSvc,
		log,
	)

	// Initialize handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)
	remindAppointment := remindAppointmentHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAdminAppointments := getAdminAppointmentsHandler.NewHandler(appointmentsSvc, log)
	purgeAppointments := purgeAppointmentsHandler.NewHandler(appointmentsSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	saveService := saveServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateOperatingHours := updateOperatingHoursHandler.NewHandler(scheduleSvc, log)
	createDateBlock := createDateBlockHandler.NewHandler(scheduleSvc, log)
	deleteDateBlock := deleteDateBlockHandler.NewHandler(scheduleSvc, log)

	// Set up the router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (no authentication)
	// ============================================================

	// Treatment catalog
	api.HandleFunc("/services", listServices.HandlePublic).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", listServices.HandleGet).Methods(http.MethodGet)

	// Availability grid for one service and date
	api.HandleFunc("/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Weekly operating hours plus upcoming date blocks
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (require X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Appointments ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Client booking history
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (require X-User-Role: admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// --- Appointment management ---
	admin.HandleFunc("/appointments", getAdminAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments", purgeAppointments.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId}/remind", remindAppointment.Handle).Methods(http.MethodPost)

	// --- Catalog management ---
	admin.HandleFunc("/services", listServices.HandleAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/services", saveService.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", saveService.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Schedule management ---
	admin.HandleFunc("/schedule/operating-hours", updateOperatingHours.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/schedule/date-blocks", createDateBlock.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/schedule/date-blocks", createDateBlock.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/schedule/date-blocks/{blockId}", deleteDateBlock.Handle).Methods(http.MethodDelete)

	// Create the HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Stop connection pool metrics collection
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
