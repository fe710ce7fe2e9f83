package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse/cmd"
	"warehouse/internal/adapters/in/topology"
	"warehouse/internal/adapters/out/memory"
	"warehouse/internal/adapters/out/mqtt"
	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/postgres/handlingunitrepo"
	"warehouse/internal/adapters/out/postgres/locationrepo"
	"warehouse/internal/adapters/out/postgres/zonerepo"
	"warehouse/internal/core/ports"
	"warehouse/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uowFactory := openStorage(configs, logger)

	var notifier ports.ErrorStatusNotifier
	if configs.MQTTBroker != "" {
		mqttNotifier, err := mqtt.Connect(mqtt.Config{
			Broker:   configs.MQTTBroker,
			ClientID: configs.MQTTClientID,
			Topic:    configs.MQTTTopic,
			QoS:      1,
		}, logger)
		if err != nil {
			log.Fatalf("Error connecting to MQTT broker: %v", err)
		}
		defer mqttNotifier.Close()
		notifier = mqttNotifier
	}

	app := cmd.NewCompositionRoot(configs, uowFactory, notifier, logger)

	if configs.SampleWarehouseFile != "" {
		seedSampleWarehouse(ctx, app, configs.SampleWarehouseFile, logger)
	}

	jobManager := app.NewJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	startWebServer(ctx, app, configs.HTTPPort, jobManager, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:                envOr("HTTP_PORT", "8080"),
		Storage:                 envOr("STORAGE", cmd.StoragePostgres),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  envOr("DB_PORT", "5432"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               os.Getenv("DB_SSLMODE"),
		MQTTBroker:              os.Getenv("MQTT_BROKER"),
		MQTTClientID:            envOr("MQTT_CLIENT_ID", "warehouse"),
		MQTTTopic:               envOr("MQTT_TOPIC", "warehouse/locations/error-status"),
		ErrorReportSchedule:     envOr("ERROR_REPORT_SCHEDULE", jobs.DefaultErrorReportSchedule),
		TelemetryReportSchedule: envOr("TELEMETRY_REPORT_SCHEDULE", jobs.DefaultTelemetryReportSchedule),
		SampleWarehouseFile:     os.Getenv("SAMPLE_WAREHOUSE_FILE"),
		AuditUser:               os.Getenv("AUDIT_USER"),
	}
	return config
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openStorage(configs cmd.Config, logger *slog.Logger) ports.UnitOfWorkFactory {
	if configs.UsesMemoryStorage() {
		logger.Info("Using in-memory storage, state is lost on exit")
		return memory.NewStore()
	}

	db, err := gorm.Open(postgresdriver.Open(configs.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = db.AutoMigrate(
		&locationrepo.LocationDTO{},
		&handlingunitrepo.HandlingUnitDTO{},
		&zonerepo.ZoneDTO{},
		&zonerepo.MembershipDTO{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	return postgres.NewGormUnitOfWorkFactory(db)
}

func seedSampleWarehouse(ctx context.Context, app *cmd.CompositionRoot, path string, logger *slog.Logger) {
	file, err := topology.Load(path)
	if err != nil {
		log.Fatalf("Error loading sample warehouse: %v", err)
	}
	summary, err := app.NewSeeder().Seed(ctx, file)
	if err != nil {
		log.Fatalf("Error seeding sample warehouse: %v", err)
	}
	logger.Info("Sample warehouse seeded",
		"file", path,
		"locations", summary.Locations,
		"zones", summary.Zones,
		"handling_units", summary.HandlingUnits,
		"drops", summary.Drops,
		"assignments", summary.Assignments,
		"skipped", summary.Skipped)
}

func startWebServer(
	ctx context.Context,
	app *cmd.CompositionRoot,
	port string,
	jobManager *jobs.JobManager,
	logger *slog.Logger,
) {
	e := echo.New()
	e.HideBanner = true

	server, err := app.NewHTTPServer(ctx)
	if err != nil {
		log.Fatalf("Error creating HTTP server: %v", err)
	}
	if err = server.Register(e); err != nil {
		log.Fatalf("Error registering HTTP routes: %v", err)
	}

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", startErr)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	jobManager.StopAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
