package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"strings"

	"freight/cmd"
	"freight/db"
	freighthttp "freight/internal/adapters/in/http"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		configs.DBUser, configs.DBPassword, configs.DBHost, configs.DBPort,
		configs.DBName, configs.DBSslMode)

	if err := db.RunMigrations(dbURL, configs.MigrationsPath); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
	)

	jobManager := startJobs(&app, configs)
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		MigrationsPath:     goDotEnvVariable("MIGRATIONS_PATH"),
		ReconcileBranchIDs: goDotEnvVariable("RECONCILE_BRANCH_IDS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// startJobs wires and starts the background jobs. The reconciliation sweep
// covers the branches named in RECONCILE_BRANCH_IDS (comma-separated UUIDs).
func startJobs(app *cmd.CompositionRoot, configs cmd.Config) *jobs.JobManager {
	branchIDs := parseBranchIDs(configs.ReconcileBranchIDs)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateReconcileChallanCountsCommandHandler(),
		branchIDs,
		logger,
	)

	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	return jobManager
}

func parseBranchIDs(raw string) []kernel.UUID {
	var ids []kernel.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := kernel.UUIDFromString(part)
		if err != nil {
			log.Fatalf("Invalid branch id %q in RECONCILE_BRANCH_IDS: %v", part, err)
		}
		ids = append(ids, id)
	}
	return ids
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := freighthttp.NewServer(
		app.CreateCreateShipmentCommandHandler(),
		app.CreateCancelShipmentCommandHandler(),
		app.CreateCreateChallanCommandHandler(),
		app.CreateAssignToChallanCommandHandler(),
		app.CreateDispatchChallanCommandHandler(),
		app.CreateRemoveFromTransitCommandHandler(),
		app.CreateBulkRemoveFromTransitCommandHandler(),
		app.CreateAdvanceMilestoneCommandHandler(),
		app.CreateGetAvailableShipmentsQueryHandler(),
		app.CreateGetChallanSummaryQueryHandler(),
		app.CreateGetTransitRecordsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
