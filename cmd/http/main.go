package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sisregip-service/internal/app/config"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/app/delivery/http/controllers"
	"sisregip-service/internal/app/delivery/http/middlewares"
	"sisregip-service/internal/app/delivery/http/routers"
	"sisregip-service/internal/app/drivers/database"
	"sisregip-service/internal/app/drivers/logger"
	"sisregip-service/internal/app/drivers/messaging"
	"sisregip-service/internal/app/drivers/storage"
	"sisregip-service/internal/app/services/core/audit"
	"sisregip-service/internal/app/services/core/changelog"
	"sisregip-service/internal/app/services/core/pdfs"
	"sisregip-service/internal/app/services/core/protocols"
	"sisregip-service/internal/app/services/core/reports"
	"sisregip-service/internal/app/services/core/secretaria"
	"sisregip-service/internal/app/services/shared/auditqueue"
	"sisregip-service/internal/app/services/shared/locker"
	"sisregip-service/internal/app/services/shared/opener"
	"sisregip-service/internal/app/services/shared/redis"
	sharedStorage "sisregip-service/internal/app/services/shared/storage"
	"sisregip-service/internal/migration"
	"sisregip-service/internal/pkg/constvars"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	internalConfig := config.NewInternalConfig()
	driverConfig := config.NewDriverConfig(internalConfig)

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.String("timezone", internalConfig.App.Timezone), zap.Error(err))
	}
	time.Local = location

	db := database.NewSQLDatabase(driverConfig)
	applied, err := migration.Up(db, driverConfig.Database.Driver)
	if err != nil {
		log.Fatal("Error executing migration", zap.Error(err))
	}
	log.Info("Migrations applied", zap.Int("count", applied))

	bootstrap := config.Bootstrap{
		Router:         chi.NewRouter(),
		DB:             db,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if internalConfig.Secretaria.Source == constvars.SecretariaSourceMongo {
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
	}
	if driverConfig.Redis.Enabled() {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}
	if driverConfig.RabbitMQ.Enabled() {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}
	if driverConfig.Minio.Enabled() {
		bootstrap.Minio = storage.NewMinio(driverConfig)
	}

	bootstrapingTheApp(bootstrap, location)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release connections", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap, location *time.Location) {
	log := bootstrap.Logger
	appConfig := bootstrap.InternalConfig.App
	driver := bootstrap.DriverConfig.Database.Driver

	// Redis, or the in-process fallback for single-desk installs
	var redisRepository contracts.RedisRepository
	if bootstrap.Redis != nil {
		redisRepository = redis.NewRedisRepository(bootstrap.Redis)
	} else {
		redisRepository = redis.NewMemoryRepository()
	}
	lockerService := locker.NewLockService(redisRepository, log)

	// Optional archive bucket and audit fan-out stay nil interfaces when disabled
	var objectStorage contracts.Storage
	if bootstrap.Minio != nil {
		objectStorage = sharedStorage.NewMinioStorage(bootstrap.Minio, bootstrap.DriverConfig.Minio.BucketName)
	}
	var auditQueue contracts.AuditQueue
	if bootstrap.RabbitMQ != nil {
		queue, err := auditqueue.NewService(bootstrap.RabbitMQ, log)
		if err != nil {
			log.Fatal("Failed to set up audit queue", zap.Error(err))
		}
		auditQueue = queue
	}

	desktopOpener := opener.NewDesktopOpener(appConfig.OpenFiles, log)

	// Audit
	auditRepository := audit.NewAuditSQLRepository(bootstrap.DB, driver, log)
	auditUsecase := audit.NewAuditUsecase(auditRepository, auditQueue, log)

	// Protocols
	protocolRepository := protocols.NewProtocolSQLRepository(bootstrap.DB, driver, log)
	protocolUsecase := protocols.NewProtocolUsecase(protocolRepository, auditUsecase, log)

	// Secretaria
	var secretaryRepository contracts.SecretaryRepository
	if bootstrap.MongoDB != nil {
		secretaryRepository = secretaria.NewSecretaryMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	} else {
		secretaryRepository = secretaria.NewSecretarySQLRepository(bootstrap.DB, log)
	}
	secretaryUsecase := secretaria.NewSecretaryUsecase(secretaryRepository, redisRepository, log)

	// Reports
	reportUsecase := reports.NewReportUsecase(protocolRepository, auditUsecase, desktopOpener, objectStorage, bootstrap.InternalConfig.Report.OutputDir, location, log)

	// PDFs
	pdfUsecase := pdfs.NewPDFUsecase(pdfs.NewPDFCPUEngine(), lockerService, auditUsecase, desktopOpener, objectStorage, log)

	// Changelog
	changelogUsecase := changelog.NewChangelogUsecase(appConfig.ChangelogPath, log)

	// Middlewares
	middlewareInstance := middlewares.NewMiddlewares(log, bootstrap.InternalConfig, middlewares.NewMetrics())
	heavyLimiter := middlewares.NewRateLimiter(
		appConfig.HeavyRequestsPerMinute,
		time.Minute,
		time.Duration(appConfig.HeavyRequestBlockInSecond)*time.Second,
		log,
	)

	requestTimeout := time.Duration(appConfig.RequestTimeoutInSeconds) * time.Second
	heavyTimeout := time.Duration(appConfig.HeavyTimeoutInSeconds) * time.Second

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewareInstance, heavyLimiter, routers.Controllers{
		Protocol:  controllers.NewProtocolController(log, protocolUsecase, requestTimeout),
		Audit:     controllers.NewAuditController(log, auditUsecase, requestTimeout),
		Secretary: controllers.NewSecretaryController(log, secretaryUsecase, requestTimeout),
		Report:    controllers.NewReportController(log, reportUsecase, heavyTimeout),
		PDF:       controllers.NewPDFController(log, pdfUsecase, heavyTimeout),
		Changelog: controllers.NewChangelogController(log, changelogUsecase, requestTimeout),
	})
}
