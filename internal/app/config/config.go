package config

import (
	"path/filepath"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

// NewDriverConfig reads driver settings. Optional backends (redis, rabbitmq,
// minio) stay disabled while their host is empty.
func NewDriverConfig(internalConfig *InternalConfig) *DriverConfig {
	dataPath := internalConfig.App.DataPath
	return &DriverConfig{
		Database: Database{
			Driver:     utils.GetEnvString("DB_DRIVER", constvars.DatabaseDriverPostgres),
			Host:       utils.GetEnvString("DB_HOST", "localhost"),
			Port:       utils.GetEnvString("DB_PORT", "5432"),
			Name:       utils.GetEnvString("DB_NAME", "sistema_protocolos"),
			Username:   utils.GetEnvString("DB_USER", "app_protocolos"),
			Password:   utils.GetEnvString("DB_PASSWORD", ""),
			SQLitePath: utils.GetEnvString("SQLITE_PATH", filepath.Join(dataPath, "sisregip.db")),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "secretaria"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", ""),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "info"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", filepath.Join(dataPath, "app.log")),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", filepath.Join(dataPath, "app_errors.log")),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", ""),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", ""),
			Username:   utils.GetEnvString("MINIO_USERNAME", ""),
			Password:   utils.GetEnvString("MINIO_PASSWORD", ""),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "sisregip"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	dataPaths := utils.GetEnvStringSlice("APP_DATA_PATHS", nil)
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", constvars.EnvironmentDevelopment),
			Port:                      utils.GetEnvString("APP_PORT", ":8001"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1.0"),
			Timezone:                  utils.GetEnvString("APP_TIMEZONE", "America/Sao_Paulo"),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUESTS", 50),
			ShutdownTimeout:           utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds:   utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			HeavyTimeoutInSeconds:     utils.GetEnvInt("APP_HEAVY_TIMEOUT_IN_SECONDS", 120),
			HeavyRequestsPerMinute:    utils.GetEnvInt("APP_HEAVY_REQUESTS_PER_MINUTE", 10),
			HeavyRequestBlockInSecond: utils.GetEnvInt("APP_HEAVY_REQUEST_BLOCK_IN_SECONDS", 30),
			OpenFiles:                 utils.GetEnvBool("APP_OPEN_FILES", false),
			DataPaths:                 dataPaths,
			DataPath:                  ResolveDataPath(dataPaths, utils.GetEnvString("APP_LOCAL_DATA_PATH", "")),
			ChangelogPath:             utils.GetEnvString("APP_CHANGELOG_PATH", ""),
		},
		Secretaria: Secretaria{
			Source: utils.GetEnvString("SECRETARIA_SOURCE", constvars.SecretariaSourceSQL),
		},
		Report: Report{
			OutputDir: utils.GetEnvString("REPORT_OUTPUT_DIR", ""),
		},
	}
}
