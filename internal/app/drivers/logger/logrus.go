package logger

import (
	"os"
	"path/filepath"
	"sisregip-service/internal/pkg/constvars"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger builds the desk client logger. Production writes JSON lines
// to logFile; anything else logs text to stderr.
func NewLogrusLogger(env, logFile string) *logrus.Logger {
	logger := logrus.New()
	switch env {
	case constvars.EnvironmentProduction:
		logger.SetFormatter(&logrus.JSONFormatter{})
		if logFile == "" {
			break
		}
		_ = os.MkdirAll(filepath.Dir(logFile), 0o755)
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logger.SetOutput(file)
		} else {
			logger.Info("Failed to log to file, using default stderr")
		}
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
