package middlewares

import (
	"sisregip-service/internal/app/config"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	Metrics        *Metrics
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, metrics *Metrics) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		Metrics:        metrics,
	}
}
