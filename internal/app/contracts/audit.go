package contracts

import (
	"context"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/dto/requests"
)

type AuditUsecase interface {
	Register(ctx context.Context, request *requests.RegisterAudit) error
	// Record stores an event raised by another usecase. Failures are logged,
	// never returned.
	Record(ctx context.Context, operator, action, details string)
}

type AuditRepository interface {
	Create(ctx context.Context, event *models.AuditEvent) (int64, error)
}

type AuditQueue interface {
	Publish(ctx context.Context, event *models.AuditEvent) error
}
