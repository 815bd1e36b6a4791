package contracts

import (
	"context"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/dto/responses"
)

type SecretaryUsecase interface {
	FindAll(ctx context.Context) ([]responses.SecretaryRecord, error)
}

type SecretaryRepository interface {
	FindAll(ctx context.Context) ([]models.SecretaryRecord, error)
}
