package contracts

import (
	"context"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/dto/requests"
	"sisregip-service/internal/pkg/dto/responses"
	"time"
)

type ProtocolUsecase interface {
	FindAll(ctx context.Context) ([]responses.Protocol, error)
	Create(ctx context.Context, request *requests.CreateProtocol) error
	Update(ctx context.Context, request *requests.UpdateProtocol) error
	Delete(ctx context.Context, request *requests.DeleteProtocol) error
}

type ProtocolRepository interface {
	FindAllActive(ctx context.Context) ([]models.Protocol, error)
	FindActiveByID(ctx context.Context, protocolID int64) (*models.Protocol, error)
	// FindForReport returns active protocols ordered by code. A nil start
	// means no date bound.
	FindForReport(ctx context.Context, start, end *time.Time) ([]models.Protocol, error)
	Create(ctx context.Context, protocol *models.Protocol) (int64, error)
	Update(ctx context.Context, protocol *models.Protocol) error
	SoftDelete(ctx context.Context, protocolID int64) error
}
