package contracts

import (
	"context"
	"sisregip-service/internal/pkg/dto/requests"
	"sisregip-service/internal/pkg/dto/responses"
)

type ReportUsecase interface {
	Preview(ctx context.Context, request *requests.PrintPreview) (*responses.ReportPreview, error)
	Render(ctx context.Context, filterType, filterValue string) ([]byte, error)
}
