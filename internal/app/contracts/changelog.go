package contracts

import (
	"context"
	"sisregip-service/internal/pkg/dto/responses"
)

type ChangelogUsecase interface {
	Get(ctx context.Context) (*responses.Changelog, error)
}
