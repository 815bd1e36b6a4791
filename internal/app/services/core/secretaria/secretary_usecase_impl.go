package secretaria

import (
	"context"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/responses"
	"sisregip-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type secretaryUsecase struct {
	SecretaryRepository contracts.SecretaryRepository
	RedisRepository     contracts.RedisRepository
	Log                 *zap.Logger
}

var (
	secretaryUsecaseInstance contracts.SecretaryUsecase
	onceSecretaryUsecase     sync.Once
)

func NewSecretaryUsecase(
	secretaryRepository contracts.SecretaryRepository,
	redisRepository contracts.RedisRepository,
	logger *zap.Logger,
) contracts.SecretaryUsecase {
	onceSecretaryUsecase.Do(func() {
		secretaryUsecaseInstance = &secretaryUsecase{
			SecretaryRepository: secretaryRepository,
			RedisRepository:     redisRepository,
			Log:                 logger,
		}
	})
	return secretaryUsecaseInstance
}

// FindAll reads through the cache. A cache outage degrades to the repository
// instead of failing the request.
func (uc *secretaryUsecase) FindAll(ctx context.Context) ([]responses.SecretaryRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("secretaryUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var records []models.SecretaryRecord

	cached, err := uc.RedisRepository.Get(ctx, constvars.RedisKeySecretariaProtocols)
	if err != nil {
		uc.Log.Warn("secretaryUsecase.FindAll error retrieving secretaria data from Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if cached != "" {
		uc.Log.Info("secretaryUsecase.FindAll data found in Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		if err := json.Unmarshal([]byte(cached), &records); err != nil {
			uc.Log.Error("secretaryUsecase.FindAll error unmarshaling Redis data",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrCannotParseJSON(err)
		}
	} else {
		records, err = uc.SecretaryRepository.FindAll(ctx)
		if err != nil {
			uc.Log.Error("secretaryUsecase.FindAll error fetching secretaria records from repository",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}

		err = uc.RedisRepository.Set(ctx, constvars.RedisKeySecretariaProtocols, records, constvars.SecretariaCacheTTLInMinute*time.Minute)
		if err != nil {
			uc.Log.Warn("secretaryUsecase.FindAll error caching secretaria records in Redis",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	response := make([]responses.SecretaryRecord, len(records))
	for i, eachRecord := range records {
		response[i] = eachRecord.ConvertIntoResponse()
	}

	uc.Log.Info("secretaryUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSecretariaCountKey, len(response)),
	)
	return response, nil
}
