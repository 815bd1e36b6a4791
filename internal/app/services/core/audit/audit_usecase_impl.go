package audit

import (
	"context"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/requests"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type auditUsecase struct {
	AuditRepository contracts.AuditRepository
	AuditQueue      contracts.AuditQueue
	Log             *zap.Logger
	now             func() time.Time
}

var (
	auditUsecaseInstance contracts.AuditUsecase
	onceAuditUsecase     sync.Once
)

// NewAuditUsecase accepts a nil queue when RabbitMQ is not configured.
func NewAuditUsecase(
	auditRepository contracts.AuditRepository,
	auditQueue contracts.AuditQueue,
	logger *zap.Logger,
) contracts.AuditUsecase {
	onceAuditUsecase.Do(func() {
		auditUsecaseInstance = &auditUsecase{
			AuditRepository: auditRepository,
			AuditQueue:      auditQueue,
			Log:             logger,
			now:             time.Now,
		}
	})
	return auditUsecaseInstance
}

func (uc *auditUsecase) Register(ctx context.Context, request *requests.RegisterAudit) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("auditUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOperatorKey, request.Operator),
		zap.String(constvars.LoggingAuditActionKey, request.Action),
	)

	event := uc.newEvent(request.Operator, request.Action, request.Details)
	if err := uc.store(ctx, event); err != nil {
		uc.Log.Error("auditUsecase.Register error storing audit event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("auditUsecase.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64("audit_id", event.ID),
	)
	return nil
}

func (uc *auditUsecase) Record(ctx context.Context, operator, action, details string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	event := uc.newEvent(operator, action, details)
	if err := uc.store(ctx, event); err != nil {
		uc.Log.Warn("auditUsecase.Record error storing audit event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperatorKey, operator),
			zap.String(constvars.LoggingAuditActionKey, action),
			zap.Error(err),
		)
	}
}

func (uc *auditUsecase) newEvent(operator, action, details string) *models.AuditEvent {
	return &models.AuditEvent{
		EventID:   uuid.NewString(),
		Operator:  operator,
		Action:    action,
		Details:   details,
		CreatedAt: uc.now().UTC(),
	}
}

// store writes the row first; the queue only mirrors what was persisted and
// a publish failure never fails the request.
func (uc *auditUsecase) store(ctx context.Context, event *models.AuditEvent) error {
	auditID, err := uc.AuditRepository.Create(ctx, event)
	if err != nil {
		return err
	}
	event.ID = auditID

	if uc.AuditQueue == nil {
		return nil
	}
	if err := uc.AuditQueue.Publish(ctx, event); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("auditUsecase.store error publishing audit event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, constvars.AuditQueueName),
			zap.Error(err),
		)
	}
	return nil
}
