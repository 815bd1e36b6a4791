package protocols

import (
	"context"
	"fmt"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/requests"
	"sisregip-service/internal/pkg/dto/responses"
	"sisregip-service/internal/pkg/exceptions"
	"sisregip-service/internal/pkg/utils"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type protocolUsecase struct {
	ProtocolRepository contracts.ProtocolRepository
	AuditUsecase       contracts.AuditUsecase
	Log                *zap.Logger
}

var (
	protocolUsecaseInstance contracts.ProtocolUsecase
	onceProtocolUsecase     sync.Once
)

func NewProtocolUsecase(
	protocolRepository contracts.ProtocolRepository,
	auditUsecase contracts.AuditUsecase,
	logger *zap.Logger,
) contracts.ProtocolUsecase {
	onceProtocolUsecase.Do(func() {
		protocolUsecaseInstance = &protocolUsecase{
			ProtocolRepository: protocolRepository,
			AuditUsecase:       auditUsecase,
			Log:                logger,
		}
	})
	return protocolUsecaseInstance
}

func (uc *protocolUsecase) FindAll(ctx context.Context) ([]responses.Protocol, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("protocolUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	protocols, err := uc.ProtocolRepository.FindAllActive(ctx)
	if err != nil {
		uc.Log.Error("protocolUsecase.FindAll error fetching protocols from repository",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.Protocol, len(protocols))
	for i, eachProtocol := range protocols {
		response[i] = eachProtocol.ConvertIntoResponse()
	}

	uc.Log.Info("protocolUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(response)),
	)
	return response, nil
}

func (uc *protocolUsecase) Create(ctx context.Context, request *requests.CreateProtocol) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("protocolUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProtocolCodeKey, request.Prot),
		zap.String(constvars.LoggingOperatorKey, request.Operator),
	)

	protocol, err := buildProtocolModel(&request.ProtocolFields)
	if err != nil {
		return err
	}

	protocolID, err := uc.ProtocolRepository.Create(ctx, protocol)
	if err != nil {
		uc.Log.Error("protocolUsecase.Create error inserting protocol",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProtocolCodeKey, request.Prot),
			zap.Error(err),
		)
		return err
	}

	uc.AuditUsecase.Record(ctx, request.Operator, constvars.AuditActionProtocolCreated,
		fmt.Sprintf("ID: %d, PROT: %s", protocolID, protocol.Prot))

	uc.Log.Info("protocolUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingProtocolIDKey, protocolID),
	)
	return nil
}

// Update keeps PROT as stored; the code sent by the client is ignored.
func (uc *protocolUsecase) Update(ctx context.Context, request *requests.UpdateProtocol) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	protocolID := int64(request.ID)
	uc.Log.Info("protocolUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingProtocolIDKey, protocolID),
		zap.String(constvars.LoggingOperatorKey, request.Operator),
	)

	protocol, err := buildProtocolModel(&request.ProtocolFields)
	if err != nil {
		return err
	}
	protocol.ID = protocolID

	if err := uc.ProtocolRepository.Update(ctx, protocol); err != nil {
		uc.Log.Error("protocolUsecase.Update error updating protocol",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingProtocolIDKey, protocolID),
			zap.Error(err),
		)
		return err
	}

	uc.AuditUsecase.Record(ctx, request.Operator, constvars.AuditActionProtocolUpdated,
		fmt.Sprintf("ID: %d", protocolID))

	uc.Log.Info("protocolUsecase.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingProtocolIDKey, protocolID),
	)
	return nil
}

func (uc *protocolUsecase) Delete(ctx context.Context, request *requests.DeleteProtocol) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	protocolID := int64(request.ID)
	uc.Log.Info("protocolUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingProtocolIDKey, protocolID),
		zap.String(constvars.LoggingOperatorKey, request.Operator),
	)

	if err := uc.ProtocolRepository.SoftDelete(ctx, protocolID); err != nil {
		uc.Log.Error("protocolUsecase.Delete error deleting protocol",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingProtocolIDKey, protocolID),
			zap.Error(err),
		)
		return err
	}

	uc.AuditUsecase.Record(ctx, request.Operator, constvars.AuditActionProtocolDeleted,
		fmt.Sprintf("ID: %d", protocolID))

	uc.Log.Info("protocolUsecase.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingProtocolIDKey, protocolID),
	)
	return nil
}

func buildProtocolModel(fields *requests.ProtocolFields) (*models.Protocol, error) {
	prot := strings.TrimSpace(fields.Prot)
	if prot == "" {
		return nil, exceptions.ErrProtocolRequired(nil)
	}

	protocolDate, err := toStoredDate(fields.Date)
	if err != nil {
		return nil, err
	}
	deliveryDate, err := toStoredDate(fields.DeliveredAt)
	if err != nil {
		return nil, err
	}

	return &models.Protocol{
		Prot:         prot,
		ProtocolDate: protocolDate,
		SubjectName:  optionalText(fields.Name),
		PMH:          optionalText(fields.PMH),
		DeliveryDate: deliveryDate,
		ReceiverName: optionalText(fields.ReceivedAt),
	}, nil
}

// optionalText keeps free text as typed; whitespace-only input counts as empty.
func optionalText(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return value
}

func toStoredDate(value string) (string, error) {
	parsed, err := utils.ParseDateBR(value)
	if err != nil {
		return "", exceptions.ErrInvalidDate(err, value)
	}
	if parsed == nil {
		return "", nil
	}
	return parsed.Format(constvars.DateLayoutISO), nil
}
