package controllers

import (
	"context"
	"net/http"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type SecretaryController struct {
	Log              *zap.Logger
	SecretaryUsecase contracts.SecretaryUsecase
	Timeout          time.Duration
}

var (
	secretaryControllerInstance *SecretaryController
	onceSecretaryController     sync.Once
)

func NewSecretaryController(logger *zap.Logger, secretaryUsecase contracts.SecretaryUsecase, timeout time.Duration) *SecretaryController {
	onceSecretaryController.Do(func() {
		instance := &SecretaryController{
			Log:              logger,
			SecretaryUsecase: secretaryUsecase,
			Timeout:          timeout,
		}
		secretaryControllerInstance = instance
	})
	return secretaryControllerInstance
}

func (ctrl *SecretaryController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	result, err := ctrl.SecretaryUsecase.FindAll(ctx)
	if err != nil {
		ctrl.Log.Error("SecretaryController.FindAll error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("SecretaryController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSecretariaCountKey, len(result)),
	)
	utils.BuildRawJSONResponse(w, constvars.StatusOK, result)
}
