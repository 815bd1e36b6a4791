package controllers

import (
	"context"
	"net/http"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/requests"
	"sisregip-service/internal/pkg/exceptions"
	"sisregip-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ProtocolController struct {
	Log             *zap.Logger
	ProtocolUsecase contracts.ProtocolUsecase
	Timeout         time.Duration
}

var (
	protocolControllerInstance *ProtocolController
	onceProtocolController     sync.Once
)

func NewProtocolController(logger *zap.Logger, protocolUsecase contracts.ProtocolUsecase, timeout time.Duration) *ProtocolController {
	onceProtocolController.Do(func() {
		instance := &ProtocolController{
			Log:             logger,
			ProtocolUsecase: protocolUsecase,
			Timeout:         timeout,
		}
		protocolControllerInstance = instance
	})
	return protocolControllerInstance
}

// FindAll answers with a bare array, the shape the board reads.
func (ctrl *ProtocolController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ProtocolController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	result, err := ctrl.ProtocolUsecase.FindAll(ctx)
	if err != nil {
		ctrl.Log.Error("ProtocolController.FindAll error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ProtocolController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingProtocolsCountKey, len(result)),
	)
	utils.BuildRawJSONResponse(w, constvars.StatusOK, result)
}

func (ctrl *ProtocolController) Create(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateProtocol)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeProtocolRequest(&request.ProtocolFields)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	err = ctrl.ProtocolUsecase.Create(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProtocolCreatedSuccessMessage, nil)
}

func (ctrl *ProtocolController) Update(w http.ResponseWriter, r *http.Request) {
	request := new(requests.UpdateProtocol)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeProtocolRequest(&request.ProtocolFields)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	err = ctrl.ProtocolUsecase.Update(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProtocolUpdatedSuccessMessage, nil)
}

func (ctrl *ProtocolController) Delete(w http.ResponseWriter, r *http.Request) {
	request := new(requests.DeleteProtocol)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.Operator = utils.SanitizeOperator(request.Operator)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	err = ctrl.ProtocolUsecase.Delete(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProtocolDeletedSuccessMessage, nil)
}
