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

type AuditController struct {
	Log          *zap.Logger
	AuditUsecase contracts.AuditUsecase
	Timeout      time.Duration
}

var (
	auditControllerInstance *AuditController
	onceAuditController     sync.Once
)

func NewAuditController(logger *zap.Logger, auditUsecase contracts.AuditUsecase, timeout time.Duration) *AuditController {
	onceAuditController.Do(func() {
		instance := &AuditController{
			Log:          logger,
			AuditUsecase: auditUsecase,
			Timeout:      timeout,
		}
		auditControllerInstance = instance
	})
	return auditControllerInstance
}

func (ctrl *AuditController) Register(w http.ResponseWriter, r *http.Request) {
	request := new(requests.RegisterAudit)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeAuditRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	err = ctrl.AuditUsecase.Register(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AuditRegisteredSuccessMessage, nil)
}
