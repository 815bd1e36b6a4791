package controllers

import (
	"context"
	"net/http"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/requests"
	"sisregip-service/internal/pkg/dto/responses"
	"sisregip-service/internal/pkg/exceptions"
	"sisregip-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PDFController struct {
	Log        *zap.Logger
	PDFUsecase contracts.PDFUsecase
	Timeout    time.Duration
}

var (
	pdfControllerInstance *PDFController
	oncePDFController     sync.Once
)

func NewPDFController(logger *zap.Logger, pdfUsecase contracts.PDFUsecase, timeout time.Duration) *PDFController {
	oncePDFController.Do(func() {
		instance := &PDFController{
			Log:        logger,
			PDFUsecase: pdfUsecase,
			Timeout:    timeout,
		}
		pdfControllerInstance = instance
	})
	return pdfControllerInstance
}

func (ctrl *PDFController) List(w http.ResponseWriter, r *http.Request) {
	request := new(requests.ListPDFs)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.Operator = utils.SanitizeOperator(request.Operator)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	files, err := ctrl.PDFUsecase.List(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	if files == nil {
		files = []string{}
	}
	utils.BuildRawJSONResponse(w, constvars.StatusOK, responses.ListPDFs{
		Success: true,
		Message: constvars.PDFsListedSuccessMessage,
		Files:   files,
	})
}

func (ctrl *PDFController) Merge(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.MergePDFs)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.Operator = utils.SanitizeOperator(request.Operator)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	result, err := ctrl.PDFUsecase.Merge(ctx, request)
	if err != nil {
		ctrl.Log.Error("PDFController.Merge error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFolderPathKey, request.FolderPath),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PDFsMergedSuccessMessage, result)
}
