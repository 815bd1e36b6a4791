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

type ReportController struct {
	Log           *zap.Logger
	ReportUsecase contracts.ReportUsecase
	Timeout       time.Duration
}

var (
	reportControllerInstance *ReportController
	onceReportController     sync.Once
)

func NewReportController(logger *zap.Logger, reportUsecase contracts.ReportUsecase, timeout time.Duration) *ReportController {
	onceReportController.Do(func() {
		instance := &ReportController{
			Log:           logger,
			ReportUsecase: reportUsecase,
			Timeout:       timeout,
		}
		reportControllerInstance = instance
	})
	return reportControllerInstance
}

// Preview renders the report to a file on the host. The message tells the
// operator whether a browser window was opened.
func (ctrl *ReportController) Preview(w http.ResponseWriter, r *http.Request) {
	request := new(requests.PrintPreview)
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

	result, err := ctrl.ReportUsecase.Preview(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	message := constvars.ReportPreviewGeneratedMessage
	if result.Opened {
		message = constvars.ReportPreviewOpenedMessage
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, result)
}

func (ctrl *ReportController) Report(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	html, err := ctrl.ReportUsecase.Render(ctx, query.Get("filter_type"), query.Get("filter_value"))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildHTMLResponse(w, constvars.StatusOK, html)
}
