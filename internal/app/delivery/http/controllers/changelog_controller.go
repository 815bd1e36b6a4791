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

type ChangelogController struct {
	Log              *zap.Logger
	ChangelogUsecase contracts.ChangelogUsecase
	Timeout          time.Duration
}

var (
	changelogControllerInstance *ChangelogController
	onceChangelogController     sync.Once
)

func NewChangelogController(logger *zap.Logger, changelogUsecase contracts.ChangelogUsecase, timeout time.Duration) *ChangelogController {
	onceChangelogController.Do(func() {
		instance := &ChangelogController{
			Log:              logger,
			ChangelogUsecase: changelogUsecase,
			Timeout:          timeout,
		}
		changelogControllerInstance = instance
	})
	return changelogControllerInstance
}

func (ctrl *ChangelogController) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	result, err := ctrl.ChangelogUsecase.Get(ctx)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ChangelogFetchedSuccessMessage, result)
}
