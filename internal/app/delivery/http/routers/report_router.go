package routers

import (
	"sisregip-service/internal/app/delivery/http/controllers"
	"sisregip-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachReportRoutes(router chi.Router, limiter *middlewares.RateLimiter, reportController *controllers.ReportController) {
	router.With(limiter.Limit).Post("/preview", reportController.Preview)
	router.With(limiter.Limit).Get("/report", reportController.Report)
}
