package routers

import (
	"sisregip-service/internal/app/delivery/http/controllers"
	"sisregip-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPDFRoutes(router chi.Router, limiter *middlewares.RateLimiter, pdfController *controllers.PDFController) {
	router.Post("/list_pdfs", pdfController.List)
	router.With(limiter.Limit).Post("/merge_pdfs", pdfController.Merge)
}
