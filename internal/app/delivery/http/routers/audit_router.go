package routers

import (
	"sisregip-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachAuditRoutes(router chi.Router, auditController *controllers.AuditController) {
	router.Post("/registrar", auditController.Register)
}
