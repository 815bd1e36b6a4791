package routers

import (
	"sisregip-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachProtocolRoutes(router chi.Router, protocolController *controllers.ProtocolController) {
	router.Get("/", protocolController.FindAll)
	router.Post("/add", protocolController.Create)
	router.Post("/edit", protocolController.Update)
	router.Post("/delete", protocolController.Delete)
}
