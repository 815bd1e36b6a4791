package routers

import (
	"sisregip-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachSecretaryRoutes(router chi.Router, secretaryController *controllers.SecretaryController) {
	router.Get("/protocols", secretaryController.FindAll)
}
