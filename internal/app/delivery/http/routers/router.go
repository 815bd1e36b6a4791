package routers

import (
	"sisregip-service/internal/app/config"
	"sisregip-service/internal/app/delivery/http/controllers"
	"sisregip-service/internal/app/delivery/http/middlewares"
	"sisregip-service/internal/pkg/constvars"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type Controllers struct {
	Protocol  *controllers.ProtocolController
	Audit     *controllers.AuditController
	Secretary *controllers.SecretaryController
	Report    *controllers.ReportController
	PDF       *controllers.PDFController
	Changelog *controllers.ChangelogController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	heavyLimiter *middlewares.RateLimiter,
	ctrls Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.BodyBuffer)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.Instrument)
	router.Use(middlewares.ErrorHandler)

	if middlewares.Metrics != nil {
		router.Handle(constvars.MetricsPath, middlewares.Metrics.Handler())
	}

	router.Route(constvars.APIPrefix, func(r chi.Router) {
		r.Route("/auditoria", func(r chi.Router) {
			attachAuditRoutes(r, ctrls.Audit)
		})

		r.Route("/protocols", func(r chi.Router) {
			attachProtocolRoutes(r, ctrls.Protocol)
		})

		r.Route("/secretaria", func(r chi.Router) {
			attachSecretaryRoutes(r, ctrls.Secretary)
		})

		r.Route("/print", func(r chi.Router) {
			attachReportRoutes(r, heavyLimiter, ctrls.Report)
		})

		attachPDFRoutes(r, heavyLimiter, ctrls.PDF)

		r.Get("/changelog", ctrls.Changelog.Get)
	})
}
