package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kwtaxonomy/internal/grouping"
	"kwtaxonomy/internal/handlers/api"
)

// Store is the storage the HTTP handlers need.
type Store interface {
	api.ProjectStore
	api.Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(store Store, svc *grouping.Service) {
	healthHandler := api.NewHealthHandler(store)
	groupHandler := api.NewGroupHandler(svc)
	projectHandler := api.NewProjectHandler(store)

	// Operational routes
	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Post("/groups", groupHandler.Group)
	apiGroup.Post("/projects", projectHandler.Create)
	apiGroup.Get("/projects/:id", projectHandler.Get)
	apiGroup.Post("/projects/:id/keywords", projectHandler.Import)
	apiGroup.Get("/projects/:id/groups", groupHandler.ProjectGroups)
	apiGroup.Get("/projects/:id/summary", groupHandler.ProjectSummary)
}
