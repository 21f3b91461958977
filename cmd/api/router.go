package main

import (
	"net/http"

	"github.com/agenteunico/crm-leads/internal/infra/http/handlers"
	"github.com/agenteunico/crm-leads/internal/infra/http/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routerDeps struct {
	Leads          *handlers.LeadHandler
	Decisions      *handlers.DecisionHandler
	Health         *handlers.HealthHandler
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", d.Health.Health)
	r.Get("/ready", d.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/crm", func(r chi.Router) {
		r.With(d.RateLimiter.Handler).Post("/leads", d.Leads.CreateLead)
		r.Get("/leads", d.Leads.ListLeads)
		r.Get("/leads/{id}", d.Leads.GetLead)
		r.Post("/leads/{id}/interacoes", d.Leads.RecordInteraction)
		r.Get("/leads/{id}/interacoes", d.Leads.ListInteractions)
		r.Get("/leads/{id}/reminder", d.Leads.Reminder)
		r.Get("/cold-leads", d.Leads.ColdLeads)
	})

	r.Route("/decision", func(r chi.Router) {
		r.Get("/leads/{id}", d.Decisions.DecisionForLead)
		r.Get("/ranking", d.Decisions.Ranking)
	})

	return r
}
