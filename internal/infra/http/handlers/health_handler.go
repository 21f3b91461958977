package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const serviceName = "AG.U.IA"

type Pinger interface {
	Ping(ctx context.Context) error
}

type ConnectionState interface {
	IsClosed() bool
}

type HealthHandler struct {
	DB          Pinger
	RabbitMQ    ConnectionState
	RequiredEnv []string
	LookupEnv   func(string) string
	StartTime   time.Time
	Version     string
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Type         string            `json:"type"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db Pinger, rabbitMQ ConnectionState, requiredEnv []string, lookupEnv func(string) string) *HealthHandler {
	return &HealthHandler{
		DB:          db,
		RabbitMQ:    rabbitMQ,
		RequiredEnv: requiredEnv,
		LookupEnv:   lookupEnv,
		StartTime:   time.Now(),
		Version:     "0.1.0",
	}
}

// Health é o liveness: sempre 200, só reporta o estado das dependências.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		Service:      serviceName,
		Type:         "liveness",
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: h.dependencies(r.Context()),
	})
}

// Ready responde 503 quando falta configuração essencial ou alguma
// dependência configurada está fora.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	var missing []string
	for _, name := range h.RequiredEnv {
		if h.LookupEnv(name) == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":           "error",
			"type":             "readiness",
			"missing_env_vars": missing,
		})
		return
	}

	deps := h.dependencies(r.Context())
	for _, v := range deps {
		if strings.HasPrefix(v, "unhealthy") {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":       "error",
				"type":         "readiness",
				"dependencies": deps,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"service":      serviceName,
		"type":         "readiness",
		"message":      "Aplicação pronta para receber tráfego",
		"dependencies": deps,
	})
}

func (h *HealthHandler) dependencies(ctx context.Context) map[string]string {
	deps := map[string]string{"store": "memory"}

	if h.DB != nil {
		deps["store"] = "postgres"
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.DB.Ping(pingCtx); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	return deps
}
