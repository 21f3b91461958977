package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agenteunico/crm-leads/internal/infra/database"
	"github.com/agenteunico/crm-leads/internal/infra/http/handlers"
	"github.com/agenteunico/crm-leads/internal/infra/http/middleware"
	"github.com/agenteunico/crm-leads/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(now time.Time) http.Handler {
	clock := usecase.ClockFunc(func() time.Time { return now })
	crm := usecase.NewCRMService(database.NewMemoryLeadRepository(), clock)
	return newRouter(routerDeps{
		Leads:          handlers.NewLeadHandler(crm),
		Decisions:      handlers.NewDecisionHandler(crm, usecase.NewDecisionService(clock)),
		Health:         handlers.NewHealthHandler(nil, nil, []string{"APP_ENV"}, func(string) string { return "test" }),
		AllowedOrigins: []string{"http://localhost:5173"},
		RateLimiter:    middleware.NewRateLimiter(100),
	})
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	}
	return w.Code, out
}

func TestLeadFlowThroughRouter(t *testing.T) {
	h := newTestRouter(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))

	code, resp := doJSON(t, h, "POST", "/crm/leads", `{"nome":"Tiago","tags":["Recorrente","VIP"]}`)
	require.Equal(t, http.StatusCreated, code)
	tiago := resp["lead"].(map[string]interface{})["id"].(string)

	code, resp = doJSON(t, h, "POST", "/crm/leads", `{"nome":"Maria","canal":"email"}`)
	require.Equal(t, http.StatusCreated, code)
	maria := resp["lead"].(map[string]interface{})["id"].(string)

	code, _ = doJSON(t, h, "POST", "/crm/leads/"+maria+"/interacoes", `{"tipo":"resposta"}`)
	assert.Equal(t, http.StatusOK, code)

	code, resp = doJSON(t, h, "GET", "/decision/ranking", "")
	require.Equal(t, http.StatusOK, code)
	items := resp["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, tiago, items[0].(map[string]interface{})["lead_id"])
	assert.Equal(t, float64(45), items[0].(map[string]interface{})["score"])
	assert.Equal(t, maria, items[1].(map[string]interface{})["lead_id"])

	code, resp = doJSON(t, h, "GET", "/crm/leads/"+tiago+"/interacoes", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp["items"])

	code, resp = doJSON(t, h, "GET", "/decision/leads/nao-existe", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "LEAD_NOT_FOUND", resp["error"])
}

func TestOperationalRoutes(t *testing.T) {
	h := newTestRouter(time.Now().UTC())

	code, resp := doJSON(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "liveness", resp["type"])

	code, _ = doJSON(t, h, "GET", "/ready", "")
	assert.Equal(t, http.StatusOK, code)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
