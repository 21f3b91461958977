package handlers

import (
	"net/http"

	"github.com/agenteunico/crm-leads/internal/infra/http/middleware"
	"github.com/agenteunico/crm-leads/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type DecisionHandler struct {
	CRM       *usecase.CRMService
	Decisions *usecase.DecisionService
}

func NewDecisionHandler(crm *usecase.CRMService, decisions *usecase.DecisionService) *DecisionHandler {
	return &DecisionHandler{CRM: crm, Decisions: decisions}
}

// GET /decision/leads/{id}
func (h *DecisionHandler) DecisionForLead(w http.ResponseWriter, r *http.Request) {
	lead, err := h.CRM.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	d := h.Decisions.ScoreLead(lead)
	middleware.RecordDecision(string(d.Tier))

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "decision": d})
}

// GET /decision/ranking
func (h *DecisionHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	leads, err := h.CRM.ListLeads(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	items := h.Decisions.Rank(leads)
	for _, d := range items {
		middleware.RecordDecision(string(d.Tier))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "items": items})
}
