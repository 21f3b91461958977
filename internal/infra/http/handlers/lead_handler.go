package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/agenteunico/crm-leads/internal/entity"
	"github.com/agenteunico/crm-leads/internal/infra/http/middleware"
	"github.com/agenteunico/crm-leads/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type LeadHandler struct {
	CRM *usecase.CRMService
}

func NewLeadHandler(crm *usecase.CRMService) *LeadHandler {
	return &LeadHandler{CRM: crm}
}

// POST /crm/leads
func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	input = usecase.NormalizeCreateLeadInput(input)
	if errs := usecase.ValidateCreateLeadInput(input); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	lead, err := h.CRM.CreateLead(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	middleware.RecordLeadCreated()

	writeJSON(w, http.StatusCreated, map[string]interface{}{"ok": true, "lead": lead})
}

// GET /crm/leads
func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.CRM.ListLeads(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "items": leads})
}

// GET /crm/leads/{id}
func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := h.CRM.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "lead": lead})
}

// POST /crm/leads/{id}/interacoes
func (h *LeadHandler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	var input usecase.RecordInteractionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	input.Type = strings.TrimSpace(input.Type)
	if errs := usecase.ValidateRecordInteractionInput(input); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	inter, err := h.CRM.RecordInteraction(r.Context(), chi.URLParam(r, "id"), input.Type, input.Note)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	middleware.RecordInteraction(inter.Type, entity.CountsAsContact(inter.Type))

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "interaction": inter})
}

// GET /crm/leads/{id}/interacoes
func (h *LeadHandler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	items, err := h.CRM.ListInteractions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "items": items})
}

// GET /crm/cold-leads?days=30
func (h *LeadHandler) ColdLeads(w http.ResponseWriter, r *http.Request) {
	days := usecase.DefaultColdLeadDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidDays, "days deve ser um inteiro")
			return
		}
		days = n
	}
	if err := usecase.ValidateColdLeadDays(days); err != nil {
		writeUseCaseError(w, err)
		return
	}

	leads, err := h.CRM.ColdLeads(r.Context(), days)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "days": days, "items": leads})
}

// GET /crm/leads/{id}/reminder
func (h *LeadHandler) Reminder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lead, err := h.CRM.GetLead(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"lead_id":  id,
		"mensagem": h.CRM.ReminderSuggestion(lead),
	})
}
