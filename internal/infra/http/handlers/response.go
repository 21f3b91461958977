package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/agenteunico/crm-leads/internal/usecase"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"ok":      false,
		"error":   code,
		"message": message,
	})
}

func writeValidationErrors(w http.ResponseWriter, errs []usecase.ValidationError) {
	details := make([]fieldError, 0, len(errs))
	for _, e := range errs {
		details = append(details, fieldError{Field: e.Field, Message: e.Message})
	}
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"ok":      false,
		"error":   "VALIDATION_ERROR",
		"message": "dados inválidos",
		"details": details,
	})
}

// writeUseCaseError traduz os erros tipados do usecase para HTTP.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domainErr.Code == usecase.CodeLeadNotFound {
			status = http.StatusNotFound
		}
		writeErrorResponse(w, status, domainErr.Code, domainErr.Message)
		return
	}

	log.Printf("Erro interno: %v", err)
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "erro interno")
}
