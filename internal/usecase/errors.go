package usecase

import (
	"fmt"

	"github.com/agenteunico/crm-leads/internal/entity"
)

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

const (
	CodeLeadNotFound   = "LEAD_NOT_FOUND"
	CodeInvalidDays    = "INVALID_DAYS"
	CodeStorageFailure = "STORAGE_ERROR"
)

func newNotFoundError(leadID string) *DomainError {
	return &DomainError{
		Code:    CodeLeadNotFound,
		Message: fmt.Sprintf("lead %s não encontrado", leadID),
		Err:     entity.ErrLeadNotFound,
	}
}

func newStorageError(op string, err error) *TechnicalError {
	return &TechnicalError{
		Code:    CodeStorageFailure,
		Message: fmt.Sprintf("falha no armazenamento (%s): %v", op, err),
		Err:     err,
	}
}
