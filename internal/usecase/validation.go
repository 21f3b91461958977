package usecase

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// Região usada para interpretar telefones sem DDI.
const DefaultPhoneRegion = "BR"

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NormalizeCreateLeadInput limpa espaços e tenta levar o telefone para E.164.
// Telefones que não podem ser interpretados são mantidos como vieram.
func NormalizeCreateLeadInput(input CreateLeadInput) CreateLeadInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Channel = strings.TrimSpace(input.Channel)
	input.Origin = strings.TrimSpace(input.Origin)

	if input.Phone != nil {
		phone := NormalizePhone(*input.Phone)
		if phone == "" {
			input.Phone = nil
		} else {
			input.Phone = &phone
		}
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			input.Email = nil
		} else {
			input.Email = &email
		}
	}
	return input
}

func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	return validateStruct(input)
}

func ValidateRecordInteractionInput(input RecordInteractionInput) []ValidationError {
	input.Type = strings.TrimSpace(input.Type)
	return validateStruct(input)
}

func ValidateColdLeadDays(days int) error {
	if days < 1 {
		return &DomainError{
			Code:    CodeInvalidDays,
			Message: "days deve ser maior ou igual a 1",
		}
	}
	return nil
}

func validateStruct(s any) []ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{"body", err.Error()}}
	}

	var errors []ValidationError
	for _, fe := range fieldErrs {
		errors = append(errors, ValidationError{
			Field:   fieldPath(fe),
			Message: messageFor(fe),
		})
	}
	return errors
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must not have more than %s items", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	case "email":
		return "is invalid"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
