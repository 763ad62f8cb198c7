package service

import (
	"fmt"
	"strings"

	"github.com/sdroman/ticketlogger/internal/domain/repository"
)

// Límites de campo del modelo de datos.
const (
	maxCodeLen   = 2
	maxNameLen   = 100
	maxEmailLen  = 40
	maxPhoneLen  = 30
	maxBioLen    = 500
	maxLocaleLen = 10
)

// requireText valida un campo de texto obligatorio con longitud máxima.
func requireText(field, value string, max int) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return fmt.Errorf("%s is required: %w", field, repository.ErrInvalidInput)
	}
	return maxText(field, v, max)
}

// maxText valida solo la longitud (para campos opcionales). Un máximo
// no positivo significa sin límite.
func maxText(field, value string, max int) error {
	if max > 0 && len(value) > max {
		return fmt.Errorf("%s exceeds %d characters: %w", field, max, repository.ErrInvalidInput)
	}
	return nil
}

// optionalText valida un campo opcional (nil permitido).
func optionalText(field string, value *string, max int) error {
	if value == nil {
		return nil
	}
	return maxText(field, *value, max)
}

// validEmail aplica las reglas mínimas de la clave natural de usuarios.
func validEmail(email string) error {
	if err := requireText("email", email, maxEmailLen); err != nil {
		return err
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email is malformed: %w", repository.ErrInvalidInput)
	}
	return nil
}
