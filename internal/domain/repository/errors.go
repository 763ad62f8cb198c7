package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indica que el recurso solicitado no existe.
	ErrNotFound = errors.New("not found")

	// ErrConflict indica un conflicto de clave natural (duplicado o
	// violación de constraint única).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indica que los datos de entrada son inválidos
	// (campo obligatorio ausente, referencia inexistente, etc.).
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage indica un fallo del almacenamiento de adjuntos
	// (política de tipo/tamaño o error de E/S).
	ErrStorage = errors.New("storage error")

	// ErrInternal indica un fallo inesperado. El detalle completo queda
	// en los logs; el caller recibe solo este error genérico.
	ErrInternal = errors.New("internal error")
)

// ConflictError transporta el valor en conflicto para que la capa
// superior pueda mostrarlo. Satisface errors.Is(err, ErrConflict).
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// IsNotFound verifica si el error es ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict verifica si el error es ErrConflict (incluye *ConflictError).
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsInvalidInput verifica si el error es ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStorage verifica si el error es ErrStorage.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

// IsInternal verifica si el error es ErrInternal.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
