package repository

import (
	"context"
	"time"
)

// UserProfile comparte identidad con su usuario (misma clave primaria) y
// no existe hasta la primera edición del perfil. No puede sobrevivir al
// usuario: el esquema lo elimina en cascada.
type UserProfile struct {
	ID           int64   // = users.id
	FirstName    string  // <=100 caracteres
	LastName     string  // <=100 caracteres
	PhoneNumber  *string // <=30 caracteres
	ProfileImage *string // ruta web /uploads/<uuid>.<ext>, nullable
	Bio          *string // <=500 caracteres
	Locale       *string // <=10 caracteres
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpsertProfileInput contiene los campos editables del perfil. La imagen
// no viaja aquí: su ciclo de vida lo gobierna el gestor de adjuntos.
type UpsertProfileInput struct {
	FirstName   string
	LastName    string
	PhoneNumber *string
	Bio         *string
	Locale      *string
}

// UserProfileRepository define operaciones sobre perfiles.
type UserProfileRepository interface {
	// GetByUserID retorna ErrNotFound si el usuario aún no tiene perfil.
	GetByUserID(ctx context.Context, userID int64) (*UserProfile, error)

	// Insert crea el perfil en la primera edición. Un usuario inexistente
	// (violación de FK sobre la clave compartida) se traduce a
	// ErrInvalidInput.
	Insert(ctx context.Context, profile *UserProfile) error

	// Update persiste los campos mutables. Retorna ErrNotFound si el
	// perfil no existe todavía.
	Update(ctx context.Context, profile *UserProfile) error

	// SetImagePath actualiza únicamente la referencia a la imagen.
	SetImagePath(ctx context.Context, userID int64, path *string) error
}
