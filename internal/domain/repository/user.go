package repository

import (
	"context"
	"time"
)

// PasswordValidity es la ventana de validez de una contraseña: el
// invariante del dominio es passwordExpiresAt = lastPasswordChange + 3 meses.
const PasswordValidityMonths = 3

// User representa una cuenta del sistema.
type User struct {
	ID                  int64
	Email               string // clave natural, <=40 caracteres, única sin distinguir mayúsculas
	PasswordHash        string
	Active              bool
	AccountNonLocked    bool
	EmailVerified       bool
	MustChangePassword  bool
	FailedLoginAttempts int
	LastPasswordChange  *time.Time
	PasswordExpiresAt   *time.Time
	RoleIDs             []int64
}

// ApplyPasswordDefaults completa los campos temporales de contraseña:
// si LastPasswordChange falta toma now, y PasswordExpiresAt se deriva
// siempre que falte como LastPasswordChange + 3 meses.
func (u *User) ApplyPasswordDefaults(now time.Time) {
	if u.LastPasswordChange == nil {
		t := now
		u.LastPasswordChange = &t
	}
	if u.PasswordExpiresAt == nil {
		exp := u.LastPasswordChange.AddDate(0, PasswordValidityMonths, 0)
		u.PasswordExpiresAt = &exp
	}
}

// CreateUserInput contiene los datos para crear un usuario. Password es
// la contraseña en claro; el servicio la convierte en hash PHC antes de
// persistir.
type CreateUserInput struct {
	Email              string
	Password           string
	Active             bool
	AccountNonLocked   bool
	EmailVerified      bool
	MustChangePassword bool
	LastPasswordChange *time.Time
	RoleIDs            []int64
}

// UpdateUserInput contiene los campos mutables de un usuario. Los campos
// nil se dejan como están; el id y las marcas temporales derivadas nunca
// se sobreescriben desde el payload.
type UpdateUserInput struct {
	Email              *string
	Active             *bool
	AccountNonLocked   *bool
	EmailVerified      *bool
	MustChangePassword *bool
	RoleIDs            []int64 // nil = sin cambios
}

// UserRepository define operaciones sobre usuarios.
type UserRepository interface {
	// List devuelve una página ordenada de usuarios con sus role ids.
	// Campos de ordenación admitidos: id, email, active,
	// lastPasswordChange (default email).
	List(ctx context.Context, req PageRequest) (Page[User], error)

	// GetByID retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*User, error)

	// ExistsByEmail comprueba la clave natural sin distinguir mayúsculas.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByEmailExcluding ignora la fila cuyo id coincide con excludeID.
	ExistsByEmailExcluding(ctx context.Context, email string, excludeID int64) (bool, error)

	// Insert persiste el usuario (sin roles) y devuelve el id generado.
	Insert(ctx context.Context, user *User) (int64, error)

	// Update persiste los campos mutables. Retorna ErrNotFound si el id
	// no existe.
	Update(ctx context.Context, user *User) error

	// ReplaceRoles sustituye el conjunto de roles del usuario. Un role id
	// inexistente (violación de FK) se traduce a ErrInvalidInput.
	ReplaceRoles(ctx context.Context, userID int64, roleIDs []int64) error

	// Delete elimina por id. Devuelve false si la fila ya no existía.
	// El perfil asociado cae en cascada (comparte ciclo de vida).
	Delete(ctx context.Context, id int64) (bool, error)
}
