package repository

import "fmt"

// Las referencias a padre transportan únicamente el id: suficiente para
// que la capa de persistencia escriba la columna FK sin cargar la fila
// completa. La validez última de la referencia la garantiza la FK del
// esquema; una violación se traduce a ErrInvalidInput.

// RegionRef es una referencia mínima (solo id) a una región.
type RegionRef struct {
	ID int64
}

// NewRegionRef construye la referencia validando que el id sea plausible.
func NewRegionRef(id int64) (RegionRef, error) {
	if id <= 0 {
		return RegionRef{}, fmt.Errorf("region reference %d: %w", id, ErrInvalidInput)
	}
	return RegionRef{ID: id}, nil
}

// Valid indica si la referencia apunta a algo.
func (r RegionRef) Valid() bool { return r.ID > 0 }

// UserRef es una referencia mínima (solo id) a un usuario. La usa el
// perfil, que comparte clave primaria con su usuario.
type UserRef struct {
	ID int64
}

// NewUserRef construye la referencia validando que el id sea plausible.
func NewUserRef(id int64) (UserRef, error) {
	if id <= 0 {
		return UserRef{}, fmt.Errorf("user reference %d: %w", id, ErrInvalidInput)
	}
	return UserRef{ID: id}, nil
}

// Valid indica si la referencia apunta a algo.
func (u UserRef) Valid() bool { return u.ID > 0 }
