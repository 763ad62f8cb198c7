package repository

import "context"

// Region representa una comunidad/región administrativa.
// Es propietaria exclusiva de sus provincias: borrar una región
// arrastra sus provincias (ON DELETE CASCADE en el esquema).
type Region struct {
	ID   int64
	Code string // clave natural, <=2 caracteres, única sin distinguir mayúsculas
	Name string // <=100 caracteres
}

// CreateRegionInput contiene los datos para crear una región.
type CreateRegionInput struct {
	Code string
	Name string
}

// UpdateRegionInput contiene los campos mutables de una región.
// El ID nunca se sobreescribe desde el payload.
type UpdateRegionInput struct {
	Code string
	Name string
}

// RegionRepository define operaciones sobre regiones.
type RegionRepository interface {
	// List devuelve una página ordenada de regiones.
	// Campos de ordenación admitidos: id, code, name (default name).
	List(ctx context.Context, req PageRequest) (Page[Region], error)

	// GetByID retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Region, error)

	// ExistsByCode comprueba la clave natural sin distinguir mayúsculas.
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// ExistsByCodeExcluding es la variante de actualización: ignora la
	// fila cuyo id coincide con excludeID, de modo que una región pueda
	// conservar su propio código.
	ExistsByCodeExcluding(ctx context.Context, code string, excludeID int64) (bool, error)

	// Insert persiste la región y devuelve el id generado.
	// Una violación de la constraint única se traduce a *ConflictError.
	Insert(ctx context.Context, region *Region) (int64, error)

	// Update persiste los campos mutables. Retorna ErrNotFound si el id
	// no existe.
	Update(ctx context.Context, region *Region) error

	// Delete elimina por id. Devuelve false si la fila ya no existía.
	// Las provincias dependientes caen en cascada.
	Delete(ctx context.Context, id int64) (bool, error)
}
