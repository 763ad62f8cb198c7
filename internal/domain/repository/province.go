package repository

import "context"

// Province representa una provincia. Pertenece siempre a exactamente una
// región; la pertenencia se materializa con una referencia por id
// (RegionRef), nunca con un puntero vivo a la región en memoria.
type Province struct {
	ID     int64
	Code   string // clave natural, <=2 caracteres, única sin distinguir mayúsculas
	Name   string // <=100 caracteres
	Region RegionRef

	// RegionName viene del inner join con regions en los listados.
	// Vacío fuera de List.
	RegionName string
}

// CreateProvinceInput contiene los datos para crear una provincia.
type CreateProvinceInput struct {
	Code     string
	Name     string
	RegionID int64
}

// UpdateProvinceInput contiene los campos mutables de una provincia.
type UpdateProvinceInput struct {
	Code     string
	Name     string
	RegionID int64
}

// ProvinceRepository define operaciones sobre provincias.
type ProvinceRepository interface {
	// List devuelve una página ordenada de provincias con el nombre de su
	// región resuelto vía inner join. Una provincia cuyo padre falta queda
	// excluida del resultado por construcción.
	// Campos de ordenación admitidos: id, code, name, regionName (default name).
	List(ctx context.Context, req PageRequest) (Page[Province], error)

	// GetByID retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Province, error)

	// ExistsByCode comprueba la clave natural sin distinguir mayúsculas.
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// ExistsByCodeExcluding ignora la fila cuyo id coincide con excludeID.
	ExistsByCodeExcluding(ctx context.Context, code string, excludeID int64) (bool, error)

	// Insert persiste la provincia y devuelve el id generado. Una región
	// inexistente (violación de FK) se traduce a ErrInvalidInput; un
	// código duplicado a *ConflictError.
	Insert(ctx context.Context, province *Province) (int64, error)

	// Update persiste los campos mutables. Retorna ErrNotFound si el id
	// no existe.
	Update(ctx context.Context, province *Province) error

	// Delete elimina por id. Devuelve false si la fila ya no existía.
	Delete(ctx context.Context, id int64) (bool, error)
}
