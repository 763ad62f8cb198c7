package pg

import "github.com/sdroman/ticketlogger/internal/domain/repository"

// sortMap es la whitelist de ordenación de una entidad: asocia los
// nombres de campo que acepta el caller con expresiones SQL reales,
// incluidas columnas de tablas unidas por join. Un campo desconocido no
// es un error: resuelve a la columna por defecto (el repo lo loguea).
type sortMap struct {
	columns  map[string]string
	fallback string
}

// resolve devuelve la expresión SQL del campo pedido. ok es false cuando
// el campo no está en la whitelist y se usó el fallback.
func (m sortMap) resolve(field string) (col string, ok bool) {
	if c, found := m.columns[field]; found {
		return c, true
	}
	return m.columns[m.fallback], false
}

// sqlDir traduce la dirección ya normalizada a sintaxis SQL.
func sqlDir(dir string) string {
	if dir == repository.SortDesc {
		return "DESC"
	}
	return "ASC"
}
