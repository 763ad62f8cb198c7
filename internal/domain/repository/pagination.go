package repository

import "strings"

// Defaults de paginación cuando el caller no especifica nada.
const (
	DefaultPageSize  = 10
	DefaultSortField = "name"
	SortAsc          = "asc"
	SortDesc         = "desc"
)

// PageRequest son los parámetros de listado tal como llegan del caller.
// Cualquier valor es aceptado: Normalize los corrige en silencio en vez
// de fallar, para que un listado siempre tenga éxito.
type PageRequest struct {
	Page      int
	Size      int
	SortField string
	SortDir   string
}

// Normalize devuelve una copia corregida de la petición:
//   - Page < 0 se fija a 0
//   - Size <= 0 se fija a DefaultPageSize
//   - SortField vacío se fija a DefaultSortField (el whitelist por entidad
//     resuelve después los campos desconocidos)
//   - SortDir se reduce a "asc"/"desc"; cualquier otra cosa es "asc"
func (r PageRequest) Normalize() PageRequest {
	out := r
	if out.Page < 0 {
		out.Page = 0
	}
	if out.Size <= 0 {
		out.Size = DefaultPageSize
	}
	if strings.TrimSpace(out.SortField) == "" {
		out.SortField = DefaultSortField
	}
	if strings.EqualFold(strings.TrimSpace(out.SortDir), SortDesc) {
		out.SortDir = SortDesc
	} else {
		out.SortDir = SortAsc
	}
	return out
}

// Offset devuelve el desplazamiento SQL de la página actual.
func (r PageRequest) Offset() int { return r.Page * r.Size }

// ClampPage ajusta page al rango válido para el total de filas dado:
// si totalPages > 0 y page >= totalPages, la última página.
func ClampPage(page, size int, total int64) int {
	tp := TotalPages(size, total)
	if tp > 0 && page >= tp {
		return tp - 1
	}
	return page
}

// TotalPages calcula ceil(total/size). Size debe venir ya normalizado.
func TotalPages(size int, total int64) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// PageMeta acompaña a cada página de resultados.
type PageMeta struct {
	Page          int
	Size          int
	TotalPages    int
	TotalElements int64
	SortField     string
	SortDir       string
}

// NewPageMeta construye la metainformación de página a partir de una
// petición ya normalizada y el total contado, aplicando el clamping.
func NewPageMeta(req PageRequest, total int64) PageMeta {
	return PageMeta{
		Page:          ClampPage(req.Page, req.Size, total),
		Size:          req.Size,
		TotalPages:    TotalPages(req.Size, total),
		TotalElements: total,
		SortField:     req.SortField,
		SortDir:       req.SortDir,
	}
}

// Page es una página de resultados de cualquier entidad.
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}
