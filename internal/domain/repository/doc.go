// Package repository define las entidades de dominio y las interfaces de
// repositorio del núcleo administrativo (regiones, provincias, usuarios,
// perfiles y roles).
//
// Las interfaces son contratos de negocio independientes del almacenamiento
// subyacente; la implementación concreta sobre PostgreSQL vive en
// internal/store/pg.
//
// Convenciones:
//   - Context siempre es el primer parámetro
//   - Los errores de dominio están en errors.go
//   - La paginación/ordenación normalizada está en pagination.go
package repository
