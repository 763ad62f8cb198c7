// Package service orquesta las operaciones del núcleo sobre los
// repositorios: normaliza listados, valida campos obligatorios y de
// tamaño, aplica las comprobaciones de unicidad (con su variante de
// autoexclusión en updates), adjunta referencias a padre por id y
// gobierna el ciclo de vida de la imagen de perfil.
//
// Es la superficie que consume la capa de controladores (externa a este
// repositorio). Ningún error inesperado cruza esta frontera sin
// traducir: toda operación pública devuelve un error de la taxonomía de
// internal/domain/repository.
package service
