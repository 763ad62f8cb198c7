package pg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que el núcleo traduce a su taxonomía de errores.
// La constraint única es la red de seguridad de la carrera
// check-then-act del validador de unicidad; su violación debe salir
// como el mismo conflicto que habría producido la pre-comprobación.
const (
	sqlstateUniqueViolation = "23505"
	sqlstateFKViolation     = "23503"
)

func isUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	return errors.As(err, &pge) && pge.Code == sqlstateUniqueViolation
}

func isFKViolation(err error) bool {
	var pge *pgconn.PgError
	return errors.As(err, &pge) && pge.Code == sqlstateFKViolation
}
