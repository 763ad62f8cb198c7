package service

import (
	"go.uber.org/zap"

	"github.com/sdroman/ticketlogger/internal/domain/repository"
	"github.com/sdroman/ticketlogger/internal/observability/logger"
)

// sanitize deja pasar los errores de la taxonomía tal cual y convierte
// cualquier otro en ErrInternal, logueando el detalle completo. Así el
// caller nunca ve estado interno (driver, SQL, rutas).
func sanitize(log *zap.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case repository.IsNotFound(err),
		repository.IsConflict(err),
		repository.IsInvalidInput(err),
		repository.IsStorage(err):
		return err
	}
	log.Error("unexpected error", zap.String("op", op), logger.Err(err))
	return repository.ErrInternal
}
