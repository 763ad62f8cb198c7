// Package audit registra eventos de mutación como log estructurado.
// Hoy el destino es el logger de la aplicación; el formato del evento
// es estable para poder cablearlo a una tabla o sink externo.
package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/sdroman/ticketlogger/internal/observability/logger"
)

// Record escribe un evento de auditoría sobre una entidad.
func Record(_ context.Context, entity, op string, id int64, fields ...zap.Field) {
	base := []zap.Field{
		logger.Entity(entity),
		zap.String("op", op),
		logger.EntityID(id),
	}
	logger.Named("audit").Info("audit", append(base, fields...)...)
}
