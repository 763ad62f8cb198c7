package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar del dominio, para mantener nombres consistentes en
// todos los logs del núcleo.

// Entity crea un campo con el tipo de entidad (region, province, user...).
func Entity(v string) zap.Field {
	return zap.String("entity", v)
}

// EntityID crea un campo con el id de la entidad.
func EntityID(v int64) zap.Field {
	return zap.Int64("entity_id", v)
}

// Code crea un campo con la clave natural en juego.
func Code(v string) zap.Field {
	return zap.String("code", v)
}

// Page crea un campo con el número de página solicitado.
func Page(v int) zap.Field {
	return zap.Int("page", v)
}

// Size crea un campo con el tamaño de página.
func Size(v int) zap.Field {
	return zap.Int("size", v)
}

// SortField crea un campo con el campo de ordenación.
func SortField(v string) zap.Field {
	return zap.String("sort_field", v)
}

// SortDir crea un campo con la dirección de ordenación.
func SortDir(v string) zap.Field {
	return zap.String("sort_dir", v)
}

// Path crea un campo con una ruta de archivo o web de un adjunto.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Duration crea un campo con la duración de una operación.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// Err crea un campo de error (alias de zap.Error para importar solo logger).
func Err(err error) zap.Field {
	return zap.Error(err)
}
