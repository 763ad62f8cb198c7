// Package cache provee una abstracción de cache de lectura para
// entidades, con backend en memoria (desarrollo) o Redis (producción).
// El núcleo la usa para los GetByID calientes; toda escritura invalida.
package cache

import "time"

// Cache define las operaciones mínimas de cache.
type Cache interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}

// Nop es un cache que no guarda nada; útil cuando el caching está
// deshabilitado por configuración.
type Nop struct{}

func (Nop) Get(string) ([]byte, bool)         { return nil, false }
func (Nop) Set(string, []byte, time.Duration) {}
func (Nop) Delete(string)                     {}
