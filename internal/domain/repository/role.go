package repository

import "context"

// Role es un rol referenciado por usuarios; compartido, nunca propiedad
// de un usuario concreto.
type Role struct {
	ID   int64
	Name string
}

// RoleRepository define operaciones de consulta sobre roles.
type RoleRepository interface {
	// List devuelve todos los roles ordenados por nombre.
	List(ctx context.Context) ([]Role, error)

	// ExistAll comprueba que todos los ids dados existen.
	ExistAll(ctx context.Context, ids []int64) (bool, error)
}
