// Package pg implementa los repositorios de dominio sobre PostgreSQL
// usando pgx/v5 y un pool compartido.
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/sdroman/ticketlogger/internal/domain/repository"
	"github.com/sdroman/ticketlogger/internal/observability/logger"
)

// Tuning son los ajustes opcionales del pool.
type Tuning struct {
	MaxConns        int
	MinConns        int
	ConnMaxLifetime string
}

// Store agrupa el pool y fabrica los repositorios concretos.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// New abre el pool contra el DSN dado. El ping inicial es no bloqueante:
// si la base de datos está caída en el arranque se loguea y se sigue.
func New(ctx context.Context, dsn string, t Tuning) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if t.MaxConns > 0 {
		pcfg.MaxConns = int32(t.MaxConns)
	}
	if t.MinConns > 0 {
		pcfg.MinConns = int32(t.MinConns)
	}
	if t.ConnMaxLifetime != "" {
		if d, err := time.ParseDuration(t.ConnMaxLifetime); err == nil {
			pcfg.MaxConnLifetime = d
			pcfg.MaxConnIdleTime = d
		}
	}
	if pcfg.MaxConns == 0 {
		pcfg.MaxConns = 8
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	log := logger.Named("store.pg")
	if err := pool.Ping(ctx); err != nil {
		log.Warn("startup ping failed", logger.Err(err))
	} else {
		log.Info("pool ready", zap.Int32("max_conns", pcfg.MaxConns))
	}

	return &Store{pool: pool, log: log}, nil
}

// NewFromPool envuelve un pool ya abierto (migraciones, seeds).
func NewFromPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, log: logger.Named("store.pg")}
}

// Pool expone el pool interno (migraciones, seeds).
func (s *Store) Pool() *pgxpool.Pool {
	if s == nil {
		return nil
	}
	return s.pool
}

// Close cierra el pool subyacente (idempotente).
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// Regions devuelve el repositorio de regiones.
func (s *Store) Regions() repository.RegionRepository {
	return &regionRepo{pool: s.pool, log: s.log.Named("regions")}
}

// Provinces devuelve el repositorio de provincias.
func (s *Store) Provinces() repository.ProvinceRepository {
	return &provinceRepo{pool: s.pool, log: s.log.Named("provinces")}
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository {
	return &userRepo{pool: s.pool, log: s.log.Named("users")}
}

// Profiles devuelve el repositorio de perfiles.
func (s *Store) Profiles() repository.UserProfileRepository {
	return &profileRepo{pool: s.pool, log: s.log.Named("profiles")}
}

// Roles devuelve el repositorio de roles.
func (s *Store) Roles() repository.RoleRepository {
	return &roleRepo{pool: s.pool}
}
