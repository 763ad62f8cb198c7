package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sdroman/ticketlogger/internal/audit"
	"github.com/sdroman/ticketlogger/internal/cache"
	"github.com/sdroman/ticketlogger/internal/domain/repository"
	"github.com/sdroman/ticketlogger/internal/metrics"
	"github.com/sdroman/ticketlogger/internal/observability/logger"
)

// RegionService implementa las operaciones administrativas sobre
// regiones.
type RegionService struct {
	repo  repository.RegionRepository
	cache cache.Cache
	ttl   time.Duration
	sf    singleflight.Group
	log   *zap.Logger
}

// NewRegionService construye el servicio. Con c nil el caching queda
// deshabilitado.
func NewRegionService(repo repository.RegionRepository, c cache.Cache, ttl time.Duration) *RegionService {
	if c == nil {
		c = cache.Nop{}
	}
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &RegionService{repo: repo, cache: c, ttl: ttl, log: logger.Named("service.regions")}
}

func regionCacheKey(id int64) string { return fmt.Sprintf("region:%d", id) }

// List devuelve una página ordenada de regiones. Los parámetros
// inválidos se corrigen en silencio: un listado nunca falla por ellos.
func (s *RegionService) List(ctx context.Context, req repository.PageRequest) (repository.Page[repository.Region], error) {
	metrics.EntityOps.WithLabelValues("region", "list").Inc()
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return repository.Page[repository.Region]{}, sanitize(s.log, "list", err)
	}
	return page, nil
}

// Get devuelve la región o ErrNotFound. Los aciertos vienen del cache;
// los fallos concurrentes sobre el mismo id comparten una sola consulta.
func (s *RegionService) Get(ctx context.Context, id int64) (*repository.Region, error) {
	metrics.EntityOps.WithLabelValues("region", "get").Inc()

	key := regionCacheKey(id)
	if b, ok := s.cache.Get(key); ok {
		var reg repository.Region
		if json.Unmarshal(b, &reg) == nil {
			metrics.CacheHits.WithLabelValues("region").Inc()
			return &reg, nil
		}
		s.cache.Delete(key)
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		reg, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(reg); err == nil {
			s.cache.Set(key, b, s.ttl)
		}
		return reg, nil
	})
	if err != nil {
		return nil, sanitize(s.log, "get", err)
	}
	return v.(*repository.Region), nil
}

// Create valida, comprueba la unicidad del código y persiste. La
// comprobación es check-then-act: la constraint única de la base de
// datos respalda la carrera y su violación sale como el mismo conflicto.
func (s *RegionService) Create(ctx context.Context, in repository.CreateRegionInput) (int64, error) {
	metrics.EntityOps.WithLabelValues("region", "insert").Inc()

	if err := requireText("code", in.Code, maxCodeLen); err != nil {
		return 0, err
	}
	if err := requireText("name", in.Name, maxNameLen); err != nil {
		return 0, err
	}

	exists, err := s.repo.ExistsByCode(ctx, in.Code)
	if err != nil {
		return 0, sanitize(s.log, "insert", err)
	}
	if exists {
		metrics.EntityConflicts.WithLabelValues("region").Inc()
		return 0, &repository.ConflictError{Field: "code", Value: in.Code}
	}

	region := &repository.Region{Code: in.Code, Name: in.Name}
	id, err := s.repo.Insert(ctx, region)
	if err != nil {
		if repository.IsConflict(err) {
			metrics.EntityConflicts.WithLabelValues("region").Inc()
		}
		return 0, sanitize(s.log, "insert", err)
	}
	audit.Record(ctx, "region", "create", id, logger.Code(in.Code))
	return id, nil
}

// Update carga la región, comprueba la unicidad excluyéndose a sí misma
// y copia solo los campos mutables: el id nunca viene del payload.
func (s *RegionService) Update(ctx context.Context, id int64, in repository.UpdateRegionInput) error {
	metrics.EntityOps.WithLabelValues("region", "update").Inc()

	region, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return sanitize(s.log, "update", err)
	}

	if err := requireText("code", in.Code, maxCodeLen); err != nil {
		return err
	}
	if err := requireText("name", in.Name, maxNameLen); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByCodeExcluding(ctx, in.Code, id)
	if err != nil {
		return sanitize(s.log, "update", err)
	}
	if exists {
		metrics.EntityConflicts.WithLabelValues("region").Inc()
		return &repository.ConflictError{Field: "code", Value: in.Code}
	}

	region.Code = in.Code
	region.Name = in.Name
	if err := s.repo.Update(ctx, region); err != nil {
		if repository.IsConflict(err) {
			metrics.EntityConflicts.WithLabelValues("region").Inc()
		}
		return sanitize(s.log, "update", err)
	}
	s.cache.Delete(regionCacheKey(id))
	audit.Record(ctx, "region", "update", id, logger.Code(in.Code))
	return nil
}

// Delete elimina la región y, en cascada, sus provincias. Borrar lo ya
// ausente no es un error para el caller, pero queda logueado.
func (s *RegionService) Delete(ctx context.Context, id int64) error {
	metrics.EntityOps.WithLabelValues("region", "delete").Inc()

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return sanitize(s.log, "delete", err)
	}
	if !removed {
		s.log.Warn("delete of absent region", logger.EntityID(id))
	}
	s.cache.Delete(regionCacheKey(id))
	audit.Record(ctx, "region", "delete", id)
	return nil
}
