package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sdroman/ticketlogger/internal/audit"
	"github.com/sdroman/ticketlogger/internal/domain/repository"
	"github.com/sdroman/ticketlogger/internal/metrics"
	"github.com/sdroman/ticketlogger/internal/observability/logger"
)

// ProvinceService implementa las operaciones administrativas sobre
// provincias. Toda provincia pertenece a una región: la pertenencia se
// adjunta como referencia por id, sin cargar la región completa.
type ProvinceService struct {
	repo repository.ProvinceRepository
	log  *zap.Logger
}

// NewProvinceService construye el servicio.
func NewProvinceService(repo repository.ProvinceRepository) *ProvinceService {
	return &ProvinceService{repo: repo, log: logger.Named("service.provinces")}
}

// List devuelve una página de provincias con el nombre de su región
// resuelto por inner join. Admite ordenar por regionName.
func (s *ProvinceService) List(ctx context.Context, req repository.PageRequest) (repository.Page[repository.Province], error) {
	metrics.EntityOps.WithLabelValues("province", "list").Inc()
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return repository.Page[repository.Province]{}, sanitize(s.log, "list", err)
	}
	return page, nil
}

// Get devuelve la provincia o ErrNotFound.
func (s *ProvinceService) Get(ctx context.Context, id int64) (*repository.Province, error) {
	metrics.EntityOps.WithLabelValues("province", "get").Inc()
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, sanitize(s.log, "get", err)
	}
	return p, nil
}

// Create valida, comprueba unicidad de código y persiste con la
// referencia a su región. Una región inexistente produce
// ErrInvalidInput (lo detecta la FK al persistir) y ninguna fila queda
// creada.
func (s *ProvinceService) Create(ctx context.Context, in repository.CreateProvinceInput) (int64, error) {
	metrics.EntityOps.WithLabelValues("province", "insert").Inc()

	if err := requireText("code", in.Code, maxCodeLen); err != nil {
		return 0, err
	}
	if err := requireText("name", in.Name, maxNameLen); err != nil {
		return 0, err
	}
	ref, err := repository.NewRegionRef(in.RegionID)
	if err != nil {
		return 0, err
	}

	exists, err := s.repo.ExistsByCode(ctx, in.Code)
	if err != nil {
		return 0, sanitize(s.log, "insert", err)
	}
	if exists {
		metrics.EntityConflicts.WithLabelValues("province").Inc()
		return 0, &repository.ConflictError{Field: "code", Value: in.Code}
	}

	province := &repository.Province{Code: in.Code, Name: in.Name, Region: ref}
	id, err := s.repo.Insert(ctx, province)
	if err != nil {
		if repository.IsConflict(err) {
			metrics.EntityConflicts.WithLabelValues("province").Inc()
		}
		return 0, sanitize(s.log, "insert", err)
	}
	audit.Record(ctx, "province", "create", id, logger.Code(in.Code))
	return id, nil
}

// Update carga la provincia, comprueba unicidad con autoexclusión y
// copia solo los campos mutables (código, nombre y región de
// pertenencia); el id nunca viene del payload.
func (s *ProvinceService) Update(ctx context.Context, id int64, in repository.UpdateProvinceInput) error {
	metrics.EntityOps.WithLabelValues("province", "update").Inc()

	province, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return sanitize(s.log, "update", err)
	}

	if err := requireText("code", in.Code, maxCodeLen); err != nil {
		return err
	}
	if err := requireText("name", in.Name, maxNameLen); err != nil {
		return err
	}
	ref, err := repository.NewRegionRef(in.RegionID)
	if err != nil {
		return err
	}

	exists, err := s.repo.ExistsByCodeExcluding(ctx, in.Code, id)
	if err != nil {
		return sanitize(s.log, "update", err)
	}
	if exists {
		metrics.EntityConflicts.WithLabelValues("province").Inc()
		return &repository.ConflictError{Field: "code", Value: in.Code}
	}

	province.Code = in.Code
	province.Name = in.Name
	province.Region = ref
	if err := s.repo.Update(ctx, province); err != nil {
		if repository.IsConflict(err) {
			metrics.EntityConflicts.WithLabelValues("province").Inc()
		}
		return sanitize(s.log, "update", err)
	}
	audit.Record(ctx, "province", "update", id, logger.Code(in.Code))
	return nil
}

// Delete elimina por id; borrar lo ausente se loguea y no falla.
func (s *ProvinceService) Delete(ctx context.Context, id int64) error {
	metrics.EntityOps.WithLabelValues("province", "delete").Inc()

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return sanitize(s.log, "delete", err)
	}
	if !removed {
		s.log.Warn("delete of absent province", logger.EntityID(id))
	}
	audit.Record(ctx, "province", "delete", id)
	return nil
}
