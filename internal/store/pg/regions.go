package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/sdroman/ticketlogger/internal/domain/repository"
	"github.com/sdroman/ticketlogger/internal/observability/logger"
)

type regionRepo struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

var regionSort = sortMap{
	columns: map[string]string{
		"id":   "id",
		"code": "code",
		"name": "name",
	},
	fallback: "name",
}

func (r *regionRepo) List(ctx context.Context, req repository.PageRequest) (repository.Page[repository.Region], error) {
	req = req.Normalize()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM regions`).Scan(&total); err != nil {
		return repository.Page[repository.Region]{}, err
	}
	meta := repository.NewPageMeta(req, total)

	col, ok := regionSort.resolve(req.SortField)
	if !ok {
		r.log.Warn("unknown sort field, defaulting", logger.SortField(req.SortField))
	}
	query := fmt.Sprintf(
		`SELECT id, code, name FROM regions ORDER BY %s %s, id LIMIT $1 OFFSET $2`,
		col, sqlDir(req.SortDir),
	)

	rows, err := r.pool.Query(ctx, query, meta.Size, meta.Page*meta.Size)
	if err != nil {
		return repository.Page[repository.Region]{}, err
	}
	defer rows.Close()

	var items []repository.Region
	for rows.Next() {
		var reg repository.Region
		if err := rows.Scan(&reg.ID, &reg.Code, &reg.Name); err != nil {
			return repository.Page[repository.Region]{}, err
		}
		items = append(items, reg)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[repository.Region]{}, err
	}
	return repository.Page[repository.Region]{Items: items, Meta: meta}, nil
}

func (r *regionRepo) GetByID(ctx context.Context, id int64) (*repository.Region, error) {
	var reg repository.Region
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, name FROM regions WHERE id = $1`, id,
	).Scan(&reg.ID, &reg.Code, &reg.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *regionRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM regions WHERE UPPER(code) = UPPER($1)`, code,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *regionRepo) ExistsByCodeExcluding(ctx context.Context, code string, excludeID int64) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM regions WHERE UPPER(code) = UPPER($1) AND id <> $2`,
		code, excludeID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *regionRepo) Insert(ctx context.Context, region *repository.Region) (int64, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO regions (code, name) VALUES ($1, $2) RETURNING id`,
		region.Code, region.Name,
	).Scan(&region.ID)
	if isUniqueViolation(err) {
		return 0, &repository.ConflictError{Field: "code", Value: region.Code}
	}
	if err != nil {
		return 0, err
	}
	r.log.Info("region inserted", logger.EntityID(region.ID), logger.Code(region.Code))
	return region.ID, nil
}

func (r *regionRepo) Update(ctx context.Context, region *repository.Region) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE regions SET code = $2, name = $3 WHERE id = $1`,
		region.ID, region.Code, region.Name,
	)
	if isUniqueViolation(err) {
		return &repository.ConflictError{Field: "code", Value: region.Code}
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *regionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	// Las provincias dependientes caen por ON DELETE CASCADE.
	tag, err := r.pool.Exec(ctx, `DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
