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

type provinceRepo struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// regionName resuelve a la columna de la tabla padre vía inner join.
var provinceSort = sortMap{
	columns: map[string]string{
		"id":         "p.id",
		"code":       "p.code",
		"name":       "p.name",
		"regionName": "r.name",
	},
	fallback: "name",
}

// El inner join excluye por construcción cualquier provincia cuyo padre
// falte (violación del invariante de pertenencia); por eso el COUNT usa
// el mismo join, para que el total y las filas sean coherentes.
const provinceListFrom = `FROM provinces p INNER JOIN regions r ON r.id = p.region_id`

func (r *provinceRepo) List(ctx context.Context, req repository.PageRequest) (repository.Page[repository.Province], error) {
	req = req.Normalize()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) `+provinceListFrom).Scan(&total); err != nil {
		return repository.Page[repository.Province]{}, err
	}
	meta := repository.NewPageMeta(req, total)

	col, ok := provinceSort.resolve(req.SortField)
	if !ok {
		r.log.Warn("unknown sort field, defaulting", logger.SortField(req.SortField))
	}
	query := fmt.Sprintf(
		`SELECT p.id, p.code, p.name, p.region_id, r.name %s ORDER BY %s %s, p.id LIMIT $1 OFFSET $2`,
		provinceListFrom, col, sqlDir(req.SortDir),
	)

	rows, err := r.pool.Query(ctx, query, meta.Size, meta.Page*meta.Size)
	if err != nil {
		return repository.Page[repository.Province]{}, err
	}
	defer rows.Close()

	var items []repository.Province
	for rows.Next() {
		var p repository.Province
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Region.ID, &p.RegionName); err != nil {
			return repository.Page[repository.Province]{}, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[repository.Province]{}, err
	}
	return repository.Page[repository.Province]{Items: items, Meta: meta}, nil
}

func (r *provinceRepo) GetByID(ctx context.Context, id int64) (*repository.Province, error) {
	var p repository.Province
	err := r.pool.QueryRow(ctx,
		`SELECT p.id, p.code, p.name, p.region_id, r.name `+provinceListFrom+` WHERE p.id = $1`, id,
	).Scan(&p.ID, &p.Code, &p.Name, &p.Region.ID, &p.RegionName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *provinceRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM provinces WHERE UPPER(code) = UPPER($1)`, code,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *provinceRepo) ExistsByCodeExcluding(ctx context.Context, code string, excludeID int64) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM provinces WHERE UPPER(code) = UPPER($1) AND id <> $2`,
		code, excludeID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *provinceRepo) Insert(ctx context.Context, province *repository.Province) (int64, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO provinces (code, name, region_id) VALUES ($1, $2, $3) RETURNING id`,
		province.Code, province.Name, province.Region.ID,
	).Scan(&province.ID)
	if isUniqueViolation(err) {
		return 0, &repository.ConflictError{Field: "code", Value: province.Code}
	}
	if isFKViolation(err) {
		return 0, fmt.Errorf("region %d does not exist: %w", province.Region.ID, repository.ErrInvalidInput)
	}
	if err != nil {
		return 0, err
	}
	r.log.Info("province inserted",
		logger.EntityID(province.ID),
		logger.Code(province.Code),
		zap.Int64("region_id", province.Region.ID),
	)
	return province.ID, nil
}

func (r *provinceRepo) Update(ctx context.Context, province *repository.Province) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE provinces SET code = $2, name = $3, region_id = $4 WHERE id = $1`,
		province.ID, province.Code, province.Name, province.Region.ID,
	)
	if isUniqueViolation(err) {
		return &repository.ConflictError{Field: "code", Value: province.Code}
	}
	if isFKViolation(err) {
		return fmt.Errorf("region %d does not exist: %w", province.Region.ID, repository.ErrInvalidInput)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *provinceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM provinces WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
