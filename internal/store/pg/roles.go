package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sdroman/ticketlogger/internal/domain/repository"
)

type roleRepo struct {
	pool *pgxpool.Pool
}

func (r *roleRepo) List(ctx context.Context) ([]repository.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []repository.Role
	for rows.Next() {
		var role repository.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *roleRepo) ExistAll(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	uniq := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		uniq[id] = struct{}{}
	}
	distinct := make([]int64, 0, len(uniq))
	for id := range uniq {
		distinct = append(distinct, id)
	}

	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM roles WHERE id = ANY($1::bigint[])`, distinct,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == int64(len(distinct)), nil
}
