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

type userRepo struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

var userSort = sortMap{
	columns: map[string]string{
		"id":                 "u.id",
		"email":              "u.email",
		"active":             "u.active",
		"lastPasswordChange": "u.last_password_change",
	},
	fallback: "email",
}

const userColumns = `u.id, u.email, u.password_hash, u.active, u.account_non_locked,
	u.email_verified, u.must_change_password, u.failed_login_attempts,
	u.last_password_change, u.password_expires_at`

func scanUser(row pgx.Row, u *repository.User) error {
	return row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Active, &u.AccountNonLocked,
		&u.EmailVerified, &u.MustChangePassword, &u.FailedLoginAttempts,
		&u.LastPasswordChange, &u.PasswordExpiresAt,
	)
}

func (r *userRepo) List(ctx context.Context, req repository.PageRequest) (repository.Page[repository.User], error) {
	req = req.Normalize()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return repository.Page[repository.User]{}, err
	}
	meta := repository.NewPageMeta(req, total)

	col, ok := userSort.resolve(req.SortField)
	if !ok {
		r.log.Warn("unknown sort field, defaulting", logger.SortField(req.SortField))
	}
	query := fmt.Sprintf(`
		SELECT `+userColumns+`,
		       COALESCE(array_agg(ur.role_id) FILTER (WHERE ur.role_id IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		GROUP BY u.id
		ORDER BY %s %s, u.id
		LIMIT $1 OFFSET $2`, col, sqlDir(req.SortDir))

	rows, err := r.pool.Query(ctx, query, meta.Size, meta.Page*meta.Size)
	if err != nil {
		return repository.Page[repository.User]{}, err
	}
	defer rows.Close()

	var items []repository.User
	for rows.Next() {
		var u repository.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Active, &u.AccountNonLocked,
			&u.EmailVerified, &u.MustChangePassword, &u.FailedLoginAttempts,
			&u.LastPasswordChange, &u.PasswordExpiresAt, &u.RoleIDs,
		); err != nil {
			return repository.Page[repository.User]{}, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[repository.User]{}, err
	}
	return repository.Page[repository.User]{Items: items, Meta: meta}, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*repository.User, error) {
	var u repository.User
	err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id), &u)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT role_id FROM user_roles WHERE user_id = $1 ORDER BY role_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var roleID int64
		if err := rows.Scan(&roleID); err != nil {
			return nil, err
		}
		u.RoleIDs = append(u.RoleIDs, roleID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE UPPER(email) = UPPER($1)`, email,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) ExistsByEmailExcluding(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE UPPER(email) = UPPER($1) AND id <> $2`,
		email, excludeID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) Insert(ctx context.Context, user *repository.User) (int64, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, active, account_non_locked,
			email_verified, must_change_password, failed_login_attempts,
			last_password_change, password_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		user.Email, user.PasswordHash, user.Active, user.AccountNonLocked,
		user.EmailVerified, user.MustChangePassword, user.FailedLoginAttempts,
		user.LastPasswordChange, user.PasswordExpiresAt,
	).Scan(&user.ID)
	if isUniqueViolation(err) {
		return 0, &repository.ConflictError{Field: "email", Value: user.Email}
	}
	if err != nil {
		return 0, err
	}
	r.log.Info("user inserted", logger.EntityID(user.ID))
	return user.ID, nil
}

func (r *userRepo) Update(ctx context.Context, user *repository.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET email = $2, password_hash = $3, active = $4,
			account_non_locked = $5, email_verified = $6, must_change_password = $7,
			failed_login_attempts = $8, last_password_change = $9, password_expires_at = $10
		WHERE id = $1`,
		user.ID, user.Email, user.PasswordHash, user.Active, user.AccountNonLocked,
		user.EmailVerified, user.MustChangePassword, user.FailedLoginAttempts,
		user.LastPasswordChange, user.PasswordExpiresAt,
	)
	if isUniqueViolation(err) {
		return &repository.ConflictError{Field: "email", Value: user.Email}
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepo) ReplaceRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if len(roleIDs) > 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) SELECT $1, unnest($2::bigint[])`,
			userID, roleIDs,
		)
		if isFKViolation(err) {
			return fmt.Errorf("role reference does not exist: %w", repository.ErrInvalidInput)
		}
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *userRepo) Delete(ctx context.Context, id int64) (bool, error) {
	// user_roles y user_profiles caen por ON DELETE CASCADE.
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
