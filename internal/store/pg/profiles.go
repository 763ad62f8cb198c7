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

type profileRepo struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID int64) (*repository.UserProfile, error) {
	var p repository.UserProfile
	err := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, phone_number, profile_image, bio, locale,
		       created_at, updated_at
		FROM user_profiles WHERE id = $1`, userID,
	).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.PhoneNumber, &p.ProfileImage,
		&p.Bio, &p.Locale, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Insert(ctx context.Context, profile *repository.UserProfile) error {
	// El perfil comparte clave primaria con su usuario: la FK sobre id
	// garantiza que no se cree un perfil huérfano.
	err := r.pool.QueryRow(ctx, `
		INSERT INTO user_profiles (id, first_name, last_name, phone_number, profile_image, bio, locale)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		profile.ID, profile.FirstName, profile.LastName, profile.PhoneNumber,
		profile.ProfileImage, profile.Bio, profile.Locale,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if isFKViolation(err) {
		return fmt.Errorf("user %d does not exist: %w", profile.ID, repository.ErrInvalidInput)
	}
	if isUniqueViolation(err) {
		return &repository.ConflictError{Field: "id", Value: fmt.Sprint(profile.ID)}
	}
	if err != nil {
		return err
	}
	r.log.Info("profile created", logger.EntityID(profile.ID))
	return nil
}

func (r *profileRepo) Update(ctx context.Context, profile *repository.UserProfile) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE user_profiles
		SET first_name = $2, last_name = $3, phone_number = $4, bio = $5,
		    locale = $6, updated_at = now()
		WHERE id = $1`,
		profile.ID, profile.FirstName, profile.LastName, profile.PhoneNumber,
		profile.Bio, profile.Locale,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *profileRepo) SetImagePath(ctx context.Context, userID int64, path *string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE user_profiles SET profile_image = $2, updated_at = now() WHERE id = $1`,
		userID, path,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
