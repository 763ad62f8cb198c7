package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sdroman/ticketlogger/internal/audit"
	"github.com/sdroman/ticketlogger/internal/domain/repository"
	"github.com/sdroman/ticketlogger/internal/metrics"
	"github.com/sdroman/ticketlogger/internal/observability/logger"
	"github.com/sdroman/ticketlogger/internal/security/password"
)

// UserService gestiona cuentas. La contraseña llega en claro y sale de
// aquí siempre como hash PHC; las marcas temporales derivadas
// (lastPasswordChange, passwordExpiresAt) se completan en alta y nunca
// se aceptan del payload de actualización.
type UserService struct {
	repo  repository.UserRepository
	roles repository.RoleRepository
	log   *zap.Logger

	// now es inyectable para fijar el reloj en tests.
	now func() time.Time
}

// NewUserService construye el servicio con el reloj del sistema.
func NewUserService(repo repository.UserRepository, roles repository.RoleRepository) *UserService {
	return &UserService{
		repo:  repo,
		roles: roles,
		log:   logger.Named("service.users"),
		now:   time.Now,
	}
}

// List devuelve una página de usuarios con sus role ids.
func (s *UserService) List(ctx context.Context, req repository.PageRequest) (repository.Page[repository.User], error) {
	metrics.EntityOps.WithLabelValues("user", "list").Inc()
	page, err := s.repo.List(ctx, req)
	if err != nil {
		return repository.Page[repository.User]{}, sanitize(s.log, "list", err)
	}
	return page, nil
}

// Get devuelve el usuario o ErrNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*repository.User, error) {
	metrics.EntityOps.WithLabelValues("user", "get").Inc()
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, sanitize(s.log, "get", err)
	}
	return u, nil
}

// Create valida, calcula el hash de la contraseña, completa las marcas
// de caducidad y persiste usuario y roles. Un role id inexistente deja
// la operación en ErrInvalidInput sin usuario creado a medias: los
// roles se comprueban antes del insert y la FK respalda la comprobación.
func (s *UserService) Create(ctx context.Context, in repository.CreateUserInput) (int64, error) {
	metrics.EntityOps.WithLabelValues("user", "insert").Inc()

	if err := validEmail(in.Email); err != nil {
		return 0, err
	}
	if err := requireText("password", in.Password, 0); err != nil {
		return 0, err
	}
	if err := s.checkRoles(ctx, in.RoleIDs); err != nil {
		return 0, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return 0, sanitize(s.log, "insert", err)
	}
	if exists {
		metrics.EntityConflicts.WithLabelValues("user").Inc()
		return 0, &repository.ConflictError{Field: "email", Value: in.Email}
	}

	hash, err := password.Hash(password.Default, in.Password)
	if err != nil {
		return 0, sanitize(s.log, "insert", err)
	}

	user := &repository.User{
		Email:              in.Email,
		PasswordHash:       hash,
		Active:             in.Active,
		AccountNonLocked:   in.AccountNonLocked,
		EmailVerified:      in.EmailVerified,
		MustChangePassword: in.MustChangePassword,
		LastPasswordChange: in.LastPasswordChange,
	}
	user.ApplyPasswordDefaults(s.now())

	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		if repository.IsConflict(err) {
			metrics.EntityConflicts.WithLabelValues("user").Inc()
		}
		return 0, sanitize(s.log, "insert", err)
	}

	if len(in.RoleIDs) > 0 {
		if err := s.repo.ReplaceRoles(ctx, id, in.RoleIDs); err != nil {
			return 0, sanitize(s.log, "insert", err)
		}
	}
	audit.Record(ctx, "user", "create", id)
	return id, nil
}

// Update aplica solo los campos presentes del payload. El cambio de
// email comprueba unicidad con autoexclusión: conservar el propio email
// nunca es conflicto. Si la comprobación detecta duplicado el usuario
// conserva su email original.
func (s *UserService) Update(ctx context.Context, id int64, in repository.UpdateUserInput) error {
	metrics.EntityOps.WithLabelValues("user", "update").Inc()

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return sanitize(s.log, "update", err)
	}

	if in.Email != nil {
		if err := validEmail(*in.Email); err != nil {
			return err
		}
		exists, err := s.repo.ExistsByEmailExcluding(ctx, *in.Email, id)
		if err != nil {
			return sanitize(s.log, "update", err)
		}
		if exists {
			metrics.EntityConflicts.WithLabelValues("user").Inc()
			return &repository.ConflictError{Field: "email", Value: *in.Email}
		}
		user.Email = *in.Email
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if in.AccountNonLocked != nil {
		user.AccountNonLocked = *in.AccountNonLocked
	}
	if in.EmailVerified != nil {
		user.EmailVerified = *in.EmailVerified
	}
	if in.MustChangePassword != nil {
		user.MustChangePassword = *in.MustChangePassword
	}

	if in.RoleIDs != nil {
		if err := s.checkRoles(ctx, in.RoleIDs); err != nil {
			return err
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if repository.IsConflict(err) {
			metrics.EntityConflicts.WithLabelValues("user").Inc()
		}
		return sanitize(s.log, "update", err)
	}

	if in.RoleIDs != nil {
		if err := s.repo.ReplaceRoles(ctx, id, in.RoleIDs); err != nil {
			return sanitize(s.log, "update", err)
		}
	}
	audit.Record(ctx, "user", "update", id)
	return nil
}

// ChangePassword fija una nueva contraseña y reinicia la ventana de
// caducidad a partir del reloj del servicio.
func (s *UserService) ChangePassword(ctx context.Context, id int64, plain string) error {
	metrics.EntityOps.WithLabelValues("user", "update").Inc()

	if err := requireText("password", plain, 0); err != nil {
		return err
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return sanitize(s.log, "change_password", err)
	}

	hash, err := password.Hash(password.Default, plain)
	if err != nil {
		return sanitize(s.log, "change_password", err)
	}
	now := s.now()
	exp := now.AddDate(0, repository.PasswordValidityMonths, 0)
	user.PasswordHash = hash
	user.LastPasswordChange = &now
	user.PasswordExpiresAt = &exp
	user.MustChangePassword = false

	if err := s.repo.Update(ctx, user); err != nil {
		return sanitize(s.log, "change_password", err)
	}
	audit.Record(ctx, "user", "change_password", id)
	return nil
}

// Delete elimina por id; el perfil asociado cae en cascada. Borrar lo
// ausente se loguea y no falla.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	metrics.EntityOps.WithLabelValues("user", "delete").Inc()

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return sanitize(s.log, "delete", err)
	}
	if !removed {
		s.log.Warn("delete of absent user", logger.EntityID(id))
	}
	audit.Record(ctx, "user", "delete", id)
	return nil
}

// checkRoles comprueba que todos los role ids existen antes de
// adjuntarlos; los roles son compartidos y nunca se crean desde aquí.
func (s *UserService) checkRoles(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	ok, err := s.roles.ExistAll(ctx, ids)
	if err != nil {
		return sanitize(s.log, "check_roles", err)
	}
	if !ok {
		return repository.ErrInvalidInput
	}
	return nil
}
