package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sdroman/ticketlogger/internal/audit"
	"github.com/sdroman/ticketlogger/internal/domain/repository"
	"github.com/sdroman/ticketlogger/internal/metrics"
	"github.com/sdroman/ticketlogger/internal/observability/logger"
	"github.com/sdroman/ticketlogger/internal/uploads"
)

// AttachmentStore abstrae el almacenamiento físico de adjuntos.
type AttachmentStore interface {
	Save(data []byte, contentType string, declaredSize int64, originalName string) (string, error)
	Delete(pathOrWebPath string) error
}

// Upload es un adjunto entrante tal y como llega del borde (formulario
// multipart o similar).
type Upload struct {
	Data         []byte
	ContentType  string
	DeclaredSize int64
	Filename     string
}

// ProfileService gestiona el perfil de usuario y su imagen. El perfil
// comparte identidad con el usuario y se crea en la primera edición; la
// imagen sigue el ciclo guardar-persistir-borrar para que una referencia
// almacenada nunca apunte a un archivo ya eliminado.
type ProfileService struct {
	repo  repository.UserProfileRepository
	users repository.UserRepository
	files AttachmentStore
	log   *zap.Logger
}

// NewProfileService construye el servicio.
func NewProfileService(repo repository.UserProfileRepository, users repository.UserRepository, files AttachmentStore) *ProfileService {
	return &ProfileService{
		repo:  repo,
		users: users,
		files: files,
		log:   logger.Named("service.profile"),
	}
}

// Get devuelve el perfil del usuario o ErrNotFound si aún no lo editó.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*repository.UserProfile, error) {
	metrics.EntityOps.WithLabelValues("profile", "get").Inc()
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, sanitize(s.log, "get", err)
	}
	return p, nil
}

// Upsert crea el perfil en la primera edición o actualiza el existente.
// La imagen nunca se toca desde aquí: pertenece a SetImage/RemoveImage.
func (s *ProfileService) Upsert(ctx context.Context, userID int64, in repository.UpsertProfileInput) error {
	metrics.EntityOps.WithLabelValues("profile", "upsert").Inc()

	if err := s.validateProfile(in); err != nil {
		return err
	}

	profile, err := s.repo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		profile.FirstName = in.FirstName
		profile.LastName = in.LastName
		profile.PhoneNumber = in.PhoneNumber
		profile.Bio = in.Bio
		profile.Locale = in.Locale
		if err := s.repo.Update(ctx, profile); err != nil {
			return sanitize(s.log, "upsert", err)
		}
		audit.Record(ctx, "profile", "update", userID)
		return nil

	case repository.IsNotFound(err):
		// El usuario debe existir aunque el perfil no: la clave compartida
		// lo exige y preferimos un ErrNotFound claro a la violación de FK.
		if _, err := s.users.GetByID(ctx, userID); err != nil {
			return sanitize(s.log, "upsert", err)
		}
		fresh := &repository.UserProfile{
			ID:          userID,
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			PhoneNumber: in.PhoneNumber,
			Bio:         in.Bio,
			Locale:      in.Locale,
		}
		if err := s.repo.Insert(ctx, fresh); err != nil {
			return sanitize(s.log, "upsert", err)
		}
		audit.Record(ctx, "profile", "create", userID)
		return nil

	default:
		return sanitize(s.log, "upsert", err)
	}
}

// SetImage adjunta o sustituye la imagen del perfil. El orden importa:
// primero se escribe el archivo nuevo, luego se persiste la referencia y
// solo entonces se borra el antiguo. Si la persistencia falla el archivo
// nuevo se limpia y la referencia anterior sigue siendo válida; un
// adjunto rechazado por política no modifica nada.
func (s *ProfileService) SetImage(ctx context.Context, userID int64, up Upload) (string, error) {
	metrics.EntityOps.WithLabelValues("profile", "set_image").Inc()

	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return "", sanitize(s.log, "set_image", err)
	}

	webPath, err := s.files.Save(up.Data, up.ContentType, up.DeclaredSize, up.Filename)
	if err != nil {
		metrics.AttachmentRejects.WithLabelValues(rejectReason(err)).Inc()
		return "", sanitize(s.log, "set_image", err)
	}
	metrics.AttachmentBytes.Add(float64(len(up.Data)))

	old := profile.ProfileImage
	if err := s.repo.SetImagePath(ctx, userID, &webPath); err != nil {
		// La referencia no llegó a cambiar: el archivo nuevo es huérfano.
		if cleanupErr := s.files.Delete(webPath); cleanupErr != nil {
			s.log.Warn("orphan attachment cleanup failed",
				logger.Path(webPath), logger.Err(cleanupErr))
		}
		return "", sanitize(s.log, "set_image", err)
	}

	if old != nil && *old != "" && *old != webPath {
		if err := s.files.Delete(*old); err != nil {
			// La referencia ya apunta al archivo nuevo; el viejo queda
			// huérfano en disco y solo se deja constancia.
			s.log.Warn("previous attachment not removed",
				logger.Path(*old), logger.Err(err))
		}
	}
	audit.Record(ctx, "profile", "set_image", userID, logger.Path(webPath))
	return webPath, nil
}

// RemoveImage borra la referencia y después el archivo. Un perfil sin
// imagen es un no-op.
func (s *ProfileService) RemoveImage(ctx context.Context, userID int64) error {
	metrics.EntityOps.WithLabelValues("profile", "remove_image").Inc()

	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return sanitize(s.log, "remove_image", err)
	}
	if profile.ProfileImage == nil || *profile.ProfileImage == "" {
		return nil
	}

	old := *profile.ProfileImage
	if err := s.repo.SetImagePath(ctx, userID, nil); err != nil {
		return sanitize(s.log, "remove_image", err)
	}
	if err := s.files.Delete(old); err != nil {
		s.log.Warn("detached attachment not removed", logger.Path(old), logger.Err(err))
	}
	audit.Record(ctx, "profile", "remove_image", userID)
	return nil
}

func (s *ProfileService) validateProfile(in repository.UpsertProfileInput) error {
	if err := requireText("firstName", in.FirstName, maxNameLen); err != nil {
		return err
	}
	if err := requireText("lastName", in.LastName, maxNameLen); err != nil {
		return err
	}
	if err := optionalText("phoneNumber", in.PhoneNumber, maxPhoneLen); err != nil {
		return err
	}
	if err := optionalText("bio", in.Bio, maxBioLen); err != nil {
		return err
	}
	if err := optionalText("locale", in.Locale, maxLocaleLen); err != nil {
		return err
	}
	return nil
}

// rejectReason etiqueta el motivo de rechazo para la métrica.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, uploads.ErrUnsupportedType):
		return "content_type"
	case errors.Is(err, uploads.ErrTooLarge):
		return "too_large"
	case errors.Is(err, uploads.ErrEmptyFile):
		return "empty"
	default:
		return "io"
	}
}
