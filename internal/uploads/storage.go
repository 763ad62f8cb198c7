// Package uploads gestiona el almacenamiento en disco de los adjuntos
// (imágenes de perfil).
//
// Los archivos viven bajo <root>/uploads/ con un nombre libre de
// colisiones (uuid + extensión original) y se referencian desde la base
// de datos con la ruta web /uploads/<uuid>.<ext>. La escritura ocurre
// fuera de la transacción de base de datos: si la persistencia posterior
// de la referencia falla, el archivo queda huérfano y es el caller quien
// decide limpiarlo (ver service.ProfileService.SetImage).
package uploads

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sdroman/ticketlogger/internal/domain/repository"
	"github.com/sdroman/ticketlogger/internal/observability/logger"
	"github.com/sdroman/ticketlogger/internal/util/atomicwrite"
)

const (
	// MaxBytes es el tamaño máximo admitido para un adjunto.
	MaxBytes = 2 << 20 // 2 MiB

	subdir    = "uploads"
	webPrefix = "/uploads/"
)

// Errores de política: todos satisfacen repository.IsStorage.
var (
	ErrUnsupportedType = fmt.Errorf("content type is not an image: %w", repository.ErrStorage)
	ErrTooLarge        = fmt.Errorf("file exceeds %d bytes: %w", int64(MaxBytes), repository.ErrStorage)
	ErrEmptyFile       = fmt.Errorf("empty file: %w", repository.ErrStorage)
)

// Store guarda y elimina adjuntos bajo un directorio raíz configurado.
type Store struct {
	root string
	log  *zap.Logger
}

// New crea el store sobre el directorio raíz dado.
func New(root string) *Store {
	return &Store{root: root, log: logger.Named("uploads")}
}

// Save valida y escribe un adjunto nuevo. Rechaza sin escribir nada si
// contentType no empieza por "image/" o si el tamaño declarado (o real)
// supera MaxBytes. Devuelve la ruta web pública del archivo.
func (s *Store) Save(data []byte, contentType string, declaredSize int64, originalName string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if !strings.HasPrefix(contentType, "image/") {
		s.log.Warn("rejected attachment", zap.String("content_type", contentType))
		return "", ErrUnsupportedType
	}
	if declaredSize > MaxBytes || int64(len(data)) > MaxBytes {
		s.log.Warn("rejected attachment",
			zap.Int64("declared_size", declaredSize),
			zap.Int("actual_size", len(data)),
		)
		return "", ErrTooLarge
	}

	name := uuid.NewString()
	if ext := fileExtension(originalName); ext != "" {
		name += "." + ext
	}

	dst := filepath.Join(s.root, subdir, name)
	if err := atomicwrite.AtomicWriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %v: %w", name, err, repository.ErrStorage)
	}

	s.log.Info("attachment stored", logger.Path(dst), zap.Int("bytes", len(data)))
	return webPrefix + name, nil
}

// Delete elimina el archivo referido por una ruta almacenada o web.
// Un archivo inexistente no es un error; una ruta vacía es un no-op.
func (s *Store) Delete(pathOrWebPath string) error {
	name := normalizeFilename(pathOrWebPath)
	if name == "" {
		s.log.Warn("delete requested for empty or unsafe path", logger.Path(pathOrWebPath))
		return nil
	}

	target := filepath.Join(s.root, subdir, name)
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete %s: %v: %w", name, err, repository.ErrStorage)
	}
	s.log.Info("attachment deleted", logger.Path(target))
	return nil
}

// Exists indica si la ruta almacenada/web apunta a un archivo presente.
func (s *Store) Exists(pathOrWebPath string) bool {
	name := normalizeFilename(pathOrWebPath)
	if name == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.root, subdir, name))
	return err == nil
}

// fileExtension devuelve la extensión sin el punto, o vacía si no hay.
func fileExtension(name string) string {
	lastDot := strings.LastIndex(name, ".")
	if lastDot > 0 && lastDot < len(name)-1 {
		return name[lastDot+1:]
	}
	return ""
}

// normalizeFilename reduce una ruta almacenada o web al nombre de
// archivo pelado. Rechaza (devolviendo "") cualquier resultado que
// escaparía del directorio de uploads.
func normalizeFilename(pathOrWebPath string) string {
	value := strings.TrimSpace(pathOrWebPath)
	if value == "" {
		return ""
	}
	value = strings.TrimPrefix(value, webPrefix)
	name := path.Base(filepath.ToSlash(value))
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
