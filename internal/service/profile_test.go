package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdroman/ticketlogger/internal/domain/repository"
	"github.com/sdroman/ticketlogger/internal/uploads"
)

func newProfileServiceForTest(t *testing.T) (*ProfileService, *fakeProfileRepo, *fakeUserRepo, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "uploads"), 0o755))

	users := newFakeUserRepo(newFakeRoleRepo("USER"))
	profiles := newFakeProfileRepo(users)
	svc := NewProfileService(profiles, users, uploads.New(root))
	return svc, profiles, users, root
}

func seedUser(t *testing.T, users *fakeUserRepo, email string) int64 {
	t.Helper()
	id, err := users.Insert(context.Background(), &repository.User{Email: email, PasswordHash: "phc"})
	require.NoError(t, err)
	return id
}

func uploadedFiles(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(root, "uploads"))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func pngUpload(data []byte) Upload {
	return Upload{
		Data:         data,
		ContentType:  "image/png",
		DeclaredSize: int64(len(data)),
		Filename:     "avatar.png",
	}
}

func TestProfileServiceUpsert(t *testing.T) {
	ctx := context.Background()
	svc, profiles, users, _ := newProfileServiceForTest(t)
	userID := seedUser(t, users, "ana@example.com")

	t.Run("first edit creates the profile", func(t *testing.T) {
		err := svc.Upsert(ctx, userID, repository.UpsertProfileInput{
			FirstName: "Ana", LastName: "García",
		})
		require.NoError(t, err)

		got, err := svc.Get(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, userID, got.ID)
		require.Equal(t, "Ana", got.FirstName)
	})

	t.Run("second edit updates in place and keeps the image", func(t *testing.T) {
		img := "/uploads/kept.png"
		p := profiles.rows[userID]
		p.ProfileImage = &img
		profiles.rows[userID] = p

		bio := "Hola"
		err := svc.Upsert(ctx, userID, repository.UpsertProfileInput{
			FirstName: "Ana", LastName: "García", Bio: &bio,
		})
		require.NoError(t, err)

		got, err := svc.Get(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, "Hola", *got.Bio)
		require.Equal(t, img, *got.ProfileImage)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		err := svc.Upsert(ctx, 999, repository.UpsertProfileInput{FirstName: "X", LastName: "Y"})
		require.True(t, repository.IsNotFound(err))
	})

	t.Run("oversized optional field is invalid input", func(t *testing.T) {
		locale := "una-etiqueta-demasiado-larga"
		err := svc.Upsert(ctx, userID, repository.UpsertProfileInput{
			FirstName: "Ana", LastName: "García", Locale: &locale,
		})
		require.True(t, repository.IsInvalidInput(err))
	})
}

func TestProfileServiceSetImage(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the file and persists the web path", func(t *testing.T) {
		svc, profiles, users, root := newProfileServiceForTest(t)
		userID := seedUser(t, users, "ana@example.com")
		require.NoError(t, svc.Upsert(ctx, userID, repository.UpsertProfileInput{FirstName: "Ana", LastName: "García"}))

		webPath, err := svc.SetImage(ctx, userID, pngUpload([]byte("png-bytes")))
		require.NoError(t, err)
		require.Regexp(t, `^/uploads/[0-9a-f-]{36}\.png$`, webPath)
		require.Equal(t, webPath, *profiles.rows[userID].ProfileImage)
		require.Len(t, uploadedFiles(t, root), 1)
	})

	t.Run("rejected upload leaves reference and disk untouched", func(t *testing.T) {
		svc, profiles, users, root := newProfileServiceForTest(t)
		userID := seedUser(t, users, "ana@example.com")
		require.NoError(t, svc.Upsert(ctx, userID, repository.UpsertProfileInput{FirstName: "Ana", LastName: "García"}))
		prev, err := svc.SetImage(ctx, userID, pngUpload([]byte("first")))
		require.NoError(t, err)

		_, err = svc.SetImage(ctx, userID, Upload{
			Data: []byte("%PDF"), ContentType: "application/pdf", DeclaredSize: 4, Filename: "doc.pdf",
		})
		require.True(t, repository.IsStorage(err))
		require.Equal(t, prev, *profiles.rows[userID].ProfileImage)
		require.Len(t, uploadedFiles(t, root), 1)
	})

	t.Run("replace removes the previous file only after the new reference persists", func(t *testing.T) {
		svc, profiles, users, root := newProfileServiceForTest(t)
		userID := seedUser(t, users, "ana@example.com")
		require.NoError(t, svc.Upsert(ctx, userID, repository.UpsertProfileInput{FirstName: "Ana", LastName: "García"}))

		first, err := svc.SetImage(ctx, userID, pngUpload([]byte("first")))
		require.NoError(t, err)
		second, err := svc.SetImage(ctx, userID, pngUpload([]byte("second")))
		require.NoError(t, err)
		require.NotEqual(t, first, second)

		require.Equal(t, second, *profiles.rows[userID].ProfileImage)
		files := uploadedFiles(t, root)
		require.Len(t, files, 1)
		require.Equal(t, filepath.Base(second), files[0])
	})

	t.Run("failed persist cleans the new file and keeps the old reference", func(t *testing.T) {
		svc, profiles, users, root := newProfileServiceForTest(t)
		userID := seedUser(t, users, "ana@example.com")
		require.NoError(t, svc.Upsert(ctx, userID, repository.UpsertProfileInput{FirstName: "Ana", LastName: "García"}))
		first, err := svc.SetImage(ctx, userID, pngUpload([]byte("first")))
		require.NoError(t, err)

		profiles.failSetImage = errors.New("db down")
		_, err = svc.SetImage(ctx, userID, pngUpload([]byte("second")))
		require.True(t, repository.IsInternal(err))
		profiles.failSetImage = nil

		require.Equal(t, first, *profiles.rows[userID].ProfileImage)
		files := uploadedFiles(t, root)
		require.Len(t, files, 1)
		require.Equal(t, filepath.Base(first), files[0])
	})

	t.Run("without a profile there is nothing to attach to", func(t *testing.T) {
		svc, _, users, _ := newProfileServiceForTest(t)
		userID := seedUser(t, users, "ana@example.com")

		_, err := svc.SetImage(ctx, userID, pngUpload([]byte("x")))
		require.True(t, repository.IsNotFound(err))
	})
}

func TestProfileServiceRemoveImage(t *testing.T) {
	ctx := context.Background()
	svc, profiles, users, root := newProfileServiceForTest(t)
	userID := seedUser(t, users, "ana@example.com")
	require.NoError(t, svc.Upsert(ctx, userID, repository.UpsertProfileInput{FirstName: "Ana", LastName: "García"}))

	// Sin imagen es un no-op.
	require.NoError(t, svc.RemoveImage(ctx, userID))

	_, err := svc.SetImage(ctx, userID, pngUpload([]byte("img")))
	require.NoError(t, err)

	require.NoError(t, svc.RemoveImage(ctx, userID))
	require.Nil(t, profiles.rows[userID].ProfileImage)
	require.Empty(t, uploadedFiles(t, root))
}
