package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sdroman/ticketlogger/internal/cache/memory"
	"github.com/sdroman/ticketlogger/internal/domain/repository"
)

func TestRegionServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and returns the generated id", func(t *testing.T) {
		repo := newFakeRegionRepo()
		svc := NewRegionService(repo, nil, 0)

		id, err := svc.Create(ctx, repository.CreateRegionInput{Code: "AN", Name: "Andalucía"})
		require.NoError(t, err)
		require.Equal(t, int64(1), id)

		got, err := svc.Get(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "Andalucía", got.Name)
	})

	t.Run("duplicate code conflicts ignoring case", func(t *testing.T) {
		repo := newFakeRegionRepo()
		svc := NewRegionService(repo, nil, 0)

		_, err := svc.Create(ctx, repository.CreateRegionInput{Code: "AN", Name: "Andalucía"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, repository.CreateRegionInput{Code: "an", Name: "Otra"})
		require.True(t, repository.IsConflict(err))

		var conflict *repository.ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, "code", conflict.Field)
	})

	t.Run("rejects blank and oversized fields", func(t *testing.T) {
		svc := NewRegionService(newFakeRegionRepo(), nil, 0)

		_, err := svc.Create(ctx, repository.CreateRegionInput{Code: "", Name: "x"})
		require.True(t, repository.IsInvalidInput(err))

		_, err = svc.Create(ctx, repository.CreateRegionInput{Code: "ABC", Name: "x"})
		require.True(t, repository.IsInvalidInput(err))
	})
}

func TestRegionServiceUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRegionRepo()
	svc := NewRegionService(repo, nil, 0)

	idAN, err := svc.Create(ctx, repository.CreateRegionInput{Code: "AN", Name: "Andalucía"})
	require.NoError(t, err)
	idCT, err := svc.Create(ctx, repository.CreateRegionInput{Code: "CT", Name: "Cataluña"})
	require.NoError(t, err)

	t.Run("keeping the own code is not a conflict", func(t *testing.T) {
		err := svc.Update(ctx, idAN, repository.UpdateRegionInput{Code: "AN", Name: "Andalucía (renombrada)"})
		require.NoError(t, err)

		got, err := svc.Get(ctx, idAN)
		require.NoError(t, err)
		require.Equal(t, "Andalucía (renombrada)", got.Name)
	})

	t.Run("taking another row's code conflicts and leaves the row untouched", func(t *testing.T) {
		err := svc.Update(ctx, idCT, repository.UpdateRegionInput{Code: "an", Name: "Intento"})
		require.True(t, repository.IsConflict(err))

		got, err := svc.Get(ctx, idCT)
		require.NoError(t, err)
		require.Equal(t, "CT", got.Code)
		require.Equal(t, "Cataluña", got.Name)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		err := svc.Update(ctx, 999, repository.UpdateRegionInput{Code: "XX", Name: "Nada"})
		require.True(t, repository.IsNotFound(err))
	})
}

func TestRegionServiceDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRegionRepo()
	svc := NewRegionService(repo, nil, 0)

	id, err := svc.Create(ctx, repository.CreateRegionInput{Code: "GA", Name: "Galicia"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, id))
	// Idempotente: repetir el borrado no falla.
	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.Get(ctx, id)
	require.True(t, repository.IsNotFound(err))
}

func TestRegionServiceGetUsesCache(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRegionRepo()
	svc := NewRegionService(repo, memory.New(time.Minute), time.Minute)

	id, err := svc.Create(ctx, repository.CreateRegionInput{Code: "MD", Name: "Madrid"})
	require.NoError(t, err)

	first, err := svc.Get(ctx, id)
	require.NoError(t, err)

	// Mutamos el backing store por detrás: el cache sigue sirviendo la
	// versión anterior hasta que una escritura del servicio invalide.
	row := repo.rows[id]
	row.Name = "Madrid (stale)"
	repo.rows[id] = row

	second, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, first.Name, second.Name)

	// Una actualización vía el servicio invalida la entrada.
	require.NoError(t, svc.Update(ctx, id, repository.UpdateRegionInput{Code: "MD", Name: "Comunidad de Madrid"}))
	third, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Comunidad de Madrid", third.Name)
}
