package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdroman/ticketlogger/internal/domain/repository"
)

func TestProvinceServiceCreate(t *testing.T) {
	ctx := context.Background()
	regions := newFakeRegionRepo()
	provinces := newFakeProvinceRepo(regions)
	svc := NewProvinceService(provinces)

	regionID, err := NewRegionService(regions, nil, 0).
		Create(ctx, repository.CreateRegionInput{Code: "AN", Name: "Andalucía"})
	require.NoError(t, err)

	t.Run("attaches the parent region by id", func(t *testing.T) {
		id, err := svc.Create(ctx, repository.CreateProvinceInput{
			Code: "SE", Name: "Sevilla", RegionID: regionID,
		})
		require.NoError(t, err)

		got, err := svc.Get(ctx, id)
		require.NoError(t, err)
		require.Equal(t, regionID, got.Region.ID)
	})

	t.Run("nonexistent region is invalid input and creates nothing", func(t *testing.T) {
		before := len(provinces.rows)
		_, err := svc.Create(ctx, repository.CreateProvinceInput{
			Code: "HU", Name: "Huelva", RegionID: 999,
		})
		require.True(t, repository.IsInvalidInput(err))
		require.Len(t, provinces.rows, before)
	})

	t.Run("zero region id is rejected before touching the store", func(t *testing.T) {
		_, err := svc.Create(ctx, repository.CreateProvinceInput{
			Code: "HU", Name: "Huelva", RegionID: 0,
		})
		require.True(t, repository.IsInvalidInput(err))
	})

	t.Run("duplicate code conflicts ignoring case", func(t *testing.T) {
		_, err := svc.Create(ctx, repository.CreateProvinceInput{
			Code: "se", Name: "Otra", RegionID: regionID,
		})
		require.True(t, repository.IsConflict(err))
	})
}

func TestProvinceServiceUpdate(t *testing.T) {
	ctx := context.Background()
	regions := newFakeRegionRepo()
	provinces := newFakeProvinceRepo(regions)
	svc := NewProvinceService(provinces)

	regionSvc := NewRegionService(regions, nil, 0)
	idAN, err := regionSvc.Create(ctx, repository.CreateRegionInput{Code: "AN", Name: "Andalucía"})
	require.NoError(t, err)
	idGA, err := regionSvc.Create(ctx, repository.CreateRegionInput{Code: "GA", Name: "Galicia"})
	require.NoError(t, err)

	provID, err := svc.Create(ctx, repository.CreateProvinceInput{Code: "SE", Name: "Sevilla", RegionID: idAN})
	require.NoError(t, err)

	t.Run("can move to another region keeping its code", func(t *testing.T) {
		err := svc.Update(ctx, provID, repository.UpdateProvinceInput{
			Code: "SE", Name: "Sevilla", RegionID: idGA,
		})
		require.NoError(t, err)

		got, err := svc.Get(ctx, provID)
		require.NoError(t, err)
		require.Equal(t, idGA, got.Region.ID)
	})

	t.Run("moving to a missing region is invalid input", func(t *testing.T) {
		err := svc.Update(ctx, provID, repository.UpdateProvinceInput{
			Code: "SE", Name: "Sevilla", RegionID: 999,
		})
		require.True(t, repository.IsInvalidInput(err))
	})
}

func TestProvinceServiceListResolvesRegionName(t *testing.T) {
	ctx := context.Background()
	regions := newFakeRegionRepo()
	provinces := newFakeProvinceRepo(regions)
	svc := NewProvinceService(provinces)

	regionID, err := NewRegionService(regions, nil, 0).
		Create(ctx, repository.CreateRegionInput{Code: "AN", Name: "Andalucía"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, repository.CreateProvinceInput{Code: "SE", Name: "Sevilla", RegionID: regionID})
	require.NoError(t, err)

	page, err := svc.List(ctx, repository.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Andalucía", page.Items[0].RegionName)
	require.Equal(t, int64(1), page.Meta.TotalElements)
}
