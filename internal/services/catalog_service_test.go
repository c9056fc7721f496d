package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sdianka/portfolio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) *CatalogService {
	db := newTestDB(t)
	return NewCatalogService(db, NewEventService(db), nil)
}

func TestCreateServiceDefaults(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	a, err := svc.CreateService(ctx, models.ServiceInput{Title: strPtr("Web Development"), Icon: strPtr("💻")})
	require.NoError(t, err)
	assert.True(t, a.Active)
	assert.Equal(t, 0, a.Order)
	assert.Equal(t, "web-development", a.Slug)
	assert.Nil(t, a.Price)

	b, err := svc.CreateService(ctx, models.ServiceInput{Title: strPtr("Consulting"), Price: strPtr("From 500€")})
	require.NoError(t, err)
	assert.Equal(t, 1, b.Order)
	require.NotNil(t, b.Price)
	assert.Equal(t, "From 500€", *b.Price)
}

func TestUpdateServicePartialKeepsOtherFields(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	s, err := svc.CreateService(ctx, models.ServiceInput{
		Title:       strPtr("Design"),
		Description: strPtr("UI work"),
		Price:       strPtr("€100"),
	})
	require.NoError(t, err)

	var input models.ServiceInput
	require.NoError(t, json.Unmarshal([]byte(`{"active": false}`), &input))
	updated, err := svc.UpdateService(ctx, s.ID, input)
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, "UI work", updated.Description)
	require.NotNil(t, updated.Price)
	assert.Equal(t, "€100", *updated.Price)

	input = models.ServiceInput{}
	require.NoError(t, json.Unmarshal([]byte(`{"price": null}`), &input))
	updated, err = svc.UpdateService(ctx, s.ID, input)
	require.NoError(t, err)
	assert.Nil(t, updated.Price)
	assert.False(t, updated.Active)
}

func TestGetAllServicesOrderedAndActiveFilter(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateService(ctx, models.ServiceInput{Title: strPtr("C"), Order: intPtr(2)})
	require.NoError(t, err)
	_, err = svc.CreateService(ctx, models.ServiceInput{Title: strPtr("A"), Order: intPtr(0)})
	require.NoError(t, err)
	_, err = svc.CreateService(ctx, models.ServiceInput{Title: strPtr("B"), Order: intPtr(1), Active: boolPtr(false)})
	require.NoError(t, err)

	all, err := svc.GetAllServices(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].Title, all[1].Title, all[2].Title})

	active, err := svc.GetAllServices(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "A", active[0].Title)
	assert.Equal(t, "C", active[1].Title)
}

func TestReorderServices(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		s, err := svc.CreateService(ctx, models.ServiceInput{Title: strPtr(title)})
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}

	err := svc.ReorderServices(ctx, []models.ServiceOrder{
		{ID: ids[2], Order: 0},
		{ID: ids[0], Order: 1},
		{ID: ids[1], Order: 2},
	})
	require.NoError(t, err)

	list, err := svc.GetAllServices(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[2], ids[0], ids[1]}, []string{list[0].ID, list[1].ID, list[2].ID})
	for i, s := range list {
		assert.Equal(t, i, s.Order)
	}
}

func TestReorderServicesUnknownIDRollsBack(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	a, err := svc.CreateService(ctx, models.ServiceInput{Title: strPtr("a")})
	require.NoError(t, err)
	b, err := svc.CreateService(ctx, models.ServiceInput{Title: strPtr("b")})
	require.NoError(t, err)

	err = svc.ReorderServices(ctx, []models.ServiceOrder{
		{ID: b.ID, Order: 0},
		{ID: "ghost", Order: 1},
		{ID: a.ID, Order: 2},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetServiceByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Order)

	assert.ErrorIs(t, svc.ReorderServices(ctx, nil), ErrInvalidInput)
}

func TestDeleteService(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	s, err := svc.CreateService(ctx, models.ServiceInput{Title: strPtr("gone")})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteService(ctx, s.ID))
	assert.ErrorIs(t, svc.DeleteService(ctx, s.ID), ErrNotFound)
}
