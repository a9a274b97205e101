//go:build integration

package repository

import (
	"context"
	"testing"

	"anoa.com/storerating/internal/entity"
	"anoa.com/storerating/internal/testutil"
	"anoa.com/storerating/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDuplicateEmail(t *testing.T) {
	db := testutil.Postgres(t)
	repo := NewUserRepository(db)

	testutil.CreateUser(t, db, "dup@mail.com", entity.RoleNormalUser)
	err := repo.Create(context.Background(), &entity.User{
		Name: "Another Account With Same Email", Email: "dup@mail.com", Password: "x", Role: entity.RoleNormalUser,
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestSummariesIncludeOwnerRatings(t *testing.T) {
	db := testutil.Postgres(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@mail.com", entity.RoleStoreOwner)
	rater := testutil.CreateUser(t, db, "rater@mail.com", entity.RoleNormalUser)
	testutil.CreateUser(t, db, "admin@mail.com", entity.RoleSystemAdmin)

	store := &entity.Store{Name: "Summary Test Store Name", Email: "s@shop.io", OwnerID: &owner.ID}
	require.NoError(t, db.Create(store).Error)
	require.NoError(t, db.Create(&entity.Rating{UserID: rater.ID, StoreID: store.ID, Value: 4}).Error)
	require.NoError(t, db.Create(&entity.Rating{UserID: owner.ID, StoreID: store.ID, Value: 5}).Error)

	summary, err := repo.FindSummaryByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 9, summary.RatingSum)
	assert.EqualValues(t, 2, summary.RatingCount)

	summary, err = repo.FindSummaryByID(ctx, rater.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.RatingCount)

	_, err = repo.FindSummaryByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	owners, err := repo.List(ctx, UserFilter{Role: entity.RoleStoreOwner})
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, owner.ID, owners[0].ID)

	byEmail, err := repo.List(ctx, UserFilter{Email: "MAIL.COM", SortBy: "email", Desc: true})
	require.NoError(t, err)
	require.Len(t, byEmail, 3)
	assert.Equal(t, "rater@mail.com", byEmail[0].Email)

	counts, err := repo.CountByRole(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[entity.RoleSystemAdmin])
	assert.EqualValues(t, 1, counts[entity.RoleNormalUser])
}

func TestDeleteUserCascadesStores(t *testing.T) {
	db := testutil.Postgres(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@mail.com", entity.RoleStoreOwner)
	require.NoError(t, db.Create(&entity.Store{Name: "Cascade Test Store Name", Email: "c@shop.io", OwnerID: &owner.ID}).Error)

	require.NoError(t, repo.Delete(ctx, owner.ID))

	var stores int64
	require.NoError(t, db.Model(&entity.Store{}).Count(&stores).Error)
	assert.Zero(t, stores)
	assert.ErrorIs(t, repo.Delete(ctx, owner.ID), apperror.ErrNotFound)
}
