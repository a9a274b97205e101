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
	"gorm.io/gorm"
)

func reload(t *testing.T, db *gorm.DB, id uuid.UUID) *entity.User {
	t.Helper()
	var u entity.User
	require.NoError(t, db.First(&u, "id = ?", id).Error)
	return &u
}

func newStore(name, email string, ownerID uuid.UUID) *entity.Store {
	return &entity.Store{Name: name, Email: email, Address: "1 Market Street", OwnerID: &ownerID}
}

func TestOwnerPromotionAndDemotion(t *testing.T) {
	db := testutil.Postgres(t)
	repo := NewStoreRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@mail.com", entity.RoleNormalUser)

	first := newStore("First Store Of The Owner", "first@shop.io", owner.ID)
	require.NoError(t, repo.CreateWithOwner(ctx, first, "new-hash"))
	promoted := reload(t, db, owner.ID)
	assert.Equal(t, entity.RoleStoreOwner, promoted.Role)
	assert.Equal(t, "new-hash", promoted.Password)

	second := newStore("Second Store Of The Owner", "second@shop.io", owner.ID)
	require.NoError(t, repo.CreateWithOwner(ctx, second, "ignored-hash"))
	assert.Equal(t, "new-hash", reload(t, db, owner.ID).Password, "password only changes with a promotion")

	require.NoError(t, repo.DeleteAndDemoteOwner(ctx, first.ID))
	assert.Equal(t, entity.RoleStoreOwner, reload(t, db, owner.ID).Role)

	require.NoError(t, repo.DeleteAndDemoteOwner(ctx, second.ID))
	assert.Equal(t, entity.RoleNormalUser, reload(t, db, owner.ID).Role)

	assert.ErrorIs(t, repo.DeleteAndDemoteOwner(ctx, second.ID), apperror.ErrNotFound)
}

func TestAdminOwnerIsPromoted(t *testing.T) {
	db := testutil.Postgres(t)
	repo := NewStoreRepository(db)
	ctx := context.Background()

	admin := testutil.CreateUser(t, db, "admin@mail.com", entity.RoleSystemAdmin)
	store := newStore("Administrator Run Store", "admin@shop.io", admin.ID)
	require.NoError(t, repo.CreateWithOwner(ctx, store, "new-hash"))

	after := reload(t, db, admin.ID)
	assert.Equal(t, entity.RoleStoreOwner, after.Role)
	assert.Equal(t, "new-hash", after.Password)

	require.NoError(t, repo.DeleteAndDemoteOwner(ctx, store.ID))
	assert.Equal(t, entity.RoleNormalUser, reload(t, db, admin.ID).Role)
}

func TestCreateWithUnknownOwner(t *testing.T) {
	db := testutil.Postgres(t)
	repo := NewStoreRepository(db)

	err := repo.CreateWithOwner(context.Background(), newStore("Store Without An Owner", "none@shop.io", uuid.New()), "")
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestListWithTotalsAndViewerRating(t *testing.T) {
	db := testutil.Postgres(t)
	repo := NewStoreRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@mail.com", entity.RoleNormalUser)
	rater := testutil.CreateUser(t, db, "rater@mail.com", entity.RoleNormalUser)
	other := testutil.CreateUser(t, db, "other@mail.com", entity.RoleNormalUser)

	bakery := newStore("Alpha Bakery And Coffee", "alpha@shop.io", owner.ID)
	books := newStore("Bravo Books And Stationery", "bravo@shop.io", owner.ID)
	require.NoError(t, repo.CreateWithOwner(ctx, bakery, ""))
	require.NoError(t, repo.CreateWithOwner(ctx, books, ""))

	require.NoError(t, db.Create(&entity.Rating{UserID: rater.ID, StoreID: bakery.ID, Value: 5}).Error)
	require.NoError(t, db.Create(&entity.Rating{UserID: other.ID, StoreID: bakery.ID, Value: 4}).Error)

	stores, total, err := repo.List(ctx, StoreFilter{ViewerID: &rater.ID, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, stores, 2)

	assert.Equal(t, bakery.ID, stores[0].ID)
	assert.EqualValues(t, 9, stores[0].RatingSum)
	assert.EqualValues(t, 2, stores[0].RatingCount)
	require.NotNil(t, stores[0].UserRating)
	assert.Equal(t, 5, *stores[0].UserRating)
	assert.Nil(t, stores[1].UserRating)
	assert.EqualValues(t, 0, stores[1].RatingCount)

	stores, total, err = repo.List(ctx, StoreFilter{Name: "BOOKS", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, books.ID, stores[0].ID)

	stores, _, err = repo.List(ctx, StoreFilter{SortBy: "average_rating", Desc: true, WithOwner: true, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, books.ID, stores[0].ID)
	require.NotNil(t, stores[0].OwnerEmail)
	assert.Equal(t, "owner@mail.com", *stores[0].OwnerEmail)

	totalStores, withRatings, err := repo.CountStores(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, totalStores)
	assert.EqualValues(t, 1, withRatings)
}

func TestDeleteStoreCascadesRatings(t *testing.T) {
	db := testutil.Postgres(t)
	repo := NewStoreRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@mail.com", entity.RoleNormalUser)
	rater := testutil.CreateUser(t, db, "rater@mail.com", entity.RoleNormalUser)
	store := newStore("Cascading Test Store Name", "cascade@shop.io", owner.ID)
	require.NoError(t, repo.CreateWithOwner(ctx, store, ""))
	require.NoError(t, db.Create(&entity.Rating{UserID: rater.ID, StoreID: store.ID, Value: 3}).Error)

	require.NoError(t, repo.DeleteAndDemoteOwner(ctx, store.ID))

	var remaining int64
	require.NoError(t, db.Model(&entity.Rating{}).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestUpdateEmailConflict(t *testing.T) {
	db := testutil.Postgres(t)
	repo := NewStoreRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@mail.com", entity.RoleNormalUser)
	a := newStore("First Store Of The Owner", "a@shop.io", owner.ID)
	b := newStore("Second Store Of The Owner", "b@shop.io", owner.ID)
	require.NoError(t, repo.CreateWithOwner(ctx, a, ""))
	require.NoError(t, repo.CreateWithOwner(ctx, b, ""))

	_, err := repo.Update(ctx, b.ID, b.Name, "a@shop.io", b.Address)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	exists, err := repo.ExistsByEmail(ctx, "a@shop.io", &a.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
