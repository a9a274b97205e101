package repository

import (
	"context"
	"errors"
	"time"

	"anoa.com/storerating/internal/entity"
	"anoa.com/storerating/pkg/apperror"
	"anoa.com/storerating/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrOwnerNotFound = errors.New("store owner not found")

type StoreFilter struct {
	Name    string
	Email   string
	Address string
	SortBy  string
	Desc    bool
	Limit   int
	Offset  int

	// ViewerID adds the viewer's own rating of each store.
	ViewerID *uuid.UUID
	// WithOwner adds owner name and email and enables the email filter and sort.
	WithOwner bool
}

// StoreSummary is a store row with the live rating totals it is listed with.
type StoreSummary struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Address     string
	OwnerID     *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	RatingSum   int64
	RatingCount int64
	UserRating  *int
	OwnerName   *string
	OwnerEmail  *string
}

var (
	storeSortColumns = database.SortColumns{
		"name":           "s.name",
		"address":        "s.address",
		"average_rating": "COALESCE(AVG(r.rating), 0)",
		"created_at":     "s.created_at",
	}
	adminStoreSortColumns = database.SortColumns{
		"name":           "s.name",
		"email":          "s.email",
		"address":        "s.address",
		"average_rating": "COALESCE(AVG(r.rating), 0)",
		"created_at":     "s.created_at",
	}
)

type StoreRepository interface {
	List(ctx context.Context, filter StoreFilter) ([]StoreSummary, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	FindSummaryByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*StoreSummary, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
	CreateWithOwner(ctx context.Context, store *entity.Store, ownerPasswordHash string) error
	Update(ctx context.Context, id uuid.UUID, name, email, address string) (*entity.Store, error)
	DeleteAndDemoteOwner(ctx context.Context, id uuid.UUID) error
	CountStores(ctx context.Context) (total int64, withRatings int64, err error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.ErrConflict
	default:
		return err
	}
}

func (r *storeRepository) summaries(ctx context.Context, viewerID *uuid.UUID, withOwner bool) *gorm.DB {
	columns := "s.id, s.name, s.email, s.address, s.owner_id, s.created_at, s.updated_at, " +
		"COALESCE(SUM(r.rating), 0) AS rating_sum, COUNT(r.id) AS rating_count"
	group := "s.id"

	query := r.db.WithContext(ctx).
		Table("stores AS s").
		Joins("LEFT JOIN ratings r ON r.store_id = s.id")

	if viewerID != nil {
		query = query.Joins("LEFT JOIN ratings ur ON ur.store_id = s.id AND ur.user_id = ?", *viewerID)
		columns += ", ur.rating AS user_rating"
		group += ", ur.rating"
	}
	if withOwner {
		query = query.Joins("LEFT JOIN users o ON o.id = s.owner_id")
		columns += ", o.name AS owner_name, o.email AS owner_email"
		group += ", o.name, o.email"
	}

	return query.Select(columns).Group(group)
}

func (r *storeRepository) filters(filter StoreFilter) []func(*gorm.DB) *gorm.DB {
	scopes := []func(*gorm.DB) *gorm.DB{
		database.ILike("s.name", filter.Name),
		database.ILike("s.address", filter.Address),
	}
	if filter.WithOwner {
		scopes = append(scopes, database.ILike("s.email", filter.Email))
	}
	return scopes
}

func (r *storeRepository) List(ctx context.Context, filter StoreFilter) ([]StoreSummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Table("stores AS s").
		Scopes(r.filters(filter)...).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	columns := storeSortColumns
	if filter.WithOwner {
		columns = adminStoreSortColumns
	}

	stores := []StoreSummary{}
	err := r.summaries(ctx, filter.ViewerID, filter.WithOwner).
		Scopes(r.filters(filter)...).
		Order(columns.OrderBy(filter.SortBy, "name", filter.Desc)).
		Order("s.id").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Scan(&stores).Error
	if err != nil {
		return nil, 0, err
	}

	return stores, total, nil
}

func (r *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var store entity.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, translate(err)
	}
	return &store, nil
}

func (r *storeRepository) FindSummaryByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*StoreSummary, error) {
	var stores []StoreSummary
	if err := r.summaries(ctx, viewerID, true).
		Where("s.id = ?", id).
		Limit(1).
		Scan(&stores).Error; err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, apperror.ErrNotFound
	}
	return &stores[0], nil
}

func (r *storeRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&entity.Store{}).Where("email = ?", email)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// CreateWithOwner inserts the store and moves its owner into the store owner
// role in one transaction. ownerPasswordHash, when set, replaces the owner's
// password together with the promotion.
func (r *storeRepository) CreateWithOwner(ctx context.Context, store *entity.Store, ownerPasswordHash string) error {
	if store.OwnerID == nil {
		return ErrOwnerNotFound
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Step 1: promote the owner.
		var owner entity.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", *store.OwnerID).
			First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOwnerNotFound
			}
			return err
		}

		next, changed, err := entity.RoleAfterStoreCreated(owner.Role)
		if err != nil {
			return err
		}
		if changed {
			updates := map[string]any{"role": next}
			if ownerPasswordHash != "" {
				updates["password"] = ownerPasswordHash
			}
			if err := tx.Model(&entity.User{}).Where("id = ?", owner.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Step 2: insert the store.
		return translate(tx.Create(store).Error)
	})
}

func (r *storeRepository) Update(ctx context.Context, id uuid.UUID, name, email, address string) (*entity.Store, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Store{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":    name,
			"email":   email,
			"address": address,
		})
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// DeleteAndDemoteOwner removes the store (its ratings cascade) and returns the
// owner to the normal user role when this was their last store.
func (r *storeRepository) DeleteAndDemoteOwner(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var store entity.Store
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&store).Error; err != nil {
			return translate(err)
		}

		// Step 1: delete the store.
		if err := tx.Delete(&entity.Store{}, "id = ?", store.ID).Error; err != nil {
			return err
		}

		if store.OwnerID == nil {
			return nil
		}

		// Step 2: demote the owner if nothing else is theirs.
		var owner entity.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", *store.OwnerID).
			First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		var remaining int64
		if err := tx.Model(&entity.Store{}).Where("owner_id = ?", owner.ID).Count(&remaining).Error; err != nil {
			return err
		}

		next, changed, err := entity.RoleAfterStoreDeleted(owner.Role, remaining)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		return tx.Model(&entity.User{}).Where("id = ?", owner.ID).Update("role", next).Error
	})
}

func (r *storeRepository) CountStores(ctx context.Context) (int64, int64, error) {
	var result struct {
		Total       int64
		WithRatings int64
	}
	err := r.db.WithContext(ctx).
		Table("stores AS s").
		Select("COUNT(*) AS total, " +
			"COUNT(*) FILTER (WHERE EXISTS (SELECT 1 FROM ratings r WHERE r.store_id = s.id)) AS with_ratings").
		Scan(&result).Error
	return result.Total, result.WithRatings, err
}
