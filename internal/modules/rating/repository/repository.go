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

var ErrStoreNotFound = errors.New("store not found")

type RatingFilter struct {
	StoreID *uuid.UUID
	UserID  *uuid.UUID
	SortBy  string
	Desc    bool
	// Limit 0 returns every matching row.
	Limit  int
	Offset int
}

// RatingView is a rating joined with the names of its author and store.
type RatingView struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	StoreID      uuid.UUID
	Rating       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UserName     string
	UserEmail    string
	StoreName    string
	StoreEmail   string
	StoreAddress string
}

// Totals are the raw inputs of an average: sum of values and row count.
type Totals struct {
	Sum   int64
	Count int64
}

type TopStoreRow struct {
	ID          uuid.UUID
	Name        string
	Email       string
	RatingSum   int64
	RatingCount int64
}

var ratingSortColumns = database.SortColumns{
	"rating":     "r.rating",
	"created_at": "r.created_at",
	"updated_at": "r.updated_at",
}

type RatingRepository interface {
	Upsert(ctx context.Context, userID, storeID uuid.UUID, value int) (rating *entity.Rating, created bool, err error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error)
	FindForUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*RatingView, error)
	List(ctx context.Context, filter RatingFilter) ([]RatingView, int64, error)
	UpdateValue(ctx context.Context, id uuid.UUID, value int) (*entity.Rating, error)
	Delete(ctx context.Context, id uuid.UUID) error

	StoreTotals(ctx context.Context, storeID uuid.UUID) (Totals, error)
	Totals(ctx context.Context) (Totals, error)
	Distribution(ctx context.Context) (map[int]int64, error)
	TopStores(ctx context.Context, n int, minRatings int64) ([]TopStoreRow, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrStoreNotFound
	default:
		return err
	}
}

// Upsert keeps one rating per (user, store). An existing row is updated in
// place; otherwise a row is inserted, and an insert racing another one for
// the same pair lands on the unique index and becomes an update.
func (r *ratingRepository) Upsert(ctx context.Context, userID, storeID uuid.UUID, value int) (*entity.Rating, bool, error) {
	var rating entity.Rating
	var insertedID uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stores int64
		if err := tx.Model(&entity.Store{}).Where("id = ?", storeID).Count(&stores).Error; err != nil {
			return err
		}
		if stores == 0 {
			return ErrStoreNotFound
		}

		// Use Find with slice to avoid "record not found" log noise from GORM's First()
		var existing []entity.Rating
		if err := tx.Where("user_id = ? AND store_id = ?", userID, storeID).
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}

		if len(existing) > 0 {
			if err := tx.Model(&existing[0]).Update("rating", value).Error; err != nil {
				return err
			}
		} else {
			fresh := entity.Rating{UserID: userID, StoreID: storeID, Value: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"rating":     value,
					"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
				}),
			}).Create(&fresh).Error; err != nil {
				return translate(err)
			}
			insertedID = fresh.ID
		}

		return tx.Where("user_id = ? AND store_id = ?", userID, storeID).First(&rating).Error
	})
	if err != nil {
		return nil, false, err
	}

	created := insertedID != uuid.Nil && rating.ID == insertedID
	return &rating, created, nil
}

func (r *ratingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	var rating entity.Rating
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rating).Error; err != nil {
		return nil, translate(err)
	}
	return &rating, nil
}

func (r *ratingRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("ratings AS r").
		Select("r.id, r.user_id, r.store_id, r.rating, r.created_at, r.updated_at, " +
			"u.name AS user_name, u.email AS user_email, " +
			"s.name AS store_name, s.email AS store_email, s.address AS store_address").
		Joins("JOIN users u ON u.id = r.user_id").
		Joins("JOIN stores s ON s.id = r.store_id")
}

func (r *ratingRepository) FindForUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*RatingView, error) {
	var ratings []RatingView
	if err := r.views(ctx).
		Where("r.user_id = ? AND r.store_id = ?", userID, storeID).
		Limit(1).
		Scan(&ratings).Error; err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, apperror.ErrNotFound
	}
	return &ratings[0], nil
}

func (r *ratingRepository) List(ctx context.Context, filter RatingFilter) ([]RatingView, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.StoreID != nil {
			db = db.Where("r.store_id = ?", *filter.StoreID)
		}
		if filter.UserID != nil {
			db = db.Where("r.user_id = ?", *filter.UserID)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Table("ratings AS r").Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.views(ctx).
		Scopes(scope).
		Order(ratingSortColumns.OrderBy(filter.SortBy, "created_at", filter.Desc)).
		Order("r.id")
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	ratings := []RatingView{}
	if err := query.Scan(&ratings).Error; err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

func (r *ratingRepository) UpdateValue(ctx context.Context, id uuid.UUID, value int) (*entity.Rating, error) {
	res := r.db.WithContext(ctx).Model(&entity.Rating{}).Where("id = ?", id).Update("rating", value)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperror.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *ratingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Rating{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *ratingRepository) StoreTotals(ctx context.Context, storeID uuid.UUID) (Totals, error) {
	var totals Totals
	err := r.db.WithContext(ctx).
		Model(&entity.Rating{}).
		Select("COALESCE(SUM(rating), 0) AS sum, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Scan(&totals).Error
	return totals, err
}

func (r *ratingRepository) Totals(ctx context.Context) (Totals, error) {
	var totals Totals
	err := r.db.WithContext(ctx).
		Model(&entity.Rating{}).
		Select("COALESCE(SUM(rating), 0) AS sum, COUNT(*) AS count").
		Scan(&totals).Error
	return totals, err
}

func (r *ratingRepository) Distribution(ctx context.Context) (map[int]int64, error) {
	type result struct {
		Rating int
		Count  int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&entity.Rating{}).
		Select("rating, count(*) as count").
		Group("rating").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(results))
	for _, res := range results {
		counts[res.Rating] = res.Count
	}
	return counts, nil
}

func (r *ratingRepository) TopStores(ctx context.Context, n int, minRatings int64) ([]TopStoreRow, error) {
	rows := []TopStoreRow{}
	err := r.db.WithContext(ctx).
		Table("stores AS s").
		Select("s.id, s.name, s.email, SUM(r.rating) AS rating_sum, COUNT(r.id) AS rating_count").
		Joins("JOIN ratings r ON r.store_id = s.id").
		Group("s.id").
		Having("COUNT(r.id) >= ?", minRatings).
		Order("AVG(r.rating) DESC").
		Order("COUNT(r.id) DESC").
		Order("s.id").
		Limit(n).
		Scan(&rows).Error
	return rows, err
}
