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
)

type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    entity.Role
	SortBy  string
	Desc    bool
}

// UserSummary is a user row plus the rating totals across every store they
// own. The totals are only filled for store owners.
type UserSummary struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Address     string
	Role        entity.Role
	CreatedAt   time.Time
	RatingSum   int64
	RatingCount int64
}

var userSortColumns = database.SortColumns{
	"name":       "u.name",
	"email":      "u.email",
	"role":       "u.role",
	"created_at": "u.created_at",
}

const ownerRatingColumns = `
	CASE WHEN u.role = 'store_owner' THEN
		(SELECT COALESCE(SUM(r.rating), 0) FROM stores s JOIN ratings r ON r.store_id = s.id WHERE s.owner_id = u.id)
	ELSE 0 END AS rating_sum,
	CASE WHEN u.role = 'store_owner' THEN
		(SELECT COUNT(r.id) FROM stores s JOIN ratings r ON r.store_id = s.id WHERE s.owner_id = u.id)
	ELSE 0 END AS rating_count`

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter UserFilter) ([]UserSummary, error)
	FindSummaryByID(ctx context.Context, id uuid.UUID) (*UserSummary, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, name, address string) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context) (map[entity.Role]int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
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

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) summaries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("users AS u").
		Select("u.id, u.name, u.email, u.address, u.role, u.created_at," + ownerRatingColumns)
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]UserSummary, error) {
	query := r.summaries(ctx).Scopes(
		database.ILike("u.name", filter.Name),
		database.ILike("u.email", filter.Email),
		database.ILike("u.address", filter.Address),
	)
	if filter.Role != "" {
		query = query.Where("u.role = ?", filter.Role)
	}

	users := []UserSummary{}
	err := query.
		Order(userSortColumns.OrderBy(filter.SortBy, "name", filter.Desc)).
		Order("u.id").
		Scan(&users).Error
	return users, err
}

func (r *userRepository) FindSummaryByID(ctx context.Context, id uuid.UUID) (*UserSummary, error) {
	var users []UserSummary
	if err := r.summaries(ctx).Where("u.id = ?", id).Limit(1).Scan(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperror.ErrNotFound
	}
	return &users[0], nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, address string) (*entity.User, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "address": address})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperror.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the user; stores they own and ratings they wrote go with
// them through the foreign keys.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *userRepository) CountByRole(ctx context.Context) (map[entity.Role]int64, error) {
	type result struct {
		Role  entity.Role
		Count int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Select("role, count(*) as count").
		Group("role").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.Role]int64, len(results))
	for _, res := range results {
		counts[res.Role] = res.Count
	}
	return counts, nil
}
