package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is unique per (user, store); resubmitting updates the same row.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_store,priority:1" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_store,priority:2;index:idx_ratings_store" json:"store_id"`
	Store     Store     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Value     int       `gorm:"column:rating;not null;check:chk_ratings_value,rating BETWEEN 1 AND 5" json:"rating"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Rating) TableName() string {
	return "ratings"
}

func (r *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
