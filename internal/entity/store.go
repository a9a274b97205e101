package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:60;not null" json:"name"`
	Email     string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Address   string     `gorm:"size:400" json:"address"`
	OwnerID   *uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	Owner     *User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// OwnedBy reports whether userID is the store's owner.
func (s *Store) OwnedBy(userID uuid.UUID) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}
