package bootstrap

import (
	"errors"

	"anoa.com/storerating/internal/config"
	"anoa.com/storerating/internal/entity"
	userService "anoa.com/storerating/internal/modules/user/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const adminName = "System Administrator Account"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Store{},
		&entity.Rating{},
	)
}

// SeedAdminUser creates the first system_admin from SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD. It is a no-op when the account already exists.
func SeedAdminUser(db *gorm.DB, cfg *config.Config) error {
	if cfg.SeedAdminPassword == "" {
		log.Warn().Msg("SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	if cfg.SeedAdminEmail == "" {
		return errors.New("SEED_ADMIN_EMAIL must be set to seed the admin user")
	}

	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", cfg.SeedAdminEmail).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Info().Str("email", cfg.SeedAdminEmail).Msg("admin user already exists, skipping seed")
		return nil
	}

	hash, err := userService.HashPassword(cfg.SeedAdminPassword, cfg.BcryptCost)
	if err != nil {
		return err
	}

	admin := entity.User{
		Name:     adminName,
		Email:    cfg.SeedAdminEmail,
		Password: hash,
		Role:     entity.RoleSystemAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info().Str("email", admin.Email).Msg("admin user seeded")
	return nil
}
