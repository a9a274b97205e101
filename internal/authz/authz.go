// Package authz holds the role and ownership checks applied to every
// authenticated request. The checks are pure; the gin guards in
// internal/middleware resolve the facts they need.
package authz

import (
	"slices"

	"anoa.com/storerating/internal/entity"
	"anoa.com/storerating/pkg/apperror"
	"github.com/google/uuid"
)

const (
	msgInsufficient  = "Insufficient permissions"
	msgOwnResources  = "Access denied: You can only access your own resources"
	msgNotStoreOwner = "Access denied: You can only view ratings for your own store"
	msgRatingDenied  = "Rating not found or access denied"
)

func isAdmin(user *entity.User) (bool, error) {
	switch user.Role {
	case entity.RoleSystemAdmin:
		return true, nil
	case entity.RoleNormalUser, entity.RoleStoreOwner:
		return false, nil
	default:
		return false, apperror.Forbidden(msgInsufficient)
	}
}

// RequireRole fails with Forbidden unless the user holds one of allowed.
func RequireRole(user *entity.User, allowed ...entity.Role) error {
	if user == nil {
		return apperror.Unauthorized("Access token required")
	}
	if !user.Role.Valid() || !slices.Contains(allowed, user.Role) {
		return apperror.Forbidden(msgInsufficient)
	}
	return nil
}

// SelfOrAdmin lets users reach their own records and admins reach anyone's.
func SelfOrAdmin(user *entity.User, resourceUserID uuid.UUID) error {
	admin, err := isAdmin(user)
	if err != nil {
		return err
	}
	if admin || user.ID == resourceUserID {
		return nil
	}
	return apperror.Forbidden(msgOwnResources)
}

// StoreOwnerOrAdmin lets admins through for any store and store owners
// through for stores they own. The store must already be known to exist.
func StoreOwnerOrAdmin(user *entity.User, store *entity.Store) error {
	switch user.Role {
	case entity.RoleSystemAdmin:
		return nil
	case entity.RoleStoreOwner:
		if store.OwnedBy(user.ID) {
			return nil
		}
		return apperror.Forbidden(msgNotStoreOwner)
	case entity.RoleNormalUser:
		return apperror.Forbidden(msgInsufficient)
	default:
		return apperror.Forbidden(msgInsufficient)
	}
}

// RatingDenied is the answer for a rating the caller may not touch, whether
// or not it exists.
func RatingDenied() error {
	return apperror.NotFound(msgRatingDenied)
}

// RatingOwnerOrAdmin reports a foreign rating as missing.
func RatingOwnerOrAdmin(user *entity.User, rating *entity.Rating) error {
	admin, err := isAdmin(user)
	if err != nil {
		return err
	}
	if admin || rating.UserID == user.ID {
		return nil
	}
	return RatingDenied()
}
