package middleware

import (
	"errors"
	"strings"

	"anoa.com/storerating/internal/authz"
	"anoa.com/storerating/internal/entity"
	ratingRepo "anoa.com/storerating/internal/modules/rating/repository"
	storeRepo "anoa.com/storerating/internal/modules/store/repository"
	userService "anoa.com/storerating/internal/modules/user/service"
	"anoa.com/storerating/pkg/apperror"
	"anoa.com/storerating/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextUserID = "user_id"
	ContextUser   = "user"
	ContextStore  = "store"
	ContextRating = "rating"
)

type AuthMiddleware struct {
	authService userService.AuthService
	storeRepo   storeRepo.StoreRepository
	ratingRepo  ratingRepo.RatingRepository
}

func NewAuthMiddleware(authService userService.AuthService, storeRepo storeRepo.StoreRepository, ratingRepo ratingRepo.RatingRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		storeRepo:   storeRepo,
		ratingRepo:  ratingRepo,
	}
}

func bearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequireAuth resolves the bearer token of this request to the stored user.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.authService.ResolveSession(c.Request.Context(), bearerToken(c))
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(ContextUserID, user.ID.String())
		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the user RequireAuth attached to the request.
func CurrentUser(c *gin.Context) (*entity.User, error) {
	value, exists := c.Get(ContextUser)
	if !exists {
		return nil, apperror.Unauthorized("Authentication required")
	}
	user, ok := value.(*entity.User)
	if !ok || user == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}
	return user, nil
}

// CurrentStore returns the store loaded by RequireStoreOwnerOrAdmin.
func CurrentStore(c *gin.Context) *entity.Store {
	store, _ := c.MustGet(ContextStore).(*entity.Store)
	return store
}

// CurrentRating returns the rating loaded by RequireRatingOwnerOrAdmin.
func CurrentRating(c *gin.Context) *entity.Rating {
	rating, _ := c.MustGet(ContextRating).(*entity.Rating)
	return rating
}

func (m *AuthMiddleware) RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := CurrentUser(c)
		if err := authz.RequireRole(user, roles...); err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRoles(entity.RoleSystemAdmin)
}

// RequireSelfOrAdmin compares the user id in the named path parameter with
// the caller. Ids that do not parse never match a caller.
func (m *AuthMiddleware) RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		resourceID, err := uuid.Parse(c.Param(param))
		if err != nil {
			resourceID = uuid.Nil
		}
		if err := authz.SelfOrAdmin(user, resourceID); err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

// RequireStoreOwnerOrAdmin loads the store named by param and lets through
// admins and the store's owner. Normal users are turned away before the
// store is looked up.
func (m *AuthMiddleware) RequireStoreOwnerOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := authz.RequireRole(user, entity.RoleStoreOwner, entity.RoleSystemAdmin); err != nil {
			response.Error(c, err)
			return
		}

		storeID, err := uuid.Parse(c.Param(param))
		if err != nil {
			response.Error(c, apperror.NotFound("Store not found"))
			return
		}
		store, err := m.storeRepo.FindByID(c.Request.Context(), storeID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				err = apperror.NotFound("Store not found")
			}
			response.Error(c, err)
			return
		}

		if err := authz.StoreOwnerOrAdmin(user, store); err != nil {
			response.Error(c, err)
			return
		}
		c.Set(ContextStore, store)
		c.Next()
	}
}

// RequireRatingOwnerOrAdmin loads the rating named by param. Missing ids,
// malformed ids and other users' ratings all get the same 404.
func (m *AuthMiddleware) RequireRatingOwnerOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		ratingID, err := uuid.Parse(c.Param(param))
		if err != nil {
			response.Error(c, authz.RatingDenied())
			return
		}
		rating, err := m.ratingRepo.FindByID(c.Request.Context(), ratingID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				err = authz.RatingDenied()
			}
			response.Error(c, err)
			return
		}

		if err := authz.RatingOwnerOrAdmin(user, rating); err != nil {
			response.Error(c, err)
			return
		}
		c.Set(ContextRating, rating)
		c.Next()
	}
}
