package service

import (
	"context"
	"errors"
	"strings"

	"anoa.com/storerating/internal/config"
	"anoa.com/storerating/internal/entity"
	ratingDto "anoa.com/storerating/internal/modules/rating/dto"
	ratingRepo "anoa.com/storerating/internal/modules/rating/repository"
	"anoa.com/storerating/internal/modules/store/dto"
	"anoa.com/storerating/internal/modules/store/repository"
	userService "anoa.com/storerating/internal/modules/user/service"
	"anoa.com/storerating/pkg/apperror"
	commonDto "anoa.com/storerating/pkg/dto"
	"anoa.com/storerating/pkg/sanitize"
	"anoa.com/storerating/pkg/validator"
	"github.com/google/uuid"
)

const (
	msgStoreNotFound   = "Store not found"
	msgOwnerNotFound   = "Store owner not found"
	msgStoreEmailTaken = "Store with this email already exists"
	msgEmailTakenOther = "Email is already taken by another store"
)

type StoreService interface {
	// List is the catalogue every signed-in user browses; each store carries
	// the viewer's own rating.
	List(ctx context.Context, viewerID uuid.UUID, query dto.ListStoresQuery) (*dto.StoreList, error)
	ListForAdmin(ctx context.Context, query dto.ListStoresQuery) (*dto.StoreList, error)
	Get(ctx context.Context, id, viewerID uuid.UUID) (*dto.StoreResponse, error)
	Ratings(ctx context.Context, storeID uuid.UUID, query dto.ListStoresQuery) (*dto.StoreRatingsPage, error)
	Create(ctx context.Context, input dto.CreateStoreInput) (*entity.Store, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateStoreInput) (*entity.Store, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type storeService struct {
	storeRepo  repository.StoreRepository
	ratingRepo ratingRepo.RatingRepository
	cfg        *config.Config
}

func NewStoreService(storeRepo repository.StoreRepository, ratingRepo ratingRepo.RatingRepository, cfg *config.Config) StoreService {
	return &storeService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		cfg:        cfg,
	}
}

func storeNotFound(err error) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NotFound(msgStoreNotFound)
	}
	return err
}

func (s *storeService) list(ctx context.Context, filter repository.StoreFilter, query dto.ListStoresQuery) (*dto.StoreList, error) {
	desc, err := query.Descending(false)
	if err != nil {
		return nil, err
	}
	query.Normalize()

	filter.Name = query.Name
	filter.Address = query.Address
	filter.SortBy = query.SortBy
	filter.Desc = desc
	filter.Limit = query.Limit
	filter.Offset = query.Offset()

	summaries, total, err := s.storeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	stores := make([]dto.StoreResponse, 0, len(summaries))
	for _, summary := range summaries {
		stores = append(stores, dto.NewStoreResponse(summary))
	}
	return &dto.StoreList{
		Stores:     stores,
		Pagination: commonDto.NewPaginationMeta(query.Page, query.Limit, total),
	}, nil
}

func (s *storeService) List(ctx context.Context, viewerID uuid.UUID, query dto.ListStoresQuery) (*dto.StoreList, error) {
	return s.list(ctx, repository.StoreFilter{ViewerID: &viewerID}, query)
}

func (s *storeService) ListForAdmin(ctx context.Context, query dto.ListStoresQuery) (*dto.StoreList, error) {
	return s.list(ctx, repository.StoreFilter{Email: query.Email, WithOwner: true}, query)
}

func (s *storeService) Get(ctx context.Context, id, viewerID uuid.UUID) (*dto.StoreResponse, error) {
	summary, err := s.storeRepo.FindSummaryByID(ctx, id, &viewerID)
	if err != nil {
		return nil, storeNotFound(err)
	}
	res := dto.NewStoreResponse(*summary)
	return &res, nil
}

func (s *storeService) Ratings(ctx context.Context, storeID uuid.UUID, query dto.ListStoresQuery) (*dto.StoreRatingsPage, error) {
	desc, err := query.Descending(true)
	if err != nil {
		return nil, err
	}
	query.Normalize()

	summary, err := s.storeRepo.FindSummaryByID(ctx, storeID, nil)
	if err != nil {
		return nil, storeNotFound(err)
	}

	views, total, err := s.ratingRepo.List(ctx, ratingRepo.RatingFilter{
		StoreID: &storeID,
		SortBy:  query.SortBy,
		Desc:    desc,
		Limit:   query.Limit,
		Offset:  query.Offset(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.StoreRatingsPage{
		Store:      dto.NewStoreResponse(*summary),
		Ratings:    ratingDto.FromViews(views, ratingDto.IncludeUserName|ratingDto.IncludeUserEmail),
		Pagination: commonDto.NewPaginationMeta(query.Page, query.Limit, total),
	}, nil
}

func (s *storeService) Create(ctx context.Context, input dto.CreateStoreInput) (*entity.Store, error) {
	email := strings.TrimSpace(input.Email)
	name, address := sanitize.Text(input.Name), sanitize.Text(input.Address)
	if err := validator.ValidateCleaned("Store name", &name, &address, true); err != nil {
		return nil, err
	}
	exists, err := s.storeRepo.ExistsByEmail(ctx, email, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict(msgStoreEmailTaken)
	}

	ownerID, err := uuid.Parse(input.OwnerID)
	if err != nil {
		return nil, apperror.BadRequest(msgOwnerNotFound)
	}

	var passwordHash string
	if input.Password != nil && *input.Password != "" {
		passwordHash, err = userService.HashPassword(*input.Password, s.cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
	}

	store := &entity.Store{
		Name:    name,
		Email:   email,
		Address: address,
		OwnerID: &ownerID,
	}
	if err := s.storeRepo.CreateWithOwner(ctx, store, passwordHash); err != nil {
		switch {
		case errors.Is(err, repository.ErrOwnerNotFound):
			return nil, apperror.BadRequest(msgOwnerNotFound)
		case errors.Is(err, apperror.ErrConflict):
			return nil, apperror.Conflict(msgStoreEmailTaken)
		default:
			return nil, err
		}
	}
	return store, nil
}

func (s *storeService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateStoreInput) (*entity.Store, error) {
	email := strings.TrimSpace(input.Email)
	name, address := sanitize.Text(input.Name), sanitize.Text(input.Address)
	if err := validator.ValidateCleaned("Store name", &name, &address, true); err != nil {
		return nil, err
	}
	taken, err := s.storeRepo.ExistsByEmail(ctx, email, &id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict(msgEmailTakenOther)
	}

	store, err := s.storeRepo.Update(ctx, id, name, email, address)
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.Conflict(msgEmailTakenOther)
		}
		return nil, storeNotFound(err)
	}
	return store, nil
}

func (s *storeService) Delete(ctx context.Context, id uuid.UUID) error {
	return storeNotFound(s.storeRepo.DeleteAndDemoteOwner(ctx, id))
}
