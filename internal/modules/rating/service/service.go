package service

import (
	"context"
	"errors"

	"anoa.com/storerating/internal/modules/rating/dto"
	"anoa.com/storerating/internal/modules/rating/repository"
	statService "anoa.com/storerating/internal/modules/stat/service"
	storeRepo "anoa.com/storerating/internal/modules/store/repository"
	"anoa.com/storerating/pkg/apperror"
	"github.com/google/uuid"
)

const (
	msgStoreNotFound  = "Store not found"
	msgRatingNotFound = "Rating not found"
)

type RatingService interface {
	// Submit stores the user's rating for a store, replacing an earlier one.
	// created reports whether this was the user's first rating of the store.
	Submit(ctx context.Context, userID uuid.UUID, input dto.SubmitRatingInput) (rating *dto.RatingResponse, created bool, err error)
	GetForUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*dto.RatingResponse, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, query dto.ListRatingsQuery) (*dto.StoreRatingList, error)
	ListByUser(ctx context.Context, userID uuid.UUID, query dto.ListRatingsQuery) (*dto.RatingList, error)
	ListAll(ctx context.Context, query dto.ListRatingsQuery) (*dto.RatingList, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateRatingInput) (*dto.RatingResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ratingService struct {
	ratingRepo  repository.RatingRepository
	storeRepo   storeRepo.StoreRepository
	statService statService.StatService
}

func NewRatingService(ratingRepo repository.RatingRepository, storeRepo storeRepo.StoreRepository, statService statService.StatService) RatingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		storeRepo:   storeRepo,
		statService: statService,
	}
}

func (s *ratingService) Submit(ctx context.Context, userID uuid.UUID, input dto.SubmitRatingInput) (*dto.RatingResponse, bool, error) {
	storeID, err := uuid.Parse(input.StoreID)
	if err != nil {
		return nil, false, apperror.NotFound(msgStoreNotFound)
	}

	rating, created, err := s.ratingRepo.Upsert(ctx, userID, storeID, *input.Rating)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, false, apperror.NotFound(msgStoreNotFound)
		}
		return nil, false, err
	}

	res := dto.FromEntity(rating)
	return &res, created, nil
}

func (s *ratingService) GetForUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*dto.RatingResponse, error) {
	view, err := s.ratingRepo.FindForUserAndStore(ctx, userID, storeID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound(msgRatingNotFound)
		}
		return nil, err
	}

	res := dto.FromView(*view, dto.IncludeStoreName)
	return &res, nil
}

func (s *ratingService) list(ctx context.Context, filter repository.RatingFilter, query dto.ListRatingsQuery) ([]repository.RatingView, error) {
	desc, err := query.Descending(true)
	if err != nil {
		return nil, err
	}
	filter.SortBy = query.SortBy
	filter.Desc = desc

	views, _, err := s.ratingRepo.List(ctx, filter)
	return views, err
}

func (s *ratingService) ListByStore(ctx context.Context, storeID uuid.UUID, query dto.ListRatingsQuery) (*dto.StoreRatingList, error) {
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound(msgStoreNotFound)
		}
		return nil, err
	}

	views, err := s.list(ctx, repository.RatingFilter{StoreID: &storeID}, query)
	if err != nil {
		return nil, err
	}
	stats, err := s.statService.StoreStatistics(ctx, storeID)
	if err != nil {
		return nil, err
	}

	return &dto.StoreRatingList{
		Ratings:    dto.FromViews(views, dto.IncludeUserName),
		Statistics: stats,
		Total:      len(views),
	}, nil
}

func (s *ratingService) ListByUser(ctx context.Context, userID uuid.UUID, query dto.ListRatingsQuery) (*dto.RatingList, error) {
	views, err := s.list(ctx, repository.RatingFilter{UserID: &userID}, query)
	if err != nil {
		return nil, err
	}

	include := dto.IncludeStoreName | dto.IncludeStoreEmail | dto.IncludeStoreAddress
	return &dto.RatingList{Ratings: dto.FromViews(views, include), Total: len(views)}, nil
}

func (s *ratingService) ListAll(ctx context.Context, query dto.ListRatingsQuery) (*dto.RatingList, error) {
	views, err := s.list(ctx, repository.RatingFilter{}, query)
	if err != nil {
		return nil, err
	}

	include := dto.IncludeUserName | dto.IncludeUserEmail | dto.IncludeStoreName | dto.IncludeStoreEmail
	return &dto.RatingList{Ratings: dto.FromViews(views, include), Total: len(views)}, nil
}

func (s *ratingService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateRatingInput) (*dto.RatingResponse, error) {
	rating, err := s.ratingRepo.UpdateValue(ctx, id, *input.Rating)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound(msgRatingNotFound)
		}
		return nil, err
	}

	res := dto.FromEntity(rating)
	return &res, nil
}

func (s *ratingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound(msgRatingNotFound)
		}
		return err
	}
	return nil
}
