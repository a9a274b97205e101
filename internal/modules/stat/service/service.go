package service

import (
	"context"

	"anoa.com/storerating/internal/entity"
	ratingRepo "anoa.com/storerating/internal/modules/rating/repository"
	"anoa.com/storerating/internal/modules/stat/dto"
	storeRepo "anoa.com/storerating/internal/modules/store/repository"
	userRepo "anoa.com/storerating/internal/modules/user/repository"
	"github.com/google/uuid"
)

const (
	overviewTopStores  = 5
	overviewMinRatings = 3
)

type StatService interface {
	StoreStatistics(ctx context.Context, storeID uuid.UUID) (*dto.StoreStatistics, error)
	SystemStatistics(ctx context.Context) (*dto.SystemStatistics, error)
	TopStores(ctx context.Context, n int, minRatings int64) ([]dto.TopStore, error)
	UserStatistics(ctx context.Context) (*dto.UserStatistics, error)
	StoreOverview(ctx context.Context) (*dto.StoreOverview, error)
}

type statService struct {
	ratingRepo ratingRepo.RatingRepository
	storeRepo  storeRepo.StoreRepository
	userRepo   userRepo.UserRepository
}

func NewStatService(ratingRepo ratingRepo.RatingRepository, storeRepo storeRepo.StoreRepository, userRepo userRepo.UserRepository) StatService {
	return &statService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
		userRepo:   userRepo,
	}
}

func (s *statService) StoreStatistics(ctx context.Context, storeID uuid.UUID) (*dto.StoreStatistics, error) {
	totals, err := s.ratingRepo.StoreTotals(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return &dto.StoreStatistics{
		AverageRating: dto.NewScore(totals.Sum, totals.Count),
		TotalRatings:  totals.Count,
	}, nil
}

func (s *statService) SystemStatistics(ctx context.Context) (*dto.SystemStatistics, error) {
	totals, err := s.ratingRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.ratingRepo.Distribution(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.SystemStatistics{
		TotalRatings:         totals.Count,
		OverallAverageRating: dto.NewScore(totals.Sum, totals.Count),
		FiveStarCount:        counts[5],
		FourStarCount:        counts[4],
		ThreeStarCount:       counts[3],
		TwoStarCount:         counts[2],
		OneStarCount:         counts[1],
	}, nil
}

func (s *statService) TopStores(ctx context.Context, n int, minRatings int64) ([]dto.TopStore, error) {
	rows, err := s.ratingRepo.TopStores(ctx, n, minRatings)
	if err != nil {
		return nil, err
	}

	stores := make([]dto.TopStore, 0, len(rows))
	for _, row := range rows {
		stores = append(stores, dto.TopStore{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			AverageRating: dto.NewScore(row.RatingSum, row.RatingCount),
			TotalRatings:  row.RatingCount,
		})
	}
	return stores, nil
}

func (s *statService) UserStatistics(ctx context.Context) (*dto.UserStatistics, error) {
	counts, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.UserStatistics{}
	for _, role := range entity.Roles() {
		n := counts[role]
		stats.TotalUsers += n
		switch role {
		case entity.RoleNormalUser:
			stats.NormalUsers = n
		case entity.RoleStoreOwner:
			stats.StoreOwners = n
		case entity.RoleSystemAdmin:
			stats.SystemAdmins = n
		}
	}
	return stats, nil
}

func (s *statService) StoreOverview(ctx context.Context) (*dto.StoreOverview, error) {
	total, withRatings, err := s.storeRepo.CountStores(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.ratingRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.ratingRepo.Distribution(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.TopStores(ctx, overviewTopStores, overviewMinRatings)
	if err != nil {
		return nil, err
	}

	distribution := make([]dto.DistributionBucket, 0, 5)
	for rating := 5; rating >= 1; rating-- {
		distribution = append(distribution, dto.DistributionBucket{Rating: rating, Count: counts[rating]})
	}

	return &dto.StoreOverview{
		TotalStores:          total,
		StoresWithRatings:    withRatings,
		OverallAverageRating: dto.NewScore(totals.Sum, totals.Count),
		TotalRatings:         totals.Count,
		RatingDistribution:   distribution,
		TopStores:            top,
	}, nil
}
