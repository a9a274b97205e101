package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Score is an average rating rounded to two decimals. It encodes as a JSON
// number with exactly two fraction digits, e.g. 4.00.
type Score struct {
	decimal.Decimal
}

// NewScore averages sum over count. Zero ratings average to 0.
func NewScore(sum, count int64) Score {
	if count == 0 {
		return Score{decimal.Zero}
	}
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(count)).Round(2)
	return Score{avg}
}

func (s Score) MarshalJSON() ([]byte, error) {
	return []byte(s.StringFixed(2)), nil
}

type StoreStatistics struct {
	AverageRating Score `json:"average_rating"`
	TotalRatings  int64 `json:"total_ratings"`
}

type SystemStatistics struct {
	TotalRatings         int64 `json:"total_ratings"`
	OverallAverageRating Score `json:"overall_average_rating"`
	FiveStarCount        int64 `json:"five_star_count"`
	FourStarCount        int64 `json:"four_star_count"`
	ThreeStarCount       int64 `json:"three_star_count"`
	TwoStarCount         int64 `json:"two_star_count"`
	OneStarCount         int64 `json:"one_star_count"`
}

type TopStore struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	AverageRating Score     `json:"average_rating"`
	TotalRatings  int64     `json:"total_ratings"`
}

type UserStatistics struct {
	TotalUsers   int64 `json:"total_users"`
	NormalUsers  int64 `json:"normal_users"`
	StoreOwners  int64 `json:"store_owners"`
	SystemAdmins int64 `json:"system_admins"`
}

type DistributionBucket struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

type StoreOverview struct {
	TotalStores          int64                `json:"total_stores"`
	StoresWithRatings    int64                `json:"stores_with_ratings"`
	OverallAverageRating Score                `json:"overall_average_rating"`
	TotalRatings         int64                `json:"total_ratings"`
	RatingDistribution   []DistributionBucket `json:"rating_distribution"`
	TopStores            []TopStore           `json:"top_stores"`
}
