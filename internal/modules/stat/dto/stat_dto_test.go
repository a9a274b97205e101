package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScore(t *testing.T) {
	assert.Equal(t, "0.00", NewScore(0, 0).StringFixed(2))
	assert.Equal(t, "4.00", NewScore(12, 3).StringFixed(2))
	assert.Equal(t, "3.67", NewScore(11, 3).StringFixed(2))
	assert.Equal(t, "1.33", NewScore(4, 3).StringFixed(2))
	// 2.005 rounds away from zero
	assert.Equal(t, "2.01", NewScore(401, 200).StringFixed(2))
}

func TestScoreMarshalJSON(t *testing.T) {
	body, err := json.Marshal(StoreStatistics{AverageRating: NewScore(12, 3), TotalRatings: 3})
	require.NoError(t, err)

	assert.JSONEq(t, `{"average_rating":4.00,"total_ratings":3}`, string(body))
	assert.Contains(t, string(body), `"average_rating":4.00`)
}
