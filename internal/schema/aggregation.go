package schema

import "github.com/balbesina228/films-api/internal/model"

// AggregationsResponse is the body of GET /aggregations. Rating figures are
// null when no film has a rating.
type AggregationsResponse struct {
	Count       int64    `json:"count"`
	MaxRating   *float64 `json:"max_rating"`
	MinRating   *float64 `json:"min_rating"`
	AvgRating   *float64 `json:"avg_rating"`
	TotalLength int64    `json:"total_length"`
}

func DumpStats(s *model.FilmStats) AggregationsResponse {
	return AggregationsResponse{
		Count:       s.Count,
		MaxRating:   s.MaxRating,
		MinRating:   s.MinRating,
		AvgRating:   s.AvgRating,
		TotalLength: s.TotalLength,
	}
}
