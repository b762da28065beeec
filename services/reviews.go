package services

import (
	"math"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// ReviewSummary aggregates approved customer reviews.
type ReviewSummary struct {
	Count         int         `json:"count"`
	AverageRating float64     `json:"averageRating"`
	Distribution  map[int]int `json:"distribution"`
}

// SummarizeReviews counts approved reviews and averages their 1-5 star
// ratings. Ratings outside that range are ignored.
func SummarizeReviews(app core.App, logger *zap.Logger) ReviewSummary {
	summary := ReviewSummary{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}

	records, err := app.FindRecordsByFilter("reviews", "approved = true", "", 0, 0)
	if err != nil {
		logger.Warn("reviews: summary failed", zap.Error(err))
		return summary
	}

	total := 0
	for _, r := range records {
		rating := r.GetInt("rating")
		if rating < 1 || rating > 5 {
			continue
		}
		summary.Distribution[rating]++
		summary.Count++
		total += rating
	}
	if summary.Count > 0 {
		summary.AverageRating = math.Round(float64(total)/float64(summary.Count)*10) / 10
	}
	return summary
}
