package collections

import (
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"drapequote/services"
)

type reviewDef struct {
	customerName string
	rating       int
	comment      string
	approved     bool
}

var seedReviews = []reviewDef{
	{customerName: "Meera K.", rating: 5, comment: "Blackout curtains fit perfectly, installation was on time.", approved: true},
	{customerName: "Rohan S.", rating: 4, comment: "Good fabric range, quote was clear and itemised.", approved: true},
	{customerName: "Anita P.", rating: 5, comment: "Sheers look lovely in the living room.", approved: true},
	{customerName: "Unverified", rating: 1, comment: "Pending moderation.", approved: false},
}

// Seed inserts the default site settings and a few sample reviews into empty
// collections. Collections that already hold records are left alone.
func Seed(app core.App, logger *zap.Logger) error {
	settingsCol, err := app.FindCollectionByNameOrId("site_settings")
	if err != nil {
		return fmt.Errorf("seed: could not find site_settings collection: %w", err)
	}
	total, err := app.CountRecords(settingsCol)
	if err != nil {
		return fmt.Errorf("seed: could not count site_settings: %w", err)
	}
	if total == 0 {
		def := services.DefaultSiteSettings()
		r := core.NewRecord(settingsCol)
		r.Set("company_name", def.CompanyName)
		r.Set("company_address", def.CompanyAddress)
		r.Set("terms", strings.Join(def.Terms, "\n"))
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save site settings: %w", err)
		}
		logger.Info("seed: inserted default site settings")
	}

	reviewsCol, err := app.FindCollectionByNameOrId("reviews")
	if err != nil {
		return fmt.Errorf("seed: could not find reviews collection: %w", err)
	}
	total, err = app.CountRecords(reviewsCol)
	if err != nil {
		return fmt.Errorf("seed: could not count reviews: %w", err)
	}
	if total > 0 {
		return nil
	}
	for _, d := range seedReviews {
		r := core.NewRecord(reviewsCol)
		r.Set("customer_name", d.customerName)
		r.Set("rating", d.rating)
		r.Set("comment", d.comment)
		r.Set("approved", d.approved)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save review %q: %w", d.customerName, err)
		}
	}
	logger.Info("seed: inserted sample reviews", zap.Int("count", len(seedReviews)))
	return nil
}
