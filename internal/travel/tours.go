package travel

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// tourConcept is one of the four fixed tour templates. Price, duration, and
// category are fixed; the search phrase and description are templated on the
// resolved destination.
type tourConcept struct {
	id           string
	title        string
	category     string
	duration     string
	priceUSD     int
	describe     func(country string) string
	searchPhrase func(place string) string
	minRating    float64
	maxRating    float64
	minReviews   int
	maxReviews   int
}

var tourConcepts = [4]tourConcept{
	{
		id:       "city-highlights",
		title:    "City Highlights Tour",
		category: "Walking Tour",
		duration: "4 hours",
		priceUSD: 65,
		describe: func(country string) string {
			return fmt.Sprintf("Explore %s's major landmarks and historical sites with a local guide.", country)
		},
		searchPhrase: func(place string) string { return place + " city landmarks" },
		minRating:    4.5, maxRating: 5.0, minReviews: 200, maxReviews: 400,
	},
	{
		id:       "food-culture",
		title:    "Food & Culture Experience",
		category: "Food Tour",
		duration: "3 hours",
		priceUSD: 45,
		describe: func(country string) string {
			return fmt.Sprintf("Taste local cuisine and learn about the culinary traditions of %s.", country)
		},
		searchPhrase: func(place string) string { return place + " food market" },
		minRating:    4.5, maxRating: 5.0, minReviews: 150, maxReviews: 300,
	},
	{
		id:       "nature-scenery",
		title:    "Nature & Scenery Adventure",
		category: "Adventure",
		duration: "6 hours",
		priceUSD: 89,
		describe: func(country string) string {
			return fmt.Sprintf("Visit the natural wonders and scenic viewpoints of %s.", country)
		},
		searchPhrase: func(place string) string { return place + " nature landscape" },
		minRating:    4.3, maxRating: 4.9, minReviews: 100, maxReviews: 250,
	},
	{
		id:       "historical-sites",
		title:    "Historical Sites Pass",
		category: "Cultural",
		duration: "Full day",
		priceUSD: 75,
		describe: func(country string) string {
			return fmt.Sprintf("Access museums and historical attractions across %s.", country)
		},
		searchPhrase: func(place string) string { return place + " historical architecture" },
		minRating:    4.2, maxRating: 4.8, minReviews: 50, maxReviews: 200,
	},
}

// photoSearcher is the interface satisfied by PhotoClient.
type photoSearcher interface {
	Search(ctx context.Context, query string, perPage int) ([]Photo, error)
}

// BuildTours assembles the four fixed tour concepts for a resolved location,
// fetching one photo per concept concurrently. A failed or empty photo search
// degrades that tour to one without a photo; it never drops the tour or fails
// the batch. Ratings and review counts are synthetic.
func BuildTours(ctx context.Context, photos photoSearcher, loc *Location, log *slog.Logger) []Tour {
	place := loc.Name
	if len(loc.Capital) > 0 && loc.Capital[0] != "" {
		place = loc.Capital[0]
	}

	tours := make([]Tour, len(tourConcepts))
	g, gCtx := errgroup.WithContext(ctx)

	for i, concept := range tourConcepts {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("tour photo fetch panicked", "concept", concept.id, "recover", r)
					err = fmt.Errorf("tour photo fetch panicked: %v", r)
				}
			}()

			tour := Tour{
				ID:          concept.id,
				Title:       concept.title,
				Category:    concept.category,
				Description: concept.describe(loc.Name),
				Duration:    concept.duration,
				PriceUSD:    concept.priceUSD,
				Rating:      syntheticRating(concept),
				Reviews:     syntheticReviews(concept),
				Synthetic:   true,
			}

			results, fetchErr := photos.Search(gCtx, concept.searchPhrase(place), 1)
			if fetchErr != nil {
				log.Warn("tour photo fetch failed", "concept", concept.id, "err", fetchErr)
			} else if len(results) > 0 {
				p := results[0]
				tour.Photo = &p
			}

			tours[i] = tour
			return nil
		})
	}

	// Sub-fetch failures are absorbed above; only panics surface here.
	if err := g.Wait(); err != nil {
		log.Error("tour enrichment aborted", "err", err)
	}

	return tours
}

// syntheticRating draws a decorative rating within the concept's fixed range.
// There is no upstream ground truth for tour ratings.
func syntheticRating(c tourConcept) float64 {
	r := c.minRating + rand.Float64()*(c.maxRating-c.minRating)
	return float64(int(r*10)) / 10
}

func syntheticReviews(c tourConcept) int {
	return c.minReviews + rand.IntN(c.maxReviews-c.minReviews+1)
}
