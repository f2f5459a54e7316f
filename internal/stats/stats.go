// Package stats computes derived statistics over a merged item list. All
// values are recomputed from scratch on every call; nothing is cached, so
// nothing can go stale.
package stats

import "gameshelf/internal/models"

// Stats summarizes one identity's personal set: the merged items carrying a
// non-default status or a nonzero rating.
type Stats struct {
	Total         int
	Completed     int
	Playing       int
	Wishlist      int
	Abandoned     int
	Rated         int
	AverageRating float64
}

// Summarize folds merged items into Stats. Pure function: no side effects,
// no retained state. AverageRating is 0 when nothing is rated.
func Summarize(items []models.MergedItem) Stats {
	var s Stats
	var ratingSum float64

	for _, item := range items {
		if item.Status == models.StatusNone && item.Rating <= 0 {
			continue
		}

		s.Total++
		switch item.Status {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusPlaying:
			s.Playing++
		case models.StatusWishlist:
			s.Wishlist++
		case models.StatusAbandoned:
			s.Abandoned++
		}
		if item.Rating > 0 {
			s.Rated++
			ratingSum += item.Rating
		}
	}

	if s.Rated > 0 {
		s.AverageRating = ratingSum / float64(s.Rated)
	}

	return s
}
