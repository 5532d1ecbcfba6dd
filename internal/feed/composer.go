// Package feed builds the ordered list of startup cards a user swipes
// through.
package feed

import (
	"context"
	"strings"

	"github.com/swipeup-app/swipeup/internal/apperr"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/store"
)

type Composer struct {
	store store.Store
}

func NewComposer(s store.Store) *Composer {
	return &Composer{store: s}
}

// Compose returns the feed for a geography tab. The Russia tab shows
// Russian startups only; the Worldwide tab interleaves Russian and
// Worldwide startups 1:1 so Russian startups surface to the global
// audience. An empty geo returns all approved startups newest-first.
// Category filters by case-insensitive substring against the tags
// field. When userID is set, startups the user already voted on are
// excluded; if the exclusion lookup fails, the whole call fails rather
// than presenting voted-on cards as new.
func (c *Composer) Compose(ctx context.Context, geo, category string, userID *uint) ([]models.Startup, error) {
	var startups []models.Startup

	switch geo {
	case models.GeoRussia:
		russia, err := c.store.ApprovedByGeo(ctx, models.GeoRussia)
		if err != nil {
			return nil, err
		}
		startups = russia
	case models.GeoWorldwide:
		russia, err := c.store.ApprovedByGeo(ctx, models.GeoRussia)
		if err != nil {
			return nil, err
		}
		worldwide, err := c.store.ApprovedByGeo(ctx, models.GeoWorldwide)
		if err != nil {
			return nil, err
		}
		startups = interleave(russia, worldwide)
	case "":
		all, err := c.store.ApprovedByGeo(ctx, "")
		if err != nil {
			return nil, err
		}
		startups = all
	default:
		return nil, apperr.Newf(apperr.Validation, "unknown geo %q", geo)
	}

	if category != "" {
		startups = filterByCategory(startups, category)
	}

	if userID != nil {
		voted, err := c.store.VotedStartupIDs(ctx, *userID)
		if err != nil {
			return nil, apperr.Wrap(apperr.Unavailable, "feed unavailable", err)
		}
		startups = excludeVoted(startups, voted)
	}

	return startups, nil
}

// interleave merges two lists one-from-each, appending the tail of the
// longer list once the shorter is exhausted.
func interleave(a, b []models.Startup) []models.Startup {
	merged := make([]models.Startup, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			merged = append(merged, a[i])
		}
		if i < len(b) {
			merged = append(merged, b[i])
		}
	}
	return merged
}

// Substring match, not exact tag match: "Tech" matches "FinTech".
func filterByCategory(startups []models.Startup, category string) []models.Startup {
	category = strings.ToLower(category)

	filtered := startups[:0:0]
	for _, s := range startups {
		if strings.Contains(strings.ToLower(s.Tags), category) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func excludeVoted(startups []models.Startup, voted map[uint]struct{}) []models.Startup {
	filtered := startups[:0:0]
	for _, s := range startups {
		if _, ok := voted[s.ID]; !ok {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
