package presseportal

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MaxConcurrency limits parallel requests issued by batch helpers
const MaxConcurrency = 4

// RegionStories holds the stories retrieved for one region
type RegionStories struct {
	Region  string  `json:"region"`
	Stories []Story `json:"stories"`
}

// GetPublicServiceRegions retrieves public service stories for several regions
// concurrently. All regions are validated before the first request; results
// are returned in the order of regions.
func (c *Client) GetPublicServiceRegions(ctx context.Context, regions []string, opts ...QueryOption) ([]RegionStories, error) {
	q := newQuery(opts)
	if len(regions) == 0 {
		return nil, &ArgumentError{Kind: KindRegion, Value: "", Allowed: c.allow.Regions}
	}
	for _, region := range regions {
		if err := c.checkRegion(region, q); err != nil {
			return nil, err
		}
	}

	results := make([]RegionStories, len(regions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrency)

	for i, region := range regions {
		g.Go(func() error {
			stories, err := c.stories(ctx, pathPublicRegion+"/"+region, q)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("region", region).
					Msg("Failed to get public service stories for region")
				return err
			}
			// Each goroutine owns its own slot
			results[i] = RegionStories{Region: region, Stories: stories}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
