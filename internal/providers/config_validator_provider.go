package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"homefeed/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the struct tag rules plus range checks the tags cannot
// express.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors.OneError()
	}

	fc := cv.conf.Feed
	for name, value := range map[string]int{
		"feed.trendingLimit":         fc.TrendingLimit,
		"feed.continueWatchingLimit": fc.ContinueWatchingLimit,
		"feed.continueWatchingFetch": fc.ContinueWatchingFetch,
		"feed.recommendationLimit":   fc.RecommendationLimit,
		"feed.newEpisodesLimit":      fc.NewEpisodesLimit,
	} {
		if value < 1 {
			return fmt.Errorf("config %s must be at least 1", name)
		}
	}
	if fc.ContinueWatchingFetch < fc.ContinueWatchingLimit {
		return fmt.Errorf("config feed.continueWatchingFetch must not be below feed.continueWatchingLimit")
	}
	return nil
}
