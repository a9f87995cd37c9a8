package app

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"time"

	"hotrodebabi/internal/catalog"
	"hotrodebabi/internal/domain"
)

// SearchController is the single source of truth for the search view's
// state: query text, commune filter, price/rating filters, sort mode and the
// derived result list. All operations are synchronous and single-threaded.
type SearchController struct {
	store *catalog.Store
	geo   domain.LocationProvider
	rng   *rand.Rand

	query      string
	location   string
	priceRange PriceRange
	minRating  float64
	sortMode   SortMode

	showExtendedFilters bool
	applyFilters        bool

	results []domain.Accommodation
}

func NewSearchController(store *catalog.Store, geo domain.LocationProvider, rng *rand.Rand) *SearchController {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c := &SearchController{
		store:      store,
		geo:        geo,
		rng:        rng,
		priceRange: PriceAll,
		sortMode:   SortDefault,
	}
	c.recompute()
	return c
}

// SeedFromQuery reads the location key from a navigational query string.
// The sync is one-way: later state changes are never written back.
func (c *SearchController) SeedFromQuery(v url.Values) {
	if loc := v.Get("location"); loc != "" {
		c.SetLocation(loc)
	}
}

func (c *SearchController) SetQuery(q string) {
	c.query = q
	c.recompute()
}

func (c *SearchController) SetLocation(loc string) {
	c.location = loc
	c.recompute()
}

func (c *SearchController) SetPriceRange(pr PriceRange) {
	c.priceRange = pr
	c.recompute()
}

func (c *SearchController) SetMinRating(r float64) {
	c.minRating = r
	c.recompute()
}

// SetApplyFilters gates whether the tracked price/rating filters actually
// restrict results.
func (c *SearchController) SetApplyFilters(on bool) {
	c.applyFilters = on
	c.recompute()
}

func (c *SearchController) ToggleExtendedFilters() {
	c.showExtendedFilters = !c.showExtendedFilters
}

// ToggleSort switches the sort mode; picking the active mode again reverts
// to default. Proximity needs the location capability up front: when it is
// denied the mode stays unchanged and the error surfaces to the caller.
func (c *SearchController) ToggleSort(ctx context.Context, mode SortMode) error {
	if c.sortMode == mode {
		c.sortMode = SortDefault
		c.recompute()
		return nil
	}
	if mode == SortProximity {
		if c.geo == nil {
			return domain.ErrCapabilityDenied
		}
		if _, err := c.geo.Current(ctx); err != nil {
			return fmt.Errorf("proximity sort: %w", err)
		}
	}
	c.sortMode = mode
	c.recompute()
	return nil
}

func (c *SearchController) Results() []domain.Accommodation { return c.results }

func (c *SearchController) SortMode() SortMode   { return c.sortMode }
func (c *SearchController) Query() string       { return c.query }
func (c *SearchController) Location() string    { return c.location }
func (c *SearchController) ExtendedOpen() bool  { return c.showExtendedFilters }
func (c *SearchController) FiltersApplied() bool { return c.applyFilters }

func (c *SearchController) recompute() {
	res := Search(c.store.All(), c.query, c.location)
	if c.applyFilters {
		res = FilterResults(res, c.priceRange, c.minRating)
	}
	c.results = SortResults(res, c.sortMode, c.rng)
}
