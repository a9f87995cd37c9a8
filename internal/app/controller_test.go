package app_test

import (
	"context"
	"errors"
	"math/rand"
	"net/url"
	"testing"

	"hotrodebabi/internal/app"
	"hotrodebabi/internal/catalog"
	"hotrodebabi/internal/domain"
)

type fakeGeo struct {
	coords domain.Coords
	err    error
}

func (f *fakeGeo) Current(ctx context.Context) (domain.Coords, error) {
	if f.err != nil {
		return domain.Coords{}, f.err
	}
	return f.coords, nil
}

func newController(geo domain.LocationProvider) *app.SearchController {
	return app.NewSearchController(catalog.Default(), geo, rand.New(rand.NewSource(7)))
}

func TestController_SeedFromQuery(t *testing.T) {
	c := newController(nil)
	c.SeedFromQuery(url.Values{"location": {"cocody"}})

	if c.Location() != "cocody" {
		t.Fatalf("location not seeded: %q", c.Location())
	}
	if n := len(c.Results()); n != 4 {
		t.Fatalf("expected 4 Cocody results after seeding, got %d", n)
	}

	// absent key leaves state alone
	c2 := newController(nil)
	c2.SeedFromQuery(url.Values{})
	if c2.Location() != "" || len(c2.Results()) != catalog.Default().Len() {
		t.Fatal("empty query string must not restrict results")
	}
}

func TestController_MutationsRecompute(t *testing.T) {
	c := newController(nil)
	c.SetLocation("Cocody")
	c.SetQuery("villa")

	res := c.Results()
	if len(res) != 1 || res[0].ID != "villa-romance-cocody" {
		t.Fatalf("unexpected results: %v", ids(res))
	}

	c.SetQuery("")
	if len(c.Results()) != 4 {
		t.Fatal("clearing the query must widen results again")
	}
}

func TestController_SortToggle(t *testing.T) {
	c := newController(nil)
	baseline := ids(c.Results())

	if err := c.ToggleSort(context.Background(), app.SortRating); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if c.SortMode() != app.SortRating {
		t.Fatalf("mode: %s", c.SortMode())
	}
	sorted := c.Results()
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Rating < sorted[i].Rating {
			t.Fatal("rating sort not applied")
		}
	}

	// toggling the active mode reverts to default order
	if err := c.ToggleSort(context.Background(), app.SortRating); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if c.SortMode() != app.SortDefault || !sameOrder(ids(c.Results()), baseline) {
		t.Fatal("second toggle must restore the default order")
	}
}

func TestController_ProximityNeedsCapability(t *testing.T) {
	c := newController(&fakeGeo{err: domain.ErrCapabilityDenied})
	before := ids(c.Results())

	err := c.ToggleSort(context.Background(), app.SortProximity)
	if !errors.Is(err, domain.ErrCapabilityDenied) {
		t.Fatalf("expected capability denial, got %v", err)
	}
	if c.SortMode() != app.SortDefault {
		t.Fatal("denied toggle must not change the sort mode")
	}
	if !sameOrder(ids(c.Results()), before) {
		t.Fatal("denied toggle must not touch results")
	}

	// nil provider counts as denied too
	if err := newController(nil).ToggleSort(context.Background(), app.SortProximity); !errors.Is(err, domain.ErrCapabilityDenied) {
		t.Fatalf("nil provider: %v", err)
	}
}

func TestController_ProximityGranted(t *testing.T) {
	c := newController(&fakeGeo{coords: domain.Coords{Lat: 5.35, Lon: -4.0}})
	if err := c.ToggleSort(context.Background(), app.SortProximity); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if c.SortMode() != app.SortProximity {
		t.Fatalf("mode: %s", c.SortMode())
	}
	if len(c.Results()) != catalog.Default().Len() {
		t.Fatal("proximity sort must keep the whole result set")
	}
}

func TestController_FiltersAreInertUntilApplied(t *testing.T) {
	c := newController(nil)
	full := len(c.Results())

	// tracked but inert
	c.SetPriceRange(app.PriceBudget)
	c.SetMinRating(4)
	if len(c.Results()) != full {
		t.Fatal("filters must not apply while the flag is off")
	}

	c.SetApplyFilters(true)
	for _, a := range c.Results() {
		if a.Price >= 25000 || a.Rating < 4 {
			t.Fatalf("filter violated by %s (price=%d rating=%v)", a.ID, a.Price, a.Rating)
		}
	}

	c.SetApplyFilters(false)
	if len(c.Results()) != full {
		t.Fatal("turning the flag off must restore the unfiltered set")
	}
}
