package catalog_test

import (
	"strings"
	"testing"

	"hotrodebabi/internal/catalog"
	"hotrodebabi/internal/domain"
)

func TestDefault_SeedShape(t *testing.T) {
	s := catalog.Default()
	items := s.All()
	if len(items) == 0 {
		t.Fatal("empty catalog")
	}
	if len(items) != s.Len() {
		t.Fatalf("Len()=%d but All() returned %d", s.Len(), len(items))
	}

	seen := map[string]bool{}
	cocody := 0
	for _, a := range items {
		if a.ID == "" || seen[a.ID] {
			t.Fatalf("missing or duplicate id %q", a.ID)
		}
		seen[a.ID] = true

		if !domain.ValidCommune(a.Location) {
			t.Errorf("%s: location %q is not a commune", a.ID, a.Location)
		}
		if strings.EqualFold(a.Location, "cocody") {
			cocody++
		}
		if a.Rating < 0 || a.Rating > 5 {
			t.Errorf("%s: rating %v out of range", a.ID, a.Rating)
		}
		if a.Price <= 0 {
			t.Errorf("%s: non-positive price %d", a.ID, a.Price)
		}
		for _, am := range a.Amenities {
			if !validAmenity(am) {
				t.Errorf("%s: amenity %q not in vocabulary", a.ID, am)
			}
		}
		if a.Reviews < 0 {
			t.Errorf("%s: negative review count", a.ID)
		}
	}
	if cocody != 4 {
		t.Fatalf("expected exactly 4 Cocody entries, got %d", cocody)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := catalog.Default()
	a := s.All()
	first := a[0].ID
	a[0].ID = "clobbered"
	if s.All()[0].ID != first {
		t.Fatal("All() exposed the store's backing slice")
	}
}

func validAmenity(a string) bool {
	for _, v := range domain.Amenities {
		if v == a {
			return true
		}
	}
	return false
}
