package app

import (
	"math/rand"
	"sort"
	"strings"

	"hotrodebabi/internal/domain"
)

type SortMode string

const (
	SortDefault   SortMode = "default"
	SortRating    SortMode = "rating"
	SortProximity SortMode = "proximity"
)

type PriceRange string

const (
	PriceAll    PriceRange = "all"
	PriceBudget PriceRange = "budget" // < 25 000 FCFA
	PriceMid    PriceRange = "mid"    // 25 000 – 50 000 FCFA
	PriceLuxury PriceRange = "luxury" // > 50 000 FCFA
)

// Search restricts the candidate set by commune then by free-text query.
// Location is an exact case-insensitive commune match; the query is a
// case-insensitive substring match over name, location, description and
// features. Empty inputs apply no restriction. Insertion order is preserved.
func Search(items []domain.Accommodation, query, location string) []domain.Accommodation {
	out := make([]domain.Accommodation, 0, len(items))
	q := strings.ToLower(strings.TrimSpace(query))
	loc := strings.TrimSpace(location)
	for _, a := range items {
		if loc != "" && !strings.EqualFold(a.Location, loc) {
			continue
		}
		if q != "" && !matchesQuery(a, q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesQuery(a domain.Accommodation, q string) bool {
	if strings.Contains(strings.ToLower(a.Name), q) ||
		strings.Contains(strings.ToLower(a.Location), q) ||
		strings.Contains(strings.ToLower(a.Description), q) {
		return true
	}
	for _, f := range a.Features {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// FilterResults applies the price-band and minimum-rating predicates.
// The controller only routes results through here when its apply-filters
// flag is on; with the flag off the tracked filters have no effect, which
// matches the shipped behavior.
func FilterResults(items []domain.Accommodation, pr PriceRange, minRating float64) []domain.Accommodation {
	out := make([]domain.Accommodation, 0, len(items))
	for _, a := range items {
		if !inPriceRange(a.Price, pr) {
			continue
		}
		if a.Rating < minRating {
			continue
		}
		out = append(out, a)
	}
	return out
}

func inPriceRange(price int, pr PriceRange) bool {
	switch pr {
	case PriceBudget:
		return price < 25000
	case PriceMid:
		return price >= 25000 && price <= 50000
	case PriceLuxury:
		return price > 50000
	default: // PriceAll or unset
		return true
	}
}

// SortResults reorders a result set. "rating" is a stable descending sort
// (many entries share a rating, ties keep input order). "proximity" has no
// coordinates to compare yet and deliberately randomizes the order on every
// call; rng must not be nil for that mode.
func SortResults(items []domain.Accommodation, mode SortMode, rng *rand.Rand) []domain.Accommodation {
	out := make([]domain.Accommodation, len(items))
	copy(out, items)
	switch mode {
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortProximity:
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}
