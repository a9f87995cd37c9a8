package geo

import (
	"context"

	"hotrodebabi/internal/domain"
)

// Static is a LocationProvider backed by a fixed position, granted only when
// one was supplied (deployment config or request parameters). Without a
// position the capability is denied and proximity sorting stays unavailable.
type Static struct {
	coords  domain.Coords
	granted bool
}

func NewStatic(lat, lon *float64) *Static {
	if lat == nil || lon == nil {
		return &Static{}
	}
	return &Static{coords: domain.Coords{Lat: *lat, Lon: *lon}, granted: true}
}

// Denied returns a provider that always refuses the capability.
func Denied() *Static { return &Static{} }

func (s *Static) Current(ctx context.Context) (domain.Coords, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coords{}, err
	}
	if !s.granted {
		return domain.Coords{}, domain.ErrCapabilityDenied
	}
	return s.coords, nil
}
