package domain

import "time"

type HotelStatus string

const (
	HotelPending   HotelStatus = "pending"
	HotelApproved  HotelStatus = "approved"
	HotelActive    HotelStatus = "active"
	HotelSuspended HotelStatus = "suspended"
	HotelRejected  HotelStatus = "rejected"
)

// Hotel is the persisted back-office counterpart of a catalog Accommodation.
// It is created pending, approved or rejected by an admin, and can move
// between approved/active and suspended afterwards. Rows are only removed by
// the explicit admin delete.
type Hotel struct {
	ID          string
	OwnerID     *string
	Name        string
	Location    string
	Description string
	Rating      float64
	Price       int
	Amenities   []string
	Features    []string
	IsDiscrete  bool
	Status      HotelStatus
	AdminNotes  *string
	ApprovedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var hotelTransitions = map[HotelStatus][]HotelStatus{
	HotelPending:   {HotelApproved, HotelActive, HotelRejected},
	HotelApproved:  {HotelActive, HotelSuspended},
	HotelActive:    {HotelSuspended},
	HotelSuspended: {HotelApproved, HotelActive},
	HotelRejected:  {},
}

// CanTransition reports whether a status change is allowed by the admin
// lifecycle.
func (h Hotel) CanTransition(to HotelStatus) bool {
	for _, s := range hotelTransitions[h.Status] {
		if s == to {
			return true
		}
	}
	return false
}
