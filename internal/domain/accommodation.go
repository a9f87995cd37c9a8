package domain

// Accommodation is a single bookable listing in the static catalog.
// Catalog entries are built once at startup and never mutated.
type Accommodation struct {
	ID          string
	Name        string
	Location    string // commune name, one of Communes
	Description string
	Rating      float64 // 0..5
	Price       int     // FCFA per night
	Amenities   []string
	Features    []string
	IsDiscrete  bool // badge only; Search never filters on it
	Reviews     int
}

// Communes is the fixed list of districts used as the location-filter unit.
var Communes = []string{
	"Cocody",
	"Plateau",
	"Marcory",
	"Treichville",
	"Yopougon",
	"Adjamé",
	"Koumassi",
	"Port-Bouët",
	"Abobo",
	"Grand-Bassam",
}

// Amenity vocabulary. Features are free-form and intentionally NOT drawn
// from this list.
const (
	AmenityWiFi       = "WiFi"
	AmenityParking    = "Parking"
	AmenityRestaurant = "Restaurant"
	AmenityDiscret    = "Discret"
	AmenityPiscine    = "Piscine"
	AmenitySpa        = "Spa"
	AmenityConference = "Conference"
	AmenityNavette    = "Navette"
	AmenityPlage      = "Plage"
)

var Amenities = []string{
	AmenityWiFi, AmenityParking, AmenityRestaurant, AmenityDiscret,
	AmenityPiscine, AmenitySpa, AmenityConference, AmenityNavette, AmenityPlage,
}

// ValidCommune reports whether name is one of the canonical communes.
// Comparison is done by the caller's convention (case-insensitive in search).
func ValidCommune(name string) bool {
	for _, c := range Communes {
		if c == name {
			return true
		}
	}
	return false
}
