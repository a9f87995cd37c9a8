package catalog

import "hotrodebabi/internal/domain"

// Bundled dataset. Prices are FCFA per night. Order here is the canonical
// insertion order that search results preserve.
var seed = []domain.Accommodation{
	{
		ID:          "villa-romance-cocody",
		Name:        "Villa Romance Cocody",
		Location:    "Cocody",
		Description: "Villa discrète nichée dans un jardin calme de la Riviera, idéale pour un séjour en amoureux.",
		Rating:      4.8,
		Price:       75000,
		Amenities:   []string{domain.AmenityWiFi, domain.AmenityParking, domain.AmenityPiscine, domain.AmenityDiscret},
		Features:    []string{"Piscine privée", "Jardin tropical", "Terrasse panoramique"},
		IsDiscrete:  true,
		Reviews:     124,
	},
	{
		ID:          "residence-les-ambassades",
		Name:        "Résidence Les Ambassades",
		Location:    "Cocody",
		Description: "Appartements meublés haut standing au coeur des Deux-Plateaux.",
		Rating:      4.5,
		Price:       45000,
		Amenities:   []string{domain.AmenityWiFi, domain.AmenityParking, domain.AmenityRestaurant},
		Features:    []string{"Cuisine équipée", "Balcon vue lagune"},
		Reviews:     89,
	},
	{
		ID:          "hotel-belle-cote",
		Name:        "Hôtel Belle Côte",
		Location:    "Cocody",
		Description: "Hôtel d'affaires moderne proche de l'université Félix Houphouët-Boigny.",
		Rating:      4.2,
		Price:       38000,
		Amenities:   []string{domain.AmenityWiFi, domain.AmenityRestaurant, domain.AmenityConference},
		Features:    []string{"Salle de réunion", "Petit-déjeuner inclus"},
		Reviews:     56,
	},
	{
		ID:          "apparthotel-riviera-palmeraie",
		Name:        "Appart'hôtel Riviera Palmeraie",
		Location:    "Cocody",
		Description: "Studios économiques à la Riviera Palmeraie, parfaits pour les longs séjours.",
		Rating:      3.9,
		Price:       22000,
		Amenities:   []string{domain.AmenityWiFi, domain.AmenityParking},
		Features:    []string{"Studio climatisé", "Coin cuisine"},
		Reviews:     41,
	},
	{
		ID:          "plateau-business-hotel",
		Name:        "Plateau Business Hotel",
		Location:    "Plateau",
		Description: "Tour hôtelière au coeur du quartier des affaires d'Abidjan.",
		Rating:      4.5,
		Price:       85000,
		Amenities:   []string{domain.AmenityWiFi, domain.AmenityRestaurant, domain.AmenityConference, domain.AmenityNavette},
		Features:    []string{"Centre d'affaires", "Navette aéroport", "Rooftop bar"},
		Reviews:     203,
	},
	{
		ID:          "le-manhattan-suites",
		Name:        "Le Manhattan Suites",
		Location:    "Plateau",
		Description: "Suites spacieuses avec vue sur la cathédrale Saint-Paul.",
		Rating:      4.0,
		Price:       52000,
		Amenities:   []string{domain.AmenityWiFi, domain.AmenityParking, domain.AmenityRestaurant},
		Features:    []string{"Suite exécutive", "Room service 24h"},
		Reviews:     77,
	},
	{
		ID:          "residence-zone4",
		Name:        "Résidence Zone 4",
		Location:    "Marcory",
		Description: "Résidence conviviale au coeur de la Zone 4, à deux pas de la rue des Jardins.",
		Rating:      4.2,
		Price:       35000,
		Amenities:   []string{domain.AmenityWiFi, domain.AmenityParking, domain.AmenityPiscine},
		Features:    []string{"Proche restaurants Zone 4", "Climatisation"},
		Reviews:     64,
	},
	{
		ID:          "motel-lescale",
		Name:        "Motel L'Escale",
		Location:    "Marcory",
		Description: "Motel abordable pour étapes courtes, entrée indépendante.",
		Rating:      3.2,
		Price:       15000,
		Amenities:   []string{domain.AmenityParking, domain.AmenityDiscret},
		Features:    []string{"Accès discret", "Parking privé"},
		IsDiscrete:  true,
		Reviews:     18,
	},
	{
		ID:          "hotel-du-commerce",
		Name:        "Hôtel du Commerce",
		Location:    "Treichville",
		Description: "Adresse historique à cinq minutes du marché de Treichville.",
		Rating:      3.5,
		Price:       18000,
		Amenities:   []string{domain.AmenityWiFi, domain.AmenityRestaurant},
		Features:    []string{"Maquis voisin", "Terrasse ombragée"},
		Reviews:     33,
	},
	{
		ID:          "oasis-de-yopougon",
		Name:        "Oasis de Yopougon",
		Location:    "Yopougon",
		Description: "Grand complexe familial avec espace maquis et salle de fêtes.",
		Rating:      3.8,
		Price:       20000,
		Amenities:   []string{domain.AmenityWiFi, domain.AmenityParking, domain.AmenityRestaurant},
		Features:    []string{"Espace maquis", "Salle de fêtes"},
		Reviews:     47,
	},
	{
		ID:          "hotel-wassakara",
		Name:        "Hôtel Wassakara",
		Location:    "Yopougon",
		Description: "Petit hôtel de quartier, simple et propre.",
		Rating:      3.0,
		Price:       12000,
		Amenities:   []string{domain.AmenityParking},
		Features:    []string{"Chambres ventilées"},
		Reviews:     12,
	},
	{
		ID:          "residence-koumassi-nord",
		Name:        "Résidence Koumassi Nord",
		Location:    "Koumassi",
		Description: "Appartements pratiques près du grand carrefour de Koumassi.",
		Rating:      3.4,
		Price:       16000,
		Amenities:   []string{domain.AmenityWiFi, domain.AmenityParking},
		Features:    []string{"Proche grand carrefour"},
		Reviews:     21,
	},
	{
		ID:          "grand-hotel-port-bouet",
		Name:        "Grand Hôtel de Port-Bouët",
		Location:    "Port-Bouët",
		Description: "Face à l'océan, à cinq minutes de l'aéroport Félix Houphouët-Boigny.",
		Rating:      4.2,
		Price:       42000,
		Amenities:   []string{domain.AmenityWiFi, domain.AmenityRestaurant, domain.AmenityPlage, domain.AmenityNavette},
		Features:    []string{"Accès plage privé", "Navette aéroport FHB"},
		Reviews:     98,
	},
	{
		ID:          "etoile-du-sud-bassam",
		Name:        "Étoile du Sud Grand-Bassam",
		Location:    "Grand-Bassam",
		Description: "Resort balnéaire au bord de la plage historique de Grand-Bassam.",
		Rating:      4.8,
		Price:       68000,
		Amenities:   []string{domain.AmenityWiFi, domain.AmenityRestaurant, domain.AmenityPiscine, domain.AmenitySpa, domain.AmenityPlage},
		Features:    []string{"Piscine à débordement", "Plage aménagée", "Spa balnéo"},
		Reviews:     156,
	},
}
