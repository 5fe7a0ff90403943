package domain

import "github.com/google/uuid"

// Destination is read-only reference data used for search, autocomplete, and
// map coordinates. Rows are seeded by migration and never written by the API.
type Destination struct {
	ID                 uuid.UUID
	City               string
	Country            string
	CountryCode        string
	Continent          string
	Latitude           float64
	Longitude          float64
	Description        string
	PopularAttractions []string
	BestMonths         string
	AvgBudgetPerDay    float64
	Timezone           string
}
