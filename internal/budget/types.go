package budget

import (
	"travelagg/internal/catalog"
)

type Request struct {
	Budget     catalog.Money `json:"budget"`
	NumPersons int           `json:"num_persons"`
	NumDays    int           `json:"num_days"`
	Place      string        `json:"place,omitempty"`
}

// TransportSegment is one leg between consecutive stops. Cost is flat for the
// whole party.
type TransportSegment struct {
	From       string                `json:"from"`
	To         string                `json:"to"`
	Type       catalog.TransportMode `json:"type"`
	DistanceKm float64               `json:"distance_km"`
	Cost       catalog.Money         `json:"cost"`
}

// PackageCombination is a candidate itinerary. Packages are in visiting order.
type PackageCombination struct {
	Packages          []catalog.Package  `json:"packages"`
	TransportSegments []TransportSegment `json:"transport_segments"`
	TotalCost         catalog.Money      `json:"total_cost"`
	TotalDays         int                `json:"total_days"`
	Savings           catalog.Money      `json:"savings"`
	ItinerarySummary  string             `json:"itinerary_summary"`
}

type Metadata struct {
	CatalogVersion       string `json:"catalog_version"`
	CandidatesConsidered int    `json:"candidates_considered"`
	SearchTimeMs         uint32 `json:"search_time_ms"`
	CacheKey             string `json:"cache_key"`
	CacheHit             bool   `json:"cache_hit"`
}

type Response struct {
	Request                Request              `json:"request"`
	Combinations           []PackageCombination `json:"combinations"`
	TotalCombinationsFound int                  `json:"total_combinations_found"`
	Message                string               `json:"message"`
	Metadata               Metadata             `json:"metadata"`
}

type PriceRange struct {
	Min catalog.Money `json:"min"`
	Max catalog.Money `json:"max"`
}

type DestinationSummary struct {
	Name         string     `json:"name"`
	PackageCount int        `json:"package_count"`
	PriceRange   PriceRange `json:"price_range"`
}

type Preview struct {
	TotalPackages         int                  `json:"total_packages"`
	Destinations          []DestinationSummary `json:"destinations"`
	AvailableDestinations []string             `json:"available_destinations"`
	PriceRange            PriceRange           `json:"price_range"`
	PopularDurations      []int                `json:"popular_durations"`
	Suggestion            string               `json:"suggestion"`
	Suggestions           []string             `json:"suggestions"`
}

// Limits bounds the enumeration. Raising them trades latency for recall.
type Limits struct {
	MaxPackages       int
	MaxPerDestination int
	MaxCandidates     int
	MaxResults        int
}

func DefaultLimits() Limits {
	return Limits{
		MaxPackages:       3,
		MaxPerDestination: 8,
		MaxCandidates:     5000,
		MaxResults:        10,
	}
}

// normalized fills zero fields from DefaultLimits and keeps MaxCandidates at
// least MaxResults, so a capped search still fills a full page.
func (l Limits) normalized() Limits {
	def := DefaultLimits()
	if l.MaxPackages <= 0 {
		l.MaxPackages = def.MaxPackages
	}
	if l.MaxPerDestination <= 0 {
		l.MaxPerDestination = def.MaxPerDestination
	}
	if l.MaxCandidates <= 0 {
		l.MaxCandidates = def.MaxCandidates
	}
	if l.MaxResults <= 0 {
		l.MaxResults = def.MaxResults
	}
	if l.MaxCandidates < l.MaxResults {
		l.MaxCandidates = l.MaxResults
	}
	return l
}
