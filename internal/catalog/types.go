package catalog

import (
	"strings"

	"gopkg.in/yaml.v3"
)

type AgentType string

const (
	AgentTypeTravel    AgentType = "travel"
	AgentTypeTransport AgentType = "transport"
)

type Agent struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Type          AgentType `json:"type" yaml:"type"`
	Description   string    `json:"description" yaml:"description"`
	Rating        float64   `json:"rating" yaml:"rating"`
	TotalBookings int       `json:"total_bookings" yaml:"total_bookings"`
	Location      string    `json:"location" yaml:"location"`
	ContactPhone  string    `json:"contact_phone" yaml:"contact_phone"`
	ContactEmail  string    `json:"contact_email" yaml:"contact_email"`
	ImageBase64   string    `json:"image_base64" yaml:"image_base64"`
	IsActive      bool      `json:"is_active" yaml:"is_active"`
	IsSubscribed  bool      `json:"is_subscribed" yaml:"is_subscribed"`
}

func (a *Agent) UnmarshalYAML(value *yaml.Node) error {
	type plain Agent
	raw := plain{IsActive: true}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*a = Agent(raw)
	return nil
}

// Package is a bookable offering. Cost is the per-person price and is sent
// as "price" to clients.
type Package struct {
	ID                 string   `json:"id" yaml:"id"`
	AgentID            string   `json:"agent_id" yaml:"agent_id"`
	Title              string   `json:"title" yaml:"title"`
	Description        string   `json:"description" yaml:"description"`
	Cost               Money    `json:"price" yaml:"price"`
	Duration           string   `json:"duration" yaml:"duration"`
	DurationDays       int      `json:"duration_days" yaml:"duration_days"`
	Destination        string   `json:"destination" yaml:"destination"`
	ImageBase64        string   `json:"image_base64" yaml:"image_base64"`
	Features           []string `json:"features" yaml:"features"`
	Latitude           *float64 `json:"latitude,omitempty" yaml:"latitude"`
	Longitude          *float64 `json:"longitude,omitempty" yaml:"longitude"`
	IsActive           bool     `json:"is_active" yaml:"is_active"`
	IsSponsored        bool     `json:"is_sponsored" yaml:"is_sponsored"`
	OriginalPrice      *Money   `json:"original_price,omitempty" yaml:"original_price"`
	SponsoredPrice     *Money   `json:"sponsored_price,omitempty" yaml:"sponsored_price"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty" yaml:"discount_percentage"`
}

func (p *Package) UnmarshalYAML(value *yaml.Node) error {
	type plain Package
	raw := plain{IsActive: true}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*p = Package(raw)
	return nil
}

// EffectivePrice is what one person pays: the sponsored price for sponsored
// packages that carry one, the list cost otherwise.
func (p Package) EffectivePrice() Money {
	if p.IsSponsored && p.SponsoredPrice != nil {
		return *p.SponsoredPrice
	}
	return p.Cost
}

func (p Package) OriginalPriceOrCost() Money {
	if p.OriginalPrice != nil {
		return *p.OriginalPrice
	}
	return p.Cost
}

// SavingsPerPerson is zero for unsponsored packages and never negative.
func (p Package) SavingsPerPerson() Money {
	if !p.IsSponsored {
		return 0
	}
	diff := p.OriginalPriceOrCost() - p.EffectivePrice()
	if diff < 0 {
		return 0
	}
	return diff
}

type Destination struct {
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

type TransportMode string

const (
	ModeNone   TransportMode = "none"
	ModeBus    TransportMode = "bus"
	ModeTrain  TransportMode = "train"
	ModeFlight TransportMode = "flight"
)

// Rank orders modes for tie-breaks between equally priced legs.
func (m TransportMode) Rank() int {
	switch m {
	case ModeNone:
		return 0
	case ModeBus:
		return 1
	case ModeTrain:
		return 2
	case ModeFlight:
		return 3
	default:
		return 4
	}
}

// Route is one row of the transport table. Routes are undirected.
type Route struct {
	From       string        `json:"from" yaml:"from"`
	To         string        `json:"to" yaml:"to"`
	Mode       TransportMode `json:"mode" yaml:"mode"`
	DistanceKm *float64      `json:"distance_km,omitempty" yaml:"distance_km"`
	Cost       Money         `json:"cost" yaml:"cost"`
}

// DestinationKey normalises a destination name for case-insensitive matching.
func DestinationKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
