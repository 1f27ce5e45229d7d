package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"travelagg/pkg/geo"
)

// Document is the serialised catalog: the YAML file format and the body of
// GET /api/catalog/snapshot.
type Document struct {
	Agents       []Agent       `json:"agents" yaml:"agents"`
	Packages     []Package     `json:"packages" yaml:"packages"`
	Destinations []Destination `json:"destinations" yaml:"destinations"`
	Routes       []Route       `json:"routes" yaml:"routes"`
	Ribbons      []Ribbon      `json:"ribbons" yaml:"ribbons"`
}

// Snapshot is an immutable, validated view of the catalog. It is safe to
// share between concurrent requests; callers must not modify returned slices.
type Snapshot struct {
	doc         Document
	agentIdx    map[string]int
	packageIdx  map[string]int
	coords      map[string]geo.Point
	fingerprint string
}

func NewSnapshot(doc Document) (*Snapshot, error) {
	doc = Document{
		Agents:       append([]Agent(nil), doc.Agents...),
		Packages:     append([]Package(nil), doc.Packages...),
		Destinations: append([]Destination(nil), doc.Destinations...),
		Routes:       append([]Route(nil), doc.Routes...),
		Ribbons:      append([]Ribbon(nil), doc.Ribbons...),
	}

	sort.Slice(doc.Agents, func(i, j int) bool { return doc.Agents[i].ID < doc.Agents[j].ID })
	sort.Slice(doc.Packages, func(i, j int) bool { return doc.Packages[i].ID < doc.Packages[j].ID })
	sort.Slice(doc.Destinations, func(i, j int) bool { return doc.Destinations[i].Name < doc.Destinations[j].Name })
	sort.Slice(doc.Routes, func(i, j int) bool {
		a, b := doc.Routes[i], doc.Routes[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Mode < b.Mode
	})
	sort.SliceStable(doc.Ribbons, func(i, j int) bool {
		if doc.Ribbons[i].Order != doc.Ribbons[j].Order {
			return doc.Ribbons[i].Order < doc.Ribbons[j].Order
		}
		return doc.Ribbons[i].ID < doc.Ribbons[j].ID
	})

	s := &Snapshot{
		doc:        doc,
		agentIdx:   make(map[string]int, len(doc.Agents)),
		packageIdx: make(map[string]int, len(doc.Packages)),
		coords:     make(map[string]geo.Point),
	}

	if err := s.index(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("fingerprint catalog: %w", err)
	}
	sum := sha256.Sum256(raw)
	s.fingerprint = hex.EncodeToString(sum[:16])

	return s, nil
}

func (s *Snapshot) index() error {
	var errs []error

	for i, a := range s.doc.Agents {
		if a.ID == "" {
			errs = append(errs, fmt.Errorf("agent #%d: missing id", i))
			continue
		}
		if _, dup := s.agentIdx[a.ID]; dup {
			errs = append(errs, fmt.Errorf("agent %s: duplicate id", a.ID))
			continue
		}
		if a.Type != AgentTypeTravel && a.Type != AgentTypeTransport {
			errs = append(errs, fmt.Errorf("agent %s: unknown type %q", a.ID, a.Type))
		}
		s.agentIdx[a.ID] = i
	}

	for i, p := range s.doc.Packages {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("package #%d: missing id", i))
			continue
		}
		if _, dup := s.packageIdx[p.ID]; dup {
			errs = append(errs, fmt.Errorf("package %s: duplicate id", p.ID))
			continue
		}
		if _, ok := s.agentIdx[p.AgentID]; !ok {
			errs = append(errs, fmt.Errorf("package %s: unknown agent %q", p.ID, p.AgentID))
		}
		if p.Cost < 0 || p.EffectivePrice() < 0 {
			errs = append(errs, fmt.Errorf("package %s: negative price", p.ID))
		}
		if p.Destination == "" {
			errs = append(errs, fmt.Errorf("package %s: missing destination", p.ID))
		}
		s.packageIdx[p.ID] = i
	}

	for _, d := range s.doc.Destinations {
		pt := geo.Point{Lat: d.Latitude, Lng: d.Longitude}
		if !pt.Valid() {
			errs = append(errs, fmt.Errorf("destination %s: invalid coordinates", d.Name))
			continue
		}
		s.coords[DestinationKey(d.Name)] = pt
	}

	// packages may carry coordinates for destinations without their own row
	for _, p := range s.doc.Packages {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		key := DestinationKey(p.Destination)
		if _, ok := s.coords[key]; ok {
			continue
		}
		if pt := (geo.Point{Lat: *p.Latitude, Lng: *p.Longitude}); pt.Valid() {
			s.coords[key] = pt
		}
	}

	for _, r := range s.doc.Routes {
		if r.Cost < 0 {
			errs = append(errs, fmt.Errorf("route %s-%s: negative cost", r.From, r.To))
		}
		if r.Mode.Rank() > ModeFlight.Rank() || r.Mode == ModeNone {
			errs = append(errs, fmt.Errorf("route %s-%s: unknown mode %q", r.From, r.To, r.Mode))
		}
	}

	for _, r := range s.doc.Ribbons {
		if r.Content == nil {
			errs = append(errs, fmt.Errorf("ribbon %s: missing content", r.ID))
			continue
		}
		if rec, ok := r.Content.(RecommendationRibbon); ok {
			for _, item := range rec.Items {
				if _, known := s.agentIdx[item.AgentID]; !known {
					errs = append(errs, fmt.Errorf("ribbon %s: recommends unknown agent %q", r.ID, item.AgentID))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return nil
}

func (s *Snapshot) Agents() []Agent             { return s.doc.Agents }
func (s *Snapshot) Packages() []Package         { return s.doc.Packages }
func (s *Snapshot) Destinations() []Destination { return s.doc.Destinations }
func (s *Snapshot) Routes() []Route             { return s.doc.Routes }
func (s *Snapshot) Ribbons() []Ribbon           { return s.doc.Ribbons }

// Fingerprint changes whenever any catalog content changes.
func (s *Snapshot) Fingerprint() string {
	return s.fingerprint
}

func (s *Snapshot) Document() Document {
	return s.doc
}

func (s *Snapshot) Agent(id string) (Agent, bool) {
	i, ok := s.agentIdx[id]
	if !ok {
		return Agent{}, false
	}
	return s.doc.Agents[i], true
}

func (s *Snapshot) Package(id string) (Package, bool) {
	i, ok := s.packageIdx[id]
	if !ok {
		return Package{}, false
	}
	return s.doc.Packages[i], true
}

// Coordinates looks a destination up by case-insensitive name.
func (s *Snapshot) Coordinates(destination string) (geo.Point, bool) {
	pt, ok := s.coords[DestinationKey(destination)]
	return pt, ok
}
