package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type RibbonKind string

const (
	RibbonFilter         RibbonKind = "filter"
	RibbonRecommendation RibbonKind = "recommendation"
	RibbonExplore        RibbonKind = "explore"
)

// ActionBudgetTravel is the explore item action that opens the budget travel screen.
const ActionBudgetTravel = "budget_travel"

type FilterItem struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Icon  string `json:"icon" yaml:"icon"`
}

type RecommendationItem struct {
	AgentID string `json:"agent_id" yaml:"agent_id"`
	Reason  string `json:"reason" yaml:"reason"`
}

type ExploreItem struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
	Image    string `json:"image" yaml:"image"`
	Action   string `json:"action,omitempty" yaml:"action"`
}

// RibbonContent is the closed set of ribbon payloads: FilterRibbon,
// RecommendationRibbon and ExploreRibbon.
type RibbonContent interface {
	Kind() RibbonKind
	isRibbonContent()
}

type FilterRibbon struct {
	Items []FilterItem
}

type RecommendationRibbon struct {
	Items []RecommendationItem
}

type ExploreRibbon struct {
	Items []ExploreItem
}

func (FilterRibbon) Kind() RibbonKind         { return RibbonFilter }
func (RecommendationRibbon) Kind() RibbonKind { return RibbonRecommendation }
func (ExploreRibbon) Kind() RibbonKind        { return RibbonExplore }

func (FilterRibbon) isRibbonContent()         {}
func (RecommendationRibbon) isRibbonContent() {}
func (ExploreRibbon) isRibbonContent()        {}

// Ribbon is a titled home-screen section. On the wire it is
// {"id","title","type","order","is_active","items"} where the shape of
// items depends on type.
type Ribbon struct {
	ID       string
	Title    string
	Order    int
	IsActive bool
	Content  RibbonContent
}

type ribbonEnvelope struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Type     RibbonKind      `json:"type"`
	Order    int             `json:"order"`
	IsActive bool            `json:"is_active"`
	Items    json.RawMessage `json:"items"`
}

func (r Ribbon) Kind() RibbonKind {
	if r.Content == nil {
		return ""
	}
	return r.Content.Kind()
}

// ItemsJSON encodes only the typed items, as stored in the ribbons table.
func (r Ribbon) ItemsJSON() ([]byte, error) {
	switch c := r.Content.(type) {
	case FilterRibbon:
		return marshalItems(c.Items)
	case RecommendationRibbon:
		return marshalItems(c.Items)
	case ExploreRibbon:
		return marshalItems(c.Items)
	default:
		return nil, fmt.Errorf("ribbon %s: no content", r.ID)
	}
}

func marshalItems[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

func (r Ribbon) MarshalJSON() ([]byte, error) {
	items, err := r.ItemsJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(ribbonEnvelope{
		ID:       r.ID,
		Title:    r.Title,
		Type:     r.Kind(),
		Order:    r.Order,
		IsActive: r.IsActive,
		Items:    items,
	})
}

func (r *Ribbon) UnmarshalJSON(data []byte) error {
	env := ribbonEnvelope{IsActive: true}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	content, err := DecodeRibbonContent(env.Type, env.Items)
	if err != nil {
		return fmt.Errorf("ribbon %s: %w", env.ID, err)
	}

	*r = Ribbon{
		ID:       env.ID,
		Title:    env.Title,
		Order:    env.Order,
		IsActive: env.IsActive,
		Content:  content,
	}
	return nil
}

// DecodeRibbonContent decodes items strictly for the given kind; unknown kinds
// and unknown item fields are rejected.
func DecodeRibbonContent(kind RibbonKind, items []byte) (RibbonContent, error) {
	if len(bytes.TrimSpace(items)) == 0 || bytes.Equal(bytes.TrimSpace(items), []byte("null")) {
		items = []byte("[]")
	}

	switch kind {
	case RibbonFilter:
		var c FilterRibbon
		if err := decodeStrict(items, &c.Items); err != nil {
			return nil, err
		}
		return c, nil
	case RibbonRecommendation:
		var c RecommendationRibbon
		if err := decodeStrict(items, &c.Items); err != nil {
			return nil, err
		}
		return c, nil
	case RibbonExplore:
		var c ExploreRibbon
		if err := decodeStrict(items, &c.Items); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown ribbon type %q", kind)
	}
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode items: %w", err)
	}
	return nil
}

func (r *Ribbon) UnmarshalYAML(value *yaml.Node) error {
	var env struct {
		ID       string     `yaml:"id"`
		Title    string     `yaml:"title"`
		Type     RibbonKind `yaml:"type"`
		Order    int        `yaml:"order"`
		IsActive *bool      `yaml:"is_active"`
		Items    yaml.Node  `yaml:"items"`
	}
	if err := value.Decode(&env); err != nil {
		return err
	}

	var (
		content RibbonContent
		err     error
	)
	switch env.Type {
	case RibbonFilter:
		var c FilterRibbon
		err = decodeYAMLItems(&env.Items, &c.Items)
		content = c
	case RibbonRecommendation:
		var c RecommendationRibbon
		err = decodeYAMLItems(&env.Items, &c.Items)
		content = c
	case RibbonExplore:
		var c ExploreRibbon
		err = decodeYAMLItems(&env.Items, &c.Items)
		content = c
	default:
		err = fmt.Errorf("unknown ribbon type %q", env.Type)
	}
	if err != nil {
		return fmt.Errorf("ribbon %s (line %d): %w", env.ID, value.Line, err)
	}

	active := true
	if env.IsActive != nil {
		active = *env.IsActive
	}
	*r = Ribbon{ID: env.ID, Title: env.Title, Order: env.Order, IsActive: active, Content: content}
	return nil
}

func decodeYAMLItems[T any](node *yaml.Node, items *[]T) error {
	if node.Kind == 0 {
		return nil
	}
	return node.Decode(items)
}
