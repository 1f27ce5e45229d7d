package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRibbon_JSONRoundTrip(t *testing.T) {
	in := Ribbon{
		ID:       "explore",
		Title:    "Explore More",
		Order:    3,
		IsActive: true,
		Content: ExploreRibbon{Items: []ExploreItem{
			{Category: "Budget Travel", Image: "💰", Action: ActionBudgetTravel},
			{Category: "Weekend Getaways", Count: 25, Image: "🏖️"},
		}},
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "explore", "title": "Explore More", "type": "explore", "order": 3, "is_active": true,
		"items": [
			{"category": "Budget Travel", "count": 0, "image": "💰", "action": "budget_travel"},
			{"category": "Weekend Getaways", "count": 25, "image": "🏖️"}
		]
	}`, string(raw))

	var out Ribbon
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func TestRibbon_DecodeDispatchesOnType(t *testing.T) {
	var r Ribbon
	require.NoError(t, json.Unmarshal([]byte(`{"id":"rec","title":"For you","type":"recommendation",
		"items":[{"agent_id":"a1","reason":"Highly rated"}]}`), &r))

	rec, ok := r.Content.(RecommendationRibbon)
	require.True(t, ok, "content is %T", r.Content)
	assert.Equal(t, []RecommendationItem{{AgentID: "a1", Reason: "Highly rated"}}, rec.Items)
	assert.True(t, r.IsActive, "is_active defaults to true")
}

func TestRibbon_RejectsUnknownTypeAndFields(t *testing.T) {
	var r Ribbon
	err := json.Unmarshal([]byte(`{"id":"x","type":"carousel","items":[]}`), &r)
	assert.ErrorContains(t, err, "unknown ribbon type")

	// filter items do not carry agent ids
	err = json.Unmarshal([]byte(`{"id":"x","type":"filter","items":[{"name":"A","agent_id":"a1"}]}`), &r)
	assert.Error(t, err)
}

func TestRibbon_NullItemsDecodeEmpty(t *testing.T) {
	content, err := DecodeRibbonContent(RibbonFilter, []byte("null"))
	require.NoError(t, err)
	assert.Equal(t, RibbonFilter, content.Kind())

	raw, err := Ribbon{ID: "f", Content: content}.ItemsJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestRibbon_MarshalWithoutContentFails(t *testing.T) {
	_, err := json.Marshal(Ribbon{ID: "empty"})
	assert.Error(t, err)
}
