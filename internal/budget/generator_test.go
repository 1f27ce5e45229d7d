package budget

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelagg/internal/catalog"
)

func generate(t *testing.T, snap *catalog.Snapshot, req Request, limits Limits) []PackageCombination {
	t.Helper()
	out, err := NewGenerator(NewEstimator(snap, false), limits).Generate(snap, req)
	require.NoError(t, err)
	return out
}

func findCombination(combos []PackageCombination, packageIDs ...string) (PackageCombination, bool) {
	want := append([]string(nil), packageIDs...)
	for _, c := range combos {
		got := ids(c)
		if len(got) != len(want) {
			continue
		}
		match := true
		seen := make(map[string]bool, len(got))
		for _, id := range got {
			seen[id] = true
		}
		for _, id := range want {
			if !seen[id] {
				match = false
				break
			}
		}
		if match {
			return c, true
		}
	}
	return PackageCombination{}, false
}

func TestGenerate_GoaWeekend(t *testing.T) {
	req := Request{Budget: catalog.Rupees(50000), NumPersons: 2, NumDays: 6, Place: "Goa"}

	combos := generate(t, goaSnapshot(t), req, DefaultLimits())
	require.Len(t, combos, 3)

	both, ok := findCombination(combos, "goa-heritage", "goa-beach")
	require.True(t, ok)
	assert.Equal(t, catalog.Rupees(36000), both.TotalCost)
	assert.Equal(t, 5, both.TotalDays)
	assert.Equal(t, "Goa (5 days)", both.ItinerarySummary)
	assert.NotNil(t, both.TransportSegments)
	assert.Empty(t, both.TransportSegments)

	single, ok := findCombination(combos, "goa-heritage")
	require.True(t, ok)
	assert.Equal(t, catalog.Rupees(16000), single.TotalCost)
	assert.Equal(t, "Goa (2 days)", single.ItinerarySummary)
}

func TestGenerate_TotalsMatchPackagesAndLegs(t *testing.T) {
	snap := mixedSnapshot(t)
	req := Request{Budget: catalog.Rupees(80000), NumPersons: 2, NumDays: 7}

	combos := generate(t, snap, req, DefaultLimits())
	require.NotEmpty(t, combos)

	for _, c := range combos {
		name := describe(c)

		assert.LessOrEqual(t, c.TotalCost, req.Budget, name)
		assert.LessOrEqual(t, c.TotalDays, req.NumDays, name)
		assert.NotEmpty(t, c.Packages, name)
		assert.LessOrEqual(t, len(c.Packages), 3, name)

		var (
			perPerson catalog.Money
			days      int
			seen      = make(map[string]bool)
			stops     []string
		)
		for _, p := range c.Packages {
			assert.False(t, seen[p.ID], "%s repeats %s", name, p.ID)
			seen[p.ID] = true
			perPerson += p.EffectivePrice()
			days += p.DurationDays
			if len(stops) == 0 || stops[len(stops)-1] != catalog.DestinationKey(p.Destination) {
				stops = append(stops, catalog.DestinationKey(p.Destination))
			}
		}

		var transport catalog.Money
		require.Len(t, c.TransportSegments, len(stops)-1, name)
		for i, s := range c.TransportSegments {
			assert.Equal(t, stops[i], catalog.DestinationKey(s.From), name)
			assert.Equal(t, stops[i+1], catalog.DestinationKey(s.To), name)
			transport += s.Cost
		}

		assert.Equal(t, perPerson.Times(req.NumPersons)+transport, c.TotalCost, name)
		assert.Equal(t, days, c.TotalDays, name)
	}
}

func TestGenerate_StopsAreContiguous(t *testing.T) {
	combos := generate(t, mixedSnapshot(t), Request{Budget: catalog.Rupees(100000), NumPersons: 1, NumDays: 7}, DefaultLimits())

	for _, c := range combos {
		visited := make(map[string]bool)
		prev := ""
		for _, p := range c.Packages {
			key := catalog.DestinationKey(p.Destination)
			if key != prev {
				assert.False(t, visited[key], "%s revisits %s", describe(c), key)
				visited[key] = true
				prev = key
			}
		}
	}
}

func TestGenerate_PicksCheapestStopOrder(t *testing.T) {
	req := Request{Budget: catalog.Rupees(100000), NumPersons: 2, NumDays: 6}
	combos := generate(t, mixedSnapshot(t), req, DefaultLimits())

	c, ok := findCombination(combos, "goa-heritage", "kerala-backwaters", "munnar-tea")
	require.True(t, ok)

	// Goa-Kerala-Munnar and Munnar-Kerala-Goa both cost 2650; the first order wins
	assert.Equal(t, []string{"goa-heritage", "kerala-backwaters", "munnar-tea"}, ids(c))
	assert.Equal(t, "Goa (2 days) → Kerala (2 days) → Munnar (1 day)", c.ItinerarySummary)
	require.Len(t, c.TransportSegments, 2)
	assert.Equal(t, catalog.ModeTrain, c.TransportSegments[0].Type)
	assert.Equal(t, catalog.ModeBus, c.TransportSegments[1].Type)

	want := catalog.Rupees(8000+12000+4999.5).Times(2) + catalog.Rupees(2200+450)
	assert.Equal(t, want, c.TotalCost)
}

func TestGenerate_UnreachableDestinationOnlyAlone(t *testing.T) {
	req := Request{Budget: catalog.Rupees(200000), NumPersons: 1, NumDays: 10}
	combos := generate(t, mixedSnapshot(t), req, DefaultLimits())

	alone, ok := findCombination(combos, "ladakh-bike")
	require.True(t, ok)
	assert.Empty(t, alone.TransportSegments)

	for _, c := range combos {
		if len(c.Packages) < 2 {
			continue
		}
		for _, p := range c.Packages {
			assert.NotEqual(t, "Ladakh", p.Destination, describe(c))
		}
	}
}

func TestGenerate_TransportCanBreakBudget(t *testing.T) {
	// packages alone cost 9999 for one person; the Goa-Munnar bus pushes it over
	snap := newSnapshot(t, []catalog.Package{
		pkg("goa-day", "Goa", 5000, 1),
		pkg("munnar-day", "Munnar", 4999, 1),
	}, []catalog.Route{
		route("Goa", "Munnar", catalog.ModeBus, 3100, 700),
	})

	combos := generate(t, snap, Request{Budget: catalog.Rupees(10000), NumPersons: 1, NumDays: 2}, DefaultLimits())
	_, ok := findCombination(combos, "goa-day", "munnar-day")
	assert.False(t, ok)
	assert.Len(t, combos, 2)
}

func TestGenerate_Place(t *testing.T) {
	snap := mixedSnapshot(t)
	req := Request{Budget: catalog.Rupees(100000), NumPersons: 1, NumDays: 6}

	tests := []struct {
		place string
		want  []string
	}{
		{place: "  KERALA ", want: []string{"kerala"}},
		{place: "mun", want: []string{"munnar"}},
		{place: "Ker", want: []string{"kerala"}},
	}

	for _, tt := range tests {
		t.Run(tt.place, func(t *testing.T) {
			req.Place = tt.place
			combos := generate(t, snap, req, DefaultLimits())
			require.NotEmpty(t, combos)

			got := make(map[string]bool)
			for _, c := range combos {
				for _, p := range c.Packages {
					got[catalog.DestinationKey(p.Destination)] = true
				}
			}
			for key := range got {
				assert.Contains(t, tt.want, key)
			}
		})
	}
}

func TestGenerate_PlaceMatchesWordStarts(t *testing.T) {
	snap := newSnapshot(t, []catalog.Package{
		pkg("goa-beach", "Goa", 10000, 3),
		pkg("north-goa-fort", "North Goa", 6000, 1),
		pkg("tobago-reef", "Tobago", 9000, 2),
		pkg("san-diego-zoo", "San Diego", 7000, 1),
	}, nil)
	req := Request{Budget: catalog.Rupees(100000), NumPersons: 1, NumDays: 4, Place: "go"}

	combos := generate(t, snap, req, DefaultLimits())
	require.NotEmpty(t, combos)
	for _, c := range combos {
		for _, p := range c.Packages {
			assert.Contains(t, []string{"goa", "north goa"}, catalog.DestinationKey(p.Destination), describe(c))
		}
	}

	for _, fragment := range []string{"unna", "oa", "ago", "iego"} {
		req.Place = fragment
		_, err := NewGenerator(NewEstimator(snap, false), DefaultLimits()).Generate(snap, req)
		assert.ErrorIs(t, err, ErrInvalidRequest, fragment)
	}
}

func TestGenerate_HugeHeadcountNeverWrapsNegative(t *testing.T) {
	snap := goaSnapshot(t)
	req := Request{Budget: catalog.Rupees(50000), NumPersons: math.MaxInt / 1000, NumDays: 6, Place: "Goa"}

	assert.Empty(t, generate(t, snap, req, DefaultLimits()))
}

func TestGenerate_UnknownPlace(t *testing.T) {
	snap := mixedSnapshot(t)
	_, err := NewGenerator(NewEstimator(snap, false), DefaultLimits()).
		Generate(snap, Request{Budget: catalog.Rupees(50000), NumPersons: 1, NumDays: 3, Place: "Paris"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), `unknown place "Paris"`)
}

func TestGenerate_SkipsInactive(t *testing.T) {
	retired := pkg("goa-retired", "Goa", 100, 1)
	retired.IsActive = false

	snap, err := catalog.NewSnapshot(catalog.Document{
		Agents: []catalog.Agent{
			{ID: testAgent, Name: "Test Tours", Type: catalog.AgentTypeTravel, IsActive: true},
			{ID: "agent-gone", Name: "Gone Tours", Type: catalog.AgentTypeTravel},
		},
		Packages: []catalog.Package{
			pkg("goa-heritage", "Goa", 8000, 2),
			retired,
			{ID: "goa-orphan", AgentID: "agent-gone", Title: "Orphan", Destination: "Goa", Cost: catalog.Rupees(50), DurationDays: 1, IsActive: true},
		},
	})
	require.NoError(t, err)

	combos := generate(t, snap, Request{Budget: catalog.Rupees(50000), NumPersons: 1, NumDays: 5}, DefaultLimits())
	require.Len(t, combos, 1)
	assert.Equal(t, []string{"goa-heritage"}, ids(combos[0]))
}

func TestGenerate_EmptyPool(t *testing.T) {
	combos := generate(t, mixedSnapshot(t), Request{Budget: catalog.Rupees(500), NumPersons: 2, NumDays: 6}, DefaultLimits())
	assert.NotNil(t, combos)
	assert.Empty(t, combos)
}

func TestGenerate_Limits(t *testing.T) {
	var packages []catalog.Package
	for i := 0; i < 12; i++ {
		packages = append(packages, pkg(fmt.Sprintf("goa-%02d", i), "Goa", float64(1000+i*100), 1))
	}
	snap := newSnapshot(t, packages, nil)
	req := Request{Budget: catalog.Rupees(1000000), NumPersons: 1, NumDays: 10}

	t.Run("per destination cap keeps the cheapest", func(t *testing.T) {
		combos := generate(t, snap, req, Limits{MaxPackages: 1, MaxPerDestination: 4})
		require.Len(t, combos, 4)
		for _, c := range combos {
			assert.True(t, strings.Compare(c.Packages[0].ID, "goa-04") < 0, describe(c))
		}
	})

	t.Run("package count bounded by days", func(t *testing.T) {
		short := req
		short.NumDays = 2
		for _, c := range generate(t, snap, short, Limits{MaxPackages: 5}) {
			assert.LessOrEqual(t, len(c.Packages), 2)
		}
	})

	t.Run("candidate cap", func(t *testing.T) {
		combos := generate(t, snap, req, Limits{MaxCandidates: 20, MaxResults: 5})
		assert.Len(t, combos, 20)
	})
}

func TestNextPermutation(t *testing.T) {
	p := []int{0, 1, 2}
	var seen []string
	for {
		seen = append(seen, fmt.Sprint(p))
		if !nextPermutation(p) {
			break
		}
	}
	assert.Equal(t, []string{
		"[0 1 2]", "[0 2 1]", "[1 0 2]", "[1 2 0]", "[2 0 1]", "[2 1 0]",
	}, seen)
}
