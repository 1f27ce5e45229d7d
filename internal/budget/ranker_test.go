package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelagg/internal/catalog"
)

func combo(cost float64, days int, packages ...catalog.Package) PackageCombination {
	return PackageCombination{Packages: packages, TotalCost: catalog.Rupees(cost), TotalDays: days}
}

func TestFilterAndRank_Order(t *testing.T) {
	beach := pkg("goa-beach", "Goa", 10000, 3)
	heritage := pkg("goa-heritage", "Goa", 8000, 2)
	cruise := sponsor(pkg("goa-cruise", "Goa", 9000, 1), 9000, 6500)
	tea := pkg("munnar-tea", "Munnar", 4000, 1)

	candidates := []PackageCombination{
		combo(20000, 3, beach),
		combo(16000, 2, heritage),
		combo(13000, 1, cruise),
		combo(16000, 3, tea, tea),
		combo(16000, 2, tea),
		combo(16000, 2, beach),
	}

	ranked := FilterAndRank(candidates, Request{Budget: catalog.Rupees(50000), NumPersons: 2, NumDays: 6}, 10)
	require.Len(t, ranked, 6)

	// sponsored savings first
	assert.Equal(t, []string{"goa-cruise"}, ids(ranked[0]))
	assert.Equal(t, catalog.Rupees(5000), ranked[0].Savings)

	// same cost: fewer packages, then more days, then ids
	assert.Equal(t, []string{"goa-beach"}, ids(ranked[1]))
	assert.Equal(t, []string{"goa-heritage"}, ids(ranked[2]))
	assert.Equal(t, []string{"munnar-tea"}, ids(ranked[3]))
	assert.Equal(t, []string{"munnar-tea", "munnar-tea"}, ids(ranked[4]))
	assert.Equal(t, catalog.Rupees(20000), ranked[5].TotalCost)
}

func TestFilterAndRank_DropsOverBudgetAndOverDays(t *testing.T) {
	beach := pkg("goa-beach", "Goa", 10000, 3)

	ranked := FilterAndRank([]PackageCombination{
		combo(50001, 3, beach),
		combo(20000, 7, beach),
		combo(50000, 6, beach),
	}, Request{Budget: catalog.Rupees(50000), NumPersons: 1, NumDays: 6}, 10)

	require.Len(t, ranked, 1)
	assert.Equal(t, catalog.Rupees(50000), ranked[0].TotalCost)
}

func TestFilterAndRank_RecomputesSavings(t *testing.T) {
	cruise := sponsor(pkg("goa-cruise", "Goa", 9000, 1), 9000, 6500)
	c := combo(19500, 1, cruise)
	c.Savings = catalog.Rupees(1)

	ranked := FilterAndRank([]PackageCombination{c}, Request{Budget: catalog.Rupees(50000), NumPersons: 3, NumDays: 2}, 10)
	require.Len(t, ranked, 1)
	assert.Equal(t, catalog.Rupees(7500), ranked[0].Savings)
}

func TestFilterAndRank_Limit(t *testing.T) {
	var candidates []PackageCombination
	for i := 0; i < 15; i++ {
		candidates = append(candidates, combo(float64(1000+i), 1, pkg("p", "Goa", 1000, 1)))
	}

	ranked := FilterAndRank(candidates, Request{Budget: catalog.Rupees(50000), NumPersons: 1, NumDays: 3}, 10)
	require.Len(t, ranked, 10)
	assert.Equal(t, catalog.Rupees(1000), ranked[0].TotalCost)
	assert.Equal(t, catalog.Rupees(1009), ranked[9].TotalCost)
}

func TestFilterAndRank_Deterministic(t *testing.T) {
	req := Request{Budget: catalog.Rupees(80000), NumPersons: 2, NumDays: 7}
	snap := mixedSnapshot(t)

	first := FilterAndRank(generate(t, snap, req, DefaultLimits()), req, 10)
	second := FilterAndRank(generate(t, snap, req, DefaultLimits()), req, 10)
	assert.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i-1].Savings, first[i].Savings)
	}
}
