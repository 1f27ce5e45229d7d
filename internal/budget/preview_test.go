package budget

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelagg/internal/catalog"
)

func TestBuildPreview(t *testing.T) {
	destinations := []string{"Goa", "Kerala", "Munnar"}
	var packages []catalog.Package
	for i := 0; i < 100; i++ {
		dest := destinations[i%3]
		packages = append(packages, pkg(fmt.Sprintf("p-%03d", i), dest, float64(5000+i*100), 1+i%4))
	}

	preview := buildPreview(newSnapshot(t, packages, nil))

	assert.Equal(t, 100, preview.TotalPackages)
	assert.Equal(t, destinations, preview.AvailableDestinations)
	require.Len(t, preview.Destinations, 3)
	assert.Equal(t, 34, preview.Destinations[0].PackageCount)
	assert.Equal(t, 33, preview.Destinations[1].PackageCount)
	assert.Equal(t, 33, preview.Destinations[2].PackageCount)

	assert.Equal(t, catalog.Rupees(5000), preview.Destinations[0].PriceRange.Min)
	assert.Equal(t, catalog.Rupees(5000+99*100), preview.Destinations[0].PriceRange.Max)
	assert.Equal(t, catalog.Rupees(5100), preview.Destinations[1].PriceRange.Min)
	assert.Equal(t, catalog.Rupees(5000), preview.PriceRange.Min)
	assert.Equal(t, catalog.Rupees(14900), preview.PriceRange.Max)

	assert.Equal(t, []int{1, 2, 3, 4}, preview.PopularDurations)
	assert.Len(t, preview.Suggestions, 3)
	assert.Contains(t, preview.Suggestions[0], "Goa: 34 packages from")
	assert.Contains(t, preview.Suggestion, "p-000 in Goa (1 day)")
}

func TestBuildPreview_Sponsored(t *testing.T) {
	snap := newSnapshot(t, []catalog.Package{
		pkg("kerala-backwaters", "Kerala", 12000, 2),
		sponsor(pkg("kerala-ayurveda", "Kerala", 15000, 3), 15000, 11000),
		pkg("kerala-more", "kerala", 13000, 3),
	}, nil)

	preview := buildPreview(snap)
	require.Len(t, preview.Destinations, 1)
	assert.Equal(t, "Kerala", preview.Destinations[0].Name)
	assert.Equal(t, catalog.Rupees(11000), preview.PriceRange.Min)
	assert.Equal(t, catalog.Rupees(13000), preview.PriceRange.Max)
	assert.Equal(t, []int{3, 2}, preview.PopularDurations)
	assert.Contains(t, preview.Suggestion, "kerala-ayurveda in Kerala (3 days)")
}

func TestBuildPreview_Empty(t *testing.T) {
	preview := buildPreview(newSnapshot(t, nil, nil))

	assert.Zero(t, preview.TotalPackages)
	assert.NotNil(t, preview.Destinations)
	assert.Empty(t, preview.Destinations)
	assert.NotNil(t, preview.PopularDurations)
	assert.Equal(t, "No packages are available right now. Check back soon.", preview.Suggestion)
}
