package budget

import (
	"fmt"
	"sort"

	"travelagg/internal/catalog"
)

const maxPopularDurations = 5

// buildPreview summarises the bookable catalog per destination group.
func buildPreview(snap *catalog.Snapshot) *Preview {
	groups := groupByDestination(snap)

	preview := &Preview{
		Destinations:          make([]DestinationSummary, 0, len(groups)),
		AvailableDestinations: make([]string, 0, len(groups)),
		PopularDurations:      make([]int, 0, maxPopularDurations),
		Suggestions:           make([]string, 0, len(groups)),
	}

	durations := make(map[int]int)
	var cheapest *catalog.Package

	for _, g := range groups {
		summary := DestinationSummary{Name: g.name, PackageCount: len(g.packages)}
		for i, p := range g.packages {
			price := p.EffectivePrice()
			if i == 0 || price < summary.PriceRange.Min {
				summary.PriceRange.Min = price
			}
			if price > summary.PriceRange.Max {
				summary.PriceRange.Max = price
			}
			if p.DurationDays > 0 {
				durations[p.DurationDays]++
			}
			if cheapest == nil || price < cheapest.EffectivePrice() {
				cheapest = &g.packages[i]
			}
		}

		if preview.TotalPackages == 0 || summary.PriceRange.Min < preview.PriceRange.Min {
			preview.PriceRange.Min = summary.PriceRange.Min
		}
		if summary.PriceRange.Max > preview.PriceRange.Max {
			preview.PriceRange.Max = summary.PriceRange.Max
		}
		preview.TotalPackages += summary.PackageCount

		preview.Destinations = append(preview.Destinations, summary)
		preview.AvailableDestinations = append(preview.AvailableDestinations, g.name)
		preview.Suggestions = append(preview.Suggestions,
			fmt.Sprintf("%s: %d packages from %s per person", g.name, summary.PackageCount, summary.PriceRange.Min))
	}

	preview.PopularDurations = popularDurations(durations)

	if cheapest == nil {
		preview.Suggestion = "No packages are available right now. Check back soon."
	} else {
		preview.Suggestion = fmt.Sprintf("Trips start at %s per person: %s in %s (%s)",
			cheapest.EffectivePrice(), cheapest.Title, cheapest.Destination, daysLabel(cheapest.DurationDays))
	}
	return preview
}

func popularDurations(counts map[int]int) []int {
	days := make([]int, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		if counts[days[i]] != counts[days[j]] {
			return counts[days[i]] > counts[days[j]]
		}
		return days[i] < days[j]
	})
	if len(days) > maxPopularDurations {
		days = days[:maxPopularDurations]
	}
	return days
}

func daysLabel(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
