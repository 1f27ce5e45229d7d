package budget

import (
	"sort"
	"strings"

	"travelagg/internal/catalog"
)

// FilterAndRank drops candidates that break the request's budget or days,
// recomputes savings and orders the rest: savings desc, total cost asc, fewer
// packages, more days, then package ids. At most limit combinations are kept.
func FilterAndRank(candidates []PackageCombination, req Request, limit int) []PackageCombination {
	kept := make([]PackageCombination, 0, len(candidates))
	for _, c := range candidates {
		if c.TotalCost > req.Budget || c.TotalDays > req.NumDays {
			continue
		}
		c.Savings = savings(c.Packages, req.NumPersons)
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.Savings != b.Savings {
			return a.Savings > b.Savings
		}
		if a.TotalCost != b.TotalCost {
			return a.TotalCost < b.TotalCost
		}
		if len(a.Packages) != len(b.Packages) {
			return len(a.Packages) < len(b.Packages)
		}
		if a.TotalDays != b.TotalDays {
			return a.TotalDays > b.TotalDays
		}
		return itineraryKey(a) < itineraryKey(b)
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

func savings(packages []catalog.Package, persons int) catalog.Money {
	var total catalog.Money
	for _, p := range packages {
		total += p.SavingsPerPerson()
	}
	return total.Times(persons)
}

func itineraryKey(c PackageCombination) string {
	ids := make([]string, len(c.Packages))
	for i, p := range c.Packages {
		ids[i] = p.ID
	}
	return strings.Join(ids, ",")
}
