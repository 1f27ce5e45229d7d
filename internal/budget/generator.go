package budget

import (
	"fmt"
	"sort"
	"strings"

	"travelagg/internal/catalog"
)

// destinationGroup is every bookable package sharing one destination.
type destinationGroup struct {
	key      string
	name     string
	packages []catalog.Package
}

// groupByDestination groups active packages of active agents by destination
// key. Groups are ordered by key; the display name is the spelling used by the
// first package in catalog order.
func groupByDestination(snap *catalog.Snapshot) []destinationGroup {
	index := make(map[string]int)
	var groups []destinationGroup

	for _, p := range snap.Packages() {
		if !p.IsActive {
			continue
		}
		if a, ok := snap.Agent(p.AgentID); !ok || !a.IsActive {
			continue
		}

		key := catalog.DestinationKey(p.Destination)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, destinationGroup{key: key, name: strings.TrimSpace(p.Destination)})
		}
		groups[i].packages = append(groups[i].packages, p)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].key < groups[j].key })
	return groups
}

// matchPlace narrows groups to place: an exact (case-insensitive) name match
// wins, otherwise every group with a word starting with place.
func matchPlace(groups []destinationGroup, place string) ([]destinationGroup, error) {
	key := catalog.DestinationKey(place)
	if key == "" {
		return groups, nil
	}

	for _, g := range groups {
		if g.key == key {
			return []destinationGroup{g}, nil
		}
	}

	var matched []destinationGroup
	for _, g := range groups {
		if hasWordPrefix(g.key, key) {
			matched = append(matched, g)
		}
	}
	if len(matched) == 0 {
		return nil, invalidRequest("unknown place %q", place)
	}
	return matched, nil
}

// hasWordPrefix reports whether prefix occurs in name at the start of a word.
func hasWordPrefix(name, prefix string) bool {
	for i := 0; i+len(prefix) <= len(name); i++ {
		if i > 0 && isWordByte(name[i-1]) {
			continue
		}
		if strings.HasPrefix(name[i:], prefix) {
			return true
		}
	}
	return false
}

// isWordByte treats every non-ASCII byte as part of a word.
func isWordByte(b byte) bool {
	return b >= 0x80 || b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

type poolEntry struct {
	pkg   catalog.Package
	price catalog.Money
	group int
}

func lessEntry(a, b poolEntry) bool {
	if a.price != b.price {
		return a.price < b.price
	}
	if a.pkg.DurationDays != b.pkg.DurationDays {
		return a.pkg.DurationDays < b.pkg.DurationDays
	}
	return a.pkg.ID < b.pkg.ID
}

type Generator struct {
	estimator TransportEstimator
	limits    Limits
}

func NewGenerator(estimator TransportEstimator, limits Limits) *Generator {
	return &Generator{
		estimator: estimator,
		limits:    limits.normalized(),
	}
}

// Generate enumerates itineraries of 1..MaxPackages packages that fit req's
// days and budget, transport included. The result is unranked. The only error
// is an unknown place.
func (g *Generator) Generate(snap *catalog.Snapshot, req Request) ([]PackageCombination, error) {
	groups, err := matchPlace(groupByDestination(snap), req.Place)
	if err != nil {
		return nil, err
	}

	pool := g.buildPool(groups, req)
	if len(pool) == 0 {
		return []PackageCombination{}, nil
	}

	maxPackages := min(g.limits.MaxPackages, req.NumDays)
	out := make([]PackageCombination, 0)
	chosen := make([]int, 0, maxPackages)

	var walk func(start, days int, cost catalog.Money)
	walk = func(start, days int, cost catalog.Money) {
		for i := start; i < len(pool) && len(out) < g.limits.MaxCandidates; i++ {
			e := pool[i]
			if days+e.pkg.DurationDays > req.NumDays {
				continue
			}
			next := cost.Plus(e.price.Times(req.NumPersons))
			// the pool is price ordered, so nothing after i fits either
			if next > req.Budget {
				break
			}

			chosen = append(chosen, i)
			if combo, ok := g.itinerary(pool, chosen, groups, req); ok {
				out = append(out, combo)
			}
			if len(chosen) < maxPackages {
				walk(i+1, days+e.pkg.DurationDays, next)
			}
			chosen = chosen[:len(chosen)-1]
		}
	}
	walk(0, 0, 0)

	return out, nil
}

// buildPool applies the per-request pre-filter and the per-destination cap,
// keeping the cheapest packages of each group.
func (g *Generator) buildPool(groups []destinationGroup, req Request) []poolEntry {
	var pool []poolEntry
	for gi, grp := range groups {
		var entries []poolEntry
		for _, p := range grp.packages {
			price := p.EffectivePrice()
			if p.DurationDays < 1 || p.DurationDays > req.NumDays {
				continue
			}
			if price.Times(req.NumPersons) > req.Budget {
				continue
			}
			entries = append(entries, poolEntry{pkg: p, price: price, group: gi})
		}
		sort.Slice(entries, func(i, j int) bool { return lessEntry(entries[i], entries[j]) })
		if len(entries) > g.limits.MaxPerDestination {
			entries = entries[:g.limits.MaxPerDestination]
		}
		pool = append(pool, entries...)
	}
	sort.Slice(pool, func(i, j int) bool { return lessEntry(pool[i], pool[j]) })
	return pool
}

type stop struct {
	group   int
	entries []poolEntry
}

// itinerary orders the chosen packages into stops, picks the cheapest feasible
// stop order and reports whether the result fits the budget.
func (g *Generator) itinerary(pool []poolEntry, chosen []int, groups []destinationGroup, req Request) (PackageCombination, bool) {
	var stops []stop
	for _, i := range chosen {
		e := pool[i]
		found := false
		for s := range stops {
			if stops[s].group == e.group {
				stops[s].entries = append(stops[s].entries, e)
				found = true
				break
			}
		}
		if !found {
			stops = append(stops, stop{group: e.group, entries: []poolEntry{e}})
		}
	}
	// groups are key ordered, so this makes the first permutation the lexicographic first
	sort.Slice(stops, func(i, j int) bool { return stops[i].group < stops[j].group })

	order := make([]int, len(stops))
	for i := range order {
		order[i] = i
	}

	var (
		bestOrder []int
		bestLegs  []TransportSegment
		bestCost  catalog.Money
	)
	for {
		legs, cost, ok := g.legsFor(stops, order, groups)
		if ok && (bestOrder == nil || cost < bestCost) {
			bestOrder = append([]int(nil), order...)
			bestLegs, bestCost = legs, cost
		}
		if !nextPermutation(order) {
			break
		}
	}
	if bestOrder == nil {
		return PackageCombination{}, false
	}

	combo := PackageCombination{
		Packages:          make([]catalog.Package, 0, len(chosen)),
		TransportSegments: bestLegs,
	}
	var (
		packageCost catalog.Money
		summary     []string
	)
	for _, si := range bestOrder {
		s := stops[si]
		days := 0
		for _, e := range s.entries {
			combo.Packages = append(combo.Packages, e.pkg)
			packageCost = packageCost.Plus(e.price)
			days += e.pkg.DurationDays
			combo.Savings += e.pkg.SavingsPerPerson()
		}
		combo.TotalDays += days
		summary = append(summary, stopSummary(groups[s.group].name, days))
	}

	combo.TotalCost = packageCost.Times(req.NumPersons).Plus(bestCost)
	combo.Savings = combo.Savings.Times(req.NumPersons)
	combo.ItinerarySummary = strings.Join(summary, " → ")

	if combo.TotalCost > req.Budget {
		return PackageCombination{}, false
	}
	return combo, true
}

func (g *Generator) legsFor(stops []stop, order []int, groups []destinationGroup) ([]TransportSegment, catalog.Money, bool) {
	legs := make([]TransportSegment, 0, len(order)-1)
	var total catalog.Money
	for i := 1; i < len(order); i++ {
		from := groups[stops[order[i-1]].group].name
		to := groups[stops[order[i]].group].name
		// ErrNoRouteFound makes this order infeasible; it never reaches the caller
		seg, err := g.estimator.Estimate(from, to)
		if err != nil {
			return nil, 0, false
		}
		legs = append(legs, seg)
		total += seg.Cost
	}
	return legs, total, true
}

func stopSummary(name string, days int) string {
	return fmt.Sprintf("%s (%s)", name, daysLabel(days))
}

// nextPermutation advances p to the next lexicographic permutation and
// reports false once p was the last one.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
