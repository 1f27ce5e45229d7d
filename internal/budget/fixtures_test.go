package budget

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"travelagg/internal/catalog"
	"travelagg/pkg/logger"
)

const testAgent = "agent-1"

func pkg(id, destination string, rupees float64, days int) catalog.Package {
	return catalog.Package{
		ID:           id,
		AgentID:      testAgent,
		Title:        id,
		Destination:  destination,
		Cost:         catalog.Rupees(rupees),
		DurationDays: days,
		IsActive:     true,
	}
}

func sponsor(p catalog.Package, original, sponsored float64) catalog.Package {
	o, s := catalog.Rupees(original), catalog.Rupees(sponsored)
	p.IsSponsored = true
	p.OriginalPrice = &o
	p.SponsoredPrice = &s
	return p
}

func route(from, to string, mode catalog.TransportMode, rupees float64, km ...float64) catalog.Route {
	r := catalog.Route{From: from, To: to, Mode: mode, Cost: catalog.Rupees(rupees)}
	if len(km) > 0 {
		r.DistanceKm = &km[0]
	}
	return r
}

func newSnapshot(t testing.TB, packages []catalog.Package, routes []catalog.Route, destinations ...catalog.Destination) *catalog.Snapshot {
	t.Helper()
	snap, err := catalog.NewSnapshot(catalog.Document{
		Agents: []catalog.Agent{{
			ID: testAgent, Name: "Test Tours", Type: catalog.AgentTypeTravel, IsActive: true,
		}},
		Packages:     packages,
		Routes:       routes,
		Destinations: destinations,
	})
	require.NoError(t, err)
	return snap
}

// goaSnapshot is the two-package Goa catalog used throughout.
func goaSnapshot(t testing.TB) *catalog.Snapshot {
	return newSnapshot(t, []catalog.Package{
		pkg("goa-beach", "Goa", 10000, 3),
		pkg("goa-heritage", "Goa", 8000, 2),
	}, nil)
}

// mixedSnapshot spans four destinations with sponsored packages and a route
// table that leaves Ladakh unreachable.
func mixedSnapshot(t testing.TB) *catalog.Snapshot {
	return newSnapshot(t, []catalog.Package{
		pkg("goa-beach", "Goa", 10000, 3),
		pkg("goa-heritage", "Goa", 8000, 2),
		sponsor(pkg("goa-cruise", "Goa", 9000, 1), 9000, 6500),
		pkg("kerala-backwaters", "Kerala", 12000, 2),
		sponsor(pkg("kerala-ayurveda", "Kerala", 15000, 3), 15000, 11000),
		pkg("munnar-tea", "Munnar", 4999.5, 1),
		pkg("munnar-trek", "Munnar", 7000, 2),
		pkg("ladakh-bike", "Ladakh", 20000, 4),
	}, []catalog.Route{
		route("Goa", "Kerala", catalog.ModeFlight, 6500, 640),
		route("Kerala", "Goa", catalog.ModeTrain, 2200),
		route("Kerala", "Munnar", catalog.ModeBus, 450, 130),
		route("Goa", "Munnar", catalog.ModeBus, 3100, 700),
	}, catalog.Destination{Name: "Goa", Latitude: 15.2993, Longitude: 74.1240},
		catalog.Destination{Name: "Kerala", Latitude: 10.8505, Longitude: 76.2711})
}

func testLogger() logger.Client {
	return logger.NewWithWriter("development", &bytes.Buffer{})
}

func ids(c PackageCombination) []string {
	out := make([]string, len(c.Packages))
	for i, p := range c.Packages {
		out[i] = p.ID
	}
	return out
}

func describe(c PackageCombination) string {
	return fmt.Sprintf("%v cost=%d days=%d", ids(c), c.TotalCost, c.TotalDays)
}
