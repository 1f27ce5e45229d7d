package budget

import (
	"fmt"
	"math"

	"travelagg/internal/catalog"
	"travelagg/pkg/geo"
)

// TransportEstimator prices the leg between two destinations.
type TransportEstimator interface {
	Estimate(from, to string) (TransportSegment, error)
}

// Tariff prices a derived leg of at most UpToKm (0 means unbounded).
type Tariff struct {
	UpToKm float64
	Mode   catalog.TransportMode
	Base   catalog.Money
	PerKm  catalog.Money
}

// DefaultTariffs are used for derived legs when the route table has no row.
var DefaultTariffs = []Tariff{
	{UpToKm: 300, Mode: catalog.ModeBus, Base: catalog.Rupees(150), PerKm: catalog.Rupees(2.5)},
	{UpToKm: 900, Mode: catalog.ModeTrain, Base: catalog.Rupees(300), PerKm: catalog.Rupees(1.8)},
	{Mode: catalog.ModeFlight, Base: catalog.Rupees(2500), PerKm: catalog.Rupees(4)},
}

type pairKey struct {
	a, b string
}

func newPairKey(x, y string) pairKey {
	x, y = catalog.DestinationKey(x), catalog.DestinationKey(y)
	if y < x {
		x, y = y, x
	}
	return pairKey{a: x, b: y}
}

type leg struct {
	mode       catalog.TransportMode
	distanceKm float64
	cost       catalog.Money
}

func (l leg) cheaperThan(o leg) bool {
	if l.cost != o.cost {
		return l.cost < o.cost
	}
	if l.distanceKm != o.distanceKm {
		return l.distanceKm < o.distanceKm
	}
	return l.mode.Rank() < o.mode.Rank()
}

// Estimator answers from the snapshot's route table, keyed by unordered
// destination pair. With derive set, pairs without a row but with known
// coordinates are priced from Tariffs.
type Estimator struct {
	legs    map[pairKey]leg
	coords  func(string) (geo.Point, bool)
	derive  bool
	tariffs []Tariff
}

func NewEstimator(snap *catalog.Snapshot, derive bool) *Estimator {
	e := &Estimator{
		legs:    make(map[pairKey]leg, len(snap.Routes())),
		coords:  snap.Coordinates,
		derive:  derive,
		tariffs: DefaultTariffs,
	}

	for _, r := range snap.Routes() {
		l := leg{mode: r.Mode, cost: r.Cost}
		if r.DistanceKm != nil {
			l.distanceKm = *r.DistanceKm
		} else if km, ok := e.greatCircle(r.From, r.To); ok {
			l.distanceKm = km
		}

		key := newPairKey(r.From, r.To)
		if cur, ok := e.legs[key]; !ok || l.cheaperThan(cur) {
			e.legs[key] = l
		}
	}
	return e
}

func (e *Estimator) Estimate(from, to string) (TransportSegment, error) {
	if catalog.DestinationKey(from) == catalog.DestinationKey(to) {
		return TransportSegment{From: from, To: to, Type: catalog.ModeNone}, nil
	}

	if l, ok := e.legs[newPairKey(from, to)]; ok {
		return TransportSegment{From: from, To: to, Type: l.mode, DistanceKm: geo.RoundKm(l.distanceKm), Cost: l.cost}, nil
	}

	if e.derive {
		if km, ok := e.greatCircle(from, to); ok {
			l := e.tariffFor(km)
			return TransportSegment{From: from, To: to, Type: l.mode, DistanceKm: geo.RoundKm(km), Cost: l.cost}, nil
		}
	}

	return TransportSegment{}, fmt.Errorf("%w: %s to %s", ErrNoRouteFound, from, to)
}

func (e *Estimator) greatCircle(from, to string) (float64, bool) {
	a, ok := e.coords(from)
	if !ok {
		return 0, false
	}
	b, ok := e.coords(to)
	if !ok {
		return 0, false
	}
	return geo.DistanceKm(a, b), true
}

func (e *Estimator) tariffFor(km float64) leg {
	wholeKm := int(math.Round(km))
	t := e.tariffs[len(e.tariffs)-1]
	for _, candidate := range e.tariffs {
		if candidate.UpToKm == 0 || km <= candidate.UpToKm {
			t = candidate
			break
		}
	}
	return leg{mode: t.Mode, distanceKm: km, cost: t.Base + t.PerKm.Times(wholeKm)}
}
