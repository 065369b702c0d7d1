package tripcounter

import (
	"sort"

	"bikeshare/domain/entities/trip"
)

// StationCounters map with the following structure: {stationName: *TripCounter}
type StationCounters map[string]*TripCounter

// CountStations counts starts and ends per station name. Trips without a station name
// are not counted for that endpoint.
func CountStations(trips []trip.Trip) StationCounters {
	counters := make(StationCounters)
	for idx := range trips {
		if name, ok := trips[idx].StartStationName(); ok {
			counters.get(name).UpdateStartCounter()
		}
		if name, ok := trips[idx].EndStationName(); ok {
			counters.get(name).UpdateEndCounter()
		}
	}
	return counters
}

func (sc StationCounters) get(name string) *TripCounter {
	counter, ok := sc[name]
	if !ok {
		counter = NewTripCounter(name)
		sc[name] = counter
	}
	return counter
}

// TopBy returns at most limit counters with a value greater than zero, ranked by
// value desc and then by station name asc
func (sc StationCounters) TopBy(limit int, value func(*TripCounter) int) []*TripCounter {
	var ranked []*TripCounter
	for _, counter := range sc {
		if value(counter) > 0 {
			ranked = append(ranked, counter)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		vi, vj := value(ranked[i]), value(ranked[j])
		if vi != vj {
			return vi > vj
		}
		return ranked[i].StationName < ranked[j].StationName
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func ByStart(tc *TripCounter) int { return tc.StartCounter }

func ByEnd(tc *TripCounter) int { return tc.EndCounter }

func ByTotal(tc *TripCounter) int { return tc.GetTotal() }
