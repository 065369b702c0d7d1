package filter

import (
	"math/rand"
	"sort"

	"bikeshare/domain/entities/trip"
)

// DefaultSeed seed used to down-sample geographic and scatter subsets
const DefaultSeed int64 = 42

// Apply returns the trips matched by the selection in their original order. The result is
// never nil: an empty slice means nothing matched
func Apply(trips []trip.Trip, selection Selection) []trip.Trip {
	filtered := make([]trip.Trip, 0, len(trips))
	for idx := range trips {
		if selection.Matches(trips[idx]) {
			filtered = append(filtered, trips[idx])
		}
	}
	return filtered
}

// GeoSubset returns the trips with coordinates in both endpoints
func GeoSubset(trips []trip.Trip) []trip.Trip {
	subset := make([]trip.Trip, 0, len(trips))
	for idx := range trips {
		if trips[idx].HasCoordinates() {
			subset = append(subset, trips[idx])
		}
	}
	return subset
}

// Where returns the trips for which keep returns true
func Where(trips []trip.Trip, keep func(trip.Trip) bool) []trip.Trip {
	subset := make([]trip.Trip, 0)
	for idx := range trips {
		if keep(trips[idx]) {
			subset = append(subset, trips[idx])
		}
	}
	return subset
}

// Sample returns n trips chosen without replacement with the given seed, in the order they
// have in trips. If there are n trips or less, trips is returned as is
func Sample(trips []trip.Trip, n int, seed int64) []trip.Trip {
	if n < 0 {
		n = 0
	}
	if len(trips) <= n {
		return trips
	}

	random := rand.New(rand.NewSource(seed))
	indexes := random.Perm(len(trips))[:n]
	sort.Ints(indexes)

	sample := make([]trip.Trip, n)
	for idx, tripIdx := range indexes {
		sample[idx] = trips[tripIdx]
	}
	return sample
}
