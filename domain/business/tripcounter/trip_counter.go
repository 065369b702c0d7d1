package tripcounter

import "fmt"

// TripCounter struct that counts the amount of trips that begin and end in StationName
// + StationName: name of the station to collect data. Once set, it cannot change
// + StartCounter: counts the amount of trips that begin in the station
// + EndCounter: counts the amount of trips that end in the station
type TripCounter struct {
	StationName  string `json:"station_name"`
	StartCounter int    `json:"start_count"`
	EndCounter   int    `json:"end_count"`
}

func NewTripCounter(stationName string) *TripCounter {
	return &TripCounter{
		StationName: stationName,
	}
}

func (tc *TripCounter) UpdateStartCounter() {
	tc.StartCounter += 1
}

func (tc *TripCounter) UpdateEndCounter() {
	tc.EndCounter += 1
}

// GetTotal returns the amount of trips that begin or end in the station
func (tc *TripCounter) GetTotal() int {
	return tc.StartCounter + tc.EndCounter
}

// GetNetFlow returns starts minus ends. A positive value means the station loses bikes
func (tc *TripCounter) GetNetFlow() int {
	return tc.StartCounter - tc.EndCounter
}

func (tc *TripCounter) Merge(tripCounter2 *TripCounter) (*TripCounter, error) {
	// sanity check
	if tc.StationName != tripCounter2.StationName {
		return nil, fmt.Errorf("[TripCounter] cannot merge two TripCounters with different name: %s - %s", tc.StationName, tripCounter2.StationName)
	}

	return &TripCounter{
		StationName:  tc.StationName,
		StartCounter: tc.StartCounter + tripCounter2.StartCounter,
		EndCounter:   tc.EndCounter + tripCounter2.EndCounter,
	}, nil
}
