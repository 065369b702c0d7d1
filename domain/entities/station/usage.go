package station

import "strconv"

// StationUsage collects rides that begin in a given station
// + Station: station data. Once set, it cannot change
// + RideCount: amount of rides that begin in the station
// + AvgDuration: mean duration in minutes of those rides
// + MemberRatio: fraction of those rides made by members
type StationUsage struct {
	Station     StationData `json:"station"`
	RideCount   int         `json:"ride_count"`
	AvgDuration float64     `json:"avg_duration"`
	MemberRatio float64     `json:"member_ratio"`
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
