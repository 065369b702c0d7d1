package station

import "bikeshare/domain/entities/trip"

// StationData struct that contains a station with the coordinates where its rides begin
// + Name: name of the station
// + Latitude, Longitude: coordinates reported by the trips that start at the station
type StationData struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewStationData returns nil if the trip has no start station name or no start coordinates
func NewStationData(t trip.Trip) *StationData {
	name, ok := t.StartStationName()
	if !ok || t.Start == nil {
		return nil
	}
	return &StationData{
		Name:      name,
		Latitude:  t.Start.Lat,
		Longitude: t.Start.Lng,
	}
}

// GetKey identifies the station by name and coordinates, e.g. "name|38.9|-77.04"
func (sd *StationData) GetKey() string {
	return sd.Name + "|" + formatCoordinate(sd.Latitude) + "|" + formatCoordinate(sd.Longitude)
}
