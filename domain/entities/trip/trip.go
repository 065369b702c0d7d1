package trip

import (
	"encoding/json"
	"time"
)

const (
	UserTypeMember  = "member"
	UserTypeCasual  = "casual"
	UnknownCategory = "unknown"
)

// Coordinates latitude and longitude in degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RawTrip struct that contains a trip as it is ingested. Nullable columns are pointers:
// + RideID: identifier of the trip
// + BikeType: rideable type tag, e.g. classic_bike, electric_bike
// + StartedAt: date in which the trip begins
// + EndedAt: date in which the trip ends
// + StartStation: name of the station in which the trip begins. Nil if missing
// + EndStation: name of the station in which the trip ends. Nil if missing
// + Start: coordinates where the trip begins. Nil if missing
// + End: coordinates where the trip ends. Nil if missing
// + UserType: member or casual
type RawTrip struct {
	RideID       string       `json:"ride_id"`
	BikeType     string       `json:"rideable_type"`
	StartedAt    time.Time    `json:"started_at"`
	EndedAt      time.Time    `json:"ended_at"`
	StartStation *string      `json:"start_station_name"`
	EndStation   *string      `json:"end_station_name"`
	Start        *Coordinates `json:"start"`
	End          *Coordinates `json:"end"`
	UserType     string       `json:"member_casual"`
}

// Trip is a RawTrip plus the attributes derived from it. Once built it is never mutated.
type Trip struct {
	RawTrip
	DurationMinutes float64      `json:"duration_minutes"`
	Hour            int          `json:"hour"`
	DayOfWeek       time.Weekday `json:"-"`
	Date            time.Time    `json:"-"`
	Month           int          `json:"month"`
	IsWeekend       bool         `json:"is_weekend"`
	TimeOfDay       TimeOfDay    `json:"time_of_day"`
	DistanceKm      float64      `json:"distance_km"`
}

// MarshalJSON renders the weekday by name and the date as YYYY-MM-DD
func (t Trip) MarshalJSON() ([]byte, error) {
	type plainTrip Trip
	return json.Marshal(struct {
		plainTrip
		DayOfWeek string `json:"day_of_week"`
		Date      string `json:"date"`
	}{
		plainTrip: plainTrip(t),
		DayOfWeek: t.DayOfWeek.String(),
		Date:      t.DateKey(),
	})
}

// DateKey returns the calendar date of the trip start as YYYY-MM-DD
func (t Trip) DateKey() string {
	return t.Date.Format(time.DateOnly)
}

// HasCoordinates returns true if both endpoints have coordinates
func (t Trip) HasCoordinates() bool {
	return t.Start != nil && t.End != nil
}

// UserTypeKey returns the user type, or "unknown" when the tag is empty
func (t Trip) UserTypeKey() string {
	return orUnknown(t.UserType)
}

// BikeTypeKey returns the bike type, or "unknown" when the tag is empty
func (t Trip) BikeTypeKey() string {
	return orUnknown(t.BikeType)
}

// StartStationName returns the start station name and whether it is present
func (t Trip) StartStationName() (string, bool) {
	if t.StartStation == nil {
		return "", false
	}
	return *t.StartStation, true
}

// EndStationName returns the end station name and whether it is present
func (t Trip) EndStationName() (string, bool) {
	if t.EndStation == nil {
		return "", false
	}
	return *t.EndStation, true
}

func orUnknown(value string) string {
	if value == "" {
		return UnknownCategory
	}
	return value
}
