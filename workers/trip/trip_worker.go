package trip

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"bikeshare/domain/entities/trip"
	"bikeshare/workers/distancecalculator"
)

const (
	tripWorkerType = "trips-worker"

	// MinDurationMinutes and MaxDurationMinutes bound a valid trip, both inclusive
	MinDurationMinutes = 1.0
	MaxDurationMinutes = 1440.0
)

// FilterReport struct that summarizes a FilterValid run
// + Received: amount of trips received
// + Kept: amount of valid trips
// + TooShort: trips dropped because they last less than MinDurationMinutes
// + TooLong: trips dropped because they last more than MaxDurationMinutes
type FilterReport struct {
	Received int `json:"received"`
	Kept     int `json:"kept"`
	TooShort int `json:"too_short"`
	TooLong  int `json:"too_long"`
}

// GetDropped returns the amount of trips that were discarded
func (fr FilterReport) GetDropped() int {
	return fr.TooShort + fr.TooLong
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[worker: %s][method: %s][status: ERROR] %s: %s", tripWorkerType, method, message, err.Error())
	}
	return fmt.Sprintf("[worker: %s][method: %s][status: OK] %s", tripWorkerType, method, message)
}

// Derive builds a Trip from the raw data. Nothing is dropped here
func Derive(raw trip.RawTrip) trip.Trip {
	startedAt := raw.StartedAt
	hour := startedAt.Hour()
	weekday := startedAt.Weekday()

	return trip.Trip{
		RawTrip:         raw,
		DurationMinutes: raw.EndedAt.Sub(startedAt).Seconds() / 60,
		Hour:            hour,
		DayOfWeek:       weekday,
		Date:            time.Date(startedAt.Year(), startedAt.Month(), startedAt.Day(), 0, 0, 0, 0, startedAt.Location()),
		Month:           int(startedAt.Month()),
		IsWeekend:       weekday == time.Saturday || weekday == time.Sunday,
		TimeOfDay:       trip.ClassifyHour(hour),
		DistanceKm:      distancecalculator.CalculateDistance(raw.Start, raw.End),
	}
}

// DeriveAll derives every raw trip keeping the order
func DeriveAll(rawTrips []trip.RawTrip) []trip.Trip {
	trips := make([]trip.Trip, len(rawTrips))
	for idx := range rawTrips {
		trips[idx] = Derive(rawTrips[idx])
	}
	return trips
}

// IsValid returns true if the duration of the trip is between MinDurationMinutes and MaxDurationMinutes
func IsValid(t trip.Trip) bool {
	return invalidReason(t) == ""
}

func invalidReason(t trip.Trip) string {
	if t.DurationMinutes < MinDurationMinutes {
		return "duration < 1 minute"
	}
	if t.DurationMinutes > MaxDurationMinutes {
		return "duration > 1440 minutes"
	}
	return ""
}

// FilterValid returns the valid trips in the same order they were received. Invalid
// trips are dropped, never adjusted
func FilterValid(trips []trip.Trip) ([]trip.Trip, FilterReport) {
	report := FilterReport{Received: len(trips)}
	validTrips := make([]trip.Trip, 0, len(trips))

	for idx := range trips {
		switch {
		case trips[idx].DurationMinutes < MinDurationMinutes:
			report.TooShort++
		case trips[idx].DurationMinutes > MaxDurationMinutes:
			report.TooLong++
		default:
			validTrips = append(validTrips, trips[idx])
			continue
		}
		log.Debug(getLogMessage("FilterValid", fmt.Sprintf("invalid trip %s, reason: %s", trips[idx].RideID, invalidReason(trips[idx])), nil))
	}

	report.Kept = len(validTrips)
	if report.GetDropped() > 0 {
		log.Info(getLogMessage("FilterValid", fmt.Sprintf("dropped %v of %v trips: too short %v, too long %v", report.GetDropped(), report.Received, report.TooShort, report.TooLong), nil))
	}
	return validTrips, report
}
