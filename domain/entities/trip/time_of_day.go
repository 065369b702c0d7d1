package trip

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is one of four fixed 6-hour windows of the day
type TimeOfDay int

const (
	TimeOfDayUnknown TimeOfDay = iota
	EarlyMorning
	Morning
	Afternoon
	Evening
)

var timeOfDayLabels = map[TimeOfDay]string{
	TimeOfDayUnknown: "Unknown",
	EarlyMorning:     "Early Morning (12-6am)",
	Morning:          "Morning (6-12pm)",
	Afternoon:        "Afternoon (12-6pm)",
	Evening:          "Evening (6-12am)",
}

// TimesOfDay returns the buckets in chronological order
func TimesOfDay() []TimeOfDay {
	return []TimeOfDay{EarlyMorning, Morning, Afternoon, Evening}
}

// Weekdays returns the weekdays ordered Monday to Sunday
func Weekdays() []time.Weekday {
	return []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
}

// ClassifyHour returns the bucket of the given hour. First match wins:
// hour < 6, hour < 12, hour < 18, hour <= 23. Anything else is unknown.
func ClassifyHour(hour int) TimeOfDay {
	switch {
	case hour < 6:
		return EarlyMorning
	case hour < 12:
		return Morning
	case hour < 18:
		return Afternoon
	case hour <= 23:
		return Evening
	default:
		return TimeOfDayUnknown
	}
}

// ParseTimeOfDay accepts either the label ("Morning (6-12pm)") or the short name ("morning")
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	switch value {
	case "early_morning", "early-morning":
		return EarlyMorning, nil
	case "morning":
		return Morning, nil
	case "afternoon":
		return Afternoon, nil
	case "evening":
		return Evening, nil
	}

	for bucket, label := range timeOfDayLabels {
		if bucket != TimeOfDayUnknown && label == value {
			return bucket, nil
		}
	}
	return TimeOfDayUnknown, fmt.Errorf("invalid time of day %q", value)
}

func (t TimeOfDay) String() string {
	label, ok := timeOfDayLabels[t]
	if !ok {
		return timeOfDayLabels[TimeOfDayUnknown]
	}
	return label
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	if label == timeOfDayLabels[TimeOfDayUnknown] {
		*t = TimeOfDayUnknown
		return nil
	}

	bucket, err := ParseTimeOfDay(label)
	if err != nil {
		return err
	}
	*t = bucket
	return nil
}
