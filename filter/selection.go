package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"bikeshare/domain/entities/trip"
	"bikeshare/utils"
	dataErrors "bikeshare/workers/errors"
)

const dateLayout = "2006-01-02"

// Selection is a conjunction of independent predicates over a cleaned trip.
// An empty set or a nil date accepts every value: nothing selected means no restriction
// on that attribute, it never rejects every row. A selection can not express "no user
// type accepted": a caller that wants an empty result for an empty pick must skip Apply
// + From, To: inclusive date range over the trip start date
// + UserTypes: accepted user types
// + BikeTypes: accepted bike types
// + TimesOfDay: accepted time of day buckets
type Selection struct {
	From       *time.Time
	To         *time.Time
	UserTypes  utils.StringSet
	BikeTypes  utils.StringSet
	TimesOfDay map[trip.TimeOfDay]bool
}

// SelectionParams raw values of a selection, as they arrive from a query string or a flag
type SelectionParams struct {
	From       string
	To         string
	UserTypes  []string
	BikeTypes  []string
	TimesOfDay []string
}

// NewSelection parses params. Comma separated values are split
func NewSelection(params SelectionParams) (Selection, error) {
	var selection Selection

	from, err := parseDate(params.From)
	if err != nil {
		return Selection{}, err
	}
	to, err := parseDate(params.To)
	if err != nil {
		return Selection{}, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return Selection{}, fmt.Errorf("%w: from %s is after to %s", dataErrors.ErrInvalidSelection, params.From, params.To)
	}
	selection.From, selection.To = from, to

	selection.UserTypes = utils.NewStringSet(splitValues(params.UserTypes)...)
	selection.BikeTypes = utils.NewStringSet(splitValues(params.BikeTypes)...)

	for _, value := range splitValues(params.TimesOfDay) {
		bucket, err := trip.ParseTimeOfDay(value)
		if err != nil {
			return Selection{}, fmt.Errorf("%w: %s", dataErrors.ErrInvalidSelection, err.Error())
		}
		if selection.TimesOfDay == nil {
			selection.TimesOfDay = make(map[trip.TimeOfDay]bool)
		}
		selection.TimesOfDay[bucket] = true
	}

	return selection, nil
}

// Matches returns true if the trip passes every predicate
func (s Selection) Matches(t trip.Trip) bool {
	if s.From != nil && t.Date.Format(dateLayout) < s.From.Format(dateLayout) {
		return false
	}
	if s.To != nil && t.Date.Format(dateLayout) > s.To.Format(dateLayout) {
		return false
	}
	if len(s.UserTypes) > 0 && !s.UserTypes.Contains(t.UserTypeKey()) {
		return false
	}
	if len(s.BikeTypes) > 0 && !s.BikeTypes.Contains(t.BikeTypeKey()) {
		return false
	}
	if len(s.TimesOfDay) > 0 && !s.TimesOfDay[t.TimeOfDay] {
		return false
	}
	return true
}

// IsEmpty returns true if the selection accepts every trip
func (s Selection) IsEmpty() bool {
	return s.From == nil && s.To == nil && len(s.UserTypes) == 0 && len(s.BikeTypes) == 0 && len(s.TimesOfDay) == 0
}

// String returns a stable description of the selection, used in logs
func (s Selection) String() string {
	var parts []string
	if s.From != nil {
		parts = append(parts, "from="+s.From.Format(dateLayout))
	}
	if s.To != nil {
		parts = append(parts, "to="+s.To.Format(dateLayout))
	}
	if len(s.UserTypes) > 0 {
		parts = append(parts, "user_types="+strings.Join(s.UserTypes.Sorted(), ","))
	}
	if len(s.BikeTypes) > 0 {
		parts = append(parts, "bike_types="+strings.Join(s.BikeTypes.Sorted(), ","))
	}
	if len(s.TimesOfDay) > 0 {
		var buckets []string
		for bucket := range s.TimesOfDay {
			buckets = append(buckets, bucket.String())
		}
		sort.Strings(buckets)
		parts = append(parts, "time_of_day="+strings.Join(buckets, ","))
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", dataErrors.ErrInvalidSelection, value)
	}
	return &date, nil
}

func splitValues(values []string) []string {
	var result []string
	for _, value := range values {
		result = append(result, utils.SplitList(value)...)
	}
	return result
}
