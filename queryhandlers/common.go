package queryhandlers

import (
	"sort"

	"bikeshare/domain/business/describe"
	"bikeshare/domain/entities/trip"
)

const (
	MaxChartDurationMinutes = 120.0
	MaxChartDistanceKm      = 10.0
)

// CategoryCount amount of rides of a category and its share of the total
type CategoryCount struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// BoxStats statistics of a box plot for a user type
type BoxStats struct {
	UserType string `json:"user_type"`
	describe.Summary
}

// Percentage returns part over total as a percentage, 0 when total is 0
func Percentage(part int, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

// CountBy counts trips by key and returns the categories ordered by count desc and name asc
func CountBy(trips []trip.Trip, key func(trip.Trip) string) []CategoryCount {
	counts := make(map[string]int)
	for idx := range trips {
		counts[key(trips[idx])]++
	}

	categories := make([]CategoryCount, 0, len(counts))
	for name, count := range counts {
		categories = append(categories, CategoryCount{Name: name, Count: count, Percentage: Percentage(count, len(trips))})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Name < categories[j].Name
	})
	return categories
}

// BoxStatsByUserType describes value for each user type
func BoxStatsByUserType(trips []trip.Trip, userTypes []string, value func(trip.Trip) float64) []BoxStats {
	values := make(map[string][]float64)
	for idx := range trips {
		userType := trips[idx].UserTypeKey()
		values[userType] = append(values[userType], value(trips[idx]))
	}

	stats := make([]BoxStats, 0, len(userTypes))
	for _, userType := range userTypes {
		stats = append(stats, BoxStats{UserType: userType, Summary: describe.Describe(values[userType])})
	}
	return stats
}

// ShortRides keeps the rides that last MaxChartDurationMinutes or less
func ShortRides(t trip.Trip) bool {
	return t.DurationMinutes <= MaxChartDurationMinutes
}
