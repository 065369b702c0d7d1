package timeseries

import (
	"bikeshare/aggregator"
	"bikeshare/domain/entities/trip"
	"bikeshare/queryhandlers"
)

const (
	handlerType       = "time-series-handler"
	RollingWindowDays = 7
	rollingMinPeriods = 1
)

// RollingAverage moving average of daily rides of each user type
// + Dates: observed dates in ascending order
// + Series: one series per user type, aligned with Dates
type RollingAverage struct {
	Window int             `json:"window"`
	Dates  []string        `json:"dates"`
	Series []RollingSeries `json:"series"`
}

type RollingSeries struct {
	UserType string    `json:"user_type"`
	Values   []float64 `json:"values"`
}

// TimeSeriesHandler builds ride counts over time
type TimeSeriesHandler struct {
	kind queryhandlers.Kind
}

func NewTimeSeriesHandler(kind queryhandlers.Kind) (*TimeSeriesHandler, error) {
	switch kind {
	case queryhandlers.KindHourly, queryhandlers.KindDaily, queryhandlers.KindWeekday,
		queryhandlers.KindMonthly, queryhandlers.KindRollingAverage, queryhandlers.KindUserTypeTotals:
		return &TimeSeriesHandler{kind: kind}, nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, kind)
}

func (tsh *TimeSeriesHandler) GetType() queryhandlers.Kind {
	return tsh.kind
}

func (tsh *TimeSeriesHandler) GenerateResponse(trips []trip.Trip) (any, error) {
	userTypes := aggregator.UserTypes(trips)

	switch tsh.kind {
	case queryhandlers.KindHourly:
		return aggregator.Crosstab(trips, "hour", aggregator.Hours(), userTypes, aggregator.HourOf, aggregator.UserTypeOf), nil
	case queryhandlers.KindDaily:
		return aggregator.Crosstab(trips, "date", nil, userTypes, aggregator.DateOf, aggregator.UserTypeOf), nil
	case queryhandlers.KindWeekday:
		return aggregator.Crosstab(trips, "day_of_week", aggregator.WeekdayNames(), userTypes, aggregator.WeekdayOf, aggregator.UserTypeOf), nil
	case queryhandlers.KindMonthly:
		return aggregator.Crosstab(trips, "month", aggregator.Months(trips), userTypes, aggregator.MonthOf, aggregator.UserTypeOf), nil
	case queryhandlers.KindRollingAverage:
		daily := aggregator.Crosstab(trips, "date", nil, userTypes, aggregator.DateOf, aggregator.UserTypeOf)
		return BuildRollingAverage(daily, RollingWindowDays), nil
	case queryhandlers.KindUserTypeTotals:
		return userTypeTotals(trips, userTypes), nil
	}
	return nil, queryhandlers.UnsupportedKindError(handlerType, tsh.kind)
}

// BuildRollingAverage averages each column over the last window rows. The first rows
// average what is available
func BuildRollingAverage(daily *aggregator.CountTable, window int) RollingAverage {
	rolling := RollingAverage{
		Window: window,
		Dates:  daily.RowKeys(),
		Series: make([]RollingSeries, len(daily.Columns)),
	}

	for columnIdx, userType := range daily.Columns {
		values := make([]float64, len(daily.Rows))
		sum := 0
		for rowIdx := range daily.Rows {
			sum += daily.Rows[rowIdx].Counts[columnIdx]
			if rowIdx >= window {
				sum -= daily.Rows[rowIdx-window].Counts[columnIdx]
			}

			periods := rowIdx + 1
			if periods > window {
				periods = window
			}
			if periods >= rollingMinPeriods {
				values[rowIdx] = float64(sum) / float64(periods)
			}
		}
		rolling.Series[columnIdx] = RollingSeries{UserType: userType, Values: values}
	}
	return rolling
}

func userTypeTotals(trips []trip.Trip, userTypes []string) []queryhandlers.CategoryCount {
	counts := make(map[string]int)
	for idx := range trips {
		counts[trips[idx].UserTypeKey()]++
	}

	totals := make([]queryhandlers.CategoryCount, 0, len(userTypes))
	for _, userType := range userTypes {
		totals = append(totals, queryhandlers.CategoryCount{
			Name:       userType,
			Count:      counts[userType],
			Percentage: queryhandlers.Percentage(counts[userType], len(trips)),
		})
	}
	return totals
}
