package durationaccumulator

// DurationAccumulator struct that collects data about the total duration of rides of a group.
// + Counter: counts the amount of data collected
// + TotalDuration: sum of durations of rides, in minutes
// + MemberCounter: amount of those rides made by members
type DurationAccumulator struct {
	Counter       int     `json:"counter"`
	TotalDuration float64 `json:"total_duration"`
	MemberCounter int     `json:"member_counter"`
}

func NewDurationAccumulator() *DurationAccumulator {
	return &DurationAccumulator{}
}

func (da *DurationAccumulator) UpdateAccumulator(duration float64, isMember bool) {
	da.Counter += 1
	da.TotalDuration += duration
	if isMember {
		da.MemberCounter += 1
	}
}

// GetAverageDuration returns the mean duration, zero if nothing was collected
func (da *DurationAccumulator) GetAverageDuration() float64 {
	if da.Counter == 0 {
		return 0
	}
	return da.TotalDuration / float64(da.Counter)
}

// GetMemberRatio returns the fraction of rides made by members, zero if nothing was collected
func (da *DurationAccumulator) GetMemberRatio() float64 {
	if da.Counter == 0 {
		return 0
	}
	return float64(da.MemberCounter) / float64(da.Counter)
}
