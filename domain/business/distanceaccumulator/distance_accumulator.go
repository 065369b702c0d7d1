package distanceaccumulator

import "errors"

var ErrEmptyAccumulator = errors.New("accumulator has no data")

// DistanceAccumulator struct that collects data about the distance and duration of the rides of a group
// + Name: name of the group to collect data, e.g. a user type. Once set, it cannot change
// + Counter: counts the amount of data collected
// + TotalDistance: sum of distances traveled, in km
// + TotalDuration: sum of durations, in minutes
type DistanceAccumulator struct {
	Name          string  `json:"name"`
	Counter       int     `json:"counter"`
	TotalDistance float64 `json:"total_distance"`
	TotalDuration float64 `json:"total_duration"`
}

func NewDistanceAccumulator(name string) *DistanceAccumulator {
	return &DistanceAccumulator{
		Name: name,
	}
}

func (da *DistanceAccumulator) UpdateAccumulator(newDistance float64, newDuration float64) {
	da.Counter += 1
	da.TotalDistance += newDistance
	da.TotalDuration += newDuration
}

func (da *DistanceAccumulator) Merge(distanceAccumulator2 *DistanceAccumulator) (*DistanceAccumulator, error) {
	if da.Name != distanceAccumulator2.Name {
		return nil, errors.New("[DistanceAccumulator] cannot merge two DistanceAccumulator with different names")
	}

	return &DistanceAccumulator{
		Name:          da.Name,
		Counter:       da.Counter + distanceAccumulator2.Counter,
		TotalDistance: da.TotalDistance + distanceAccumulator2.TotalDistance,
		TotalDuration: da.TotalDuration + distanceAccumulator2.TotalDuration,
	}, nil
}

func (da *DistanceAccumulator) GetAverageDistance() (float64, error) {
	if da.Counter == 0 {
		return 0, ErrEmptyAccumulator
	}
	return da.TotalDistance / float64(da.Counter), nil
}

func (da *DistanceAccumulator) GetAverageDuration() (float64, error) {
	if da.Counter == 0 {
		return 0, ErrEmptyAccumulator
	}
	return da.TotalDuration / float64(da.Counter), nil
}

// GetAverageSpeed returns the average distance over the average duration in km/h.
// Zero when there is no duration to divide by.
func (da *DistanceAccumulator) GetAverageSpeed() (float64, error) {
	avgDistance, err := da.GetAverageDistance()
	if err != nil {
		return 0, err
	}

	avgDuration, _ := da.GetAverageDuration()
	if avgDuration == 0 {
		return 0, nil
	}
	return avgDistance / (avgDuration / 60), nil
}
