package errors

import "errors"

var (
	ErrInvalidTripData    = errors.New("invalid trip data")
	ErrMissingColumn      = errors.New("missing required column")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrUnsupportedFormat  = errors.New("unsupported dataset format")
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	ErrMalformedDataset   = errors.New("malformed dataset")
	ErrInvalidSelection   = errors.New("invalid selection")
)
