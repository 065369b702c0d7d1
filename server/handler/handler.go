package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bikeshare/aggregator"
	"bikeshare/domain/entities/trip"
	"bikeshare/filter"
	"bikeshare/session"
	dataErrors "bikeshare/workers/errors"
)

const (
	DefaultTripsLimit = 1000
	healthStatusOK    = "ok"
)

// Store the operations of the session used by the API. *session.Session implements it
type Store interface {
	Reload() (session.Info, error)
	Info() session.Info
	Tables() *aggregator.Tables
	Filtered(selection filter.Selection) []trip.Trip
}

// Health body of the health check
type Health struct {
	Status  string    `json:"status"`
	Time    time.Time `json:"time"`
	Version string    `json:"version"`
	Loaded  bool      `json:"loaded"`
}

// TripsResponse body of the trips endpoint
// + Selection: applied filters, "all" if none
// + Count: amount of trips that match the selection
// + Returned: amount of trips in Trips, at most the requested limit
type TripsResponse struct {
	Selection string      `json:"selection"`
	Count     int         `json:"count"`
	Returned  int         `json:"returned"`
	Trips     []trip.Trip `json:"trips"`
}

// TableList body of the table listing
type TableList struct {
	SessionID string   `json:"session_id"`
	Tables    []string `json:"tables"`
}

// TableResponse body of a single table
type TableResponse struct {
	SessionID string `json:"session_id"`
	Table     string `json:"table"`
	Data      any    `json:"data"`
}

// APIHandler serves the session data
type APIHandler struct {
	store   Store
	version string
}

func NewAPIHandler(store Store, version string) *APIHandler {
	return &APIHandler{
		store:   store,
		version: version,
	}
}

// HealthCheck handles GET /v1/ops/health
func (h *APIHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, Health{
		Status:  healthStatusOK,
		Time:    time.Now(),
		Version: h.version,
		Loaded:  h.store.Info().Loaded,
	})
}

// Reload handles POST /v1/ops/reload. The previous data is kept if the reload fails
func (h *APIHandler) Reload(w http.ResponseWriter, _ *http.Request) {
	info, err := h.store.Reload()
	if err != nil {
		WriteError(w, fmt.Errorf("error reloading dataset: %w", err))
		return
	}
	WriteJSON(w, http.StatusOK, info)
}

// SessionInfo handles GET /v1/session
func (h *APIHandler) SessionInfo(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.Info())
}

// Trips handles GET /v1/trips
func (h *APIHandler) Trips(w http.ResponseWriter, r *http.Request) {
	selection, err := SelectionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	limit, err := limitFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	trips := h.store.Filtered(selection)
	returned := trips
	if len(returned) > limit {
		returned = returned[:limit]
	}

	WriteJSON(w, http.StatusOK, TripsResponse{
		Selection: selection.String(),
		Count:     len(trips),
		Returned:  len(returned),
		Trips:     returned,
	})
}

// SelectionFromRequest builds the selection from the query parameters from, to, user_type,
// bike_type and time_of_day. List parameters can be repeated or comma separated
func SelectionFromRequest(r *http.Request) (filter.Selection, error) {
	query := r.URL.Query()
	return filter.NewSelection(filter.SelectionParams{
		From:       query.Get("from"),
		To:         query.Get("to"),
		UserTypes:  query["user_type"],
		BikeTypes:  query["bike_type"],
		TimesOfDay: query["time_of_day"],
	})
}

func limitFromRequest(r *http.Request) (int, error) {
	value := r.URL.Query().Get("limit")
	if value == "" {
		return DefaultTripsLimit, nil
	}

	limit, err := strconv.Atoi(value)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("%w: invalid limit %q", dataErrors.ErrInvalidSelection, value)
	}
	return limit, nil
}
