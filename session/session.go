package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"bikeshare/aggregator"
	"bikeshare/domain/entities/trip"
	"bikeshare/filter"
	"bikeshare/loader"
	tripWorker "bikeshare/workers/trip"
)

const sessionStr = "session"

// LoadFunc reads the raw dataset of a session
type LoadFunc func() (*loader.Dataset, error)

// Snapshot the outputs of one load. It is never modified once built
// + ID: identifier of the load
// + LoadedAt: moment in which the load finished
// + Dataset: source and availability of the raw data
// + RawCount: amount of raw trips read
// + Report: result of the validity filter
// + Trips: cleaned trips
// + Tables: precomputed tables over Trips
type Snapshot struct {
	ID       string
	LoadedAt time.Time
	Dataset  loader.Dataset
	RawCount int
	Report   tripWorker.FilterReport
	Trips    []trip.Trip
	Tables   *aggregator.Tables
}

// Info public description of the current snapshot
type Info struct {
	ID           string    `json:"session_id"`
	Loaded       bool      `json:"loaded"`
	LoadedAt     time.Time `json:"loaded_at"`
	Source       string    `json:"source"`
	Available    bool      `json:"available"`
	RawCount     int       `json:"raw_count"`
	CleanedCount int       `json:"cleaned_count"`
	DroppedCount int       `json:"dropped_count"`
}

// Session holds the dataset of the service and the tables derived from it. Reload is the
// only way to change them
type Session struct {
	load     LoadFunc
	options  aggregator.Options
	mu       sync.RWMutex
	snapshot *Snapshot
}

func New(load LoadFunc, options aggregator.Options) *Session {
	return &Session{
		load:    load,
		options: options,
		snapshot: &Snapshot{
			Trips:  []trip.Trip{},
			Tables: aggregator.Build(nil, options),
		},
	}
}

// NewFromLoader returns a Session that reads its data with l
func NewFromLoader(l *loader.Loader, options aggregator.Options) *Session {
	return New(l.Load, options)
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", sessionStr, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", sessionStr, method, message)
}

// Load runs the pipeline for the first time
func (s *Session) Load() (Info, error) {
	return s.Reload()
}

// Reload runs load, derive, filter and aggregate and replaces the current snapshot. If any
// step fails the current snapshot is kept
func (s *Session) Reload() (Info, error) {
	dataset, err := s.load()
	if err != nil {
		log.Error(getLogMessage("Reload", "error loading dataset, keeping previous data", err))
		return s.Info(), err
	}

	derived := tripWorker.DeriveAll(dataset.Records)
	trips, report := tripWorker.FilterValid(derived)
	tables := aggregator.Build(trips, s.options)

	snapshot := &Snapshot{
		ID:       uuid.NewString(),
		LoadedAt: time.Now(),
		Dataset:  loader.Dataset{Source: dataset.Source, Available: dataset.Available},
		RawCount: len(dataset.Records),
		Report:   report,
		Trips:    trips,
		Tables:   tables,
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	log.Info(getLogMessage("Reload", fmt.Sprintf("session %s ready: %v raw trips, %v cleaned, %v dropped", snapshot.ID, snapshot.RawCount, report.Kept, report.GetDropped()), nil))
	return snapshot.info(), nil
}

// Snapshot returns the current snapshot
func (s *Session) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Trips returns the cleaned trips. Callers must not modify them
func (s *Session) Trips() []trip.Trip {
	return s.Snapshot().Trips
}

// Tables returns the tables computed over every cleaned trip
func (s *Session) Tables() *aggregator.Tables {
	return s.Snapshot().Tables
}

// Filtered returns the cleaned trips matched by selection
func (s *Session) Filtered(selection filter.Selection) []trip.Trip {
	return filter.Apply(s.Trips(), selection)
}

func (s *Session) Info() Info {
	return s.Snapshot().info()
}

func (snapshot *Snapshot) info() Info {
	return Info{
		ID:           snapshot.ID,
		Loaded:       snapshot.ID != "",
		LoadedAt:     snapshot.LoadedAt,
		Source:       snapshot.Dataset.Source,
		Available:    snapshot.Dataset.Available,
		RawCount:     snapshot.RawCount,
		CleanedCount: len(snapshot.Trips),
		DroppedCount: snapshot.Report.GetDropped(),
	}
}
