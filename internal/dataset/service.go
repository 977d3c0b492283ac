package dataset

import (
	"context"
	"sync"
	"time"

	"pgtadash/adapters/spreadsheet"
	"pgtadash/domain/table"
	"pgtadash/internal/config"
	"pgtadash/internal/errors"
	"pgtadash/internal/logging"
	"pgtadash/internal/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Service owns the process-wide record table. The spreadsheet is read once,
// on first access; every later call returns the cached table without touching
// the file. Invalidation is restart-only, except for Reset which exists as a
// testing hook.
type Service struct {
	filePath string
	sheet    string
	log      *logging.Logger

	group singleflight.Group

	mu       sync.RWMutex
	cached   *table.Table
	loadID   string
	loadedAt time.Time
}

// LoadStatus describes the state of the cached table.
type LoadStatus struct {
	Loaded   bool      `json:"loaded"`
	LoadID   string    `json:"load_id,omitempty"`
	Rows     int       `json:"rows"`
	Columns  int       `json:"columns"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
}

// NewService creates a dataset service for the configured source file.
func NewService(cfg config.DataConfig, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Default
	}
	return &Service{filePath: cfg.FilePath, sheet: cfg.Sheet, log: log}
}

// Load returns the record table, reading the spreadsheet on first call.
// Concurrent first callers are coalesced so the file is read exactly once.
func (s *Service) Load(ctx context.Context) (*table.Table, error) {
	s.mu.RLock()
	if s.cached != nil {
		t := s.cached
		s.mu.RUnlock()
		return t, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		return s.loadOnce()
	})
	if err != nil {
		return nil, err
	}
	return v.(*table.Table), nil
}

func (s *Service) loadOnce() (*table.Table, error) {
	s.mu.RLock()
	if s.cached != nil {
		t := s.cached
		s.mu.RUnlock()
		return t, nil
	}
	s.mu.RUnlock()

	start := time.Now()
	s.log.Info("[dataset] loading %s", s.filePath)

	reader := spreadsheet.NewReader(s.filePath, s.sheet)
	t, err := reader.Read()
	if err != nil {
		s.log.Error("[dataset] load failed: %v", err)
		return nil, errors.LoadFailed("failed to load dataset", err)
	}

	elapsed := time.Since(start)
	metrics.DatasetLoadSeconds.Observe(elapsed.Seconds())
	metrics.DatasetRows.Set(float64(t.Len()))

	s.mu.Lock()
	s.cached = t
	s.loadID = uuid.NewString()
	s.loadedAt = time.Now()
	loadID := s.loadID
	s.mu.Unlock()

	s.log.Info("[dataset] loaded %d rows, %d columns in %.2fms (load %s)",
		t.Len(), len(t.Columns), float64(elapsed.Nanoseconds())/1e6, loadID)
	return t, nil
}

// Reset clears the cached table so the next Load re-reads the file.
func (s *Service) Reset() {
	s.mu.Lock()
	s.cached = nil
	s.loadID = ""
	s.loadedAt = time.Time{}
	s.mu.Unlock()
	metrics.DatasetRows.Set(0)
	s.log.Debug("[dataset] cache reset")
}

// Status reports the cache state without triggering a load.
func (s *Service) Status() LoadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := LoadStatus{Loaded: s.cached != nil, LoadID: s.loadID, LoadedAt: s.loadedAt}
	if s.cached != nil {
		status.Rows = s.cached.Len()
		status.Columns = len(s.cached.Columns)
	}
	return status
}
