package monitor

import (
	"context"
	"errors"
	"sync"

	"github.com/aleister1102/companywatch/internal/models"
)

const testCompany = "01234567"

type fakeFetcher struct {
	mu          sync.Mutex
	officers    []models.Record
	filings     []models.Record
	officersErr error
	filingsErr  error
	calls       int
}

func (f *fakeFetcher) FetchOfficers(_ context.Context, _ string) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.officersErr != nil {
		return nil, f.officersErr
	}
	return f.officers, nil
}

func (f *fakeFetcher) FetchFilingHistory(_ context.Context, _ string) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.filingsErr != nil {
		return nil, f.filingsErr
	}
	return f.filings, nil
}

type memoryStore struct {
	mu        sync.Mutex
	snapshots map[string]models.Snapshot
	loadErr   error
	saveErr   error
	saves     int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{snapshots: make(map[string]models.Snapshot)}
}

func (s *memoryStore) Load(_ context.Context, entityID string) (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if snap, ok := s.snapshots[entityID]; ok {
		return snap, nil
	}
	return models.NewSnapshot(), nil
}

func (s *memoryStore) Save(_ context.Context, entityID string, snapshot models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.snapshots[entityID] = snapshot
	return nil
}

func (s *memoryStore) Close() error { return nil }

type recordingPresenter struct {
	mu         sync.Mutex
	changes    []models.RenderedChange
	heartbeats []models.Heartbeat
}

func (p *recordingPresenter) PresentChange(_ context.Context, c models.RenderedChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, c)
	return nil
}

func (p *recordingPresenter) PresentHeartbeat(_ context.Context, hb models.Heartbeat) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.heartbeats = append(p.heartbeats, hb)
	return nil
}

func officer(name, appointed, self string) models.Record {
	return models.Record{"name": name, "appointed_on": appointed, "links": map[string]any{"self": self}}
}

func filing(id, typ, date string) models.Record {
	return models.Record{"transaction_id": id, "type": typ, "date": date}
}

var errUpstream = errors.New("upstream unavailable")
