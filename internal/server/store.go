package server

import (
	"context"
	"sync"

	"github.com/jonathan/resume-tailor/internal/types"
)

// MemoryStore is a process-local Store used when no database is configured
type MemoryStore struct {
	mu       sync.RWMutex
	resumes  map[string]types.Resume
	tailored map[string]types.TailoredResume
	latest   map[string]string // Resume ID -> newest tailored ID
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		resumes:  make(map[string]types.Resume),
		tailored: make(map[string]types.TailoredResume),
		latest:   make(map[string]string),
	}
}

// SaveResume stores a copy of resume
func (m *MemoryStore) SaveResume(_ context.Context, resume *types.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumes[resume.ID] = *resume
	return nil
}

// GetResume returns the resume or nil
func (m *MemoryStore) GetResume(_ context.Context, id string) (*types.Resume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resume, ok := m.resumes[id]
	if !ok {
		return nil, nil
	}
	return &resume, nil
}

// SaveTailoredResume stores a copy of tailored
func (m *MemoryStore) SaveTailoredResume(_ context.Context, tailored *types.TailoredResume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tailored[tailored.ID] = *tailored
	if tailored.ResumeID == "" {
		return nil
	}
	if prev, ok := m.tailored[m.latest[tailored.ResumeID]]; !ok || !tailored.CreatedAt.Before(prev.CreatedAt) {
		m.latest[tailored.ResumeID] = tailored.ID
	}
	return nil
}

// GetTailoredResume returns the tailored result or nil
func (m *MemoryStore) GetTailoredResume(_ context.Context, id string) (*types.TailoredResume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tailored, ok := m.tailored[id]
	if !ok {
		return nil, nil
	}
	return &tailored, nil
}

// GetLatestTailoredResume returns the newest result for a resume or nil
func (m *MemoryStore) GetLatestTailoredResume(_ context.Context, resumeID string) (*types.TailoredResume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tailored, ok := m.tailored[m.latest[resumeID]]
	if !ok {
		return nil, nil
	}
	return &tailored, nil
}
