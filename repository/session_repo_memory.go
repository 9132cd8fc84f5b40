package repository

import (
	"context"
	"sync"
)

type MemorySessionRepo struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{values: make(map[string]map[string]string)}
}

func (r *MemorySessionRepo) Get(_ context.Context, sessionID, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[sessionID][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (r *MemorySessionRepo) Set(_ context.Context, sessionID, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.values[sessionID]
	if !ok {
		session = make(map[string]string)
		r.values[sessionID] = session
	}
	session[key] = value
	return nil
}

func (r *MemorySessionRepo) Delete(_ context.Context, sessionID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.values[sessionID]; ok {
		delete(session, key)
		if len(session) == 0 {
			delete(r.values, sessionID)
		}
	}
	return nil
}
