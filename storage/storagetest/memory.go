// Package storagetest provides an in-memory Storage for tests.
package storagetest

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

var ErrInjected = errors.New("injected storage failure")

// Memory keeps objects in a map. Setting FailPut or FailDelete makes the
// corresponding call fail with ErrInjected.
type Memory struct {
	BaseURL    string
	FailPut    bool
	FailDelete bool

	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{BaseURL: "https://cdn.test/menu-images", objects: map[string][]byte{}}
}

func (m *Memory) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if m.FailPut {
		return ErrInjected
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	if m.FailDelete {
		return ErrInjected
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *Memory) PublicURL(key string) string {
	return m.BaseURL + "/" + key
}

func (m *Memory) KeyFromURL(url string) (string, bool) {
	prefix := m.BaseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// Keys lists stored object keys
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}

// Get returns an object's bytes
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	return b, ok
}
