package cache

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gnames/symbdb/pkg/frame"
)

// Memory is an in-memory Manager.
type Memory struct {
	mu   sync.Mutex
	data map[string]*frame.Frame
	puts map[string]int
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]*frame.Frame),
		puts: make(map[string]int),
	}
}

// Has implements Cache.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// Get implements Cache.
func (m *Memory) Get(key string) (*frame.Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("cache key %s does not exist", key)
	}
	return res, nil
}

// Put implements Cache.
func (m *Memory) Put(key string, f *frame.Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = f
	m.puts[key]++
	return nil
}

// Puts returns how many times a key was stored.
func (m *Memory) Puts(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts[key]
}

// List implements Manager.
func (m *Memory) List() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]string, 0, len(m.data))
	for k := range m.data {
		res = append(res, k)
	}
	slices.Sort(res)
	return res, nil
}

// Delete implements Manager.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close implements Manager.
func (m *Memory) Close() error {
	return nil
}
