// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/planner/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockIDGenerator returns sequential IDs: "<Prefix>1", "<Prefix>2", ...
// An empty Prefix yields "id-1", "id-2", ...
type MockIDGenerator struct {
	Prefix string
	mu     sync.Mutex
	n      int
}

// NewID returns the next ID in the sequence.
func (m *MockIDGenerator) NewID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	prefix := m.Prefix
	if prefix == "" {
		prefix = "id-"
	}
	return fmt.Sprintf("%s%d", prefix, m.n)
}

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level    string
	EntityID string
	Category string
	Msg      string
}

// MockLogger records every message it receives.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level, entityID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, EntityID: entityID, Category: category, Msg: msg})
}

// Info records an INFO message.
func (m *MockLogger) Info(entityID, category, msg string) {
	m.record("INFO", entityID, category, msg)
}

// Debug records a DEBUG message.
func (m *MockLogger) Debug(entityID, category, msg string) {
	m.record("DEBUG", entityID, category, msg)
}

// Warn records a WARN message.
func (m *MockLogger) Warn(entityID, category, msg string) {
	m.record("WARN", entityID, category, msg)
}

// Error records an ERROR message.
func (m *MockLogger) Error(entityID, category, msg string) {
	m.record("ERROR", entityID, category, msg)
}

// Categories returns the category of every recorded entry, in order.
func (m *MockLogger) Categories() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = e.Category
	}
	return out
}

// MockSeedSource returns a fixed seed, or Err when set.
type MockSeedSource struct {
	Err   error
	Value domain.Seed
	Calls int
}

// Seed implements domain.SeedSource.
func (m *MockSeedSource) Seed(_ time.Time) (domain.Seed, error) {
	m.Calls++
	if m.Err != nil {
		return domain.Seed{}, m.Err
	}
	return m.Value, nil
}
