package stats

import (
	"context"
	"sync"
)

// MemorySource is an in-memory Source for tests and offline use.
// Set the Err fields to make the corresponding calls fail.
type MemorySource struct {
	mu      sync.Mutex
	records map[Key]Record

	RecordErr error
	ResetErr  error
	ReadErr   error

	RecordCalls []RecordCall
	ResetCalls  []string
	ReadCalls   int
}

// RecordCall captures one RecordAttempt invocation.
type RecordCall struct {
	Key     Key
	Correct bool
}

// NewMemorySource creates a source seeded with records.
func NewMemorySource(seed map[Key]Record) *MemorySource {
	records := make(map[Key]Record, len(seed))
	for k, v := range seed {
		records[k] = v
	}
	return &MemorySource{records: records}
}

func (m *MemorySource) Statistics(_ context.Context) (map[Key]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadCalls++
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	out := make(map[Key]Record, len(m.records))
	for k, v := range m.records {
		out[k] = v
	}
	return out, nil
}

func (m *MemorySource) RecordAttempt(_ context.Context, key Key, correct bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCalls = append(m.RecordCalls, RecordCall{Key: key, Correct: correct})
	if m.RecordErr != nil {
		return m.RecordErr
	}
	r := m.records[key]
	if correct {
		r.Correct++
	} else {
		r.Wrong++
	}
	m.records[key] = r
	return nil
}

func (m *MemorySource) ResetStatistics(_ context.Context, item string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResetCalls = append(m.ResetCalls, item)
	if m.ResetErr != nil {
		return m.ResetErr
	}
	for k := range m.records {
		if k.Item == item {
			delete(m.records, k)
		}
	}
	return nil
}

// Calls returns a copy of the recorded RecordAttempt calls.
func (m *MemorySource) Calls() []RecordCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordCall, len(m.RecordCalls))
	copy(out, m.RecordCalls)
	return out
}

// Resets returns a copy of the recorded ResetStatistics calls.
func (m *MemorySource) Resets() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.ResetCalls))
	copy(out, m.ResetCalls)
	return out
}

// SetRecordErr changes the RecordAttempt failure under the lock.
func (m *MemorySource) SetRecordErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordErr = err
}

// SetResetErr changes the ResetStatistics failure under the lock.
func (m *MemorySource) SetResetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResetErr = err
}
