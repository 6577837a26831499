package llm

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// MockResponse is one queued answer of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error

	// Truncated reports the answer as cut off by the token limit.
	Truncated bool
}

// MockProvider answers from a FIFO queue and keeps every request in Calls.
// Queued content goes through the same truncation and schema checks as a
// vendor completion. An exhausted queue yields *ErrProviderUnavailable unless
// placeholders are enabled.
type MockProvider struct {
	mu           sync.Mutex
	queue        []MockResponse
	placeholders bool
	Calls        []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// WithPlaceholders makes an exhausted queue answer with Placeholder(req), so
// the provider works offline with any schema.
func (m *MockProvider) WithPlaceholders() *MockProvider {
	m.mu.Lock()
	m.placeholders = true
	m.mu.Unlock()
	return m
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)

	var next MockResponse
	switch {
	case len(m.queue) > 0:
		next = m.queue[0]
		m.queue = m.queue[1:]
	case m.placeholders:
		next = MockResponse{Content: Placeholder(req)}
	default:
		return nil, &ErrProviderUnavailable{}
	}
	if next.Err != nil {
		return nil, next.Err
	}

	stop := StopEnd
	if next.Truncated {
		stop = StopMaxTokens
	}
	return finish(req, completion{
		text:  string(next.Content),
		usage: next.Usage,
		model: m.ModelID(),
		stop:  stop,
	})
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another answer.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	m.queue = append(m.queue, resp)
	m.mu.Unlock()
}

// CallCount is len(Calls) under the lock.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Placeholder builds the smallest answer that satisfies req.Schema: every
// property is present, strings name their property, enums take their first
// value. Without a schema it is a JSON string.
func Placeholder(req Request) json.RawMessage {
	if req.Schema == nil {
		return json.RawMessage(`"mock answer"`)
	}
	b, err := json.Marshal(placeholder(req.Schema.Name, req.Schema.Definition))
	if err != nil {
		return json.RawMessage(`null`)
	}
	return b
}

func placeholder(name string, def map[string]any) any {
	if enum := anySlice(def["enum"]); len(enum) > 0 {
		return enum[0]
	}
	switch def["type"] {
	case "object":
		obj := map[string]any{}
		props, _ := def["properties"].(map[string]any)
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sub, _ := props[k].(map[string]any)
			obj[k] = placeholder(k, sub)
		}
		return obj
	case "array":
		items, _ := def["items"].(map[string]any)
		return []any{placeholder(name, items)}
	case "integer", "number":
		return 0
	case "boolean":
		return false
	case "null":
		return nil
	default:
		return "mock " + name
	}
}

// anySlice accepts the []any and []string literals schema definitions use.
func anySlice(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case []string:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out
	}
	return nil
}
