package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/italiano/internal/store"
)

type recordingEventRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsEvent(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"explanation":"x","rule":"y"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4},
	})
	repo := &recordingEventRepo{}
	p := WithLogging(mock, ProviderMock, repo, nil)

	ctx := WithPurpose(context.Background(), "explain")
	_, err := p.Generate(ctx, Request{
		System:   "You are an Italian grammar tutor.",
		Messages: []Message{{Role: RoleUser, Content: "Why is it case?"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "mock" || e.Purpose != "explain" || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 4 {
		t.Errorf("tokens = %d/%d, want 12/4", e.InputTokens, e.OutputTokens)
	}
	if !strings.Contains(e.RequestBody, "[user]\nWhy is it case?") {
		t.Errorf("request body = %q", e.RequestBody)
	}
}

func TestLoggingProvider_FailureStillLogged(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	repo := &recordingEventRepo{err: errors.New("disk full")}
	p := WithLogging(mock, ProviderMock, repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil || err.Error() != "boom" {
		t.Fatalf("err = %v, want boom", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage != "boom" {
		t.Errorf("events = %+v", repo.events)
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestTimeoutProvider(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if p.ModelID() != "slow" {
		t.Errorf("model = %q", p.ModelID())
	}

	if WithTimeout(slowProvider{}, 0) != (slowProvider{}) {
		t.Error("zero timeout should return the provider unchanged")
	}
}

func TestLoggingProvider_NilRepoOnlyLogs(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), ProviderMock, nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
}

func TestTranscript(t *testing.T) {
	got := transcript(Request{
		System:   "tutor",
		Messages: []Message{{Role: RoleUser, Content: "perché?"}},
		Schema:   &Schema{Name: "explanation", Definition: map[string]any{"type": "object"}},
	})
	want := "[system]\ntutor\n\n[user]\nperché?\n\n[schema explanation]\n{\n  \"type\": \"object\"\n}"
	if got != want {
		t.Errorf("transcript =\n%s\nwant\n%s", got, want)
	}
}
