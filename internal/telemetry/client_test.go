package telemetry

import (
	"runtime"
	"sync"
	"testing"

	"github.com/posthog/posthog-go"
)

// mockEnqueuer captures events for testing.
type mockEnqueuer struct {
	mu     sync.Mutex
	events []posthog.Capture
	closed bool
}

func (m *mockEnqueuer) Enqueue(msg posthog.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if capture, ok := msg.(posthog.Capture); ok {
		m.events = append(m.events, capture)
	}
	return nil
}

func (m *mockEnqueuer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockEnqueuer) getEvents() []posthog.Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]posthog.Capture, len(m.events))
	copy(result, m.events)
	return result
}

func TestPostHogClient_TrackTaskCreated(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClientWithEnqueuer(mock, &Config{Enabled: true, AnonymousID: "anon-1"}, "0.3.0")

	client.Track(EventTaskCreated, Properties{
		"space_id":   "S1",
		"has_sprint": true,
	})

	events := mock.getEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	event := events[0]
	if event.Event != EventTaskCreated {
		t.Errorf("event name = %q, want %q", event.Event, EventTaskCreated)
	}
	if event.DistinctId != "anon-1" {
		t.Errorf("distinct_id = %q, want anon-1", event.DistinctId)
	}
	if event.Properties["space_id"] != "S1" || event.Properties["has_sprint"] != true {
		t.Errorf("custom properties missing: %v", event.Properties)
	}
	if event.Properties["os"] != runtime.GOOS {
		t.Errorf("os = %v, want %q", event.Properties["os"], runtime.GOOS)
	}
	if event.Properties["taskpilot_version"] != "0.3.0" {
		t.Errorf("taskpilot_version = %v", event.Properties["taskpilot_version"])
	}
	if event.Properties["$process_person_profile"] != false {
		t.Error("person profiles must be disabled")
	}
}

func TestPostHogClient_Disabled(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClientWithEnqueuer(mock, &Config{Enabled: false, AnonymousID: "anon"}, "0.3.0")

	client.Track(EventSuggestionGenerated, nil)

	if n := len(mock.getEvents()); n != 0 {
		t.Errorf("expected 0 events when disabled, got %d", n)
	}
}

func TestPostHogClient_NilConfig(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClientWithEnqueuer(mock, nil, "0.3.0")

	client.Track(EventSuggestionGenerated, nil)

	if n := len(mock.getEvents()); n != 0 {
		t.Errorf("expected 0 events with nil config, got %d", n)
	}
}

func TestPostHogClient_Close(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClientWithEnqueuer(mock, NewConfig(true), "0.3.0")

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("underlying client should be closed")
	}
}

func TestPostHogClient_Concurrent(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClientWithEnqueuer(mock, NewConfig(true), "0.3.0")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			client.Track(EventTaskCreated, Properties{"iteration": n})
		}(i)
	}
	wg.Wait()

	if n := len(mock.getEvents()); n != 50 {
		t.Errorf("expected 50 events, got %d", n)
	}
}

func TestNew_WithoutKeyIsNoop(t *testing.T) {
	client, err := New("", "", "0.3.0")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := client.(*NoopClient); !ok {
		t.Fatalf("New() = %T, want *NoopClient", client)
	}
	client.Track(EventTaskCreated, nil)
	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewConfig(t *testing.T) {
	a, b := NewConfig(true), NewConfig(true)
	if a.AnonymousID == "" || a.AnonymousID == b.AnonymousID {
		t.Errorf("anonymous IDs should be random and non-empty: %q %q", a.AnonymousID, b.AnonymousID)
	}
	var nilCfg *Config
	if nilCfg.IsEnabled() {
		t.Error("nil config must be disabled")
	}
}

func TestPostHogClient_TrackAfterClose(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClientWithEnqueuer(mock, NewConfig(true), "0.3.0")

	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	client.Track(EventTaskCreated, nil)
	if err := client.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if n := len(mock.getEvents()); n != 0 {
		t.Errorf("expected 0 events after Close, got %d", n)
	}
}
