package clickup

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeClickUp serves canned JSON per "METHOD /path" (query ignored) and
// records every call.
type fakeClickUp struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]fakeRoute
	calls  []string
	bodies map[string][]byte
	auth   []string
}

type fakeRoute struct {
	status int
	body   any
}

func newFakeClickUp(t *testing.T) *fakeClickUp {
	return &fakeClickUp{t: t, routes: map[string]fakeRoute{}, bodies: map[string][]byte{}}
}

func (f *fakeClickUp) on(method, path string, status int, body any) {
	f.routes[method+" "+path] = fakeRoute{status: status, body: body}
}

func (f *fakeClickUp) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.bodies[key] = body
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	route, ok := f.routes[key]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"err":"Route not found","ECODE":"APP_001"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(route.status)
	if route.body != nil {
		_ = json.NewEncoder(w).Encode(route.body)
	}
}

func (f *fakeClickUp) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == method+" "+path {
			n++
		}
	}
	return n
}

func (f *fakeClickUp) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeClickUp) body(method, path string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out map[string]any
	if err := json.Unmarshal(f.bodies[method+" "+path], &out); err != nil {
		f.t.Fatalf("decode request body of %s %s: %v", method, path, err)
	}
	return out
}

// newTestService starts fake and returns a Service without retries.
func newTestService(t *testing.T, fake *fakeClickUp, opts ...ServiceOption) *Service {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "pk_test", WithMaxRetries(0))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(client, append([]ServiceOption{WithLogger(logger)}, opts...)...)
}

func lists(items ...List) map[string]any {
	if items == nil {
		items = []List{}
	}
	return map[string]any{"lists": items}
}

func folders(items ...Folder) map[string]any {
	if items == nil {
		items = []Folder{}
	}
	return map[string]any{"folders": items}
}
