package repositories

import (
	"encoding/json"
	"event-market/infrastructure/rest"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type recordedCall struct {
	Method string
	Path   string
	Body   map[string]any
}

// fakeBackend answers every call with the status and body registered for
// "METHOD /path" and records what it received.
type fakeBackend struct {
	mu        sync.Mutex
	calls     []recordedCall
	responses map[string]fakeResponse
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *rest.Client) {
	backend := &fakeBackend{responses: map[string]fakeResponse{}}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)
	return backend, rest.NewClient(server.URL, time.Second, slog.Default())
}

func (f *fakeBackend) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = fakeResponse{status: status, body: body}
}

func (f *fakeBackend) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{Method: r.Method, Path: r.URL.Path, Body: body})
	response, ok := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(response.status)
	_, _ = w.Write([]byte(response.body))
}
