package e2e

import (
	"bytes"
	"context"
	"event-market/infrastructure/rest"
	"event-market/repositories"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseRestSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration and skips the suite when
// no backend is configured.
func (s *BaseRestSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.BackendURL == "" {
		s.T().Skip("BACKEND_URL not set")
	}
}

// Client returns a REST client logging every call in the test output.
func (s *BaseRestSuite) Client(t *testing.T, name string) *rest.Client {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	httpClient := &http.Client{
		Timeout:   s.Config.Timeout,
		Transport: &loggingTransport{t: t, debugJSON: s.Config.DebugJSON, next: http.DefaultTransport},
	}
	return rest.NewClientWithHTTP(s.Config.BackendURL, httpClient, slog.Default())
}

// Session opens a throwaway in-memory session store.
func (s *BaseRestSuite) Session() repositories.SessionRepository {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	return repositories.NewSessionRepository(db)
}

// Step runs fn with a context bounded by the configured timeout.
func (s *BaseRestSuite) Step(fn func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Config.Timeout)
	defer cancel()
	fn(ctx)
}

type loggingTransport struct {
	t         *testing.T
	debugJSON bool
	next      http.RoundTripper
}

func (l *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	var requestBody []byte
	if l.debugJSON && r.Body != nil {
		requestBody, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(requestBody))
	}

	resp, err := l.next.RoundTrip(r)

	logBuilder := strings.Builder{}
	status := "ERR"
	if resp != nil {
		status = resp.Status
	}
	fmt.Fprintf(&logBuilder, "%s %s [%s] in %v", r.Method, r.URL.Path, status, time.Since(start))
	if l.debugJSON {
		fmt.Fprintln(&logBuilder, "\nREQUEST:")
		fmt.Fprintln(&logBuilder, string(requestBody))
		if err != nil {
			fmt.Fprintln(&logBuilder, "ERROR:", err)
		} else {
			responseBody, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			resp.Body = io.NopCloser(bytes.NewReader(responseBody))
			fmt.Fprintln(&logBuilder, "RESPONSE:")
			fmt.Fprintln(&logBuilder, string(responseBody))
		}
	}
	l.t.Log(logBuilder.String())
	return resp, err
}
