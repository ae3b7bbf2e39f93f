package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mayaweb/udeploy/internal/deployments"
	"github.com/mayaweb/udeploy/internal/packager"
	"github.com/mayaweb/udeploy/internal/platforms"
	"go.uber.org/zap/zaptest"
)

func testFiles() packager.Files {
	return packager.Files{
		"index.html":    {Content: []byte("<h1>hello</h1>"), ContentType: "text/html; charset=utf-8"},
		"assets/app.js": {Content: []byte("console.log(1)"), ContentType: "text/javascript; charset=utf-8"},
	}
}

func testConfig(platform string) deployments.Config {
	return deployments.Config{Platform: platform, ProjectID: "demo1"}
}

// newTestRegistry points every built-in adapter at the fake provider server.
func newTestRegistry(t *testing.T, creds StaticCredentials, server *httptest.Server, publisher Publisher) *Registry {
	t.Helper()

	catalog := platforms.NewRegistry()
	endpoints := map[string]string{}
	if server != nil {
		for _, id := range catalog.IDs() {
			endpoints[id] = server.URL
		}
	}

	config := DefaultConfig()
	config.Endpoints = endpoints

	return New(Deps{
		Platforms:   catalog,
		Credentials: creds,
		Publisher:   publisher,
		Config:      config,
		Logger:      zaptest.NewLogger(t),
	})
}

// unreachable fails the test on any request.
func unreachable(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	t.Cleanup(server.Close)

	return server
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

type stubAdapter struct {
	id      string
	release *Release
	err     error
	panic   bool

	cancelled []string
}

func (s *stubAdapter) Platform() string {
	return s.id
}

func (s *stubAdapter) Deploy(_ context.Context, _ Request) (*Release, error) {
	if s.panic {
		panic("boom")
	}

	return s.release, s.err
}

func (s *stubAdapter) Cancel(_ context.Context, id string) error {
	s.cancelled = append(s.cancelled, id)
	return nil
}

func quote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
