package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgview/pkg/errors"
	"github.com/matzehuels/pkgview/pkg/observability"
	"github.com/matzehuels/pkgview/pkg/registry"
)

func testStore() *registry.MemoryStore {
	return registry.NewMemoryStore(
		&registry.PackageRecord{
			Name:     "react",
			DistTags: map[string]string{"latest": "18.2.0", "next": "19.0.0-rc.1"},
			Versions: map[string]registry.Manifest{
				"17.0.2":      {Description: "old"},
				"18.2.0":      {Description: "React", Homepage: "https://react.dev/", Repository: registry.GitRepository{URL: "git+https://github.com/facebook/react.git"}},
				"19.0.0-rc.1": {Homepage: "::bad::"},
			},
		},
		&registry.PackageRecord{
			Name:     "@babel/core",
			DistTags: map[string]string{"latest": "7.24.0"},
			Versions: map[string]registry.Manifest{
				"7.24.0": {Repository: registry.OtherRepository{Kind: "svn", URL: "https://github.com/babel/babel"}},
			},
		},
	)
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(testStore(), Options{
		Origin: "https://app.unpkg.com",
		Logger: log.New(io.Discard),
	})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp
}

type headerBody struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Description  string            `json:"description"`
	Versions     []string          `json:"versions"`
	Tags         map[string]string `json:"tags"`
	PathTemplate string            `json:"pathTemplate"`
	Homepage     *struct {
		URL   string `json:"url"`
		Text  string `json:"text"`
		Title string `json:"title"`
	} `json:"homepage"`
	Repository *struct {
		URL  string `json:"url"`
		Text string `json:"text"`
	} `json:"repository"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

func TestGetHeader(t *testing.T) {
	srv := testServer(t)

	var body headerBody
	resp := getJSON(t, srv.URL+"/api/header/react@18.2.0?filename=/index.js", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	if body.Name != "react" || body.Version != "18.2.0" || body.Description != "React" {
		t.Errorf("identity = %+v", body)
	}
	if !slices.Equal(body.Versions, []string{"19.0.0-rc.1", "18.2.0", "17.0.2"}) {
		t.Errorf("Versions = %v", body.Versions)
	}
	if body.Tags["next"] != "19.0.0-rc.1" {
		t.Errorf("Tags = %v", body.Tags)
	}
	if body.PathTemplate != "/react@%s/files/index.js" {
		t.Errorf("PathTemplate = %q", body.PathTemplate)
	}
	if body.URL != "https://app.unpkg.com/react@18.2.0/files/index.js" {
		t.Errorf("URL = %q", body.URL)
	}
	if body.Homepage == nil || body.Homepage.Text != "react.dev" {
		t.Errorf("Homepage = %+v", body.Homepage)
	}
	if body.Repository == nil || body.Repository.Text != "facebook/react" || body.Repository.URL != "https://github.com/facebook/react" {
		t.Errorf("Repository = %+v", body.Repository)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestGetHeaderResolvesTags(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		path    string
		version string
	}{
		{"/api/header/react", "18.2.0"},
		{"/api/header/react@latest", "18.2.0"},
		{"/api/header/react@next", "19.0.0-rc.1"},
		{"/api/header/@babel/core", "7.24.0"},
		{"/api/header/@babel/core@7.24.0", "7.24.0"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var body headerBody
			resp := getJSON(t, srv.URL+tt.path, &body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if body.Version != tt.version {
				t.Errorf("Version = %q, want %q", body.Version, tt.version)
			}
		})
	}
}

func TestGetHeaderOmitsBadLinks(t *testing.T) {
	srv := testServer(t)

	var body headerBody
	resp := getJSON(t, srv.URL+"/api/header/react@next", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body.Homepage != nil || body.Repository != nil {
		t.Errorf("expected no links, got %+v %+v", body.Homepage, body.Repository)
	}

	body = headerBody{}
	getJSON(t, srv.URL+"/api/header/@babel/core", &body)
	if body.Repository != nil {
		t.Errorf("svn repository should not produce a link: %+v", body.Repository)
	}
	if body.PathTemplate != "/@babel/core@%s/files" {
		t.Errorf("PathTemplate = %q", body.PathTemplate)
	}
}

func TestGetHeaderErrors(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		path   string
		status int
		code   errors.Code
	}{
		{"/api/header/missing", http.StatusNotFound, errors.ErrCodePackageNotFound},
		{"/api/header/react@0.0.1", http.StatusNotFound, errors.ErrCodeVersionNotFound},
		{"/api/header/react@canary", http.StatusNotFound, errors.ErrCodeVersionNotFound},
		{"/api/header/bad%20name", http.StatusBadRequest, errors.ErrCodeInvalidPackage},
		{"/api/header/react?filename=/../../etc/passwd", http.StatusBadRequest, errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var body errorResponse
			resp := getJSON(t, srv.URL+tt.path, &body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
			if body.Message == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestListPackages(t *testing.T) {
	srv := testServer(t)

	var body map[string][]string
	resp := getJSON(t, srv.URL+"/api/packages", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !slices.Equal(body["packages"], []string{"@babel/core", "react"}) {
		t.Errorf("packages = %v", body["packages"])
	}
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)

	var body map[string]string
	resp := getJSON(t, srv.URL+"/healthz", &body)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("healthz = %d %v", resp.StatusCode, body)
	}
}

func TestRequestIDReused(t *testing.T) {
	srv := testServer(t)
	const id = "3f2b8c1e-7d4a-4b9e-8f00-123456789abc"

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(requestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}

	req.Header.Set(requestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(requestIDHeader); got == "not-a-uuid" || got == "" {
		t.Errorf("invalid incoming id should be replaced, got %q", got)
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetResolveHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := testServer(t)
	var body headerBody
	getJSON(t, srv.URL+"/api/header/react", &body)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.resolved) != 1 || hooks.resolved[0] != "react@18.2.0" {
		t.Errorf("resolved = %v", hooks.resolved)
	}
	if len(hooks.statuses) != 1 || hooks.statuses[0] != http.StatusOK {
		t.Errorf("statuses = %v", hooks.statuses)
	}
}

func TestSplitSpec(t *testing.T) {
	tests := []struct {
		in, name, version string
	}{
		{"react", "react", ""},
		{"react@18.2.0", "react", "18.2.0"},
		{"react@", "react", ""},
		{"@babel/core", "@babel/core", ""},
		{"@babel/core@7.0.0", "@babel/core", "7.0.0"},
		{"/react@next/", "react", "next"},
		{"", "", ""},
	}
	for _, tt := range tests {
		name, version := splitSpec(tt.in)
		if name != tt.name || version != tt.version {
			t.Errorf("splitSpec(%q) = %q, %q, want %q, %q", tt.in, name, version, tt.name, tt.version)
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s := New(testStore(), Options{Logger: log.New(io.Discard)})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0", time.Second) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	resolved []string
	statuses []int
}

func (h *recordingHooks) OnResolve(_ context.Context, pkg, version string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err == nil {
		h.resolved = append(h.resolved, pkg+"@"+version)
	}
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}
