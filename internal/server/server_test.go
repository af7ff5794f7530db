package server

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Sanmeet007/palette-vision/internal/palette"
)

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz", nil, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var got map[string]string
	decodeBody(t, rec, &got)
	if got["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", got["status"], "ok")
	}
}

func TestHealthz_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/healthz", nil, "")

	wantError(t, rec, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func TestServiceInfo(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/", nil, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var got ServiceInfo
	decodeBody(t, rec, &got)
	if got.Name != "palette-vision" {
		t.Errorf("name: got %q, want %q", got.Name, "palette-vision")
	}
	if got.Version == "" {
		t.Error("version should not be empty")
	}
	if len(got.Endpoints) != 3 {
		t.Errorf("endpoint count: got %d, want 3", len(got.Endpoints))
	}
	for _, e := range got.Endpoints {
		if e.Method == "" || e.Path == "" || e.Description == "" {
			t.Errorf("incomplete endpoint entry: %+v", e)
		}
	}
}

func TestUnknownPath(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/nope", nil, "")

	wantError(t, rec, http.StatusNotFound, "Not Found")
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{})

	if s.cfg.Addr != ":8000" {
		t.Errorf("addr: got %q, want %q", s.cfg.Addr, ":8000")
	}
	if s.cfg.MaxDimension != palette.DefaultMaxDimension {
		t.Errorf("max dimension: got %d, want %d", s.cfg.MaxDimension, palette.DefaultMaxDimension)
	}
	if s.cfg.MaxConcurrent < 1 {
		t.Errorf("max concurrent: got %d, want >= 1", s.cfg.MaxConcurrent)
	}
	if s.cfg.Timeout != DefaultTimeout {
		t.Errorf("timeout: got %v, want %v", s.cfg.Timeout, DefaultTimeout)
	}
	if s.logger == nil {
		t.Error("logger should default to a null logger")
	}
	if cap(s.sem) != s.cfg.MaxConcurrent {
		t.Errorf("semaphore capacity: got %d, want %d", cap(s.sem), s.cfg.MaxConcurrent)
	}
}

func TestRunExtraction_QueuesUnderLoad(t *testing.T) {
	s := New(Config{MaxDimension: 50, MaxConcurrent: 1, Timeout: time.Minute})
	data := testImagePNG(t)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.runExtraction(data, palette.Options{})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("extraction %d failed: %v", i, err)
		}
	}
}

func TestStatusRecorder(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}

	rec.WriteHeader(http.StatusTeapot)

	if rec.status != http.StatusTeapot {
		t.Errorf("recorded status: got %d, want %d", rec.status, http.StatusTeapot)
	}
}
