package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hanzimap/internal/loader"
	"hanzimap/internal/selection"
	"hanzimap/internal/service"
)

const testData = `{
  "nodes": [
    {"id": "A", "meaning": "a"},
    {"id": "B", "meaning": "b"},
    {"id": "C", "meaning": "c"},
    {"id": "D", "meaning": "d"}
  ],
  "edges": [
    {"id": "AB", "source": "A", "target": "B"},
    {"id": "BC", "source": "B", "target": "C"}
  ]
}`

func newTestHandler(t *testing.T, load bool) (*GraphHandler, *http.ServeMux) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph_data.json")
	if err := os.WriteFile(path, []byte(testData), 0o644); err != nil {
		t.Fatal(err)
	}
	svc := service.NewGraphService(loader.NewFileSource(path), nil, service.Options{DefaultRoot: "B"})
	if load {
		if err := svc.Load(context.Background()); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}

	h := NewGraphHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/graph", h.GetGraph)
	mux.HandleFunc("GET /api/roots", h.GetRoots)
	mux.HandleFunc("GET /api/visible", h.GetVisible)
	mux.HandleFunc("POST /api/reload", h.Reload)
	return h, mux
}

func serve(mux http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGetGraph(t *testing.T) {
	_, mux := newTestHandler(t, true)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/api/graph", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}

	var doc struct {
		Nodes []struct{ ID string } `json:"nodes"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Nodes) != 4 {
		t.Errorf("expected 4 nodes, got %d", len(doc.Nodes))
	}

	t.Run("not modified", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/graph", nil)
		req.Header.Set("If-None-Match", etag)
		rec := serve(mux, req)
		if rec.Code != http.StatusNotModified {
			t.Errorf("expected 304, got %d", rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Error("expected empty body")
		}
	})

	t.Run("not modified by validator list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/graph", nil)
		req.Header.Set("If-None-Match", `"stale", W/`+etag)
		rec := serve(mux, req)
		if rec.Code != http.StatusNotModified {
			t.Errorf("expected 304, got %d", rec.Code)
		}
	})
}

func TestETagMatch(t *testing.T) {
	const etag = `"abc"`
	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"empty", "", false},
		{"exact", `"abc"`, true},
		{"different", `"xyz"`, false},
		{"wildcard", "*", true},
		{"weak", `W/"abc"`, true},
		{"list", `"xyz", W/"abc"`, true},
		{"list without match", `"xyz", "def"`, false},
		{"unquoted", "abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := etagMatch(tt.header, etag); got != tt.want {
				t.Errorf("etagMatch(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestGetGraphUnavailable(t *testing.T) {
	_, mux := newTestHandler(t, false)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/api/graph", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error == "" || resp.Details == "" {
		t.Errorf("expected error and details, got %+v", resp)
	}
}

func TestGetRoots(t *testing.T) {
	_, mux := newTestHandler(t, true)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/api/roots", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got []selection.Option
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []selection.Option{
		{ID: "A", Label: "A a"},
		{ID: "B", Label: "B b", Selected: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("roots mismatch (-want +got):\n%s", diff)
	}
}

func TestGetRootsEmpty(t *testing.T) {
	_, mux := newTestHandler(t, false)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/api/roots", nil))
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected empty JSON array, got %q", rec.Body.String())
	}
}

func TestGetVisible(t *testing.T) {
	_, mux := newTestHandler(t, true)

	tests := []struct {
		name   string
		query  string
		status int
		want   []string
	}{
		{"root only", "?root=B", http.StatusOK, []string{"B", "C", "BC"}},
		{"with expansion", "?root=B&expand=B", http.StatusOK, []string{"A", "B", "C", "AB", "BC"}},
		{"unknown root", "?root=Z", http.StatusOK, []string{}},
		{"missing root", "", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(mux, httptest.NewRequest(http.MethodGet, "/api/visible"+tt.query, nil))
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.want == nil {
				return
			}

			var got service.VisibleSet
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			ids := make([]string, 0, len(got.Elements))
			for _, el := range got.Elements {
				ids = append(ids, el.Data.ID)
			}
			if diff := cmp.Diff(tt.want, ids); diff != "" {
				t.Errorf("visible mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReload(t *testing.T) {
	_, mux := newTestHandler(t, false)

	rec := serve(mux, httptest.NewRequest(http.MethodPost, "/api/reload", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = serve(mux, httptest.NewRequest(http.MethodGet, "/api/graph", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected graph after reload, got %d", rec.Code)
	}
}
