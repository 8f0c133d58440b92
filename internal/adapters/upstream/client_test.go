package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/quietfeed/quietfeed/internal/adapters/config"
	"github.com/quietfeed/quietfeed/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestClient(baseURL string) *Client {
	return NewClient(&config.UpstreamConfig{BaseURL: baseURL, Timeout: 2 * time.Second})
}

func TestClient_FetchRaw_Envelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/headlines/raw" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"headlines": [{"hash": "h1", "title": "A"}, {"hash": "h2"}]}`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL).FetchRaw(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["hash"] != "h1" || records[0]["title"] != "A" {
		t.Errorf("unexpected first record: %v", records[0])
	}
}

func TestClient_FetchRaw_BareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"hash": "h1"}]`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL).FetchRaw(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(records) != 1 || records[0]["hash"] != "h1" {
		t.Errorf("unexpected records: %v", records)
	}
}

func TestClient_FetchRaw_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).FetchRaw(context.Background()); err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
}

func TestClient_FetchRaw_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).FetchRaw(context.Background()); err == nil {
		t.Fatal("expected an error for an unparseable body")
	}
}

func TestClient_FetchRaw_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(&config.UpstreamConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	if _, err := client.FetchRaw(context.Background()); err == nil {
		t.Fatal("expected a timeout error")
	}
}
