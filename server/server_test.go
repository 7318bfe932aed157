package server

import (
	"context"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stock-pulse/api"
	"stock-pulse/catalog"
	"stock-pulse/chart"
	"stock-pulse/loader"
	"stock-pulse/search"
	"stock-pulse/site"
	"stock-pulse/ticker"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, addr string) *Server {
	t.Helper()
	ds, err := loader.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	cat, err := catalog.Build(ds, chart.NewGenerator(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	pages, err := site.New(cat, site.Options{Name: "Indian Stock Insights", BaseURL: "https://example.in"})
	if err != nil {
		t.Fatalf("site.New failed: %v", err)
	}
	handler := api.NewHandler(search.NewInMemoryEngine(cat.Stocks()), cat)
	return New(addr, pages, handler, ticker.NewHub(cat))
}

func TestRoutes(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t, "").Handler())
	defer srv.Close()

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/health", http.StatusOK, "OK"},
		{"/", http.StatusOK, "Top Gainers"},
		{"/stocks/itc", http.StatusOK, "ITC Ltd"},
		{"/api/stocks/itc", http.StatusOK, `"symbol":"ITC.NS"`},
		{"/search?q=wipro", http.StatusOK, `"slug":"wipro"`},
		{"/api/indices", http.StatusOK, "NIFTY BANK"},
		{"/metrics", http.StatusOK, "stock_pulse_http_requests_total"},
		{"/missing", http.StatusNotFound, "Page Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatalf("GET failed: %v", err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, resp.StatusCode)
			}
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("Expected body to contain %q", tt.contains)
			}
			if resp.Header.Get(requestIDHeader) == "" {
				t.Errorf("Expected a request id header")
			}
		})
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	h := newTestServer(t, "").Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("Expected abc-123, got %s", got)
	}
}

func TestTickerThroughMiddleware(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t, "").Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/ticker"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg ticker.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if len(msg.Indices) != 4 {
		t.Errorf("Expected 4 indices, got %d", len(msg.Indices))
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	s := newTestServer(t, addr)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/health")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Server did not start: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReportsListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	s := newTestServer(t, l.Addr().String())
	if err := s.Run(context.Background()); err == nil {
		t.Errorf("Expected an error when the address is in use")
	}
}
