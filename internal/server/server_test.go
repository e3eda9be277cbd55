package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHealthCheck(t *testing.T) {
	srv := New(Config{Port: 0, Dir: t.TempDir()})

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{Port: 0, Dir: t.TempDir(), AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<section id=\"intro\"></section>"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := New(Config{Dir: dir})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `id="intro"`) {
		t.Errorf("unexpected body %q", w.Body.String())
	}

	req = httptest.NewRequest("GET", "/missing.css", nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func dialLiveReload(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/livereload"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Len() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub has %d clients, want %d", h.Len(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLiveReloadBroadcast(t *testing.T) {
	srv := New(Config{Dir: t.TempDir()})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	a := dialLiveReload(t, ts)
	defer a.Close()
	b := dialLiveReload(t, ts)
	defer b.Close()
	waitForClients(t, srv.Hub(), 2)

	if sent := srv.Reload(); sent != 2 {
		t.Errorf("reload reached %d clients, want 2", sent)
	}
	for _, c := range []*websocket.Conn{a, b} {
		c.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := c.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(msg) != ReloadMessage {
			t.Errorf("message = %q, want %q", msg, ReloadMessage)
		}
	}

	a.Close()
	waitForClients(t, srv.Hub(), 1)
}

func TestShutdownClosesClients(t *testing.T) {
	srv := New(Config{Dir: t.TempDir()})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	c := dialLiveReload(t, ts)
	defer c.Close()
	waitForClients(t, srv.Hub(), 1)

	srv.Hub().Close()
	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := c.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("expected going-away close, got %v", err)
	}
	if srv.Hub().Len() != 0 {
		t.Errorf("hub still has %d clients", srv.Hub().Len())
	}

	// Plain routes keep serving.
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz after hub close = %d", resp.StatusCode)
	}
}
