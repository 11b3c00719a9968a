package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/input"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/paint"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/gorilla/websocket"
	"gocv.io/x/gocv"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func do(t *testing.T, client *http.Client, method, url, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	s, err := store.New(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	cfg := config.Default()
	clk := &clock{now: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	mouse := input.NewRecorder(nil)
	overlay := &paint.Recorder{}

	ctrl := control.New(control.Options{
		Config:       cfg,
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		Injector:     mouse,
		Sink:         overlay,
		Logger:       logging.Discard(),
		Now:          clk.Now,
	})
	det := detector.NewMockDetector()
	engine := app.New(app.Options{
		Config:     cfg,
		Camera:     capture.NewMockCamera(640, 480),
		Detector:   det,
		Controller: ctrl,
		Settings:   s.Settings(),
		History:    s.Events(),
		Logger:     logging.Discard(),
	})
	if err := engine.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	srv := server.New(server.Config{Controls: engine, Events: engine, Store: s, Logger: logging.Discard()})
	ts := httptest.NewServer(srv)
	defer ts.Close()
	client := ts.Client()

	feed := func(d time.Duration, hands ...detector.HandLandmarks) {
		t.Helper()
		det.SetHands(hands)
		frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
		defer frame.Close()
		if _, err := engine.ProcessFrame(&frame); err != nil {
			t.Fatalf("ProcessFrame() error = %v", err)
		}
		clk.advance(d)
	}

	t.Run("Health", func(t *testing.T) {
		if code := do(t, client, http.MethodGet, ts.URL+"/api/health", "", nil); code != http.StatusOK {
			t.Fatalf("health status = %d", code)
		}
	})

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/events", nil)
	if err != nil {
		t.Fatalf("dial events: %v", err)
	}
	defer ws.Close()

	t.Run("PauseCameraLoop", func(t *testing.T) {
		// Frames are fed by the test from here on.
		var got struct{ Enabled bool }
		if code := do(t, client, http.MethodPut, ts.URL+"/api/enabled", `{"enabled":false}`, &got); code != http.StatusOK {
			t.Fatalf("PUT enabled status = %d", code)
		}
		if got.Enabled || engine.IsEnabled() {
			t.Fatal("engine still enabled")
		}
	})

	t.Run("ClickStreamsOverWebSocket", func(t *testing.T) {
		pinch := detector.Pinch(detector.PointLandmarks(), detector.IndexPIP)
		for i := 0; i < 4; i++ {
			feed(60*time.Millisecond, pinch)
		}

		ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("read event: %v", err)
		}
		var ev struct {
			Kind  string `json:"kind"`
			Track string `json:"track"`
		}
		json.Unmarshal(msg, &ev)
		if ev.Kind != "click" || ev.Track == "" {
			t.Errorf("event = %s", msg)
		}
		if actions := mouse.Actions(); len(actions) != 1 || actions[0] != "click left" {
			t.Errorf("mouse actions = %v", actions)
		}
	})

	t.Run("Status", func(t *testing.T) {
		var status struct {
			Mode    string `json:"mode"`
			Gesture string `json:"gesture"`
			Tracks  int    `json:"tracks"`
			Frames  int    `json:"frames"`
		}
		do(t, client, http.MethodGet, ts.URL+"/api/status", "", &status)
		if status.Mode != "mouse" || status.Tracks != 1 || status.Frames != 4 {
			t.Errorf("status = %+v", status)
		}
	})

	t.Run("SwitchToPaint", func(t *testing.T) {
		if code := do(t, client, http.MethodPut, ts.URL+"/api/mode", `{"mode":"paint"}`, nil); code != http.StatusOK {
			t.Fatalf("PUT mode status = %d", code)
		}
		if ctrl.Mode() != control.ModePaint {
			t.Errorf("controller mode = %q", ctrl.Mode())
		}
		if code := do(t, client, http.MethodPost, ts.URL+"/api/overlay/clear", "", nil); code != http.StatusNoContent {
			t.Errorf("clear status = %d", code)
		}
	})

	t.Run("UpdateSettings", func(t *testing.T) {
		var got struct {
			Settings map[string]string `json:"settings"`
		}
		code := do(t, client, http.MethodPut, ts.URL+"/api/settings", `{"scroll_speed":"30"}`, &got)
		if code != http.StatusOK || got.Settings["scroll_speed"] != "30" {
			t.Fatalf("PUT settings = %d %v", code, got.Settings["scroll_speed"])
		}
		if v, _ := s.Settings().Get("scroll_speed"); v != "30" {
			t.Errorf("persisted scroll_speed = %q", v)
		}

		if code := do(t, client, http.MethodPut, ts.URL+"/api/settings", `{"camera_id":"3"}`, nil); code != http.StatusBadRequest {
			t.Errorf("non-tunable update status = %d, want 400", code)
		}
	})

	engine.Stop()

	t.Run("History", func(t *testing.T) {
		var got struct {
			Events []store.EventRecord `json:"events"`
		}
		do(t, client, http.MethodGet, ts.URL+"/api/events/history", "", &got)
		if len(got.Events) != 1 || got.Events[0].Kind != "click" {
			t.Errorf("history = %+v", got.Events)
		}
	})
}
