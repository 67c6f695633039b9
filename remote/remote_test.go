package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/phanxgames/amino"
)

type fixture struct {
	ts     *httptest.Server
	srv    *Server
	rect   *amino.RectNode
	clicks *atomic.Int32
}

// newFixture serves one 40x30 surface named "main" with a red rect in its
// top-left corner that turns blue when clicked.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	sched := amino.NewManualScheduler()
	eng := amino.NewEngine(amino.Options{Scheduler: sched})
	surf := eng.AddSurface("main", 40, 30)
	rect := amino.NewRect().Set(0, 0, 20, 20).SetFill(amino.Red)
	surf.Add(rect)

	clicks := new(atomic.Int32)
	surf.OnClick(rect, func(amino.Event) {
		clicks.Add(1)
		rect.SetFill(amino.Blue)
	})

	srv := NewServer(eng, sched, Options{FPS: 200})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx)
		close(done)
	}()
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		cancel()
		<-done
		ts.Close()
	})
	return &fixture{ts: ts, srv: srv, rect: rect, clicks: clicks}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Get(f.ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestListSurfaces(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Get(f.ts.URL + "/surfaces")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var list []SurfaceInfo
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].ID != "main" || list[0].Width != 40 || list[0].Height != 30 {
		t.Errorf("surfaces = %+v", list)
	}
}

func TestFramePNG(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"known surface", "/surfaces/main/frame.png", http.StatusOK},
		{"unknown surface", "/surfaces/nope/frame.png", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(f.ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
				t.Errorf("Content-Type = %q, want image/png", ct)
			}
			cfg, err := png.DecodeConfig(resp.Body)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if cfg.Width != 40 || cfg.Height != 30 {
				t.Errorf("size = %dx%d, want 40x30", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestWebSocketUnknownSurface(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Get(f.ts.URL + "/ws/surfaces/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func readFrame(t *testing.T, ctx context.Context, conn *websocket.Conn) image.Image {
	t.Helper()
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if typ != websocket.MessageBinary {
			continue
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		return img
	}
}

func TestWebSocketSession(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, f.ts.URL+"/ws/surfaces/main", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	typ, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	var msg Message
	if typ != websocket.MessageText || json.Unmarshal(data, &msg) != nil || msg.Type != TypeWelcome {
		t.Fatalf("first message = %s", data)
	}
	var welcome WelcomePayload
	if err := json.Unmarshal(msg.Payload, &welcome); err != nil || welcome.Width != 40 || welcome.Height != 30 {
		t.Errorf("welcome = %+v, %v", welcome, err)
	}
	if msg.ClientID == "" {
		t.Error("welcome carries no client id")
	}

	r, g, b, _ := readFrame(t, ctx, conn).At(10, 10).RGBA()
	if r < 0xff00 || g != 0 || b != 0 {
		t.Fatalf("initial frame pixel = %d,%d,%d, want red", r, g, b)
	}

	for _, action := range []string{ActionDown, ActionUp} {
		payload, _ := json.Marshal(PointerPayload{Action: action, X: 5, Y: 5})
		out, _ := json.Marshal(Message{Type: TypePointer, Payload: payload})
		if err := conn.Write(ctx, websocket.MessageText, out); err != nil {
			t.Fatalf("write %s: %v", action, err)
		}
	}

	r, g, b, _ = readFrame(t, ctx, conn).At(10, 10).RGBA()
	if b < 0xff00 || r != 0 || g != 0 {
		t.Errorf("frame after click = %d,%d,%d, want blue", r, g, b)
	}
	if got := f.clicks.Load(); got != 1 {
		t.Errorf("clicks = %d, want 1", got)
	}
}

func TestPointerUnknownAction(t *testing.T) {
	f := newFixture(t)
	err := f.srv.Pointer(context.Background(), "main", PointerPayload{Action: "wiggle"})
	if err == nil {
		t.Fatal("expected error")
	}
	if err := f.srv.Pointer(context.Background(), "nope", PointerPayload{Action: ActionDown}); err == nil {
		t.Error("expected error for unknown surface")
	}
}
