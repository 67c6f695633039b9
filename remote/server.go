// Package remote serves amino surfaces over HTTP: PNG snapshots on demand
// and a WebSocket per viewer that streams frames out and pointer input in.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/phanxgames/amino"
)

// ErrUnknownAction is returned for a pointer message with an unknown action.
var ErrUnknownAction = errors.New("remote: unknown pointer action")

// Options configures a Server.
type Options struct {
	// FPS is the frame loop rate. Defaults to 60.
	FPS int
	// OriginPatterns lists the origins allowed to open a WebSocket, in
	// coder/websocket pattern syntax. Empty allows same-origin only.
	OriginPatterns []string
}

// Server owns the frame loop of an engine driven by a ManualScheduler. Every
// engine call is made on the goroutine running Run; HTTP handlers and
// clients reach it through Do.
type Server struct {
	engine *amino.Engine
	sched  *amino.ManualScheduler
	hub    *Hub
	opts   Options
	cmds   chan func()
	sent   map[string]uint64 // loop goroutine only
}

func NewServer(engine *amino.Engine, sched *amino.ManualScheduler, opts Options) *Server {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	return &Server{
		engine: engine,
		sched:  sched,
		hub:    NewHub(),
		opts:   opts,
		cmds:   make(chan func()),
		sent:   make(map[string]uint64),
	}
}

// Hub returns the client registry.
func (s *Server) Hub() *Hub { return s.hub }

// Run drives frames until ctx is done, then disconnects every client.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run()
	defer s.hub.Stop()

	t := time.NewTicker(time.Second / time.Duration(s.opts.FPS))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-s.cmds:
			fn()
			s.publish()
		case <-t.C:
			s.sched.RunFrame()
			s.publish()
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to return.
func (s *Server) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case s.cmds <- func() { fn(); close(done) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// publish sends the latest frame of every watched surface that repainted
// since the last send.
func (s *Server) publish() {
	for _, surf := range s.engine.Surfaces() {
		id := surf.ID()
		if surf.Frame() == s.sent[id] || !s.hub.Watching(id) {
			continue
		}
		frame, err := encodeFrame(surf)
		if err != nil {
			continue
		}
		s.sent[id] = surf.Frame()
		s.hub.Broadcast(id, frame)
	}
}

func encodeFrame(surf *amino.Surface) ([]byte, error) {
	if surf.Frame() == 0 {
		surf.Repaint()
	}
	var buf bytes.Buffer
	if err := surf.EncodePNG(&buf); err != nil {
		amino.Logger().Warn("encode frame", "surface", surf.ID(), "error", err)
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// Surfaces lists the registered surfaces.
func (s *Server) Surfaces(ctx context.Context) ([]SurfaceInfo, error) {
	var out []SurfaceInfo
	err := s.Do(ctx, func() {
		for _, surf := range s.engine.Surfaces() {
			out = append(out, SurfaceInfo{
				ID:     surf.ID(),
				Width:  surf.Width(),
				Height: surf.Height(),
				Frame:  surf.Frame(),
			})
		}
	})
	return out, err
}

// FramePNG encodes the current raster of surface id.
func (s *Server) FramePNG(ctx context.Context, id string) ([]byte, error) {
	var frame []byte
	var ferr error
	err := s.Do(ctx, func() {
		surf, err := s.engine.Surface(id)
		if err != nil {
			ferr = err
			return
		}
		frame, ferr = encodeFrame(surf)
	})
	if err != nil {
		return nil, err
	}
	return frame, ferr
}

// Pointer feeds one pointer action into surface id.
func (s *Server) Pointer(ctx context.Context, id string, p PointerPayload) error {
	var perr error
	err := s.Do(ctx, func() {
		surf, err := s.engine.Surface(id)
		if err != nil {
			perr = err
			return
		}
		switch p.Action {
		case ActionDown:
			surf.PointerDown(p.X, p.Y)
		case ActionMove:
			surf.PointerMove(p.X, p.Y)
		case ActionUp:
			surf.PointerUp(p.X, p.Y)
		case ActionCancel:
			surf.PointerCancel()
		default:
			perr = fmt.Errorf("%w %q", ErrUnknownAction, p.Action)
		}
	})
	if err != nil {
		return err
	}
	return perr
}

// welcome sends the surface size and current frame to a new client before
// it joins the broadcast.
func (s *Server) welcome(ctx context.Context, c *Client) error {
	var werr error
	err := s.Do(ctx, func() {
		surf, err := s.engine.Surface(c.SurfaceID)
		if err != nil {
			werr = err
			return
		}
		payload, _ := json.Marshal(WelcomePayload{Width: surf.Width(), Height: surf.Height()})
		c.Send(&Message{Type: TypeWelcome, SurfaceID: c.SurfaceID, ClientID: c.ClientID, Payload: payload})
		frame, err := encodeFrame(surf)
		if err != nil {
			werr = err
			return
		}
		c.queue(outbound{binary: true, data: frame})
		s.sent[surf.ID()] = surf.Frame()
	})
	if err != nil {
		return err
	}
	return werr
}
