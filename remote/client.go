package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 16 * 1024
)

type outbound struct {
	binary bool
	data   []byte
}

// Client is one WebSocket viewer of a surface.
type Client struct {
	hub       *Hub
	server    *Server
	conn      *websocket.Conn
	mu        sync.Mutex
	closed    bool
	send      chan outbound
	SurfaceID string
	ClientID  string
}

func NewClient(hub *Hub, server *Server, conn *websocket.Conn, surfaceID, clientID string) *Client {
	return &Client{
		hub:       hub,
		server:    server,
		conn:      conn,
		send:      make(chan outbound, 16),
		SurfaceID: surfaceID,
		ClientID:  clientID,
	}
}

// ReadPump turns pointer messages into surface input until the connection
// closes.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "client", c.ClientID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "client", c.ClientID)
			c.sendError("invalid message")
			continue
		}
		c.handleMessage(ctx, &msg)
	}
}

func (c *Client) handleMessage(ctx context.Context, msg *Message) {
	switch msg.Type {
	case TypePointer:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.sendError("invalid pointer payload")
			return
		}
		if err := c.server.Pointer(ctx, c.SurfaceID, p); err != nil {
			c.sendError(err.Error())
		}
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", c.ClientID)
		c.sendError("unknown message type " + msg.Type)
	}
}

// WritePump delivers queued frames and messages and keeps the connection
// alive with pings.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case out, ok := <-c.send:
			if !ok {
				return
			}
			typ := websocket.MessageText
			if out.binary {
				typ = websocket.MessageBinary
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, typ, out.data)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues a JSON message.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}
	c.queue(outbound{data: data})
}

func (c *Client) sendError(text string) {
	payload, _ := json.Marshal(ErrorPayload{Message: text})
	c.Send(&Message{Type: TypeError, SurfaceID: c.SurfaceID, Payload: payload})
}

// queue never blocks; a slow viewer drops frames.
func (c *Client) queue(out outbound) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- out:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ClientID)
	}
}

// close ends WritePump. Later sends are dropped.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
