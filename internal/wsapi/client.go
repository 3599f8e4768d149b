package wsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/leosac/devkit/internal/async"
	"github.com/leosac/devkit/internal/logging"
)

// Client is a connection to the daemon's websocket API. Responses are
// matched to requests by uuid, so several calls may be in flight, but the
// client provides no retry or reconnection: once the connection drops every
// pending call fails and the client is done.
type Client struct {
	logging.Mixin
	conn *websocket.Conn

	mu      sync.Mutex
	pending map[string]chan *ServerMessage
	readErr error

	done chan struct{}
}

// Dial connects to the daemon API at endpoint (a ws:// or wss:// URL).
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dial daemon API %s: %w", endpoint, err)
	}

	c := &Client{
		conn:    conn,
		pending: make(map[string]chan *ServerMessage),
		done:    make(chan struct{}),
	}
	c.Bind(c)
	go c.readLoop()
	return c, nil
}

// Close closes the connection; pending calls fail with the close error.
func (c *Client) Close() error {
	err := c.conn.Close(websocket.StatusNormalClosure, "")
	<-c.done
	return err
}

// Send issues one request and returns a task that completes with the
// correlated response. A response with a non-zero status code completes the
// task with an *APIError. When ctx ends before the response arrives the
// request is abandoned: the task completes with ctx's error and the daemon's
// eventual answer, if any, is dropped.
func (c *Client) Send(ctx context.Context, msgType string, content any) (*async.Task[*ServerMessage], error) {
	var raw json.RawMessage
	if content != nil {
		data, err := json.Marshal(content)
		if err != nil {
			return nil, fmt.Errorf("encode %s content: %w", msgType, err)
		}
		raw = data
	}

	id := uuid.NewString()
	ch := make(chan *ServerMessage, 1)

	c.mu.Lock()
	if c.readErr != nil {
		err := c.readErr
		c.mu.Unlock()
		return nil, fmt.Errorf("connection is down: %w", err)
	}
	c.pending[id] = ch
	c.mu.Unlock()

	msg := &ClientMessage{UUID: id, Type: msgType, Content: raw}
	if err := wsjson.Write(ctx, c.conn, msg); err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, c.Fail(fmt.Errorf("send %s: %w", msgType, err))
	}
	c.Logger().Debug("request sent", zap.String("type", msgType), zap.String("uuid", id))

	return async.Go(func() (*ServerMessage, error) {
		select {
		case response, ok := <-ch:
			if !ok {
				c.mu.Lock()
				err := c.readErr
				c.mu.Unlock()
				return nil, c.Fail(fmt.Errorf("awaiting %s response: %w", msgType, err))
			}
			if err := response.Err(); err != nil {
				return nil, err
			}
			return response, nil
		case <-ctx.Done():
			// Abandon the request so neither the goroutine nor the
			// pending entry outlives the caller. The channel is buffered,
			// so a response racing the abandonment is simply dropped.
			c.mu.Lock()
			delete(c.pending, id)
			c.mu.Unlock()
			return nil, fmt.Errorf("awaiting %s response: %w", msgType, ctx.Err())
		}
	}), nil
}

// Call is the synchronous form of Send: it issues the request and blocks
// until the response arrives or ctx ends.
func (c *Client) Call(ctx context.Context, msgType string, content any) (*ServerMessage, error) {
	task, err := c.Send(ctx, msgType, content)
	if err != nil {
		return nil, err
	}
	return task.Await(ctx)
}

// readLoop dispatches incoming messages to their pending requests until the
// connection fails, then fails every remaining request.
func (c *Client) readLoop() {
	defer close(c.done)
	for {
		var msg ServerMessage
		if err := wsjson.Read(context.Background(), c.conn, &msg); err != nil {
			c.mu.Lock()
			c.readErr = err
			for id, ch := range c.pending {
				close(ch)
				delete(c.pending, id)
			}
			c.mu.Unlock()
			return
		}

		c.mu.Lock()
		ch, ok := c.pending[msg.UUID]
		if ok {
			delete(c.pending, msg.UUID)
		}
		c.mu.Unlock()

		if !ok {
			// Server-initiated notification, or a response nobody waits
			// for anymore.
			c.Logger().Debug("unsolicited message",
				zap.String("type", msg.Type),
				zap.String("uuid", msg.UUID))
			continue
		}
		ch <- &msg
	}
}
