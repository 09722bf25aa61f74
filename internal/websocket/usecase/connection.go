package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"alert-srv/internal/model"
	"alert-srv/internal/monitor"
	ws "alert-srv/internal/websocket"

	"github.com/gorilla/websocket"
)

// Connection is one client socket. It is the sink of the connection's monitoring session.
type Connection struct {
	id    string
	uc    *implUseCase
	conn  *websocket.Conn
	scope model.Scope

	// Buffered channel of outbound frames. It is never closed; done ends the writer.
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

var _ monitor.Sink = &Connection{}

func newConnection(uc *implUseCase, conn *websocket.Conn, sc model.Scope) *Connection {
	return &Connection{
		id:    uc.newID(),
		uc:    uc,
		conn:  conn,
		scope: sc,
		send:  make(chan []byte, uc.cfg.SendBufferSize),
		done:  make(chan struct{}),
	}
}

// Send queues msg without blocking. A full buffer or a closed connection is an error.
func (c *Connection) Send(ctx context.Context, msg monitor.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return ws.ErrConnectionClosed
	default:
	}

	select {
	case c.send <- data:
		c.uc.hub.messagesSent.Add(1)
		return nil
	case <-c.done:
		return ws.ErrConnectionClosed
	default:
		c.uc.hub.messagesFailed.Add(1)
		return ws.ErrSendBufferFull
	}
}

// readPump reads client commands. All reads happen on this goroutine.
func (c *Connection) readPump() {
	ctx := context.Background()
	defer func() {
		stopCtx, cancel := context.WithTimeout(ctx, c.uc.cfg.WriteWait)
		if err := c.uc.monitor.Stop(stopCtx, c.id); err != nil {
			c.uc.logger.Warnf(ctx, "internal.websocket.usecase.readPump.Stop: %v", err)
		}
		cancel()
		c.uc.limiter.Untrack(c.scope.UserID)
		c.uc.hub.remove(c)
		c.Close()
	}()

	c.conn.SetReadLimit(c.uc.cfg.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.uc.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.uc.cfg.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.uc.logger.Warnf(ctx, "internal.websocket.usecase.readPump: user=%s err=%v", c.scope.UserID, err)
			}
			return
		}
		c.handleMessage(ctx, message)
	}
}

// writePump writes queued frames and keeps the connection alive with pings. All writes happen on
// this goroutine.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.uc.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.uc.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Close()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.uc.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(c.uc.cfg.WriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *Connection) start() {
	go c.writePump()
	go c.readPump()
}

// Close stops both pumps. It is safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		// Unblocks ReadMessage; writePump sends the close frame when it can.
		if c.conn != nil {
			c.conn.SetReadDeadline(time.Now())
		}
	})
}
