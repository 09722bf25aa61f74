package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"alert-srv/pkg/log"
	"alert-srv/pkg/metrics"
)

// Hub maintains the set of active connections, indexed by tenant.
type Hub struct {
	// tenant_id -> set of connections
	tenants map[string]map[*Connection]struct{}
	total   int
	mu      sync.RWMutex

	register   chan *Connection
	unregister chan *Connection

	messagesSent   atomic.Int64
	messagesFailed atomic.Int64

	maxConnections int
	logger         log.Logger
	metrics        metrics.Recorder

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func newHub(logger log.Logger, maxConnections int, rec metrics.Recorder) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		tenants:        make(map[string]map[*Connection]struct{}),
		register:       make(chan *Connection, 100),
		unregister:     make(chan *Connection, 100),
		maxConnections: maxConnections,
		logger:         logger,
		metrics:        rec,
		ctx:            ctx,
		cancel:         cancel,
		done:           make(chan struct{}),
	}
}

func (h *Hub) run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info(context.Background(), "internal.websocket.usecase.Hub.run: shutting down")
			h.closeAllConnections()
			return

		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)
		}
	}
}

func (h *Hub) add(conn *Connection) {
	select {
	case <-h.done:
		conn.Close()
		return
	default:
	}

	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
	}
}

func (h *Hub) remove(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

func (h *Hub) registerConnection(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.maxConnections > 0 && h.total >= h.maxConnections {
		h.logger.Warnf(context.Background(), "internal.websocket.usecase.Hub.registerConnection: max connections reached, rejecting user %s", conn.scope.UserID)
		go conn.Close()
		return
	}

	tenantID := conn.scope.TenantID
	if _, ok := h.tenants[tenantID]; !ok {
		h.tenants[tenantID] = make(map[*Connection]struct{})
	}
	h.tenants[tenantID][conn] = struct{}{}
	h.total++
	h.metrics.SetConnections(h.total)

	h.logger.Infof(context.Background(), "User connected: %s tenant=%s (total connections: %d, tenant connections: %d)",
		conn.scope.UserID, tenantID, h.total, len(h.tenants[tenantID]))
}

func (h *Hub) unregisterConnection(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	tenantID := conn.scope.TenantID
	conns, ok := h.tenants[tenantID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; !ok {
		return
	}

	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.tenants, tenantID)
	}
	h.total--
	h.metrics.SetConnections(h.total)

	h.logger.Infof(context.Background(), "User disconnected: %s tenant=%s (total connections: %d)", conn.scope.UserID, tenantID, h.total)
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for tenantID, conns := range h.tenants {
		for conn := range conns {
			conn.Close()
		}
		h.logger.Infof(context.Background(), "Closed all connections for tenant: %s", tenantID)
	}
	h.tenants = make(map[string]map[*Connection]struct{})
	h.total = 0
	h.metrics.SetConnections(0)
}

// Count returns the number of registered connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// Stats returns the connection and tenant counts.
func (h *Hub) Stats() (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total, len(h.tenants)
}

func (h *Hub) shutdown(ctx context.Context) error {
	h.cancel()

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
