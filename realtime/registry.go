package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Registry tracks which live connections are watching which orders.
// It is the one piece of shared mutable state in the realtime layer;
// every operation holds the mutex, so subscribe, disconnect cleanup and
// broadcast fan-out can race freely across connections.
type Registry struct {
	mu     sync.Mutex
	subs   map[int]map[*Client]struct{}
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		subs:   make(map[int]map[*Client]struct{}),
		logger: logger,
	}
}

// Subscribe registers a connection's interest in an order. Subscribing the
// same connection twice is a no-op.
func (r *Registry) Subscribe(orderID int, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.subs[orderID]
	if !ok {
		set = make(map[*Client]struct{})
		r.subs[orderID] = set
	}
	set[c] = struct{}{}
}

// UnsubscribeAll removes a connection from every order it was watching and
// drops entries whose subscriber set becomes empty. Called once per
// connection, from its own close path.
func (r *Registry) UnsubscribeAll(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for orderID, set := range r.subs {
		delete(set, c)
		if len(set) == 0 {
			delete(r.subs, orderID)
		}
	}
}

// Subscribers returns a snapshot of the current subscribers for an order,
// safe to iterate without holding the registry lock.
func (r *Registry) Subscribers(orderID int) []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.subs[orderID]
	clients := make([]*Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	return clients
}

// Broadcast pushes an ORDER_UPDATE to every subscriber of an order.
// Delivery is best effort: connections that are closed or fail mid-send are
// skipped, and their removal is left to their own close handlers so the
// fan-out never mutates the registry.
func (r *Registry) Broadcast(orderID int, order interface{}) {
	clients := r.Subscribers(orderID)
	if len(clients) == 0 {
		return
	}

	data, err := json.Marshal(updateMessage{
		Type:    MessageOrderUpdate,
		OrderID: orderID,
		Order:   order,
	})
	if err != nil {
		r.logger.Error("failed to encode order update",
			zap.Int("order_id", orderID), zap.Error(err))
		return
	}

	for _, c := range clients {
		if err := c.send(data); err != nil {
			r.logger.Debug("skipping stale subscriber",
				zap.Int("order_id", orderID), zap.Error(err))
		}
	}
}
