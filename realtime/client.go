package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/YashChoudhary13/The-MEX/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	snapshotWait   = 5 * time.Second
)

var errConnClosed = errors.New("connection closed")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// OrderFetcher provides the catch-up snapshot pushed right after a subscribe.
type OrderFetcher interface {
	GetOrder(ctx context.Context, id int) (*models.Order, error)
}

// Client owns one websocket connection end to end: it reads frames until the
// connection dies, then removes itself from the registry exactly once.
type Client struct {
	conn     *websocket.Conn
	registry *Registry
	store    OrderFetcher
	logger   *zap.Logger

	writeMu sync.Mutex
	closed  atomic.Bool
	cleanup sync.Once
}

// ServeWS upgrades the request and runs the connection until it disconnects.
func ServeWS(registry *Registry, store OrderFetcher, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		client := &Client{
			conn:     conn,
			registry: registry,
			store:    store,
			logger:   logger,
		}
		logger.Debug("websocket client connected",
			zap.String("remote", conn.RemoteAddr().String()))
		client.readLoop()
	}
}

func (c *Client) readLoop() {
	defer c.close()
	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
		c.handleMessage(data)
	}
}

// handleMessage processes one inbound frame. Malformed frames are dropped
// without closing the connection; unknown message types are ignored.
func (c *Client) handleMessage(data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn("dropping malformed websocket frame", zap.Error(err))
		return
	}

	switch msg.Type {
	case MessageSubscribe:
		orderID, ok := parseOrderID(msg.OrderID)
		if !ok {
			c.logger.Warn("subscribe request with invalid order id",
				zap.Any("order_id", msg.OrderID))
			return
		}
		c.subscribe(orderID)
	default:
		// unknown types are not an error
	}
}

func (c *Client) subscribe(orderID int) {
	c.registry.Subscribe(orderID, c)

	if err := c.sendJSON(confirmationMessage{
		Type:    MessageSubscriptionConfirmed,
		OrderID: orderID,
	}); err != nil {
		return
	}

	// Push the current state immediately so a client joining mid-flight is
	// not stuck waiting for the next status change.
	ctx, cancel := context.WithTimeout(context.Background(), snapshotWait)
	defer cancel()
	order, err := c.store.GetOrder(ctx, orderID)
	if err != nil {
		// Unknown orders get no snapshot; broadcasts will never match them
		// either, so the subscription is harmless.
		return
	}
	if err := c.sendJSON(updateMessage{
		Type:    MessageOrderUpdate,
		OrderID: orderID,
		Order:   order,
	}); err != nil {
		c.logger.Debug("failed to send order snapshot",
			zap.Int("order_id", orderID), zap.Error(err))
	}
}

// send writes a single text frame. Writes are serialized because the read
// loop and broadcast fan-out can both write to the same connection.
func (c *Client) send(data []byte) error {
	if c.closed.Load() {
		return errConnClosed
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) sendJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.send(data)
}

// close tears the connection down and deregisters it. Safe to call more than
// once; the registry sees the removal exactly once.
func (c *Client) close() {
	c.cleanup.Do(func() {
		c.closed.Store(true)
		c.registry.UnsubscribeAll(c)
		c.conn.Close()
		c.logger.Debug("websocket client disconnected")
	})
}
