package orders

import (
	"context"
	"time"

	"github.com/YashChoudhary13/The-MEX/models"
	"github.com/YashChoudhary13/The-MEX/notification"
	"github.com/YashChoudhary13/The-MEX/statemachine"

	"go.uber.org/zap"
)

const notifyTimeout = 15 * time.Second

// Broadcaster fans an order update out to live subscribers.
type Broadcaster interface {
	Broadcast(orderID int, order interface{})
}

// Coordinator is the single entry point for changing an order's status.
// It sequences the store write, the broadcast to live subscribers and the
// out-of-band customer notification, with isolated failure handling for
// each step: only the store write can fail the operation.
type Coordinator struct {
	store       Store
	broadcaster Broadcaster
	notifier    notification.Notifier
	logger      *zap.Logger
}

func NewCoordinator(store Store, broadcaster Broadcaster, notifier notification.Notifier, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		store:       store,
		broadcaster: broadcaster,
		notifier:    notifier,
		logger:      logger,
	}
}

// notifiableStatuses are the transitions worth proactively texting the
// customer about.
// TODO: decide whether cancelled orders should notify the customer too;
// the notifier already has message copy for it.
var notifiableStatuses = map[models.OrderStatus]bool{
	models.StatusConfirmed: true,
	models.StatusPreparing: true,
	models.StatusReady:     true,
}

// SetStatus persists the new status, broadcasts the updated order to every
// subscriber and, for customer-relevant statuses, triggers an SMS
// notification in the background. The returned order reflects the write;
// notification failures never affect the result.
func (co *Coordinator) SetStatus(ctx context.Context, orderID int, status models.OrderStatus) (*models.Order, error) {
	if !statemachine.IsValid(status) {
		return nil, ErrInvalidStatus
	}

	order, err := co.store.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	co.broadcaster.Broadcast(orderID, order)

	if notifiableStatuses[status] {
		go co.notify(order, status)
	}

	co.logger.Info("order status updated",
		zap.Int("order_id", orderID),
		zap.String("status", string(status)))

	return order, nil
}

// notify runs detached from the request so a slow carrier cannot delay the
// HTTP response or the broadcast.
func (co *Coordinator) notify(order *models.Order, status models.OrderStatus) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := co.notifier.Send(ctx, order, status); err != nil {
		co.logger.Warn("order status notification failed",
			zap.Int("order_id", order.ID),
			zap.String("status", string(status)),
			zap.Error(err))
	}
}

// DeleteOrder removes an order and tells any live subscribers it is gone.
func (co *Coordinator) DeleteOrder(ctx context.Context, orderID int) error {
	if err := co.store.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	co.broadcaster.Broadcast(orderID, map[string]interface{}{
		"id":      orderID,
		"deleted": true,
	})
	return nil
}
