package orders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/YashChoudhary13/The-MEX/models"

	"go.uber.org/zap"
)

type fakeStore struct {
	mu     sync.Mutex
	orders map[int]*models.Order
}

func newFakeStore(existing ...*models.Order) *fakeStore {
	s := &fakeStore{orders: make(map[int]*models.Order)}
	for _, o := range existing {
		s.orders[o.ID] = o
	}
	return s
}

func (s *fakeStore) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (s *fakeStore) UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o.Status = status
	copied := *o
	return &copied, nil
}

func (s *fakeStore) DeleteOrder(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return ErrOrderNotFound
	}
	delete(s.orders, id)
	return nil
}

type broadcastCall struct {
	orderID int
	order   interface{}
}

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (b *fakeBroadcaster) Broadcast(orderID int, order interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{orderID: orderID, order: order})
}

func (b *fakeBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

type fakeNotifier struct {
	err   error
	calls chan models.OrderStatus
}

func newFakeNotifier(err error) *fakeNotifier {
	return &fakeNotifier{err: err, calls: make(chan models.OrderStatus, 8)}
}

func (n *fakeNotifier) Send(ctx context.Context, order *models.Order, status models.OrderStatus) error {
	n.calls <- status
	return n.err
}

func (n *fakeNotifier) waitForCall(t *testing.T) models.OrderStatus {
	t.Helper()
	select {
	case status := <-n.calls:
		return status
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification attempt, got none")
		return ""
	}
}

func (n *fakeNotifier) expectNoCall(t *testing.T) {
	t.Helper()
	select {
	case status := <-n.calls:
		t.Fatalf("unexpected notification attempt for status %q", status)
	case <-time.After(100 * time.Millisecond):
	}
}

func newTestCoordinator(store Store, b *fakeBroadcaster, n *fakeNotifier) *Coordinator {
	return NewCoordinator(store, b, n, zap.NewNop())
}

func TestCoordinator_SetStatusNotFound(t *testing.T) {
	store := newFakeStore()
	b := &fakeBroadcaster{}
	n := newFakeNotifier(nil)
	co := newTestCoordinator(store, b, n)

	_, err := co.SetStatus(context.Background(), 99, models.StatusConfirmed)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if b.count() != 0 {
		t.Error("no broadcast should fire for a missing order")
	}
	n.expectNoCall(t)
}

func TestCoordinator_SetStatusRejectsUnknownStatus(t *testing.T) {
	store := newFakeStore(&models.Order{ID: 1, Status: models.StatusPending})
	b := &fakeBroadcaster{}
	n := newFakeNotifier(nil)
	co := newTestCoordinator(store, b, n)

	_, err := co.SetStatus(context.Background(), 1, "shipped")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if order, _ := store.GetOrder(context.Background(), 1); order.Status != models.StatusPending {
		t.Errorf("store must be untouched, status = %q", order.Status)
	}
	if b.count() != 0 {
		t.Error("no broadcast should fire for an invalid status")
	}
}

func TestCoordinator_ReadyUpdatesBroadcastsAndNotifies(t *testing.T) {
	store := newFakeStore(&models.Order{ID: 42, CustomerPhone: "5551234567", Status: models.StatusPreparing})
	b := &fakeBroadcaster{}
	n := newFakeNotifier(nil)
	co := newTestCoordinator(store, b, n)

	order, err := co.SetStatus(context.Background(), 42, models.StatusReady)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if order.Status != models.StatusReady {
		t.Errorf("returned order status = %q, want ready", order.Status)
	}

	stored, _ := store.GetOrder(context.Background(), 42)
	if stored.Status != models.StatusReady {
		t.Errorf("stored status = %q, want ready", stored.Status)
	}

	if b.count() != 1 {
		t.Fatalf("expected exactly one broadcast, got %d", b.count())
	}
	if b.calls[0].orderID != 42 {
		t.Errorf("broadcast order id = %d, want 42", b.calls[0].orderID)
	}
	broadcasted, ok := b.calls[0].order.(*models.Order)
	if !ok || broadcasted.Status != models.StatusReady {
		t.Errorf("broadcast must carry the post-write order, got %+v", b.calls[0].order)
	}

	if status := n.waitForCall(t); status != models.StatusReady {
		t.Errorf("notification status = %q, want ready", status)
	}
	n.expectNoCall(t) // exactly one attempt
}

func TestCoordinator_DeliveredBroadcastsWithoutNotification(t *testing.T) {
	store := newFakeStore(&models.Order{ID: 42, Status: models.StatusReady})
	b := &fakeBroadcaster{}
	n := newFakeNotifier(nil)
	co := newTestCoordinator(store, b, n)

	order, err := co.SetStatus(context.Background(), 42, models.StatusDelivered)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if order.Status != models.StatusDelivered {
		t.Errorf("returned status = %q, want delivered", order.Status)
	}
	if b.count() != 1 {
		t.Errorf("expected one broadcast, got %d", b.count())
	}
	n.expectNoCall(t)
}

func TestCoordinator_NotificationFailureIsSwallowed(t *testing.T) {
	store := newFakeStore(&models.Order{ID: 42, CustomerPhone: "5551234567", Status: models.StatusPending})
	b := &fakeBroadcaster{}
	n := newFakeNotifier(errors.New("carrier unavailable"))
	co := newTestCoordinator(store, b, n)

	order, err := co.SetStatus(context.Background(), 42, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("a failed notification must not fail the operation: %v", err)
	}
	if order.Status != models.StatusConfirmed {
		t.Errorf("returned status = %q, want confirmed", order.Status)
	}
	if b.count() != 1 {
		t.Errorf("broadcast must still fire, got %d calls", b.count())
	}
	n.waitForCall(t)
}

func TestCoordinator_DeleteOrderBroadcastsDeletion(t *testing.T) {
	store := newFakeStore(&models.Order{ID: 7, Status: models.StatusPending})
	b := &fakeBroadcaster{}
	n := newFakeNotifier(nil)
	co := newTestCoordinator(store, b, n)

	if err := co.DeleteOrder(context.Background(), 7); err != nil {
		t.Fatalf("DeleteOrder failed: %v", err)
	}
	if b.count() != 1 {
		t.Fatalf("expected a deletion broadcast, got %d", b.count())
	}
	payload, ok := b.calls[0].order.(map[string]interface{})
	if !ok || payload["deleted"] != true {
		t.Errorf("deletion broadcast payload = %+v", b.calls[0].order)
	}

	if err := co.DeleteOrder(context.Background(), 7); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound on second delete, got %v", err)
	}
}
