package orders

import (
	"context"
	"errors"

	"github.com/YashChoudhary13/The-MEX/models"

	"gorm.io/gorm"
)

var (
	// ErrOrderNotFound means the referenced order id does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidStatus means the requested status is not a known order status.
	ErrInvalidStatus = errors.New("invalid order status")
)

// Store is the persistence surface the realtime pipeline depends on.
type Store interface {
	GetOrder(ctx context.Context, id int) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int) error
}

// GormStore backs Store with the application database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	return s.GetOrder(ctx, id)
}

// DeleteOrder removes an order and its line items atomically.
func (s *GormStore) DeleteOrder(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error
	})
}
