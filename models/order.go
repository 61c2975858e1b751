package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID                   int         `json:"id" gorm:"primaryKey"`
	CustomerName         string      `json:"customerName" gorm:"not null"`
	CustomerEmail        string      `json:"customerEmail"`
	CustomerPhone        string      `json:"customerPhone" gorm:"not null"`
	DeliveryAddress      string      `json:"deliveryAddress" gorm:"not null"`
	City                 string      `json:"city" gorm:"not null"`
	ZipCode              string      `json:"zipCode" gorm:"not null"`
	DeliveryInstructions string      `json:"deliveryInstructions"`
	Subtotal             float64     `json:"subtotal" gorm:"not null"`
	DeliveryFee          float64     `json:"deliveryFee" gorm:"not null"`
	Tax                  float64     `json:"tax" gorm:"not null"`
	Total                float64     `json:"total" gorm:"not null"`
	Status               OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	Items                []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	UserID               *int        `json:"userId"` // set for authenticated orders, nil for guest checkout
	CreatedAt            time.Time   `json:"createdAt"`
}

type OrderItem struct {
	ID         int     `json:"id" gorm:"primaryKey"`
	OrderID    int     `json:"orderId" gorm:"not null"`
	MenuItemID int     `json:"menuItemId" gorm:"not null"`
	Name       string  `json:"name"`                  // snapshot name
	Price      float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Quantity   int     `json:"quantity" gorm:"not null"`
}
