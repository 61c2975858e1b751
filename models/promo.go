package models

import (
	"errors"
	"fmt"
	"time"
)

type PromoCode struct {
	ID                int        `json:"id" gorm:"primaryKey"`
	Code              string     `json:"code" gorm:"uniqueIndex;not null"`
	DiscountType      string     `json:"discountType" gorm:"not null;default:'percentage'"` // percentage, amount
	DiscountValue     float64    `json:"discountValue" gorm:"not null"`
	MinOrderValue     float64    `json:"minOrderValue" gorm:"default:0"`
	MaxDiscountAmount float64    `json:"maxDiscountAmount"` // cap for percentage discounts, 0 = no cap
	Active            bool       `json:"active" gorm:"not null;default:true"`
	UsageLimit        int        `json:"usageLimit"` // 0 = unlimited
	CurrentUsage      int        `json:"currentUsage" gorm:"not null;default:0"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	CreatedAt         time.Time  `json:"createdAt"`
}

type SystemSetting struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"uniqueIndex;not null"`
	Value     string    `json:"value" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Discount computes the discount a promo code yields for a given order total,
// or an error describing why the code cannot be applied.
func (p *PromoCode) Discount(orderTotal float64, now time.Time) (float64, error) {
	if !p.Active {
		return 0, errors.New("this promo code is not active")
	}
	if p.StartDate != nil && p.StartDate.After(now) {
		return 0, errors.New("this promo code is not active yet")
	}
	if p.EndDate != nil && p.EndDate.Before(now) {
		return 0, errors.New("this promo code has expired")
	}
	if p.UsageLimit > 0 && p.CurrentUsage >= p.UsageLimit {
		return 0, errors.New("this promo code has reached its usage limit")
	}
	if p.MinOrderValue > 0 && orderTotal < p.MinOrderValue {
		return 0, fmt.Errorf("this promo code requires a minimum order of $%.2f", p.MinOrderValue)
	}

	if p.DiscountType == "percentage" {
		discount := orderTotal * p.DiscountValue / 100
		if p.MaxDiscountAmount > 0 && discount > p.MaxDiscountAmount {
			discount = p.MaxDiscountAmount
		}
		return discount, nil
	}

	// Fixed amount discount, never more than the order itself
	if p.DiscountValue > orderTotal {
		return orderTotal, nil
	}
	return p.DiscountValue, nil
}
