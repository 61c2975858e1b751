package models

import (
	"testing"
	"time"
)

func TestPromoCode_PercentageDiscount(t *testing.T) {
	promo := PromoCode{Code: "SAVE10", DiscountType: "percentage", DiscountValue: 10, Active: true}

	discount, err := promo.Discount(50, time.Now())
	if err != nil {
		t.Fatalf("expected valid promo: %v", err)
	}
	if discount != 5 {
		t.Errorf("discount = %v, want 5", discount)
	}
}

func TestPromoCode_PercentageCap(t *testing.T) {
	promo := PromoCode{
		DiscountType: "percentage", DiscountValue: 50,
		MaxDiscountAmount: 12, Active: true,
	}

	discount, err := promo.Discount(100, time.Now())
	if err != nil {
		t.Fatalf("expected valid promo: %v", err)
	}
	if discount != 12 {
		t.Errorf("discount = %v, want cap of 12", discount)
	}
}

func TestPromoCode_FixedAmountNeverExceedsTotal(t *testing.T) {
	promo := PromoCode{DiscountType: "amount", DiscountValue: 20, Active: true}

	discount, err := promo.Discount(15, time.Now())
	if err != nil {
		t.Fatalf("expected valid promo: %v", err)
	}
	if discount != 15 {
		t.Errorf("discount = %v, want clamped to order total 15", discount)
	}
}

func TestPromoCode_Rejections(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name  string
		promo PromoCode
		total float64
	}{
		{"inactive", PromoCode{Active: false, DiscountType: "amount", DiscountValue: 5}, 50},
		{"not started", PromoCode{Active: true, StartDate: &future, DiscountType: "amount", DiscountValue: 5}, 50},
		{"expired", PromoCode{Active: true, EndDate: &past, DiscountType: "amount", DiscountValue: 5}, 50},
		{"usage limit reached", PromoCode{Active: true, UsageLimit: 3, CurrentUsage: 3, DiscountType: "amount", DiscountValue: 5}, 50},
		{"below minimum order", PromoCode{Active: true, MinOrderValue: 30, DiscountType: "amount", DiscountValue: 5}, 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.promo.Discount(tc.total, now); err == nil {
				t.Errorf("expected %s promo to be rejected", tc.name)
			}
		})
	}
}
