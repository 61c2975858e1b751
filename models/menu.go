package models

import "time"

type MenuCategory struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`
}

type MenuItem struct {
	ID          int     `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"`
	CategoryID  int     `json:"categoryId" gorm:"not null"`
	Image       string  `json:"image" gorm:"not null"`
	Featured    bool    `json:"featured" gorm:"default:false"`
	Label       string  `json:"label"` // tags like "Healthy", "Best Seller"
	Rating      float64 `json:"rating" gorm:"default:5.0"`
	ReviewCount int     `json:"reviewCount" gorm:"default:0"`
	Ingredients string  `json:"ingredients"`
	Calories    string  `json:"calories"`
	Allergens   string  `json:"allergens"`
	PrepTime    int     `json:"prepTime" gorm:"default:15"` // preparation time in minutes
}

type SpecialOffer struct {
	ID            int        `json:"id" gorm:"primaryKey"`
	MenuItemID    int        `json:"menuItemId" gorm:"not null"`
	MenuItem      MenuItem   `json:"menuItem,omitempty" gorm:"foreignKey:MenuItemID"`
	DiscountType  string     `json:"discountType" gorm:"not null;default:'percentage'"` // percentage, amount
	DiscountValue float64    `json:"discountValue" gorm:"not null"`
	OriginalPrice float64    `json:"originalPrice" gorm:"not null"`
	SpecialPrice  float64    `json:"specialPrice" gorm:"not null"`
	Active        bool       `json:"active" gorm:"not null;default:true"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
}
