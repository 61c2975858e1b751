package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/YashChoudhary13/The-MEX/config"
	"github.com/YashChoudhary13/The-MEX/models"
	"github.com/YashChoudhary13/The-MEX/statemachine"

	"github.com/gin-gonic/gin"
)

// ListCategories returns all menu categories
func ListCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := config.DB.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListMenuItems returns the full menu, optionally only featured items
func ListMenuItems(c *gin.Context) {
	query := config.DB
	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}
	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch menu items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItemsByCategory returns the menu items of one category
func GetMenuItemsByCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category ID"})
		return
	}
	var items []models.MenuItem
	if err := config.DB.Where("category_id = ?", categoryID).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch menu items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItem returns one menu item by id
func GetMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu item ID"})
		return
	}
	var item models.MenuItem
	if err := config.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetActiveSpecialOffer returns the currently running special offer, if any
func GetActiveSpecialOffer(c *gin.Context) {
	var offer models.SpecialOffer
	err := config.DB.Preload("MenuItem").
		Where("active = ?", true).
		Order("id desc").
		First(&offer).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No active special offer"})
		return
	}
	c.JSON(http.StatusOK, offer)
}

type ValidatePromoRequest struct {
	Code       string  `json:"code" binding:"required"`
	OrderTotal float64 `json:"orderTotal" binding:"required"`
}

// ValidatePromoCode checks a promo code against an order total and returns
// the discount it would yield
func ValidatePromoCode(c *gin.Context) {
	var req ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var promo models.PromoCode
	if err := config.DB.Where("code = ?", req.Code).First(&promo).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "message": "Invalid promo code"})
		return
	}

	discount, err := promo.Discount(req.OrderTotal, time.Now())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "discount": discount})
}

// GetServiceFee exposes the current service fee so checkout clients can
// display it
func GetServiceFee(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"serviceFee": config.GetServiceFee()})
}

// GetTaxRate exposes the current tax rate as a percentage
func GetTaxRate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"taxRate": config.GetTaxRate()})
}

// GetStateMachineInfo documents the order status transition table
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"statuses": []models.OrderStatus{
			models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
			models.StatusReady, models.StatusDelivered, models.StatusCancelled,
		},
		"transitions": statemachine.GetAllTransitions(),
	})
}
