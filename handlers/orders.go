package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/YashChoudhary13/The-MEX/config"
	"github.com/YashChoudhary13/The-MEX/middleware"
	"github.com/YashChoudhary13/The-MEX/models"
	"github.com/YashChoudhary13/The-MEX/orders"
	"github.com/YashChoudhary13/The-MEX/statemachine"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	CustomerName         string `json:"customerName" binding:"required"`
	CustomerEmail        string `json:"customerEmail" binding:"omitempty,email"`
	CustomerPhone        string `json:"customerPhone" binding:"required"`
	DeliveryAddress      string `json:"deliveryAddress" binding:"required"`
	City                 string `json:"city" binding:"required"`
	ZipCode              string `json:"zipCode" binding:"required"`
	DeliveryInstructions string `json:"deliveryInstructions"`
	PromoCode            string `json:"promoCode"`
	Items                []struct {
		MenuItemID int `json:"menuItemId" binding:"required"`
		Quantity   int `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// PlaceOrder creates a new order. Guests may order without an account;
// authenticated customers get the order linked to their profile.
func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order data", "error": err.Error()})
		return
	}

	// Price everything from the current menu, never from the client
	var orderItems []models.OrderItem
	var subtotal float64
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Menu item not found"})
			return
		}
		subtotal += menuItem.Price * float64(reqItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Price:      menuItem.Price,
			Quantity:   reqItem.Quantity,
		})
	}

	var discount float64
	var promo *models.PromoCode
	if req.PromoCode != "" {
		var pc models.PromoCode
		if err := config.DB.Where("code = ?", req.PromoCode).First(&pc).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid promo code"})
			return
		}
		d, err := pc.Discount(subtotal, time.Now())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		discount = d
		promo = &pc
	}

	deliveryFee := config.GetServiceFee()
	tax := (subtotal - discount) * config.GetTaxRate() / 100

	order := models.Order{
		CustomerName:         req.CustomerName,
		CustomerEmail:        req.CustomerEmail,
		CustomerPhone:        req.CustomerPhone,
		DeliveryAddress:      req.DeliveryAddress,
		City:                 req.City,
		ZipCode:              req.ZipCode,
		DeliveryInstructions: req.DeliveryInstructions,
		Subtotal:             subtotal,
		DeliveryFee:          deliveryFee,
		Tax:                  tax,
		Total:                subtotal - discount + deliveryFee + tax,
		Status:               models.StatusPending,
		Items:                orderItems,
	}
	if userID, _, ok := middleware.CallerIdentity(c); ok {
		order.UserID = &userID
	}

	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
		return
	}
	if promo != nil {
		config.DB.Model(promo).Update("current_usage", promo.CurrentUsage+1)
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder returns one order. Orders linked to an account are only visible
// to their owner or an admin; guest orders are readable by order id.
func GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	if order.UserID != nil {
		userID, isAdmin, ok := middleware.CallerIdentity(c)
		if !ok || (userID != *order.UserID && !isAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied to this order"})
			return
		}
	}

	c.JSON(http.StatusOK, order)
}

// GetMyOrders returns all orders linked to the authenticated user
func GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var userOrders []models.Order
	config.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&userOrders)
	c.JSON(http.StatusOK, gin.H{"count": len(userOrders), "orders": userOrders})
}

// CancelOrder lets a customer cancel their own order while the transition
// table still allows it. The cancellation goes through the coordinator so
// live trackers see it immediately.
func CancelOrder(co *orders.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
			return
		}

		var order models.Order
		if err := config.DB.First(&order, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		if order.UserID == nil || *order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"message": "This order does not belong to you"})
			return
		}

		if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message":       "Cannot cancel order",
				"reason":        err.Error(),
				"currentStatus": order.Status,
			})
			return
		}

		updated, err := co.SetStatus(c.Request.Context(), id, models.StatusCancelled)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to cancel order"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
