package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/YashChoudhary13/The-MEX/models"
	"github.com/YashChoudhary13/The-MEX/orders"

	"github.com/gin-gonic/gin"
)

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus is the staff-facing status transition endpoint. The
// coordinator takes care of persisting the change, broadcasting it to live
// trackers and texting the customer.
func UpdateOrderStatus(co *orders.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status value"})
			return
		}

		order, err := co.SetStatus(c.Request.Context(), id, req.Status)
		switch {
		case errors.Is(err, orders.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status value"})
			return
		case errors.Is(err, orders.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order status"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// DeleteOrder removes an order and notifies any live trackers
func DeleteOrder(co *orders.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
			return
		}

		err = co.DeleteOrder(c.Request.Context(), id)
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
