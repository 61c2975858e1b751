package handlers

import (
	"net/http"
	"strconv"

	"github.com/YashChoudhary13/The-MEX/config"
	"github.com/YashChoudhary13/The-MEX/models"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns all orders with a status summary for the
// admin dashboard
func AdminGetAllOrders(c *gin.Context) {
	query := config.DB.Preload("Items")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var allOrders []models.Order
	query.Order("created_at desc").Find(&allOrders)

	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range allOrders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue += o.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"orderSummary": summary,
		"totalRevenue": totalRevenue,
		"count":        len(allOrders),
		"orders":       allOrders,
	})
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// CreateCategory adds a menu category
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category data", "error": err.Error()})
		return
	}
	category := models.MenuCategory{Name: req.Name, Slug: req.Slug}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory edits a menu category
func UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category ID"})
		return
	}
	var category models.MenuCategory
	if err := config.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category data", "error": err.Error()})
		return
	}
	category.Name = req.Name
	category.Slug = req.Slug
	if err := config.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a menu category
func DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category ID"})
		return
	}
	res := config.DB.Delete(&models.MenuCategory{}, id)
	if res.Error != nil || res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found or could not be deleted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// CreateMenuItem adds a menu item
func CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu item data", "error": err.Error()})
		return
	}
	item.ID = 0
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem edits a menu item
func UpdateMenuItem(c *gin.Context) {
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
	var updates models.MenuItem
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu item data", "error": err.Error()})
		return
	}
	updates.ID = item.ID
	if err := config.DB.Save(&updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, updates)
}

// DeleteMenuItem removes a menu item
func DeleteMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu item ID"})
		return
	}
	res := config.DB.Delete(&models.MenuItem{}, id)
	if res.Error != nil || res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// ListSpecialOffers returns every special offer, active or not
func ListSpecialOffers(c *gin.Context) {
	var offers []models.SpecialOffer
	config.DB.Preload("MenuItem").Find(&offers)
	c.JSON(http.StatusOK, offers)
}

// CreateSpecialOffer adds a special offer
func CreateSpecialOffer(c *gin.Context) {
	var offer models.SpecialOffer
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid special offer data", "error": err.Error()})
		return
	}
	offer.ID = 0
	if err := config.DB.Create(&offer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create special offer"})
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// UpdateSpecialOffer edits a special offer
func UpdateSpecialOffer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid special offer ID"})
		return
	}
	var offer models.SpecialOffer
	if err := config.DB.First(&offer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Special offer not found"})
		return
	}
	var updates models.SpecialOffer
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid special offer data", "error": err.Error()})
		return
	}
	updates.ID = offer.ID
	if err := config.DB.Save(&updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update special offer"})
		return
	}
	c.JSON(http.StatusOK, updates)
}

// DeactivateSpecialOffers turns off every special offer
func DeactivateSpecialOffers(c *gin.Context) {
	config.DB.Model(&models.SpecialOffer{}).Where("active = ?", true).Update("active", false)
	c.JSON(http.StatusOK, gin.H{"message": "All special offers deactivated"})
}

// ListPromoCodes returns all promo codes
func ListPromoCodes(c *gin.Context) {
	var codes []models.PromoCode
	config.DB.Find(&codes)
	c.JSON(http.StatusOK, codes)
}

// CreatePromoCode adds a promo code
func CreatePromoCode(c *gin.Context) {
	var promo models.PromoCode
	if err := c.ShouldBindJSON(&promo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid promo code data", "error": err.Error()})
		return
	}
	promo.ID = 0
	if err := config.DB.Create(&promo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create promo code"})
		return
	}
	c.JSON(http.StatusCreated, promo)
}

// UpdatePromoCode edits a promo code
func UpdatePromoCode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid promo code ID"})
		return
	}
	var promo models.PromoCode
	if err := config.DB.First(&promo, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Promo code not found"})
		return
	}
	var updates models.PromoCode
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid promo code data", "error": err.Error()})
		return
	}
	updates.ID = promo.ID
	if err := config.DB.Save(&updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update promo code"})
		return
	}
	c.JSON(http.StatusOK, updates)
}

// DeletePromoCode removes a promo code
func DeletePromoCode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid promo code ID"})
		return
	}
	res := config.DB.Delete(&models.PromoCode{}, id)
	if res.Error != nil || res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Promo code not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Promo code deleted"})
}

type SettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// UpdateSystemSetting upserts one system setting. The known numeric keys
// are validated so checkout math can always trust what it reads back.
func UpdateSystemSetting(c *gin.Context) {
	key := c.Param("key")
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Value is required"})
		return
	}

	switch key {
	case "service_fee":
		if v, err := strconv.ParseFloat(req.Value, 64); err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid service fee value"})
			return
		}
	case "tax_rate":
		if v, err := strconv.ParseFloat(req.Value, 64); err != nil || v < 0 || v > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid tax rate value"})
			return
		}
	}

	var setting models.SystemSetting
	if err := config.DB.Where("key = ?", key).First(&setting).Error; err != nil {
		setting = models.SystemSetting{Key: key, Value: req.Value}
		config.DB.Create(&setting)
	} else {
		config.DB.Model(&setting).Update("value", req.Value)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Setting updated", "key": key, "value": req.Value})
}
