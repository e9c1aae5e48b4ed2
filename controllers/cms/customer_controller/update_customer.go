package customer_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateCustomer godoc
// @Summary Update a customer
// @Description Partially update a customer's details
// @Tags CMS - Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body models.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/customers/{id} [patch]
func UpdateCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid customer ID"))
		return
	}

	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var customer models.Customer
	if err := config.StoreGorm.WithContext(ctx).
		First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Customer not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		var count int64
		if err := config.StoreGorm.WithContext(ctx).
			Model(&models.Customer{}).
			Where("email = ? AND id <> ?", *req.Email, customerID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Email already in use"))
			return
		}
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "No fields to update"))
		return
	}

	if err := config.StoreGorm.WithContext(ctx).
		Model(&customer).
		Updates(updates).Error; err != nil {
		log.Printf("[customers] ❌ failed to update customer %s: %v", customerID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update customer"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Customer updated successfully", customer))
}
