package auth_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const adminTokenMaxAge = 7 * 24 * 60 * 60 // matches JWT expiry

// Login godoc
// @Summary Admin login
// @Description Verify admin credentials and set the admin_token cookie
// @Tags CMS - Auth
// @Accept json
// @Produce json
// @Param credentials body models.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/auth/login [post]
func Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var admin models.Admin
	if err := config.StoreGorm.WithContext(ctx).
		First(&admin, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid email or password"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid email or password"))
		return
	}

	token, err := services.GetJWTService().GenerateAdminJWT(admin.ID.String(), admin.Email)
	if err != nil {
		log.Printf("[auth] ❌ failed to issue token for %s: %v", admin.Email, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to issue token"))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("admin_token", token, adminTokenMaxAge, "/", "", false, true)

	log.Printf("[auth] ✅ admin %s logged in", admin.Email)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Login successful", gin.H{
		"token": token,
		"admin": admin,
	}))
}

// Logout godoc
// @Summary Admin logout
// @Description Clear the admin_token cookie
// @Tags CMS - Auth
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/admin/auth/logout [post]
func Logout(c *gin.Context) {
	c.SetCookie("admin_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged out", nil))
}
