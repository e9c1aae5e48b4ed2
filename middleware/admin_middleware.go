package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/services"
	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware validates the admin JWT and confirms the admin row
// still exists. Tokens are issued by the admin login endpoint.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Cookie first, then Authorization header
		token, err := c.Cookie("admin_token")
		if err != nil || token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - no token provided"))
				c.Abort()
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token format"))
				c.Abort()
				return
			}
			token = parts[1]
		}

		claims, err := services.VerifyAdminJWT(token)
		if err != nil {
			log.Printf("[auth] invalid token: %v", err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token"))
			c.Abort()
			return
		}

		ctx, cancel := config.WithTimeout()
		defer cancel()

		var admin models.Admin
		if err := config.StoreGorm.WithContext(ctx).
			Select("id, role").
			Where("id = ?", claims.AdminID).
			First(&admin).Error; err != nil {
			log.Printf("[auth] failed to fetch admin: %v", err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - admin not found"))
			c.Abort()
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("adminEmail", claims.Email)
		c.Set("adminRole", admin.Role)

		c.Next()
	}
}
