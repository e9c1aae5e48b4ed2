package cms_routes

import (
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/cms/auth_controller"
	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	auth.POST("/login", auth_controller.Login)
	auth.POST("/logout", auth_controller.Logout)
}
