package checkout_controller

import (
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// GetCheckoutFunnel godoc
// @Summary Get checkout recovery funnel stats
// @Description Returns lifecycle event counts and the recovery rate derived from checkout events
// @Tags CMS - Checkouts
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/checkouts/funnel [get]
func GetCheckoutFunnel(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	var (
		started    int
		emailsSent int
		recovered  int
		expired    int
	)
	err := config.StoreDB.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE event = 'started'),
			COUNT(*) FILTER (WHERE event = 'email_sent'),
			COUNT(DISTINCT checkout_id) FILTER (WHERE event = 'recovered'),
			COUNT(DISTINCT checkout_id) FILTER (WHERE event = 'expired')
		FROM checkout_events
	`).Scan(&started, &emailsSent, &recovered, &expired)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to aggregate checkout funnel"))
		return
	}

	recoveryRate := 0.0
	if started > 0 {
		recoveryRate = float64(recovered) / float64(started) * 100
	}

	stats := []models.CheckoutFunnelResponseItem{
		{
			Started:      started,
			EmailsSent:   emailsSent,
			Recovered:    recovered,
			Expired:      expired,
			RecoveryRate: recoveryRate,
		},
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Checkout funnel fetched successfully", stats))
}
