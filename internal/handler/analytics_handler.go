package handler

import (
	"net/http"

	"vouchbooks/internal/middleware"
	"vouchbooks/internal/service"
	"vouchbooks/pkg/response"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	analytics := router.Group("/analytics", middleware.RequireRole("admin", "user"))
	{
		analytics.GET("/summary", h.GetFinancialSummary)
	}
}

// GetFinancialSummary handles GET /analytics/summary
// @Summary      Financial summary
// @Description  Aggregates income, expenses, top categories and monthly totals over a date range
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD, defaults to Jan 1)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD, defaults to Dec 31)"
// @Success      200         {object}  response.Response{data=model.FinancialSummary}
// @Failure      400         {object}  response.Response
// @Router       /analytics/summary [get]
func (h *AnalyticsHandler) GetFinancialSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.analyticsService.GetFinancialSummary(c.Request.Context(), userID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
