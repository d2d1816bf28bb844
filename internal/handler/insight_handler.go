package handler

import (
	"net/http"
	"strconv"

	"vouchbooks/internal/middleware"
	"vouchbooks/internal/service"
	"vouchbooks/pkg/pagination"
	"vouchbooks/pkg/response"

	"github.com/gin-gonic/gin"
)

type InsightHandler struct {
	insightService service.InsightService
}

func NewInsightHandler(insightService service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

func (h *InsightHandler) RegisterRoutes(router *gin.RouterGroup) {
	insights := router.Group("/insights", middleware.RequireRole("admin", "user"))
	{
		insights.GET("", h.ListInsights)
		insights.POST("/evaluate", h.EvaluateInsights)
		insights.PUT("/:id/read", h.MarkRead)
	}
}

// ListInsights handles GET /insights
// @Summary      List insights
// @Tags         insights
// @Produce      json
// @Security     BearerAuth
// @Param        unread  query     bool  false  "Only unread insights"
// @Param        page    query     int   false  "Page number (default 1)"
// @Param        limit   query     int   false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /insights [get]
func (h *InsightHandler) ListInsights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p := pagination.Parse(c)
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread", "false"))

	insights, total, err := h.insightService.ListInsights(c.Request.Context(), userID, unreadOnly, p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch insights"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"insights": insights,
		"total":    total,
		"page":     p.Page,
		"limit":    p.Limit,
	}))
}

// EvaluateInsights handles POST /insights/evaluate
// @Summary      Evaluate insight rules
// @Description  Runs the insight rule set against the caller's books and returns any newly created insights
// @Tags         insights
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.InsightResponse}
// @Failure      500  {object}  response.Response
// @Router       /insights/evaluate [post]
func (h *InsightHandler) EvaluateInsights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	created, err := h.insightService.EvaluateForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	if created == nil {
		created = []service.InsightResponse{}
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, created))
}

// MarkRead handles PUT /insights/:id/read
// @Summary      Mark insight read
// @Tags         insights
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Insight ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /insights/{id}/read [put]
func (h *InsightHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.insightService.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Insight marked as read"))
}
