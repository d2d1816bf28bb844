package handler

import (
	"net/http"

	"vouchbooks/internal/middleware"
	"vouchbooks/internal/service"
	"vouchbooks/pkg/response"

	"github.com/gin-gonic/gin"
)

type SettingHandler struct {
	settingService service.SettingService
}

func NewSettingHandler(settingService service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

func (h *SettingHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings")
	{
		settings.GET("", middleware.RequireRole("admin", "user"), h.ListSettings)
		settings.GET("/:key", middleware.RequireRole("admin", "user"), h.GetSetting)
		settings.PUT("", middleware.RequireRole("admin"), h.UpsertSetting)
	}
}

// ListSettings handles GET /settings
// @Summary      List platform settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.SettingResponse}
// @Failure      500  {object}  response.Response
// @Router       /settings [get]
func (h *SettingHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingService.ListSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch settings"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// GetSetting handles GET /settings/:key
// @Summary      Get setting by key
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Param        key  path      string  true  "Setting key"
// @Success      200  {object}  response.Response{data=service.SettingResponse}
// @Failure      404  {object}  response.Response
// @Router       /settings/{key} [get]
func (h *SettingHandler) GetSetting(c *gin.Context) {
	setting, err := h.settingService.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, setting))
}

// UpsertSetting handles PUT /settings (admin only)
// @Summary      Upsert setting
// @Description  Creates or updates a platform setting
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UpsertSettingRequest  true  "Setting Payload"
// @Success      200      {object}  response.Response{data=service.SettingResponse}
// @Failure      400      {object}  response.Response
// @Router       /settings [put]
func (h *SettingHandler) UpsertSetting(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	setting, err := h.settingService.UpsertSetting(c.Request.Context(), adminID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, setting))
}
