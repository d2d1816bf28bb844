package handler

import (
	"net/http"
	"strings"

	"vouchbooks/internal/middleware"
	"vouchbooks/internal/service"
	"vouchbooks/pkg/pagination"
	"vouchbooks/pkg/response"

	"github.com/gin-gonic/gin"
)

// maxStatementSize caps uploads at 10MB
const maxStatementSize = 10 << 20

type StatementHandler struct {
	statementService service.StatementService
}

func NewStatementHandler(statementService service.StatementService) *StatementHandler {
	return &StatementHandler{statementService: statementService}
}

func (h *StatementHandler) RegisterRoutes(router *gin.RouterGroup) {
	statements := router.Group("/statements", middleware.RequireRole("admin", "user"))
	{
		statements.POST("", h.UploadStatement)
		statements.GET("", h.ListStatements)
		statements.GET("/:id", h.GetStatement)
	}
}

// UploadStatement handles POST /statements with a multipart PDF upload
// @Summary      Upload bank statement
// @Description  Accepts a PDF bank statement, extracts transactions and imports them into the books
// @Tags         statements
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Bank statement PDF"
// @Success      201   {object}  response.Response{data=service.StatementUploadResponse}
// @Failure      400   {object}  response.Response
// @Router       /statements [post]
func (h *StatementHandler) UploadStatement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Missing statement file"))
		return
	}
	if fileHeader.Size > maxStatementSize {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Statement file exceeds the 10MB limit"))
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Only PDF statements are supported"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to read uploaded file"))
		return
	}
	defer file.Close()

	result, err := h.statementService.UploadStatement(c.Request.Context(), userID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// ListStatements handles GET /statements
// @Summary      List bank statements
// @Tags         statements
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /statements [get]
func (h *StatementHandler) ListStatements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p := pagination.Parse(c)

	statements, total, err := h.statementService.ListStatements(c.Request.Context(), userID, p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch statements"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"statements": statements,
		"total":      total,
		"page":       p.Page,
		"limit":      p.Limit,
	}))
}

// GetStatement handles GET /statements/:id
// @Summary      Get statement by ID
// @Tags         statements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Statement ID"
// @Success      200  {object}  response.Response{data=service.StatementResponse}
// @Failure      404  {object}  response.Response
// @Router       /statements/{id} [get]
func (h *StatementHandler) GetStatement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	statement, err := h.statementService.GetStatement(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, statement))
}
