package handler

import (
	"net/http"
	"strconv"

	"vouchbooks/internal/bank"
	"vouchbooks/internal/middleware"
	"vouchbooks/internal/service"
	"vouchbooks/pkg/response"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	txnService service.TransactionService
}

func NewTransactionHandler(txnService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnService: txnService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	txns := router.Group("/transactions", middleware.RequireRole("admin", "user"))
	{
		txns.POST("", h.CreateTransaction)
		txns.GET("", h.ListTransactions)
		txns.GET("/categories", h.ListCategories)
		txns.GET("/:id", h.GetTransaction)
		txns.PUT("/:id", h.UpdateTransaction)
		txns.DELETE("/:id", h.DeleteTransaction)
	}
}

// CreateTransaction handles POST /transactions
// @Summary      Create a transaction
// @Description  Records an income or expense, auto-categorising expenses and checking deductibility evidence
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateTransactionRequest  true  "Transaction Payload"
// @Success      201      {object}  response.Response{data=service.TransactionResponse}
// @Failure      400      {object}  response.Response
// @Router       /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	txn, err := h.txnService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, txn))
}

// ListTransactions handles GET /transactions with filters and pagination
// @Summary      List transactions
// @Description  Retrieves the caller's transactions, filterable by type, category, source, review flag and date range
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        type        query     string  false  "income or expense"
// @Param        category_id query     string  false  "Category ID"
// @Param        source      query     string  false  "manual or bank_statement"
// @Param        flagged     query     bool    false  "Only transactions flagged for review"
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Number of items per page (default 20)"
// @Success      200         {object}  response.Response{data=object}
// @Failure      500         {object}  response.Response
// @Router       /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := service.TransactionListFilter{
		Type:       c.Query("type"),
		CategoryID: c.Query("category_id"),
		Source:     c.Query("source"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
	}
	if raw := c.Query("flagged"); raw != "" {
		flagged, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid flagged filter"))
			return
		}
		filter.FlaggedForReview = &flagged
	}

	txns, total, err := h.txnService.ListTransactions(c.Request.Context(), userID, filter, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch transactions"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"transactions": txns,
		"total":        total,
		"page":         page,
		"limit":        limit,
	}))
}

// ListCategories handles GET /transactions/categories
// @Summary      List expense categories
// @Description  Returns the known expense categories with their deductibility
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]bank.CategoryResult}
// @Router       /transactions/categories [get]
func (h *TransactionHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, bank.Categories()))
}

// GetTransaction handles GET /transactions/:id
// @Summary      Get transaction by ID
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  response.Response{data=service.TransactionResponse}
// @Failure      404  {object}  response.Response
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	txn, err := h.txnService.GetTransaction(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, txn))
}

// UpdateTransaction handles PUT /transactions/:id
// @Summary      Update transaction
// @Description  Updates a transaction, re-checking deductibility evidence
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true  "Transaction ID"
// @Param        payload  body      service.UpdateTransactionRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=service.TransactionResponse}
// @Failure      400      {object}  response.Response
// @Router       /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	txn, err := h.txnService.UpdateTransaction(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, txn))
}

// DeleteTransaction handles DELETE /transactions/:id
// @Summary      Delete transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.txnService.DeleteTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Transaction deleted successfully"))
}
