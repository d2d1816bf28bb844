package handler

import (
	"net/http"
	"strconv"
	"time"

	"vouchbooks/internal/middleware"
	"vouchbooks/internal/service"
	"vouchbooks/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxHandler struct {
	taxService service.TaxService
}

func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

func (h *TaxHandler) RegisterRoutes(router *gin.RouterGroup) {
	tax := router.Group("/tax", middleware.RequireRole("admin", "user"))
	{
		tax.GET("/cit", h.GetCorporateTaxSummary)
		tax.GET("/form-a", h.GetFormA)
		tax.GET("/vat", h.GetVATReturn)
		tax.GET("/digital-assets", h.GetDigitalAssetTax)
	}

	filings := router.Group("/filings", middleware.RequireRole("admin", "user"))
	{
		filings.POST("", h.CreateFiling)
		filings.GET("", h.ListFilings)
		filings.GET("/:id", h.GetFiling)
		filings.PUT("/:id/submit", h.SubmitFiling)
	}

	admin := router.Group("/admin/filings", middleware.RequireRole("admin"))
	{
		admin.GET("", h.ListPendingReview)
		admin.PUT("/:userId/:id/review", h.ReviewFiling)
	}
}

// taxYear reads the year query param, defaulting to the current year.
func taxYear(c *gin.Context) int {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year == 0 {
		return time.Now().Year()
	}
	return year
}

// GetCorporateTaxSummary handles GET /tax/cit
// @Summary      Corporate tax summary
// @Description  Computes the CIT return figures for a tax year from the caller's books
// @Tags         tax
// @Produce      json
// @Security     BearerAuth
// @Param        year  query     int  false  "Tax year (default current year)"
// @Success      200   {object}  response.Response{data=tax.CITReturnData}
// @Failure      400   {object}  response.Response
// @Router       /tax/cit [get]
func (h *TaxHandler) GetCorporateTaxSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.taxService.GetCorporateTaxSummary(c.Request.Context(), userID, taxYear(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// GetFormA handles GET /tax/form-a
// @Summary      Form A (personal income tax)
// @Description  Computes the Form A figures for a tax year, including rent relief
// @Tags         tax
// @Produce      json
// @Security     BearerAuth
// @Param        year  query     int  false  "Tax year (default current year)"
// @Success      200   {object}  response.Response{data=tax.FormAData}
// @Failure      400   {object}  response.Response
// @Router       /tax/form-a [get]
func (h *TaxHandler) GetFormA(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	form, err := h.taxService.GetFormA(c.Request.Context(), userID, taxYear(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, form))
}

// GetVATReturn handles GET /tax/vat
// @Summary      VAT return
// @Description  Computes the monthly VAT return from the caller's books
// @Tags         tax
// @Produce      json
// @Security     BearerAuth
// @Param        year   query     int  false  "Tax year (default current year)"
// @Param        month  query     int  true   "Month (1-12)"
// @Success      200    {object}  response.Response{data=tax.VATReturnData}
// @Failure      400    {object}  response.Response
// @Router       /tax/vat [get]
func (h *TaxHandler) GetVATReturn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "month query parameter is required"))
		return
	}

	vat, err := h.taxService.GetVATReturn(c.Request.Context(), userID, taxYear(c), month)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vat))
}

// GetDigitalAssetTax handles GET /tax/digital-assets
// @Summary      Digital asset tax
// @Description  Computes capital gains tax on digital asset disposals for a tax year
// @Tags         tax
// @Produce      json
// @Security     BearerAuth
// @Param        year  query     int  false  "Tax year (default current year)"
// @Success      200   {object}  response.Response{data=tax.DigitalAssetTaxResult}
// @Failure      400   {object}  response.Response
// @Router       /tax/digital-assets [get]
func (h *TaxHandler) GetDigitalAssetTax(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.taxService.GetDigitalAssetTax(c.Request.Context(), userID, taxYear(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// CreateFiling handles POST /filings
// @Summary      Create tax filing
// @Description  Creates a draft filing with the current form figures frozen as a snapshot
// @Tags         filings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateFilingRequest  true  "Filing Payload"
// @Success      201      {object}  response.Response{data=service.FilingResponse}
// @Failure      400      {object}  response.Response
// @Router       /filings [post]
func (h *TaxHandler) CreateFiling(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.CreateFilingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	filing, err := h.taxService.CreateFiling(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, filing))
}

// ListFilings handles GET /filings
// @Summary      List tax filings
// @Tags         filings
// @Produce      json
// @Security     BearerAuth
// @Param        filing_type  query     string  false  "FORM_A, CIT_RETURN or VAT_RETURN"
// @Param        status       query     string  false  "DRAFT, SUBMITTED, ACCEPTED or REJECTED"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Number of items per page (default 20)"
// @Success      200          {object}  response.Response{data=object}
// @Failure      500          {object}  response.Response
// @Router       /filings [get]
func (h *TaxHandler) ListFilings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filings, total, err := h.taxService.ListFilings(c.Request.Context(), userID, c.Query("filing_type"), c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch filings"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"filings": filings,
		"total":   total,
		"page":    page,
		"limit":   limit,
	}))
}

// GetFiling handles GET /filings/:id
// @Summary      Get filing by ID
// @Tags         filings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Filing ID"
// @Success      200  {object}  response.Response{data=service.FilingResponse}
// @Failure      404  {object}  response.Response
// @Router       /filings/{id} [get]
func (h *TaxHandler) GetFiling(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filing, err := h.taxService.GetFiling(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, filing))
}

// SubmitFiling handles PUT /filings/:id/submit
// @Summary      Submit filing
// @Description  Moves a draft or rejected filing to SUBMITTED for review
// @Tags         filings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Filing ID"
// @Success      200  {object}  response.Response{data=service.FilingResponse}
// @Failure      400  {object}  response.Response
// @Router       /filings/{id}/submit [put]
func (h *TaxHandler) SubmitFiling(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filing, err := h.taxService.SubmitFiling(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, filing))
}

// ListPendingReview handles GET /admin/filings
// @Summary      List filings awaiting review
// @Description  Lists SUBMITTED filings across all users, oldest first (admin only)
// @Tags         filings
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /admin/filings [get]
func (h *TaxHandler) ListPendingReview(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filings, total, err := h.taxService.ListPendingReview(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch pending filings"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"filings": filings,
		"total":   total,
		"page":    page,
		"limit":   limit,
	}))
}

// ReviewFiling handles PUT /admin/filings/:userId/:id/review
// @Summary      Review filing
// @Description  Accepts or rejects a submitted filing, notifying the owner (admin only)
// @Tags         filings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId   path      string                       true  "Filing owner's user ID"
// @Param        id       path      string                       true  "Filing ID"
// @Param        payload  body      service.ReviewFilingRequest  true  "Review Decision"
// @Success      200      {object}  response.Response{data=service.FilingResponse}
// @Failure      400      {object}  response.Response
// @Router       /admin/filings/{userId}/{id}/review [put]
func (h *TaxHandler) ReviewFiling(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.ReviewFilingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	filing, err := h.taxService.ReviewFiling(c.Request.Context(), reviewerID, c.Param("userId"), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, filing))
}
