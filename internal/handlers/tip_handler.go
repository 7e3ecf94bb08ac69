package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// TipHandler handles the financial tip catalogue. Reads are open to any
// authenticated user; writes are mounted behind the admin guard.
type TipHandler struct {
	tipService   services.TipServicer
	auditService services.AuditServicer
}

// NewTipHandler creates a new TipHandler.
func NewTipHandler(tipService services.TipServicer, auditService services.AuditServicer) *TipHandler {
	return &TipHandler{tipService: tipService, auditService: auditService}
}

// TipRequest is the payload for creating or replacing a tip.
type TipRequest struct {
	Title    string             `json:"advice_title" binding:"required,max=500"`
	Content  string             `json:"advice_content" binding:"max=10000"`
	Category models.TipCategory `json:"category" binding:"required,tip_category" example:"Savings"`
}

func (r TipRequest) toModel() *models.FinancialTip {
	return &models.FinancialTip{Title: r.Title, Content: r.Content, Category: r.Category}
}

// ListTips handles listing tips.
// @Summary     List financial tips
// @Tags        tips
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Filter by category (Investment, Savings, Debt_reduction, Credit)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.FinancialTip] "Paginated tips"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tips [get]
func (h *TipHandler) ListTips(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var category *models.TipCategory
	if v := c.Query("category"); v != "" {
		cat := models.TipCategory(v)
		if !cat.IsValid() {
			respondWithError(c, apperrors.WithField(apperrors.ErrInvalidInput, "category",
				"category must be one of Investment, Savings, Debt_reduction, Credit"))
			return
		}
		category = &cat
	}

	result, err := h.tipService.List(page, category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTip handles fetching one tip.
// @Summary     Get a financial tip
// @Tags        tips
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Tip ID"
// @Success     200 {object} models.FinancialTip "Tip"
// @Failure     400 {object} ErrorResponse "Invalid tip ID"
// @Failure     404 {object} ErrorResponse "Tip not found"
// @Router      /tips/{id} [get]
func (h *TipHandler) GetTip(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tip, err := h.tipService.Get(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tip": tip})
}

// CreateTip handles adding a tip.
// @Summary     Create a financial tip
// @Tags        tips
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TipRequest true "Tip"
// @Success     201 {object} models.FinancialTip "Tip created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tips [post]
func (h *TipHandler) CreateTip(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TipRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	tip, err := h.tipService.Create(req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TIP", "financial_tip", tip.ID, c.ClientIP(),
		map[string]interface{}{"category": tip.Category})

	c.JSON(http.StatusCreated, gin.H{"tip": tip})
}

// UpdateTip handles replacing a tip.
// @Summary     Update a financial tip
// @Tags        tips
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string     true "Tip ID"
// @Param       request body TipRequest true "Tip"
// @Success     200 {object} models.FinancialTip "Updated tip"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Tip not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tips/{id} [put]
func (h *TipHandler) UpdateTip(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TipRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	tip, err := h.tipService.Update(id, req.toModel())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TIP", "financial_tip", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"tip": tip})
}

// DeleteTip handles removing a tip.
// @Summary     Delete a financial tip
// @Tags        tips
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Tip ID"
// @Success     200 {object} map[string]string "Tip deleted"
// @Failure     400 {object} ErrorResponse "Invalid tip ID"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Tip not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tips/{id} [delete]
func (h *TipHandler) DeleteTip(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tipService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TIP", "financial_tip", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Tip deleted successfully"})
}
