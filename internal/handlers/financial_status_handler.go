package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/services"
)

// FinancialStatusHandler handles the authenticated user's financial status.
type FinancialStatusHandler struct {
	statusService services.FinancialStatusServicer
	auditService  services.AuditServicer
}

// NewFinancialStatusHandler creates a new FinancialStatusHandler.
func NewFinancialStatusHandler(statusService services.FinancialStatusServicer, auditService services.AuditServicer) *FinancialStatusHandler {
	return &FinancialStatusHandler{statusService: statusService, auditService: auditService}
}

// GrossSalaryRequest carries the only user-assigned amount of a status.
// Aggregate totals are derived from entries and cannot be written.
type GrossSalaryRequest struct {
	GrossSalary decimal.Decimal `json:"gross_salary" binding:"money" swaggertype:"string" example:"5000.00"`
}

// Create opens the financial status of the user.
// @Summary     Create financial status
// @Tags        financial-status
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GrossSalaryRequest true "Gross salary"
// @Success     201 {object} models.FinancialStatus "Financial status created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Financial status already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /financial-status [post]
func (h *FinancialStatusHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GrossSalaryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.statusService.Create(userID, req.GrossSalary)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_FINANCIAL_STATUS", "financial_status", status.ID, c.ClientIP(),
		map[string]interface{}{"gross_salary": req.GrossSalary.StringFixed(2)})

	c.JSON(http.StatusCreated, gin.H{"financial_status": status})
}

// Get returns the financial status of the user.
// @Summary     Get financial status
// @Tags        financial-status
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.FinancialStatus "Financial status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Financial status not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /financial-status [get]
func (h *FinancialStatusHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.statusService.GetForUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"financial_status": status})
}

// Update sets the gross salary.
// @Summary     Update gross salary
// @Tags        financial-status
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GrossSalaryRequest true "Gross salary"
// @Success     200 {object} models.FinancialStatus "Updated financial status"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Financial status not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /financial-status [put]
func (h *FinancialStatusHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GrossSalaryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.statusService.UpdateGrossSalary(userID, req.GrossSalary)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_FINANCIAL_STATUS", "financial_status", status.ID, c.ClientIP(),
		map[string]interface{}{"gross_salary": req.GrossSalary.StringFixed(2)})

	c.JSON(http.StatusOK, gin.H{"financial_status": status})
}

// Delete removes the financial status and every entry under it.
// @Summary     Delete financial status
// @Tags        financial-status
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Financial status deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Financial status not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /financial-status [delete]
func (h *FinancialStatusHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.statusService.Delete(userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_FINANCIAL_STATUS", "financial_status", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Financial status deleted successfully"})
}

// Summary returns the status with derived figures and goal progress.
// @Summary     Financial summary
// @Tags        financial-status
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.FinancialSummary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Financial status not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /financial-status/summary [get]
func (h *FinancialStatusHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.statusService.Summary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// Recalculate recomputes every aggregate from the stored entries.
// @Summary     Recalculate aggregates
// @Tags        financial-status
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.FinancialStatus "Recalculated financial status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Financial status not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /financial-status/recalculate [post]
func (h *FinancialStatusHandler) Recalculate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.statusService.Recalculate(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECALCULATE_FINANCIAL_STATUS", "financial_status", status.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"financial_status": status})
}
