package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// AdminHandler handles user administration. Every route requires the admin role.
type AdminHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService services.UserServicer, auditService services.AuditServicer) *AdminHandler {
	return &AdminHandler{userService: userService, auditService: auditService}
}

// SetActiveRequest activates or deactivates an account.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ListUsers handles listing all users.
// @Summary     List users
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[UserResponse] "Paginated users"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	users := make([]UserResponse, 0, len(result.Data))
	for i := range result.Data {
		users = append(users, newUserResponse(&result.Data[i]))
	}

	c.JSON(http.StatusOK, pagination.NewPageResponse(users, result.Page, result.PageSize, result.TotalItems))
}

// SetActive handles activating or deactivating a user.
// @Summary     Activate or deactivate a user
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "User ID"
// @Param       request body SetActiveRequest true "Activation flag"
// @Success     200 {object} UserResponse "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/users/{id}/active [put]
func (h *AdminHandler) SetActive(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetActiveRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	if id == adminID && !*req.IsActive {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrForbidden, "Administrators cannot deactivate themselves"))
		return
	}

	user, err := h.userService.SetActive(id, *req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "SET_USER_ACTIVE", "user", id, c.ClientIP(),
		map[string]interface{}{"is_active": *req.IsActive})

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// DeleteUser handles removing a user and all of their financial data.
// @Summary     Delete a user
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} map[string]string "User deleted"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if id == adminID {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrForbidden, "Administrators cannot delete themselves"))
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "DELETE_USER", "user", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
