package admin

import (
	"strconv"

	handlershared "github.com/partnerconnector/internal/http/handlers/shared"
	"github.com/partnerconnector/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SetAdminRolesRequest replaces an admin's role set.
type SetAdminRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

// requireSuper only lets super admins through.
func (h *Handler) requireSuper(c *gin.Context) bool {
	if _, ok := handlershared.GetContextUint(c, "admin_id"); !ok {
		return false
	}
	if isSuper, exists := c.Get("is_super"); exists {
		if super, ok := isSuper.(bool); ok && super {
			return true
		}
	}
	response.Forbidden(c, "permission denied")
	return false
}

// GetAdminRoles returns the roles bound to an admin.
func (h *Handler) GetAdminRoles(c *gin.Context) {
	if !h.requireSuper(c) {
		return
	}
	adminID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || adminID == 0 {
		respondError(c, response.CodeBadRequest, "invalid admin id", nil)
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(uint(adminID))
	if err != nil {
		respondError(c, response.CodeInternal, "role query failed", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// SetAdminRoles replaces the roles bound to an admin.
func (h *Handler) SetAdminRoles(c *gin.Context) {
	if !h.requireSuper(c) {
		return
	}
	adminID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || adminID == 0 {
		respondError(c, response.CodeBadRequest, "invalid admin id", nil)
		return
	}

	var req SetAdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	admin, err := h.AdminRepo.GetByID(uint(adminID))
	if err != nil {
		respondError(c, response.CodeInternal, "admin query failed", err)
		return
	}
	if admin == nil {
		response.NotFound(c, "admin not found")
		return
	}
	if err := h.AuthzService.SetAdminRoles(admin.ID, req.Roles); err != nil {
		respondError(c, response.CodeInternal, "role update failed", err)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(admin.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "role query failed", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}
