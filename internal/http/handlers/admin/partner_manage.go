package admin

import (
	"strconv"
	"strings"

	"github.com/partnerconnector/internal/authz"
	"github.com/partnerconnector/internal/constants"
	"github.com/partnerconnector/internal/http/response"
	"github.com/partnerconnector/internal/repository"

	"github.com/gin-gonic/gin"
)

// UpdatePartnerStatusRequest toggles a partner account.
type UpdatePartnerStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active disabled"`
}

// ListPartners lists partner accounts with filters.
func (h *Handler) ListPartners(c *gin.Context) {
	if _, ok := h.requirePermission(c, authz.ObjectPartner, authz.ActionView); !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	parentID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("parent_partner_id")), 10, 64)

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:            page,
		PageSize:        pageSize,
		Keyword:         strings.TrimSpace(c.Query("keyword")),
		Status:          strings.TrimSpace(c.Query("status")),
		ParentPartnerID: uint(parentID),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "partner list failed", err)
		return
	}
	response.SuccessWithPage(c, users, response.BuildPagination(page, pageSize, total))
}

// GetPartner returns a single partner account with its upline chain.
func (h *Handler) GetPartner(c *gin.Context) {
	if _, ok := h.requirePermission(c, authz.ObjectPartner, authz.ActionView); !ok {
		return
	}
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		respondError(c, response.CodeBadRequest, "invalid partner id", nil)
		return
	}

	user, err := h.UserRepo.GetByID(uint(userID))
	if err != nil {
		respondError(c, response.CodeInternal, "partner query failed", err)
		return
	}
	if user == nil {
		response.NotFound(c, "partner not found")
		return
	}
	chain, err := h.HierarchyService.ResolveChain(user.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "upline query failed", err)
		return
	}
	response.Success(c, gin.H{
		"partner": user,
		"upline":  chain,
	})
}

// UpdatePartnerStatus enables or disables a partner account.
func (h *Handler) UpdatePartnerStatus(c *gin.Context) {
	if _, ok := h.requirePermission(c, authz.ObjectPartner, authz.ActionManage); !ok {
		return
	}
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		respondError(c, response.CodeBadRequest, "invalid partner id", nil)
		return
	}

	var req UpdatePartnerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.UserRepo.GetByID(uint(userID))
	if err != nil {
		respondError(c, response.CodeInternal, "partner query failed", err)
		return
	}
	if user == nil {
		response.NotFound(c, "partner not found")
		return
	}
	if req.Status == constants.UserStatusActive {
		user.Status = constants.UserStatusActive
	} else {
		user.Status = constants.UserStatusDisabled
	}
	if err := h.UserRepo.Update(user); err != nil {
		respondError(c, response.CodeInternal, "partner update failed", err)
		return
	}
	response.Success(c, user)
}
