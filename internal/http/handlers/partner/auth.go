package partner

import (
	handlershared "github.com/partnerconnector/internal/http/handlers/shared"
	"github.com/partnerconnector/internal/http/response"
	"github.com/partnerconnector/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest creates a partner account.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	DisplayName     string `json:"display_name" binding:"required"`
	CompanyName     string `json:"company_name"`
	Phone           string `json:"phone"`
	ParentPartnerID *uint  `json:"parent_partner_id"`
}

// LoginRequest authenticates a partner.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a partner account, optionally under a parent partner.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.PartnerAuthService.Register(service.RegisterPartnerInput{
		Email:           req.Email,
		Password:        req.Password,
		DisplayName:     req.DisplayName,
		CompanyName:     req.CompanyName,
		Phone:           req.Phone,
		ParentPartnerID: req.ParentPartnerID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, expiresAt, err := h.PartnerAuthService.GenerateJWT(user)
	if err != nil {
		respondError(c, response.CodeInternal, "token generation failed", err)
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}

// Login authenticates a partner and issues a JWT.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, token, expiresAt, err := h.PartnerAuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}

// Me returns the current partner profile with the upline chain.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return
	}

	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "profile query failed", err)
		return
	}
	if user == nil {
		response.NotFound(c, "account not found")
		return
	}
	chain, err := h.HierarchyService.ResolveChain(user.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "upline query failed", err)
		return
	}
	response.Success(c, gin.H{
		"user":   user,
		"upline": chain,
	})
}
