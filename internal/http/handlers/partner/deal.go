package partner

import (
	"strconv"
	"strings"

	handlershared "github.com/partnerconnector/internal/http/handlers/shared"
	"github.com/partnerconnector/internal/http/response"
	"github.com/partnerconnector/internal/repository"
	"github.com/partnerconnector/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateReferralRequest submits a new business referral.
type CreateReferralRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

// CreateReferral submits a referral into the pipeline.
func (h *Handler) CreateReferral(c *gin.Context) {
	userID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return
	}

	var req CreateReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	deal, err := h.DealService.CreateReferral(service.CreateReferralInput{
		ReferrerID:   userID,
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, deal)
}

// ListMyDeals lists the current partner's referrals.
func (h *Handler) ListMyDeals(c *gin.Context) {
	userID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	deals, total, err := h.DealService.List(repository.DealListFilter{
		Page:       page,
		PageSize:   pageSize,
		ReferrerID: userID,
		Stage:      strings.TrimSpace(c.Query("stage")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "deal list failed", err)
		return
	}
	response.SuccessWithPage(c, deals, response.BuildPagination(page, pageSize, total))
}

// GetMyDeal returns one of the current partner's deals.
func (h *Handler) GetMyDeal(c *gin.Context) {
	userID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	dealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || dealID == 0 {
		respondError(c, response.CodeBadRequest, "invalid deal id", nil)
		return
	}

	deal, err := h.DealService.GetByID(uint(dealID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if deal.ReferrerID != userID {
		response.NotFound(c, "deal not found")
		return
	}
	response.Success(c, deal)
}

// ListMyPayments lists commission payments addressed to the current partner.
func (h *Handler) ListMyPayments(c *gin.Context) {
	userID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	rows, total, err := h.CommissionService.ListPayments(repository.PaymentListFilter{
		Page:          page,
		PageSize:      pageSize,
		RecipientID:   userID,
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "payment list failed", err)
		return
	}
	response.SuccessWithPage(c, rows, response.BuildPagination(page, pageSize, total))
}

// ListMySplits lists split ledger rows where the current partner is the beneficiary.
func (h *Handler) ListMySplits(c *gin.Context) {
	userID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	dealID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("deal_id")), 10, 64)

	rows, total, err := h.CommissionService.ListSplits(repository.SplitListFilter{
		Page:              page,
		PageSize:          pageSize,
		DealID:            uint(dealID),
		BeneficiaryUserID: userID,
		Status:            strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "split list failed", err)
		return
	}
	response.SuccessWithPage(c, rows, response.BuildPagination(page, pageSize, total))
}
