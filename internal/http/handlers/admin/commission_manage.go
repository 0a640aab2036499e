package admin

import (
	"strconv"
	"strings"

	"github.com/partnerconnector/internal/authz"
	handlershared "github.com/partnerconnector/internal/http/handlers/shared"
	"github.com/partnerconnector/internal/http/response"
	"github.com/partnerconnector/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateCommissionRequest opens the payout for a deal.
type CreateCommissionRequest struct {
	GrossAmount string `json:"gross_amount" binding:"required"`
}

// RejectPaymentRequest voids a pending payout.
type RejectPaymentRequest struct {
	Reason string `json:"reason"`
}

// MarkPaidRequest records the bank transfer.
type MarkPaidRequest struct {
	TransferReference string `json:"transfer_reference"`
}

// requirePermission checks the acting admin against the commission permission.
// Super admins bypass the check.
func (h *Handler) requirePermission(c *gin.Context, object, action string) (uint, bool) {
	adminID, ok := handlershared.GetContextUint(c, "admin_id")
	if !ok {
		return 0, false
	}
	if isSuper, exists := c.Get("is_super"); exists {
		if super, ok := isSuper.(bool); ok && super {
			return adminID, true
		}
	}
	allowed, err := h.AuthzService.EnforceAdmin(adminID, object, action)
	if err != nil {
		respondError(c, response.CodeInternal, "permission check failed", err)
		return 0, false
	}
	if !allowed {
		response.Forbidden(c, "permission denied")
		return 0, false
	}
	return adminID, true
}

// CreateCommission stamps the deal's gross commission and opens the payout.
func (h *Handler) CreateCommission(c *gin.Context) {
	adminID, ok := h.requirePermission(c, authz.ObjectCommission, authz.ActionApprove)
	if !ok {
		return
	}
	dealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || dealID == 0 {
		respondError(c, response.CodeBadRequest, "invalid deal id", nil)
		return
	}

	var req CreateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	gross, err := decimal.NewFromString(strings.TrimSpace(req.GrossAmount))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid gross amount", err)
		return
	}

	payment, err := h.CommissionService.CreateCommission(uint(dealID), gross, adminID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, payment)
}

// ApprovePayment approves a pending commission payment.
func (h *Handler) ApprovePayment(c *gin.Context) {
	adminID, ok := h.requirePermission(c, authz.ObjectCommission, authz.ActionApprove)
	if !ok {
		return
	}
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || paymentID == 0 {
		respondError(c, response.CodeBadRequest, "invalid payment id", nil)
		return
	}

	payment, err := h.CommissionService.ApprovePayment(uint(paymentID), adminID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, payment)
}

// RejectPayment voids a mis-entered payout so the deal can be distributed again.
func (h *Handler) RejectPayment(c *gin.Context) {
	adminID, ok := h.requirePermission(c, authz.ObjectCommission, authz.ActionApprove)
	if !ok {
		return
	}
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || paymentID == 0 {
		respondError(c, response.CodeBadRequest, "invalid payment id", nil)
		return
	}

	var req RejectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	payment, err := h.CommissionService.RejectPayment(uint(paymentID), adminID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, payment)
}

// MarkPaid records the bank transfer for an approved payment.
func (h *Handler) MarkPaid(c *gin.Context) {
	adminID, ok := h.requirePermission(c, authz.ObjectCommission, authz.ActionPay)
	if !ok {
		return
	}
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || paymentID == 0 {
		respondError(c, response.CodeBadRequest, "invalid payment id", nil)
		return
	}

	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	payment, err := h.CommissionService.MarkPaid(uint(paymentID), adminID, req.TransferReference)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, payment)
}

// GetDealPaymentStatus returns the payout view of a deal.
func (h *Handler) GetDealPaymentStatus(c *gin.Context) {
	if _, ok := h.requirePermission(c, authz.ObjectCommission, authz.ActionView); !ok {
		return
	}
	dealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || dealID == 0 {
		respondError(c, response.CodeBadRequest, "invalid deal id", nil)
		return
	}

	view, err := h.CommissionService.GetPaymentStatus(uint(dealID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// ListPayments lists commission payments.
func (h *Handler) ListPayments(c *gin.Context) {
	if _, ok := h.requirePermission(c, authz.ObjectCommission, authz.ActionView); !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	dealID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("deal_id")), 10, 64)
	recipientID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("recipient_id")), 10, 64)

	rows, total, err := h.CommissionService.ListPayments(repository.PaymentListFilter{
		Page:           page,
		PageSize:       pageSize,
		DealID:         uint(dealID),
		RecipientID:    uint(recipientID),
		ApprovalStatus: strings.TrimSpace(c.Query("approval_status")),
		PaymentStatus:  strings.TrimSpace(c.Query("payment_status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "payment list failed", err)
		return
	}
	response.SuccessWithPage(c, rows, response.BuildPagination(page, pageSize, total))
}

// ListSplits lists payment split rows.
func (h *Handler) ListSplits(c *gin.Context) {
	if _, ok := h.requirePermission(c, authz.ObjectCommission, authz.ActionView); !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	paymentID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("payment_id")), 10, 64)
	dealID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("deal_id")), 10, 64)
	beneficiaryID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("beneficiary_user_id")), 10, 64)

	rows, total, err := h.CommissionService.ListSplits(repository.SplitListFilter{
		Page:              page,
		PageSize:          pageSize,
		PaymentID:         uint(paymentID),
		DealID:            uint(dealID),
		BeneficiaryUserID: uint(beneficiaryID),
		Status:            strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "split list failed", err)
		return
	}
	response.SuccessWithPage(c, rows, response.BuildPagination(page, pageSize, total))
}

// ListAuditLogs lists commission audit entries.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	if _, ok := h.requirePermission(c, authz.ObjectCommission, authz.ActionView); !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	dealID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("deal_id")), 10, 64)
	paymentID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("payment_id")), 10, 64)

	rows, total, err := h.CommissionService.ListAuditLogs(repository.AuditLogListFilter{
		Page:      page,
		PageSize:  pageSize,
		DealID:    uint(dealID),
		PaymentID: uint(paymentID),
		Action:    strings.TrimSpace(c.Query("action")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "audit log list failed", err)
		return
	}
	response.SuccessWithPage(c, rows, response.BuildPagination(page, pageSize, total))
}
