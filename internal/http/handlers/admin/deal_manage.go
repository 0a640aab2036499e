package admin

import (
	"strconv"
	"strings"

	"github.com/partnerconnector/internal/authz"
	"github.com/partnerconnector/internal/http/response"
	"github.com/partnerconnector/internal/repository"
	"github.com/partnerconnector/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SendQuoteRequest carries the quote amount.
type SendQuoteRequest struct {
	QuoteAmount string `json:"quote_amount" binding:"required"`
}

// AdvanceStageRequest moves a deal to the next pipeline stage.
type AdvanceStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// DeclineDealRequest declines a deal with an optional reason.
type DeclineDealRequest struct {
	Reason string `json:"reason"`
}

// ListDeals lists deals with filters.
func (h *Handler) ListDeals(c *gin.Context) {
	if _, ok := h.requirePermission(c, authz.ObjectDeal, authz.ActionView); !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	referrerID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("referrer_id")), 10, 64)

	deals, total, err := h.DealService.List(repository.DealListFilter{
		Page:       page,
		PageSize:   pageSize,
		ReferrerID: uint(referrerID),
		Stage:      strings.TrimSpace(c.Query("stage")),
		DealNo:     strings.TrimSpace(c.Query("deal_no")),
		Keyword:    strings.TrimSpace(c.Query("keyword")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "deal list failed", err)
		return
	}
	response.SuccessWithPage(c, deals, response.BuildPagination(page, pageSize, total))
}

// GetDeal returns a single deal.
func (h *Handler) GetDeal(c *gin.Context) {
	if _, ok := h.requirePermission(c, authz.ObjectDeal, authz.ActionView); !ok {
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
	response.Success(c, deal)
}

// SendQuote stamps the quote amount and moves the deal forward.
func (h *Handler) SendQuote(c *gin.Context) {
	if _, ok := h.requirePermission(c, authz.ObjectDeal, authz.ActionManage); !ok {
		return
	}
	dealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || dealID == 0 {
		respondError(c, response.CodeBadRequest, "invalid deal id", nil)
		return
	}

	var req SendQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.QuoteAmount))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid quote amount", err)
		return
	}

	deal, err := h.DealService.SendQuote(service.SendQuoteInput{
		DealID:      uint(dealID),
		QuoteAmount: amount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, deal)
}

// AdvanceStage moves a deal to the requested stage.
func (h *Handler) AdvanceStage(c *gin.Context) {
	if _, ok := h.requirePermission(c, authz.ObjectDeal, authz.ActionManage); !ok {
		return
	}
	dealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || dealID == 0 {
		respondError(c, response.CodeBadRequest, "invalid deal id", nil)
		return
	}

	var req AdvanceStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	deal, err := h.DealService.AdvanceStage(uint(dealID), strings.TrimSpace(req.Stage))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, deal)
}

// DeclineDeal declines a deal.
func (h *Handler) DeclineDeal(c *gin.Context) {
	if _, ok := h.requirePermission(c, authz.ObjectDeal, authz.ActionManage); !ok {
		return
	}
	dealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || dealID == 0 {
		respondError(c, response.CodeBadRequest, "invalid deal id", nil)
		return
	}

	var req DeclineDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	deal, err := h.DealService.Decline(uint(dealID), strings.TrimSpace(req.Reason))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, deal)
}
