package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/partnerconnector/internal/constants"
	"github.com/partnerconnector/internal/logger"
	"github.com/partnerconnector/internal/models"
	"github.com/partnerconnector/internal/queue"
	"github.com/partnerconnector/internal/repository"

	"github.com/shopspring/decimal"
)

// dealStageTransitions enumerates the pipeline. Stages only move forward;
// declined is reachable from any non-terminal stage. Completed is reached
// through the commission payout, never directly.
var dealStageTransitions = map[string][]string{
	constants.DealStageQuoteRequestReceived: {constants.DealStageQuoteSent},
	constants.DealStageQuoteSent:            {constants.DealStageQuoteApproved},
	constants.DealStageQuoteApproved:        {constants.DealStageAgreementSent},
	constants.DealStageAgreementSent:        {constants.DealStageSignedAwaitingDocs},
	constants.DealStageSignedAwaitingDocs:   {constants.DealStageApproved},
	constants.DealStageApproved:             {constants.DealStageLiveConfirmLTR},
	constants.DealStageLiveConfirmLTR:       {constants.DealStageInvoiceReceived},
	constants.DealStageInvoiceReceived:      {constants.DealStageCompleted},
	constants.DealStageCompleted:            {},
	constants.DealStageDeclined:             {},
}

// CanTransitionDealStage reports whether a pipeline move is legal.
func CanTransitionDealStage(from, to string) bool {
	if to == constants.DealStageDeclined {
		return !IsDealStageTerminal(from)
	}
	return containsTransition(dealStageTransitions[from], to)
}

// IsDealStageTerminal reports whether a stage admits no further moves.
func IsDealStageTerminal(stage string) bool {
	next, ok := dealStageTransitions[stage]
	return ok && len(next) == 0
}

// isCommissionEligibleStage reports whether a deal stage allows distribution.
func isCommissionEligibleStage(stage string) bool {
	switch stage {
	case constants.DealStageApproved,
		constants.DealStageLiveConfirmLTR,
		constants.DealStageInvoiceReceived:
		return true
	default:
		return false
	}
}

// CreateReferralInput carries a partner's referral submission.
type CreateReferralInput struct {
	ReferrerID   uint
	BusinessName string
	ContactName  string
	ContactEmail string
	ContactPhone string
}

// SendQuoteInput carries the quote details.
type SendQuoteInput struct {
	DealID      uint
	QuoteAmount decimal.Decimal
}

// DealService manages the referral pipeline.
type DealService struct {
	dealRepo    repository.DealRepository
	userRepo    repository.UserRepository
	queueClient *queue.Client
}

// NewDealService creates a deal service.
func NewDealService(dealRepo repository.DealRepository, userRepo repository.UserRepository, queueClient *queue.Client) *DealService {
	return &DealService{
		dealRepo:    dealRepo,
		userRepo:    userRepo,
		queueClient: queueClient,
	}
}

// CreateReferral records a new referral at the start of the pipeline.
func (s *DealService) CreateReferral(input CreateReferralInput) (*models.Deal, error) {
	referrer, err := s.userRepo.GetByID(input.ReferrerID)
	if err != nil {
		return nil, err
	}
	if referrer == nil {
		return nil, ErrNotFound
	}
	if referrer.Status != constants.UserStatusActive {
		return nil, ErrAccountDisabled
	}
	businessName := strings.TrimSpace(input.BusinessName)
	if businessName == "" {
		return nil, ErrReferralInvalid
	}

	deal := &models.Deal{
		DealNo:       generateDealNo(),
		ReferrerID:   referrer.ID,
		BusinessName: businessName,
		ContactName:  strings.TrimSpace(input.ContactName),
		ContactEmail: strings.ToLower(strings.TrimSpace(input.ContactEmail)),
		ContactPhone: strings.TrimSpace(input.ContactPhone),
		Stage:        constants.DealStageQuoteRequestReceived,
		QuoteAmount:  models.NewMoneyFromDecimal(decimal.Zero),
	}
	if err := s.dealRepo.Create(deal); err != nil {
		return nil, err
	}
	logger.Infow("deal_referral_created",
		"deal_id", deal.ID,
		"deal_no", deal.DealNo,
		"referrer_id", deal.ReferrerID,
	)
	return deal, nil
}

// SendQuote stamps the quote amount and moves the deal to quote_sent.
func (s *DealService) SendQuote(input SendQuoteInput) (*models.Deal, error) {
	deal, err := s.dealRepo.GetByID(input.DealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrNotFound
	}
	if !CanTransitionDealStage(deal.Stage, constants.DealStageQuoteSent) {
		return nil, ErrDealStageInvalid
	}
	if input.QuoteAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrGrossAmountInvalid
	}

	now := time.Now()
	deal.Stage = constants.DealStageQuoteSent
	deal.QuoteAmount = models.NewMoneyFromDecimal(input.QuoteAmount)
	deal.QuoteSentAt = &now
	if err := s.dealRepo.Update(deal); err != nil {
		return nil, err
	}
	s.notifyStageChanged(deal)
	return deal, nil
}

// AdvanceStage moves a deal one step forward in the pipeline.
func (s *DealService) AdvanceStage(dealID uint, toStage string) (*models.Deal, error) {
	toStage = strings.TrimSpace(toStage)
	if toStage == constants.DealStageCompleted || toStage == constants.DealStageDeclined {
		// Completed comes from the payout flow, declined has its own entry point.
		return nil, ErrDealStageInvalid
	}
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrNotFound
	}
	if !CanTransitionDealStage(deal.Stage, toStage) {
		return nil, ErrDealStageInvalid
	}

	now := time.Now()
	deal.Stage = toStage
	if toStage == constants.DealStageSignedAwaitingDocs {
		deal.SignedAt = &now
	}
	if err := s.dealRepo.Update(deal); err != nil {
		return nil, err
	}
	logger.Infow("deal_stage_advanced",
		"deal_id", deal.ID,
		"deal_no", deal.DealNo,
		"stage", deal.Stage,
	)
	s.notifyStageChanged(deal)
	return deal, nil
}

// Decline moves a deal to the declined stage with a reason.
func (s *DealService) Decline(dealID uint, reason string) (*models.Deal, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrNotFound
	}
	if !CanTransitionDealStage(deal.Stage, constants.DealStageDeclined) {
		return nil, ErrDealStageInvalid
	}

	now := time.Now()
	deal.Stage = constants.DealStageDeclined
	deal.DeclinedReason = strings.TrimSpace(reason)
	deal.DeclinedAt = &now
	if err := s.dealRepo.Update(deal); err != nil {
		return nil, err
	}
	logger.Infow("deal_declined",
		"deal_id", deal.ID,
		"deal_no", deal.DealNo,
		"reason", deal.DeclinedReason,
	)
	s.notifyStageChanged(deal)
	return deal, nil
}

// GetByID fetches a deal.
func (s *DealService) GetByID(dealID uint) (*models.Deal, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrNotFound
	}
	return deal, nil
}

// List queries deals.
func (s *DealService) List(filter repository.DealListFilter) ([]models.Deal, int64, error) {
	return s.dealRepo.List(filter)
}

func (s *DealService) notifyStageChanged(deal *models.Deal) {
	if s.queueClient == nil || deal == nil {
		return
	}
	err := s.queueClient.EnqueueDealStageEmail(queue.DealStageEmailPayload{
		DealID: deal.ID,
		Stage:  deal.Stage,
	})
	if err != nil {
		logger.Warnw("deal_stage_email_enqueue_failed", "deal_id", deal.ID, "error", err)
	}
}

func generateDealNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("PC%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
