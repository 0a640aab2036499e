package service

import (
	"context"

	"github.com/partnerconnector/internal/logger"
	"github.com/partnerconnector/internal/models"
	"github.com/partnerconnector/internal/queue"
	"github.com/partnerconnector/internal/repository"
)

// NotificationService delivers queued partner notifications. Delivery is best
// effort; a failed email is logged, not retried past the queue's policy.
type NotificationService struct {
	commissionRepo repository.CommissionRepository
	dealRepo       repository.DealRepository
	userRepo       repository.UserRepository
	emailService   *EmailService
}

// NewNotificationService creates a notification service.
func NewNotificationService(
	commissionRepo repository.CommissionRepository,
	dealRepo repository.DealRepository,
	userRepo repository.UserRepository,
	emailService *EmailService,
) *NotificationService {
	return &NotificationService{
		commissionRepo: commissionRepo,
		dealRepo:       dealRepo,
		userRepo:       userRepo,
		emailService:   emailService,
	}
}

// DispatchCommissionNotify handles a commission lifecycle task. The anchor's
// beneficiaries are resolved from the split ledger when present, otherwise the
// payment recipient alone is notified.
func (s *NotificationService) DispatchCommissionNotify(ctx context.Context, payload queue.CommissionNotifyPayload) error {
	payment, err := s.commissionRepo.GetPaymentByID(payload.PaymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		logger.Warnw("commission_notify_payment_missing", "payment_id", payload.PaymentID)
		return nil
	}
	deal, err := s.dealRepo.GetByID(payment.DealID)
	if err != nil {
		return err
	}
	if deal == nil {
		logger.Warnw("commission_notify_deal_missing", "payment_id", payload.PaymentID, "deal_id", payment.DealID)
		return nil
	}

	splits, err := s.commissionRepo.ListSplitsByPayment(payment.ID)
	if err != nil {
		return err
	}

	type target struct {
		userID uint
		amount models.Money
	}
	targets := make([]target, 0, len(splits)+1)
	if len(splits) > 0 {
		for _, split := range splits {
			targets = append(targets, target{userID: split.BeneficiaryUserID, amount: split.Amount})
		}
	} else {
		targets = append(targets, target{userID: payment.RecipientID, amount: payment.Amount})
	}

	ids := make([]uint, 0, len(targets))
	for _, t := range targets {
		ids = append(ids, t.userID)
	}
	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return err
	}

	for _, t := range targets {
		user, ok := users[t.userID]
		if !ok || user.Email == "" {
			continue
		}
		err := s.emailService.SendCommissionEmail(user.Email, CommissionEmailInput{
			EventType: payload.EventType,
			DealNo:    deal.DealNo,
			Amount:    t.amount,
			Reference: payment.TransferReference,
		})
		if err != nil {
			logger.Warnw("commission_notify_email_failed",
				"event_type", payload.EventType,
				"payment_id", payment.ID,
				"user_id", t.userID,
				"error", err,
			)
		}
	}
	return nil
}

// DispatchDealStageEmail handles a deal stage change task.
func (s *NotificationService) DispatchDealStageEmail(ctx context.Context, payload queue.DealStageEmailPayload) error {
	deal, err := s.dealRepo.GetByID(payload.DealID)
	if err != nil {
		return err
	}
	if deal == nil {
		logger.Warnw("deal_stage_email_deal_missing", "deal_id", payload.DealID)
		return nil
	}
	referrer, err := s.userRepo.GetByID(deal.ReferrerID)
	if err != nil {
		return err
	}
	if referrer == nil || referrer.Email == "" {
		return nil
	}

	err = s.emailService.SendDealStageEmail(referrer.Email, DealStageEmailInput{
		DealNo:       deal.DealNo,
		BusinessName: deal.BusinessName,
		Stage:        deal.Stage,
	})
	if err != nil {
		logger.Warnw("deal_stage_email_failed",
			"deal_id", deal.ID,
			"referrer_id", referrer.ID,
			"error", err,
		)
	}
	return nil
}
