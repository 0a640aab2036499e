package service

import (
	"strings"
	"time"

	"github.com/partnerconnector/internal/constants"
	"github.com/partnerconnector/internal/logger"
	"github.com/partnerconnector/internal/models"
	"github.com/partnerconnector/internal/queue"
	"github.com/partnerconnector/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatusView is the aggregate payout view of a deal.
type PaymentStatusView struct {
	HasPayment bool                       `json:"has_payment"`
	Payment    *models.CommissionPayment  `json:"payment,omitempty"`
	Payments   []models.CommissionPayment `json:"payments,omitempty"`
	Splits     []models.PaymentSplit      `json:"splits,omitempty"`
}

// CommissionService orchestrates commission distribution, approval and payout.
type CommissionService struct {
	commissionRepo repository.CommissionRepository
	dealRepo       repository.DealRepository
	userRepo       repository.UserRepository
	hierarchySvc   *HierarchyService
	queueClient    *queue.Client
}

// NewCommissionService creates a commission service.
func NewCommissionService(
	commissionRepo repository.CommissionRepository,
	dealRepo repository.DealRepository,
	userRepo repository.UserRepository,
	hierarchySvc *HierarchyService,
	queueClient *queue.Client,
) *CommissionService {
	return &CommissionService{
		commissionRepo: commissionRepo,
		dealRepo:       dealRepo,
		userRepo:       userRepo,
		hierarchySvc:   hierarchySvc,
		queueClient:    queueClient,
	}
}

// CreateCommission stamps the deal's gross commission and opens the payout:
// one anchor payment record for the referrer plus pending split rows for every
// upline level present. A deal is distributed at most once; repeat calls fail
// with ErrAlreadyDistributed.
func (s *CommissionService) CreateCommission(dealID uint, gross decimal.Decimal, actorAdminID uint) (*models.CommissionPayment, error) {
	if gross.LessThanOrEqual(decimal.Zero) {
		return nil, ErrGrossAmountInvalid
	}

	var anchor *models.CommissionPayment
	err := s.commissionRepo.Transaction(func(tx *gorm.DB) error {
		txCommission := s.commissionRepo.WithTx(tx)
		txDeal := s.dealRepo.WithTx(tx)

		deal, err := txDeal.GetByIDForUpdate(dealID)
		if err != nil {
			return err
		}
		if deal == nil {
			return ErrNotFound
		}
		if !isCommissionEligibleStage(deal.Stage) {
			return ErrDealNotEligible
		}

		activeCount, err := txCommission.CountActivePaymentsByDeal(deal.ID)
		if err != nil {
			return err
		}
		splitCount, err := txCommission.CountSplitsByDeal(deal.ID)
		if err != nil {
			return err
		}
		if activeCount > 0 || splitCount > 0 {
			return ErrAlreadyDistributed
		}

		chain, err := s.hierarchySvc.ResolveChain(deal.ReferrerID)
		if err != nil {
			return err
		}
		shares := ComputeSplits(gross, chain)
		if len(shares) == 0 {
			return ErrNotFound
		}

		now := time.Now()
		grossMoney := models.NewMoneyFromDecimal(gross)
		deal.ActualCommission = &grossMoney
		if err := txDeal.Update(deal); err != nil {
			return err
		}

		referrerShare := shares[0]
		anchor = &models.CommissionPayment{
			DealID:         deal.ID,
			RecipientID:    referrerShare.UserID,
			Level:          0,
			Percentage:     models.NewMoneyFromDecimal(referrerShare.Percentage),
			Amount:         models.NewMoneyFromDecimal(referrerShare.Amount),
			GrossAmount:    grossMoney,
			ApprovalStatus: constants.ApprovalStatusNeedsApproval,
			PaymentStatus:  constants.PaymentStatusNeedsApproval,
		}
		if err := txCommission.CreatePayment(anchor); err != nil {
			return err
		}

		splits := make([]models.PaymentSplit, 0, len(shares))
		for _, share := range shares {
			splits = append(splits, models.PaymentSplit{
				PaymentID:         anchor.ID,
				DealID:            deal.ID,
				BeneficiaryUserID: share.UserID,
				Level:             share.Level,
				Percentage:        models.NewMoneyFromDecimal(share.Percentage),
				Amount:            models.NewMoneyFromDecimal(share.Amount),
				Status:            constants.SplitStatusPending,
			})
		}
		if err := txCommission.CreateSplits(splits); err != nil {
			return err
		}

		entry := &models.CommissionAuditLog{
			PaymentID:    anchor.ID,
			DealID:       deal.ID,
			ActorAdminID: actorAdminID,
			Action:       constants.AuditActionCommissionCreated,
			Flow:         constants.DistributionFlowLedger,
			Detail: models.JSON{
				"gross_amount": grossMoney.String(),
				"split_count":  len(splits),
			},
			CreatedAt: now,
		}
		return txCommission.CreateAuditLog(entry)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("commission_created",
		"deal_id", dealID,
		"payment_id", anchor.ID,
		"gross_amount", anchor.GrossAmount.String(),
		"actor_admin_id", actorAdminID,
	)
	s.notify(constants.NotificationEventCommissionCreated, anchor)
	return anchor, nil
}

// ApprovePayment approves a payment under a row lock. The anchor must still be
// needs_approval; exactly one of two concurrent calls can win. With split rows
// present the anchor and its splits move to approved as stored. Without splits
// the record predates the split ledger: the anchor is closed out as distributed
// and per-level payment records are synthesized fresh from the current
// hierarchy, already approved.
func (s *CommissionService) ApprovePayment(paymentID, approverID uint) (*models.CommissionPayment, error) {
	var payment *models.CommissionPayment
	var flow string
	err := s.commissionRepo.Transaction(func(tx *gorm.DB) error {
		txCommission := s.commissionRepo.WithTx(tx)
		txDeal := s.dealRepo.WithTx(tx)

		var err error
		payment, err = txCommission.GetPaymentByIDForUpdate(paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return ErrNotFound
		}
		if !CanTransitionApprovalStatus(payment.ApprovalStatus, constants.ApprovalStatusApproved) {
			return ErrPaymentStatusInvalid
		}

		deal, err := txDeal.GetByID(payment.DealID)
		if err != nil {
			return err
		}
		if deal == nil {
			return ErrNotFound
		}

		hasSplits, err := txCommission.HasSplitsByPayment(payment.ID)
		if err != nil {
			return err
		}
		targetStatus := constants.PaymentStatusApproved
		if !hasSplits {
			targetStatus = constants.PaymentStatusDistributed
		}
		if !CanTransitionPaymentStatus(payment.PaymentStatus, targetStatus) {
			return ErrPaymentStatusInvalid
		}

		now := time.Now()
		payment.ApprovalStatus = constants.ApprovalStatusApproved
		payment.ApprovedBy = &approverID
		payment.ApprovedAt = &now
		payment.PaymentStatus = targetStatus

		if hasSplits {
			flow = constants.DistributionFlowLedger
			if err := txCommission.UpdatePayment(payment); err != nil {
				return err
			}
			if _, err := txCommission.UpdateSplitStatusByPayment(payment.ID, constants.SplitStatusPending, constants.SplitStatusApproved); err != nil {
				return err
			}
		} else {
			flow = constants.DistributionFlowLegacy
			if err := txCommission.UpdatePayment(payment); err != nil {
				return err
			}

			chain, err := s.hierarchySvc.ResolveChain(deal.ReferrerID)
			if err != nil {
				return err
			}
			shares := ComputeSplits(payment.GrossAmount.Decimal, chain)
			records := make([]models.CommissionPayment, 0, len(shares))
			for _, share := range shares {
				records = append(records, models.CommissionPayment{
					DealID:         deal.ID,
					RecipientID:    share.UserID,
					Level:          share.Level,
					Percentage:     models.NewMoneyFromDecimal(share.Percentage),
					Amount:         models.NewMoneyFromDecimal(share.Amount),
					GrossAmount:    payment.GrossAmount,
					ApprovalStatus: constants.ApprovalStatusApproved,
					PaymentStatus:  constants.PaymentStatusApproved,
					ApprovedBy:     &approverID,
					ApprovedAt:     &now,
				})
			}
			if err := txCommission.CreatePayments(records); err != nil {
				return err
			}
		}

		entry := &models.CommissionAuditLog{
			PaymentID:    payment.ID,
			DealID:       deal.ID,
			ActorAdminID: approverID,
			Action:       constants.AuditActionPaymentApproved,
			Flow:         flow,
			CreatedAt:    now,
		}
		return txCommission.CreateAuditLog(entry)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("commission_payment_approved",
		"payment_id", payment.ID,
		"deal_id", payment.DealID,
		"flow", flow,
		"approver_id", approverID,
	)
	s.notify(constants.NotificationEventCommissionApproved, payment)
	return payment, nil
}

// RejectPayment voids a payout that was entered wrong, before approval. The
// anchor moves to rejected, its pending splits are released and the deal's
// gross stamp is cleared, so the deal can be distributed again with the right
// amount.
func (s *CommissionService) RejectPayment(paymentID, actorID uint, reason string) (*models.CommissionPayment, error) {
	var payment *models.CommissionPayment
	var released int64
	err := s.commissionRepo.Transaction(func(tx *gorm.DB) error {
		txCommission := s.commissionRepo.WithTx(tx)
		txDeal := s.dealRepo.WithTx(tx)

		var err error
		payment, err = txCommission.GetPaymentByIDForUpdate(paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return ErrNotFound
		}
		if !CanTransitionApprovalStatus(payment.ApprovalStatus, constants.ApprovalStatusRejected) {
			return ErrPaymentStatusInvalid
		}

		now := time.Now()
		payment.ApprovalStatus = constants.ApprovalStatusRejected
		if err := txCommission.UpdatePayment(payment); err != nil {
			return err
		}
		released, err = txCommission.DeleteSplitsByPayment(payment.ID)
		if err != nil {
			return err
		}

		deal, err := txDeal.GetByIDForUpdate(payment.DealID)
		if err != nil {
			return err
		}
		if deal != nil && deal.ActualCommission != nil {
			deal.ActualCommission = nil
			if err := txDeal.Update(deal); err != nil {
				return err
			}
		}

		flow := constants.DistributionFlowLedger
		if released == 0 {
			flow = constants.DistributionFlowLegacy
		}
		entry := &models.CommissionAuditLog{
			PaymentID:    payment.ID,
			DealID:       payment.DealID,
			ActorAdminID: actorID,
			Action:       constants.AuditActionPaymentRejected,
			Flow:         flow,
			Detail: models.JSON{
				"reason":               strings.TrimSpace(reason),
				"released_split_count": released,
			},
			CreatedAt: now,
		}
		return txCommission.CreateAuditLog(entry)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("commission_payment_rejected",
		"payment_id", payment.ID,
		"deal_id", payment.DealID,
		"released_splits", released,
		"actor_admin_id", actorID,
	)
	s.notify(constants.NotificationEventCommissionRejected, payment)
	return payment, nil
}

// MarkPaid records the bank transfer for an approved payment. All splits move
// to paid and the deal closes out as completed. Notification delivery is best
// effort and never unwinds the payout.
func (s *CommissionService) MarkPaid(paymentID, payerID uint, transferReference string) (*models.CommissionPayment, error) {
	var payment *models.CommissionPayment
	err := s.commissionRepo.Transaction(func(tx *gorm.DB) error {
		txCommission := s.commissionRepo.WithTx(tx)
		txDeal := s.dealRepo.WithTx(tx)

		var err error
		payment, err = txCommission.GetPaymentByIDForUpdate(paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return ErrNotFound
		}
		if !CanTransitionPaymentStatus(payment.PaymentStatus, constants.PaymentStatusPaid) || payment.ApprovedBy == nil {
			return ErrPaymentStatusInvalid
		}

		now := time.Now()
		payment.PaymentStatus = constants.PaymentStatusPaid
		payment.PaidBy = &payerID
		payment.PaidAt = &now
		payment.TransferReference = strings.TrimSpace(transferReference)
		if err := txCommission.UpdatePayment(payment); err != nil {
			return err
		}
		if _, err := txCommission.UpdateSplitStatusByPayment(payment.ID, constants.SplitStatusApproved, constants.SplitStatusPaid); err != nil {
			return err
		}

		deal, err := txDeal.GetByIDForUpdate(payment.DealID)
		if err != nil {
			return err
		}
		if deal != nil && deal.Stage != constants.DealStageCompleted {
			deal.Stage = constants.DealStageCompleted
			deal.CompletedAt = &now
			if err := txDeal.Update(deal); err != nil {
				return err
			}
		}

		entry := &models.CommissionAuditLog{
			PaymentID:    payment.ID,
			DealID:       payment.DealID,
			ActorAdminID: payerID,
			Action:       constants.AuditActionPaymentMarkedPaid,
			Flow:         constants.DistributionFlowLedger,
			Detail: models.JSON{
				"transfer_reference": payment.TransferReference,
			},
			CreatedAt: now,
		}
		return txCommission.CreateAuditLog(entry)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("commission_payment_marked_paid",
		"payment_id", payment.ID,
		"deal_id", payment.DealID,
		"transfer_reference", payment.TransferReference,
		"payer_id", payerID,
	)
	s.notify(constants.NotificationEventCommissionPaid, payment)
	return payment, nil
}

// GetPaymentStatus assembles the payout view of a deal.
func (s *CommissionService) GetPaymentStatus(dealID uint) (*PaymentStatusView, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrNotFound
	}

	payments, err := s.commissionRepo.ListPaymentsByDeal(dealID)
	if err != nil {
		return nil, err
	}
	view := &PaymentStatusView{}
	if len(payments) == 0 {
		return view, nil
	}
	view.HasPayment = true
	view.Payments = payments

	anchor, err := s.commissionRepo.GetAnchorPaymentByDeal(dealID)
	if err != nil {
		return nil, err
	}
	if anchor != nil {
		view.Payment = anchor
		splits, err := s.commissionRepo.ListSplitsByPayment(anchor.ID)
		if err != nil {
			return nil, err
		}
		view.Splits = splits
	}
	return view, nil
}

// ListPayments queries payment records for the admin screens.
func (s *CommissionService) ListPayments(filter repository.PaymentListFilter) ([]models.CommissionPayment, int64, error) {
	return s.commissionRepo.ListPayments(filter)
}

// ListSplits queries split rows.
func (s *CommissionService) ListSplits(filter repository.SplitListFilter) ([]models.PaymentSplit, int64, error) {
	return s.commissionRepo.ListSplits(filter)
}

// ListAuditLogs queries commission audit entries.
func (s *CommissionService) ListAuditLogs(filter repository.AuditLogListFilter) ([]models.CommissionAuditLog, int64, error) {
	return s.commissionRepo.ListAuditLogs(filter)
}

func (s *CommissionService) notify(eventType string, payment *models.CommissionPayment) {
	if s.queueClient == nil || payment == nil {
		return
	}
	err := s.queueClient.EnqueueCommissionNotify(queue.CommissionNotifyPayload{
		EventType: eventType,
		PaymentID: payment.ID,
		DealID:    payment.DealID,
	})
	if err != nil {
		logger.Warnw("commission_notify_enqueue_failed",
			"event_type", eventType,
			"payment_id", payment.ID,
			"error", err,
		)
	}
}
