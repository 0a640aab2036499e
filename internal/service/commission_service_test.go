package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/partnerconnector/internal/constants"
	"github.com/partnerconnector/internal/models"
	"github.com/partnerconnector/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCommissionServiceTest(t *testing.T) (*CommissionService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:commission_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Deal{},
		&models.CommissionPayment{},
		&models.PaymentSplit{},
		&models.CommissionAuditLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	svc := NewCommissionService(
		repository.NewCommissionRepository(db),
		repository.NewDealRepository(db),
		userRepo,
		NewHierarchyService(userRepo),
		nil,
	)
	return svc, db
}

func createCommissionTestChain(t *testing.T, db *gorm.DB) (models.User, models.User, models.User) {
	t.Helper()

	grandparent := createHierarchyTestPartner(t, db, fmt.Sprintf("gp-%d@example.com", time.Now().UnixNano()), nil, 1)
	parent := createHierarchyTestPartner(t, db, fmt.Sprintf("p-%d@example.com", time.Now().UnixNano()), &grandparent.ID, 2)
	child := createHierarchyTestPartner(t, db, fmt.Sprintf("c-%d@example.com", time.Now().UnixNano()), &parent.ID, 3)
	return child, parent, grandparent
}

func createCommissionTestDeal(t *testing.T, db *gorm.DB, referrerID uint, stage string) models.Deal {
	t.Helper()

	deal := models.Deal{
		DealNo:       fmt.Sprintf("PC-TEST-%d", time.Now().UnixNano()),
		ReferrerID:   referrerID,
		BusinessName: "Test Business",
		Stage:        stage,
		QuoteAmount:  models.NewMoneyFromDecimal(decimal.RequireFromString("5000.00")),
	}
	if err := db.Create(&deal).Error; err != nil {
		t.Fatalf("create deal failed: %v", err)
	}
	return deal
}

func TestCreateCommissionLedgerFullChain(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, parent, grandparent := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageApproved)

	anchor, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1)
	if err != nil {
		t.Fatalf("create commission failed: %v", err)
	}
	if anchor.Level != 0 || anchor.RecipientID != child.ID {
		t.Fatalf("expected level-0 anchor for referrer %d, got %+v", child.ID, anchor)
	}
	if anchor.ApprovalStatus != constants.ApprovalStatusNeedsApproval || anchor.PaymentStatus != constants.PaymentStatusNeedsApproval {
		t.Fatalf("expected needs_approval anchor, got %s/%s", anchor.ApprovalStatus, anchor.PaymentStatus)
	}
	if !anchor.Amount.Decimal.Equal(decimal.RequireFromString("600.00")) {
		t.Fatalf("expected anchor amount 600.00, got %s", anchor.Amount)
	}

	var splits []models.PaymentSplit
	if err := db.Where("payment_id = ?", anchor.ID).Order("level asc").Find(&splits).Error; err != nil {
		t.Fatalf("load splits failed: %v", err)
	}
	if len(splits) != 3 {
		t.Fatalf("expected 3 split rows, got %d", len(splits))
	}
	expected := []struct {
		userID uint
		amount string
	}{
		{child.ID, "600.00"},
		{parent.ID, "200.00"},
		{grandparent.ID, "100.00"},
	}
	for i, want := range expected {
		if splits[i].BeneficiaryUserID != want.userID {
			t.Fatalf("split %d: expected beneficiary %d, got %d", i, want.userID, splits[i].BeneficiaryUserID)
		}
		if !splits[i].Amount.Decimal.Equal(decimal.RequireFromString(want.amount)) {
			t.Fatalf("split %d: expected amount %s, got %s", i, want.amount, splits[i].Amount)
		}
		if splits[i].Status != constants.SplitStatusPending {
			t.Fatalf("split %d: expected pending, got %s", i, splits[i].Status)
		}
	}

	var reloaded models.Deal
	if err := db.First(&reloaded, deal.ID).Error; err != nil {
		t.Fatalf("reload deal failed: %v", err)
	}
	if reloaded.ActualCommission == nil || !reloaded.ActualCommission.Decimal.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("expected gross stamped on deal, got %+v", reloaded.ActualCommission)
	}

	var auditCount int64
	if err := db.Model(&models.CommissionAuditLog{}).Where("deal_id = ? AND action = ?", deal.ID, constants.AuditActionCommissionCreated).Count(&auditCount).Error; err != nil {
		t.Fatalf("count audit logs failed: %v", err)
	}
	if auditCount != 1 {
		t.Fatalf("expected 1 audit entry, got %d", auditCount)
	}
}

func TestCreateCommissionShortChainKeepsRemainder(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	solo := createHierarchyTestPartner(t, db, "solo-commission@example.com", nil, 1)
	deal := createCommissionTestDeal(t, db, solo.ID, constants.DealStageLiveConfirmLTR)

	anchor, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1)
	if err != nil {
		t.Fatalf("create commission failed: %v", err)
	}

	var splits []models.PaymentSplit
	if err := db.Where("payment_id = ?", anchor.ID).Find(&splits).Error; err != nil {
		t.Fatalf("load splits failed: %v", err)
	}
	if len(splits) != 1 {
		t.Fatalf("expected only the referrer split, got %d", len(splits))
	}
	if !splits[0].Amount.Decimal.Equal(decimal.RequireFromString("600.00")) {
		t.Fatalf("expected 600.00, got %s", splits[0].Amount)
	}
}

func TestCreateCommissionRejectsRepeatDistribution(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, _, _ := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageApproved)

	if _, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1); err != nil {
		t.Fatalf("first distribution failed: %v", err)
	}
	if _, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1); !errors.Is(err, ErrAlreadyDistributed) {
		t.Fatalf("expected ErrAlreadyDistributed, got %v", err)
	}

	var paymentCount int64
	if err := db.Model(&models.CommissionPayment{}).Where("deal_id = ?", deal.ID).Count(&paymentCount).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if paymentCount != 1 {
		t.Fatalf("expected a single anchor payment, got %d", paymentCount)
	}
}

func TestCreateCommissionRejectsIneligibleStage(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, _, _ := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageQuoteSent)

	if _, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1); !errors.Is(err, ErrDealNotEligible) {
		t.Fatalf("expected ErrDealNotEligible, got %v", err)
	}
}

func TestCreateCommissionRejectsNonPositiveGross(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, _, _ := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageApproved)

	if _, err := svc.CreateCommission(deal.ID, decimal.Zero, 1); !errors.Is(err, ErrGrossAmountInvalid) {
		t.Fatalf("expected ErrGrossAmountInvalid for zero, got %v", err)
	}
	if _, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("-5"), 1); !errors.Is(err, ErrGrossAmountInvalid) {
		t.Fatalf("expected ErrGrossAmountInvalid for negative, got %v", err)
	}
}

func TestCreateCommissionUnknownDeal(t *testing.T) {
	svc, _ := setupCommissionServiceTest(t)

	if _, err := svc.CreateCommission(424242, decimal.RequireFromString("100"), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApprovePaymentLedgerFlow(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, _, _ := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageApproved)
	anchor, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1)
	if err != nil {
		t.Fatalf("create commission failed: %v", err)
	}

	approved, err := svc.ApprovePayment(anchor.ID, 7)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.ApprovalStatus != constants.ApprovalStatusApproved || approved.PaymentStatus != constants.PaymentStatusApproved {
		t.Fatalf("expected approved/approved, got %s/%s", approved.ApprovalStatus, approved.PaymentStatus)
	}
	if approved.ApprovedBy == nil || *approved.ApprovedBy != 7 || approved.ApprovedAt == nil {
		t.Fatalf("expected approver stamped, got %+v", approved)
	}

	var splits []models.PaymentSplit
	if err := db.Where("payment_id = ?", anchor.ID).Find(&splits).Error; err != nil {
		t.Fatalf("load splits failed: %v", err)
	}
	for _, split := range splits {
		if split.Status != constants.SplitStatusApproved {
			t.Fatalf("expected split approved, got %s", split.Status)
		}
	}

	// Ledger flow never synthesizes extra payment rows.
	var paymentCount int64
	if err := db.Model(&models.CommissionPayment{}).Where("deal_id = ?", deal.ID).Count(&paymentCount).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if paymentCount != 1 {
		t.Fatalf("expected 1 payment row, got %d", paymentCount)
	}
}

func TestApprovePaymentRejectsDoubleApprove(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, _, _ := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageApproved)
	anchor, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1)
	if err != nil {
		t.Fatalf("create commission failed: %v", err)
	}

	if _, err := svc.ApprovePayment(anchor.ID, 7); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	if _, err := svc.ApprovePayment(anchor.ID, 8); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected ErrPaymentStatusInvalid, got %v", err)
	}
}

func TestApprovePaymentLegacySynthesizesLevels(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, parent, grandparent := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageApproved)

	// A record from before the split ledger: anchor only, no split rows.
	legacy := models.CommissionPayment{
		DealID:         deal.ID,
		RecipientID:    child.ID,
		Level:          0,
		Percentage:     models.NewMoneyFromDecimal(decimal.NewFromInt(60)),
		Amount:         models.NewMoneyFromDecimal(decimal.RequireFromString("600.00")),
		GrossAmount:    models.NewMoneyFromDecimal(decimal.RequireFromString("1000.00")),
		ApprovalStatus: constants.ApprovalStatusNeedsApproval,
		PaymentStatus:  constants.PaymentStatusNeedsApproval,
	}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("create legacy payment failed: %v", err)
	}

	approved, err := svc.ApprovePayment(legacy.ID, 9)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.PaymentStatus != constants.PaymentStatusDistributed {
		t.Fatalf("expected legacy anchor closed out as distributed, got %s", approved.PaymentStatus)
	}
	if approved.ApprovalStatus != constants.ApprovalStatusApproved {
		t.Fatalf("expected anchor approval approved, got %s", approved.ApprovalStatus)
	}

	var synthesized []models.CommissionPayment
	if err := db.Where("deal_id = ? AND id <> ?", deal.ID, legacy.ID).Order("level asc").Find(&synthesized).Error; err != nil {
		t.Fatalf("load synthesized payments failed: %v", err)
	}
	if len(synthesized) != 3 {
		t.Fatalf("expected 3 synthesized payment rows, got %d", len(synthesized))
	}
	expected := []struct {
		userID uint
		level  int
		amount string
	}{
		{child.ID, 0, "600.00"},
		{parent.ID, 1, "200.00"},
		{grandparent.ID, 2, "100.00"},
	}
	for i, want := range expected {
		row := synthesized[i]
		if row.RecipientID != want.userID || row.Level != want.level {
			t.Fatalf("row %d: expected recipient %d level %d, got recipient %d level %d",
				i, want.userID, want.level, row.RecipientID, row.Level)
		}
		if !row.Amount.Decimal.Equal(decimal.RequireFromString(want.amount)) {
			t.Fatalf("row %d: expected amount %s, got %s", i, want.amount, row.Amount)
		}
		if row.ApprovalStatus != constants.ApprovalStatusApproved || row.PaymentStatus != constants.PaymentStatusApproved {
			t.Fatalf("row %d: expected approved/approved, got %s/%s", i, row.ApprovalStatus, row.PaymentStatus)
		}
		if row.ApprovedBy == nil || *row.ApprovedBy != 9 {
			t.Fatalf("row %d: expected approver 9, got %+v", i, row.ApprovedBy)
		}
	}

	// No split rows appear on the legacy path.
	var splitCount int64
	if err := db.Model(&models.PaymentSplit{}).Where("deal_id = ?", deal.ID).Count(&splitCount).Error; err != nil {
		t.Fatalf("count splits failed: %v", err)
	}
	if splitCount != 0 {
		t.Fatalf("expected no split rows, got %d", splitCount)
	}

	// The original anchor stays the anchor.
	view, err := svc.GetPaymentStatus(deal.ID)
	if err != nil {
		t.Fatalf("payment status failed: %v", err)
	}
	if view.Payment == nil || view.Payment.ID != legacy.ID {
		t.Fatalf("expected anchor %d, got %+v", legacy.ID, view.Payment)
	}
}

func TestMarkPaidClosesOutDeal(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, _, _ := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageInvoiceReceived)
	anchor, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1)
	if err != nil {
		t.Fatalf("create commission failed: %v", err)
	}
	if _, err := svc.ApprovePayment(anchor.ID, 7); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	paid, err := svc.MarkPaid(anchor.ID, 8, "WIRE-2026-0001")
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if paid.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", paid.PaymentStatus)
	}
	if paid.PaidBy == nil || *paid.PaidBy != 8 || paid.PaidAt == nil {
		t.Fatalf("expected payer stamped, got %+v", paid)
	}
	if paid.TransferReference != "WIRE-2026-0001" {
		t.Fatalf("expected transfer reference kept, got %q", paid.TransferReference)
	}

	var splits []models.PaymentSplit
	if err := db.Where("payment_id = ?", anchor.ID).Find(&splits).Error; err != nil {
		t.Fatalf("load splits failed: %v", err)
	}
	for _, split := range splits {
		if split.Status != constants.SplitStatusPaid {
			t.Fatalf("expected split paid, got %s", split.Status)
		}
	}

	var reloaded models.Deal
	if err := db.First(&reloaded, deal.ID).Error; err != nil {
		t.Fatalf("reload deal failed: %v", err)
	}
	if reloaded.Stage != constants.DealStageCompleted || reloaded.CompletedAt == nil {
		t.Fatalf("expected deal completed, got stage %s", reloaded.Stage)
	}
}

func TestMarkPaidRequiresApproval(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, _, _ := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageApproved)
	anchor, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1)
	if err != nil {
		t.Fatalf("create commission failed: %v", err)
	}

	if _, err := svc.MarkPaid(anchor.ID, 8, "WIRE-TOO-EARLY"); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected ErrPaymentStatusInvalid, got %v", err)
	}
	if _, err := svc.MarkPaid(424242, 8, "WIRE-MISSING"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkPaidRejectsRepeat(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, _, _ := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageApproved)
	anchor, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1)
	if err != nil {
		t.Fatalf("create commission failed: %v", err)
	}
	if _, err := svc.ApprovePayment(anchor.ID, 7); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := svc.MarkPaid(anchor.ID, 8, "WIRE-1"); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if _, err := svc.MarkPaid(anchor.ID, 8, "WIRE-2"); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected ErrPaymentStatusInvalid, got %v", err)
	}
}

func TestRejectPaymentReopensDistribution(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, _, _ := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageApproved)

	wrong, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("9999.00"), 1)
	if err != nil {
		t.Fatalf("create commission failed: %v", err)
	}
	if _, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1); !errors.Is(err, ErrAlreadyDistributed) {
		t.Fatalf("expected ErrAlreadyDistributed before rejection, got %v", err)
	}

	rejected, err := svc.RejectPayment(wrong.ID, 4, "wrong gross amount")
	if err != nil {
		t.Fatalf("reject payment failed: %v", err)
	}
	if rejected.ApprovalStatus != constants.ApprovalStatusRejected {
		t.Fatalf("expected rejected approval status, got %s", rejected.ApprovalStatus)
	}

	var splitCount int64
	if err := db.Model(&models.PaymentSplit{}).Where("payment_id = ?", wrong.ID).Count(&splitCount).Error; err != nil {
		t.Fatalf("count splits failed: %v", err)
	}
	if splitCount != 0 {
		t.Fatalf("expected released splits, got %d rows", splitCount)
	}

	var reloadedDeal models.Deal
	if err := db.First(&reloadedDeal, deal.ID).Error; err != nil {
		t.Fatalf("reload deal failed: %v", err)
	}
	if reloadedDeal.ActualCommission != nil {
		t.Fatalf("expected cleared gross stamp, got %s", reloadedDeal.ActualCommission)
	}

	var auditCount int64
	if err := db.Model(&models.CommissionAuditLog{}).Where("payment_id = ? AND action = ?", wrong.ID, constants.AuditActionPaymentRejected).Count(&auditCount).Error; err != nil {
		t.Fatalf("count audit entries failed: %v", err)
	}
	if auditCount != 1 {
		t.Fatalf("expected 1 rejection audit entry, got %d", auditCount)
	}

	corrected, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1)
	if err != nil {
		t.Fatalf("corrective create commission failed: %v", err)
	}
	if !corrected.Amount.Decimal.Equal(decimal.RequireFromString("600.00")) {
		t.Fatalf("expected corrected anchor amount 600.00, got %s", corrected.Amount)
	}

	view, err := svc.GetPaymentStatus(deal.ID)
	if err != nil {
		t.Fatalf("payment status failed: %v", err)
	}
	if view.Payment == nil || view.Payment.ID != corrected.ID {
		t.Fatalf("expected corrected anchor in payout view, got %+v", view.Payment)
	}
	if len(view.Splits) != 3 {
		t.Fatalf("expected 3 splits for corrected payout, got %d", len(view.Splits))
	}
}

func TestRejectPaymentRequiresPendingApproval(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, _, _ := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageApproved)
	anchor, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1)
	if err != nil {
		t.Fatalf("create commission failed: %v", err)
	}
	if _, err := svc.ApprovePayment(anchor.ID, 7); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if _, err := svc.RejectPayment(anchor.ID, 4, "too late"); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected ErrPaymentStatusInvalid for approved payment, got %v", err)
	}
	if _, err := svc.RejectPayment(424242, 4, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectPaymentRejectsRepeat(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, _, _ := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageApproved)
	anchor, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1)
	if err != nil {
		t.Fatalf("create commission failed: %v", err)
	}
	if _, err := svc.RejectPayment(anchor.ID, 4, "wrong amount"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := svc.RejectPayment(anchor.ID, 4, "again"); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected ErrPaymentStatusInvalid, got %v", err)
	}
	if _, err := svc.ApprovePayment(anchor.ID, 7); !errors.Is(err, ErrPaymentStatusInvalid) {
		t.Fatalf("expected rejected payment to be unapprovable, got %v", err)
	}
}

func TestGetPaymentStatus(t *testing.T) {
	svc, db := setupCommissionServiceTest(t)

	child, _, _ := createCommissionTestChain(t, db)
	deal := createCommissionTestDeal(t, db, child.ID, constants.DealStageApproved)

	view, err := svc.GetPaymentStatus(deal.ID)
	if err != nil {
		t.Fatalf("payment status failed: %v", err)
	}
	if view.HasPayment || view.Payment != nil {
		t.Fatalf("expected empty payout view, got %+v", view)
	}

	anchor, err := svc.CreateCommission(deal.ID, decimal.RequireFromString("1000.00"), 1)
	if err != nil {
		t.Fatalf("create commission failed: %v", err)
	}

	view, err = svc.GetPaymentStatus(deal.ID)
	if err != nil {
		t.Fatalf("payment status failed: %v", err)
	}
	if !view.HasPayment || view.Payment == nil || view.Payment.ID != anchor.ID {
		t.Fatalf("expected anchor in payout view, got %+v", view)
	}
	if len(view.Splits) != 3 {
		t.Fatalf("expected 3 splits in view, got %d", len(view.Splits))
	}

	if _, err := svc.GetPaymentStatus(424242); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown deal, got %v", err)
	}
}
