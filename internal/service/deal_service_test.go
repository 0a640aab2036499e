package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/partnerconnector/internal/constants"
	"github.com/partnerconnector/internal/models"
	"github.com/partnerconnector/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupDealServiceTest(t *testing.T) (*DealService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:deal_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Deal{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	userRepo := repository.NewUserRepository(db)
	return NewDealService(repository.NewDealRepository(db), userRepo, nil), db
}

func createDealTestPartner(t *testing.T, db *gorm.DB, email, status string) models.User {
	t.Helper()

	row := models.User{
		Email:        email,
		PasswordHash: "hash",
		DisplayName:  "tester",
		Status:       status,
		PartnerLevel: 1,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create partner failed: %v", err)
	}
	return row
}

func TestCreateReferral(t *testing.T) {
	svc, db := setupDealServiceTest(t)

	referrer := createDealTestPartner(t, db, "referrer@example.com", constants.UserStatusActive)

	deal, err := svc.CreateReferral(CreateReferralInput{
		ReferrerID:   referrer.ID,
		BusinessName: "  Acme Plumbing  ",
		ContactName:  "Jordan",
		ContactEmail: "Jordan@Acme.Example",
	})
	if err != nil {
		t.Fatalf("create referral failed: %v", err)
	}
	if deal.Stage != constants.DealStageQuoteRequestReceived {
		t.Fatalf("expected quote_request_received, got %s", deal.Stage)
	}
	if deal.BusinessName != "Acme Plumbing" {
		t.Fatalf("expected trimmed business name, got %q", deal.BusinessName)
	}
	if deal.ContactEmail != "jordan@acme.example" {
		t.Fatalf("expected lowercased contact email, got %q", deal.ContactEmail)
	}
	if deal.ReferrerID != referrer.ID {
		t.Fatalf("expected referrer %d, got %d", referrer.ID, deal.ReferrerID)
	}
	if !strings.HasPrefix(deal.DealNo, "PC") {
		t.Fatalf("unexpected deal number %q", deal.DealNo)
	}
}

func TestCreateReferralRejectsBlankBusinessName(t *testing.T) {
	svc, db := setupDealServiceTest(t)

	referrer := createDealTestPartner(t, db, "blank@example.com", constants.UserStatusActive)

	if _, err := svc.CreateReferral(CreateReferralInput{
		ReferrerID:   referrer.ID,
		BusinessName: "   ",
	}); !errors.Is(err, ErrReferralInvalid) {
		t.Fatalf("expected ErrReferralInvalid, got %v", err)
	}
}

func TestCreateReferralRejectsDisabledReferrer(t *testing.T) {
	svc, db := setupDealServiceTest(t)

	disabled := createDealTestPartner(t, db, "disabled@example.com", constants.UserStatusDisabled)

	if _, err := svc.CreateReferral(CreateReferralInput{
		ReferrerID:   disabled.ID,
		BusinessName: "Acme",
	}); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
	if _, err := svc.CreateReferral(CreateReferralInput{
		ReferrerID:   99999,
		BusinessName: "Acme",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSendQuote(t *testing.T) {
	svc, db := setupDealServiceTest(t)

	referrer := createDealTestPartner(t, db, "quote@example.com", constants.UserStatusActive)
	deal, err := svc.CreateReferral(CreateReferralInput{ReferrerID: referrer.ID, BusinessName: "Acme"})
	if err != nil {
		t.Fatalf("create referral failed: %v", err)
	}

	updated, err := svc.SendQuote(SendQuoteInput{DealID: deal.ID, QuoteAmount: decimal.RequireFromString("4500.00")})
	if err != nil {
		t.Fatalf("send quote failed: %v", err)
	}
	if updated.Stage != constants.DealStageQuoteSent {
		t.Fatalf("expected quote_sent, got %s", updated.Stage)
	}
	if updated.QuoteSentAt == nil {
		t.Fatalf("expected quote sent time stamped")
	}
	if !updated.QuoteAmount.Decimal.Equal(decimal.RequireFromString("4500.00")) {
		t.Fatalf("expected quote amount 4500.00, got %s", updated.QuoteAmount)
	}

	// Repeat send is an illegal stage move.
	if _, err := svc.SendQuote(SendQuoteInput{DealID: deal.ID, QuoteAmount: decimal.RequireFromString("4500.00")}); !errors.Is(err, ErrDealStageInvalid) {
		t.Fatalf("expected ErrDealStageInvalid, got %v", err)
	}
}

func TestSendQuoteRejectsNonPositiveAmount(t *testing.T) {
	svc, db := setupDealServiceTest(t)

	referrer := createDealTestPartner(t, db, "quote-zero@example.com", constants.UserStatusActive)
	deal, err := svc.CreateReferral(CreateReferralInput{ReferrerID: referrer.ID, BusinessName: "Acme"})
	if err != nil {
		t.Fatalf("create referral failed: %v", err)
	}

	if _, err := svc.SendQuote(SendQuoteInput{DealID: deal.ID, QuoteAmount: decimal.Zero}); !errors.Is(err, ErrGrossAmountInvalid) {
		t.Fatalf("expected ErrGrossAmountInvalid, got %v", err)
	}
}

func TestAdvanceStageWalksPipeline(t *testing.T) {
	svc, db := setupDealServiceTest(t)

	referrer := createDealTestPartner(t, db, "pipeline@example.com", constants.UserStatusActive)
	deal, err := svc.CreateReferral(CreateReferralInput{ReferrerID: referrer.ID, BusinessName: "Acme"})
	if err != nil {
		t.Fatalf("create referral failed: %v", err)
	}
	if _, err := svc.SendQuote(SendQuoteInput{DealID: deal.ID, QuoteAmount: decimal.RequireFromString("1200.00")}); err != nil {
		t.Fatalf("send quote failed: %v", err)
	}

	stages := []string{
		constants.DealStageQuoteApproved,
		constants.DealStageAgreementSent,
		constants.DealStageSignedAwaitingDocs,
		constants.DealStageApproved,
		constants.DealStageLiveConfirmLTR,
		constants.DealStageInvoiceReceived,
	}
	for _, stage := range stages {
		updated, err := svc.AdvanceStage(deal.ID, stage)
		if err != nil {
			t.Fatalf("advance to %s failed: %v", stage, err)
		}
		if updated.Stage != stage {
			t.Fatalf("expected stage %s, got %s", stage, updated.Stage)
		}
		if stage == constants.DealStageSignedAwaitingDocs && updated.SignedAt == nil {
			t.Fatalf("expected signed time stamped")
		}
	}
}

func TestAdvanceStageRejectsSkipsAndTerminalTargets(t *testing.T) {
	svc, db := setupDealServiceTest(t)

	referrer := createDealTestPartner(t, db, "skips@example.com", constants.UserStatusActive)
	deal, err := svc.CreateReferral(CreateReferralInput{ReferrerID: referrer.ID, BusinessName: "Acme"})
	if err != nil {
		t.Fatalf("create referral failed: %v", err)
	}

	// New deal cannot jump over quote_sent.
	if _, err := svc.AdvanceStage(deal.ID, constants.DealStageApproved); !errors.Is(err, ErrDealStageInvalid) {
		t.Fatalf("expected ErrDealStageInvalid for skip, got %v", err)
	}
	// Completed and declined are not reachable through AdvanceStage.
	if _, err := svc.AdvanceStage(deal.ID, constants.DealStageCompleted); !errors.Is(err, ErrDealStageInvalid) {
		t.Fatalf("expected ErrDealStageInvalid for completed, got %v", err)
	}
	if _, err := svc.AdvanceStage(deal.ID, constants.DealStageDeclined); !errors.Is(err, ErrDealStageInvalid) {
		t.Fatalf("expected ErrDealStageInvalid for declined, got %v", err)
	}
}

func TestDeclineDeal(t *testing.T) {
	svc, db := setupDealServiceTest(t)

	referrer := createDealTestPartner(t, db, "decline@example.com", constants.UserStatusActive)
	deal, err := svc.CreateReferral(CreateReferralInput{ReferrerID: referrer.ID, BusinessName: "Acme"})
	if err != nil {
		t.Fatalf("create referral failed: %v", err)
	}

	declined, err := svc.Decline(deal.ID, "  went with a competitor  ")
	if err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if declined.Stage != constants.DealStageDeclined {
		t.Fatalf("expected declined, got %s", declined.Stage)
	}
	if declined.DeclinedReason != "went with a competitor" {
		t.Fatalf("expected trimmed reason, got %q", declined.DeclinedReason)
	}
	if declined.DeclinedAt == nil {
		t.Fatalf("expected decline time stamped")
	}

	// Terminal deals cannot be declined again.
	if _, err := svc.Decline(deal.ID, "again"); !errors.Is(err, ErrDealStageInvalid) {
		t.Fatalf("expected ErrDealStageInvalid, got %v", err)
	}
}

func TestCanTransitionDealStage(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{constants.DealStageQuoteRequestReceived, constants.DealStageQuoteSent, true},
		{constants.DealStageInvoiceReceived, constants.DealStageCompleted, true},
		{constants.DealStageQuoteSent, constants.DealStageApproved, false},
		{constants.DealStageApproved, constants.DealStageDeclined, true},
		{constants.DealStageCompleted, constants.DealStageDeclined, false},
		{constants.DealStageDeclined, constants.DealStageQuoteSent, false},
	}
	for _, tc := range cases {
		if got := CanTransitionDealStage(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}
