package main

import (
	"fmt"
	"log"
	"time"

	"github.com/partnerconnector/internal/config"
	"github.com/partnerconnector/internal/constants"
	"github.com/partnerconnector/internal/logger"
	"github.com/partnerconnector/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// Three-level demo partner chain
	grandparent := seedPartner(stdLog, "grandparent@example.com", "Grandparent Partner", nil, 1)
	if grandparent == nil {
		return
	}
	parent := seedPartner(stdLog, "parent@example.com", "Parent Partner", &grandparent.ID, 2)
	if parent == nil {
		return
	}
	child := seedPartner(stdLog, "child@example.com", "Child Partner", &parent.ID, 3)
	if child == nil {
		return
	}

	// Demo deals at different pipeline stages
	seedDeal(stdLog, "PC-SEED-0001", child.ID, "Acme Plumbing", constants.DealStageApproved, "12500.00")
	seedDeal(stdLog, "PC-SEED-0002", parent.ID, "Harbor Cafe", constants.DealStageQuoteSent, "4800.00")
	seedDeal(stdLog, "PC-SEED-0003", child.ID, "Northside Gym", constants.DealStageQuoteRequestReceived, "0")

	stdLog.Printf("Seed finished")
}

func seedPartner(stdLog *log.Logger, email, name string, parentID *uint, level int) *models.User {
	var existing models.User
	if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		stdLog.Printf("Partner already exists: %s", email)
		return &existing
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("partner123"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Printf("Failed to hash password for %s: %v", email, err)
		return nil
	}
	user := models.User{
		Email:           email,
		PasswordHash:    string(hash),
		DisplayName:     name,
		Status:          constants.UserStatusActive,
		ParentPartnerID: parentID,
		PartnerLevel:    level,
	}
	if err := models.DB.Create(&user).Error; err != nil {
		stdLog.Printf("Failed to create partner %s: %v", email, err)
		return nil
	}
	stdLog.Printf("Created partner: %s (level %d)", email, level)
	return &user
}

func seedDeal(stdLog *log.Logger, dealNo string, referrerID uint, businessName, stage, quote string) {
	var existing models.Deal
	if err := models.DB.Where("deal_no = ?", dealNo).First(&existing).Error; err == nil {
		stdLog.Printf("Deal already exists: %s", dealNo)
		return
	}
	amount, err := decimal.NewFromString(quote)
	if err != nil {
		amount = decimal.Zero
	}
	now := time.Now()
	deal := models.Deal{
		DealNo:       dealNo,
		ReferrerID:   referrerID,
		BusinessName: businessName,
		ContactName:  fmt.Sprintf("%s Owner", businessName),
		ContactEmail: "",
		Stage:        stage,
		QuoteAmount:  models.NewMoneyFromDecimal(amount),
	}
	if stage != constants.DealStageQuoteRequestReceived {
		deal.QuoteSentAt = &now
	}
	if err := models.DB.Create(&deal).Error; err != nil {
		stdLog.Printf("Failed to create deal %s: %v", dealNo, err)
		return
	}
	stdLog.Printf("Created deal: %s (%s)", dealNo, stage)
}
