package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentSplit is one beneficiary's share of a commission payment.
type PaymentSplit struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                                                      // primary key
	PaymentID         uint           `gorm:"not null;index;index:idx_payment_split_unique,unique" json:"payment_id"`                    // anchor payment
	DealID            uint           `gorm:"not null;index" json:"deal_id"`                                                             // source deal
	BeneficiaryUserID uint           `gorm:"not null;index;index:idx_payment_split_unique,unique" json:"beneficiary_user_id"`           // receiving partner
	Level             int            `gorm:"not null;default:0;index:idx_payment_split_unique,unique" json:"level"`                     // hierarchy level
	Percentage        Money          `gorm:"type:decimal(10,2);not null;default:0" json:"percentage"`                                   // tier percentage
	Amount            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`                                       // share amount
	Status            string         `gorm:"type:varchar(32);not null;index" json:"status"`                                             // split status
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                                                   // creation time
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                                                   // update time
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                                            // soft delete time

	Payment     CommissionPayment `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`           // anchor payment
	Beneficiary User              `gorm:"foreignKey:BeneficiaryUserID" json:"beneficiary,omitempty"` // receiving partner
}

// TableName sets the table name.
func (PaymentSplit) TableName() string {
	return "payment_splits"
}
