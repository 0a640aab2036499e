package models

import (
	"time"

	"gorm.io/gorm"
)

// Deal is a business referral moving through the sales pipeline.
type Deal struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                    // primary key
	DealNo           string         `gorm:"uniqueIndex;not null" json:"deal_no"`                     // business deal number
	ReferrerID       uint           `gorm:"not null;index" json:"referrer_id"`                       // referring partner, immutable after create
	BusinessName     string         `gorm:"not null" json:"business_name"`                           // referred business
	ContactName      string         `gorm:"default:''" json:"contact_name"`                          // business contact person
	ContactEmail     string         `gorm:"default:''" json:"contact_email"`                         // business contact email
	ContactPhone     string         `gorm:"type:varchar(32);default:''" json:"contact_phone"`        // business contact phone
	Stage            string         `gorm:"type:varchar(32);not null;index" json:"stage"`            // pipeline stage
	QuoteAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"quote_amount"` // quoted amount
	ActualCommission *Money         `gorm:"type:decimal(20,2)" json:"actual_commission,omitempty"`   // gross commission, stamped once at distribution
	DeclinedReason   string         `gorm:"type:varchar(255)" json:"declined_reason"`                // reason when declined
	QuoteSentAt      *time.Time     `json:"quote_sent_at,omitempty"`                                 // quote sent time
	SignedAt         *time.Time     `json:"signed_at,omitempty"`                                     // agreement signed time
	CompletedAt      *time.Time     `gorm:"index" json:"completed_at,omitempty"`                     // completion time
	DeclinedAt       *time.Time     `json:"declined_at,omitempty"`                                   // decline time
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                 // creation time
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                 // update time
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                          // soft delete time

	Referrer User `gorm:"foreignKey:ReferrerID" json:"referrer,omitempty"` // referring partner
}

// TableName sets the table name.
func (Deal) TableName() string {
	return "deals"
}
