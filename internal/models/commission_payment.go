package models

import (
	"time"

	"gorm.io/gorm"
)

// CommissionPayment is a commission payment record. The level-0 row created at
// distribution time anchors the deal's payout; legacy distributions also carry
// per-level rows created at approval time.
type CommissionPayment struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                      // primary key
	DealID            uint           `gorm:"not null;index" json:"deal_id"`                             // source deal
	RecipientID       uint           `gorm:"not null;index" json:"recipient_id"`                        // receiving partner
	Level             int            `gorm:"not null;default:0" json:"level"`                           // hierarchy level, 0 = referrer
	Percentage        Money          `gorm:"type:decimal(10,2);not null;default:0" json:"percentage"`   // tier percentage
	Amount            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`       // payout amount
	GrossAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"gross_amount"` // deal gross commission
	ApprovalStatus    string         `gorm:"type:varchar(32);not null;index" json:"approval_status"`    // approval status
	PaymentStatus     string         `gorm:"type:varchar(32);not null;index" json:"payment_status"`     // payment status
	ApprovedBy        *uint          `gorm:"index" json:"approved_by,omitempty"`                        // approving admin
	ApprovedAt        *time.Time     `json:"approved_at,omitempty"`                                     // approval time
	PaidBy            *uint          `gorm:"index" json:"paid_by,omitempty"`                            // paying admin
	PaidAt            *time.Time     `json:"paid_at,omitempty"`                                         // payment time
	TransferReference string         `gorm:"type:varchar(128)" json:"transfer_reference"`               // bank transfer reference
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                   // creation time
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                   // update time
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                            // soft delete time

	Deal      Deal `gorm:"foreignKey:DealID" json:"deal,omitempty"`           // source deal
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"` // receiving partner
}

// TableName sets the table name.
func (CommissionPayment) TableName() string {
	return "commission_payments"
}
