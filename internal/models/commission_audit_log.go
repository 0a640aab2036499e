package models

import (
	"time"
)

// CommissionAuditLog records every commission lifecycle action.
type CommissionAuditLog struct {
	ID           uint      `gorm:"primarykey" json:"id"`                          // primary key
	PaymentID    uint      `gorm:"not null;index" json:"payment_id"`              // anchor payment
	DealID       uint      `gorm:"not null;index" json:"deal_id"`                 // source deal
	ActorAdminID uint      `gorm:"not null;index" json:"actor_admin_id"`          // acting admin
	Action       string    `gorm:"type:varchar(64);not null;index" json:"action"` // commission_created / payment_approved / payment_marked_paid
	Flow         string    `gorm:"type:varchar(16);default:''" json:"flow"`       // ledger / legacy
	Detail       JSON      `gorm:"type:text" json:"detail,omitempty"`             // extra context
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                       // creation time
}

// TableName sets the table name.
func (CommissionAuditLog) TableName() string {
	return "commission_audit_logs"
}
