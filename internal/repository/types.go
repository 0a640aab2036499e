package repository

import "time"

// DealListFilter filters the deal list query.
type DealListFilter struct {
	Page        int
	PageSize    int
	ReferrerID  uint
	Stage       string
	DealNo      string
	Keyword     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PaymentListFilter filters the commission payment list query.
type PaymentListFilter struct {
	Page           int
	PageSize       int
	DealID         uint
	RecipientID    uint
	ApprovalStatus string
	PaymentStatus  string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}

// SplitListFilter filters the payment split list query.
type SplitListFilter struct {
	Page              int
	PageSize          int
	PaymentID         uint
	DealID            uint
	BeneficiaryUserID uint
	Status            string
}

// UserListFilter filters the partner list query.
type UserListFilter struct {
	Page            int
	PageSize        int
	Keyword         string
	Status          string
	ParentPartnerID uint
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}

// AuditLogListFilter filters the commission audit log query.
type AuditLogListFilter struct {
	Page         int
	PageSize     int
	DealID       uint
	PaymentID    uint
	ActorAdminID uint
	Action       string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}
