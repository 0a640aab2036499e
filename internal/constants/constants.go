package constants

// Deal pipeline stage constants
const (
	DealStageQuoteRequestReceived = "quote_request_received"
	DealStageQuoteSent            = "quote_sent"
	DealStageQuoteApproved        = "quote_approved"
	DealStageAgreementSent        = "agreement_sent"
	DealStageSignedAwaitingDocs   = "signed_awaiting_docs"
	DealStageApproved             = "approved"
	DealStageLiveConfirmLTR       = "live_confirm_ltr"
	DealStageInvoiceReceived      = "invoice_received"
	DealStageCompleted            = "completed"
	DealStageDeclined             = "declined"
)

// Commission payment status constants (anchor record lifecycle)
const (
	PaymentStatusPending       = "pending"
	PaymentStatusNeedsApproval = "needs_approval"
	PaymentStatusApproved      = "approved"
	PaymentStatusDistributed   = "distributed"
	PaymentStatusPaid          = "paid"
)

// Commission approval status constants
const (
	ApprovalStatusPending       = "pending"
	ApprovalStatusNeedsApproval = "needs_approval"
	ApprovalStatusApproved      = "approved"
	ApprovalStatusRejected      = "rejected"
)

// Payment split status constants
const (
	SplitStatusPending  = "pending"
	SplitStatusApproved = "approved"
	SplitStatusPaid     = "paid"
)

// Commission tier rates by upline level (percent of gross).
// Level 0 is the deal's referrer; the undistributed remainder is retained.
const (
	CommissionRateLevel0 = 60
	CommissionRateLevel1 = 20
	CommissionRateLevel2 = 10

	// MaxUplineHops caps the parent-partner walk; levels beyond 2 earn nothing.
	MaxUplineHops = 2

	// MaxPartnerLevel caps the stored hierarchy depth.
	MaxPartnerLevel = 3
)

// Commission audit action constants
const (
	AuditActionCommissionCreated = "commission_created"
	AuditActionPaymentApproved   = "payment_approved"
	AuditActionPaymentRejected   = "payment_rejected"
	AuditActionPaymentMarkedPaid = "payment_marked_paid"
)

// Commission distribution flow constants
const (
	DistributionFlowLedger = "ledger"
	DistributionFlowLegacy = "legacy"
)

// User account status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Notification event constants
const (
	NotificationEventCommissionCreated  = "commission_created"
	NotificationEventCommissionApproved = "commission_approved"
	NotificationEventCommissionRejected = "commission_rejected"
	NotificationEventCommissionPaid     = "commission_paid"
	NotificationEventDealStageChanged   = "deal_stage_changed"
)

// Queue and task name constants
const (
	QueueDefault         = "default"
	TaskCommissionNotify = "commission:notify"
	TaskDealStageEmail   = "deal:stage_email"
)
