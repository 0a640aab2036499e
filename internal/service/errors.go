package service

import "errors"

// Sentinel errors shared across services. Handlers map these to response codes.
var (
	ErrNotFound             = errors.New("record not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountDisabled      = errors.New("account disabled")
	ErrEmailTaken           = errors.New("email already registered")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrTooManyAttempts      = errors.New("too many attempts")
	ErrParentInvalid        = errors.New("parent partner invalid")
	ErrPartnerLevelLimit    = errors.New("partner level limit reached")
	ErrReferralInvalid      = errors.New("referral input invalid")
	ErrDealStageInvalid     = errors.New("deal stage transition invalid")
	ErrDealNotEligible      = errors.New("deal not eligible for commission")
	ErrGrossAmountInvalid   = errors.New("gross amount must be positive")
	ErrAlreadyDistributed   = errors.New("commission already distributed for deal")
	ErrPaymentStatusInvalid = errors.New("payment status transition invalid")
	ErrEmailSendFailed      = errors.New("email send failed")
	ErrEmailDisabled        = errors.New("email service disabled")
	ErrEmailNotConfigured   = errors.New("email service not configured")
	ErrEmailInvalid         = errors.New("email address invalid")
)
