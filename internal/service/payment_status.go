package service

import (
	"github.com/partnerconnector/internal/constants"
)

// paymentStatusTransitions enumerates the allowed payment status moves.
// Statuses only advance; there is no way back.
var paymentStatusTransitions = map[string][]string{
	constants.PaymentStatusPending:       {constants.PaymentStatusNeedsApproval},
	constants.PaymentStatusNeedsApproval: {constants.PaymentStatusApproved, constants.PaymentStatusDistributed},
	constants.PaymentStatusApproved:      {constants.PaymentStatusPaid, constants.PaymentStatusDistributed},
	constants.PaymentStatusDistributed:   {},
	constants.PaymentStatusPaid:          {},
}

// approvalStatusTransitions enumerates the allowed approval status moves.
var approvalStatusTransitions = map[string][]string{
	constants.ApprovalStatusPending:       {constants.ApprovalStatusNeedsApproval, constants.ApprovalStatusRejected},
	constants.ApprovalStatusNeedsApproval: {constants.ApprovalStatusApproved, constants.ApprovalStatusRejected},
	constants.ApprovalStatusApproved:      {},
	constants.ApprovalStatusRejected:      {},
}

// splitStatusTransitions enumerates the allowed split status moves.
var splitStatusTransitions = map[string][]string{
	constants.SplitStatusPending:  {constants.SplitStatusApproved},
	constants.SplitStatusApproved: {constants.SplitStatusPaid},
	constants.SplitStatusPaid:     {},
}

// CanTransitionPaymentStatus reports whether a payment status move is legal.
func CanTransitionPaymentStatus(from, to string) bool {
	return containsTransition(paymentStatusTransitions[from], to)
}

// CanTransitionApprovalStatus reports whether an approval status move is legal.
func CanTransitionApprovalStatus(from, to string) bool {
	return containsTransition(approvalStatusTransitions[from], to)
}

// CanTransitionSplitStatus reports whether a split status move is legal.
func CanTransitionSplitStatus(from, to string) bool {
	return containsTransition(splitStatusTransitions[from], to)
}

// IsPaymentStatusTerminal reports whether a payment status admits no further moves.
func IsPaymentStatusTerminal(status string) bool {
	next, ok := paymentStatusTransitions[status]
	return ok && len(next) == 0
}

func containsTransition(allowed []string, to string) bool {
	for _, candidate := range allowed {
		if candidate == to {
			return true
		}
	}
	return false
}
