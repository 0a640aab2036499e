package service

import (
	"testing"

	"github.com/partnerconnector/internal/constants"
)

func TestCanTransitionPaymentStatus(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{constants.PaymentStatusPending, constants.PaymentStatusNeedsApproval, true},
		{constants.PaymentStatusNeedsApproval, constants.PaymentStatusApproved, true},
		{constants.PaymentStatusNeedsApproval, constants.PaymentStatusDistributed, true},
		{constants.PaymentStatusApproved, constants.PaymentStatusPaid, true},
		{constants.PaymentStatusApproved, constants.PaymentStatusDistributed, true},
		{constants.PaymentStatusPaid, constants.PaymentStatusApproved, false},
		{constants.PaymentStatusDistributed, constants.PaymentStatusPaid, false},
		{constants.PaymentStatusPending, constants.PaymentStatusPaid, false},
		{"unknown", constants.PaymentStatusPaid, false},
	}
	for _, tc := range cases {
		if got := CanTransitionPaymentStatus(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestCanTransitionApprovalStatus(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{constants.ApprovalStatusPending, constants.ApprovalStatusNeedsApproval, true},
		{constants.ApprovalStatusPending, constants.ApprovalStatusRejected, true},
		{constants.ApprovalStatusNeedsApproval, constants.ApprovalStatusApproved, true},
		{constants.ApprovalStatusNeedsApproval, constants.ApprovalStatusRejected, true},
		{constants.ApprovalStatusApproved, constants.ApprovalStatusRejected, false},
		{constants.ApprovalStatusRejected, constants.ApprovalStatusApproved, false},
	}
	for _, tc := range cases {
		if got := CanTransitionApprovalStatus(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestCanTransitionSplitStatus(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{constants.SplitStatusPending, constants.SplitStatusApproved, true},
		{constants.SplitStatusApproved, constants.SplitStatusPaid, true},
		{constants.SplitStatusPending, constants.SplitStatusPaid, false},
		{constants.SplitStatusPaid, constants.SplitStatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransitionSplitStatus(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestIsPaymentStatusTerminal(t *testing.T) {
	if !IsPaymentStatusTerminal(constants.PaymentStatusPaid) {
		t.Fatalf("expected paid to be terminal")
	}
	if !IsPaymentStatusTerminal(constants.PaymentStatusDistributed) {
		t.Fatalf("expected distributed to be terminal")
	}
	if IsPaymentStatusTerminal(constants.PaymentStatusNeedsApproval) {
		t.Fatalf("expected needs_approval to be non-terminal")
	}
	if IsPaymentStatusTerminal("unknown") {
		t.Fatalf("expected unknown status to be non-terminal")
	}
}
