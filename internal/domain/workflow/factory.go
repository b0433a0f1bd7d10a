package workflow

import (
	"context"

	"github.com/tugu-digital/dots/internal/domain/status"
)

// NewTransactionMachine builds the transition table for a DOTS transaction
// and positions it at the given status. The table is derived from the
// status package's progression helpers, so the machine and the taxonomy
// cannot drift apart. hasSecondVerificator decides whether the VG001 stage
// (x021) is reachable or skipped.
//
// The machine enforces the taxonomy only; who may fire a trigger is decided
// by the approval action table.
func NewTransactionMachine(current State, hasSecondVerificator bool) StateMachine {
	withSecond := func(ctx context.Context) bool { return hasSecondVerificator }
	withoutSecond := func(ctx context.Context) bool { return !hasSecondVerificator }

	b := NewBuilder()

	for _, code := range status.All() {
		if code.IsTerminal() {
			continue
		}
		cfg := b.Configure(code)

		if next, ok := status.NextOnRequestApproval(code); ok {
			cfg.Permit(TriggerRequestApproval, next)
		}

		nextWith, okWith := status.NextOnApprove(code, true)
		nextWithout, okWithout := status.NextOnApprove(code, false)
		switch {
		case okWith && okWithout && nextWith == nextWithout:
			cfg.Permit(TriggerApprove, nextWith)
		default:
			if okWith {
				cfg.PermitIf(TriggerApprove, nextWith, withSecond)
			}
			if okWithout {
				cfg.PermitIf(TriggerApprove, nextWithout, withoutSecond)
			}
		}

		if next, ok := status.NextOnPost(code); ok {
			cfg.Permit(TriggerPost, next)
		}
		if next, ok := status.NextOnPay(code); ok {
			cfg.Permit(TriggerPay, next)
		}

		// Revise is a self-transition: the code stays put while the
		// transaction returns to its creator.
		if code.CanRevise() {
			cfg.Permit(TriggerRevise, code)
		}

		cfg.Permit(TriggerDelete, status.Deleted)
		cfg.Permit(TriggerReject, status.Rejected)
	}

	return b.Build(current)
}
