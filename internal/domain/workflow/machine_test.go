package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/tugu-digital/dots/internal/domain/status"
)

func TestTrigger_String(t *testing.T) {
	trigger := TriggerRequestApproval
	if got := trigger.String(); got != "REQUEST_APPROVAL" {
		t.Errorf("Trigger.String() = %v, want %v", got, "REQUEST_APPROVAL")
	}
}

func TestBuilder_Configure(t *testing.T) {
	builder := NewBuilder()

	config := builder.Configure(status.CashAdvanceCreated)
	if config == nil {
		t.Fatal("Configure() returned nil")
	}

	config2 := builder.Configure(status.CashAdvanceCreated)
	if config2 == nil {
		t.Fatal("Configure() returned nil on second call")
	}
}

func TestBuilder_ConfigureInvalidStatePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Configure() with invalid state should panic")
		}
	}()
	NewBuilder().Configure(State("9999"))
}

func TestStateMachine_Fire(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(status.CashAdvanceCreated).
		Permit(TriggerRequestApproval, status.CashAdvancePending1)

	machine := builder.Build(status.CashAdvanceCreated)

	if !machine.CanFire(TriggerRequestApproval) {
		t.Error("CanFire(REQUEST_APPROVAL) = false, want true")
	}
	if machine.CanFire(TriggerApprove) {
		t.Error("CanFire(APPROVE) = true, want false")
	}

	if err := machine.Fire(context.Background(), TriggerRequestApproval); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	if machine.State() != status.CashAdvancePending1 {
		t.Errorf("State() = %v, want %v", machine.State(), status.CashAdvancePending1)
	}

	err := machine.Fire(context.Background(), TriggerRequestApproval)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire() error = %v, want ErrInvalidTransition", err)
	}
}

func TestStateMachine_GuardedTransition(t *testing.T) {
	allow := false
	builder := NewBuilder()
	builder.Configure(status.CashAdvancePending1).
		PermitIf(TriggerApprove, status.CashAdvancePending2, func(ctx context.Context) bool { return allow })

	machine := builder.Build(status.CashAdvancePending1)

	err := machine.Fire(context.Background(), TriggerApprove)
	if !errors.Is(err, ErrGuardFailed) {
		t.Errorf("Fire() error = %v, want ErrGuardFailed", err)
	}
	if machine.State() != status.CashAdvancePending1 {
		t.Errorf("State() changed on failed guard: %v", machine.State())
	}

	allow = true
	if err := machine.Fire(context.Background(), TriggerApprove); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	if machine.State() != status.CashAdvancePending2 {
		t.Errorf("State() = %v, want %v", machine.State(), status.CashAdvancePending2)
	}
}

func TestNewTransactionMachine_FullCashAdvancePath(t *testing.T) {
	machine := NewTransactionMachine(status.CashAdvanceCreated, true)
	ctx := context.Background()

	steps := []struct {
		trigger Trigger
		want    State
	}{
		{TriggerRequestApproval, status.CashAdvancePending1},
		{TriggerApprove, status.CashAdvancePending2},
		{TriggerApprove, status.CashAdvanceAccounting},
		{TriggerApprove, status.CashAdvancePendingSAP},
		{TriggerPost, status.CashAdvancePosted},
		{TriggerPay, status.CashAdvancePaid},
	}

	for _, step := range steps {
		if err := machine.Fire(ctx, step.trigger); err != nil {
			t.Fatalf("Fire(%v) from %v error = %v", step.trigger, machine.State(), err)
		}
		if machine.State() != step.want {
			t.Fatalf("State() = %v, want %v", machine.State(), step.want)
		}
	}

	if len(machine.PermittedTriggers()) != 0 {
		t.Errorf("paid status should permit no triggers, got %v", machine.PermittedTriggers())
	}
}

func TestNewTransactionMachine_SkipsSecondVerificator(t *testing.T) {
	machine := NewTransactionMachine(status.DisbursementPending1, false)

	if err := machine.Fire(context.Background(), TriggerApprove); err != nil {
		t.Fatalf("Fire(APPROVE) error = %v", err)
	}
	if machine.State() != status.DisbursementAccounting {
		t.Errorf("State() = %v, want %v (second verificator skipped)", machine.State(), status.DisbursementAccounting)
	}
}

func TestNewTransactionMachine_RejectAndDelete(t *testing.T) {
	machine := NewTransactionMachine(status.DisbursementPending2, true)
	if err := machine.Fire(context.Background(), TriggerReject); err != nil {
		t.Fatalf("Fire(REJECT) error = %v", err)
	}
	if machine.State() != status.Rejected {
		t.Errorf("State() = %v, want %v", machine.State(), status.Rejected)
	}

	machine = NewTransactionMachine(status.CashAdvanceCreated, true)
	if err := machine.Fire(context.Background(), TriggerDelete); err != nil {
		t.Fatalf("Fire(DELETE) error = %v", err)
	}
	if machine.State() != status.Deleted {
		t.Errorf("State() = %v, want %v", machine.State(), status.Deleted)
	}
}

func TestNewTransactionMachine_ReviseKeepsCode(t *testing.T) {
	// Every review stage is revisable, the SAP queue included; the code
	// stays in place.
	stages := []State{
		status.CashAdvancePending1,
		status.CashAdvancePending2,
		status.CashAdvanceAccounting,
		status.CashAdvancePendingSAP,
		status.DisbursementPending1,
		status.DisbursementPending2,
		status.DisbursementAccounting,
		status.DisbursementPendingSAP,
	}

	for _, stage := range stages {
		t.Run(string(stage), func(t *testing.T) {
			machine := NewTransactionMachine(stage, true)
			if err := machine.Fire(context.Background(), TriggerRevise); err != nil {
				t.Fatalf("Fire(REVISE) error = %v", err)
			}
			if machine.State() != stage {
				t.Errorf("State() = %v, want unchanged %v", machine.State(), stage)
			}
		})
	}
}

func TestNewTransactionMachine_NoReviseOutsideReviewStages(t *testing.T) {
	for _, stage := range []State{status.CashAdvanceCreated, status.CashAdvancePosted, status.DisbursementPaid} {
		machine := NewTransactionMachine(stage, true)
		if err := machine.Fire(context.Background(), TriggerRevise); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Fire(REVISE) from %v error = %v, want ErrInvalidTransition", stage, err)
		}
	}
}

func TestNewTransactionMachine_PermitsEveryAdvertisedAction(t *testing.T) {
	// The machine must accept every trigger the action table can offer, so
	// the actions endpoint never advertises an operation Execute refuses.
	machine := NewTransactionMachine(status.CashAdvancePendingSAP, true)
	if !machine.CanFire(TriggerRevise) {
		t.Error("CanFire(REVISE) = false at the SAP queue, but revise is offered there")
	}
	if err := machine.Fire(context.Background(), TriggerRevise); err != nil {
		t.Fatalf("Fire(REVISE) error = %v", err)
	}
	if machine.State() != status.CashAdvancePendingSAP {
		t.Errorf("State() = %v, want unchanged %v", machine.State(), status.CashAdvancePendingSAP)
	}
}
