package workflow

// Trigger represents a user or system action that can cause a state transition
type Trigger string

const (
	TriggerRequestApproval Trigger = "REQUEST_APPROVAL"
	TriggerApprove         Trigger = "APPROVE"
	TriggerRevise          Trigger = "REVISE"
	TriggerReject          Trigger = "REJECT"
	TriggerDelete          Trigger = "DELETE"
	TriggerPost            Trigger = "POST_SAP"
	TriggerPay             Trigger = "PAY"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
