package workflow

import "github.com/tugu-digital/dots/internal/domain/status"

// State is a workflow state in the transaction lifecycle. DOTS states are
// the 4-digit status codes of the taxonomy, so the machine validates the
// same transitions the backend persists.
type State = status.Code
