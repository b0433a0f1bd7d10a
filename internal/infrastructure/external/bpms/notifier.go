package bpms

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tugu-digital/dots/internal/application/port"
)

// NotifyApproval mirrors an approval action to the BPMS workflow.
// Implements port.ApprovalNotifier
func (c *Client) NotifyApproval(ctx context.Context, email, dotsNumber string) error {
	payload := map[string]string{
		"email":       email,
		"dots_number": dotsNumber,
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/notifications/approval", payload, nil); err != nil {
		return fmt.Errorf("failed to notify approval for %s: %w", dotsNumber, err)
	}
	return nil
}

// NotifyRevision mirrors a revision request, including the reviewer notes.
// Implements port.ApprovalNotifier
func (c *Client) NotifyRevision(ctx context.Context, email, dotsNumber, notes string) error {
	payload := map[string]string{
		"email":       email,
		"dots_number": dotsNumber,
		"notes":       notes,
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/notifications/revision", payload, nil); err != nil {
		return fmt.Errorf("failed to notify revision for %s: %w", dotsNumber, err)
	}
	return nil
}

// Verify interface compliance
var _ port.ApprovalNotifier = (*Client)(nil)
