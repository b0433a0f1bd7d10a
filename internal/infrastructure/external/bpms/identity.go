package bpms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tugu-digital/dots/internal/application/port"
	"github.com/tugu-digital/dots/internal/domain/entity"
)

// GetApplications resolves the applications and roles assigned to a user.
// Implements port.IdentityClient
func (c *Client) GetApplications(ctx context.Context, email string) ([]entity.Application, error) {
	var body struct {
		Applications []entity.Application `json:"applications"`
	}

	path := "/api/users/" + url.PathEscape(email) + "/applications"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &body); err != nil {
		return nil, fmt.Errorf("failed to get applications for %s: %w", email, err)
	}

	return body.Applications, nil
}

// Verify interface compliance
var _ port.IdentityClient = (*Client)(nil)
