package api

import (
	"context"
	"net/http"

	"bookhub/pkg/models"
)

// Register creates an account and installs the issued token in the
// session, decoding the role claim.
func (c *Client) Register(ctx context.Context, registration models.Registration) error {
	var resp models.TokenResponse
	if err := c.do(ctx, http.MethodPost, registerPath, nil, false, registration, &resp); err != nil {
		return err
	}
	return c.session.SetToken(resp.Token)
}

// Authenticate logs in and installs the issued token in the session.
func (c *Client) Authenticate(ctx context.Context, login models.Login) error {
	var resp models.TokenResponse
	if err := c.do(ctx, http.MethodPost, authenticatePath, nil, false, login, &resp); err != nil {
		return err
	}
	return c.session.SetToken(resp.Token)
}
