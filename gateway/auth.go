package gateway

import (
	"context"
	"fmt"

	"github.com/jrsteele09/ims-console/internal/errors"
	"github.com/jrsteele09/ims-console/users"
)

const loginPath = "/auth/login"

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type LoginResponse struct {
	Success bool          `json:"success"`
	User    users.Profile `json:"user"`
	Token   string        `json:"token"`
}

// CredentialsError is a login the API refused. Message is the API's reason.
type CredentialsError struct {
	Message string
}

func (e *CredentialsError) Error() string {
	return errors.ErrInvalidCredentials.Error() + ": " + e.Message
}

func (e *CredentialsError) Unwrap() error {
	return errors.ErrInvalidCredentials
}

// Login exchanges credentials for a token and profile. Rejected credentials
// are reported as a *CredentialsError.
func (g *Gateway) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := g.Post(ctx, loginPath, req, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			msg := apiErr.Message
			if msg == "" {
				msg = "Login failed"
			}
			return nil, &CredentialsError{Message: msg}
		}
		return nil, err
	}

	if resp.Token == "" {
		return nil, fmt.Errorf("%w: login response carried no token", errors.ErrAPI)
	}
	if err := resp.User.Validate(); err != nil {
		return nil, err
	}
	return &resp, nil
}
