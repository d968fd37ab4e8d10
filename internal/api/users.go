package api

import (
	"context"
	"net/http"

	"github.com/bookhaven/bookhaven-client/pkg/types"
)

// LoginCredentials is the JSON login payload.
type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterUpload is the multipart registration payload.
type RegisterUpload struct {
	Username string
	Email    string
	Password string
	Role     string
	Avatar   *FileField
}

// AuthResult pairs the bearer token with the user snapshot the backend
// returns from login and register.
type AuthResult struct {
	Token string
	User  types.User
}

// Login exchanges credentials for a session. A 401 here means bad
// credentials and is returned to the caller, never treated as expiry.
func (c *Client) Login(ctx context.Context, creds LoginCredentials) (AuthResult, error) {
	spec, err := jsonSpec(http.MethodPost, pathLogin, creds)
	if err != nil {
		return AuthResult{}, err
	}

	var resp struct {
		Data    string     `json:"data"`
		User    types.User `json:"user"`
		Message string     `json:"message"`
	}
	if err := c.do(ctx, spec, &resp); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: resp.Data, User: resp.User}, nil
}

// Register creates an account and returns the fresh session.
func (c *Client) Register(ctx context.Context, upload RegisterUpload) (AuthResult, error) {
	fields := map[string]string{
		"username": upload.Username,
		"email":    upload.Email,
		"password": upload.Password,
	}
	if upload.Role != "" {
		fields["role"] = upload.Role
	}

	spec, err := multipartSpec(http.MethodPost, pathRegister, fields, upload.Avatar)
	if err != nil {
		return AuthResult{}, err
	}
	spec.idempotencyKey = mutationKey()

	var resp struct {
		Data    string     `json:"data"`
		User    types.User `json:"user"`
		Message string     `json:"message"`
	}
	if err := c.do(ctx, spec, &resp); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: resp.Data, User: resp.User}, nil
}
