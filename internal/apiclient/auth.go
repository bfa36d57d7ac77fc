package apiclient

import (
	"context"
	"net/http"

	"github.com/Rushil0704/auth-client-1/internal/domain/model"
)

// Login exchanges credentials for a bearer token. No Authorization header is sent.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	var out model.LoginResponse
	err := c.do(ctx, c.anon, request{
		method:   http.MethodPost,
		path:     "/users/login",
		endpoint: "POST /users/login",
		body:     req,
	}, &out)
	return out, err
}

// Register creates an account. No Authorization header is sent.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) error {
	return c.do(ctx, c.anon, request{
		method:   http.MethodPost,
		path:     "/users/register",
		endpoint: "POST /users/register",
		body:     req,
	}, nil)
}
