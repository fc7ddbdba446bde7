package backend

import (
	"context"
	"net/http"

	"koistore/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (models.AuthTokens, error) {
	const op = "backend.Login"
	return call[models.AuthTokens](ctx, c, op, http.MethodPost, "users/login", LoginRequest{Email: email, Password: password})
}

func (c *Client) Me(ctx context.Context) (models.User, error) {
	const op = "backend.Me"
	return call[models.User](ctx, c, op, http.MethodGet, "users/me", nil)
}
