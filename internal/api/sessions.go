package api

import (
	"context"
	"net/http"

	"github.com/BruksfildServices01/psique-web/internal/models"
)

// CreateSession autentica o profissional e devolve usuário e token.
func (c *Client) CreateSession(ctx context.Context, creds models.Credentials) (*models.AuthSession, error) {
	var out models.AuthSession
	if err := c.do(ctx, http.MethodPost, "/sessions", "sessions", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser cadastra uma nova conta.
func (c *Client) CreateUser(ctx context.Context, in models.NewUser) error {
	return c.do(ctx, http.MethodPost, "/users", "users", in, nil)
}
