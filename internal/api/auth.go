package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	loginPath    = "/v1/auth/login"
	loginRetries = 3
)

var loginBaseDelay = 500 * time.Millisecond

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token. Transient failures are
// retried with exponential backoff, at most loginRetries times on top of the
// first attempt. Rejections are not.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	var token string
	b := retry.WithMaxRetries(loginRetries, retry.NewExponential(loginBaseDelay))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var out LoginResponse
		err := c.do(ctx, http.MethodPost, loginPath, nil, LoginRequest{Email: email, Password: password}, &out)
		if err != nil {
			var apiErr *Error
			if errors.As(err, &apiErr) && !apiErr.Temporary() {
				return err
			}
			return retry.RetryableError(err)
		}
		if out.Token == "" {
			return errors.New("login succeeded without a token")
		}
		token = out.Token
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("login %s: %w", email, err)
	}
	c.log.Info("logged in", "email", email)

	return token, nil
}
