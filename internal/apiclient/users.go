package apiclient

import (
	"context"
	"net/http"
)

// UserService covers registration, activation and profile lookup.
type UserService struct{ c *Client }

// RegisterInput is the body of POST /users.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // user-supplied credential, sent once over the wire
}

// Register creates an account. The server emails an activation token.
func (s *UserService) Register(ctx context.Context, username, email, password string) (Envelope, error) {
	return s.c.request(ctx, "/users", requestOptions{
		method: http.MethodPost,
		body:   RegisterInput{Username: username, Email: email, Password: password},
	})
}

// Activate confirms an account with the emailed token.
func (s *UserService) Activate(ctx context.Context, token string) (Envelope, error) {
	return s.c.request(ctx, "/users/activated", requestOptions{
		method: http.MethodPut,
		body:   map[string]string{"token": token},
	})
}

// Get fetches one user.
func (s *UserService) Get(ctx context.Context, id, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/users/"+segment(id), requestOptions{token: authToken})
}

// TokenService issues authentication tokens.
type TokenService struct{ c *Client }

// Authenticate exchanges credentials for a bearer token. The token is found
// under authentication_token.token in the returned envelope.
func (s *TokenService) Authenticate(ctx context.Context, email, password string) (Envelope, error) {
	return s.c.request(ctx, "/tokens/authentication", requestOptions{
		method: http.MethodPost,
		body:   map[string]string{"email": email, "password": password},
	})
}

// Healthcheck calls the unauthenticated health endpoint.
func (c *Client) Healthcheck(ctx context.Context) (Envelope, error) {
	return c.request(ctx, "/healthcheck", requestOptions{})
}

// Ping satisfies health.Pinger.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Healthcheck(ctx)
	return err
}
