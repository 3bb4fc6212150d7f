package apiclient

import (
	"context"
	"net/http"
)

// FellowService lets a signed-in user apply for the fellow role.
type FellowService struct{ c *Client }

// Apply submits an application. Only users without an elevated role may
// apply; the server enforces this.
func (s *FellowService) Apply(ctx context.Context, input any, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/fellow-applications", requestOptions{
		method: http.MethodPost,
		token:  authToken,
		body:   input,
	})
}

// Mine returns the caller's own application.
func (s *FellowService) Mine(ctx context.Context, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/fellow-applications/me", requestOptions{token: authToken})
}
