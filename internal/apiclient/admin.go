package apiclient

import (
	"context"
	"net/http"
)

// AdminService covers the admin-only endpoints.
type AdminService struct{ c *Client }

// UserInput is a convenience body for CreateUser and UpdateUser.
type UserInput struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"` //nolint:gosec // admin-set initial credential
	RoleID   int64  `json:"role_id,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// Metrics returns user counts and the full resource status breakdown.
func (s *AdminService) Metrics(ctx context.Context, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/admin/metrics", requestOptions{token: authToken})
}

// Users lists users. Every parameter is sent, including empty ones.
func (s *AdminService) Users(ctx context.Context, authToken string, params Filters) (Envelope, error) {
	return s.c.request(ctx, withQuery("/users", params.encode(false)), requestOptions{token: authToken})
}

// CreateUser creates an account directly, bypassing self-registration.
func (s *AdminService) CreateUser(ctx context.Context, input any, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/admin/users", requestOptions{
		method: http.MethodPost,
		token:  authToken,
		body:   input,
	})
}

// UpdateUser replaces a user's editable fields.
func (s *AdminService) UpdateUser(ctx context.Context, id string, input any, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/admin/users/"+segment(id), requestOptions{
		method: http.MethodPut,
		token:  authToken,
		body:   input,
	})
}

// UpdateUserRole assigns a role.
func (s *AdminService) UpdateUserRole(ctx context.Context, id string, roleID int64, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/admin/users/"+segment(id)+"/role", requestOptions{
		method: http.MethodPatch,
		token:  authToken,
		body:   map[string]int64{"role_id": roleID},
	})
}

// SetUserActive activates or deactivates a user.
func (s *AdminService) SetUserActive(ctx context.Context, id string, active bool, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/admin/users/"+segment(id)+"/active", requestOptions{
		method: http.MethodPatch,
		token:  authToken,
		body:   map[string]bool{"is_active": active},
	})
}

// OverrideResourceStatus force-sets a resource's workflow status.
func (s *AdminService) OverrideResourceStatus(ctx context.Context, resourceID, status, reason, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/resources/"+segment(resourceID)+"/status", requestOptions{
		method: http.MethodPost,
		token:  authToken,
		body:   map[string]string{"status": status, "reason": reason},
	})
}

// FellowApplications lists applications, optionally filtered by status.
func (s *AdminService) FellowApplications(ctx context.Context, authToken, status string) (Envelope, error) {
	var qs Filters
	if status != "" {
		qs = qs.Add("status", status)
	}
	return s.c.request(ctx, withQuery("/admin/fellow-applications", qs.encode(true)), requestOptions{token: authToken})
}

// ApproveFellowApplication approves an application.
func (s *AdminService) ApproveFellowApplication(ctx context.Context, id, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/admin/fellow-applications/"+segment(id)+"/approve", requestOptions{
		method: http.MethodPatch,
		token:  authToken,
	})
}

// RejectFellowApplication rejects an application.
func (s *AdminService) RejectFellowApplication(ctx context.Context, id, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/admin/fellow-applications/"+segment(id)+"/reject", requestOptions{
		method: http.MethodPatch,
		token:  authToken,
	})
}
