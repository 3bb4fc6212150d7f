package apiclient_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/d9705996/hubclient/internal/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoints(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		call   func(c *apiclient.Client) (apiclient.Envelope, error)
		method string
		path   string
		query  string
		auth   string
		body   map[string]any
	}{
		{
			name:   "register",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Users.Register(ctx, "ann", "ann@x.io", "secret123") },
			method: http.MethodPost, path: "/v1/users",
			body: map[string]any{"username": "ann", "email": "ann@x.io", "password": "secret123"},
		},
		{
			name:   "activate",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Users.Activate(ctx, "ACT") },
			method: http.MethodPut, path: "/v1/users/activated",
			body: map[string]any{"token": "ACT"},
		},
		{
			name:   "get user",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Users.Get(ctx, "12", "tok") },
			method: http.MethodGet, path: "/v1/users/12", auth: "Bearer tok",
		},
		{
			name:   "authenticate",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Tokens.Authenticate(ctx, "a@b.c", "pw") },
			method: http.MethodPost, path: "/v1/tokens/authentication",
			body: map[string]any{"email": "a@b.c", "password": "pw"},
		},
		{
			name: "create resource",
			call: func(c *apiclient.Client) (apiclient.Envelope, error) {
				return c.Resources.Create(ctx, apiclient.ResourceInput{Title: "T", Category: "lesson"}, "tok")
			},
			method: http.MethodPost, path: "/v1/resources", auth: "Bearer tok",
			body: map[string]any{"title": "T", "category": "lesson"},
		},
		{
			name: "list resources keeps truthy filters in order",
			call: func(c *apiclient.Client) (apiclient.Envelope, error) {
				f := apiclient.Filters{}.Add("subject", "math").Add("status", "").Add("grade_level", "5").Add("sort", "-title")
				return c.Resources.List(ctx, f)
			},
			method: http.MethodGet, path: "/v1/resources", query: "subject=math&grade_level=5&sort=-title",
		},
		{
			name:   "list resources without filters",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Resources.List(ctx, nil) },
			method: http.MethodGet, path: "/v1/resources",
		},
		{
			name: "list resources from typed query",
			call: func(c *apiclient.Client) (apiclient.Envelope, error) {
				return c.Resources.List(ctx, apiclient.ResourceQuery{Status: "published", Page: 2}.Filters())
			},
			method: http.MethodGet, path: "/v1/resources", query: "status=published&page=2",
		},
		{
			name:   "get resource",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Resources.Get(ctx, "9") },
			method: http.MethodGet, path: "/v1/resources/9",
		},
		{
			name:   "get by slug escapes segment",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Resources.GetBySlug(ctx, "a b") },
			method: http.MethodGet, path: "/v1/resource-by-slug/a%20b",
		},
		{
			name: "update resource",
			call: func(c *apiclient.Client) (apiclient.Envelope, error) {
				return c.Resources.Update(ctx, "9", map[string]any{"summary": "new"}, "tok")
			},
			method: http.MethodPatch, path: "/v1/resources/9", auth: "Bearer tok",
			body: map[string]any{"summary": "new"},
		},
		{
			name:   "resource metrics",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Resources.Metrics(ctx, "tok") },
			method: http.MethodGet, path: "/v1/resource-metrics", auth: "Bearer tok",
		},
		{
			name:   "delete resource",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Resources.Delete(ctx, "9", "tok") },
			method: http.MethodDelete, path: "/v1/resources/9", auth: "Bearer tok",
		},
		{
			name: "create review",
			call: func(c *apiclient.Client) (apiclient.Envelope, error) {
				return c.Reviews.Create(ctx, apiclient.ReviewInput{ResourceID: 9, ReviewerID: 2, ReviewerRoleID: 4, Decision: "approved"}, "tok")
			},
			method: http.MethodPost, path: "/v1/resource-reviews", auth: "Bearer tok",
			body: map[string]any{
				"resource_id": float64(9), "reviewer_id": float64(2), "reviewer_role_id": float64(4),
				"decision": "approved", "comment_summary": "",
			},
		},
		{
			name:   "admin metrics",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Admin.Metrics(ctx, "tok") },
			method: http.MethodGet, path: "/v1/admin/metrics", auth: "Bearer tok",
		},
		{
			name: "admin users keeps empty params",
			call: func(c *apiclient.Client) (apiclient.Envelope, error) {
				return c.Admin.Users(ctx, "tok", apiclient.Filters{}.Add("page", "1").Add("role", ""))
			},
			method: http.MethodGet, path: "/v1/users", query: "page=1&role=", auth: "Bearer tok",
		},
		{
			name: "admin create user",
			call: func(c *apiclient.Client) (apiclient.Envelope, error) {
				return c.Admin.CreateUser(ctx, apiclient.UserInput{Username: "bo", Email: "bo@x.io", RoleID: 3}, "tok")
			},
			method: http.MethodPost, path: "/v1/admin/users", auth: "Bearer tok",
			body: map[string]any{"username": "bo", "email": "bo@x.io", "role_id": float64(3)},
		},
		{
			name: "admin update user",
			call: func(c *apiclient.Client) (apiclient.Envelope, error) {
				return c.Admin.UpdateUser(ctx, "5", map[string]any{"email": "new@x.io"}, "tok")
			},
			method: http.MethodPut, path: "/v1/admin/users/5", auth: "Bearer tok",
			body: map[string]any{"email": "new@x.io"},
		},
		{
			name:   "admin update role",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Admin.UpdateUserRole(ctx, "5", 2, "tok") },
			method: http.MethodPatch, path: "/v1/admin/users/5/role", auth: "Bearer tok",
			body: map[string]any{"role_id": float64(2)},
		},
		{
			name:   "admin toggle active",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Admin.SetUserActive(ctx, "5", false, "tok") },
			method: http.MethodPatch, path: "/v1/admin/users/5/active", auth: "Bearer tok",
			body: map[string]any{"is_active": false},
		},
		{
			name: "override status",
			call: func(c *apiclient.Client) (apiclient.Envelope, error) {
				return c.Admin.OverrideResourceStatus(ctx, "9", "published", "editorial", "tok")
			},
			method: http.MethodPost, path: "/v1/resources/9/status", auth: "Bearer tok",
			body: map[string]any{"status": "published", "reason": "editorial"},
		},
		{
			name:   "fellow applications filtered",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Admin.FellowApplications(ctx, "tok", "pending") },
			method: http.MethodGet, path: "/v1/admin/fellow-applications", query: "status=pending", auth: "Bearer tok",
		},
		{
			name:   "fellow applications unfiltered",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Admin.FellowApplications(ctx, "tok", "") },
			method: http.MethodGet, path: "/v1/admin/fellow-applications", auth: "Bearer tok",
		},
		{
			name:   "approve application",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Admin.ApproveFellowApplication(ctx, "4", "tok") },
			method: http.MethodPatch, path: "/v1/admin/fellow-applications/4/approve", auth: "Bearer tok",
		},
		{
			name:   "reject application",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Admin.RejectFellowApplication(ctx, "4", "tok") },
			method: http.MethodPatch, path: "/v1/admin/fellow-applications/4/reject", auth: "Bearer tok",
		},
		{
			name: "apply",
			call: func(c *apiclient.Client) (apiclient.Envelope, error) {
				return c.Fellows.Apply(ctx, map[string]any{"motivation": "teach"}, "tok")
			},
			method: http.MethodPost, path: "/v1/fellow-applications", auth: "Bearer tok",
			body: map[string]any{"motivation": "teach"},
		},
		{
			name:   "my application",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Fellows.Mine(ctx, "tok") },
			method: http.MethodGet, path: "/v1/fellow-applications/me", auth: "Bearer tok",
		},
		{
			name:   "healthcheck",
			call:   func(c *apiclient.Client) (apiclient.Envelope, error) { return c.Healthcheck(ctx) },
			method: http.MethodGet, path: "/v1/healthcheck",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newBackend(t, http.StatusOK, `{"ok":true}`)

			env, err := tt.call(c)
			require.NoError(t, err)
			assert.Equal(t, apiclient.Envelope{"ok": true}, env)

			assert.Equal(t, tt.method, rec.method)
			assert.Equal(t, tt.path, rec.path)
			assert.Equal(t, tt.query, rec.query)
			assert.Equal(t, tt.auth, rec.header.Get("Authorization"))
			assert.Equal(t, "application/json", rec.header.Get("Content-Type"))
			assert.Equal(t, tt.body, rec.body)
		})
	}
}

func TestEndpoints_EmptyTokenSendsNoAuthorization(t *testing.T) {
	c, rec := newBackend(t, http.StatusOK, `{}`)
	_, err := c.Fellows.Mine(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, rec.header.Values("Authorization"))
}
