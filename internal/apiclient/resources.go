package apiclient

import (
	"context"
	"net/http"
)

// ResourceService covers resource CRUD, listing and metrics.
type ResourceService struct{ c *Client }

// ResourceInput is a convenience body for Create and Update. Any
// JSON-encodable value is accepted by those methods; empty fields here are
// omitted so the same type serves partial updates.
type ResourceInput struct {
	Title        string   `json:"title,omitempty"`
	Category     string   `json:"category,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	DriveLink    string   `json:"drive_link,omitempty"`
	PublishedURL string   `json:"published_url,omitempty"`
	Status       string   `json:"status,omitempty"`
	Subjects     []string `json:"subjects,omitempty"`
	GradeLevels  []string `json:"grade_levels,omitempty"`
}

// Create submits a new resource.
func (s *ResourceService) Create(ctx context.Context, input any, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/resources", requestOptions{
		method: http.MethodPost,
		token:  authToken,
		body:   input,
	})
}

// List returns resources matching filters. Filters with an empty value are
// skipped; the rest keep their order.
func (s *ResourceService) List(ctx context.Context, filters Filters) (Envelope, error) {
	return s.c.request(ctx, withQuery("/resources", filters.encode(true)), requestOptions{})
}

// Get fetches a resource by numeric id.
func (s *ResourceService) Get(ctx context.Context, id string) (Envelope, error) {
	return s.c.request(ctx, "/resources/"+segment(id), requestOptions{})
}

// GetBySlug fetches a resource by its URL slug.
func (s *ResourceService) GetBySlug(ctx context.Context, slug string) (Envelope, error) {
	return s.c.request(ctx, "/resource-by-slug/"+segment(slug), requestOptions{})
}

// Update patches a resource.
func (s *ResourceService) Update(ctx context.Context, id string, input any, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/resources/"+segment(id), requestOptions{
		method: http.MethodPatch,
		token:  authToken,
		body:   input,
	})
}

// Metrics returns the reviewer-facing status counts.
func (s *ResourceService) Metrics(ctx context.Context, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/resource-metrics", requestOptions{token: authToken})
}

// Delete removes a resource.
func (s *ResourceService) Delete(ctx context.Context, id, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/resources/"+segment(id), requestOptions{
		method: http.MethodDelete,
		token:  authToken,
	})
}

// ReviewService submits resource reviews.
type ReviewService struct{ c *Client }

// ReviewInput is the body of POST /resource-reviews. CommentSummary is
// always sent, empty when not given.
type ReviewInput struct {
	ResourceID     int64  `json:"resource_id"`
	ReviewerID     int64  `json:"reviewer_id"`
	ReviewerRoleID int64  `json:"reviewer_role_id"`
	Decision       string `json:"decision"`
	CommentSummary string `json:"comment_summary"`
}

// Create records a review decision.
func (s *ReviewService) Create(ctx context.Context, input ReviewInput, authToken string) (Envelope, error) {
	return s.c.request(ctx, "/resource-reviews", requestOptions{
		method: http.MethodPost,
		token:  authToken,
		body:   input,
	})
}
