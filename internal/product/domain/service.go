package domain

import (
	"context"
	"errors"
	"time"

	commentdomain "github.com/productify/productify/internal/comment/domain"
	userdomain "github.com/productify/productify/internal/user/domain"
)

// Service is the orchestration core: authorization, validation, and
// composition of repository, owner, and comment data into response shapes.
// Every operation takes the resolved caller identity explicitly; the service
// keeps no state across requests.
type Service interface {
	List(ctx context.Context) ([]Response, error)
	ListMine(ctx context.Context, callerID string) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Create(ctx context.Context, callerID string, req CreateRequest) (*Response, error)
	Update(ctx context.Context, callerID string, id string, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, callerID string, id string) error
}

type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// UpdateRequest carries the closed set of updatable fields. Nil means the
// field is untouched; a supplied field is re-validated as non-empty.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

type Response struct {
	ID           string                  `json:"id"`
	OwnerID      string                  `json:"ownerId"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	ImageURL     string                  `json:"imageUrl"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
	User         *userdomain.Profile     `json:"user,omitempty"`
	Comments     []commentdomain.Comment `json:"comments"`
	CommentCount int64                   `json:"commentCount"`
}

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not_found")
	ErrInvalidID       = errors.New("invalid_id")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError aggregates every field that failed so the caller sees the
// whole set in one response.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string { return "validation error" }

func RequiredField(name string) FieldError {
	return FieldError{Field: name, Code: "required", Message: name + " is required"}
}
