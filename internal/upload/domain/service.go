package domain

import (
	"context"
	"errors"
	"io"
)

// IngestRequest carries one uploaded file plus the request facts needed to
// build a client-resolvable URL when no base URL is configured.
type IngestRequest struct {
	Reader io.Reader

	// Filename is the client-supplied name, carried for logging only.
	Filename     string
	DeclaredMIME string
	SizeBytes    int64

	// Scheme and Host describe the client-facing request, already adjusted
	// for proxy trust by the transport layer.
	Scheme string
	Host   string
}

// IngestResult points at the stored asset. StorageKey is server-generated
// and never derived from a client-supplied filename.
type IngestResult struct {
	ImageURL   string `json:"imageUrl"`
	StorageKey string `json:"-"`
}

// Service validates and persists uploaded images.
type Service interface {
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)
}

var (
	ErrUnsupportedType = errors.New("unsupported_type")
	ErrTooLarge        = errors.New("payload_too_large")
	ErrStorage         = errors.New("storage_failure")
)
