package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/productify/productify/internal/config"
	"github.com/productify/productify/internal/upload/domain"
)

func newTestService(t *testing.T, baseURL string) (domain.Service, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Config{
		UploadDir: dir,
		BaseURL:   baseURL,
	}

	svc := New(Params{
		Cfg:    cfg,
		Policy: config.NewStaticUploadPolicyHolder(config.DefaultUploadPolicy()),
		Log:    zaptest.NewLogger(t),
	})
	return svc, dir
}

func pngRequest(payload []byte) domain.IngestRequest {
	return domain.IngestRequest{
		Reader:       bytes.NewReader(payload),
		DeclaredMIME: "image/png",
		SizeBytes:    int64(len(payload)),
		Scheme:       "http",
		Host:         "localhost:3000",
	}
}

func TestIngestStoresFileUnderGeneratedKey(t *testing.T) {
	svc, dir := newTestService(t, "")

	payload := []byte("png-bytes")
	result, err := svc.Ingest(context.Background(), pngRequest(payload))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(result.StorageKey, ".png"))
	assert.NotContains(t, result.StorageKey, "/")

	stored, err := os.ReadFile(filepath.Join(dir, result.StorageKey))
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
}

func TestIngestKeyIsNeverTheClientFilename(t *testing.T) {
	svc, _ := newTestService(t, "")

	first, err := svc.Ingest(context.Background(), pngRequest([]byte("a")))
	require.NoError(t, err)
	second, err := svc.Ingest(context.Background(), pngRequest([]byte("a")))
	require.NoError(t, err)

	assert.NotEqual(t, first.StorageKey, second.StorageKey)
}

func TestIngestRejectsUnsupportedType(t *testing.T) {
	svc, dir := newTestService(t, "")

	req := pngRequest([]byte("not an image"))
	req.DeclaredMIME = "text/plain"

	_, err := svc.Ingest(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestIngestRejectsOversizedDeclaration(t *testing.T) {
	svc, _ := newTestService(t, "")

	req := pngRequest(nil)
	req.SizeBytes = config.DefaultUploadMaxBytes + 1

	_, err := svc.Ingest(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrTooLarge)
}

func TestIngestRejectsOversizedStreamAndRemovesPartial(t *testing.T) {
	svc, dir := newTestService(t, "")

	// Declared size fits; the stream does not.
	req := domain.IngestRequest{
		Reader:       bytes.NewReader(make([]byte, config.DefaultUploadMaxBytes+1)),
		DeclaredMIME: "image/png",
		SizeBytes:    1024,
		Scheme:       "http",
		Host:         "localhost:3000",
	}

	_, err := svc.Ingest(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrTooLarge)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestIngestAcceptsExactCeiling(t *testing.T) {
	svc, _ := newTestService(t, "")

	req := domain.IngestRequest{
		Reader:       bytes.NewReader(make([]byte, config.DefaultUploadMaxBytes)),
		DeclaredMIME: "image/png",
		SizeBytes:    config.DefaultUploadMaxBytes,
		Scheme:       "http",
		Host:         "localhost:3000",
	}

	_, err := svc.Ingest(context.Background(), req)
	assert.NoError(t, err)
}

func TestPublicURLPrefersBaseURL(t *testing.T) {
	svc, _ := newTestService(t, "https://api.example.com/")

	result, err := svc.Ingest(context.Background(), pngRequest([]byte("a")))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/uploads/"+result.StorageKey, result.ImageURL)
}

func TestPublicURLFallsBackToRequestOrigin(t *testing.T) {
	svc, _ := newTestService(t, "")

	req := pngRequest([]byte("a"))
	req.Scheme = "https"
	req.Host = "shop.example.org"

	result, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.org/uploads/"+result.StorageKey, result.ImageURL)
}

func TestIngestHonorsTightenedPolicy(t *testing.T) {
	dir := t.TempDir()
	svc := New(Params{
		Cfg: config.Config{UploadDir: dir},
		Policy: config.NewStaticUploadPolicyHolder(config.UploadPolicy{
			MaxBytes:     64,
			AllowedTypes: []string{"image/png"},
		}),
		Log: zaptest.NewLogger(t),
	})

	req := domain.IngestRequest{
		Reader:       bytes.NewReader([]byte("small")),
		DeclaredMIME: "image/jpeg",
		SizeBytes:    5,
		Scheme:       "http",
		Host:         "localhost",
	}
	_, err := svc.Ingest(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
