package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/productify/productify/internal/config"
	"github.com/productify/productify/internal/upload/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// extensions maps each allow-listed MIME type to its canonical suffix.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Params struct {
	fx.In

	Cfg    config.Config
	Policy *config.UploadPolicyHolder
	Log    *zap.Logger
}

type Service struct {
	dir     string
	baseURL string
	policy  *config.UploadPolicyHolder
	log     *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		dir:     p.Cfg.UploadDir,
		baseURL: p.Cfg.BaseURL,
		policy:  p.Policy,
		log:     p.Log.Named("upload.service"),
	}
}

// Ingest validates the declared type and size, writes the bytes under a
// server-generated key, and returns the public URL for the stored asset.
func (s *Service) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	_ = ctx

	policy := s.policy.Current()

	mimeType := strings.ToLower(strings.TrimSpace(req.DeclaredMIME))
	if !policy.Allows(mimeType) {
		return nil, domain.ErrUnsupportedType
	}
	if req.SizeBytes > policy.MaxBytes {
		return nil, domain.ErrTooLarge
	}

	ext := extensions[mimeType]
	if ext == "" {
		ext = ".bin"
	}
	key := ulid.Make().String() + ext

	written, err := s.store(req.Reader, key, policy.MaxBytes)
	if err != nil {
		return nil, err
	}
	if written > policy.MaxBytes {
		// Declared size lied; drop the partial file and reject.
		_ = os.Remove(filepath.Join(s.dir, key))
		return nil, domain.ErrTooLarge
	}
	s.log.Info("image stored",
		zap.String("key", key),
		zap.String("filename", req.Filename),
		zap.Int64("bytes", written),
	)

	return &domain.IngestResult{
		ImageURL:   s.publicURL(key, req.Scheme, req.Host),
		StorageKey: key,
	}, nil
}

func (s *Service) store(src io.Reader, key string, maxBytes int64) (int64, error) {
	dst := filepath.Join(s.dir, key)

	out, err := os.Create(dst)
	if err != nil {
		s.log.Error("upload write failed", zap.String("key", key), zap.Error(err))
		return 0, domain.ErrStorage
	}

	written, err := io.Copy(out, io.LimitReader(src, maxBytes+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		s.log.Error("upload write failed", zap.String("key", key), zap.Error(err))
		return 0, domain.ErrStorage
	}
	return written, nil
}

// publicURL prefers the configured base URL; otherwise it derives from the
// inbound request's scheme and host.
func (s *Service) publicURL(key, scheme, host string) string {
	if s.baseURL != "" {
		return strings.TrimRight(s.baseURL, "/") + "/uploads/" + key
	}
	return fmt.Sprintf("%s://%s/uploads/%s", scheme, host, key)
}
