package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	uploaddomain "github.com/productify/productify/internal/upload/domain"
	"go.uber.org/zap"
)

func (s *Server) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		AbortWithError(c, newValidationError("image", "required", "image file is required"))
		return
	}

	limit, limitErr := s.uploadLimiter.Allow(c.Request.Context(), callerID(c))
	if limitErr != nil {
		s.log.Warn("upload rate limiter unavailable", zap.Error(limitErr))
	}
	if !limit.Allowed {
		if limit.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(limit.RetryAfter.Seconds())))
		}
		AbortWithError(c, ErrRateLimited)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.log.Warn("opening multipart file failed", zap.Error(err))
		AbortWithError(c, uploaddomain.ErrStorage)
		return
	}
	defer file.Close()

	scheme, host := s.requestOrigin(c)
	result, err := s.uploadSvc.Ingest(c.Request.Context(), uploaddomain.IngestRequest{
		Reader:       file,
		Filename:     fileHeader.Filename,
		DeclaredMIME: fileHeader.Header.Get("Content-Type"),
		SizeBytes:    fileHeader.Size,
		Scheme:       scheme,
		Host:         host,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// requestOrigin derives the client-facing scheme and host. Forwarded headers
// are honored only when the deployment declares trusted proxy hops.
func (s *Server) requestOrigin(c *gin.Context) (string, string) {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	host := c.Request.Host

	if s.cfg.TrustProxies() {
		if fwdProto := c.GetHeader("X-Forwarded-Proto"); fwdProto != "" {
			scheme = fwdProto
		}
		if fwdHost := c.GetHeader("X-Forwarded-Host"); fwdHost != "" {
			host = fwdHost
		}
	}

	return scheme, host
}
