package service

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/productify/productify/internal/config"
	"github.com/productify/productify/internal/identity/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
}

type Service struct {
	secret []byte
	log    *zap.Logger
}

func New(p Params) domain.Provider {
	return &Service{
		secret: []byte(p.Cfg.AuthJWTSecret),
		log:    p.Log.Named("identity.provider"),
	}
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Verify checks the provider-issued token signature and expiry and returns
// the subject as the caller identity.
func (s *Service) Verify(ctx context.Context, rawToken string) (*domain.Identity, error) {
	_ = ctx

	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, domain.ErrMissingToken
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		s.log.Debug("token verification failed", zap.Error(err))
		return nil, domain.ErrInvalidToken
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Identity{
		UserID: subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
