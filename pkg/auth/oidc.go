package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/JaimeStill/reel/pkg/lifecycle"
)

var errOIDCNotReady = errors.New("oidc provider not initialized")

// OIDCVerifier validates ID tokens from an external identity provider and
// yields the token's email claim as the subject.
type OIDCVerifier struct {
	cfg      OIDCConfig
	verifier atomic.Pointer[oidc.IDTokenVerifier]
	logger   *slog.Logger
}

// NewOIDCVerifier creates a verifier for the configured issuer.
// Provider discovery happens in the startup hook registered by Start.
func NewOIDCVerifier(cfg OIDCConfig, logger *slog.Logger) *OIDCVerifier {
	return &OIDCVerifier{
		cfg:    cfg,
		logger: logger.With("system", "oidc"),
	}
}

// Start registers a startup hook that performs provider discovery.
func (o *OIDCVerifier) Start(lc *lifecycle.Coordinator) error {
	o.logger.Info("starting oidc verifier", "issuer", o.cfg.Issuer)

	lc.OnStartup(func() {
		provider, err := oidc.NewProvider(lc.Context(), o.cfg.Issuer)
		if err != nil {
			o.logger.Error("oidc discovery failed", "error", err)
			return
		}

		o.verifier.Store(provider.Verifier(&oidc.Config{ClientID: o.cfg.ClientID}))
		o.logger.Info("oidc provider ready")
	})

	return nil
}

// Verify validates raw as an ID token and returns its email claim.
func (o *OIDCVerifier) Verify(ctx context.Context, raw string) (Subject, error) {
	v := o.verifier.Load()
	if v == nil {
		return Subject{}, errOIDCNotReady
	}

	token, err := v.Verify(ctx, raw)
	if err != nil {
		return Subject{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified *bool  `json:"email_verified"`
	}
	if err := token.Claims(&claims); err != nil {
		return Subject{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Email == "" || (claims.EmailVerified != nil && !*claims.EmailVerified) {
		return Subject{}, ErrInvalidToken
	}

	return Subject{Email: strings.ToLower(claims.Email)}, nil
}
