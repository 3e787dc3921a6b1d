package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/reel/pkg/handlers"
)

// Cookie names carrying tokens.
const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// Gate authenticates requests before they reach protected handlers.
type Gate struct {
	verifiers []Verifier
	resolver  Resolver
	logger    *slog.Logger
}

// NewGate creates a Gate that tries each verifier in order.
func NewGate(resolver Resolver, logger *slog.Logger, verifiers ...Verifier) *Gate {
	return &Gate{
		verifiers: verifiers,
		resolver:  resolver,
		logger:    logger.With("system", "auth"),
	}
}

// Require wraps next so it only runs with a resolved identity in the request context.
// Unauthenticated requests receive a 401 envelope.
func (g *Gate) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := g.authenticate(r)
		if err != nil {
			handlers.RespondError(w, g.logger, http.StatusUnauthorized, err)
			return
		}
		next(w, r.WithContext(WithIdentity(r.Context(), id)))
	}
}

func (g *Gate) authenticate(r *http.Request) (Identity, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}

	var lastErr error
	for _, v := range g.verifiers {
		sub, err := v.Verify(r.Context(), token)
		if err != nil {
			lastErr = err
			continue
		}

		var id Identity
		if sub.Email != "" {
			id, err = g.resolver.ResolveEmail(r.Context(), sub.Email)
		} else {
			id, err = g.resolver.ResolveIdentity(r.Context(), sub.ID)
		}
		if err != nil {
			g.logger.Debug("identity resolution failed", "error", err)
			return Identity{}, ErrUnknownUser
		}
		return id, nil
	}

	if errors.Is(lastErr, ErrExpiredToken) {
		return Identity{}, ErrExpiredToken
	}
	return Identity{}, ErrInvalidToken
}

// TokenFromRequest returns the access token from the accessToken cookie, falling
// back to the Authorization bearer header. Returns "" when neither is present.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AccessCookie); err == nil && c.Value != "" {
		return c.Value
	}

	header := r.Header.Get("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

// Cookies builds token cookies from the auth configuration.
type Cookies struct {
	cfg *Config
}

// NewCookies creates a Cookies writer.
func NewCookies(cfg *Config) Cookies {
	return Cookies{cfg: cfg}
}

// Set writes the access and refresh token cookies.
func (c Cookies) Set(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, c.cookie(AccessCookie, access, int(c.cfg.AccessExpiryDuration().Seconds())))
	http.SetCookie(w, c.cookie(RefreshCookie, refresh, int(c.cfg.RefreshExpiryDuration().Seconds())))
}

// Clear expires both token cookies.
func (c Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(AccessCookie, "", -1))
	http.SetCookie(w, c.cookie(RefreshCookie, "", -1))
}

func (c Cookies) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.cfg.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.cfg.CookieSecure,
		SameSite: c.cfg.SameSite(),
	}
}
