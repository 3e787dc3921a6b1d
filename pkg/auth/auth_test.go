package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/auth"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig(t *testing.T) *auth.Config {
	t.Helper()
	cfg := &auth.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	return cfg
}

type resolver struct {
	users map[uuid.UUID]auth.Identity
}

func (r resolver) ResolveIdentity(_ context.Context, id uuid.UUID) (auth.Identity, error) {
	u, ok := r.users[id]
	if !ok {
		return auth.Identity{}, errors.New("user not found")
	}
	return u, nil
}

func (r resolver) ResolveEmail(_ context.Context, email string) (auth.Identity, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return auth.Identity{}, errors.New("user not found")
}

type emailVerifier struct{}

func (emailVerifier) Verify(_ context.Context, token string) (auth.Subject, error) {
	email, ok := strings.CutPrefix(token, "sso:")
	if !ok {
		return auth.Subject{}, auth.ErrInvalidToken
	}
	return auth.Subject{Email: email}, nil
}

func TestConfigFinalize(t *testing.T) {
	cfg := testConfig(t)
	if cfg.AccessExpiryDuration() != 24*time.Hour || cfg.RefreshExpiryDuration() != 240*time.Hour {
		t.Errorf("expiries = %v/%v", cfg.AccessExpiryDuration(), cfg.RefreshExpiryDuration())
	}
	if cfg.SameSite() != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want lax", cfg.SameSite())
	}

	tests := []struct {
		name string
		cfg  auth.Config
		want string
	}{
		{"missing access", auth.Config{RefreshSecret: "r"}, "access_secret required"},
		{"shared secret", auth.Config{AccessSecret: "s", RefreshSecret: "s"}, "must differ"},
		{"bad expiry", auth.Config{AccessSecret: "a", RefreshSecret: "r", AccessExpiry: "-1h"}, "invalid access_expiry"},
		{"oidc without client", auth.Config{AccessSecret: "a", RefreshSecret: "r", OIDC: auth.OIDCConfig{Issuer: "https://idp"}}, "client_id required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Finalize() = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("T_ACCESS", "env-access")
	t.Setenv("T_REFRESH", "env-refresh")
	t.Setenv("T_SECURE", "true")
	t.Setenv("T_SAMESITE", "None")

	var cfg auth.Config
	err := cfg.Finalize(&auth.Env{
		AccessSecret:   "T_ACCESS",
		RefreshSecret:  "T_REFRESH",
		CookieSecure:   "T_SECURE",
		CookieSameSite: "T_SAMESITE",
	})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg.AccessSecret != "env-access" || !cfg.CookieSecure || cfg.SameSite() != http.SameSiteNoneMode {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestTokensRoundTrip(t *testing.T) {
	tokens := auth.NewTokens(testConfig(t))
	id := auth.Identity{ID: uuid.New(), Username: "ada", Email: "ada@example.com"}

	access, err := tokens.IssueAccess(id)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if got, err := tokens.VerifyAccess(access); err != nil || got != id.ID {
		t.Errorf("VerifyAccess = %v, %v", got, err)
	}

	first, _ := tokens.IssueRefresh(id.ID)
	second, _ := tokens.IssueRefresh(id.ID)
	if first == second {
		t.Error("refresh tokens are not distinct")
	}
	if got, err := tokens.VerifyRefresh(first); err != nil || got != id.ID {
		t.Errorf("VerifyRefresh = %v, %v", got, err)
	}

	if _, err := tokens.VerifyRefresh(access); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("access token accepted as refresh: %v", err)
	}
	if _, err := tokens.VerifyAccess(first); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("refresh token accepted as access: %v", err)
	}
	if _, err := tokens.VerifyAccess(""); !errors.Is(err, auth.ErrMissingToken) {
		t.Errorf("empty token = %v, want ErrMissingToken", err)
	}
}

func TestTokensExpired(t *testing.T) {
	cfg := testConfig(t)
	tokens := auth.NewTokens(cfg)

	past := time.Now().Add(-time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Issuer:    cfg.Issuer,
		Audience:  jwt.ClaimStrings{"access"},
		IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(past),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tokens.VerifyAccess(expired); !errors.Is(err, auth.ErrExpiredToken) {
		t.Errorf("VerifyAccess(expired) = %v, want ErrExpiredToken", err)
	}
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"none", "", "", ""},
		{"bearer", "", "Bearer abc", "abc"},
		{"case-insensitive scheme", "", "bearer  abc ", "abc"},
		{"basic ignored", "", "Basic abc", ""},
		{"cookie wins", "from-cookie", "Bearer from-header", "from-cookie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := auth.TokenFromRequest(r); got != tt.want {
				t.Errorf("TokenFromRequest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGateRequire(t *testing.T) {
	tokens := auth.NewTokens(testConfig(t))
	known := auth.Identity{ID: uuid.New(), Username: "ada", Email: "ada@example.com"}
	res := resolver{users: map[uuid.UUID]auth.Identity{known.ID: known}}

	gate := auth.NewGate(res, discard, auth.AccessVerifier{Tokens: tokens}, emailVerifier{})

	var seen auth.Identity
	protected := gate.Require(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.Caller(w, r, discard)
		if !ok {
			return
		}
		seen = id
		w.WriteHeader(http.StatusNoContent)
	})

	valid, _ := tokens.IssueAccess(known)
	stranger, _ := tokens.IssueAccess(auth.Identity{ID: uuid.New()})

	tests := []struct {
		name    string
		token   string
		want    int
		message string
	}{
		{"no token", "", http.StatusUnauthorized, auth.ErrUnauthenticated.Error()},
		{"garbage", "not-a-jwt", http.StatusUnauthorized, auth.ErrInvalidToken.Error()},
		{"deleted user", stranger, http.StatusUnauthorized, auth.ErrUnknownUser.Error()},
		{"local token", valid, http.StatusNoContent, ""},
		{"second verifier", "sso:ada@example.com", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = auth.Identity{}
			r := httptest.NewRequest("GET", "/users/current-user", nil)
			if tt.token != "" {
				r.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			protected(rec, r)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusNoContent {
				if seen.ID != known.ID {
					t.Errorf("identity = %v, want %v", seen.ID, known.ID)
				}
				return
			}

			var env struct {
				Message string `json:"message"`
			}
			json.NewDecoder(rec.Body).Decode(&env)
			if env.Message != tt.message {
				t.Errorf("message = %q, want %q", env.Message, tt.message)
			}
		})
	}
}

func TestCallerWithoutIdentity(t *testing.T) {
	rec := httptest.NewRecorder()
	if _, ok := auth.Caller(rec, httptest.NewRequest("GET", "/", nil), discard); ok {
		t.Fatal("Caller reported an identity")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCookies(t *testing.T) {
	cfg := testConfig(t)
	cfg.CookieSecure = true
	cookies := auth.NewCookies(cfg)

	rec := httptest.NewRecorder()
	cookies.Set(rec, "a-token", "r-token")

	set := rec.Result().Cookies()
	if len(set) != 2 {
		t.Fatalf("cookies = %d, want 2", len(set))
	}
	for _, c := range set {
		if !c.HttpOnly || !c.Secure || c.Path != "/" {
			t.Errorf("cookie %s flags = httpOnly:%v secure:%v path:%q", c.Name, c.HttpOnly, c.Secure, c.Path)
		}
	}
	if set[0].Name != auth.AccessCookie || set[0].MaxAge != int((24*time.Hour).Seconds()) {
		t.Errorf("access cookie = %+v", set[0])
	}

	rec = httptest.NewRecorder()
	cookies.Clear(rec)
	for _, c := range rec.Result().Cookies() {
		if c.Value != "" || c.MaxAge >= 0 {
			t.Errorf("cleared cookie %s = %q maxAge %d", c.Name, c.Value, c.MaxAge)
		}
	}
}
