package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SergeyBogomolovv/order-service/internal/config"
	"github.com/SergeyBogomolovv/order-service/internal/identity"
	"github.com/SergeyBogomolovv/order-service/internal/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuth(t *testing.T) {
	adminClaims := jwt.MapClaims{
		"sub":                "7f1c-uuid",
		"preferred_username": "root",
		"realm_access":       map[string]any{"roles": []string{"USER", "ADMIN"}},
	}

	testCases := []struct {
		name       string
		cfg        config.Auth
		header     string
		wantStatus int
		wantID     identity.Identity
	}{
		{
			name:       "verified admin token",
			cfg:        config.Auth{Required: true, JWTSecret: "s3cret"},
			header:     "Bearer " + signToken(t, "s3cret", adminClaims),
			wantStatus: http.StatusOK,
			wantID:     identity.Identity{SubjectID: "root", IsAdmin: true},
		},
		{
			name:       "wrong signature",
			cfg:        config.Auth{Required: true, JWTSecret: "s3cret"},
			header:     "Bearer " + signToken(t, "other", adminClaims),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unverified token falls back to subject",
			cfg:        config.Auth{Required: true},
			header:     "Bearer " + signToken(t, "any", jwt.MapClaims{"sub": "bob"}),
			wantStatus: http.StatusOK,
			wantID:     identity.Identity{SubjectID: "bob"},
		},
		{
			name:       "missing token required",
			cfg:        config.Auth{Required: true},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing token optional",
			cfg:        config.Auth{Required: false},
			wantStatus: http.StatusOK,
			wantID:     identity.Identity{SubjectID: identity.Unknown},
		},
		{
			name:       "malformed header",
			cfg:        config.Auth{Required: false},
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			cfg:        config.Auth{Required: true},
			header:     "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got identity.Identity
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = identity.Resolve(identity.FromContext(r.Context()))
				w.WriteHeader(http.StatusOK)
			})

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			h := middleware.Auth(logger, tc.cfg)(next)

			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, tc.wantID, got)
			}
		})
	}
}

func TestAuth_WarnsWithoutSecret(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      config.Auth
		wantWarn bool
	}{
		{name: "unverified mode", cfg: config.Auth{Required: true}, wantWarn: true},
		{name: "verified mode", cfg: config.Auth{Required: true, JWTSecret: "s3cret"}, wantWarn: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			middleware.Auth(slog.New(slog.NewTextHandler(&buf, nil)), tc.cfg)

			if tc.wantWarn {
				assert.Contains(t, buf.String(), "level=WARN")
				assert.Contains(t, buf.String(), "not verified")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
