package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signHS256(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestValidateAcceptsSignedToken(t *testing.T) {
	t.Parallel()

	validator := NewJWTValidator(testSecret, "")
	token := signHS256(t, Claims{
		SessionID: "sess-1",
		Roles:     []string{"consumer"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := validator.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Subject != "user-1" || claims.SessionID != "sess-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateSessionIDFallsBackToSubject(t *testing.T) {
	t.Parallel()

	validator := NewJWTValidator(testSecret, "")
	token := signHS256(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := validator.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.SessionID != "user-1" {
		t.Fatalf("unexpected session id: %q", claims.SessionID)
	}
}

func TestValidateRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	validator := NewJWTValidator(testSecret, "")
	if _, err := validator.Validate("  "); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	validator := NewJWTValidator("other-secret", "")
	token := signHS256(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := validator.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	validator := NewJWTValidator(testSecret, "")
	token := signHS256(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	if _, err := validator.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsMissingSubject(t *testing.T) {
	t.Parallel()

	validator := NewJWTValidator(testSecret, "")
	token := signHS256(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := validator.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestExtractBearerTokenFromHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"  Bearer   abc123  ", "abc123"},
		{"Basic abc123", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ExtractBearerTokenFromHeader(tc.header); got != tc.want {
			t.Fatalf("header %q: got %q want %q", tc.header, got, tc.want)
		}
	}
}

func TestExtractTokenPrefersHeaderOverQuery(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/ws/events?token=from-query", nil)
	r.Header.Set("Authorization", "Bearer from-header")
	if got := ExtractToken(r, "token"); got != "from-header" {
		t.Fatalf("got %q", got)
	}

	r = httptest.NewRequest("GET", "/ws/events?token=from-query", nil)
	if got := ExtractToken(r, ""); got != "from-query" {
		t.Fatalf("got %q", got)
	}

	if got := ExtractToken(nil, "token"); got != "" {
		t.Fatalf("nil request should yield empty token, got %q", got)
	}
}
