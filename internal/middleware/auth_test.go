package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pvc-shop/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func validClaims(subject string, role domain.UserType) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

// echoIdentity writes the role found in the context so tests can observe it
func echoIdentity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := GetUserRole(r.Context())
		userID, _ := GetUserID(r.Context())
		w.Header().Set("X-Test-Role", string(role))
		w.Header().Set("X-Test-User", userID)
		w.WriteHeader(http.StatusOK)
	})
}

// Feature: catalog-api, Property: protected endpoints reject missing tokens
func TestProperty_ProtectedEndpointsRejectMissingTokens(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests without authorization header are rejected", prop.ForAll(
		func(pathSuffix string, method string) bool {
			handler := AuthMiddleware(testSecret, zap.NewNop())(echoIdentity())

			req := httptest.NewRequest(method, "/api/v1/"+pathSuffix, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
		gen.OneConstOf(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAuthMiddleware(t *testing.T) {
	expired := validClaims("u-1", domain.UserTypeAdministrator)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	noExpiry := validClaims("u-1", domain.UserTypeAdministrator)
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name       string
		header     func(t *testing.T) string
		wantStatus int
		wantRole   string
	}{
		{"valid administrator token", func(t *testing.T) string {
			return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, validClaims("u-1", domain.UserTypeAdministrator))
		}, http.StatusOK, "administrator"},
		{"basic scheme", func(t *testing.T) string { return "Basic dXNlcjpwYXNz" }, http.StatusUnauthorized, ""},
		{"expired token", func(t *testing.T) string {
			return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, expired)
		}, http.StatusUnauthorized, ""},
		{"token without expiry", func(t *testing.T) string {
			return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, noExpiry)
		}, http.StatusUnauthorized, ""},
		{"wrong secret", func(t *testing.T) string {
			return "Bearer " + signToken(t, "other-secret", jwt.SigningMethodHS256, validClaims("u-1", domain.UserTypeCustomer))
		}, http.StatusUnauthorized, ""},
		{"other HMAC algorithm", func(t *testing.T) string {
			return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS512, validClaims("u-1", domain.UserTypeCustomer))
		}, http.StatusUnauthorized, ""},
		{"unknown role", func(t *testing.T) string {
			return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, validClaims("u-1", "admin"))
		}, http.StatusUnauthorized, ""},
		{"missing subject", func(t *testing.T) string {
			return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, validClaims("", domain.UserTypeEmployee))
		}, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(testSecret, zap.NewNop())(echoIdentity())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			req.Header.Set("Authorization", tt.header(t))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantRole, w.Header().Get("X-Test-Role"))
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       domain.UserType
		guard      func(*zap.Logger) func(http.Handler) http.Handler
		wantStatus int
	}{
		{"administrator passes admin guard", domain.UserTypeAdministrator, RequireAdmin, http.StatusOK},
		{"employee blocked by admin guard", domain.UserTypeEmployee, RequireAdmin, http.StatusForbidden},
		{"employee passes staff guard", domain.UserTypeEmployee, RequireStaff, http.StatusOK},
		{"customer blocked by staff guard", domain.UserTypeCustomer, RequireStaff, http.StatusForbidden},
		{"distributor blocked by staff guard", domain.UserTypeDistributor, RequireStaff, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := zap.NewNop()
			handler := AuthMiddleware(testSecret, logger)(tt.guard(logger)(echoIdentity()))

			req := httptest.NewRequest(http.MethodPut, "/api/v1/products/1", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.SigningMethodHS256, validClaims("u-9", tt.role)))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("no identity in context", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireAdmin(zap.NewNop())(echoIdentity()).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/brands/1", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
