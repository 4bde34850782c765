package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/bicosteve/job-board-api/internal/domain"
	"github.com/bicosteve/job-board-api/internal/security"
)

func protectedRouter(codec *security.TokenCodec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(codec), func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	r.GET("/admin", AuthMiddleware(codec), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware_AllowsValidToken(t *testing.T) {
	codec := security.NewTokenCodec("secret", time.Hour)
	token, err := codec.IssueSessionToken(1, "user@example.com", domain.RoleApplicant)
	if err != nil {
		t.Fatalf("issue session token: %v", err)
	}
	r := protectedRouter(codec)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	r := protectedRouter(security.NewTokenCodec("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectsWrongSecret(t *testing.T) {
	other := security.NewTokenCodec("other-secret", time.Hour)
	token, err := other.IssueSessionToken(1, "user@example.com", domain.RoleApplicant)
	if err != nil {
		t.Fatalf("issue session token: %v", err)
	}
	r := protectedRouter(security.NewTokenCodec("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_DistinguishesExpiredFromMalformed(t *testing.T) {
	now := time.Now().UTC()
	claims := security.SessionClaims{
		AccountID: 1,
		Email:     "user@example.com",
		Role:      domain.RoleApplicant,
		TokenType: "session",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "job-board-api",
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	r := protectedRouter(security.NewTokenCodec("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "token has expired" {
		t.Fatalf("expected expiry message, got %q", body.Error)
	}
}

func TestRequireAdmin(t *testing.T) {
	codec := security.NewTokenCodec("secret", time.Hour)
	r := protectedRouter(codec)

	applicant, err := codec.IssueSessionToken(1, "user@example.com", domain.RoleApplicant)
	if err != nil {
		t.Fatalf("issue applicant token: %v", err)
	}
	admin, err := codec.IssueSessionToken(2, "admin@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+applicant)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for applicant, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}
