package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"kakeibo/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/test", func(c *gin.Context) {
		username := c.GetString("username")
		c.JSON(http.StatusOK, gin.H{"status": "ok", "username": username})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func signToken(t *testing.T, key []byte, expiresAt time.Time) string {
	t.Helper()
	claims := &JWTClaims{
		Username: "operator",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    "kakeibo-api",
			Subject:   "operator",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")
	if _, err := config.Load(); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	key := []byte("middleware-test-secret")

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid_token",
			authHeader: "Bearer " + signToken(t, key, time.Now().Add(time.Hour)),
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing_header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed_header",
			authHeader: "Token abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired_token",
			authHeader: "Bearer " + signToken(t, key, time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong_signing_key",
			authHeader: "Bearer " + signToken(t, []byte("some-other-secret"), time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage_token",
			authHeader: "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter()
			rec := doRequest(router, tt.authHeader)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				body := parseBody(t, rec)
				if username, _ := body["username"].(string); username != "operator" {
					t.Errorf("username = %q, want %q", username, "operator")
				}
			}
		})
	}
}

func TestGenerateAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")
	if _, err := config.Load(); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	tokenString, err := GenerateAccessToken("operator")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("middleware-test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("generated token failed to parse: %v", err)
	}
	if claims.Username != "operator" {
		t.Errorf("username claim = %q, want %q", claims.Username, "operator")
	}
	if claims.Issuer != "kakeibo-api" {
		t.Errorf("issuer = %q, want %q", claims.Issuer, "kakeibo-api")
	}
}
