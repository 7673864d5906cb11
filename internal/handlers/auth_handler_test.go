package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"kakeibo/internal/config"
	"kakeibo/internal/validator"
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// mockNotifier records sent messages. Disabled by default.
type mockNotifier struct {
	enabled bool
	sent    []string
	sendErr error
}

func (m *mockNotifier) Send(message string) error {
	m.sent = append(m.sent, message)
	return m.sendErr
}

func (m *mockNotifier) Enabled() bool {
	return m.enabled
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/login", handler.Login)
	return r
}

// configureOperator sets the operator credentials for the test process
// and reloads the cached config.
func configureOperator(t *testing.T, username, password string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	t.Setenv("AUTH_USERNAME", username)
	t.Setenv("AUTH_PASSWORD_HASH", string(hash))
	if _, err := config.Load(); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
}

// --- tests ---

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with access token", func(t *testing.T) {
		configureOperator(t, "operator", "correct horse battery staple")
		handler := NewAuthHandler()
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login",
			`{"username":"operator","password":"correct horse battery staple"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["access_token"] == nil || result["access_token"] == "" {
			t.Error("expected non-empty access_token")
		}
	})

	t.Run("returns 401 on wrong password", func(t *testing.T) {
		configureOperator(t, "operator", "right")
		handler := NewAuthHandler()
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"username":"operator","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 401 on unknown username", func(t *testing.T) {
		configureOperator(t, "operator", "secret")
		handler := NewAuthHandler()
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"username":"intruder","password":"secret"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 401 when no password hash configured", func(t *testing.T) {
		t.Setenv("AUTH_PASSWORD_HASH", "")
		if _, err := config.Load(); err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}
		handler := NewAuthHandler()
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"username":"admin","password":"anything"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		handler := NewAuthHandler()
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}
