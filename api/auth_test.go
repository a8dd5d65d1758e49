package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/garnizeh/skillsnap/pkg/repository/mock"
)

func newAuthEnv(t *testing.T) *AuthHandler {
	t.Helper()

	m := mock.NewMocks()
	return NewAuthHandler(m.Accounts, testSecret, time.Hour)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode request body: %v", err)
	}

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		status  int
		message string
	}{
		{
			name:    "malformed json",
			body:    "{oops",
			status:  http.StatusBadRequest,
			message: "Invalid request.",
		},
		{
			name:    "missing email",
			body:    map[string]string{"password": "longenough"},
			status:  http.StatusBadRequest,
			message: "Email is required.",
		},
		{
			name:    "malformed email",
			body:    map[string]string{"email": "not-an-email", "password": "longenough"},
			status:  http.StatusBadRequest,
			message: "A valid email is required.",
		},
		{
			name:    "short password",
			body:    map[string]string{"email": "alex@example.com", "password": "short"},
			status:  http.StatusBadRequest,
			message: "Password must be at least 8 characters.",
		},
		{
			name: "password mismatch",
			body: map[string]string{
				"email":           "alex@example.com",
				"password":        "longenough",
				"confirmPassword": "different",
			},
			status:  http.StatusBadRequest,
			message: "Passwords do not match.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAuthEnv(t)
			rec := postJSON(t, h.Register, "/auth/register", tt.body)
			assertStatus(t, rec, tt.status)
			assertMessage(t, rec, tt.message)
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	h := newAuthEnv(t)

	rec := postJSON(t, h.Register, "/auth/register", map[string]string{
		"email":    "alex@example.com",
		"password": "longenough",
	})
	assertStatus(t, rec, http.StatusOK)

	got := decodeBody[authResponse](t, rec)
	if got.Message != "User registered successfully" {
		t.Fatalf("message = %q", got.Message)
	}
	if got.UserID == 0 || got.Email != "alex@example.com" {
		t.Fatalf("got %+v, want a registered account", got)
	}

	// The issued token must verify against the signing secret and carry
	// the account id as subject.
	token, err := jwt.Parse(got.Token, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if uint(claims["sub"].(float64)) != got.UserID {
		t.Fatalf("sub = %v, want %d", claims["sub"], got.UserID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newAuthEnv(t)

	body := map[string]string{"email": "alex@example.com", "password": "longenough"}
	assertStatus(t, postJSON(t, h.Register, "/auth/register", body), http.StatusOK)

	rec := postJSON(t, h.Register, "/auth/register", body)
	assertStatus(t, rec, http.StatusBadRequest)
	assertMessage(t, rec, "Email is already registered.")
}

func TestLogin(t *testing.T) {
	h := newAuthEnv(t)
	assertStatus(t, postJSON(t, h.Register, "/auth/register", map[string]string{
		"email":    "alex@example.com",
		"password": "longenough",
	}), http.StatusOK)

	tests := []struct {
		name    string
		body    map[string]string
		status  int
		message string
	}{
		{
			name:    "unknown email",
			body:    map[string]string{"email": "nobody@example.com", "password": "longenough"},
			status:  http.StatusUnauthorized,
			message: "Invalid email or password.",
		},
		{
			name:    "wrong password",
			body:    map[string]string{"email": "alex@example.com", "password": "wrongpassword"},
			status:  http.StatusUnauthorized,
			message: "Invalid email or password.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Login, "/auth/login", tt.body)
			assertStatus(t, rec, tt.status)
			assertMessage(t, rec, tt.message)
		})
	}

	rec := postJSON(t, h.Login, "/auth/login", map[string]string{
		"email":    "alex@example.com",
		"password": "longenough",
	})
	assertStatus(t, rec, http.StatusOK)

	got := decodeBody[authResponse](t, rec)
	if got.Message != "Login successful" || got.Token == "" {
		t.Fatalf("got %+v, want a successful login with a token", got)
	}
}

func TestMe(t *testing.T) {
	h := newAuthEnv(t)

	rec := postJSON(t, h.Register, "/auth/register", map[string]string{
		"email":    "alex@example.com",
		"password": "longenough",
	})
	assertStatus(t, rec, http.StatusOK)
	registered := decodeBody[authResponse](t, rec)

	guarded := RequireAuth(testSecret)(h.Me)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+registered.Token)
	out := httptest.NewRecorder()
	guarded(out, req)

	assertStatus(t, out, http.StatusOK)
	got := decodeBody[map[string]any](t, out)
	if got["email"] != "alex@example.com" || got["role"] != "User" {
		t.Fatalf("got %v, want the registered identity", got)
	}

	// Without a token the guard rejects before the handler runs.
	req = httptest.NewRequest("GET", "/auth/me", nil)
	out = httptest.NewRecorder()
	guarded(out, req)
	assertStatus(t, out, http.StatusUnauthorized)
}

func TestLogout(t *testing.T) {
	h := newAuthEnv(t)

	rec := postJSON(t, h.Logout, "/auth/logout", nil)
	assertStatus(t, rec, http.StatusOK)
	assertMessage(t, rec, "Logout successful")
}
