package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/sureshnaloor/projprocurement/internal/repository"
	"github.com/sureshnaloor/projprocurement/internal/service"
	"github.com/sureshnaloor/projprocurement/internal/testutil"
)

func setupAuthTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	rdb := testutil.SetupTestRedis(t)
	router := testutil.SetupRouter()

	cfg := testutil.TestConfig()
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	ah := NewAuthHandler(services.Auth, cfg)

	auth := router.Group("/api/v1/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.RefreshToken)
	auth.POST("/logout", ah.Logout)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/reset-password", ah.ResetPassword)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func registerUser(t *testing.T, env *testutil.TestEnv, email string) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/register", map[string]interface{}{
		"name":     "Suresh",
		"email":    email,
		"password": "secret123",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Register failed: %d %s", w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})
}

func TestAuthRegisterAndLogin(t *testing.T) {
	env := setupAuthTest(t)

	data := registerUser(t, env, "suresh@example.com")
	tokens := data["tokens"].(map[string]interface{})
	if tokens["access_token"] == "" || tokens["refresh_token"] == "" {
		t.Fatal("Expected a token pair on registration")
	}
	user := data["user"].(map[string]interface{})
	if _, exposed := user["password_hash"]; exposed {
		t.Error("password hash must not be serialized")
	}

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    "suresh@example.com",
		"password": "secret123",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Login failed: %d %s", w.Code, w.Body.String())
	}

	wBad := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    "suresh@example.com",
		"password": "wrongpass",
	}, "")
	if wBad.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong password, got %d", wBad.Code)
	}
}

func TestAuthDuplicateEmail(t *testing.T) {
	env := setupAuthTest(t)

	registerUser(t, env, "dup@example.com")
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/register", map[string]interface{}{
		"name":     "Someone Else",
		"email":    "dup@example.com",
		"password": "another123",
	}, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if code := testutil.ParseResponse(w)["code"].(float64); code != 40902 {
		t.Errorf("code = %v, want 40902", code)
	}
}

func TestAuthRefreshRotation(t *testing.T) {
	env := setupAuthTest(t)

	data := registerUser(t, env, "rotate@example.com")
	refresh := data["tokens"].(map[string]interface{})["refresh_token"].(string)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/refresh", map[string]interface{}{
		"refresh_token": refresh,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Refresh failed: %d %s", w.Code, w.Body.String())
	}

	// single use: replaying the consumed token fails
	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/refresh", map[string]interface{}{
		"refresh_token": refresh,
	}, "")
	if w2.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 replaying a rotated token, got %d", w2.Code)
	}
}

func TestAuthLogoutInvalidatesRefresh(t *testing.T) {
	env := setupAuthTest(t)

	data := registerUser(t, env, "logout@example.com")
	refresh := data["tokens"].(map[string]interface{})["refresh_token"].(string)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/logout", map[string]interface{}{
		"refresh_token": refresh,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Logout failed: %d", w.Code)
	}

	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/refresh", map[string]interface{}{
		"refresh_token": refresh,
	}, "")
	if w2.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 after logout, got %d", w2.Code)
	}
}

func TestAuthPasswordResetFlow(t *testing.T) {
	env := setupAuthTest(t)
	registerUser(t, env, "reset@example.com")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/forgot-password", map[string]interface{}{
		"email": "reset@example.com",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Forgot-password failed: %d %s", w.Code, w.Body.String())
	}
	resetURL, _ := testutil.ParseResponse(w)["data"].(map[string]interface{})["reset_url"].(string)
	if resetURL == "" {
		t.Fatal("Expected reset_url outside release mode")
	}
	token := resetURL[strings.Index(resetURL, "token=")+len("token="):]

	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/reset-password", map[string]interface{}{
		"token":    token,
		"password": "newsecret456",
	}, "")
	if w2.Code != http.StatusOK {
		t.Fatalf("Reset failed: %d %s", w2.Code, w2.Body.String())
	}

	// token is single use
	w3 := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/reset-password", map[string]interface{}{
		"token":    token,
		"password": "another789",
	}, "")
	if w3.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 reusing a reset token, got %d", w3.Code)
	}

	wl := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    "reset@example.com",
		"password": "newsecret456",
	}, "")
	if wl.Code != http.StatusOK {
		t.Errorf("Login with new password failed: %d %s", wl.Code, wl.Body.String())
	}

	wOld := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    "reset@example.com",
		"password": "secret123",
	}, "")
	if wOld.Code != http.StatusUnauthorized {
		t.Errorf("Old password should no longer work, got %d", wOld.Code)
	}
}

func TestAuthForgotPasswordUnknownEmail(t *testing.T) {
	env := setupAuthTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/forgot-password", map[string]interface{}{
		"email": "nobody@example.com",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 regardless of account existence, got %d", w.Code)
	}
	if _, present := testutil.ParseResponse(w)["data"].(map[string]interface{})["reset_url"]; present {
		t.Error("No reset_url should be issued for an unknown account")
	}
}
