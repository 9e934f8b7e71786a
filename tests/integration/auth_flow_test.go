package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuthFlow(t *testing.T) {
	app := setupApp(t)

	access, refresh, userID := app.registerUser(t, "asha@example.com", "password123")
	if userID == 0 {
		t.Fatal("expected a user ID from registration")
	}

	t.Run("protected route requires a token", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/profile", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}

		rec = app.request("GET", "/api/v1/profile", "", access)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("login returns a fresh pair", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/login", `{"email":"asha@example.com","password":"password123"}`, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
		}
		d := data(t, parseJSON(t, rec))
		if d["access_token"] == "" || d["refresh_token"] == "" {
			t.Error("expected a token pair")
		}
		// The login rotated the refresh token issued at registration.
		refresh = d["refresh_token"].(string)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/login", `{"email":"asha@example.com","password":"nope-nope"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("refresh rotates and invalidates the old token", func(t *testing.T) {
		body := fmt.Sprintf(`{"refresh_token":%q}`, refresh)
		rec := app.request("POST", "/api/v1/auth/refresh", body, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
		}
		d := data(t, parseJSON(t, rec))
		fresh := d["refresh_token"].(string)
		if fresh == refresh {
			t.Error("expected a rotated refresh token")
		}

		// Replaying the consumed token fails.
		rec = app.request("POST", "/api/v1/auth/refresh", body, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 on replay, got %d", rec.Code)
		}

		// The fresh one works.
		rec = app.request("POST", "/api/v1/auth/refresh", fmt.Sprintf(`{"refresh_token":%q}`, fresh), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for the rotated token, got %d", rec.Code)
		}
	})

	t.Run("duplicate registration rejected", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/register",
			`{"email":"asha@example.com","password":"password123"}`, "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/refresh", fmt.Sprintf(`{"refresh_token":%q}`, access), "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
