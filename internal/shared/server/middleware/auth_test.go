package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/shared/auth"
)

func resolveAlways(ctx context.Context, userID string) (AuthedUser, bool, error) {
	return AuthedUser{ID: userID, Username: "alice", Email: "alice@example.com"}, true, nil
}

func TestAuthRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(resolveAlways))
	router.GET("/api/documents", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsUnknownUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(func(ctx context.Context, userID string) (AuthedUser, bool, error) {
		return AuthedUser{}, false, nil
	}))
	router.GET("/api/documents", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := auth.SignToken("ghost", "ghost", "ghost@example.com")
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthAttachesIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(resolveAlways))
	router.GET("/api/documents", func(c *gin.Context) {
		if UserIDFromContext(c) != "user-1" {
			t.Errorf("expected user-1 in context, got %q", UserIDFromContext(c))
		}
		if UsernameFromContext(c) != "alice" {
			t.Errorf("expected username alice, got %q", UsernameFromContext(c))
		}
		c.Status(http.StatusOK)
	})

	token, err := auth.SignToken("user-1", "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(resolveAlways))
	handlerRan := false
	router.OPTIONS("/api/documents", func(c *gin.Context) {
		handlerRan = true
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/documents", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if handlerRan {
		t.Fatal("preflight must short-circuit before route handlers")
	}
}
