package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.HS256) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	verifier, err := auth.NewHS256("test-secret", "dev")
	if err != nil {
		t.Fatalf("NewHS256: %v", err)
	}
	router := gin.New()
	router.Use(Auth(verifier, "/api/v1/health"))
	router.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/v1/resumes", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c), "guest": IsGuest(c)})
	})
	router.OPTIONS("/api/v1/resumes", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return router, verifier
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	router, _ := newAuthRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/resumes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthPublicPathSkipsIdentity(t *testing.T) {
	router, _ := newAuthRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAuthIdentities(t *testing.T) {
	router, verifier := newAuthRouter(t)
	token, err := verifier.Sign(auth.Claims{Sub: "user-42"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tests := []struct {
		name   string
		header map[string]string
		status int
		body   string
	}{
		{name: "bearer", header: map[string]string{"Authorization": "Bearer " + token}, status: http.StatusOK, body: `{"guest":false,"userId":"user-42"}`},
		{name: "guest", header: map[string]string{"X-Guest-Id": "g1"}, status: http.StatusOK, body: `{"guest":true,"userId":"guest:g1"}`},
		{name: "bad token", header: map[string]string{"Authorization": "Bearer nope"}, status: http.StatusUnauthorized},
		{name: "wrong scheme", header: map[string]string{"Authorization": "Basic abc"}, status: http.StatusUnauthorized},
		{name: "none", header: nil, status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
			if tt.body != "" && resp.Body.String() != tt.body {
				t.Fatalf("unexpected body %s", resp.Body.String())
			}
		})
	}
}
