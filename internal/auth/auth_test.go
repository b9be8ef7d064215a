package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"coverhub/pkg/database"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Repo, TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenMigrated(database.Config{Path: filepath.Join(t.TempDir(), "auth.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewRepo(db)
	tokens := TokenService{Secret: []byte("test-secret"), Issuer: "coverhub-test", Duration: time.Hour}

	router := gin.New()
	NewHandler(repo, tokens).RegisterRoutes(router.Group("/auth"))
	router.GET("/private", AuthMiddleware(tokens, repo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin": MustGetClaims(c).Username})
	})
	return router, repo, tokens
}

func doJSON(router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginAndLogout(t *testing.T) {
	router, repo, _ := newTestRouter(t)
	if _, err := repo.CreateAdmin(context.Background(), "editor", "correct-horse"); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	w := doJSON(router, http.MethodPost, "/auth/login", "", map[string]string{"username": "editor", "password": "wrong-password"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for bad password, got %d", w.Code)
	}

	w = doJSON(router, http.MethodPost, "/auth/login", "", map[string]string{"username": "editor", "password": "correct-horse"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("Expected token, got %s", w.Body.String())
	}

	w = doJSON(router, http.MethodGet, "/private", resp.Token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected token to be accepted, got %d", w.Code)
	}

	w = doJSON(router, http.MethodPost, "/auth/logout", resp.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected logout to succeed, got %d", w.Code)
	}

	w = doJSON(router, http.MethodGet, "/private", resp.Token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected revoked token to be rejected, got %d", w.Code)
	}
}

func TestMiddlewareRejectsMissingAndForeignTokens(t *testing.T) {
	router, repo, _ := newTestRouter(t)
	a, err := repo.CreateAdmin(context.Background(), "editor", "correct-horse")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}

	if w := doJSON(router, http.MethodGet, "/private", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}

	other := TokenService{Secret: []byte("other-secret"), Issuer: "coverhub-test", Duration: time.Hour}
	foreign, _, err := other.Sign(a)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if w := doJSON(router, http.MethodGet, "/private", foreign, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for foreign token, got %d", w.Code)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	ts := TokenService{Secret: []byte("s"), Issuer: "coverhub", Duration: time.Minute}
	token, exp, err := ts.Sign(&Admin{ID: "a1", Username: "editor", TokenVersion: 3})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Error("Expected expiry in the future")
	}

	claims, err := ts.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.AdminID != "a1" || claims.Username != "editor" || claims.TokenVersion != 3 {
		t.Errorf("Unexpected claims %+v", claims)
	}

	expired := TokenService{Secret: []byte("s"), Issuer: "coverhub", Duration: -time.Minute}
	old, _, _ := expired.Sign(&Admin{ID: "a1"})
	if _, err := ts.Parse(old); err == nil {
		t.Error("Expected expired token to fail")
	}
}

func TestCreateAdminValidation(t *testing.T) {
	_, repo, _ := newTestRouter(t)
	ctx := context.Background()

	if _, err := repo.CreateAdmin(ctx, "ab", "long-enough"); err == nil {
		t.Error("Expected short username to fail")
	}
	if _, err := repo.CreateAdmin(ctx, "editor", "short"); err == nil {
		t.Error("Expected short password to fail")
	}
	if _, err := repo.CreateAdmin(ctx, "editor", "long-enough"); err != nil {
		t.Fatalf("Expected admin to be created, got %v", err)
	}
	if _, err := repo.CreateAdmin(ctx, "editor", "long-enough"); !errors.Is(err, ErrAdminExists) {
		t.Errorf("Expected ErrAdminExists, got %v", err)
	}
}
