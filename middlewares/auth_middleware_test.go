package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codewith-lab/BlogHive/models"
	"github.com/codewith-lab/BlogHive/utils"
	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func identityEcho(c *gin.Context) {
	id := IdentityFrom(c)
	c.JSON(http.StatusOK, gin.H{"id": id.ID, "email": id.Email})
}

func newTestEngine(protected bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("")
	grp.Use(AuthMiddleware(testSecret))
	if protected {
		grp.Use(RequireAuth())
	}
	grp.GET("/whoami", identityEcho)
	return r
}

func TestAuthMiddleware_NoTokenIsAnonymous(t *testing.T) {
	r := newTestEngine(false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"email":"","id":""}` {
		t.Errorf("body = %s, want empty identity", body)
	}
}

func TestAuthMiddleware_InvalidTokenAborts(t *testing.T) {
	r := newTestEngine(false)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a present-but-invalid token", w.Code)
	}
}

func TestAuthMiddleware_ValidTokenResolvesIdentity(t *testing.T) {
	r := newTestEngine(false)

	token, err := utils.GenerateJWT("u1", "a@x.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"email":"a@x.com","id":"u1"}` {
		t.Errorf("body = %s", body)
	}
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	r := newTestEngine(true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestIdentityFrom_ZeroWhenUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if id := IdentityFrom(c); id != (models.Identity{}) {
		t.Errorf("IdentityFrom = %+v, want zero identity", id)
	}
}
