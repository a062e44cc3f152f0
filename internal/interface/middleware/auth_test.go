package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pawkeeper/notices-api/internal/domain/entity"
)

type stubValidator struct {
	user *entity.User
	err  error
	seen string
}

func (s *stubValidator) ValidateToken(ctx context.Context, token string) (*entity.User, error) {
	s.seen = token
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func newAuthRouter(v TokenValidator) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	reached := false
	r := gin.New()
	r.GET("/protected", Auth(v), func(c *gin.Context) {
		reached = true
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString(CtxUserIDKey)})
	})
	return r, &reached
}

func TestAuthMissingHeader(t *testing.T) {
	r, reached := newAuthRouter(&stubValidator{err: errors.New("should not be called")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if *reached {
		t.Fatal("handler must not run without a bearer token")
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	v := &stubValidator{err: errors.New("should not be called")}
	r, reached := newAuthRouter(v)

	for _, h := range []string{"tok123", "Basic dXNlcjpwdw==", "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", h)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", h, w.Code)
		}
	}
	if *reached {
		t.Fatal("handler must not run for malformed headers")
	}
	if v.seen != "" {
		t.Fatalf("validator called with %q for malformed header", v.seen)
	}
}

func TestAuthRejectedToken(t *testing.T) {
	r, reached := newAuthRouter(&stubValidator{err: errors.New("unauthenticated")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if *reached {
		t.Fatal("handler must not run for a rejected token")
	}
}

func TestAuthValidToken(t *testing.T) {
	tok := "valid-token"
	u := &entity.User{ID: "user-1", Email: "alice@example.com", SessionToken: &tok}
	v := &stubValidator{user: u}
	r, reached := newAuthRouter(v)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !*reached {
		t.Fatal("handler should have run")
	}
	if v.seen != "valid-token" {
		t.Fatalf("validator saw %q, want %q", v.seen, "valid-token")
	}
}
