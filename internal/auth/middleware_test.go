package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticVerifier struct {
	id  Identity
	err error
}

func (v *staticVerifier) Verify(string) (*Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	id := v.id
	return &id, nil
}

type staticRoles struct {
	roles map[string]string
	err   error
}

func (r *staticRoles) RoleByUID(_ context.Context, uid string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.roles[uid], nil
}

func performRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(v Verifier) *gin.Engine {
		r := gin.New()
		r.GET("/protected", RequireAuth(v), func(c *gin.Context) {
			id, ok := IdentityFrom(c)
			require.True(t, ok)
			c.JSON(http.StatusOK, id)
		})
		return r
	}

	t.Run("valid token passes identity through", func(t *testing.T) {
		r := newRouter(&staticVerifier{id: Identity{UID: "u1", Email: "u1@example.com"}})
		w := performRequest(r, "Bearer sometoken")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "u1@example.com")
	})

	t.Run("missing header", func(t *testing.T) {
		r := newRouter(&staticVerifier{})
		w := performRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		r := newRouter(&staticVerifier{})
		for _, header := range []string{"sometoken", "Basic abc", "Bearer", "Bearer null"} {
			w := performRequest(r, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		}
	})

	t.Run("verification failure", func(t *testing.T) {
		r := newRouter(&staticVerifier{err: errors.New("bad signature")})
		w := performRequest(r, "Bearer sometoken")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(roles RoleLookup, allowed ...string) *gin.Engine {
		r := gin.New()
		verifier := &staticVerifier{id: Identity{UID: "u1", Email: "u1@example.com"}}
		r.GET("/protected", RequireAuth(verifier), RequireRole(roles, allowed...), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}

	t.Run("allowed role", func(t *testing.T) {
		r := newRouter(&staticRoles{roles: map[string]string{"u1": "agent"}}, "agent", "super-admin")
		w := performRequest(r, "Bearer sometoken")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		r := newRouter(&staticRoles{roles: map[string]string{"u1": "user"}}, "agent")
		w := performRequest(r, "Bearer sometoken")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		r := newRouter(&staticRoles{roles: map[string]string{}}, "agent")
		w := performRequest(r, "Bearer sometoken")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("lookup failure", func(t *testing.T) {
		r := newRouter(&staticRoles{err: errors.New("store down")}, "agent")
		w := performRequest(r, "Bearer sometoken")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
