package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"home-horizon/internal/auth"
)

// withIdentity plants a verified identity the way RequireAuth does
func withIdentity(uid, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("identity", auth.Identity{UID: uid, Email: email})
	}
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	return doJSON(router, http.MethodPost, path, body)
}

func patchJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	return doJSON(router, http.MethodPatch, path, body)
}
