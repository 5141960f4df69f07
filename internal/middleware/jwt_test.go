package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeValidator struct {
	subject string
	err     error
}

func (f *fakeValidator) ValidateToken(token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.subject, nil
}

func newProtectedRouter(v TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWT(v), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c)})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMissingHeader(t *testing.T) {
	r := newProtectedRouter(&fakeValidator{subject: "alice"})
	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestJWTMalformedHeader(t *testing.T) {
	r := newProtectedRouter(&fakeValidator{subject: "alice"})
	w := doRequest(r, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTInvalidToken(t *testing.T) {
	r := newProtectedRouter(&fakeValidator{err: errors.New("bad token")})
	w := doRequest(r, "Bearer abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTValidToken(t *testing.T) {
	r := newProtectedRouter(&fakeValidator{subject: "alice"})
	w := doRequest(r, "Bearer abc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

// Every rejection path returns the same body regardless of cause.
func TestJWTUniformRejectionBody(t *testing.T) {
	missing := doRequest(newProtectedRouter(&fakeValidator{subject: "alice"}), "")
	malformed := doRequest(newProtectedRouter(&fakeValidator{subject: "alice"}), "Basic abc")
	invalid := doRequest(newProtectedRouter(&fakeValidator{err: errors.New("expired")}), "Bearer abc")

	assert.Equal(t, missing.Body.String(), malformed.Body.String())
	assert.Equal(t, missing.Body.String(), invalid.Body.String())
}
