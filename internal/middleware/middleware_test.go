package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/project-tracker-api/internal/auth"
	"github.com/yukikurage/project-tracker-api/internal/constants"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRequireBody(t *testing.T) {
	router := gin.New()
	router.Use(RequireBody())
	router.POST("/echo", func(c *gin.Context) {
		data, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		c.String(http.StatusOK, string(data))
	})
	router.GET("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, "get")
	})

	tests := []struct {
		name    string
		body    string
		code    int
		message string
	}{
		{name: "empty body", body: "", code: http.StatusBadRequest, message: "Request body is required"},
		{name: "whitespace", body: "  \n", code: http.StatusBadRequest, message: "Request body is required"},
		{name: "empty object", body: "{}", code: http.StatusBadRequest, message: "Request body is required"},
		{name: "null", body: "null", code: http.StatusBadRequest, message: "Request body is required"},
		{name: "array", body: "[1,2]", code: http.StatusBadRequest, message: "Invalid request body"},
		{name: "malformed", body: "{\"id\":", code: http.StatusBadRequest, message: "Invalid request body"},
		{name: "too large", body: `{"id":"` + strings.Repeat("x", maxBodyBytes) + `"}`, code: http.StatusRequestEntityTooLarge, message: "Request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tt.body))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, float64(tt.code), body["code"])
		})
	}

	t.Run("body is restored", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"id":1}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"id":1}`, w.Body.String())
	})

	t.Run("GET passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/echo", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

type stubRevocation struct {
	revoked map[uint64]bool
	err     error
}

func (s *stubRevocation) RevokeUser(_ context.Context, id uint64) error {
	s.revoked[id] = true
	return nil
}

func (s *stubRevocation) IsUserRevoked(_ context.Context, id uint64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[id], nil
}

func newGateRouter(gate *Gate) *gin.Engine {
	router := gin.New()
	handler := func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	}
	router.POST("/auth", gate.RequireAuth(), handler)
	router.POST("/admin", gate.RequireAdmin(), handler)
	return router
}

func doGate(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"id":1}`))
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestGate(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	revocation := &stubRevocation{revoked: map[uint64]bool{}}
	router := newGateRouter(NewGate(tokens, revocation, quietLogger()))

	userToken, err := tokens.Issue(1, "alice", "user")
	require.NoError(t, err)
	adminToken, err := tokens.Issue(2, "root", "admin")
	require.NoError(t, err)
	forged, err := auth.NewTokenService("other", time.Hour).Issue(2, "root", "admin")
	require.NoError(t, err)

	tests := []struct {
		name          string
		path          string
		authorization string
		code          int
		message       string
	}{
		{name: "auth: missing header", path: "/auth", code: http.StatusUnauthorized, message: "Access denied. No token provided."},
		{name: "auth: scheme only", path: "/auth", authorization: "Bearer", code: http.StatusUnauthorized, message: "Access denied. No token provided."},
		{name: "auth: garbage token", path: "/auth", authorization: "Bearer garbage", code: http.StatusForbidden, message: "Invalid token"},
		{name: "auth: forged token", path: "/auth", authorization: "Bearer " + forged, code: http.StatusForbidden, message: "Invalid token"},
		{name: "auth: user token", path: "/auth", authorization: "Bearer " + userToken, code: http.StatusOK},
		{name: "auth: any scheme", path: "/auth", authorization: "Token " + userToken, code: http.StatusOK},
		{name: "admin: missing header", path: "/admin", code: http.StatusUnauthorized, message: "Access denied. No token provided."},
		{name: "admin: forged token", path: "/admin", authorization: "Bearer " + forged, code: http.StatusForbidden, message: "Invalid token"},
		{name: "admin: user token", path: "/admin", authorization: "Bearer " + userToken, code: http.StatusForbidden, message: "Access denied. You are not admin."},
		{name: "admin: admin token", path: "/admin", authorization: "Bearer " + adminToken, code: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGate(router, tt.path, tt.authorization)
			assert.Equal(t, tt.code, w.Code)
			if tt.message != "" {
				body := decodeBody(t, w)
				assert.Equal(t, tt.message, body["message"])
				assert.Equal(t, "Access denied", body["status"])
			}
		})
	}
}

func TestGate_RevokedUser(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	revocation := &stubRevocation{revoked: map[uint64]bool{}}
	router := newGateRouter(NewGate(tokens, revocation, quietLogger()))

	token, err := tokens.Issue(7, "alice", "admin")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doGate(router, "/auth", "Bearer "+token).Code)

	require.NoError(t, revocation.RevokeUser(context.Background(), 7))
	assert.Equal(t, http.StatusForbidden, doGate(router, "/auth", "Bearer "+token).Code)
	assert.Equal(t, http.StatusForbidden, doGate(router, "/admin", "Bearer "+token).Code)
}

func TestGate_RevocationStoreDown(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	log, hook := test.NewNullLogger()
	revocation := &stubRevocation{revoked: map[uint64]bool{}, err: errors.New("redis down")}
	router := newGateRouter(NewGate(tokens, revocation, log))

	token, err := tokens.Issue(7, "alice", "user")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doGate(router, "/auth", "Bearer "+token).Code)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("  Bearer   abc  "))
}

func TestRecovery(t *testing.T) {
	log, hook := test.NewNullLogger()
	router := gin.New()
	router.Use(Recovery(log))
	router.POST("/boom", func(c *gin.Context) {
		panic("kaboom: secret detail")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "/boom", body["path"])
	assert.Equal(t, "Internal server error", body["status"])
	assert.Equal(t, float64(500), body["code"])
	assert.NotContains(t, w.Body.String(), "secret detail")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestHandleErrors(t *testing.T) {
	log, hook := test.NewNullLogger()
	router := gin.New()
	router.Use(HandleErrors(log))
	router.POST("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("dial tcp: connection refused"))
	})
	router.POST("/handled", func(c *gin.Context) {
		_ = c.Error(errors.New("already answered"))
		c.JSON(http.StatusTeapot, gin.H{"message": "teapot"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Equal(t, "/fail", decodeBody(t, w)["path"])
	require.Len(t, hook.AllEntries(), 1)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/handled", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "teapot", decodeBody(t, w)["message"])
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	router := gin.New()
	router.Use(RequestLogger(log))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(constants.HeaderRequestID)
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, generated, entry.Data["request_id"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.Equal(t, "/ping", entry.Data["path"])

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderRequestID, "client-id")
	router.ServeHTTP(w, req)
	assert.Equal(t, "client-id", w.Header().Get(constants.HeaderRequestID))
	assert.Equal(t, "client-id", hook.LastEntry().Data["request_id"])
}

func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	router := gin.New()
	router.Use(metrics.Middleware())
	router.POST("/task/create", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", metrics.Handler())

	for i := 0; i < 2; i++ {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/task/create", nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/nowhere", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("POST", "/task/create", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("POST", "unmatched", "404")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "project_tracker_http_requests_total")
}
