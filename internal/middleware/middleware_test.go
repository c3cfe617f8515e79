package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-ems/internal/domain"
	"go-ems/internal/middleware"
	"go-ems/internal/shared/response"
	"go-ems/internal/shared/token"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestAuthMiddleware(t *testing.T) {
	tokens := token.NewManager("middleware-test-secret", time.Minute, time.Hour)
	user := domain.SessionUser{ID: uuid.New(), Email: "a@x.com", Role: domain.RoleEmployee}

	r := setupRouter()
	r.GET("/me", middleware.AuthMiddleware(tokens), func(c *gin.Context) {
		raw, _ := c.Get(domain.SessionKey)
		session := raw.(domain.Session)
		c.JSON(http.StatusOK, gin.H{"id": session.User.ID.String(), "user_id": c.GetString("user_id")})
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token not found")
	})

	t.Run("bearer token", func(t *testing.T) {
		raw, _, err := tokens.Issue(user, token.KindAccess)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.ID.String())
	})

	t.Run("cookie token", func(t *testing.T) {
		raw, _, _ := tokens.Issue(user, token.KindAccess)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: raw})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		raw, _, _ := tokens.Issue(user, token.KindRefresh)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})
}

type allowList map[string]bool

func (a allowList) Allowed(role domain.Role, feature string) bool {
	return a[string(role)+":"+feature]
}

func withSession(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(domain.SessionKey, domain.Session{User: domain.SessionUser{ID: uuid.New(), Role: role}})
		c.Next()
	}
}

func TestRequireFeature(t *testing.T) {
	checker := allowList{"ADMIN:departments.manage": true}

	build := func(role *domain.Role) *gin.Engine {
		r := setupRouter()
		handlers := []gin.HandlerFunc{}
		if role != nil {
			handlers = append(handlers, withSession(*role))
		}
		handlers = append(handlers, middleware.RequireFeature(checker, "departments.manage"), func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		r.POST("/departments", handlers...)
		return r
	}

	admin, employee := domain.RoleAdmin, domain.RoleEmployee

	w := httptest.NewRecorder()
	build(nil).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/departments", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	build(&employee).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/departments", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "departments.manage")

	w = httptest.NewRecorder()
	build(&admin).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/departments", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitByIP(t *testing.T) {
	r := setupRouter()
	r.GET("/login", middleware.RateLimitByIP(0.001, 1), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestRequestIDPropagates(t *testing.T) {
	r := setupRouter()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "rid-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "rid-42", w.Body.String())
	assert.Equal(t, "rid-42", w.Header().Get("X-Request-ID"))
}

func TestRequestIDRejectsOddHeaders(t *testing.T) {
	r := setupRouter()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	for _, raw := range []string{"has space", strings.Repeat("x", 65)} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEqual(t, raw, w.Body.String())
		assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
	}
}

func TestIdempotency(t *testing.T) {
	userID := "user-1"
	withUser := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
	cacheKey := "idemp:/tasks:" + userID + ":key-1"

	t.Run("replays stored response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).SetVal(`{"status":201,"body":{"success":true,"data":{"id":"t1"}}}`)

		r := setupRouter()
		r.POST("/tasks", withUser, middleware.Idempotency(rdb), func(c *gin.Context) {
			t.Fatal("handler must not run on replay")
		})

		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{}`))
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.Contains(t, w.Body.String(), `"t1"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first request stores response and releases lock", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		body := `{"success":true,"data":{"id":"t2"}}`
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, `{"status":201,"body":`+body+`}`, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		r := setupRouter()
		r.POST("/tasks", withUser, middleware.Idempotency(rdb), func(c *gin.Context) {
			response.Success(c, http.StatusCreated, gin.H{"id": "t2"}, nil)
		})

		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{}`))
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		r := setupRouter()
		r.POST("/tasks", withUser, middleware.Idempotency(rdb), func(c *gin.Context) {
			t.Fatal("handler must not run while locked")
		})

		req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("requests without a key pass through", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		r := setupRouter()
		r.POST("/tasks", middleware.Idempotency(rdb), func(c *gin.Context) { c.String(http.StatusOK, "ok") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tasks", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
