package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestGetUserID(t *testing.T) {
	t.Run("returns the user id set by the auth middleware", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set("user_id", "auth0|abc123")

		userID, err := GetUserID(c)
		assert.NoError(t, err)
		assert.Equal(t, "auth0|abc123", userID)
	})

	t.Run("fails when no user id is present", func(t *testing.T) {
		c, _ := newTestContext(t)

		_, err := GetUserID(c)
		assert.Error(t, err)

		authErr, ok := err.(*AuthError)
		assert.True(t, ok, "Error should be an AuthError")
		assert.Equal(t, "MISSING_USER_ID", authErr.Code)
	})

	t.Run("fails when user id is not a string", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set("user_id", 42)

		_, err := GetUserID(c)
		assert.Error(t, err)

		authErr, ok := err.(*AuthError)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_USER_ID", authErr.Code)
	})
}

func TestGetAccessToken(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		expectedToken string
		expectedCode  string
	}{
		{"valid bearer token", "Bearer eyJhbGciOi.payload.sig", "eyJhbGciOi.payload.sig", ""},
		{"missing header", "", "", "MISSING_TOKEN"},
		{"not a bearer token", "Basic dXNlcjpwYXNz", "", "INVALID_TOKEN"},
		{"bearer with empty token", "Bearer ", "", "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			token, err := GetAccessToken(c)
			if tt.expectedCode == "" {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
				return
			}

			assert.Error(t, err)
			authErr, ok := err.(*AuthError)
			assert.True(t, ok)
			assert.Equal(t, tt.expectedCode, authErr.Code)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("generates an id when none is supplied", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/", func(c *gin.Context) {
			assert.NotEmpty(t, c.GetString("request_id"))
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("honors an incoming id", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "fixed-id-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "fixed-id-123", w.Header().Get(RequestIDHeader))
	})
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	// burst of 2, then every following request within the window is rejected
	router.Use(RateLimit(60, 2))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])
}
