package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pos/backend/internal/interfaces/http/dto"
)

func TestValidateTimeOfDay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	type windowBody struct {
		Start string `json:"start" binding:"omitempty,timeofday"`
	}

	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var body windowBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"valid morning", "09:30", http.StatusOK},
		{"valid midnight", "00:00", http.StatusOK},
		{"valid end of day", "23:59", http.StatusOK},
		{"empty skipped by omitempty", "", http.StatusOK},
		{"hour out of range", "24:00", http.StatusBadRequest},
		{"minute out of range", "12:60", http.StatusBadRequest},
		{"missing separator", "1230", http.StatusBadRequest},
		{"wrong separator", "12-30", http.StatusBadRequest},
		{"not numeric", "ab:cd", http.StatusBadRequest},
		{"too long", "12:30:00", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"start":"`+tt.value+`"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	type openBody struct {
		ProfileID string `json:"profile_id" binding:"required,uuid"`
		Name      string `json:"name" binding:"required,min=3"`
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	t.Run("field errors broken out per field", func(t *testing.T) {
		err := v.Struct(openBody{ProfileID: "not-a-uuid", Name: "ab"})
		require.Error(t, err)

		resp := FormatValidationErrors(err, "req-9")
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-9", resp.Error.RequestID)

		byField := map[string]string{}
		for _, d := range resp.Error.Details {
			byField[d.Field] = d.Message
		}
		assert.Equal(t, "Invalid UUID format", byField["profile_id"])
		assert.Equal(t, "Must be at least 3 characters", byField["name"])
	})

	t.Run("non-validator error yields no details", func(t *testing.T) {
		resp := FormatValidationErrors(assert.AnError, "")
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Error.Details)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("generates an ID when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDKey))
	})

	t.Run("honors inbound header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDKey, "req-123")
		router.ServeHTTP(w, req)
		assert.Equal(t, "req-123", w.Body.String())
		assert.Equal(t, "req-123", w.Header().Get(RequestIDKey))
	})
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(BodyLimit(16))
	router.POST("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("allows small body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small"))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects oversized body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestCORSPreflights(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://pos.example.com"}

	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("preflight for allowed origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://pos.example.com")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://pos.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight for unknown origin carries no CORS headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
