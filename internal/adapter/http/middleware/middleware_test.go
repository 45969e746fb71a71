package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"taskboard/internal/core/domain"
)

type staticProvider struct {
	userID string
	err    error
}

func (p staticProvider) UserIDFromAuthHeader(string) (string, error) {
	return p.userID, p.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		provider staticProvider
		wantCode int
		wantUser string
	}{
		{name: "verified", provider: staticProvider{userID: "u1"}, wantCode: http.StatusOK, wantUser: "u1"},
		{name: "rejected", provider: staticProvider{err: domain.ErrUnauthorized}, wantCode: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			router := gin.New()
			router.GET("/me", LanguageMiddleware(), AuthMiddleware(tt.provider), func(c *gin.Context) {
				seen = GetUserID(c)
				c.Status(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
			require.Equal(t, tt.wantCode, rec.Code)
			require.Equal(t, tt.wantUser, seen)
		})
	}
}

func TestTimeoutMiddleware_SetsDeadline(t *testing.T) {
	var hasDeadline bool
	router := gin.New()
	router.GET("/", TimeoutMiddleware(time.Second), func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, hasDeadline)
}

func TestLanguageMiddleware_Negotiates(t *testing.T) {
	var lang string
	router := gin.New()
	router.GET("/", LanguageMiddleware(), func(c *gin.Context) {
		lang = GetLang(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr-CA,fr;q=0.8")
	router.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "fr", lang)
}

func TestGinZapMiddleware_LogsRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := gin.New()
	router.Use(GinZapMiddleware(zap.New(core)))
	router.POST("/tasks/:id/move", SetUserID("u1"), func(c *gin.Context) {
		c.Status(http.StatusConflict)
	})

	t.Run("keeps caller request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tasks/t1/move", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		require.Equal(t, zapcore.WarnLevel, entries[0].Level)

		fields := entries[0].ContextMap()
		require.Equal(t, "req-42", fields["request_id"])
		require.Equal(t, "/tasks/:id/move", fields["route"])
		require.Equal(t, "u1", fields["user_id"])
		require.EqualValues(t, http.StatusConflict, fields["status"])
	})

	t.Run("generates one otherwise", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tasks/t1/move", nil))

		require.NotEmpty(t, rec.Header().Get(RequestIDHeader))
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		require.Equal(t, rec.Header().Get(RequestIDHeader), entries[0].ContextMap()["request_id"])
	})
}
