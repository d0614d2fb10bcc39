package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wedsite/internal/domain/models"
	libjwt "wedsite/internal/lib/jwt"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func performRequest(handler echo.HandlerFunc, mw echo.MiddlewareFunc, header string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = mw(handler)(c)
	return rec
}

func TestJWT(t *testing.T) {
	user := models.User{ID: uuid.New(), Role: models.RoleOrganizer}
	token, err := libjwt.NewToken(user, testSecret, time.Minute)
	require.NoError(t, err)

	t.Run("valid token passes identity through", func(t *testing.T) {
		var gotUID string
		var gotRole models.Role
		handler := func(c echo.Context) error {
			gotUID, _ = c.Get(ContextUserID).(string)
			gotRole, _ = c.Get(ContextRole).(models.Role)
			return c.NoContent(http.StatusOK)
		}

		rec := performRequest(handler, JWT(testSecret), "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user.ID.String(), gotUID)
		assert.Equal(t, models.RoleOrganizer, gotRole)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
		rec := performRequest(handler, JWT(testSecret), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
		rec := performRequest(handler, JWT("other-secret"), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired, err := libjwt.NewToken(user, testSecret, -time.Minute)
		require.NoError(t, err)

		handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
		rec := performRequest(handler, JWT(testSecret), "Bearer "+expired)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	run := func(role interface{}) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(ContextRole, role)
		}
		_ = RequireRole(models.RoleSuperadmin)(handler)(c)
		return rec
	}

	assert.Equal(t, http.StatusOK, run(models.RoleSuperadmin).Code)
	assert.Equal(t, http.StatusForbidden, run(models.RoleOrganizer).Code)
	assert.Equal(t, http.StatusForbidden, run(nil).Code)
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	run := func(mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/rsvp", nil)
		req.Header.Set("X-Real-Ip", "203.0.113.9")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/event-id/:www_id/rsvp")
		_ = mw(handler)(c)
		return rec
	}

	key := "ratelimit:/api/event-id/:www_id/rsvp:203.0.113.9"

	t.Run("under the limit", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectIncr(key).SetVal(1)
		mock.ExpectExpire(key, time.Minute).SetVal(true)

		rec := run(RateLimit(rdb, 2, time.Minute))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("over the limit", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectIncr(key).SetVal(3)

		rec := run(RateLimit(rdb, 2, time.Minute))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("redis down fails open", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectIncr(key).SetErr(assert.AnError)

		rec := run(RateLimit(rdb, 2, time.Minute))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
