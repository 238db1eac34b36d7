package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const userID = "u-1"
	lockKey := fmt.Sprintf("idemp:%s:%s:%s:lock", "/leaves", userID, "key-1")

	setup := func() (*gin.Engine, redismock.ClientMock) {
		rdb, redisMock := redismock.NewClientMock()
		router := gin.New()
		router.Use(func(c *gin.Context) { c.Set("user_id", userID) })
		router.Use(Idempotency(rdb))
		router.POST("/leaves", func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})
		return router, redisMock
	}

	t.Run("first submission acquires the lock and proceeds", func(t *testing.T) {
		router, redisMock := setup()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("duplicate submission is rejected with 409", func(t *testing.T) {
		router, redisMock := setup()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("redis outage fails open", func(t *testing.T) {
		router, redisMock := setup()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).
			SetErr(assert.AnError)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("request without a key skips the lock", func(t *testing.T) {
		router, redisMock := setup()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
