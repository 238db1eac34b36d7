package leavebalance

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLedger_BalanceSummaryCache(t *testing.T) {
	ctx := context.Background()
	rdb, redisMock := redismock.NewClientMock()
	repo := &memRepo{}
	ledger := NewLedger(repo, rdb)
	userID := uuid.New().String()
	key := "balances:" + userID

	summary := BalanceSummary{Annual: 30, Sick: 15, Maternity: 112, Paternity: 14}
	payload, err := json.Marshal(summary)
	assert.NoError(t, err)

	t.Run("miss populates the cache", func(t *testing.T) {
		redisMock.ExpectGet(key).RedisNil()
		redisMock.ExpectSet(key, payload, 5*time.Minute).SetVal("OK")

		got, err := ledger.GetRemainingAll(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, summary, got)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("hit skips the repository", func(t *testing.T) {
		redisMock.ExpectGet(key).SetVal(string(payload))
		repo.balance = nil // a repo read now would rematerialize

		got, err := ledger.GetRemainingAll(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, summary, got)
		assert.Nil(t, repo.balance)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("mutation invalidates the key", func(t *testing.T) {
		redisMock.ExpectDel(key).SetVal(1)

		err := ledger.ReverseConsumption(ctx, userID, uuid.New().String())

		assert.NoError(t, err)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
