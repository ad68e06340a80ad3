package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/storefront-labs/storefront-api/internal/config"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLoginRateLimit(t *testing.T) {
	email := "ann@example.com"
	key := "login_attempts:" + email
	rate := config.RateConfig{MaxAttempts: 2, WindowSize: time.Minute}

	t.Run("Success - Attempt within limit", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		mock.MatchExpectationsInOrder(true)
		mock.Regexp().ExpectTxPipeline()
		mock.Regexp().ExpectZRemRangeByScore(key, "0", `\d+`).SetVal(0)
		mock.CustomMatch(func(expected, actual []interface{}) error {
			// the member and score are the current unix time
			if len(actual) != 4 || actual[1] != key {
				return errors.New("unexpected zadd arguments")
			}
			return nil
		}).ExpectZAdd(key, redis.Z{}).SetVal(1)
		mock.ExpectZCard(key).SetVal(1)
		mock.ExpectExpire(key, time.Minute).SetVal(true)
		mock.ExpectTxPipelineExec()
		repo := repository.NewRateLimitRepo(client, rate)

		// Act
		result, err := repo.CheckLoginRateLimit(t.Context(), email)

		// Assert
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 1, result.Remaining)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Attempt over limit reports retry time", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		mock.ExpectTxPipeline()
		mock.Regexp().ExpectZRemRangeByScore(key, "0", `\d+`).SetVal(0)
		mock.CustomMatch(func(expected, actual []interface{}) error { return nil }).ExpectZAdd(key, redis.Z{}).SetVal(1)
		mock.ExpectZCard(key).SetVal(3)
		mock.ExpectExpire(key, time.Minute).SetVal(true)
		mock.ExpectTxPipelineExec()
		oldest := float64(time.Now().Add(-20 * time.Second).Unix())
		mock.ExpectZRangeWithScores(key, 0, 0).SetVal([]redis.Z{{Score: oldest, Member: "x"}})
		repo := repository.NewRateLimitRepo(client, rate)

		// Act
		result, err := repo.CheckLoginRateLimit(t.Context(), email)

		// Assert
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.InDelta(t, 40*time.Second, result.RetryAfter, float64(2*time.Second))
	})

	t.Run("Failure - Pipeline error", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		mock.ExpectTxPipeline()
		mock.Regexp().ExpectZRemRangeByScore(key, "0", `\d+`).SetErr(errors.New("redis down"))
		repo := repository.NewRateLimitRepo(client, rate)

		// Act
		result, err := repo.CheckLoginRateLimit(t.Context(), email)

		// Assert
		require.Error(t, err)
		assert.False(t, result.Allowed)
	})
}
