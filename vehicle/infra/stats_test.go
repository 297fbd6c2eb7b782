package infra

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vin-gateway/vehicle/domain"
)

func TestMemoryStatsStore_AggregatesByOutcomeAndOp(t *testing.T) {
	s := NewMemoryStatsStore(WithTrackVINs(true))
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, domain.StatsEvent{VIN: testVIN, Op: "decode", Outcome: domain.OutcomeUpstream}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{VIN: testVIN, Op: "decode", Outcome: domain.OutcomeCacheHit}))
	require.NoError(t, s.Record(ctx, domain.StatsEvent{Op: "create", Outcome: domain.OutcomeInvalid}))

	total := s.Total()
	assert.Equal(t, int64(1), total[domain.OutcomeUpstream])
	assert.Equal(t, int64(1), total[domain.OutcomeCacheHit])
	assert.Equal(t, int64(1), total[domain.OutcomeInvalid])

	snap := s.Snapshot()
	assert.Equal(t, int64(1), snap.ByOp["create"][domain.OutcomeInvalid])
	assert.Equal(t, int64(2), snap.ByOp["decode"][domain.OutcomeUpstream]+snap.ByOp["decode"][domain.OutcomeCacheHit])
	assert.Len(t, snap.ByVIN, 1)
}

func TestMemoryStatsStore_DoesNotTrackVINsByDefault(t *testing.T) {
	s := NewMemoryStatsStore()
	_ = s.Record(context.Background(), domain.StatsEvent{VIN: testVIN, Op: "decode", Outcome: domain.OutcomeUpstream})
	assert.Nil(t, s.Snapshot().ByVIN)
}

func TestRedisStatsStore_RecordsHashes(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewRedisStatsStore(rdb, WithStatsPrefix("t:stats"), WithStatsTTL(time.Hour), WithStatsTrackVINs(true))
	at := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

	require.NoError(t, s.Record(context.Background(), domain.StatsEvent{
		VIN: testVIN, Op: "decode", Outcome: domain.OutcomeRateLimited, At: at,
	}))

	assert.Equal(t, "1", mr.HGet("t:stats:total", "rate_limited"))
	assert.Equal(t, "1", mr.HGet("t:stats:minute:202403040506", "rate_limited"))
	assert.Equal(t, "1", mr.HGet("t:stats:op", "decode:rate_limited"))
	assert.Equal(t, "1", mr.HGet("t:stats:vin:"+string(testVIN), "rate_limited"))
	assert.Equal(t, time.Hour, mr.TTL("t:stats:minute:202403040506"))
}

func TestRedisStatsStore_NilClientIsNoop(t *testing.T) {
	var s *RedisStatsStore
	assert.NoError(t, s.Record(context.Background(), domain.StatsEvent{}))
}
