package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vin-gateway/vehicle/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStatsStore grava os desfechos do gateway em hashes do Redis:
//
//	<prefix>:total                 campo = outcome
//	<prefix>:minute:<yyyymmddHHMM> campo = outcome (com TTL)
//	<prefix>:op                    campo = "<op>:<outcome>"
//	<prefix>:vin:<VIN>             campo = outcome (só com trackVINs, com TTL)
type RedisStatsStore struct {
	rdb *redis.Client

	prefix string
	// ttl aplica apenas em chaves de série temporal / por VIN.
	// total é cumulativo e não expira.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"

	trackVINs bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackVINs(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackVINs = track }
}

func NewRedisStatsStore(rdb *redis.Client, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "vin:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	field := string(ev.Outcome)

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	if op := strings.TrimSpace(ev.Op); op != "" {
		pipe.HIncrBy(ctx, s.prefix+":op", op+":"+field, 1)
	}

	if s.trackVINs && ev.VIN != "" {
		vinKey := s.prefix + ":vin:" + string(ev.VIN)
		pipe.HIncrBy(ctx, vinKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, vinKey, s.ttl)
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
