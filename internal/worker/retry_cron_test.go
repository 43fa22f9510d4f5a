package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestScheduleRetry_ParksJobAndRequeuesWhenDue(t *testing.T) {
	ctx := context.Background()
	rdb := newTestRedis(t)
	job := Job{ID: "job-1", Type: "ticket", Payload: json.RawMessage(`{"venta_id":"x"}`), Attempts: 2}

	before := time.Now()
	scheduleRetry(ctx, rdb, QueueTicket, job, errors.New("disk full"))

	parked, err := rdb.ZRangeWithScores(ctx, RetryPrefix+QueueTicket, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, parked, 1)
	assert.InDelta(t, float64(before.Add(2*time.Minute).Unix()), parked[0].Score, 2)

	cfg := RetryCronConfig{RDB: rdb}
	assert.Equal(t, 0, requeueDue(ctx, cfg, QueueTicket, before), "todavia no vence")
	assert.Equal(t, 1, requeueDue(ctx, cfg, QueueTicket, before.Add(3*time.Minute)))

	n, err := rdb.ZCard(ctx, RetryPrefix+QueueTicket).Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	raw, err := rdb.RPop(ctx, QueueTicket).Result()
	require.NoError(t, err)
	var got Job
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, job.Attempts, got.Attempts)
	assert.JSONEq(t, string(job.Payload), string(got.Payload))
}

func TestScheduleRetry_MaxRetriesGoesToDLQ(t *testing.T) {
	ctx := context.Background()
	rdb := newTestRedis(t)

	scheduleRetry(ctx, rdb, QueueEmail, Job{ID: "job-2", Type: "email", Attempts: MaxJobRetries}, errors.New("smtp down"))

	n, err := rdb.ZCard(ctx, RetryPrefix+QueueEmail).Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	dlq, err := DLQLength(ctx, rdb, QueueEmail)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dlq)
}
