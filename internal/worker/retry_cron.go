package worker

// retry_cron.go
// Failed jobs wait in a sorted set per queue (retry:{queue}, scored by the
// unix time they become due). A background goroutine moves due jobs back onto
// their queue. Mail jobs stay parked while the SMTP circuit breaker is open.

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	RetryPrefix       = "retry:"
	MaxJobRetries     = 5
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 20
)

// computeRetryBackoff returns 1m, 2m, 4m, 8m… capped at 30m.
func computeRetryBackoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	d := time.Minute << uint(attempts-1)
	if d > 30*time.Minute || d <= 0 {
		d = 30 * time.Minute
	}
	return d
}

// scheduleRetry parks job for a later attempt or, past MaxJobRetries, sends it to the DLQ.
func scheduleRetry(ctx context.Context, rdb *redis.Client, queue string, job Job, cause error) {
	if job.Attempts >= MaxJobRetries {
		SendToDLQ(ctx, rdb, queue, job, "max retries ("+strconv.Itoa(MaxJobRetries)+") exceeded: "+cause.Error())
		return
	}
	due := time.Now().Add(computeRetryBackoff(job.Attempts))
	encoded, err := json.Marshal(job)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("retry: failed to marshal job")
		return
	}
	if err := rdb.ZAdd(ctx, RetryPrefix+queue, redis.Z{Score: float64(due.Unix()), Member: string(encoded)}).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("retry: failed to schedule job")
		return
	}
	log.Warn().
		Err(cause).
		Str("queue", queue).
		Str("job_id", job.ID).
		Int("attempts", job.Attempts).
		Time("next_retry_at", due).
		Msg("retry: job failed, scheduled next attempt")
}

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	RDB *redis.Client
	// SMTP gates QueueEmail; nil means always open for business.
	SMTP *infra.CircuitBreaker
}

// StartRetryCron ticks every 30s and re-enqueues due jobs until ctx is done.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				requeueDue(ctx, cfg, QueueTicket, time.Now())
				if cfg.SMTP != nil && cfg.SMTP.State() == infra.CBOpen {
					log.Debug().Msg("retry_cron: smtp circuit breaker is open, skipping mail queue")
					continue
				}
				requeueDue(ctx, cfg, QueueEmail, time.Now())
			}
		}
	}()
}

// requeueDue moves up to retryBatchSize due jobs from retry:{queue} back to queue.
// ZREM decides ownership so concurrent crons never requeue the same job twice.
func requeueDue(ctx context.Context, cfg RetryCronConfig, queue string, now time.Time) int {
	key := RetryPrefix + queue
	due, err := cfg.RDB.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: retryBatchSize,
	}).Result()
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("retry_cron: failed to query due jobs")
		return 0
	}

	moved := 0
	for _, member := range due {
		removed, err := cfg.RDB.ZRem(ctx, key, member).Result()
		if err != nil || removed == 0 {
			continue
		}
		if err := cfg.RDB.LPush(ctx, queue, member).Err(); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry_cron: failed to requeue job")
			continue
		}
		moved++
	}
	if moved > 0 {
		log.Info().Int("count", moved).Str("queue", queue).Msg("retry_cron: jobs requeued")
	}
	return moved
}
