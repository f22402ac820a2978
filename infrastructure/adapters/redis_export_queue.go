package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/config"
	"faceless-timeline/domain"
	"fmt"
	"github.com/go-redis/redis/v8"
	"time"
)

const (
	defaultDequeueTimeout = 5 * time.Second
	exportStateKeyPrefix  = "export_state:"
)

type redisExportQueue struct {
	logger         outbound.LoggerPort
	rdb            *redis.Client
	redisConfig    *config.RedisConfig
	dequeueTimeout time.Duration
}

// NewRedisExportQueue uses a Redis list as the job queue (LPUSH/BRPOP, so any
// number of workers can share it) and plain keys with a TTL for job state.
func NewRedisExportQueue(logger outbound.LoggerPort, rdb *redis.Client, redisConfig *config.RedisConfig) outbound.ExportQueuePort {
	return &redisExportQueue{
		logger:         logger,
		rdb:            rdb,
		redisConfig:    redisConfig,
		dequeueTimeout: defaultDequeueTimeout,
	}
}

func (q *redisExportQueue) Enqueue(ctx context.Context, job domain.ExportJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.redisConfig.QueueName, payload).Err()
}

func (q *redisExportQueue) Dequeue(ctx context.Context) (*domain.ExportJob, error) {
	result, err := q.rdb.BRPop(ctx, q.dequeueTimeout, q.redisConfig.QueueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	// result[0] is the queue name, result[1] is the payload
	var job domain.ExportJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		q.logger.ErrorWithFields(err, "Error unmarshalling export job", map[string]interface{}{
			"queue":   result[0],
			"payload": result[1],
		})
		return nil, fmt.Errorf("decode export job: %w", err)
	}

	return &job, nil
}

func (q *redisExportQueue) SaveState(ctx context.Context, state domain.ExportState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return q.rdb.Set(ctx, exportStateKeyPrefix+state.ExportID, payload, q.redisConfig.StateTTL).Err()
}

func (q *redisExportQueue) GetState(ctx context.Context, exportID string) (*domain.ExportState, error) {
	payload, err := q.rdb.Get(ctx, exportStateKeyPrefix+exportID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrExportNotFound
		}
		return nil, err
	}

	var state domain.ExportState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decode export state %s: %w", exportID, err)
	}

	return &state, nil
}
