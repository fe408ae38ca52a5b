package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ScheduleStream receives every changed schedule row
const ScheduleStream = "schedule.updates"

// defaultMaxLen caps the stream so it doesn't grow without bound
const defaultMaxLen = 10000

// RedisStreamPublisher publishes events to Redis streams
type RedisStreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
		stream: ScheduleStream,
		maxLen: defaultMaxLen,
	}
}

// Stream returns the stream name events are added to
func (rsp *RedisStreamPublisher) Stream() string {
	return rsp.stream
}

// PublishScheduleUpdate adds one schedule update to the stream
func (rsp *RedisStreamPublisher) PublishScheduleUpdate(ctx context.Context, teamID string, update interface{}) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: rsp.stream,
		MaxLen: rsp.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"team_id":   teamID,
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
