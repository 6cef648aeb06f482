package repository

import (
	"Instalytics/internal/model"
	"Instalytics/internal/pkg/consts"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// redisFollowerHistoryRepo 每个用户一个 list，RPUSH + LTRIM 在同一个 MULTI 中执行
type redisFollowerHistoryRepo struct {
	rdb       *redis.Client
	retention int
}

func NewRedisFollowerHistoryRepo(rdb *redis.Client, retention int) FollowerHistoryRepo {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &redisFollowerHistoryRepo{rdb: rdb, retention: retention}
}

func (s *redisFollowerHistoryRepo) SaveFollowerCount(ctx context.Context, username string, count int, at time.Time) error {
	payload, err := json.Marshal(model.FollowerDataPoint{
		Timestamp:      at,
		FollowersCount: count,
	})
	if err != nil {
		return err
	}

	key := consts.FollowerHistoryKey + username
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, int64(-s.retention), -1)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *redisFollowerHistoryRepo) GetFollowerHistory(ctx context.Context, username string) ([]model.FollowerDataPoint, error) {
	values, err := s.rdb.LRange(ctx, consts.FollowerHistoryKey+username, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	points := make([]model.FollowerDataPoint, 0, len(values))
	for _, value := range values {
		var point model.FollowerDataPoint
		if err = json.Unmarshal([]byte(value), &point); err != nil {
			log.WarnContext(ctx, "Skip corrupted follower history entry", "username", username, "err", err)
			continue
		}
		points = append(points, point)
	}
	return points, nil
}
