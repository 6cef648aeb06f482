package repository

import (
	"Instalytics/internal/api/config"
	"Instalytics/internal/model"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const DefaultRetention = 100

// FollowerHistoryRepo 按用户名保存粉丝数时间序列，每个用户只保留最近 retention 条
type FollowerHistoryRepo interface {
	SaveFollowerCount(ctx context.Context, username string, count int, at time.Time) error
	GetFollowerHistory(ctx context.Context, username string) ([]model.FollowerDataPoint, error)
}

// Backends 各存储驱动依赖的连接，未启用的可为 nil
type Backends struct {
	DB    *gorm.DB
	Redis *redis.Client
	Mongo *mongo.Database
}

// NewFollowerHistoryRepo 按 store.driver 选择实现
func NewFollowerHistoryRepo(cfg config.StoreConfig, backends Backends) (FollowerHistoryRepo, error) {
	retention := cfg.Retention
	if retention <= 0 {
		retention = DefaultRetention
	}

	switch cfg.Driver {
	case "", config.StoreDriverMemory:
		return NewMemoryFollowerHistoryRepo(retention), nil
	case config.StoreDriverFile:
		return NewFileFollowerHistoryRepo(cfg.FilePath, retention)
	case config.StoreDriverRedis:
		if backends.Redis == nil {
			return nil, fmt.Errorf("store driver %q requires a redis client", cfg.Driver)
		}
		return NewRedisFollowerHistoryRepo(backends.Redis, retention), nil
	case config.StoreDriverMySQL:
		if backends.DB == nil {
			return nil, fmt.Errorf("store driver %q requires a database connection", cfg.Driver)
		}
		return NewGormFollowerHistoryRepo(backends.DB, retention), nil
	case config.StoreDriverMongo:
		if backends.Mongo == nil {
			return nil, fmt.Errorf("store driver %q requires a mongo database", cfg.Driver)
		}
		coll := backends.Mongo.Collection(FollowerHistoryCollection)
		if err := EnsureFollowerHistoryIndexes(context.Background(), coll); err != nil {
			return nil, err
		}
		return NewMongoFollowerHistoryRepo(coll, retention), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func trimHistory(points []model.FollowerDataPoint, retention int) []model.FollowerDataPoint {
	if len(points) <= retention {
		return points
	}
	return append([]model.FollowerDataPoint(nil), points[len(points)-retention:]...)
}
