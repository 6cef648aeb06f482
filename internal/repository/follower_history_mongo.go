package repository

import (
	"Instalytics/internal/model"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const FollowerHistoryCollection = "follower_history"

type followerHistoryDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	FollowersCount int                `bson:"followers_count"`
	RecordedAt     time.Time          `bson:"recorded_at"`
}

// mongoFollowerHistoryRepo 每条记录一个文档，写入后删除超出 retention 的旧文档
type mongoFollowerHistoryRepo struct {
	coll      *mongo.Collection
	retention int
}

func NewMongoFollowerHistoryRepo(coll *mongo.Collection, retention int) FollowerHistoryRepo {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &mongoFollowerHistoryRepo{coll: coll, retention: retention}
}

// EnsureFollowerHistoryIndexes 建立 (username, recorded_at) 复合索引
func EnsureFollowerHistoryIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "recorded_at", Value: 1}},
	})
	return err
}

func (s *mongoFollowerHistoryRepo) SaveFollowerCount(ctx context.Context, username string, count int, at time.Time) error {
	_, err := s.coll.InsertOne(ctx, followerHistoryDoc{
		Username:       username,
		FollowersCount: count,
		RecordedAt:     at.UTC(),
	})
	if err != nil {
		return err
	}

	// 最新的 retention 条之外全部删除，并发写入时多删几次结果一致
	opts := options.Find().
		SetSort(bson.D{{Key: "recorded_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(s.retention)).
		SetProjection(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return err
	}
	var stale []followerHistoryDoc
	if err = cursor.All(ctx, &stale); err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	ids := make([]primitive.ObjectID, 0, len(stale))
	for _, doc := range stale {
		ids = append(ids, doc.ID)
	}
	_, err = s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

func (s *mongoFollowerHistoryRepo) GetFollowerHistory(ctx context.Context, username string) ([]model.FollowerDataPoint, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, err
	}

	var docs []followerHistoryDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	points := make([]model.FollowerDataPoint, 0, len(docs))
	for _, doc := range docs {
		points = append(points, model.FollowerDataPoint{
			Timestamp:      doc.RecordedAt,
			FollowersCount: doc.FollowersCount,
		})
	}
	return points, nil
}
