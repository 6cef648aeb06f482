package repository

import (
	"Instalytics/internal/model"
	"context"
	"math"
	"time"

	"gorm.io/gorm"
)

type gormFollowerHistoryRepo struct {
	db        *gorm.DB
	retention int
}

func NewGormFollowerHistoryRepo(db *gorm.DB, retention int) FollowerHistoryRepo {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &gormFollowerHistoryRepo{db: db, retention: retention}
}

func (s *gormFollowerHistoryRepo) SaveFollowerCount(ctx context.Context, username string, count int, at time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		snapshot := &model.FollowerSnapshot{
			Username:       username,
			FollowersCount: count,
			RecordedAt:     at,
		}
		if err := tx.Create(snapshot).Error; err != nil {
			return err
		}

		// 超出保留条数的旧记录
		var staleIDs []uint64
		err := tx.Model(&model.FollowerSnapshot{}).
			Where("username = ?", username).
			Order("recorded_at DESC").
			Order("id DESC").
			Limit(math.MaxInt32).
			Offset(s.retention).
			Pluck("id", &staleIDs).Error
		if err != nil {
			return err
		}
		if len(staleIDs) == 0 {
			return nil
		}
		return tx.Where("id IN ?", staleIDs).Delete(&model.FollowerSnapshot{}).Error
	})
}

func (s *gormFollowerHistoryRepo) GetFollowerHistory(ctx context.Context, username string) ([]model.FollowerDataPoint, error) {
	snapshots := make([]*model.FollowerSnapshot, 0)
	result := s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("recorded_at ASC").
		Order("id ASC").
		Find(&snapshots)
	if result.Error != nil {
		return nil, result.Error
	}

	points := make([]model.FollowerDataPoint, 0, len(snapshots))
	for _, snapshot := range snapshots {
		points = append(points, snapshot.ToDataPoint())
	}
	return points, nil
}
