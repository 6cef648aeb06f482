package repository

import (
	"Instalytics/internal/model"
	"context"
	"sync"
	"time"
)

type memoryFollowerHistoryRepo struct {
	mu        sync.RWMutex
	retention int
	history   map[string][]model.FollowerDataPoint
}

func NewMemoryFollowerHistoryRepo(retention int) FollowerHistoryRepo {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &memoryFollowerHistoryRepo{
		retention: retention,
		history:   make(map[string][]model.FollowerDataPoint),
	}
}

func (s *memoryFollowerHistoryRepo) SaveFollowerCount(_ context.Context, username string, count int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := append(s.history[username], model.FollowerDataPoint{
		Timestamp:      at,
		FollowersCount: count,
	})
	s.history[username] = trimHistory(points, s.retention)
	return nil
}

func (s *memoryFollowerHistoryRepo) GetFollowerHistory(_ context.Context, username string) ([]model.FollowerDataPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points := s.history[username]
	result := make([]model.FollowerDataPoint, len(points))
	copy(result, points)
	return result, nil
}
