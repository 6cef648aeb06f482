package repository

import (
	"Instalytics/internal/model"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// fileFollowerHistoryRepo 整个历史保存在一个 JSON 文件中，写入时先写临时文件再 rename
type fileFollowerHistoryRepo struct {
	mu        sync.Mutex
	path      string
	retention int
	history   map[string][]model.FollowerDataPoint
}

func NewFileFollowerHistoryRepo(path string, retention int) (FollowerHistoryRepo, error) {
	if path == "" {
		return nil, errors.New("file store requires store.file_path")
	}
	if retention <= 0 {
		retention = DefaultRetention
	}

	repo := &fileFollowerHistoryRepo{
		path:      path,
		retention: retention,
		history:   make(map[string][]model.FollowerDataPoint),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (s *fileFollowerHistoryRepo) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read follower history file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err = json.Unmarshal(data, &s.history); err != nil {
		return fmt.Errorf("failed to decode follower history file: %w", err)
	}
	if s.history == nil {
		s.history = make(map[string][]model.FollowerDataPoint)
	}
	return nil
}

func (s *fileFollowerHistoryRepo) persist() error {
	data, err := json.Marshal(s.history)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".follower_history_*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}

func (s *fileFollowerHistoryRepo) SaveFollowerCount(ctx context.Context, username string, count int, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.history[username]
	points := append(append([]model.FollowerDataPoint(nil), previous...), model.FollowerDataPoint{
		Timestamp:      at,
		FollowersCount: count,
	})
	s.history[username] = trimHistory(points, s.retention)

	if err := s.persist(); err != nil {
		s.history[username] = previous
		return fmt.Errorf("failed to persist follower history: %w", err)
	}
	return nil
}

func (s *fileFollowerHistoryRepo) GetFollowerHistory(ctx context.Context, username string) ([]model.FollowerDataPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	points := s.history[username]
	result := make([]model.FollowerDataPoint, len(points))
	copy(result, points)
	return result, nil
}
