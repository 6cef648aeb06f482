package job

import (
	"Instalytics/internal/api/config"
	"Instalytics/internal/api/dto"
	"Instalytics/internal/model"
	redispkg "Instalytics/internal/pkg/redis"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

type recordingService struct {
	mu       sync.Mutex
	recorded []string
	failFor  map[string]bool
}

func (s *recordingService) GetInsights(context.Context, string) (*dto.InsightsDTO, error) {
	return nil, errors.New("not used")
}

func (s *recordingService) GetFollowerHistory(context.Context, string) ([]model.FollowerDataPoint, error) {
	return nil, errors.New("not used")
}

func (s *recordingService) RecordFollowerSnapshot(_ context.Context, username string) error {
	if s.failFor[username] {
		return errors.New("upstream down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorded = append(s.recorded, username)
	return nil
}

func TestFollowerSnapshotJobRecordsAll(t *testing.T) {
	svc := &recordingService{failFor: map[string]bool{"broken": true}}
	job := NewFollowerSnapshotJob(svc, []string{"nasa", "natgeo", "broken", "esa"}, nil)

	recorded, failed := job.run(context.Background(), "test")
	if recorded != 3 || failed != 1 {
		t.Errorf("recorded=%d failed=%d, want 3/1", recorded, failed)
	}

	sort.Strings(svc.recorded)
	want := []string{"esa", "nasa", "natgeo"}
	for i := range want {
		if svc.recorded[i] != want[i] {
			t.Fatalf("recorded = %v, want %v", svc.recorded, want)
		}
	}
}

func TestFollowerSnapshotJobNoTargets(t *testing.T) {
	job := NewFollowerSnapshotJob(&recordingService{}, nil, nil)
	if job.HasTargets() {
		t.Fatal("expected no targets")
	}
	if recorded, failed := job.run(context.Background(), "test"); recorded != 0 || failed != 0 {
		t.Errorf("expected no work, got %d/%d", recorded, failed)
	}
}

func TestFollowerSnapshotJobSkipsWhenLocked(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redispkg.NewClient(config.RedisConfig{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	svc := &recordingService{}
	job := NewFollowerSnapshotJob(svc, []string{"nasa"}, rdb)

	ok, err := redispkg.TryLock(context.Background(), rdb, "lock:follower:snapshot:all", "other", time.Minute, 1)
	if err != nil || !ok {
		t.Fatalf("pre-lock failed: %v", err)
	}

	if recorded, _ := job.run(context.Background(), "me"); recorded != 0 {
		t.Errorf("job should skip while another instance holds the lock")
	}

	mr.Del("lock:follower:snapshot:all")
	if recorded, _ := job.run(context.Background(), "me"); recorded != 1 {
		t.Errorf("expected 1 snapshot after lock release, got %d", recorded)
	}
	if mr.Exists("lock:follower:snapshot:all") {
		t.Error("lock should be released after run")
	}
}
