package job

import (
	"Instalytics/internal/pkg/consts"
	"Instalytics/internal/pkg/logger"
	redispkg "Instalytics/internal/pkg/redis"
	"Instalytics/internal/service"
	"context"
	log "log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	snapshotConcurrency = 4
	snapshotJobTimeout  = 5 * time.Minute
	snapshotLockTTL     = 10 * time.Minute
)

// FollowerSnapshotJob 定时记录关注列表中账号的粉丝数
type FollowerSnapshotJob struct {
	insightsService service.InsightsService
	usernames       []string
	rdb             *redis.Client
}

// NewFollowerSnapshotJob rdb 可为 nil，非 nil 时多实例之间互斥执行
func NewFollowerSnapshotJob(insightsService service.InsightsService, usernames []string, rdb *redis.Client) *FollowerSnapshotJob {
	return &FollowerSnapshotJob{
		insightsService: insightsService,
		usernames:       usernames,
		rdb:             rdb,
	}
}

func (s *FollowerSnapshotJob) HasTargets() bool {
	return len(s.usernames) > 0
}

func (s *FollowerSnapshotJob) Run() {
	traceID := "job-follower-snapshot-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	ctx, cancel := context.WithTimeout(ctx, snapshotJobTimeout)
	defer cancel()

	s.run(ctx, traceID)
}

func (s *FollowerSnapshotJob) run(ctx context.Context, owner string) (recorded, failed int64) {
	if !s.HasTargets() {
		return 0, 0
	}

	if s.rdb != nil {
		lockKey := consts.FollowerSnapshotJobLock + "all"
		locked, err := redispkg.TryLock(ctx, s.rdb, lockKey, owner, snapshotLockTTL, 1)
		if err != nil {
			log.ErrorContext(ctx, "FollowerSnapshotJob lock error", "err", err)
			return 0, 0
		}
		if !locked {
			log.InfoContext(ctx, "FollowerSnapshotJob is running on another instance, skip")
			return 0, 0
		}
		defer func() {
			if err = redispkg.UnLock(context.WithoutCancel(ctx), s.rdb, lockKey, owner); err != nil {
				log.WarnContext(ctx, "FollowerSnapshotJob unlock error", "err", err)
			}
		}()
	}

	log.InfoContext(ctx, "FollowerSnapshotJob processing", "user_count", len(s.usernames))
	start := time.Now()

	var ok, bad atomic.Int64
	var g errgroup.Group
	g.SetLimit(snapshotConcurrency)
	for _, username := range s.usernames {
		g.Go(func() error {
			if err := s.insightsService.RecordFollowerSnapshot(ctx, username); err != nil {
				bad.Add(1)
				log.ErrorContext(ctx, "record follower snapshot error", "username", username, "err", err)
				return nil
			}
			ok.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	log.InfoContext(ctx, "FollowerSnapshotJob finished",
		"recorded", ok.Load(),
		"failed", bad.Load(),
		"latency", time.Since(start),
	)
	return ok.Load(), bad.Load()
}
