package cron

import (
	"Instalytics/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

const defaultSnapshotSpec = "0 0 */6 * * *"

type Manager struct {
	engine              *cron.Cron
	snapshotSpec        string
	followerSnapshotJob *job.FollowerSnapshotJob
}

func NewCronManager(followerSnapshotJob *job.FollowerSnapshotJob, snapshotSpec string) *Manager {
	if snapshotSpec == "" {
		snapshotSpec = defaultSnapshotSpec
	}
	return &Manager{
		engine:              cron.New(cron.WithSeconds()),
		snapshotSpec:        snapshotSpec,
		followerSnapshotJob: followerSnapshotJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if !s.followerSnapshotJob.HasTargets() {
		log.Info("No tracked usernames, follower snapshot job disabled")
		return nil
	}
	if _, err := s.engine.AddJob(s.snapshotSpec, s.followerSnapshotJob); err != nil {
		return err
	}
	return nil
}

// Entries 已注册的任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron scheduler started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron scheduler stopping")
	<-s.engine.Stop().Done()
}
