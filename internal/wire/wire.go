package wire

import (
	"Instalytics/internal/api"
	"Instalytics/internal/api/config"
	"Instalytics/internal/api/handler"
	"Instalytics/internal/job"
	"Instalytics/internal/pkg/cron"
	"Instalytics/internal/pkg/instagram"
	"Instalytics/internal/repository"
	"Instalytics/internal/service"

	"github.com/gin-gonic/gin"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	CronMgr *cron.Manager
}

// BuildApplication backends 中只需提供当前存储驱动用到的连接，Redis 同时用于定时任务的分布式锁
func BuildApplication(backends repository.Backends, cfg *config.Config) (*ApplicationContainer, error) {
	historyRepo, err := repository.NewFollowerHistoryRepo(cfg.Store, backends)
	if err != nil {
		return nil, err
	}

	igClient := instagram.NewClient(cfg.Instagram)
	insightsService := service.NewInsightsService(igClient, historyRepo, cfg.Instagram)

	handlers := &api.HandlersGroup{
		HealthHandler:   handler.NewHealthHandler(),
		InsightsHandler: handler.NewInsightsHandler(insightsService),
	}

	router := api.SetupRouter(handlers, cfg.Server.AllowedOrigins)

	snapshotJob := job.NewFollowerSnapshotJob(insightsService, cfg.Tracking.Usernames, backends.Redis)
	cronMgr := cron.NewCronManager(snapshotJob, cfg.Tracking.Cron)

	return &ApplicationContainer{
		Router:  router,
		CronMgr: cronMgr,
	}, nil
}
