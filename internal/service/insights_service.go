package service

import (
	"Instalytics/internal/api/config"
	"Instalytics/internal/api/dto"
	"Instalytics/internal/model"
	"Instalytics/internal/pkg/growth"
	"Instalytics/internal/pkg/instagram"
	"Instalytics/internal/pkg/metrics"
	"Instalytics/internal/pkg/util"
	"Instalytics/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

const (
	topHashtagLimit   = 5
	defaultRecentSize = 10
)

// DiscoveryFetcher 上游 business_discovery 数据源
type DiscoveryFetcher interface {
	FetchBusinessDiscovery(ctx context.Context, username string) (*model.BusinessDiscovery, error)
}

type InsightsService interface {
	GetInsights(ctx context.Context, username string) (*dto.InsightsDTO, error)
	GetFollowerHistory(ctx context.Context, username string) ([]model.FollowerDataPoint, error)
	RecordFollowerSnapshot(ctx context.Context, username string) error
}

type insightsServiceImpl struct {
	fetcher     DiscoveryFetcher
	historyRepo repository.FollowerHistoryRepo
	cfg         config.InstagramConfig
	now         func() time.Time
}

func NewInsightsService(fetcher DiscoveryFetcher, historyRepo repository.FollowerHistoryRepo, cfg config.InstagramConfig) InsightsService {
	return newInsightsService(fetcher, historyRepo, cfg, time.Now)
}

func newInsightsService(fetcher DiscoveryFetcher, historyRepo repository.FollowerHistoryRepo, cfg config.InstagramConfig, now func() time.Time) *insightsServiceImpl {
	if cfg.RecentMediaLimit <= 0 {
		cfg.RecentMediaLimit = defaultRecentSize
	}
	return &insightsServiceImpl{
		fetcher:     fetcher,
		historyRepo: historyRepo,
		cfg:         cfg,
		now:         now,
	}
}

// GetInsights 拉取资料、记录粉丝数并组装全部指标
func (s *insightsServiceImpl) GetInsights(ctx context.Context, username string) (*dto.InsightsDTO, error) {
	discovery, username, err := s.fetch(ctx, username)
	if err != nil {
		return nil, err
	}

	now := s.now()
	profile := discovery.Profile

	if err = s.historyRepo.SaveFollowerCount(ctx, username, profile.FollowersCount, now); err != nil {
		log.ErrorContext(ctx, "Failed to save follower count", "username", username, "err", err)
		return nil, withDetails(ErrHistoryUnavailable, err)
	}

	history, err := s.historyRepo.GetFollowerHistory(ctx, username)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load follower history", "username", username, "err", err)
		return nil, withDetails(ErrHistoryUnavailable, err)
	}
	history = growth.SortHistory(history)

	result := metrics.ComputeAllMetrics(profile, discovery.Media, now)

	metricsDTO, err := s.buildMetrics(result, history, profile.FollowersCount, now)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "Insights computed",
		"username", username,
		"posts", len(discovery.Media),
		"history_points", len(history),
	)

	return &dto.InsightsDTO{
		Profile:     dto.NewProfileDTO(profile),
		Metrics:     *metricsDTO,
		RecentMedia: dto.NewMediaDTOs(discovery.Media, s.cfg.RecentMediaLimit),
	}, nil
}

// GetFollowerHistory 返回按时间升序的历史
func (s *insightsServiceImpl) GetFollowerHistory(ctx context.Context, raw string) ([]model.FollowerDataPoint, error) {
	username, err := normalizeUsername(raw)
	if err != nil {
		return nil, err
	}

	history, err := s.historyRepo.GetFollowerHistory(ctx, username)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load follower history", "username", username, "err", err)
		return nil, withDetails(ErrHistoryUnavailable, err)
	}
	return growth.SortHistory(history), nil
}

// RecordFollowerSnapshot 只拉取并记录当前粉丝数
func (s *insightsServiceImpl) RecordFollowerSnapshot(ctx context.Context, username string) error {
	discovery, username, err := s.fetch(ctx, username)
	if err != nil {
		return err
	}

	if err = s.historyRepo.SaveFollowerCount(ctx, username, discovery.Profile.FollowersCount, s.now()); err != nil {
		return withDetails(ErrHistoryUnavailable, err)
	}
	return nil
}

// fetch 校验凭据与用户名后请求上游，返回规范化后的用户名
func (s *insightsServiceImpl) fetch(ctx context.Context, raw string) (*model.BusinessDiscovery, string, error) {
	if !s.cfg.HasCredentials() {
		return nil, "", ErrMissingCredentials
	}

	username, err := normalizeUsername(raw)
	if err != nil {
		return nil, "", err
	}

	discovery, err := s.fetcher.FetchBusinessDiscovery(ctx, username)
	if err != nil {
		if errors.Is(err, instagram.ErrMissingCredentials) {
			return nil, "", ErrMissingCredentials
		}
		log.ErrorContext(ctx, "Instagram API error", "username", username, "err", err)
		return nil, "", withDetails(ErrUpstream, err)
	}
	if discovery == nil {
		return nil, "", withDetails(ErrUpstream, instagram.ErrInvalidResponse)
	}

	return discovery, username, nil
}

// normalizeUsername 去掉开头的 @ 并校验格式，格式非法的用户名不会被拼进上游查询
func normalizeUsername(raw string) (string, error) {
	username := util.NormalizeUsername(raw)
	if username == "" {
		return "", ErrUsernameRequired
	}
	if err := util.ValidateDTO(&dto.UsernameQueryDTO{Username: username}); err != nil {
		return "", withDetails(ErrUsernameInvalid, err)
	}
	return username, nil
}

func (s *insightsServiceImpl) buildMetrics(result *metrics.Result, history []model.FollowerDataPoint, followers int, now time.Time) (*dto.MetricsDTO, error) {
	var m dto.MetricsDTO
	if err := copier.Copy(&m, result); err != nil {
		return nil, err
	}

	m.HashtagStats = metrics.TopHashtagsByCount(result.HashtagStats, topHashtagLimit)
	m.CaptionStats = dto.CaptionStatsDTO{
		AverageLength:          result.CaptionStats.AverageLength,
		PercentLongCaptions:    result.CaptionStats.PercentLongCaptions,
		PercentLongCaptions100: result.CaptionStats.PercentLongCaptions,
	}

	g := dto.NewGrowthDTO(growth.AnalyzeFollowerGrowth(history))
	g.Velocity = growth.CalculateGrowthVelocity(history)
	g.NextMilestones = growth.GetFollowerMilestones(followers)
	g.PercentChange7d = growth.PercentChange(history, 7, now)
	g.PercentChange30d = growth.PercentChange(history, 30, now)
	m.Growth = g

	m.FollowerHistory = history
	return &m, nil
}
