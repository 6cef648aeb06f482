package dto

import (
	"Instalytics/internal/model"
	"Instalytics/internal/pkg/growth"
	"Instalytics/internal/pkg/metrics"
)

// UsernameQueryDTO ?username= 查询参数
type UsernameQueryDTO struct {
	Username string `form:"username" validate:"required,max=30,ig_username"`
}

// InsightsDTO /api/insights 返回体
type InsightsDTO struct {
	Profile     ProfileDTO  `json:"profile"`
	Metrics     MetricsDTO  `json:"metrics"`
	RecentMedia []*MediaDTO `json:"recentMedia"`
}

// ProfileDTO 空值一律输出 null
type ProfileDTO struct {
	Username          *string `json:"username"`
	ID                *string `json:"id"`
	Name              *string `json:"name"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	Biography         *string `json:"biography"`
	Website           *string `json:"website"`
	FollowersCount    *int    `json:"followers_count"`
	FollowingCount    *int    `json:"following_count"`
	MediaCount        *int    `json:"media_count"`
	Category          *string `json:"category"`
}

type CaptionStatsDTO struct {
	AverageLength          float64 `json:"averageLength"`
	PercentLongCaptions    float64 `json:"percentLongCaptions"`
	PercentLongCaptions100 float64 `json:"percentLongCaptions100"`
}

type GrowthDTO struct {
	NetGrowth          int       `json:"netGrowth"`
	GrowthRate         float64   `json:"growthRate"`
	DailyAverage       float64   `json:"dailyAverage"`
	WeeklyAverage      float64   `json:"weeklyAverage"`
	MonthlyAverage     float64   `json:"monthlyAverage"`
	ProjectedFollowers int       `json:"projectedFollowers"`
	Velocity           []float64 `json:"velocity"`
	NextMilestones     []int     `json:"nextMilestones"`
	PercentChange7d    *float64  `json:"percentChange7d"`
	PercentChange30d   *float64  `json:"percentChange30d"`
}

// NewGrowthDTO 由增长指标构造，附加字段由调用方填充
func NewGrowthDTO(m growth.Metrics) GrowthDTO {
	return GrowthDTO{
		NetGrowth:          m.NetGrowth,
		GrowthRate:         m.GrowthRate,
		DailyAverage:       m.DailyAverage,
		WeeklyAverage:      m.WeeklyAverage,
		MonthlyAverage:     m.MonthlyAverage,
		ProjectedFollowers: m.ProjectedFollowers,
		Velocity:           []float64{},
		NextMilestones:     []int{},
	}
}

// MetricsDTO 指标结果与增长、历史合并后的视图
type MetricsDTO struct {
	EngagementRate         float64                          `json:"engagementRate"`
	AvgLikesPerPost        float64                          `json:"avgLikesPerPost"`
	AvgCommentsPerPost     float64                          `json:"avgCommentsPerPost"`
	FollowerFollowingRatio float64                          `json:"followerFollowingRatio"`
	PostingFrequency       float64                          `json:"postingFrequency"`
	PostingWindows         map[string]metrics.PostingWindow `json:"postingWindows"`
	BestPostingWindow      *metrics.BestWindow              `json:"bestPostingWindow"`
	HashtagStats           []metrics.HashtagStat            `json:"hashtagStats"`
	CaptionStats           CaptionStatsDTO                  `json:"captionStats" copier:"-"`
	PostTypePerformance    []metrics.PostTypeStats          `json:"postTypePerformance"`
	TopPosts               metrics.TopPosts                 `json:"topPosts"`
	ActiveFollowerEstimate *float64                         `json:"activeFollowerEstimate"`
	DetailedMetrics        metrics.DetailedMetrics          `json:"detailedMetrics"`
	Growth                 GrowthDTO                        `json:"growth"`
	FollowerHistory        []model.FollowerDataPoint        `json:"followerHistory"`
}

// MediaDTO recentMedia 中的一条，空值输出 null
type MediaDTO struct {
	ID            *string           `json:"id"`
	MediaType     *string           `json:"media_type"`
	MediaURL      *string           `json:"media_url"`
	ThumbnailURL  *string           `json:"thumbnail_url"`
	Permalink     *string           `json:"permalink"`
	Timestamp     *string           `json:"timestamp"`
	Caption       *string           `json:"caption"`
	LikeCount     *int              `json:"like_count"`
	CommentsCount *int              `json:"comments_count"`
	VideoViews    *int              `json:"video_views"`
	Children      []model.PostChild `json:"children,omitempty"`
}

// FollowerHistoryDTO /api/follower-history 返回体
type FollowerHistoryDTO struct {
	Success bool                      `json:"success"`
	History []model.FollowerDataPoint `json:"history"`
}

// ErrorDTO 错误返回体，details 仅在有上游原因时输出
type ErrorDTO struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type HealthDTO struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
