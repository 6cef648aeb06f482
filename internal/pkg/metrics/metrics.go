// Package metrics 从账号资料与最近帖子计算互动类指标，全部为纯函数
package metrics

import (
	"Instalytics/internal/model"
	"time"
)

const (
	// LongCaptionThreshold 长文案阈值（字符数）
	LongCaptionThreshold = 100
	// TopPostWindow 热门帖子的统计窗口
	TopPostWindow = 30 * 24 * time.Hour
)

// ComputeAllMetrics 计算全部指标
// now 为计算时刻，其时区用于发帖时段的划分
func ComputeAllMetrics(profile model.Profile, posts []model.Post, now time.Time) *Result {
	totalLikes, totalComments := sumInteractions(posts)
	n := float64(nonZero(len(posts)))
	followers := float64(nonZero(profile.FollowersCount))
	following := float64(nonZero(profile.FollowsCount))

	frequency := PostingFrequency(posts)
	windows := PostingWindows(posts, now.Location())

	return &Result{
		EngagementRate:         EngagementRate(profile, posts),
		AvgLikesPerPost:        float64(totalLikes) / n,
		AvgCommentsPerPost:     float64(totalComments) / n,
		FollowerFollowingRatio: followers / following,
		PostingFrequency:       frequency,
		PostingWindows:         windows,
		BestPostingWindow:      BestPostingWindow(windows),
		HashtagStats:           HashtagStats(posts),
		CaptionStats:           ComputeCaptionStats(posts),
		PostTypePerformance:    PostTypePerformance(posts),
		TopPosts:               SelectTopPosts(posts, now),
		ActiveFollowerEstimate: ActiveFollowerEstimate(profile, posts),
		DetailedMetrics: DetailedMetrics{
			PostingFrequency: PostingFrequencyDetail{
				AvgDays:     formatFixed(frequency),
				Consistency: Consistency(frequency),
			},
			EngagementQuality: engagementQuality(totalLikes, totalComments),
		},
	}
}

// nonZero 0 视为 1，避免除零
func nonZero(v int) int {
	if v == 0 {
		return 1
	}
	return v
}
