package metrics

import (
	"Instalytics/internal/model"
	"fmt"
)

// EngagementRate 平均每帖互动 / 粉丝数 * 100
func EngagementRate(profile model.Profile, posts []model.Post) float64 {
	likes, comments := sumInteractions(posts)
	perPost := float64(likes+comments) / float64(nonZero(len(posts)))
	return perPost / float64(nonZero(profile.FollowersCount)) * 100
}

// ActiveFollowerEstimate 活跃粉丝占比估算
// 有视频播放数据时用平均播放，否则用平均点赞；粉丝数为 0 时返回 nil
func ActiveFollowerEstimate(profile model.Profile, posts []model.Post) *float64 {
	if profile.FollowersCount == 0 {
		return nil
	}
	estimate := 0.0
	if len(posts) == 0 {
		return &estimate
	}

	likes, _ := sumInteractions(posts)
	avgLikes := float64(likes) / float64(len(posts))

	var views, videos int
	for i := range posts {
		if !posts[i].MediaType.IsVideo() {
			continue
		}
		videos++
		if posts[i].VideoViews != nil {
			views += *posts[i].VideoViews
		}
	}

	base := avgLikes
	if videos > 0 {
		if avgViews := float64(views) / float64(videos); avgViews > 0 {
			base = avgViews
		}
	}
	estimate = base / float64(profile.FollowersCount)
	return &estimate
}

func sumInteractions(posts []model.Post) (likes, comments int) {
	for i := range posts {
		likes += posts[i].LikeCount
		comments += posts[i].CommentsCount
	}
	return likes, comments
}

func engagementQuality(likes, comments int) EngagementQuality {
	total := likes + comments
	if total == 0 {
		return EngagementQuality{LikesWeight: "0.0%", CommentsWeight: "0.0%"}
	}
	return EngagementQuality{
		LikesWeight:    formatFixed(float64(likes)/float64(total)*100) + "%",
		CommentsWeight: formatFixed(float64(comments)/float64(total)*100) + "%",
	}
}

func formatFixed(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
