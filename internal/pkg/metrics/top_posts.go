package metrics

import (
	"Instalytics/internal/model"
	"time"
)

// SelectTopPosts 近 30 天内互动最高与播放最高的帖子
func SelectTopPosts(posts []model.Post, now time.Time) TopPosts {
	cutoff := now.Add(-TopPostWindow)

	var top TopPosts
	for i := range posts {
		p := posts[i]
		if p.Timestamp.Before(cutoff) {
			continue
		}
		if top.TopEngagement == nil || p.Engagement() > top.TopEngagement.TotalEngagement {
			top.TopEngagement = &TopPost{Post: p, TotalEngagement: p.Engagement()}
		}
		if p.VideoViews != nil && (top.TopViews == nil || *p.VideoViews > *top.TopViews.VideoViews) {
			viewed := p
			top.TopViews = &viewed
		}
	}
	return top
}
