package metrics

import (
	"Instalytics/internal/model"
	"sort"
)

// PostTypePerformance 按媒体类型统计平均互动与平均播放，按类型名排序
func PostTypePerformance(posts []model.Post) []PostTypeStats {
	type bucket struct {
		engagement int
		views      int
		count      int
	}
	buckets := make(map[model.MediaType]*bucket)
	for i := range posts {
		b, ok := buckets[posts[i].MediaType]
		if !ok {
			b = &bucket{}
			buckets[posts[i].MediaType] = b
		}
		b.count++
		b.engagement += posts[i].Engagement()
		if posts[i].VideoViews != nil {
			b.views += *posts[i].VideoViews
		}
	}

	stats := make([]PostTypeStats, 0, len(buckets))
	for t, b := range buckets {
		stats = append(stats, PostTypeStats{
			Type:          t,
			AvgEngagement: float64(b.engagement) / float64(b.count),
			AvgViews:      float64(b.views) / float64(b.count),
			Count:         b.count,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Type < stats[j].Type
	})
	return stats
}
