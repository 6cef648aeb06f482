package metrics

import (
	"Instalytics/internal/model"
	"regexp"
	"sort"
)

// 仅匹配 ASCII 字母、数字和下划线
var hashtagRegex = regexp.MustCompile(`#([A-Za-z0-9_]+)`)

// ExtractHashtags 提取文案中的全部标签（不去重，去掉 #）
func ExtractHashtags(caption string) []string {
	matches := hashtagRegex.FindAllStringSubmatch(caption, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// HashtagStats 按标签累计出现次数与互动，按平均互动降序
func HashtagStats(posts []model.Post) []HashtagStat {
	index := make(map[string]int)
	stats := make([]HashtagStat, 0)

	for i := range posts {
		engagement := posts[i].Engagement()
		for _, tag := range ExtractHashtags(posts[i].CaptionText()) {
			pos, ok := index[tag]
			if !ok {
				pos = len(stats)
				index[tag] = pos
				stats = append(stats, HashtagStat{Tag: tag})
			}
			stats[pos].Count++
			stats[pos].Engagement += engagement
		}
	}

	sort.Slice(stats, func(i, j int) bool {
		ai, aj := stats[i].AvgEngagement(), stats[j].AvgEngagement()
		if ai != aj {
			return ai > aj
		}
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Tag < stats[j].Tag
	})
	return stats
}

// TopHashtagsByCount 按出现次数取前 limit 个，次数相同保持原顺序
func TopHashtagsByCount(stats []HashtagStat, limit int) []HashtagStat {
	sorted := make([]HashtagStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
