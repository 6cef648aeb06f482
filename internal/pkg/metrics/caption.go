package metrics

import (
	"Instalytics/internal/model"
	"unicode/utf8"
)

// ComputeCaptionStats 平均文案长度与长文案占比（百分比）
func ComputeCaptionStats(posts []model.Post) CaptionStats {
	var total int
	for i := range posts {
		total += utf8.RuneCountInString(posts[i].CaptionText())
	}
	return CaptionStats{
		AverageLength:       float64(total) / float64(nonZero(len(posts))),
		PercentLongCaptions: PercentLongCaptions(posts, LongCaptionThreshold),
	}
}

// PercentLongCaptions 文案长度超过 threshold 的帖子占比，0-100
func PercentLongCaptions(posts []model.Post, threshold int) float64 {
	if len(posts) == 0 {
		return 0
	}
	var long int
	for i := range posts {
		if utf8.RuneCountInString(posts[i].CaptionText()) > threshold {
			long++
		}
	}
	return float64(long) / float64(len(posts)) * 100
}
