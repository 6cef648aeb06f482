package metrics

import "Instalytics/internal/model"

// PostingWindow 某个 "星期 小时" 时段的发帖统计
type PostingWindow struct {
	Posts         int     `json:"posts"`
	Engagement    int     `json:"engagement"`
	AvgEngagement float64 `json:"avgEngagement"`
}

// BestWindow 平均互动最高的时段
type BestWindow struct {
	Slot          string  `json:"slot"`
	AvgEngagement float64 `json:"avgEngagement"`
}

type HashtagStat struct {
	Tag        string `json:"tag"`
	Count      int    `json:"count"`
	Engagement int    `json:"engagement"`
}

// AvgEngagement 单次出现的平均互动
func (h HashtagStat) AvgEngagement() float64 {
	if h.Count == 0 {
		return 0
	}
	return float64(h.Engagement) / float64(h.Count)
}

type CaptionStats struct {
	AverageLength       float64 `json:"averageLength"`
	PercentLongCaptions float64 `json:"percentLongCaptions"`
}

type PostTypeStats struct {
	Type          model.MediaType `json:"type"`
	AvgEngagement float64         `json:"avgEngagement"`
	AvgViews      float64         `json:"avgViews"`
	Count         int             `json:"count"`
}

// TopPost 带总互动数的帖子副本
type TopPost struct {
	model.Post
	TotalEngagement int `json:"totalEngagement"`
}

type TopPosts struct {
	TopEngagement *TopPost    `json:"topEngagement"`
	TopViews      *model.Post `json:"topViews"`
}

type PostingFrequencyDetail struct {
	AvgDays     string `json:"avgDays"`
	Consistency string `json:"consistency"`
}

type EngagementQuality struct {
	LikesWeight    string `json:"likesWeight"`
	CommentsWeight string `json:"commentsWeight"`
}

type DetailedMetrics struct {
	PostingFrequency  PostingFrequencyDetail `json:"postingFrequency"`
	EngagementQuality EngagementQuality      `json:"engagementQuality"`
}

// Result 由资料和帖子派生的全部指标，不落库
type Result struct {
	EngagementRate         float64                  `json:"engagementRate"`
	AvgLikesPerPost        float64                  `json:"avgLikesPerPost"`
	AvgCommentsPerPost     float64                  `json:"avgCommentsPerPost"`
	FollowerFollowingRatio float64                  `json:"followerFollowingRatio"`
	PostingFrequency       float64                  `json:"postingFrequency"`
	PostingWindows         map[string]PostingWindow `json:"postingWindows"`
	BestPostingWindow      *BestWindow              `json:"bestPostingWindow"`
	HashtagStats           []HashtagStat            `json:"hashtagStats"`
	CaptionStats           CaptionStats             `json:"captionStats"`
	PostTypePerformance    []PostTypeStats          `json:"postTypePerformance"`
	TopPosts               TopPosts                 `json:"topPosts"`
	ActiveFollowerEstimate *float64                 `json:"activeFollowerEstimate"`
	DetailedMetrics        DetailedMetrics          `json:"detailedMetrics"`
}
