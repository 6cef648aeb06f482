package metrics

import (
	"Instalytics/internal/model"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

// 2024-03-04 是周一
var baseTime = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func intPtr(v int) *int {
	return &v
}

func strPtr(s string) *string {
	return &s
}

func newPost(id string, mediaType model.MediaType, likes, comments int, ts time.Time) model.Post {
	return model.Post{
		ID:            id,
		MediaType:     mediaType,
		LikeCount:     likes,
		CommentsCount: comments,
		Timestamp:     ts,
	}
}

func TestComputeAllMetricsEmptyPosts(t *testing.T) {
	profile := model.Profile{Username: "empty", FollowersCount: 100}
	res := ComputeAllMetrics(profile, nil, baseTime)

	if res.EngagementRate != 0 || res.AvgLikesPerPost != 0 || res.AvgCommentsPerPost != 0 {
		t.Errorf("expected zero averages, got %+v", res)
	}
	if res.PostingFrequency != 0 {
		t.Errorf("expected posting frequency 0, got %v", res.PostingFrequency)
	}
	if res.HashtagStats == nil || len(res.HashtagStats) != 0 {
		t.Errorf("expected empty hashtag stats, got %v", res.HashtagStats)
	}
	if res.TopPosts.TopEngagement != nil || res.TopPosts.TopViews != nil {
		t.Errorf("expected no top posts, got %+v", res.TopPosts)
	}
	if res.BestPostingWindow != nil {
		t.Errorf("expected no best window, got %+v", res.BestPostingWindow)
	}
	if res.ActiveFollowerEstimate == nil || *res.ActiveFollowerEstimate != 0 {
		t.Errorf("expected active follower estimate 0, got %v", res.ActiveFollowerEstimate)
	}
	if res.DetailedMetrics.EngagementQuality.LikesWeight != "0.0%" {
		t.Errorf("expected 0.0%% likes weight, got %s", res.DetailedMetrics.EngagementQuality.LikesWeight)
	}
}

func TestComputeAllMetricsMissingFollowers(t *testing.T) {
	posts := []model.Post{newPost("1", model.MediaTypeImage, 3, 1, baseTime)}
	res := ComputeAllMetrics(model.Profile{}, posts, baseTime)

	if !almostEqual(res.EngagementRate, 400) {
		t.Errorf("expected engagement rate 400 with followers floored to 1, got %v", res.EngagementRate)
	}
	if res.FollowerFollowingRatio != 1 {
		t.Errorf("expected ratio 1, got %v", res.FollowerFollowingRatio)
	}
	if res.ActiveFollowerEstimate != nil {
		t.Errorf("expected nil estimate without followers, got %v", *res.ActiveFollowerEstimate)
	}
}

func TestEngagementRate(t *testing.T) {
	profile := model.Profile{FollowersCount: 100, FollowsCount: 0}
	posts := []model.Post{
		newPost("1", model.MediaTypeImage, 10, 5, baseTime),
		newPost("2", model.MediaTypeImage, 20, 10, baseTime.Add(24*time.Hour)),
	}

	res := ComputeAllMetrics(profile, posts, baseTime.Add(48*time.Hour))
	if !almostEqual(res.EngagementRate, 22.5) {
		t.Errorf("expected engagement rate 22.5, got %v", res.EngagementRate)
	}
	if !almostEqual(res.AvgLikesPerPost, 15) || !almostEqual(res.AvgCommentsPerPost, 7.5) {
		t.Errorf("unexpected averages: likes=%v comments=%v", res.AvgLikesPerPost, res.AvgCommentsPerPost)
	}
	if res.FollowerFollowingRatio != 100 {
		t.Errorf("expected ratio 100, got %v", res.FollowerFollowingRatio)
	}
	quality := res.DetailedMetrics.EngagementQuality
	if quality.LikesWeight != "66.7%" || quality.CommentsWeight != "33.3%" {
		t.Errorf("unexpected engagement quality: %+v", quality)
	}
}

func TestPostingFrequency(t *testing.T) {
	tests := []struct {
		name        string
		offsets     []int
		want        float64
		consistency string
	}{
		{"single post", []int{0}, 0, ConsistencyHigh},
		{"unsorted input", []int{4, 0, 1}, 2, ConsistencyHigh},
		{"weekly", []int{0, 5, 10}, 5, ConsistencyMedium},
		{"sparse", []int{0, 10}, 10, ConsistencyLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := make([]model.Post, 0, len(tt.offsets))
			for i, d := range tt.offsets {
				posts = append(posts, newPost(string(rune('a'+i)), model.MediaTypeImage, 1, 0, baseTime.AddDate(0, 0, d)))
			}
			got := PostingFrequency(posts)
			if !almostEqual(got, tt.want) {
				t.Errorf("PostingFrequency() = %v, want %v", got, tt.want)
			}
			if c := Consistency(got); c != tt.consistency {
				t.Errorf("Consistency(%v) = %s, want %s", got, c, tt.consistency)
			}
		})
	}
}

func TestPostingWindows(t *testing.T) {
	posts := []model.Post{
		newPost("1", model.MediaTypeImage, 10, 0, baseTime),
		newPost("2", model.MediaTypeImage, 15, 5, baseTime.AddDate(0, 0, 7)),
		newPost("3", model.MediaTypeImage, 10, 5, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)),
	}

	windows := PostingWindows(posts, time.UTC)
	monday, ok := windows["Monday 9:00"]
	if !ok {
		t.Fatalf("expected Monday 9:00 slot, got %v", windows)
	}
	if monday.Posts != 2 || monday.Engagement != 30 || !almostEqual(monday.AvgEngagement, 15) {
		t.Errorf("unexpected Monday slot: %+v", monday)
	}
	if tuesday := windows["Tuesday 14:00"]; tuesday.Posts != 1 || tuesday.Engagement != 15 {
		t.Errorf("unexpected Tuesday slot: %+v", tuesday)
	}

	best := BestPostingWindow(windows)
	if best == nil || best.Slot != "Monday 9:00" {
		t.Fatalf("expected tie broken towards Monday 9:00, got %+v", best)
	}
	if !almostEqual(best.AvgEngagement, 15) {
		t.Errorf("expected best avg 15, got %v", best.AvgEngagement)
	}
}

func TestPostingWindowsUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	posts := []model.Post{newPost("1", model.MediaTypeImage, 1, 0, baseTime)}

	windows := PostingWindows(posts, loc)
	if _, ok := windows["Monday 4:00"]; !ok {
		t.Errorf("expected slot in evaluation time zone, got %v", windows)
	}

	res := ComputeAllMetrics(model.Profile{FollowersCount: 1}, posts, baseTime.In(loc))
	if res.BestPostingWindow == nil || res.BestPostingWindow.Slot != "Monday 4:00" {
		t.Errorf("expected best window from now's location, got %+v", res.BestPostingWindow)
	}
}

func TestHashtagStats(t *testing.T) {
	posts := []model.Post{
		{ID: "1", MediaType: model.MediaTypeImage, LikeCount: 6, CommentsCount: 4, Caption: strPtr("#a #a #b"), Timestamp: baseTime},
	}

	stats := HashtagStats(posts)
	want := []HashtagStat{
		{Tag: "a", Count: 2, Engagement: 20},
		{Tag: "b", Count: 1, Engagement: 10},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("HashtagStats() = %+v, want %+v", stats, want)
	}
}

func TestHashtagStatsOrdersByAverageEngagement(t *testing.T) {
	posts := []model.Post{
		{ID: "1", LikeCount: 100, Caption: strPtr("launch #Go #go"), Timestamp: baseTime},
		{ID: "2", LikeCount: 10, Caption: strPtr("#go again"), Timestamp: baseTime},
		{ID: "3", LikeCount: 5, Caption: nil, Timestamp: baseTime},
	}

	stats := HashtagStats(posts)
	if len(stats) != 2 {
		t.Fatalf("expected 2 tags (case-sensitive), got %+v", stats)
	}
	if stats[0].Tag != "Go" || stats[0].Engagement != 100 {
		t.Errorf("expected Go first, got %+v", stats[0])
	}
	if stats[1].Tag != "go" || stats[1].Count != 2 || stats[1].Engagement != 110 {
		t.Errorf("unexpected go stat: %+v", stats[1])
	}

	top := TopHashtagsByCount(stats, 1)
	if len(top) != 1 || top[0].Tag != "go" {
		t.Errorf("expected go as most frequent tag, got %+v", top)
	}
	if stats[0].Tag != "Go" {
		t.Errorf("TopHashtagsByCount must not reorder its input")
	}
}

func TestExtractHashtags(t *testing.T) {
	got := ExtractHashtags("#café #go_lang! #123 no#tag # ")
	want := []string{"caf", "go_lang", "123", "tag"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractHashtags() = %v, want %v", got, want)
	}
}

func TestCaptionStats(t *testing.T) {
	posts := []model.Post{
		{ID: "1", Caption: nil},
		{ID: "2", Caption: strPtr("short")},
		{ID: "3", Caption: strPtr(strings.Repeat("x", 101))},
		{ID: "4", Caption: strPtr(strings.Repeat("é", 100))},
	}

	stats := ComputeCaptionStats(posts)
	if !almostEqual(stats.AverageLength, 206.0/4) {
		t.Errorf("expected average length 51.5, got %v", stats.AverageLength)
	}
	if !almostEqual(stats.PercentLongCaptions, 25) {
		t.Errorf("expected 25%% long captions, got %v", stats.PercentLongCaptions)
	}
	if got := PercentLongCaptions(nil, LongCaptionThreshold); got != 0 {
		t.Errorf("expected 0 for no posts, got %v", got)
	}
}

func TestPostTypePerformance(t *testing.T) {
	posts := []model.Post{
		newPost("1", model.MediaTypeVideo, 20, 0, baseTime),
		newPost("2", model.MediaTypeImage, 10, 0, baseTime),
		newPost("3", model.MediaTypeVideo, 0, 10, baseTime),
	}
	posts[0].VideoViews = intPtr(100)
	posts[2].VideoViews = intPtr(300)

	stats := PostTypePerformance(posts)
	want := []PostTypeStats{
		{Type: model.MediaTypeImage, AvgEngagement: 10, AvgViews: 0, Count: 1},
		{Type: model.MediaTypeVideo, AvgEngagement: 15, AvgViews: 200, Count: 2},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("PostTypePerformance() = %+v, want %+v", stats, want)
	}
}

func TestSelectTopPosts(t *testing.T) {
	now := baseTime.AddDate(0, 0, 40)
	posts := []model.Post{
		newPost("old", model.MediaTypeImage, 1000, 0, baseTime),
		newPost("recent1", model.MediaTypeVideo, 40, 10, baseTime.AddDate(0, 0, 35)),
		newPost("recent2", model.MediaTypeImage, 70, 10, baseTime.AddDate(0, 0, 36)),
		newPost("recent3", model.MediaTypeReelsVideo, 60, 20, baseTime.AddDate(0, 0, 39)),
	}
	posts[0].VideoViews = intPtr(9999)
	posts[1].VideoViews = intPtr(10)
	posts[3].VideoViews = intPtr(500)

	top := SelectTopPosts(posts, now)
	if top.TopEngagement == nil || top.TopEngagement.ID != "recent2" {
		t.Fatalf("expected recent2 as top engagement, got %+v", top.TopEngagement)
	}
	if top.TopEngagement.TotalEngagement != 80 {
		t.Errorf("expected total engagement 80, got %d", top.TopEngagement.TotalEngagement)
	}
	if top.TopViews == nil || top.TopViews.ID != "recent3" {
		t.Errorf("expected recent3 as top views, got %+v", top.TopViews)
	}
	if posts[2].LikeCount != 70 {
		t.Errorf("input posts must not be mutated")
	}

	none := SelectTopPosts(posts[:1], now)
	if none.TopEngagement != nil || none.TopViews != nil {
		t.Errorf("expected no top posts outside the window, got %+v", none)
	}
}

func TestActiveFollowerEstimate(t *testing.T) {
	reel := newPost("2", model.MediaTypeReelsVideo, 50, 0, baseTime)
	reel.VideoViews = intPtr(400)

	tests := []struct {
		name      string
		followers int
		posts     []model.Post
		want      *float64
	}{
		{"no followers", 0, []model.Post{reel}, nil},
		{"video views preferred", 1000, []model.Post{newPost("1", model.MediaTypeImage, 100, 0, baseTime), reel}, floatPtr(0.4)},
		{"likes fallback", 1000, []model.Post{
			newPost("1", model.MediaTypeImage, 100, 0, baseTime),
			newPost("2", model.MediaTypeImage, 300, 0, baseTime),
		}, floatPtr(0.2)},
		{"video without views", 1000, []model.Post{newPost("1", model.MediaTypeVideo, 100, 0, baseTime)}, floatPtr(0.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActiveFollowerEstimate(model.Profile{FollowersCount: tt.followers}, tt.posts)
			if tt.want == nil {
				if got != nil {
					t.Errorf("expected nil, got %v", *got)
				}
				return
			}
			if got == nil || !almostEqual(*got, *tt.want) {
				t.Errorf("ActiveFollowerEstimate() = %v, want %v", got, *tt.want)
			}
		})
	}
}

func TestComputeAllMetricsIsDeterministic(t *testing.T) {
	profile := model.Profile{FollowersCount: 250, FollowsCount: 80}
	posts := []model.Post{
		{ID: "1", MediaType: model.MediaTypeImage, LikeCount: 12, CommentsCount: 3, Caption: strPtr("#x #y"), Timestamp: baseTime},
		{ID: "2", MediaType: model.MediaTypeVideo, LikeCount: 12, CommentsCount: 3, Caption: strPtr("#y"), VideoViews: intPtr(40), Timestamp: baseTime.Add(26 * time.Hour)},
		{ID: "3", MediaType: model.MediaTypeCarouselAlbum, LikeCount: 7, Timestamp: baseTime.Add(50 * time.Hour)},
	}
	now := baseTime.AddDate(0, 0, 3)

	first := ComputeAllMetrics(profile, posts, now)
	second := ComputeAllMetrics(profile, posts, now)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
