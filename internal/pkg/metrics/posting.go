package metrics

import (
	"Instalytics/internal/model"
	"fmt"
	"sort"
	"time"
)

const (
	ConsistencyHigh   = "High"
	ConsistencyMedium = "Medium"
	ConsistencyLow    = "Low"
)

// PostingFrequency 相邻两帖的平均间隔（天），不足两帖返回 0
func PostingFrequency(posts []model.Post) float64 {
	if len(posts) < 2 {
		return 0
	}
	times := make([]time.Time, 0, len(posts))
	for i := range posts {
		times = append(times, posts[i].Timestamp)
	}
	sort.Slice(times, func(i, j int) bool {
		return times[i].After(times[j])
	})

	var sum float64
	for i := 0; i < len(times)-1; i++ {
		sum += times[i].Sub(times[i+1]).Hours() / 24
	}
	return sum / float64(len(times)-1)
}

// Consistency 按发帖间隔划分稳定度
func Consistency(frequency float64) string {
	switch {
	case frequency < 3:
		return ConsistencyHigh
	case frequency < 7:
		return ConsistencyMedium
	default:
		return ConsistencyLow
	}
}

// WindowSlot 时段键，格式 "Monday 9:00"
func WindowSlot(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%s %d:00", t.Weekday(), t.Hour())
}

// PostingWindows 按 "星期 小时" 聚合发帖数与互动
func PostingWindows(posts []model.Post, loc *time.Location) map[string]PostingWindow {
	windows := make(map[string]PostingWindow)
	for i := range posts {
		slot := WindowSlot(posts[i].Timestamp, loc)
		w := windows[slot]
		w.Posts++
		w.Engagement += posts[i].Engagement()
		windows[slot] = w
	}
	for slot, w := range windows {
		w.AvgEngagement = float64(w.Engagement) / float64(w.Posts)
		windows[slot] = w
	}
	return windows
}

// BestPostingWindow 平均互动最高的时段，平均值相同时取字典序最小的时段
func BestPostingWindow(windows map[string]PostingWindow) *BestWindow {
	slots := make([]string, 0, len(windows))
	for slot := range windows {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	var best *BestWindow
	for _, slot := range slots {
		avg := windows[slot].AvgEngagement
		if best == nil || avg > best.AvgEngagement {
			best = &BestWindow{Slot: slot, AvgEngagement: avg}
		}
	}
	return best
}
