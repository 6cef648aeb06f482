// Package growth 粉丝数时间序列分析
package growth

import (
	"Instalytics/internal/model"
	"math"
	"sort"
	"time"
)

const (
	projectionDays = 30
	milestoneCount = 5
)

// Metrics 粉丝增长指标
type Metrics struct {
	NetGrowth          int     `json:"netGrowth"`
	GrowthRate         float64 `json:"growthRate"`
	DailyAverage       float64 `json:"dailyAverage"`
	WeeklyAverage      float64 `json:"weeklyAverage"`
	MonthlyAverage     float64 `json:"monthlyAverage"`
	ProjectedFollowers int     `json:"projectedFollowers"`
}

// SortHistory 返回按时间升序排列的副本
func SortHistory(history []model.FollowerDataPoint) []model.FollowerDataPoint {
	sorted := make([]model.FollowerDataPoint, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// AnalyzeFollowerGrowth 计算净增长、增长率、日/周/月均增长与 30 天预测
func AnalyzeFollowerGrowth(history []model.FollowerDataPoint) Metrics {
	if len(history) < 2 {
		m := Metrics{}
		if len(history) == 1 {
			m.ProjectedFollowers = history[0].FollowersCount
		}
		return m
	}

	sorted := SortHistory(history)
	first, last := sorted[0], sorted[len(sorted)-1]
	totalDays := daysBetween(first.Timestamp, last.Timestamp)

	netGrowth := last.FollowersCount - first.FollowersCount
	var growthRate float64
	if first.FollowersCount > 0 {
		growthRate = float64(netGrowth) / float64(first.FollowersCount) * 100
	}
	var dailyAverage float64
	if totalDays > 0 {
		dailyAverage = float64(netGrowth) / totalDays
	}

	return Metrics{
		NetGrowth:          netGrowth,
		GrowthRate:         growthRate,
		DailyAverage:       dailyAverage,
		WeeklyAverage:      dailyAverage * 7,
		MonthlyAverage:     dailyAverage * 30,
		ProjectedFollowers: int(math.Round(float64(last.FollowersCount) + dailyAverage*projectionDays)),
	}
}

// CalculateGrowthVelocity 相邻两点的每日增长速度，时间差不大于 0 的区间跳过
func CalculateGrowthVelocity(history []model.FollowerDataPoint) []float64 {
	velocities := make([]float64, 0)
	if len(history) < 2 {
		return velocities
	}

	sorted := SortHistory(history)
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		days := daysBetween(prev.Timestamp, curr.Timestamp)
		if days <= 0 {
			continue
		}
		velocities = append(velocities, float64(curr.FollowersCount-prev.FollowersCount)/days)
	}
	return velocities
}

// GetFollowerMilestones 大于当前粉丝数的后 5 个里程碑
func GetFollowerMilestones(current int) []int {
	milestones := make([]int, 0, milestoneCount)
	next := 100
	for len(milestones) < milestoneCount {
		if next > current {
			milestones = append(milestones, next)
		}
		next += milestoneStep(next)
	}
	return milestones
}

func milestoneStep(n int) int {
	switch {
	case n < 1_000:
		return 100
	case n < 10_000:
		return 1_000
	case n < 100_000:
		return 10_000
	default:
		return 100_000
	}
}

// PercentChange 最新值相对 days 天前（取时间最接近的点）的变化百分比
// 历史不足两点或基准点为 0 时返回 nil
func PercentChange(history []model.FollowerDataPoint, days int, now time.Time) *float64 {
	if len(history) < 2 {
		return nil
	}

	sorted := SortHistory(history)
	target := now.Add(-time.Duration(days) * 24 * time.Hour)

	closest := sorted[0]
	for _, p := range sorted[1:] {
		if absDuration(p.Timestamp.Sub(target)) < absDuration(closest.Timestamp.Sub(target)) {
			closest = p
		}
	}
	if closest.FollowersCount == 0 {
		return nil
	}

	latest := sorted[len(sorted)-1]
	change := float64(latest.FollowersCount-closest.FollowersCount) / float64(closest.FollowersCount) * 100
	return &change
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
