package model

import "time"

// FollowerDataPoint 粉丝数时间序列中的一个点
type FollowerDataPoint struct {
	Timestamp      time.Time `json:"timestamp"`
	FollowersCount int       `json:"followersCount"`
}

// FollowerSnapshot mysql 存储的粉丝数快照
type FollowerSnapshot struct {
	ID             uint64    `gorm:"primaryKey"`
	Username       string    `gorm:"type:varchar(64);not null;index:idx_username_recorded,priority:1"`
	FollowersCount int       `gorm:"type:int;not null;default:0"`
	RecordedAt     time.Time `gorm:"not null;index:idx_username_recorded,priority:2"`
	CreatedAt      time.Time
}

func (FollowerSnapshot) TableName() string {
	return "follower_snapshots"
}

func (s *FollowerSnapshot) ToDataPoint() FollowerDataPoint {
	return FollowerDataPoint{
		Timestamp:      s.RecordedAt,
		FollowersCount: s.FollowersCount,
	}
}
