package model

import "time"

type MediaType string

const (
	MediaTypeImage         MediaType = "IMAGE"
	MediaTypeVideo         MediaType = "VIDEO"
	MediaTypeCarouselAlbum MediaType = "CAROUSEL_ALBUM"
	MediaTypeReelsVideo    MediaType = "REELS_VIDEO"
)

// IsVideo 是否为带播放量的视频类媒体
func (t MediaType) IsVideo() bool {
	return t == MediaTypeVideo || t == MediaTypeReelsVideo
}

type PostChild struct {
	MediaType    MediaType `json:"media_type"`
	MediaURL     string    `json:"media_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
}

// Post 单条媒体，计算过程中只读
type Post struct {
	ID            string      `json:"id"`
	MediaType     MediaType   `json:"media_type"`
	MediaURL      string      `json:"media_url"`
	ThumbnailURL  *string     `json:"thumbnail_url"`
	Permalink     string      `json:"permalink"`
	Timestamp     time.Time   `json:"timestamp"`
	Caption       *string     `json:"caption"`
	LikeCount     int         `json:"like_count"`
	CommentsCount int         `json:"comments_count"`
	VideoViews    *int        `json:"video_views"`
	Children      []PostChild `json:"children,omitempty"`
}

// Engagement likes + comments
func (p *Post) Engagement() int {
	return p.LikeCount + p.CommentsCount
}

// CaptionText 文案，缺失时返回空串
func (p *Post) CaptionText() string {
	if p.Caption == nil {
		return ""
	}
	return *p.Caption
}
