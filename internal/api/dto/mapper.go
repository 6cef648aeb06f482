package dto

import (
	"Instalytics/internal/model"
	"Instalytics/internal/pkg/util"
)

// GraphTimestampLayout 与上游 Graph API 相同的时间格式
const GraphTimestampLayout = "2006-01-02T15:04:05-0700"

func NewProfileDTO(p model.Profile) ProfileDTO {
	category := p.Category
	if category != nil && *category == "" {
		category = nil
	}
	return ProfileDTO{
		Username:          util.StringOrNil(p.Username),
		ID:                util.StringOrNil(p.ID),
		Name:              util.StringOrNil(p.Name),
		ProfilePictureURL: util.StringOrNil(p.ProfilePictureURL),
		Biography:         util.StringOrNil(p.Biography),
		Website:           util.StringOrNil(p.Website),
		FollowersCount:    util.IntOrNil(p.FollowersCount),
		FollowingCount:    util.IntOrNil(p.FollowsCount),
		MediaCount:        util.IntOrNil(p.MediaCount),
		Category:          category,
	}
}

func NewMediaDTO(p model.Post) *MediaDTO {
	media := &MediaDTO{
		ID:            util.StringOrNil(p.ID),
		MediaType:     util.StringOrNil(string(p.MediaType)),
		MediaURL:      util.StringOrNil(p.MediaURL),
		ThumbnailURL:  p.ThumbnailURL,
		Permalink:     util.StringOrNil(p.Permalink),
		Caption:       p.Caption,
		LikeCount:     util.IntOrNil(p.LikeCount),
		CommentsCount: util.IntOrNil(p.CommentsCount),
		Children:      p.Children,
	}
	if media.Caption != nil && *media.Caption == "" {
		media.Caption = nil
	}
	if p.VideoViews != nil {
		media.VideoViews = util.IntOrNil(*p.VideoViews)
	}
	if !p.Timestamp.IsZero() {
		media.Timestamp = util.PtrString(p.Timestamp.Format(GraphTimestampLayout))
	}
	return media
}

// NewMediaDTOs 转换前 limit 条，limit <= 0 表示全部
func NewMediaDTOs(posts []model.Post, limit int) []*MediaDTO {
	if limit <= 0 || limit > len(posts) {
		limit = len(posts)
	}
	result := make([]*MediaDTO, 0, limit)
	for i := 0; i < limit; i++ {
		result = append(result, NewMediaDTO(posts[i]))
	}
	return result
}
