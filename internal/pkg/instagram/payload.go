package instagram

import (
	"Instalytics/internal/model"
	"Instalytics/internal/pkg/util"
	"context"
	log "log/slog"
	"time"

	"github.com/pkg/errors"
)

// 上游 timestamp 的两种格式
var timestampLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
}

type discoveryEnvelope struct {
	ID                string           `json:"id"`
	BusinessDiscovery *discoveryRecord `json:"business_discovery"`
}

type graphErrorEnvelope struct {
	Error *struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

func (e *graphErrorEnvelope) toError(status int) *UpstreamError {
	upstreamErr := &UpstreamError{StatusCode: status}
	if e.Error != nil {
		upstreamErr.Message = e.Error.Message
		upstreamErr.Type = e.Error.Type
		upstreamErr.Code = e.Error.Code
		upstreamErr.FBTraceID = e.Error.FBTraceID
	}
	return upstreamErr
}

type discoveryRecord struct {
	Username          string     `json:"username" validate:"required"`
	ID                string     `json:"id" validate:"required"`
	Name              string     `json:"name"`
	ProfilePictureURL string     `json:"profile_picture_url"`
	Biography         string     `json:"biography"`
	Website           string     `json:"website"`
	FollowersCount    *int       `json:"followers_count" validate:"omitempty,min=0"`
	FollowsCount      *int       `json:"follows_count" validate:"omitempty,min=0"`
	MediaCount        *int       `json:"media_count" validate:"omitempty,min=0"`
	Category          *string    `json:"category"`
	Media             *mediaEdge `json:"media" validate:"-"`
}

type mediaEdge struct {
	Data []mediaRecord `json:"data"`
}

type mediaRecord struct {
	ID            string     `json:"id" validate:"required"`
	MediaType     string     `json:"media_type" validate:"required,oneof=IMAGE VIDEO CAROUSEL_ALBUM REELS_VIDEO"`
	MediaURL      string     `json:"media_url"`
	ThumbnailURL  *string    `json:"thumbnail_url"`
	Permalink     string     `json:"permalink"`
	Timestamp     string     `json:"timestamp" validate:"required"`
	Caption       *string    `json:"caption"`
	LikeCount     *int       `json:"like_count" validate:"omitempty,min=0"`
	CommentsCount *int       `json:"comments_count" validate:"omitempty,min=0"`
	VideoViews    *int       `json:"video_views" validate:"omitempty,min=0"`
	Children      *childEdge `json:"children" validate:"-"`
}

type childEdge struct {
	Data []childRecord `json:"data"`
}

type childRecord struct {
	MediaType    string  `json:"media_type"`
	MediaURL     string  `json:"media_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

func parseTimestamp(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func (r *mediaRecord) toPost() (model.Post, error) {
	if err := util.ValidateDTO(r); err != nil {
		return model.Post{}, err
	}
	ts, err := parseTimestamp(r.Timestamp)
	if err != nil {
		return model.Post{}, errors.Wrapf(err, "parse timestamp %q", r.Timestamp)
	}

	post := model.Post{
		ID:            r.ID,
		MediaType:     model.MediaType(r.MediaType),
		MediaURL:      r.MediaURL,
		ThumbnailURL:  r.ThumbnailURL,
		Permalink:     r.Permalink,
		Timestamp:     ts,
		Caption:       r.Caption,
		LikeCount:     util.IntValue(r.LikeCount),
		CommentsCount: util.IntValue(r.CommentsCount),
		VideoViews:    r.VideoViews,
	}
	if r.Children != nil {
		for _, child := range r.Children.Data {
			post.Children = append(post.Children, model.PostChild{
				MediaType:    model.MediaType(child.MediaType),
				MediaURL:     child.MediaURL,
				ThumbnailURL: child.ThumbnailURL,
			})
		}
	}
	return post, nil
}

// toBusinessDiscovery 校验资料并转换帖子，非法的单条帖子会被丢弃
func (r *discoveryRecord) toBusinessDiscovery(ctx context.Context, mediaLimit int) (*model.BusinessDiscovery, error) {
	if err := util.ValidateDTO(r); err != nil {
		return nil, errors.Wrap(ErrInvalidResponse, err.Error())
	}

	result := &model.BusinessDiscovery{
		Profile: model.Profile{
			Username:          r.Username,
			ID:                r.ID,
			Name:              r.Name,
			ProfilePictureURL: r.ProfilePictureURL,
			Biography:         r.Biography,
			Website:           r.Website,
			FollowersCount:    util.IntValue(r.FollowersCount),
			FollowsCount:      util.IntValue(r.FollowsCount),
			MediaCount:        util.IntValue(r.MediaCount),
			Category:          r.Category,
		},
		Media: []model.Post{},
	}
	if result.Profile.Category != nil && *result.Profile.Category == "" {
		result.Profile.Category = nil
	}

	if r.Media == nil {
		return result, nil
	}
	for i := range r.Media.Data {
		if mediaLimit > 0 && len(result.Media) >= mediaLimit {
			break
		}
		item := &r.Media.Data[i]
		post, err := item.toPost()
		if err != nil {
			log.WarnContext(ctx, "Skip invalid media item", "media_id", item.ID, "err", err)
			continue
		}
		result.Media = append(result.Media, post)
	}

	return result, nil
}
