// Package instagram 通过 Graph API 的 business_discovery 拉取公开账号资料与最近媒体
package instagram

import (
	"Instalytics/internal/api/config"
	"Instalytics/internal/model"
	"Instalytics/internal/pkg/logger"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	defaultTimeout    = 15 * time.Second
	defaultMediaLimit = 25

	discoveryFields = "business_discovery.username(%s){" +
		"username,id,name,profile_picture_url,biography,website," +
		"followers_count,follows_count,media_count," +
		"media.limit(%d){id,media_type,media_url,thumbnail_url,permalink,timestamp,caption," +
		"like_count,comments_count,video_views,children{media_type,media_url,thumbnail_url}}}"
)

// Client business_discovery 客户端，并发安全
type Client struct {
	http        *resty.Client
	apiVersion  string
	businessID  string
	accessToken string
	mediaLimit  int
}

func NewClient(cfg config.InstagramConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	mediaLimit := cfg.MediaLimit
	if mediaLimit <= 0 {
		mediaLimit = defaultMediaLimit
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.GraphURL, "/")).
		SetTimeout(timeout).
		SetTransport(logger.NewUpstreamTransport(http.DefaultTransport)).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Accept", "application/json")

	return &Client{
		http:        httpClient,
		apiVersion:  cfg.APIVersion,
		businessID:  cfg.BusinessID,
		accessToken: cfg.AccessToken,
		mediaLimit:  mediaLimit,
	}
}

// FetchBusinessDiscovery 拉取 username 的资料和最多 mediaLimit 条最近媒体
func (c *Client) FetchBusinessDiscovery(ctx context.Context, username string) (*model.BusinessDiscovery, error) {
	if c.accessToken == "" || c.businessID == "" {
		return nil, errors.WithStack(ErrMissingCredentials)
	}

	var envelope discoveryEnvelope
	var graphErr graphErrorEnvelope

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"version": c.apiVersion,
			"id":      c.businessID,
		}).
		SetQueryParams(map[string]string{
			"fields":       fmt.Sprintf(discoveryFields, username, c.mediaLimit),
			"access_token": c.accessToken,
		}).
		SetResult(&envelope).
		SetError(&graphErr).
		Get("/{version}/{id}")
	if err != nil {
		return nil, errors.Wrap(err, "graph api request failed")
	}

	if resp.IsError() {
		return nil, errors.WithStack(graphErr.toError(resp.StatusCode()))
	}

	if envelope.BusinessDiscovery == nil {
		return nil, errors.WithStack(ErrInvalidResponse)
	}

	return envelope.BusinessDiscovery.toBusinessDiscovery(ctx, c.mediaLimit)
}
