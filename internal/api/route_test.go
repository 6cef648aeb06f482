package api

import (
	"Instalytics/internal/api/config"
	"Instalytics/internal/api/handler"
	"Instalytics/internal/pkg/instagram"
	"Instalytics/internal/repository"
	"Instalytics/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const graphBody = `{
  "business_discovery": {
    "username": "nasa",
    "id": "1",
    "followers_count": 1000,
    "follows_count": 100,
    "media": {"data": [
      {"id": "m1", "media_type": "IMAGE", "timestamp": "2024-03-04T10:15:00+0000", "like_count": 200, "comments_count": 25, "caption": "#space"},
      {"id": "m2", "media_type": "VIDEO", "timestamp": "2024-03-03T10:15:00+0000", "like_count": 200, "comments_count": 25, "video_views": 900}
    ]}
  }
}`

var testOrigins = []string{"http://localhost:3000", `~\.vercel\.app$`}

func newTestRouter(t *testing.T, cfg config.InstagramConfig, graph http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if graph != nil {
		server := httptest.NewServer(graph)
		t.Cleanup(server.Close)
		cfg.GraphURL = server.URL
	}
	cfg.APIVersion = "v19.0"

	svc := service.NewInsightsService(instagram.NewClient(cfg), repository.NewMemoryFollowerHistoryRepo(100), cfg)
	return SetupRouter(&HandlersGroup{
		HealthHandler:   handler.NewHealthHandler(),
		InsightsHandler: handler.NewInsightsHandler(svc),
	}, testOrigins)
}

func okGraph(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(graphBody))
}

func doGet(r http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var credentials = config.InstagramConfig{AccessToken: "token", BusinessID: "biz"}

func TestInsightsEndpoint(t *testing.T) {
	r := newTestRouter(t, credentials, okGraph)

	w := doGet(r, "/api/insights?username=@nasa")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		Profile struct {
			Username       *string `json:"username"`
			FollowingCount *int    `json:"following_count"`
			Category       *string `json:"category"`
		} `json:"profile"`
		Metrics struct {
			EngagementRate  float64 `json:"engagementRate"`
			FollowerHistory []struct {
				FollowersCount int `json:"followersCount"`
			} `json:"followerHistory"`
			Growth struct {
				NextMilestones []int `json:"nextMilestones"`
			} `json:"growth"`
		} `json:"metrics"`
		RecentMedia []map[string]any `json:"recentMedia"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if body.Profile.Username == nil || *body.Profile.Username != "nasa" {
		t.Errorf("profile.username = %v", body.Profile.Username)
	}
	if body.Profile.FollowingCount == nil || *body.Profile.FollowingCount != 100 {
		t.Errorf("profile.following_count = %v", body.Profile.FollowingCount)
	}
	if body.Profile.Category != nil {
		t.Errorf("profile.category should be null")
	}
	if body.Metrics.EngagementRate != 22.5 {
		t.Errorf("engagementRate = %v, want 22.5", body.Metrics.EngagementRate)
	}
	if len(body.Metrics.FollowerHistory) != 1 || body.Metrics.FollowerHistory[0].FollowersCount != 1000 {
		t.Errorf("followerHistory = %+v", body.Metrics.FollowerHistory)
	}
	if len(body.Metrics.Growth.NextMilestones) != 5 {
		t.Errorf("nextMilestones = %v", body.Metrics.Growth.NextMilestones)
	}
	if len(body.RecentMedia) != 2 || body.RecentMedia[0]["id"] != "m1" {
		t.Errorf("recentMedia = %v", body.RecentMedia)
	}

	if w.Header().Get("X-Trace-ID") == "" {
		t.Error("expected trace id header")
	}

	hist := doGet(r, "/api/follower-history?username=nasa")
	if hist.Code != http.StatusOK {
		t.Fatalf("history status = %d", hist.Code)
	}
	var histBody struct {
		Success bool             `json:"success"`
		History []map[string]any `json:"history"`
	}
	if err := json.Unmarshal(hist.Body.Bytes(), &histBody); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if !histBody.Success || len(histBody.History) != 1 {
		t.Errorf("unexpected history body: %s", hist.Body.String())
	}
}

func TestInsightsEndpointErrors(t *testing.T) {
	graphFail := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid user id","type":"OAuthException","code":110}}`))
	}

	tests := []struct {
		name        string
		cfg         config.InstagramConfig
		graph       http.HandlerFunc
		target      string
		wantStatus  int
		wantError   string
		wantDetails string
	}{
		{"missing credentials", config.InstagramConfig{}, okGraph, "/api/insights?username=nasa", 500, service.ErrMissingCredentials.Error(), ""},
		{"missing username", credentials, okGraph, "/api/insights", 400, "Username is required", ""},
		{"invalid username", credentials, okGraph, "/api/insights?username=a%20b", 400, "Invalid username", ""},
		{"upstream failure", credentials, graphFail, "/api/insights?username=ghost", 500, "Failed to fetch data from Instagram API", "Invalid user id"},
		{"history without username", credentials, okGraph, "/api/follower-history", 400, "Username is required", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, tt.cfg, tt.graph)
			w := doGet(r, tt.target)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] != tt.wantError {
				t.Errorf("error = %q, want %q", body["error"], tt.wantError)
			}
			if tt.wantDetails != "" && body["details"] != tt.wantDetails {
				t.Errorf("details = %q, want %q", body["details"], tt.wantDetails)
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, config.InstagramConfig{}, nil)

	w := doGet(r, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q", body["status"])
	}
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t, config.InstagramConfig{}, nil)

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost:3000", true},
		{"https://my-app.vercel.app", true},
		{"https://evil.example.com", false},
		{"https://vercel.app.evil.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/insights", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusNoContent {
				t.Errorf("preflight status = %d, want 204", w.Code)
			}
			got := w.Header().Get("Access-Control-Allow-Origin")
			if tt.allowed && got != tt.origin {
				t.Errorf("expected origin to be echoed, got %q", got)
			}
			if !tt.allowed && got != "" {
				t.Errorf("expected no allow-origin header, got %q", got)
			}
		})
	}
}
