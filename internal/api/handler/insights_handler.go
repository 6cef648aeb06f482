package handler

import (
	"Instalytics/internal/api/dto"
	"Instalytics/internal/pkg/response"
	"Instalytics/internal/service"

	"github.com/gin-gonic/gin"
)

type InsightsHandler struct {
	insightsService service.InsightsService
}

func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// GetInsights 账号资料、指标与最近媒体
func (s *InsightsHandler) GetInsights(c *gin.Context) {
	var query dto.UsernameQueryDTO
	_ = c.ShouldBindQuery(&query)

	insights, err := s.insightsService.GetInsights(c.Request.Context(), query.Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, insights)
}

// GetFollowerHistory 粉丝数历史
func (s *InsightsHandler) GetFollowerHistory(c *gin.Context) {
	var query dto.UsernameQueryDTO
	_ = c.ShouldBindQuery(&query)

	history, err := s.insightsService.GetFollowerHistory(c.Request.Context(), query.Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FollowerHistoryDTO{
		Success: true,
		History: history,
	})
}
