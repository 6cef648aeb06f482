package handler

import (
	"Instalytics/internal/api/dto"
	"Instalytics/internal/pkg/consts"
	"Instalytics/internal/pkg/response"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (s *HealthHandler) Health(c *gin.Context) {
	response.Success(c, dto.HealthDTO{
		Status:    consts.HealthStatusOK,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
