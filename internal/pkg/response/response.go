package response

import (
	"Instalytics/internal/api/dto"
	"Instalytics/internal/service"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// Success 成功返回，直接输出数据本身
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, message string, details string) {
	c.AbortWithStatusJSON(status, dto.ErrorDTO{
		Error:   message,
		Details: details,
	})
}

// Error 按业务错误映射状态码，未登记的错误统一 500
func Error(c *gin.Context, err error) {
	kind, status, details := service.Resolve(err)
	if kind == nil {
		log.ErrorContext(c.Request.Context(), "Unhandled error", "err", err)
		Fail(c, http.StatusInternalServerError, internalErrorMessage, err.Error())
		return
	}
	Fail(c, status, kind.Error(), details)
}
