package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondValidationError 以 400 返回全部失败字段
func respondValidationError(c *gin.Context, vErr *service.ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "请求字段校验失败",
		"fields": vErr.Fields,
	})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// parseDateParam 在触达存储层之前拦截格式错误的日期
func parseDateParam(c *gin.Context) (string, bool) {
	date := c.Param("date")
	if !service.IsValidDate(date) {
		respondError(c, http.StatusBadRequest, "日期必须为 YYYY-MM-DD")
		return "", false
	}
	return date, true
}
