package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDayAnalytics 返回当前用户某天的统计
// 当天没有活动时返回 null，前端以此渲染空态
func (a *API) GetDayAnalytics(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	analytics, err := a.analytics.ComputeDayAnalytics(currentOwnerID(c), date)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "计算统计信息失败")
		return
	}

	if analytics == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, analytics)
}
