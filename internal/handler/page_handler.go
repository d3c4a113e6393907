package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/service"
)

// ShowLoginPage 渲染登录页
func (a *API) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "登录",
	})
}

// ShowActivityPage 渲染某天的活动列表与编辑页
func (a *API) ShowActivityPage(c *gin.Context) {
	date := c.Query("date")
	if !service.IsValidDate(date) {
		date = time.Now().Format("2006-01-02")
	}

	c.HTML(http.StatusOK, "activities.html", gin.H{
		"title":      "今日记录",
		"date":       date,
		"user":       currentUser(c),
		"categories": service.ActivityCategories,
	})
}

// ShowAnalyticsPage 渲染某天的统计图表页
func (a *API) ShowAnalyticsPage(c *gin.Context) {
	date := c.Query("date")
	if !service.IsValidDate(date) {
		date = time.Now().Format("2006-01-02")
	}

	c.HTML(http.StatusOK, "analytics.html", gin.H{
		"title": "时间分析",
		"date":  date,
		"user":  currentUser(c),
	})
}
