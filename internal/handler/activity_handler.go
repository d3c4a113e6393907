package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/service"
)

// ListActivities 返回当前用户某天的活动列表
func (a *API) ListActivities(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	activities, err := a.activities.ListByDate(currentOwnerID(c), date)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取活动列表失败")
		return
	}

	c.JSON(http.StatusOK, activities)
}

// CreateActivity 新建活动记录
func (a *API) CreateActivity(c *gin.Context) {
	var input service.CreateActivityInput
	if !bindJSON(c, &input, "请求参数不合法") {
		return
	}

	activity, err := a.activities.Create(currentOwnerID(c), input)
	if err != nil {
		handleActivityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// UpdateActivity 部分更新活动记录，未提供的字段保持原值
func (a *API) UpdateActivity(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var input service.UpdateActivityInput
	if !bindJSON(c, &input, "请求参数不合法") {
		return
	}

	activity, err := a.activities.Update(currentOwnerID(c), id, input)
	if err != nil {
		handleActivityError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

// DeleteActivity 删除活动记录
// 无论记录是否存在都返回成功，避免暴露他人记录的存在性
func (a *API) DeleteActivity(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	if _, err := a.activities.Delete(currentOwnerID(c), id); err != nil {
		respondError(c, http.StatusInternalServerError, "删除活动失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func handleActivityError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondValidationError(c, vErr)
	case errors.Is(err, service.ErrActivityNotFound):
		respondError(c, http.StatusNotFound, "活动不存在")
	default:
		respondError(c, http.StatusInternalServerError, "保存活动失败")
	}
}
