package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/identity"
)

const (
	sessionTokenKey = "session_token"
	currentUserKey  = "__current_user"
)

// GetOAuthRedirectURL 返回外部身份服务的 Google 授权跳转地址
func (a *API) GetOAuthRedirectURL(c *gin.Context) {
	redirectURL, err := a.identity.OAuthRedirectURL(c.Request.Context(), "google")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取授权地址失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirect_url": redirectURL})
}

// CreateSession 用授权回调携带的 code 换取会话令牌并写入 Cookie 会话
func (a *API) CreateSession(c *gin.Context) {
	var payload struct {
		Code string `json:"code"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}
	if payload.Code == "" {
		respondError(c, http.StatusBadRequest, "缺少授权码")
		return
	}

	token, err := a.identity.ExchangeCode(c.Request.Context(), payload.Code)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "授权码无效")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionTokenKey, token)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetCurrentUser 返回当前登录用户的档案
func (a *API) GetCurrentUser(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout 注销远端会话并清空本地 Cookie 会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)

	if token, ok := session.Get(sessionTokenKey).(string); ok && token != "" {
		// 远端注销失败不阻断登出，本地会话总是清掉
		_ = a.identity.DeleteSession(c.Request.Context(), token)
	}

	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// resolveUser 用会话令牌向身份服务换取用户，结果缓存在请求上下文
func (a *API) resolveUser(c *gin.Context) (*identity.User, error) {
	if cached, exists := c.Get(currentUserKey); exists {
		if user, ok := cached.(*identity.User); ok {
			return user, nil
		}
	}

	session := sessions.Default(c)
	token, _ := session.Get(sessionTokenKey).(string)

	user, err := a.identity.FetchUser(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}

	c.Set(currentUserKey, user)
	return user, nil
}

// AuthRequired 保护 JSON API：未认证一律返回 401
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.resolveUser(c)
		if err != nil {
			if errors.Is(err, identity.ErrUnauthorized) {
				respondError(c, http.StatusUnauthorized, "未登录或会话已过期")
			} else {
				respondError(c, http.StatusBadGateway, "身份服务不可用")
			}
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// PageAuthRequired 保护页面路由：未认证跳转登录页
func (a *API) PageAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.resolveUser(c)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *identity.User {
	if cached, exists := c.Get(currentUserKey); exists {
		if user, ok := cached.(*identity.User); ok {
			return user
		}
	}
	return nil
}

// currentOwnerID 从请求上下文取出归属者标识
// 存储与聚合层只接受显式传入的 ownerID，不读任何全局状态
func currentOwnerID(c *gin.Context) string {
	if user := currentUser(c); user != nil {
		return user.ID
	}
	return ""
}
