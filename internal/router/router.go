package router

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/config"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/db"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/handler"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/identity"
)

const requestIDHeader = "X-Request-ID"

// RequestID 为每个请求分配追踪标识并回写响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig) *gin.Engine {
	identityClient := identity.NewClient(identity.Config{
		APIURL: cfg.IdentityAPIURL,
		APIKey: cfg.IdentityAPIKey,
	})
	api := handler.NewAPI(db.DB, identityClient)

	r := gin.Default()
	r.Use(RequestID())

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("timeflow_session", store))

	// 模板在测试环境可能不存在，存在时才加载
	if matches, err := filepath.Glob(cfg.TemplateGlob); err == nil && len(matches) > 0 {
		r.LoadHTMLGlob(cfg.TemplateGlob)
	}

	// 静态文件服务
	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// 身份服务相关路由，无需认证
	r.GET("/api/oauth/google/redirect_url", api.GetOAuthRedirectURL)
	r.POST("/api/sessions", api.CreateSession)
	r.GET("/api/logout", api.Logout)
	r.GET("/login", api.ShowLoginPage)

	// JSON API，未认证返回 401
	apiGroup := r.Group("/api")
	apiGroup.Use(api.AuthRequired())
	{
		apiGroup.GET("/users/me", api.GetCurrentUser)

		apiGroup.GET("/activities/:date", api.ListActivities)
		apiGroup.POST("/activities", api.CreateActivity)
		apiGroup.PUT("/activities/:id", api.UpdateActivity)
		apiGroup.DELETE("/activities/:id", api.DeleteActivity)

		apiGroup.GET("/analytics/:date", api.GetDayAnalytics)
	}

	// 页面路由，未认证跳转登录页
	pages := r.Group("")
	pages.Use(api.PageAuthRequired())
	{
		pages.GET("/", api.ShowActivityPage)
		pages.GET("/analytics", api.ShowAnalyticsPage)
	}

	return r
}
