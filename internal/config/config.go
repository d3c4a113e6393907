package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string
	Port            string
	DatabasePath    string
	SessionSecret   string
	GinMode         string
	IdentityAPIURL  string
	IdentityAPIKey  string
	SessionMaxAge   int
	StaticDir       string
	TemplateGlob    string
}

// 会话有效期 60 天，与外部身份服务下发的 Cookie 策略保持一致。
const defaultSessionMaxAge = 60 * 24 * 60 * 60

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "timeflow.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "timeflow-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	identityAPIURL := strings.TrimSpace(os.Getenv("IDENTITY_API_URL"))
	if identityAPIURL == "" {
		identityAPIURL = "https://users.service.local"
	}

	staticDir := strings.TrimSpace(os.Getenv("STATIC_DIR"))
	if staticDir == "" {
		staticDir = "web/static"
	}

	templateGlob := strings.TrimSpace(os.Getenv("TEMPLATE_GLOB"))
	if templateGlob == "" {
		templateGlob = "web/template/*.html"
	}

	identityAPIKey := strings.TrimSpace(os.Getenv("IDENTITY_API_KEY"))

	return AppConfig{
		ListenAddr:     listenAddr,
		Port:           port,
		DatabasePath:   databasePath,
		SessionSecret:  sessionSecret,
		GinMode:        ginMode,
		IdentityAPIURL: identityAPIURL,
		IdentityAPIKey: identityAPIKey,
		SessionMaxAge:  defaultSessionMaxAge,
		StaticDir:      staticDir,
		TemplateGlob:   templateGlob,
	}
}
