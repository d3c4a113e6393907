package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/config"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/db"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/router"
)

func main() {
	// .env 仅本地开发使用，缺失时静默跳过
	_ = godotenv.Load()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
