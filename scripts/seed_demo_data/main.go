package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/config"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/db"
	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/service"
)

const demoOwnerID = "demo-user"

// 演示数据生成器：为 demo-user 填充最近一周的活动记录
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	var count int64
	db.DB.Model(&db.Activity{}).Where("owner_id = ?", demoOwnerID).Count(&count)
	if count > 0 {
		fmt.Println("演示数据已存在，跳过创建")
		return
	}

	fmt.Println("开始生成演示数据...")

	svc := service.NewActivityService(db.DB)
	names := map[string][]string{
		"Work":          {"写周报", "需求评审", "修线上问题"},
		"Study":         {"读论文", "背单词", "刷算法题"},
		"Sleep":         {"午休", "夜间睡眠"},
		"Exercise":      {"晨跑", "健身房", "骑车通勤"},
		"Entertainment": {"看电影", "打游戏", "刷视频"},
	}

	created := 0
	today := time.Now()
	for dayOffset := 0; dayOffset < 7; dayOffset++ {
		date := today.AddDate(0, 0, -dayOffset).Format("2006-01-02")
		for category, candidates := range names {
			if rand.Intn(3) == 0 {
				continue
			}
			name := candidates[rand.Intn(len(candidates))]
			if _, err := svc.Create(demoOwnerID, service.CreateActivityInput{
				Name:            name,
				Category:        category,
				DurationMinutes: 15 + rand.Intn(120),
				Date:            date,
			}); err != nil {
				log.Fatalf("创建活动失败: %v", err)
			}
			created++
		}
	}

	fmt.Printf("演示数据生成完成！共 %d 条活动，归属者 %s\n", created, demoOwnerID)
}
