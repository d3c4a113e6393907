package service

import (
	"cmp"
	"slices"

	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/db"
	"gorm.io/gorm"
)

// CategoryTotal 是单个分类在一天内的汇总
type CategoryTotal struct {
	Category      string `json:"category"`
	TotalMinutes  int    `json:"total_minutes"`
	ActivityCount int    `json:"activity_count"`
}

// DayAnalytics 是某归属者单日的派生统计，读取时计算、不落库
type DayAnalytics struct {
	TotalMinutes  int             `json:"total_minutes"`
	ActivityCount int             `json:"activity_count"`
	Categories    []CategoryTotal `json:"categories"`
	Activities    []db.Activity   `json:"activities"`
}

// AnalyticsService 负责按天聚合活动数据
type AnalyticsService struct {
	activities *ActivityService
}

// NewAnalyticsService 构造 AnalyticsService
func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{activities: NewActivityService(gdb)}
}

// ComputeDayAnalytics 汇总归属者某天的总时长与分类分布
// 当天没有任何活动时返回 nil，前端依赖这一点渲染空态
// 分类按总时长降序排列，时长相同保持首次出现的顺序
func (s *AnalyticsService) ComputeDayAnalytics(ownerID, date string) (*DayAnalytics, error) {
	activities, err := s.activities.ListByDate(ownerID, date)
	if err != nil {
		return nil, err
	}

	if len(activities) == 0 {
		return nil, nil
	}

	totalMinutes := 0
	index := make(map[string]int, len(ActivityCategories))
	categories := make([]CategoryTotal, 0, len(ActivityCategories))

	for _, activity := range activities {
		totalMinutes += activity.DurationMinutes

		pos, seen := index[activity.Category]
		if !seen {
			pos = len(categories)
			index[activity.Category] = pos
			categories = append(categories, CategoryTotal{Category: activity.Category})
		}
		categories[pos].TotalMinutes += activity.DurationMinutes
		categories[pos].ActivityCount++
	}

	slices.SortStableFunc(categories, func(a, b CategoryTotal) int {
		return cmp.Compare(b.TotalMinutes, a.TotalMinutes)
	})

	return &DayAnalytics{
		TotalMinutes:  totalMinutes,
		ActivityCount: len(activities),
		Categories:    categories,
		Activities:    activities,
	}, nil
}
