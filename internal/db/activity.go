package db

import "time"

// Activity 表示用户某一天记录的一段时间块
// OwnerID 来自会话上下文，客户端输入永远不能覆盖
// ActivityDate 以 YYYY-MM-DD 文本保存，作为日历标识而非时间点
// 删除为物理删除，不保留软删除列
type Activity struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	OwnerID         string    `gorm:"index:idx_activities_owner_date" json:"owner_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	DurationMinutes int       `json:"duration_minutes"`
	ActivityDate    string    `gorm:"index:idx_activities_owner_date" json:"date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName 沿用 activities 表名
func (Activity) TableName() string {
	return "activities"
}
