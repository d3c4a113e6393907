package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rohiniwari/timeflow-ai-time-tracking-app/internal/db"
	"gorm.io/gorm"
)

const dateFormat = "2006-01-02"

var (
	// ErrActivityNotFound 在记录不存在或不属于请求者时返回
	// 两种情况刻意不可区分，避免暴露他人记录的存在性
	ErrActivityNotFound = errors.New("activity not found")
)

// ActivityCategories 是固定的活动分类集合，不允许自由分类
var ActivityCategories = []string{"Work", "Study", "Sleep", "Exercise", "Entertainment"}

// 字段校验错误码
const (
	CodeRequiredFieldMissing = "required_field_missing"
	CodeInvalidEnumValue     = "invalid_enum_value"
	CodeOutOfRange           = "out_of_range"
	CodeInvalidFormat        = "invalid_format"
)

// FieldError 描述单个字段的校验失败
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError 汇总一次请求中所有字段的校验失败，不会中途抛出
type ValidationError struct {
	Fields []FieldError
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// ActivityService 负责活动记录的校验与按归属者隔离的增删改查
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService 构造 ActivityService
func NewActivityService(gdb *gorm.DB) *ActivityService {
	return &ActivityService{db: gdb}
}

// CreateActivityInput 定义创建活动时的可配置字段
type CreateActivityInput struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	DurationMinutes int    `json:"duration_minutes"`
	Date            string `json:"date"`
}

// UpdateActivityInput 定义部分更新时的可选字段，nil 表示保持原值
type UpdateActivityInput struct {
	Name            *string `json:"name"`
	Category        *string `json:"category"`
	DurationMinutes *int    `json:"duration_minutes"`
	Date            *string `json:"date"`
}

// IsValidDate 校验字符串是否为合法的 YYYY-MM-DD 日历日期
func IsValidDate(value string) bool {
	if len(value) != len(dateFormat) {
		return false
	}
	_, err := time.Parse(dateFormat, value)
	return err == nil
}

func isValidCategory(value string) bool {
	for _, category := range ActivityCategories {
		if category == value {
			return true
		}
	}
	return false
}

// ValidateCreate 校验创建载荷，返回所有失败字段而非首个
func ValidateCreate(input CreateActivityInput) *ValidationError {
	var fields []FieldError

	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Code: CodeRequiredFieldMissing, Message: "活动名称不能为空"})
	}
	if !isValidCategory(input.Category) {
		fields = append(fields, FieldError{Field: "category", Code: CodeInvalidEnumValue, Message: "分类不在允许的集合内"})
	}
	if input.DurationMinutes < 1 {
		fields = append(fields, FieldError{Field: "duration_minutes", Code: CodeOutOfRange, Message: "时长至少为 1 分钟"})
	}
	if !IsValidDate(input.Date) {
		fields = append(fields, FieldError{Field: "date", Code: CodeInvalidFormat, Message: "日期必须为 YYYY-MM-DD"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// validateUpdate 只校验提供的字段，缺省字段保持不变
func validateUpdate(input UpdateActivityInput) *ValidationError {
	var fields []FieldError

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Code: CodeRequiredFieldMissing, Message: "活动名称不能为空"})
	}
	if input.Category != nil && !isValidCategory(*input.Category) {
		fields = append(fields, FieldError{Field: "category", Code: CodeInvalidEnumValue, Message: "分类不在允许的集合内"})
	}
	if input.DurationMinutes != nil && *input.DurationMinutes < 1 {
		fields = append(fields, FieldError{Field: "duration_minutes", Code: CodeOutOfRange, Message: "时长至少为 1 分钟"})
	}
	if input.Date != nil && !IsValidDate(*input.Date) {
		fields = append(fields, FieldError{Field: "date", Code: CodeInvalidFormat, Message: "日期必须为 YYYY-MM-DD"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create 为指定归属者新建活动记录
func (s *ActivityService) Create(ownerID string, input CreateActivityInput) (*db.Activity, error) {
	if err := ValidateCreate(input); err != nil {
		return nil, err
	}

	activity := db.Activity{
		OwnerID:         ownerID,
		Name:            strings.TrimSpace(input.Name),
		Category:        input.Category,
		DurationMinutes: input.DurationMinutes,
		ActivityDate:    input.Date,
	}

	if err := s.db.Create(&activity).Error; err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return &activity, nil
}

// ListByDate 返回归属者当天的全部活动，按创建时间倒序
// 没有记录时返回空切片而非错误
func (s *ActivityService) ListByDate(ownerID, date string) ([]db.Activity, error) {
	activities := make([]db.Activity, 0)

	if err := s.db.Where("owner_id = ? AND activity_date = ?", ownerID, date).
		Order("created_at DESC, id DESC").
		Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return activities, nil
}

// Get 按归属者加载单条记录
func (s *ActivityService) Get(ownerID string, id uint) (*db.Activity, error) {
	var activity db.Activity
	if err := s.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&activity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return &activity, nil
}

// Update 部分更新归属者的记录：逐字段合并提供的值并刷新 updated_at
// 没有提供任何可识别字段时原样返回现有记录
func (s *ActivityService) Update(ownerID string, id uint, input UpdateActivityInput) (*db.Activity, error) {
	existing, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name == nil && input.Category == nil && input.DurationMinutes == nil && input.Date == nil {
		return existing, nil
	}

	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	if input.Name != nil {
		existing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		existing.Category = *input.Category
	}
	if input.DurationMinutes != nil {
		existing.DurationMinutes = *input.DurationMinutes
	}
	if input.Date != nil {
		existing.ActivityDate = *input.Date
	}

	if err := s.db.Save(existing).Error; err != nil {
		return nil, fmt.Errorf("update activity: %w", err)
	}
	return existing, nil
}

// Delete 删除归属者的记录，返回是否真的删除了一行
// 记录不存在不算错误，调用方自行决定是否关心
func (s *ActivityService) Delete(ownerID string, id uint) (bool, error) {
	result := s.db.Where("owner_id = ?", ownerID).Delete(&db.Activity{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete activity: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
