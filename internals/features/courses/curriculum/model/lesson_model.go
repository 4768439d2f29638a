package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LessonContentTypeVideo = "VIDEO"
	LessonContentTypeText  = "TEXT"
)

type LessonModel struct {
	LessonID          uuid.UUID `gorm:"column:lesson_id;type:uuid;primaryKey" json:"lesson_id"`
	LessonModuleID    uuid.UUID `gorm:"column:lesson_module_id;type:uuid;not null;index" json:"lesson_module_id"`
	LessonTitle       string    `gorm:"column:lesson_title;type:varchar(255);not null" json:"lesson_title"`
	LessonContentType string    `gorm:"column:lesson_content_type;type:varchar(10);not null" json:"lesson_content_type"`
	LessonVideoURL    *string   `gorm:"column:lesson_video_url;type:text" json:"lesson_video_url,omitempty"`
	LessonTextContent *string   `gorm:"column:lesson_text_content;type:text" json:"lesson_text_content,omitempty"`
	// Duration in minutes.
	LessonDuration   int `gorm:"column:lesson_duration;not null;default:0;check:lesson_duration >= 0" json:"lesson_duration"`
	LessonOrderIndex int `gorm:"column:lesson_order_index;not null;default:0;check:lesson_order_index >= 0" json:"lesson_order_index"`

	Module *CourseModuleModel `gorm:"foreignKey:LessonModuleID;constraint:OnDelete:CASCADE" json:"-"`

	LessonCreatedAt time.Time `gorm:"column:lesson_created_at;autoCreateTime" json:"lesson_created_at"`
	LessonUpdatedAt time.Time `gorm:"column:lesson_updated_at;autoUpdateTime" json:"lesson_updated_at"`
}

func (LessonModel) TableName() string { return "lessons" }

func (m *LessonModel) BeforeCreate(tx *gorm.DB) error {
	if m.LessonID == uuid.Nil {
		m.LessonID = uuid.New()
	}
	return nil
}
