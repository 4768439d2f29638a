package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	lessonmodel "learnhub_backend/internals/features/courses/curriculum/model"
	usermodel "learnhub_backend/internals/features/users/model"
)

// ProgressModel holds per-lesson completion state, upserted on (user, lesson).
type ProgressModel struct {
	ProgressID       uuid.UUID `gorm:"column:progress_id;type:uuid;primaryKey" json:"progress_id"`
	ProgressUserID   uuid.UUID `gorm:"column:progress_user_id;type:uuid;not null;uniqueIndex:uq_progress_user_lesson" json:"progress_user_id"`
	ProgressLessonID uuid.UUID `gorm:"column:progress_lesson_id;type:uuid;not null;uniqueIndex:uq_progress_user_lesson" json:"progress_lesson_id"`

	ProgressCompleted   bool       `gorm:"column:progress_completed;not null;default:false" json:"progress_completed"`
	ProgressCompletedAt *time.Time `gorm:"column:progress_completed_at" json:"progress_completed_at,omitempty"`

	User   *usermodel.UserModel     `gorm:"foreignKey:ProgressUserID;constraint:OnDelete:CASCADE" json:"-"`
	Lesson *lessonmodel.LessonModel `gorm:"foreignKey:ProgressLessonID;constraint:OnDelete:CASCADE" json:"-"`

	ProgressCreatedAt time.Time `gorm:"column:progress_created_at;autoCreateTime" json:"progress_created_at"`
	ProgressUpdatedAt time.Time `gorm:"column:progress_updated_at;autoUpdateTime" json:"progress_updated_at"`
}

func (ProgressModel) TableName() string { return "progress" }

func (m *ProgressModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProgressID == uuid.Nil {
		m.ProgressID = uuid.New()
	}
	return nil
}
