package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
)

type CourseModuleModel struct {
	ModuleID       uuid.UUID `gorm:"column:module_id;type:uuid;primaryKey" json:"module_id"`
	ModuleCourseID uuid.UUID `gorm:"column:module_course_id;type:uuid;not null;index" json:"module_course_id"`
	ModuleTitle    string    `gorm:"column:module_title;type:varchar(255);not null" json:"module_title"`
	// Display order; duplicates are allowed.
	ModuleOrderIndex int `gorm:"column:module_order_index;not null;default:0;check:module_order_index >= 0" json:"module_order_index"`

	Course  *coursemodel.CourseModel `gorm:"foreignKey:ModuleCourseID;constraint:OnDelete:CASCADE" json:"-"`
	Lessons []LessonModel            `gorm:"foreignKey:LessonModuleID" json:"lessons,omitempty"`

	ModuleCreatedAt time.Time `gorm:"column:module_created_at;autoCreateTime" json:"module_created_at"`
	ModuleUpdatedAt time.Time `gorm:"column:module_updated_at;autoUpdateTime" json:"module_updated_at"`
}

func (CourseModuleModel) TableName() string { return "course_modules" }

func (m *CourseModuleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ModuleID == uuid.Nil {
		m.ModuleID = uuid.New()
	}
	return nil
}
