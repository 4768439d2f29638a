package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	usermodel "learnhub_backend/internals/features/users/model"
)

type CourseModel struct {
	CourseID          uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`
	CourseTitle       string    `gorm:"column:course_title;type:varchar(255);not null" json:"course_title"`
	CourseDescription string    `gorm:"column:course_description;type:text;not null" json:"course_description"`
	CoursePrice       float64   `gorm:"column:course_price;type:numeric(10,2);not null;default:0;check:course_price >= 0" json:"course_price"`
	CourseCurrency    string    `gorm:"column:course_currency;type:varchar(8);not null;default:'idr'" json:"course_currency"`
	CourseIsPublished bool      `gorm:"column:course_is_published;not null;default:false" json:"course_is_published"`
	CourseIsApproved  bool      `gorm:"column:course_is_approved;not null;default:false" json:"course_is_approved"`

	CourseInstructorID uuid.UUID            `gorm:"column:course_instructor_id;type:uuid;not null;index" json:"course_instructor_id"`
	Instructor         *usermodel.UserModel `gorm:"foreignKey:CourseInstructorID;constraint:OnDelete:CASCADE" json:"instructor,omitempty"`

	CourseCreatedAt time.Time `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
}

func (CourseModel) TableName() string { return "courses" }

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}

// IsEnrollable: a course can only be enrolled in once published and approved.
func (m *CourseModel) IsEnrollable() bool {
	return m.CourseIsPublished && m.CourseIsApproved
}

func (m *CourseModel) IsFree() bool {
	return m.CoursePrice == 0
}
