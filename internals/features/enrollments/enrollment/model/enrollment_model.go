package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	usermodel "learnhub_backend/internals/features/users/model"
)

// EnrollmentModel is the single authoritative fact "user may access course".
// The composite unique index is the only concurrency primitive guarding
// against duplicate enrollment; concurrent inserts lose at the constraint.
type EnrollmentModel struct {
	EnrollmentID       uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`
	EnrollmentUserID   uuid.UUID `gorm:"column:enrollment_user_id;type:uuid;not null;uniqueIndex:uq_enrollments_user_course" json:"enrollment_user_id"`
	EnrollmentCourseID uuid.UUID `gorm:"column:enrollment_course_id;type:uuid;not null;uniqueIndex:uq_enrollments_user_course" json:"enrollment_course_id"`

	User   *usermodel.UserModel     `gorm:"foreignKey:EnrollmentUserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Course *coursemodel.CourseModel `gorm:"foreignKey:EnrollmentCourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`

	EnrollmentEnrolledAt time.Time `gorm:"column:enrollment_enrolled_at;autoCreateTime" json:"enrollment_enrolled_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	return nil
}
