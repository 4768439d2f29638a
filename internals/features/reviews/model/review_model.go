package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	usermodel "learnhub_backend/internals/features/users/model"
)

// ReviewModel: one review per (user, course), requires a prior enrollment
// (enforced in the controller, backed by the unique index here).
type ReviewModel struct {
	ReviewID       uuid.UUID `gorm:"column:review_id;type:uuid;primaryKey" json:"review_id"`
	ReviewUserID   uuid.UUID `gorm:"column:review_user_id;type:uuid;not null;uniqueIndex:uq_reviews_user_course" json:"review_user_id"`
	ReviewCourseID uuid.UUID `gorm:"column:review_course_id;type:uuid;not null;uniqueIndex:uq_reviews_user_course" json:"review_course_id"`

	ReviewRating  int     `gorm:"column:review_rating;not null;check:review_rating >= 1 AND review_rating <= 5" json:"review_rating"`
	ReviewComment *string `gorm:"column:review_comment;type:text" json:"review_comment,omitempty"`

	User   *usermodel.UserModel     `gorm:"foreignKey:ReviewUserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Course *coursemodel.CourseModel `gorm:"foreignKey:ReviewCourseID;constraint:OnDelete:CASCADE" json:"-"`

	ReviewCreatedAt time.Time `gorm:"column:review_created_at;autoCreateTime" json:"review_created_at"`
	ReviewUpdatedAt time.Time `gorm:"column:review_updated_at;autoUpdateTime" json:"review_updated_at"`
}

func (ReviewModel) TableName() string { return "reviews" }

func (m *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReviewID == uuid.Nil {
		m.ReviewID = uuid.New()
	}
	return nil
}
