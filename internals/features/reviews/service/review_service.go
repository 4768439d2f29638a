package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	enrollservice "learnhub_backend/internals/features/enrollments/enrollment/service"
	"learnhub_backend/internals/features/reviews/model"
	helper "learnhub_backend/internals/helpers"
)

type ReviewService struct {
	DB          *gorm.DB
	Enrollments *enrollservice.EnrollmentService
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		DB:          db,
		Enrollments: enrollservice.NewEnrollmentService(db),
	}
}

// Create enforces the review preconditions in order, first failure wins:
// course exists -> caller enrolled -> not yet reviewed. The unique
// (user, course) index backs the existence check against concurrent inserts.
func (s *ReviewService) Create(ctx context.Context, userID, courseID uuid.UUID, rating int, comment *string) (*model.ReviewModel, error) {
	db := s.DB.WithContext(ctx)

	var courses int64
	if err := db.Model(&coursemodel.CourseModel{}).
		Where("course_id = ?", courseID).
		Count(&courses).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create review")
	}
	if courses == 0 {
		return nil, helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Course not found")
	}

	if err := s.Enrollments.EnsureEnrolled(ctx, userID, courseID); err != nil {
		return nil, err
	}

	var existing int64
	if err := db.Model(&model.ReviewModel{}).
		Where("review_user_id = ? AND review_course_id = ?", userID, courseID).
		Count(&existing).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create review")
	}
	if existing > 0 {
		return nil, helper.NewError(fiber.StatusBadRequest, helper.CodeConflict, "You have already reviewed this course")
	}

	review := model.ReviewModel{
		ReviewUserID:   userID,
		ReviewCourseID: courseID,
		ReviewRating:   rating,
		ReviewComment:  comment,
	}
	if err := db.Create(&review).Error; err != nil {
		if IsDuplicateReview(err) {
			return nil, helper.NewError(fiber.StatusBadRequest, helper.CodeConflict, "You have already reviewed this course")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create review")
	}
	return &review, nil
}

func IsDuplicateReview(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || // postgres
		strings.Contains(msg, "UNIQUE constraint failed") // sqlite
}
