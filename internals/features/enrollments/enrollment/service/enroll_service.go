package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	"learnhub_backend/internals/features/enrollments/enrollment/model"
	helper "learnhub_backend/internals/helpers"
)

type EnrollmentService struct {
	DB *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db}
}

// EnrollFree decides whether a student may be granted a free enrollment and
// creates it. Preconditions are checked in order, first failure wins:
// course exists -> published+approved -> free -> not already enrolled.
func (s *EnrollmentService) EnrollFree(ctx context.Context, userID, courseID uuid.UUID) (*model.EnrollmentModel, error) {
	db := s.DB.WithContext(ctx)

	var course coursemodel.CourseModel
	if err := db.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Course not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to enroll in course")
	}

	if !course.IsEnrollable() {
		return nil, helper.NewError(fiber.StatusBadRequest, helper.CodeInvalidState, "Course is not available for enrollment")
	}

	if !course.IsFree() {
		return nil, helper.NewError(fiber.StatusBadRequest, helper.CodePaymentRequired, "This is a paid course. Please complete payment first.")
	}

	var existing model.EnrollmentModel
	err := db.Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return nil, helper.NewError(fiber.StatusBadRequest, helper.CodeConflict, "Already enrolled in this course")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to enroll in course")
	}

	enrollment := model.EnrollmentModel{
		EnrollmentUserID:   userID,
		EnrollmentCourseID: courseID,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		// A concurrent duplicate loses at the unique (user, course) index.
		if isUniqueViolation(err) {
			return nil, helper.NewError(fiber.StatusBadRequest, helper.CodeConflict, "Already enrolled in this course")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to enroll in course")
	}
	return &enrollment, nil
}

// Grant inserts an enrollment if absent, reporting whether a row was created.
// Used by payment reconciliation, which may run more than once per session;
// the ON CONFLICT DO NOTHING makes the "payment completed => enrollment
// exists" step idempotent.
func (s *EnrollmentService) Grant(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	enrollment := model.EnrollmentModel{
		EnrollmentUserID:   userID,
		EnrollmentCourseID: courseID,
	}
	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "enrollment_user_id"}, {Name: "enrollment_course_id"}},
			DoNothing: true,
		}).
		Create(&enrollment)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Find returns the enrollment for (user, course), or nil when absent.
func (s *EnrollmentService) Find(ctx context.Context, userID, courseID uuid.UUID) (*model.EnrollmentModel, error) {
	var enrollment model.EnrollmentModel
	err := s.DB.WithContext(ctx).
		Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// EnsureEnrolled gates member-only operations (progress, reviews).
func (s *EnrollmentService) EnsureEnrolled(ctx context.Context, userID, courseID uuid.UUID) error {
	enrollment, err := s.Find(ctx, userID, courseID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check enrollment")
	}
	if enrollment == nil {
		return helper.NewError(fiber.StatusForbidden, helper.CodeForbidden, "Not enrolled in this course")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || // postgres
		strings.Contains(msg, "UNIQUE constraint failed") // sqlite
}
