package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnhub_backend/internals/constants"
	"learnhub_backend/internals/features/courses/courses/model"
	helper "learnhub_backend/internals/helpers"
)

// EnsureCourseOwner loads the course and enforces the ownership rule:
// instructors may only mutate their own courses, admins bypass ownership.
func EnsureCourseOwner(db *gorm.DB, courseID, callerID uuid.UUID, callerRole string) (*model.CourseModel, error) {
	var course model.CourseModel
	if err := db.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Course not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load course")
	}

	if callerRole != constants.RoleAdmin && course.CourseInstructorID != callerID {
		return nil, helper.NewError(fiber.StatusForbidden, helper.CodeForbidden, "Not authorized to modify this course")
	}
	return &course, nil
}
