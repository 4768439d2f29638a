package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	coursedto "learnhub_backend/internals/features/courses/courses/dto"
	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	courseservice "learnhub_backend/internals/features/courses/courses/service"
	helper "learnhub_backend/internals/helpers"
)

var validate = validator.New()

type AdminCourseController struct {
	DB *gorm.DB
}

func NewAdminCourseController(db *gorm.DB) *AdminCourseController {
	return &AdminCourseController{DB: db}
}

// =============================
// List courses (moderation view, optional flag filters)
// =============================
func (ctrl *AdminCourseController) ListCourses(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&coursemodel.CourseModel{})
	if v := c.Query("is_approved"); v != "" {
		q = q.Where("course_is_approved = ?", v == "true")
	}
	if v := c.Query("is_published"); v != "" {
		q = q.Where("course_is_published = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	var courses []coursemodel.CourseModel
	if err := q.Preload("Instructor").
		Order("course_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&courses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	courseIDs := make([]uuid.UUID, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.CourseID)
	}
	stats, err := courseservice.LoadCourseStats(ctrl.DB, courseIDs)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	items := make([]coursedto.CourseListItem, 0, len(courses))
	for _, course := range courses {
		items = append(items, coursedto.ToCourseListItem(course, stats[course.CourseID]))
	}
	return helper.JsonList(c, "", items, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

type approveCourseRequest struct {
	IsApproved *bool `json:"is_approved" validate:"required"`
}

// =============================
// Approve / revoke approval
// =============================
func (ctrl *AdminCourseController) ApproveCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	var req approveCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(err)
	}

	var course coursemodel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Course not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update course")
	}

	course.CourseIsApproved = *req.IsApproved
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&course).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update course")
	}

	message := "Course approved"
	if !course.CourseIsApproved {
		message = "Course approval revoked"
	}
	return helper.JsonUpdated(c, message, course)
}

// =============================
// Delete course (moderation)
// =============================
func (ctrl *AdminCourseController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	var course coursemodel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Course not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete course")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&course).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete course")
	}
	return helper.JsonDeleted(c, "Course deleted successfully")
}
