package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnhub_backend/internals/features/courses/courses/dto"
	"learnhub_backend/internals/features/courses/courses/model"
	"learnhub_backend/internals/features/courses/courses/service"
	curriculummodel "learnhub_backend/internals/features/courses/curriculum/model"
	reviewmodel "learnhub_backend/internals/features/reviews/model"
	helper "learnhub_backend/internals/helpers"
)

var validateCourse = validator.New()

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

// =============================
// Public catalog (search + pagination + rollups)
// =============================
func (ctrl *CourseController) ListCourses(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := ctrl.DB.Model(&model.CourseModel{}).
		Where("course_is_published = ? AND course_is_approved = ?", true, true)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(course_title) LIKE ? OR LOWER(course_description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	var courses []model.CourseModel
	if err := q.Preload("Instructor").
		Order("course_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&courses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	ids := make([]uuid.UUID, 0, len(courses))
	for _, course := range courses {
		ids = append(ids, course.CourseID)
	}
	stats, err := service.LoadCourseStats(ctrl.DB, ids)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	items := make([]dto.CourseListItem, 0, len(courses))
	for _, course := range courses {
		items = append(items, dto.ToCourseListItem(course, stats[course.CourseID]))
	}

	return helper.JsonList(c, "", items, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// =============================
// Course detail (modules, lessons, reviews, rating)
// =============================
func (ctrl *CourseController) GetCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	var course model.CourseModel
	if err := ctrl.DB.Preload("Instructor").First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.NewError(fiber.StatusNotFound, helper.CodeNotFound, "Course not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch course")
	}

	var modules []curriculummodel.CourseModuleModel
	if err := ctrl.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_order_index ASC")
		}).
		Where("module_course_id = ?", courseID).
		Order("module_order_index ASC").
		Find(&modules).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch course")
	}

	var reviews []reviewmodel.ReviewModel
	if err := ctrl.DB.Preload("User").
		Where("review_course_id = ?", courseID).
		Order("review_created_at DESC").
		Find(&reviews).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch course")
	}

	stats, err := service.LoadCourseStats(ctrl.DB, []uuid.UUID{courseID})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch course")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"course":           dto.ToCourseListItem(course, stats[courseID]),
		"modules":          modules,
		"reviews":          reviews,
		"average_rating":   stats[courseID].AverageRating,
		"review_count":     stats[courseID].ReviewCount,
		"enrollment_count": stats[courseID].EnrollmentCount,
	})
}

// =============================
// Create course (INSTRUCTOR/ADMIN)
// =============================
func (ctrl *CourseController) CreateCourse(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var body dto.CreateCourseRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateCourse.Struct(&body); err != nil {
		return helper.ValidationError(err)
	}

	course := model.CourseModel{
		CourseTitle:        body.Title,
		CourseDescription:  body.Description,
		CourseInstructorID: userID,
	}
	if body.Price != nil {
		course.CoursePrice = *body.Price
	}
	if body.Currency != "" {
		course.CourseCurrency = strings.ToLower(body.Currency)
	}

	if err := ctrl.DB.Create(&course).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create course")
	}

	return helper.JsonCreated(c, "Course created successfully", dto.ToCourseResponse(course))
}

// =============================
// Update course (owner or ADMIN)
// =============================
func (ctrl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	var body dto.UpdateCourseRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateCourse.Struct(&body); err != nil {
		return helper.ValidationError(err)
	}

	course, err := service.EnsureCourseOwner(ctrl.DB, courseID, userID, helper.GetUserRole(c))
	if err != nil {
		return err
	}

	if body.Title != nil {
		course.CourseTitle = *body.Title
	}
	if body.Description != nil {
		course.CourseDescription = *body.Description
	}
	if body.Price != nil {
		course.CoursePrice = *body.Price
	}
	if body.IsPublished != nil {
		course.CourseIsPublished = *body.IsPublished
	}

	if err := ctrl.DB.Save(course).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update course")
	}

	return helper.JsonUpdated(c, "Course updated successfully", dto.ToCourseResponse(*course))
}

// =============================
// Delete course (owner or ADMIN, cascades to modules/lessons)
// =============================
func (ctrl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	course, err := service.EnsureCourseOwner(ctrl.DB, courseID, userID, helper.GetUserRole(c))
	if err != nil {
		return err
	}

	if err := ctrl.DB.Delete(course).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete course")
	}
	return helper.JsonDeleted(c, "Course deleted successfully")
}

// =============================
// Instructor's own courses
// =============================
func (ctrl *CourseController) MyCourses(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var courses []model.CourseModel
	if err := ctrl.DB.
		Where("course_instructor_id = ?", userID).
		Order("course_created_at DESC").
		Find(&courses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	ids := make([]uuid.UUID, 0, len(courses))
	for _, course := range courses {
		ids = append(ids, course.CourseID)
	}
	stats, err := service.LoadCourseStats(ctrl.DB, ids)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	items := make([]dto.CourseListItem, 0, len(courses))
	for _, course := range courses {
		items = append(items, dto.ToCourseListItem(course, stats[course.CourseID]))
	}
	return helper.JsonOK(c, "", items)
}
