package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	coursedto "learnhub_backend/internals/features/courses/courses/dto"
	courseservice "learnhub_backend/internals/features/courses/courses/service"
	"learnhub_backend/internals/features/enrollments/enrollment/dto"
	"learnhub_backend/internals/features/enrollments/enrollment/model"
	"learnhub_backend/internals/features/enrollments/enrollment/service"
	progressservice "learnhub_backend/internals/features/enrollments/progress/service"
	helper "learnhub_backend/internals/helpers"
)

type EnrollmentController struct {
	DB       *gorm.DB
	Service  *service.EnrollmentService
	Progress *progressservice.ProgressService
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{
		DB:       db,
		Service:  service.NewEnrollmentService(db),
		Progress: progressservice.NewProgressService(db),
	}
}

// =============================
// Enroll (free courses only; paid go through checkout)
// =============================
func (ctrl *EnrollmentController) Enroll(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	enrollment, err := ctrl.Service.EnrollFree(c.UserContext(), userID, courseID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Enrolled successfully", dto.ToEnrollmentResponse(*enrollment))
}

// =============================
// Enrollment status for the calling user
// =============================
func (ctrl *EnrollmentController) EnrollmentStatus(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	enrollment, err := ctrl.Service.Find(c.UserContext(), userID, courseID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check enrollment status")
	}

	resp := dto.EnrollmentStatusResponse{IsEnrolled: enrollment != nil}
	if enrollment != nil {
		e := dto.ToEnrollmentResponse(*enrollment)
		resp.Enrollment = &e
	}
	return helper.JsonOK(c, "", resp)
}

// =============================
// My enrollments (with progress + rating rollups)
// =============================
func (ctrl *EnrollmentController) MyEnrollments(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var enrollments []model.EnrollmentModel
	if err := ctrl.DB.Preload("Course").Preload("Course.Instructor").
		Where("enrollment_user_id = ?", userID).
		Order("enrollment_enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}

	courseIDs := make([]uuid.UUID, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.EnrollmentCourseID)
	}
	stats, err := courseservice.LoadCourseStats(ctrl.DB, courseIDs)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}

	items := make([]dto.MyEnrollmentItem, 0, len(enrollments))
	for _, e := range enrollments {
		summary, err := ctrl.Progress.CourseSummary(c.UserContext(), userID, e.EnrollmentCourseID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollments")
		}
		item := dto.MyEnrollmentItem{
			Enrollment: dto.ToEnrollmentResponse(e),
			Progress:   summary,
		}
		if e.Course != nil {
			item.Course = coursedto.ToCourseListItem(*e.Course, stats[e.EnrollmentCourseID])
		}
		items = append(items, item)
	}

	return helper.JsonOK(c, "", items)
}

// =============================
// Enrolled students of a course (owner or ADMIN)
// =============================
func (ctrl *EnrollmentController) CourseStudents(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.NewError(fiber.StatusBadRequest, helper.CodeValidation, "Invalid course id")
	}

	if _, err := courseservice.EnsureCourseOwner(ctrl.DB, courseID, userID, helper.GetUserRole(c)); err != nil {
		return err
	}

	var enrollments []model.EnrollmentModel
	if err := ctrl.DB.Preload("User").
		Where("enrollment_course_id = ?", courseID).
		Order("enrollment_enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	students := make([]dto.EnrolledStudent, 0, len(enrollments))
	for _, e := range enrollments {
		if e.User == nil {
			continue
		}
		students = append(students, dto.EnrolledStudent{
			UserID:     e.User.UserID.String(),
			Name:       e.User.UserName,
			Email:      e.User.UserEmail,
			EnrolledAt: e.EnrollmentEnrolledAt,
		})
	}

	return helper.JsonOK(c, "", fiber.Map{
		"students": students,
		"total":    len(students),
	})
}
