package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	coursemodel "learnhub_backend/internals/features/courses/courses/model"
	enrollmodel "learnhub_backend/internals/features/enrollments/enrollment/model"
	paymentmodel "learnhub_backend/internals/features/payments/model"
	reviewmodel "learnhub_backend/internals/features/reviews/model"
	usermodel "learnhub_backend/internals/features/users/model"
	helper "learnhub_backend/internals/helpers"
)

type AdminAnalyticsController struct {
	DB *gorm.DB
}

func NewAdminAnalyticsController(db *gorm.DB) *AdminAnalyticsController {
	return &AdminAnalyticsController{DB: db}
}

// =============================
// Platform analytics dashboard
// =============================
func (ctrl *AdminAnalyticsController) Analytics(c *fiber.Ctx) error {
	var totalUsers, totalCourses, totalEnrollments, totalReviews int64
	if err := ctrl.DB.Model(&usermodel.UserModel{}).Count(&totalUsers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch analytics")
	}
	if err := ctrl.DB.Model(&coursemodel.CourseModel{}).Count(&totalCourses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch analytics")
	}
	if err := ctrl.DB.Model(&enrollmodel.EnrollmentModel{}).Count(&totalEnrollments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch analytics")
	}
	if err := ctrl.DB.Model(&reviewmodel.ReviewModel{}).Count(&totalReviews).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch analytics")
	}

	type roleRow struct {
		Role  string
		Total int64
	}
	var roleRows []roleRow
	if err := ctrl.DB.Model(&usermodel.UserModel{}).
		Select("user_role AS role, COUNT(*) AS total").
		Group("user_role").
		Scan(&roleRows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch analytics")
	}
	usersByRole := make(map[string]int64, len(roleRows))
	for _, r := range roleRows {
		usersByRole[r.Role] = r.Total
	}

	var totalRevenue float64
	if err := ctrl.DB.Model(&paymentmodel.PaymentModel{}).
		Where("payment_status = ?", paymentmodel.PaymentStatusCompleted).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch analytics")
	}

	type topCourseRow struct {
		CourseID        string  `json:"course_id"`
		Title           string  `json:"title"`
		EnrollmentCount int64   `json:"enrollment_count"`
		Price           float64 `json:"price"`
	}
	var topCourses []topCourseRow
	if err := ctrl.DB.Table("courses").
		Select("courses.course_id AS course_id, courses.course_title AS title, courses.course_price AS price, COUNT(enrollments.enrollment_id) AS enrollment_count").
		Joins("LEFT JOIN enrollments ON enrollments.enrollment_course_id = courses.course_id").
		Group("courses.course_id, courses.course_title, courses.course_price").
		Order("enrollment_count DESC").
		Limit(10).
		Scan(&topCourses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch analytics")
	}

	var recentEnrollments []enrollmodel.EnrollmentModel
	if err := ctrl.DB.Preload("User").Preload("Course").
		Order("enrollment_enrolled_at DESC").
		Limit(10).
		Find(&recentEnrollments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch analytics")
	}

	recent := make([]fiber.Map, 0, len(recentEnrollments))
	for _, e := range recentEnrollments {
		item := fiber.Map{
			"enrollment_id": e.EnrollmentID,
			"enrolled_at":   e.EnrollmentEnrolledAt,
		}
		if e.User != nil {
			item["user_name"] = e.User.UserName
		}
		if e.Course != nil {
			item["course_title"] = e.Course.CourseTitle
		}
		recent = append(recent, item)
	}

	return helper.JsonOK(c, "", fiber.Map{
		"totals": fiber.Map{
			"users":       totalUsers,
			"courses":     totalCourses,
			"enrollments": totalEnrollments,
			"reviews":     totalReviews,
			"revenue":     totalRevenue,
		},
		"users_by_role":      usersByRole,
		"top_courses":        topCourses,
		"recent_enrollments": recent,
	})
}
