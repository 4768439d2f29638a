package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnhub_backend/internals/constants"
	"learnhub_backend/internals/features/enrollments/enrollment/controller"
	authMiddleware "learnhub_backend/internals/middlewares/auth"
)

func EnrollmentRoutes(api fiber.Router, db *gorm.DB) {
	enrollCtrl := controller.NewEnrollmentController(db)

	api.Post("/courses/:courseId/enroll",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Only students can enroll in courses", constants.StudentOnly...),
		enrollCtrl.Enroll,
	)

	api.Get("/courses/:courseId/enrollment-status",
		authMiddleware.AuthMiddleware(),
		enrollCtrl.EnrollmentStatus,
	)

	api.Get("/users/me/enrollments",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Only students have enrollments", constants.StudentOnly...),
		enrollCtrl.MyEnrollments,
	)

	api.Get("/courses/:courseId/students",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Only instructors can list enrolled students", constants.InstructorAndAbove...),
		enrollCtrl.CourseStudents,
	)
}
