package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnhub_backend/internals/constants"
	"learnhub_backend/internals/features/enrollments/progress/controller"
	authMiddleware "learnhub_backend/internals/middlewares/auth"
)

func ProgressRoutes(api fiber.Router, db *gorm.DB) {
	progressCtrl := controller.NewProgressController(db)

	studentOnly := []fiber.Handler{
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Only students can track progress", constants.StudentOnly...),
	}

	api.Post("/lessons/:lessonId/complete", append(studentOnly, progressCtrl.CompleteLesson)...)
	api.Post("/lessons/:lessonId/incomplete", append(studentOnly, progressCtrl.IncompleteLesson)...)
	api.Get("/courses/:courseId/progress", append(studentOnly, progressCtrl.CourseProgress)...)
}
