package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnhub_backend/internals/constants"
	"learnhub_backend/internals/features/courses/curriculum/controller"
	authMiddleware "learnhub_backend/internals/middlewares/auth"
)

func CurriculumRoutes(api fiber.Router, db *gorm.DB) {
	moduleCtrl := controller.NewModuleController(db)
	lessonCtrl := controller.NewLessonController(db)

	instructorOnly := []fiber.Handler{
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Only instructors can manage course content", constants.InstructorAndAbove...),
	}

	api.Post("/courses/:courseId/modules", append(instructorOnly, moduleCtrl.CreateModule)...)
	api.Put("/modules/:id", append(instructorOnly, moduleCtrl.UpdateModule)...)
	api.Delete("/modules/:id", append(instructorOnly, moduleCtrl.DeleteModule)...)

	api.Post("/modules/:moduleId/lessons", append(instructorOnly, lessonCtrl.CreateLesson)...)
	api.Put("/lessons/:id", append(instructorOnly, lessonCtrl.UpdateLesson)...)
	api.Delete("/lessons/:id", append(instructorOnly, lessonCtrl.DeleteLesson)...)
}
