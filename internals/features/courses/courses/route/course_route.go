package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnhub_backend/internals/constants"
	"learnhub_backend/internals/features/courses/courses/controller"
	authMiddleware "learnhub_backend/internals/middlewares/auth"
)

func CourseRoutes(api fiber.Router, db *gorm.DB) {
	courseCtrl := controller.NewCourseController(db)

	courses := api.Group("/courses")

	// Instructor routes first so "/instructor/my-courses" is not captured by "/:id".
	courses.Get("/instructor/my-courses",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Only instructors can list their courses", constants.InstructorAndAbove...),
		courseCtrl.MyCourses,
	)

	courses.Get("/", courseCtrl.ListCourses)
	courses.Get("/:id", courseCtrl.GetCourse)

	courses.Post("/",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Only instructors can create courses", constants.InstructorAndAbove...),
		courseCtrl.CreateCourse,
	)
	courses.Put("/:id",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Only instructors can update courses", constants.InstructorAndAbove...),
		courseCtrl.UpdateCourse,
	)
	courses.Delete("/:id",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Only instructors can delete courses", constants.InstructorAndAbove...),
		courseCtrl.DeleteCourse,
	)
}
