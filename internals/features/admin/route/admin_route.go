package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnhub_backend/internals/constants"
	"learnhub_backend/internals/features/admin/controller"
	authMiddleware "learnhub_backend/internals/middlewares/auth"
)

func AdminRoutes(api fiber.Router, db *gorm.DB) {
	userCtrl := controller.NewAdminUserController(db)
	courseCtrl := controller.NewAdminCourseController(db)
	analyticsCtrl := controller.NewAdminAnalyticsController(db)

	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Admin access required", constants.AdminOnly...),
	)

	admin.Get("/users", userCtrl.ListUsers)
	admin.Delete("/users/:userId", userCtrl.DeleteUser)

	admin.Get("/courses", courseCtrl.ListCourses)
	admin.Put("/courses/:courseId/approve", courseCtrl.ApproveCourse)
	admin.Delete("/courses/:courseId", courseCtrl.DeleteCourse)

	admin.Get("/analytics", analyticsCtrl.Analytics)
}
