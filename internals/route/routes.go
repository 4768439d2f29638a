package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	adminRoute "learnhub_backend/internals/features/admin/route"
	courseRoute "learnhub_backend/internals/features/courses/courses/route"
	curriculumRoute "learnhub_backend/internals/features/courses/curriculum/route"
	enrollmentRoute "learnhub_backend/internals/features/enrollments/enrollment/route"
	progressRoute "learnhub_backend/internals/features/enrollments/progress/route"
	paymentRoute "learnhub_backend/internals/features/payments/route"
	paymentService "learnhub_backend/internals/features/payments/service"
	reviewRoute "learnhub_backend/internals/features/reviews/route"
	authRoute "learnhub_backend/internals/features/users/route"
)

// SetupRoutes mounts every feature under /api.
func SetupRoutes(app *fiber.App, db *gorm.DB, gateway paymentService.Gateway) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoute.AuthRoutes(api, db)
	courseRoute.CourseRoutes(api, db)
	curriculumRoute.CurriculumRoutes(api, db)
	enrollmentRoute.EnrollmentRoutes(api, db)
	progressRoute.ProgressRoutes(api, db)
	reviewRoute.ReviewRoutes(api, db)
	paymentRoute.PaymentRoutes(api, db, gateway)
	adminRoute.AdminRoutes(api, db)
}
