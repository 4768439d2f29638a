package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnhub_backend/internals/constants"
	"learnhub_backend/internals/features/reviews/controller"
	authMiddleware "learnhub_backend/internals/middlewares/auth"
)

func ReviewRoutes(api fiber.Router, db *gorm.DB) {
	reviewCtrl := controller.NewReviewController(db)

	api.Get("/courses/:courseId/reviews", reviewCtrl.ListCourseReviews)

	api.Post("/courses/:courseId/reviews",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Only students can review courses", constants.StudentOnly...),
		reviewCtrl.CreateReview,
	)

	api.Put("/reviews/:reviewId",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Only students can update reviews", constants.StudentOnly...),
		reviewCtrl.UpdateReview,
	)

	api.Delete("/reviews/:reviewId",
		authMiddleware.AuthMiddleware(),
		reviewCtrl.DeleteReview,
	)
}
